package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ccplan/internal/adapters/actions"
	"go.trai.ch/ccplan/internal/adapters/config"
	"go.trai.ch/ccplan/internal/adapters/fingerprint"
	"go.trai.ch/ccplan/internal/adapters/telemetry"
	"go.trai.ch/ccplan/internal/app"
	"go.trai.ch/ccplan/internal/core/ports"
	"go.trai.ch/ccplan/internal/core/ports/mocks"
	"go.trai.ch/ccplan/internal/engine/planner"
	"go.trai.ch/ccplan/internal/engine/scheduler"
	"go.uber.org/mock/gomock"
)

func provide(c *app.Components) ComponentProvider {
	return func(context.Context) (*app.Components, func(), error) {
		return c, func() {}, nil
	}
}

// newComponents wires the real adapters around a mock logger.
func newComponents(ctrl *gomock.Controller) (*app.Components, *mocks.MockLogger) {
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()

	recorder := actions.NewRecorder(ports.Noop())
	p := planner.New(actions.NewCompiler(recorder), actions.NewLinker(recorder), recorder, logger)
	sched := scheduler.NewScheduler(p, telemetry.NewNoOpTracer(), logger)
	a := app.New(config.NewLoader(logger), sched, recorder, fingerprint.NewHasher(), ports.Noop(), nil, logger)
	return app.NewComponents(a, logger), logger
}

func writeWorkspace(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ccplan.yaml"), []byte(content), 0o600))
	return dir
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	c, _ := newComponents(gomock.NewController(t))

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stdout, stderr, provide(c))
	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "ccplan version")
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_Plan plans a small workspace end to end.
func TestRun_Plan(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	c, _ := newComponents(gomock.NewController(t))

	dir := writeWorkspace(t, `
version: "1"
targets:
  //lib:a:
    hdrs: [lib/a.h]
    srcs: [lib/a.cc]
    deps: [//lib:b]
  //lib:b:
    srcs: [lib/b.cc]
`)

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"plan", "//lib:a", "-c", dir}, stdout, stderr, provide(c))
	require.Equal(t, 0, exitCode, stderr.String())
	assert.Contains(t, stdout.String(), "bazel-out/bin/lib/liba.a")
	assert.Contains(t, stdout.String(), "planned 2 of 2 targets")
}

// TestRun_PlanningFailure verifies that failed targets exit with 1 without logging again.
func TestRun_PlanningFailure(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	c, _ := newComponents(gomock.NewController(t))

	dir := writeWorkspace(t, `
configuration:
  fdo_root: fdo
targets:
  //lib:a:
    srcs: [lib/a.cc]
    lipo_context_collector: false
`)

	stdout := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"plan", "--all", "-c", dir}, stdout, new(bytes.Buffer), provide(c))
	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stdout.String(), "✗ //lib:a failed")
}

// TestRun_ExecutionError verifies that run logs and returns 1 when the command fails.
func TestRun_ExecutionError(t *testing.T) {
	c, logger := newComponents(gomock.NewController(t))
	logger.EXPECT().Error(gomock.Any()).Times(1)

	exitCode := run(context.Background(), []string{"graph", "-c", filepath.Join(t.TempDir(), "missing.yaml")},
		new(bytes.Buffer), new(bytes.Buffer), provide(c))
	assert.Equal(t, 1, exitCode)
}
