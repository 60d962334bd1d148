package scheduler_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ccplan/internal/adapters/actions"
	"go.trai.ch/ccplan/internal/core/domain"
	"go.trai.ch/ccplan/internal/core/ports/mocks"
	"go.trai.ch/ccplan/internal/engine/planner"
	"go.trai.ch/ccplan/internal/engine/scheduler"
	"go.uber.org/mock/gomock"
)

func planTarget(t *testing.T, target *domain.Target) (*planner.Info, *actions.Recorder) {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()

	recorder := actions.NewRecorder(nil)
	p := planner.New(actions.NewCompiler(recorder), actions.NewLinker(recorder), recorder, logger)
	rule := planner.RuleContext{
		Configuration:                domain.DefaultConfiguration(),
		DeclaresLipoContextCollector: target.LipoContextCollector,
	}
	info, err := p.Plan(context.Background(), rule, scheduler.NewTargetSpec(target, nil, nil))
	require.NoError(t, err)
	return info, recorder
}

func TestNewTargetSpec_Defaults(t *testing.T) {
	info, recorder := planTarget(t, library("//lib:a"))

	reg := info.Providers()
	assert.False(t, reg.Has(domain.NativeLibraryTag))
	lp, ok := reg.LinkParams()
	require.True(t, ok)
	assert.Equal(t, domain.GenericLinkParams, lp.Shape())

	kinds := make([]domain.ActionKind, 0)
	for _, a := range recorder.Actions(domain.MustParseLabel("//lib:a")) {
		kinds = append(kinds, a.Kind)
	}
	assert.Contains(t, kinds, domain.CompileAction)
	assert.Contains(t, kinds, domain.ArchiveAction)
}

func TestNewTargetSpec_Toggles(t *testing.T) {
	target := library("//lib:a")
	target.NativeLibraries = true
	target.SpecificLinkParams = true
	target.Alwayslink = true

	info, _ := planTarget(t, target)

	reg := info.Providers()
	assert.True(t, reg.Has(domain.NativeLibraryTag))
	lp, ok := reg.LinkParams()
	require.True(t, ok)
	assert.Equal(t, domain.SpecificLinkParams, lp.Shape())

	libs := info.LinkingOutputs().StaticLibraries()
	require.Len(t, libs, 1)
	assert.Equal(t, domain.AlwaysLinkStaticLibrary, libs[0].Kind)
}

func TestNewTargetSpec_Objects(t *testing.T) {
	target := domain.NewTarget(domain.MustParseLabel("//lib:prebuilt"))
	target.Objs = domain.NewSourceArtifacts("lib/prebuilt.o")

	info, _ := planTarget(t, target)

	outputs := info.CompilationOutputs()
	assert.Equal(t, target.Objs, outputs.ObjectFiles())
	assert.Equal(t, target.Objs, outputs.PicObjectFiles())
}

func TestNewTargetSpec_CompileIfEmpty(t *testing.T) {
	target := domain.NewTarget(domain.MustParseLabel("//lib:headers"))
	target.Hdrs = domain.NewSourceArtifacts("lib/headers.h")
	target.CompileIfEmpty = false

	info, recorder := planTarget(t, target)

	assert.Empty(t, recorder.Actions(target.Label))
	assert.Empty(t, info.LinkingOutputArtifacts())
}
