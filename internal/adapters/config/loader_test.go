package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ccplan/internal/adapters/config"
	"go.trai.ch/ccplan/internal/core/domain"
	"go.trai.ch/ccplan/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const workspaceYAML = `
version: "1"
configuration:
  genfiles: out/genfiles
  bin: out/bin/
  force_pic: true
  fdo_root: fdo
  save_temps: true
  fission: true
toolchain:
  module_maps: true
  module_map: tools/cpp/crosstool.cppmap
  headers: [tools/cpp/include/stdio.h]
  include_dirs: [tools/cpp/include]
stl: //tools/cpp:stl
targets:
  //tools/cpp:stl:
    hdrs: [tools/cpp/vector.h]
    srcs: [tools/cpp/stl.cc]
  //lib:base:
    hdrs: [lib/base.h, ./lib/base.h]
    generated_hdrs: [lib/version.h]
    srcs: [lib/base.cc]
    objs: [lib/prebuilt.o]
    copts: [-Wall]
    data: [lib/base.txt]
    alwayslink: true
    headers_checking: strict
    layering_check: true
    module_maps: false
    compile_if_empty: false
    native_libraries: true
    specific_link_params: true
    lipo_context_collector: false
  //lib:plugin:
    plugin: tools/plugin.so
  //app:
    srcs: [app/main.cc]
    deps: [//lib:base, //lib:base]
    plugins: [//lib:plugin]
`

func newLoader(t *testing.T) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()
	return config.NewLoader(mockLogger)
}

func writeWorkspace(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, domain.WorkspaceFileName)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestLoader_Load(t *testing.T) {
	ws, err := newLoader(t).Load(writeWorkspace(t, workspaceYAML))
	require.NoError(t, err)

	assert.Equal(t, domain.Configuration{
		GenfilesRoot: "out/genfiles",
		BinRoot:      "out/bin",
		ForcePic:     true,
		FdoRoot:      "fdo",
		SaveTemps:    true,
		Fission:      true,
	}, ws.Configuration)
	assert.Equal(t, domain.MustParseLabel("//tools/cpp:stl"), ws.STL)
	assert.Equal(t, 4, ws.Graph.TargetCount())

	base, ok := ws.Graph.Target(domain.MustParseLabel("//lib:base"))
	require.True(t, ok)
	assert.Equal(t, []domain.Artifact{
		domain.NewSourceArtifact("lib/base.h"),
		domain.NewDerivedArtifact("out/genfiles", "lib/version.h"),
	}, base.Hdrs)
	assert.Equal(t, domain.NewSourceArtifacts("lib/base.cc"), base.Srcs)
	assert.Equal(t, domain.NewSourceArtifacts("lib/prebuilt.o"), base.Objs)
	assert.Equal(t, domain.NewSourceArtifacts("lib/base.txt"), base.Data)
	assert.Equal(t, []string{"-Wall"}, base.Copts)
	assert.True(t, base.Alwayslink)
	assert.Equal(t, domain.HeadersCheckingStrict, base.HeadersChecking)
	assert.True(t, base.LayeringCheck)
	assert.False(t, base.ModuleMaps)
	assert.False(t, base.CompileIfEmpty)
	assert.True(t, base.NativeLibraries)
	assert.True(t, base.SpecificLinkParams)
	assert.False(t, base.LipoContextCollector)
	assert.Nil(t, base.Plugin)

	app, ok := ws.Graph.Target(domain.MustParseLabel("//app:app"))
	require.True(t, ok)
	assert.Equal(t, []domain.Label{domain.MustParseLabel("//lib:base")}, app.Deps)
	assert.Equal(t, []domain.Label{domain.MustParseLabel("//lib:plugin")}, app.Plugins)
	assert.True(t, app.ModuleMaps)
	assert.True(t, app.CompileIfEmpty)
	assert.True(t, app.LipoContextCollector)
	assert.Equal(t, domain.HeadersCheckingLoose, app.HeadersChecking)

	plugin, ok := ws.Graph.Target(domain.MustParseLabel("//lib:plugin"))
	require.True(t, ok)
	require.NotNil(t, plugin.Plugin)
	assert.Equal(t, domain.PluginInfo{
		Label:    domain.MustParseLabel("//lib:plugin"),
		Artifact: domain.NewSourceArtifact("tools/plugin.so"),
	}, *plugin.Plugin)
}

func TestLoader_Load_Toolchain(t *testing.T) {
	ws, err := newLoader(t).Load(writeWorkspace(t, workspaceYAML))
	require.NoError(t, err)

	tc := ws.Toolchain
	require.NotNil(t, tc)
	assert.True(t, tc.SupportsModuleMaps())
	require.NotNil(t, tc.CppModuleMap())
	assert.Equal(t, "tools/cpp/crosstool.cppmap", tc.CppModuleMap().Artifact.ExecPath())

	cc := tc.CompilationContext()
	require.NotNil(t, cc)
	assert.Equal(t, []string{"tools/cpp/include"}, cc.SystemIncludeDirs())
	assert.Equal(t, domain.NewSourceArtifacts("tools/cpp/include/stdio.h"), cc.DeclaredIncludeSrcs().ToList())
}

func TestLoader_Load_ImplicitSTLEdges(t *testing.T) {
	ws, err := newLoader(t).Load(writeWorkspace(t, workspaceYAML))
	require.NoError(t, err)

	stl := domain.MustParseLabel("//tools/cpp:stl")
	assert.Contains(t, ws.Graph.DependenciesOf(domain.MustParseLabel("//lib:base")), stl)
	assert.Contains(t, ws.Graph.DependenciesOf(domain.MustParseLabel("//app:app")), stl)
	assert.Empty(t, ws.Graph.DependenciesOf(stl))

	var order []string
	for tgt := range ws.Graph.Walk() {
		order = append(order, tgt.Label.String())
	}
	require.NotEmpty(t, order)
	assert.Equal(t, "//tools/cpp:stl", order[0])
}

func TestLoader_Load_Defaults(t *testing.T) {
	ws, err := newLoader(t).Load(writeWorkspace(t, `
targets:
  //lib:a:
    srcs: [lib/a.cc]
`))
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultConfiguration(), ws.Configuration)
	assert.True(t, ws.STL.IsZero())
	assert.False(t, ws.Toolchain.SupportsModuleMaps())
	assert.Nil(t, ws.Toolchain.CompilationContext())
	assert.Nil(t, ws.Toolchain.CppModuleMap())
}

func TestLoader_Load_Directory(t *testing.T) {
	p := writeWorkspace(t, workspaceYAML)

	ws, err := newLoader(t).Load(filepath.Dir(p))
	require.NoError(t, err)
	assert.Equal(t, 4, ws.Graph.TargetCount())
}

func TestLoader_Load_UnknownVersionWarns(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).Times(1)

	_, err := config.NewLoader(mockLogger).Load(writeWorkspace(t, `
version: "2"
targets:
  //lib:a: {}
`))
	require.NoError(t, err)
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "invalid yaml",
			content: "targets: [",
			wantErr: domain.ErrConfigParseFailed.Error(),
		},
		{
			name:    "invalid label",
			content: "targets:\n  lib:a: {}\n",
			wantErr: domain.ErrInvalidLabel.Error(),
		},
		{
			name:    "invalid dependency label",
			content: "targets:\n  //lib:a:\n    deps: [b]\n",
			wantErr: domain.ErrInvalidLabel.Error(),
		},
		{
			name:    "unsupported headers checking mode",
			content: "targets:\n  //lib:a:\n    headers_checking: paranoid\n",
			wantErr: domain.ErrUnsupportedHeadersCheckingMode.Error(),
		},
		{
			name:    "missing dependency",
			content: "targets:\n  //lib:a:\n    deps: [//lib:b]\n",
			wantErr: domain.ErrMissingDependency.Error(),
		},
		{
			name:    "missing stl",
			content: "stl: //tools/cpp:stl\ntargets:\n  //lib:a: {}\n",
			wantErr: domain.ErrMissingDependency.Error(),
		},
		{
			name:    "cycle",
			content: "targets:\n  //lib:a:\n    deps: [//lib:b]\n  //lib:b:\n    deps: [//lib:a]\n",
			wantErr: domain.ErrCycleDetected.Error(),
		},
		{
			name:    "duplicate after canonicalization",
			content: "targets:\n  //lib:\n    srcs: [lib/a.cc]\n  //lib:lib:\n    srcs: [lib/b.cc]\n",
			wantErr: domain.ErrTargetAlreadyExists.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newLoader(t).Load(writeWorkspace(t, tt.content))
			require.Error(t, err)
			assertChainContains(t, err, tt.wantErr)
		})
	}
}

// assertChainContains checks that some error in the chain of err mentions msg.
func assertChainContains(t *testing.T, err error, msg string) {
	t.Helper()
	queue := []error{err}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if strings.Contains(current.Error(), msg) {
			return
		}
		switch u := current.(type) {
		case interface{ Unwrap() []error }:
			queue = append(queue, u.Unwrap()...)
		case interface{ Unwrap() error }:
			if next := u.Unwrap(); next != nil {
				queue = append(queue, next)
			}
		}
	}
	t.Errorf("error %q does not mention %q", err, msg)
}

func TestLoader_Load_ConfigurationErrorKind(t *testing.T) {
	_, err := newLoader(t).Load(writeWorkspace(t, "targets:\n  //lib:a:\n    headers_checking: paranoid\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestLoader_Load_MissingFile(t *testing.T) {
	_, err := newLoader(t).Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrConfigReadFailed.Error())
}
