package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ccplan/internal/core/depset"
	"go.trai.ch/ccplan/internal/core/domain"
)

func TestRegistry_StrictTagsPanicOnDuplicate(t *testing.T) {
	tests := []struct {
		name string
		set  func(r *domain.Registry)
	}{
		{"runfiles", func(r *domain.Registry) { r.SetRunfiles(domain.CppRunfilesProvider{}) }},
		{"compilation context", func(r *domain.Registry) {
			r.SetCompilationContext(domain.NewCompilationContextBuilder().Build())
		}},
		{"debug files", func(r *domain.Registry) { r.SetDebugFiles(domain.DebugFileProvider{}) }},
		{"fdo", func(r *domain.Registry) { r.SetFdoProfilingInfo(domain.FdoProfilingInfo{}) }},
		{"temps", func(r *domain.Registry) { r.SetTemps(domain.TempsProvider{}) }},
		{"native libraries", func(r *domain.Registry) { r.SetNativeLibraries(domain.NativeLibraryProvider{}) }},
		{"execution dynamic libraries", func(r *domain.Registry) {
			r.SetExecutionDynamicLibraries(domain.ExecutionDynamicLibrariesProvider{})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := domain.NewRegistry()
			tt.set(r)
			assert.Panics(t, func() { tt.set(r) })
			assert.Len(t, r.Tags(), 1)
		})
	}
}

func TestRegistry_LinkParamsShapesAreExclusive(t *testing.T) {
	r := domain.NewRegistry()

	r.SetLinkParams(domain.NewGenericLinkParamsProvider(domain.EmptyLinkParamsStore()))
	_, generic := r.GenericLinkParams()
	_, specific := r.SpecificLinkParams()
	assert.True(t, generic)
	assert.False(t, specific)

	r.SetLinkParams(domain.NewSpecificLinkParamsProvider(domain.EmptyLinkParamsStore()))
	_, generic = r.GenericLinkParams()
	_, specific = r.SpecificLinkParams()
	assert.False(t, generic)
	assert.True(t, specific)

	p, ok := r.LinkParams()
	require.True(t, ok)
	assert.Equal(t, domain.SpecificLinkParams, p.Shape())
	assert.Equal(t, []domain.ProviderTag{domain.LinkParamsTag}, r.Tags())
}

func TestRegistry_NilCompilationContextPanics(t *testing.T) {
	r := domain.NewRegistry()

	assert.Panics(t, func() { r.SetCompilationContext(nil) })
	assert.False(t, r.Has(domain.CompilationContextTag))
	assert.Empty(t, r.Tags())
}

func TestRegistry_GettersReportAbsence(t *testing.T) {
	r := domain.NewRegistry()

	_, ok := r.Runfiles()
	assert.False(t, ok)
	_, ok = r.CompilationContext()
	assert.False(t, ok)
	_, ok = r.NativeLibraries()
	assert.False(t, ok)
	_, ok = r.LinkParams()
	assert.False(t, ok)
	assert.False(t, r.Complete())
}

func TestRegistry_Complete(t *testing.T) {
	r := domain.NewRegistry().
		SetRunfiles(domain.CppRunfilesProvider{}).
		SetCompilationContext(domain.NewCompilationContextBuilder().Build()).
		SetDebugFiles(domain.DebugFileProvider{}).
		SetFdoProfilingInfo(domain.FdoProfilingInfo{}).
		SetTemps(domain.TempsProvider{}).
		SetExecutionDynamicLibraries(domain.ExecutionDynamicLibrariesProvider{})
	assert.False(t, r.Complete())

	r.SetLinkParams(domain.NewGenericLinkParamsProvider(nil))
	assert.True(t, r.Complete(), "the native library provider is optional")
	assert.False(t, r.Has(domain.NativeLibraryTag))

	store, ok := r.GenericLinkParams()
	require.True(t, ok)
	assert.True(t, store.Get(true, false).IsEmpty(), "a nil store reads as empty")
}

func TestCppRunfilesProvider_RunfilesFor(t *testing.T) {
	static := domain.NewRunfilesBuilder().AddArtifacts(domain.NewSourceArtifact("static.txt")).Build()
	shared := domain.NewRunfilesBuilder().AddArtifacts(domain.NewSourceArtifact("libx.so")).Build()
	p := domain.CppRunfilesProvider{Static: static, Shared: shared}

	assert.Equal(t, static, p.RunfilesFor(true))
	assert.Equal(t, shared, p.RunfilesFor(false))
}

func TestRunfilesBuilder_AddTargets(t *testing.T) {
	shared := domain.NewRunfilesBuilder().AddArtifacts(domain.NewSourceArtifact("libdep.so")).Build()
	defaults := domain.NewRunfilesBuilder().AddArtifacts(domain.NewSourceArtifact("data.txt")).Build()
	reg := domain.NewRegistry().SetRunfiles(domain.CppRunfilesProvider{Shared: shared})
	dep := domain.NewPlannedTarget(domain.MustParseLabel("//lib:dep"), reg, defaults)
	plain := domain.NewPlannedTarget(domain.MustParseLabel("//data:plain"), nil, domain.Runfiles{})

	deps := []domain.Dependency{dep, plain}
	r := domain.NewRunfilesBuilder().
		AddTargets(deps, domain.DefaultRunfiles).
		AddTargets(deps, domain.CppRunfiles(false)).
		AddTargets(deps, domain.CppRunfiles(true)).
		Build()

	assert.Equal(t, []string{"data.txt", "libdep.so"}, domain.ExecPaths(r.Artifacts()))
}

func TestPlannedTarget_Plugin(t *testing.T) {
	base := domain.NewPlannedTarget(domain.MustParseLabel("//tools:plugin"), domain.NewRegistry(), domain.Runfiles{})
	_, ok := base.PluginInfo()
	assert.False(t, ok)

	info := domain.PluginInfo{Label: base.Label(), Artifact: domain.NewSourceArtifact("tools/plugin.so")}
	plugin := base.WithPlugin(info)

	got, ok := plugin.PluginInfo()
	require.True(t, ok)
	assert.Equal(t, info, got)
	_, ok = base.PluginInfo()
	assert.False(t, ok, "WithPlugin returns a copy")
}

func TestProviderTag_String(t *testing.T) {
	assert.Equal(t, "CcLinkParamsProvider", domain.LinkParamsTag.String())
	assert.Equal(t, "UnknownProvider", domain.ProviderTag(99).String())
}

func TestDebugFileProvider_ZeroValueIsEmpty(t *testing.T) {
	var p domain.DebugFileProvider

	assert.True(t, p.Dwo.IsEmpty())
	assert.Equal(t, depset.Stable, p.PicDwo.Order())
}
