package scheduler

import (
	"go.trai.ch/ccplan/internal/core/domain"
	"go.trai.ch/ccplan/internal/engine/planner"
)

// NewTargetSpec translates a declared target into a planner spec. deps and plugins are
// the planned handles of t.Deps and t.Plugins.
func NewTargetSpec(t *domain.Target, deps, plugins []domain.Dependency) *planner.TargetSpec {
	spec := planner.NewTargetSpec(t.Label).
		AddPublicHeaders(t.Hdrs...).
		AddSources(t.Srcs...).
		AddObjectFiles(t.Objs...).
		AddCopts(t.Copts...).
		AddDeps(deps...).
		AddPlugins(plugins...).
		SetAlwayslink(t.Alwayslink).
		SetHeadersCheckingMode(t.HeadersChecking).
		SetEnableLayeringCheck(t.LayeringCheck)

	if !t.ModuleMaps {
		spec.DisableModuleMapGeneration()
	}
	if !t.CompileIfEmpty {
		spec.DisableCompileActionsIfEmpty()
	}
	if t.NativeLibraries {
		spec.EnableNativeLibrariesProvider()
	}
	if t.SpecificLinkParams {
		spec.EnableSpecificLinkParamsProvider()
	}
	return spec
}
