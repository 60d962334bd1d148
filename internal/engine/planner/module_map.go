package planner

import (
	"context"
	"path"

	"go.trai.ch/ccplan/internal/core/domain"
	"go.trai.ch/ccplan/internal/core/ports"
	"go.trai.ch/zerr"
)

// ModuleMapExtension is the file extension of generated module maps.
const ModuleMapExtension = ".cppmap"

// ModuleMapFor returns the module map of label: <pkg>/<name>.cppmap in the bin root.
func ModuleMapFor(label domain.Label, cfg domain.Configuration) domain.ModuleMap {
	return domain.ModuleMap{
		Name:     label.String(),
		Artifact: domain.NewDerivedArtifact(cfg.BinFragment(), path.Join(label.Package, label.Name+ModuleMapExtension)),
	}
}

func emitsModuleMap(spec *TargetSpec, rule RuleContext) bool {
	return spec.emitModuleMaps && rule.Toolchain.SupportsModuleMaps()
}

// registerModuleMap declares the module map of the target with its public headers.
func (p *Planner) registerModuleMap(ctx context.Context, spec *TargetSpec, rule RuleContext, mm domain.ModuleMap) error {
	decl := ports.ModuleMapDeclaration{
		Owner:         spec.label,
		ModuleMap:     mm,
		PublicHeaders: spec.publicHeaders,
		Dependencies:  dependencyModuleMaps(spec.deps, rule),
	}
	if err := p.registrar.RegisterModuleMap(ctx, decl); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrActionRegistrationFailed.Error()), "target", spec.label.String())
	}

	p.logger.Debug("module map registered",
		"target", spec.label.String(),
		"module_map", mm.Artifact.ExecPath(),
		"dependencies", len(decl.Dependencies))
	return nil
}

// dependencyModuleMaps lists the module maps of the dependencies, then the STL's, then
// the toolchain's. Missing ones are skipped.
func dependencyModuleMaps(deps []domain.Dependency, rule RuleContext) []domain.ModuleMap {
	var candidates []*domain.ModuleMap
	for _, dep := range deps {
		candidates = append(candidates, moduleMapOf(contextOf(dep)))
	}
	candidates = append(candidates,
		moduleMapOf(contextOf(rule.STL)),
		toolchainModuleMap(rule.Toolchain),
	)

	res := make([]domain.ModuleMap, 0, len(candidates))
	for _, mm := range candidates {
		if mm != nil {
			res = append(res, *mm)
		}
	}
	return res
}

func toolchainModuleMap(t *domain.Toolchain) *domain.ModuleMap {
	if mm := t.CppModuleMap(); mm != nil {
		return mm
	}
	return moduleMapOf(t.CompilationContext())
}

func moduleMapOf(c *domain.CompilationContext) *domain.ModuleMap {
	if c == nil {
		return nil
	}
	return c.CppModuleMap()
}
