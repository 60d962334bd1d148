package planner

import "go.trai.ch/ccplan/internal/core/domain"

// Info is the result of planning one target.
type Info struct {
	providers          *domain.Registry
	compilationOutputs *domain.CompilationOutputs
	linkingOutputs     *domain.LinkingOutputs
	compilationContext *domain.CompilationContext
}

// Providers returns the providers exposed to dependents.
func (i *Info) Providers() *domain.Registry {
	return i.providers
}

// CompilationOutputs returns the object files and intermediates of the target.
func (i *Info) CompilationOutputs() *domain.CompilationOutputs {
	return i.compilationOutputs
}

// LinkingOutputs returns the libraries of the target.
func (i *Info) LinkingOutputs() *domain.LinkingOutputs {
	return i.linkingOutputs
}

// CompilationContext returns the consolidated compilation context of the target.
func (i *Info) CompilationContext() *domain.CompilationContext {
	return i.compilationContext
}

// LinkingOutputArtifacts returns the static, PIC static and dynamic libraries, both
// link and execution time ones. These are the target's default outputs.
func (i *Info) LinkingOutputArtifacts() []domain.Artifact {
	return i.linkingOutputs.LibraryOutputArtifacts()
}

// Dependency returns a handle dependents can build against.
func (i *Info) Dependency(label domain.Label, defaultRunfiles domain.Runfiles) *domain.PlannedTarget {
	return domain.NewPlannedTarget(label, i.providers, defaultRunfiles)
}
