package domain

import "go.trai.ch/ccplan/internal/core/depset"

// Runfiles is the set of artifacts a binary needs next to it at execution time.
type Runfiles struct {
	artifacts depset.Set[Artifact]
}

// Artifacts returns the runfiles artifacts.
func (r Runfiles) Artifacts() []Artifact {
	return r.artifacts.ToList()
}

// Set returns the runfiles as a set.
func (r Runfiles) Set() depset.Set[Artifact] {
	return r.artifacts
}

// IsEmpty reports whether there are no runfiles.
func (r Runfiles) IsEmpty() bool {
	return r.artifacts.IsEmpty()
}

// RunfilesBuilder accumulates Runfiles.
type RunfilesBuilder struct {
	artifacts *depset.Builder[Artifact]
}

// NewRunfilesBuilder returns an empty builder.
func NewRunfilesBuilder() *RunfilesBuilder {
	return &RunfilesBuilder{artifacts: depset.NewBuilder[Artifact](depset.Stable)}
}

// AddArtifacts adds artifacts.
func (b *RunfilesBuilder) AddArtifacts(artifacts ...Artifact) *RunfilesBuilder {
	b.artifacts.Direct(artifacts...)
	return b
}

// AddRunfiles merges other runfiles.
func (b *RunfilesBuilder) AddRunfiles(r Runfiles) *RunfilesBuilder {
	b.artifacts.Transitive(r.artifacts)
	return b
}

// AddTargets merges the runfiles selected by fn from every dependency.
func (b *RunfilesBuilder) AddTargets(deps []Dependency, fn func(Dependency) Runfiles) *RunfilesBuilder {
	for _, dep := range deps {
		if dep == nil {
			continue
		}
		b.AddRunfiles(fn(dep))
	}
	return b
}

// Build returns the runfiles.
func (b *RunfilesBuilder) Build() Runfiles {
	return Runfiles{artifacts: b.artifacts.Build()}
}

// DefaultRunfiles selects a dependency's default runfiles.
func DefaultRunfiles(dep Dependency) Runfiles {
	return dep.DefaultRunfiles()
}

// CppRunfiles returns a selector for a dependency's C++ runfiles for a static or
// dynamic link. Dependencies without C++ runfiles contribute nothing.
func CppRunfiles(linkingStatically bool) func(Dependency) Runfiles {
	return func(dep Dependency) Runfiles {
		if dep.Providers() == nil {
			return Runfiles{}
		}
		p, ok := dep.Providers().Runfiles()
		if !ok {
			return Runfiles{}
		}
		return p.RunfilesFor(linkingStatically)
	}
}
