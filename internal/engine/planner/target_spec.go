package planner

import (
	"slices"

	"go.trai.ch/ccplan/internal/core/domain"
	"go.trai.ch/zerr"
)

// TargetSpec accumulates the inputs of a single library target. It is consumed by
// Planner.Plan; any use after that panics.
type TargetSpec struct {
	label domain.Label

	publicHeaders  []domain.Artifact
	sources        []domain.Artifact
	objectFiles    []domain.Artifact
	picObjectFiles []domain.Artifact
	copts          []string
	deps           []domain.Dependency
	plugins        []domain.PluginInfo

	linkType            domain.LinkTargetType
	headersCheckingMode domain.HeadersCheckingMode

	emitModuleMaps            bool
	enableLayeringCheck       bool
	emitCompileActionsIfEmpty bool
	emitNativeLibraries       bool
	emitSpecificLinkParams    bool

	consumed bool
}

// NewTargetSpec returns an empty spec for label with the default policy: a static
// library, loose headers checking, module maps on and compile actions even when there
// are no sources.
func NewTargetSpec(label domain.Label) *TargetSpec {
	return &TargetSpec{
		label:                     label,
		linkType:                  domain.StaticLibrary,
		headersCheckingMode:       domain.HeadersCheckingLoose,
		emitModuleMaps:            true,
		emitCompileActionsIfEmpty: true,
	}
}

func (s *TargetSpec) checkMutable() {
	if s.consumed {
		panic(zerr.With(zerr.With(domain.ErrInconsistentInput, "reason", "target spec already planned"),
			"target", s.label.String()))
	}
}

// Label returns the label of the target being planned.
func (s *TargetSpec) Label() domain.Label {
	return s.label
}

// AddPublicHeaders adds headers made visible to dependents. They are not compiled.
func (s *TargetSpec) AddPublicHeaders(headers ...domain.Artifact) *TargetSpec {
	s.checkMutable()
	s.publicHeaders = append(s.publicHeaders, headers...)
	return s
}

// AddSources adds files to compile. Headers among them are neither compiled nor exposed.
func (s *TargetSpec) AddSources(sources ...domain.Artifact) *TargetSpec {
	s.checkMutable()
	s.sources = append(s.sources, sources...)
	return s
}

// AddObjectFiles adds precompiled objects for non-PIC links.
func (s *TargetSpec) AddObjectFiles(objects ...domain.Artifact) *TargetSpec {
	s.checkMutable()
	s.objectFiles = append(s.objectFiles, objects...)
	return s
}

// AddPicObjectFiles adds precompiled objects for PIC links.
func (s *TargetSpec) AddPicObjectFiles(objects ...domain.Artifact) *TargetSpec {
	s.checkMutable()
	s.picObjectFiles = append(s.picObjectFiles, objects...)
	return s
}

// AddPicIndependentObjectFiles adds precompiled objects usable by both PIC and non-PIC links.
func (s *TargetSpec) AddPicIndependentObjectFiles(objects ...domain.Artifact) *TargetSpec {
	return s.AddPicObjectFiles(objects...).AddObjectFiles(objects...)
}

// AddCopts appends options to every compile command line.
func (s *TargetSpec) AddCopts(copts ...string) *TargetSpec {
	s.checkMutable()
	s.copts = append(s.copts, copts...)
	return s
}

// AddDeps adds dependencies, explicit ones as well as implicit runtime libraries.
func (s *TargetSpec) AddDeps(deps ...domain.Dependency) *TargetSpec {
	s.checkMutable()
	for _, d := range deps {
		if d != nil {
			s.deps = append(s.deps, d)
		}
	}
	return s
}

// AddPlugins adds compiler plugins. Dependencies that are not plugins are ignored.
func (s *TargetSpec) AddPlugins(plugins ...domain.Dependency) *TargetSpec {
	s.checkMutable()
	for _, d := range plugins {
		p, ok := d.(domain.Plugin)
		if !ok {
			continue
		}
		if info, ok := p.PluginInfo(); ok {
			s.plugins = append(s.plugins, info)
		}
	}
	return s
}

// SetAlwayslink makes the linker retain every member of the library's archive.
func (s *TargetSpec) SetAlwayslink(alwayslink bool) *TargetSpec {
	s.checkMutable()
	if alwayslink {
		s.linkType = domain.AlwaysLinkStaticLibrary
	} else {
		s.linkType = domain.StaticLibrary
	}
	return s
}

// SetHeadersCheckingMode sets the headers checking mode. Loose is the default.
func (s *TargetSpec) SetHeadersCheckingMode(mode domain.HeadersCheckingMode) *TargetSpec {
	s.checkMutable()
	s.headersCheckingMode = mode
	return s
}

// EnableNativeLibrariesProvider adds the transitive native library provider to the result.
func (s *TargetSpec) EnableNativeLibrariesProvider() *TargetSpec {
	s.checkMutable()
	s.emitNativeLibraries = true
	return s
}

// EnableSpecificLinkParamsProvider exposes link params through the specific provider
// instead of the generic one.
func (s *TargetSpec) EnableSpecificLinkParamsProvider() *TargetSpec {
	s.checkMutable()
	s.emitSpecificLinkParams = true
	return s
}

// DisableModuleMapGeneration turns off the module map for this target.
func (s *TargetSpec) DisableModuleMapGeneration() *TargetSpec {
	s.checkMutable()
	s.emitModuleMaps = false
	return s
}

// SetEnableLayeringCheck compiles against the module maps of the dependencies.
func (s *TargetSpec) SetEnableLayeringCheck(enable bool) *TargetSpec {
	s.checkMutable()
	s.enableLayeringCheck = enable
	return s
}

// DisableCompileActionsIfEmpty skips the compile step when there are no sources.
func (s *TargetSpec) DisableCompileActionsIfEmpty() *TargetSpec {
	s.checkMutable()
	s.emitCompileActionsIfEmpty = false
	return s
}

// consume marks the spec as planned and returns a private snapshot of it.
func (s *TargetSpec) consume() TargetSpec {
	s.checkMutable()
	s.consumed = true

	snapshot := *s
	snapshot.publicHeaders = slices.Clone(s.publicHeaders)
	snapshot.sources = slices.Clone(s.sources)
	snapshot.objectFiles = slices.Clone(s.objectFiles)
	snapshot.picObjectFiles = slices.Clone(s.picObjectFiles)
	snapshot.copts = slices.Clone(s.copts)
	snapshot.deps = slices.Clone(s.deps)
	snapshot.plugins = slices.Clone(s.plugins)
	return snapshot
}
