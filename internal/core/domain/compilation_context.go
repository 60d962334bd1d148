package domain

import (
	"go.trai.ch/ccplan/internal/core/depset"
	"go.trai.ch/zerr"
)

// ModuleMap describes which headers of a target are visible to its dependents.
type ModuleMap struct {
	// Name is the module name, the owning target's label.
	Name string
	// Artifact is the module map file.
	Artifact Artifact
}

// PregreppedHeader pairs a header with the file listing its inclusions.
type PregreppedHeader struct {
	Header     Artifact
	Pregrepped Artifact
}

// CompilationContext is the immutable set of include paths, declared headers and module
// maps a target exposes to the compilations of its dependents.
type CompilationContext struct {
	quoteIncludeDirs        depset.Set[string]
	systemIncludeDirs       depset.Set[string]
	declaredIncludeDirs     depset.Set[string]
	declaredIncludeWarnDirs depset.Set[string]
	declaredIncludeSrcs     depset.Set[Artifact]
	pregreppedHeaders       depset.Set[PregreppedHeader]
	transitiveModuleMaps    depset.Set[ModuleMap]
	moduleMap               *ModuleMap
}

// QuoteIncludeDirs returns the directories searched for #include "..." in order.
func (c *CompilationContext) QuoteIncludeDirs() []string {
	return c.quoteIncludeDirs.ToList()
}

// SystemIncludeDirs returns the directories searched for #include <...> in order.
func (c *CompilationContext) SystemIncludeDirs() []string {
	return c.systemIncludeDirs.ToList()
}

// DeclaredIncludeDirs returns directories below which any header may be included.
func (c *CompilationContext) DeclaredIncludeDirs() depset.Set[string] {
	return c.declaredIncludeDirs
}

// DeclaredIncludeWarnDirs returns directories below which undeclared inclusions warn.
func (c *CompilationContext) DeclaredIncludeWarnDirs() depset.Set[string] {
	return c.declaredIncludeWarnDirs
}

// DeclaredIncludeSrcs returns the explicitly declared headers.
func (c *CompilationContext) DeclaredIncludeSrcs() depset.Set[Artifact] {
	return c.declaredIncludeSrcs
}

// PregreppedHeaders returns the header to pregrepped-file index.
func (c *CompilationContext) PregreppedHeaders() depset.Set[PregreppedHeader] {
	return c.pregreppedHeaders
}

// TransitiveModuleMaps returns the module maps of all transitive dependencies.
func (c *CompilationContext) TransitiveModuleMaps() depset.Set[ModuleMap] {
	return c.transitiveModuleMaps
}

// CppModuleMap returns the target's own module map, or nil.
func (c *CompilationContext) CppModuleMap() *ModuleMap {
	return c.moduleMap
}

// CompilationPrerequisites returns every artifact a compile action using this context
// needs: the declared headers and their pregrepped files.
func (c *CompilationContext) CompilationPrerequisites() []Artifact {
	b := depset.NewBuilder[Artifact](depset.Stable).Transitive(c.declaredIncludeSrcs)
	for _, p := range c.pregreppedHeaders.ToList() {
		b.Direct(p.Pregrepped)
	}
	return b.Build().ToList()
}

// CompilationContextBuilder accumulates a CompilationContext. Build is terminal.
type CompilationContextBuilder struct {
	quoteIncludeDirs        *depset.Builder[string]
	systemIncludeDirs       *depset.Builder[string]
	declaredIncludeDirs     *depset.Builder[string]
	declaredIncludeWarnDirs *depset.Builder[string]
	declaredIncludeSrcs     *depset.Builder[Artifact]
	pregreppedHeaders       *depset.Builder[PregreppedHeader]
	transitiveModuleMaps    *depset.Builder[ModuleMap]
	moduleMap               *ModuleMap
	built                   bool
}

// NewCompilationContextBuilder returns an empty builder.
func NewCompilationContextBuilder() *CompilationContextBuilder {
	return &CompilationContextBuilder{
		quoteIncludeDirs:        depset.NewBuilder[string](depset.Compile),
		systemIncludeDirs:       depset.NewBuilder[string](depset.Compile),
		declaredIncludeDirs:     depset.NewBuilder[string](depset.Stable),
		declaredIncludeWarnDirs: depset.NewBuilder[string](depset.Stable),
		declaredIncludeSrcs:     depset.NewBuilder[Artifact](depset.Stable),
		pregreppedHeaders:       depset.NewBuilder[PregreppedHeader](depset.Stable),
		transitiveModuleMaps:    depset.NewBuilder[ModuleMap](depset.Stable),
	}
}

func (b *CompilationContextBuilder) checkMutable() {
	if b.built {
		panic(zerr.With(ErrInconsistentInput, "reason", "compilation context already built"))
	}
}

// MergeDependentContexts folds the given contexts into the builder. Nil contexts are skipped.
func (b *CompilationContextBuilder) MergeDependentContexts(contexts ...*CompilationContext) *CompilationContextBuilder {
	b.checkMutable()
	for _, c := range contexts {
		if c == nil {
			continue
		}
		b.quoteIncludeDirs.Transitive(c.quoteIncludeDirs)
		b.systemIncludeDirs.Transitive(c.systemIncludeDirs)
		b.declaredIncludeDirs.Transitive(c.declaredIncludeDirs)
		b.declaredIncludeWarnDirs.Transitive(c.declaredIncludeWarnDirs)
		b.declaredIncludeSrcs.Transitive(c.declaredIncludeSrcs)
		b.pregreppedHeaders.Transitive(c.pregreppedHeaders)
		b.transitiveModuleMaps.Transitive(c.transitiveModuleMaps)
		if c.moduleMap != nil {
			b.transitiveModuleMaps.Direct(*c.moduleMap)
		}
	}
	return b
}

// AddDeclaredIncludeSrcs declares headers that may be included by dependents.
func (b *CompilationContextBuilder) AddDeclaredIncludeSrcs(headers ...Artifact) *CompilationContextBuilder {
	b.checkMutable()
	b.declaredIncludeSrcs.Direct(headers...)
	return b
}

// AddQuoteIncludeDir adds a directory to the quote include path.
func (b *CompilationContextBuilder) AddQuoteIncludeDir(dir string) *CompilationContextBuilder {
	b.checkMutable()
	b.quoteIncludeDirs.Direct(dir)
	return b
}

// AddSystemIncludeDir adds a directory to the system include path.
func (b *CompilationContextBuilder) AddSystemIncludeDir(dir string) *CompilationContextBuilder {
	b.checkMutable()
	b.systemIncludeDirs.Direct(dir)
	return b
}

// AddDeclaredIncludeDir declares every header below dir.
func (b *CompilationContextBuilder) AddDeclaredIncludeDir(dir string) *CompilationContextBuilder {
	b.checkMutable()
	b.declaredIncludeDirs.Direct(dir)
	return b
}

// AddDeclaredIncludeWarnDir declares headers below dir with a warning on use.
func (b *CompilationContextBuilder) AddDeclaredIncludeWarnDir(dir string) *CompilationContextBuilder {
	b.checkMutable()
	b.declaredIncludeWarnDirs.Direct(dir)
	return b
}

// AddPregreppedHeaders records pregrepped files for headers.
func (b *CompilationContextBuilder) AddPregreppedHeaders(headers ...PregreppedHeader) *CompilationContextBuilder {
	b.checkMutable()
	b.pregreppedHeaders.Direct(headers...)
	return b
}

// SetModuleMap sets the target's own module map.
func (b *CompilationContextBuilder) SetModuleMap(m ModuleMap) *CompilationContextBuilder {
	b.checkMutable()
	b.moduleMap = &m
	return b
}

// Build returns the immutable context. The builder cannot be used afterwards.
func (b *CompilationContextBuilder) Build() *CompilationContext {
	b.checkMutable()
	b.built = true
	return &CompilationContext{
		quoteIncludeDirs:        b.quoteIncludeDirs.Build(),
		systemIncludeDirs:       b.systemIncludeDirs.Build(),
		declaredIncludeDirs:     b.declaredIncludeDirs.Build(),
		declaredIncludeWarnDirs: b.declaredIncludeWarnDirs.Build(),
		declaredIncludeSrcs:     b.declaredIncludeSrcs.Build(),
		pregreppedHeaders:       b.pregreppedHeaders.Build(),
		transitiveModuleMaps:    b.transitiveModuleMaps.Build(),
		moduleMap:               b.moduleMap,
	}
}
