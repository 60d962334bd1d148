package domain

import (
	"slices"

	"go.trai.ch/ccplan/internal/core/depset"
	"go.trai.ch/zerr"
)

// ProviderTag names one capability a planned target exposes to its dependents.
type ProviderTag int

const (
	// RunfilesTag tags the C++ runfiles provider.
	RunfilesTag ProviderTag = iota
	// CompilationContextTag tags the compilation context.
	CompilationContextTag
	// DebugFileTag tags the split debug info provider.
	DebugFileTag
	// FdoProfilingInfoTag tags the FDO/LIPO label provider.
	FdoProfilingInfoTag
	// TempsTag tags the compilation intermediates provider.
	TempsTag
	// NativeLibraryTag tags the transitive native library provider.
	NativeLibraryTag
	// ExecutionDynamicLibrariesTag tags the execution time shared object provider.
	ExecutionDynamicLibrariesTag
	// LinkParamsTag tags the link params provider, in either of its two shapes.
	LinkParamsTag
)

// mandatoryTags are populated for every planned target.
var mandatoryTags = []ProviderTag{
	RunfilesTag,
	CompilationContextTag,
	DebugFileTag,
	FdoProfilingInfoTag,
	TempsTag,
	ExecutionDynamicLibrariesTag,
	LinkParamsTag,
}

// String returns the provider name.
func (t ProviderTag) String() string {
	switch t {
	case RunfilesTag:
		return "CppRunfilesProvider"
	case CompilationContextTag:
		return "CppCompilationContext"
	case DebugFileTag:
		return "CppDebugFileProvider"
	case FdoProfilingInfoTag:
		return "FdoProfilingInfoProvider"
	case TempsTag:
		return "TempsProvider"
	case NativeLibraryTag:
		return "CcNativeLibraryProvider"
	case ExecutionDynamicLibrariesTag:
		return "CcExecutionDynamicLibrariesProvider"
	case LinkParamsTag:
		return "CcLinkParamsProvider"
	default:
		return "UnknownProvider"
	}
}

// CppRunfilesProvider holds the runfiles for statically and dynamically linked consumers.
type CppRunfilesProvider struct {
	Static Runfiles
	Shared Runfiles
}

// RunfilesFor returns the runfiles for the given link shape.
func (p CppRunfilesProvider) RunfilesFor(linkingStatically bool) Runfiles {
	if linkingStatically {
		return p.Static
	}
	return p.Shared
}

// DebugFileProvider holds the transitive split debug info files.
type DebugFileProvider struct {
	Dwo    depset.Set[Artifact]
	PicDwo depset.Set[Artifact]
}

// FdoProfilingInfo holds the labels of the targets taking part in a LIPO build.
type FdoProfilingInfo struct {
	TransitiveLipoLabels depset.Set[Label]
}

// TempsProvider holds the preprocessed and assembly intermediates of the target.
type TempsProvider struct {
	Temps []Artifact
}

// NativeLibraryProvider holds the transitive shared libraries.
type NativeLibraryProvider struct {
	TransitiveNativeLibraries depset.Set[LibraryToLink]
}

// ExecutionDynamicLibrariesProvider holds the execution time shared objects.
type ExecutionDynamicLibrariesProvider struct {
	Artifacts depset.Set[Artifact]
}

// LinkParamsShape distinguishes the two mutually exclusive link params providers.
type LinkParamsShape int

const (
	// GenericLinkParams is consumed by every C++ rule.
	GenericLinkParams LinkParamsShape = iota
	// SpecificLinkParams is consumed only by a narrower set of rules.
	SpecificLinkParams
)

// String returns the shape name.
func (s LinkParamsShape) String() string {
	if s == SpecificLinkParams {
		return "specific"
	}
	return "generic"
}

// LinkParamsProvider is one of GenericLinkParamsProvider or SpecificLinkParamsProvider.
type LinkParamsProvider interface {
	Shape() LinkParamsShape
	Store() LinkParamsStore
	isLinkParamsProvider()
}

// GenericLinkParamsProvider is the link params provider most targets expose.
type GenericLinkParamsProvider struct {
	store LinkParamsStore
}

// NewGenericLinkParamsProvider wraps store.
func NewGenericLinkParamsProvider(store LinkParamsStore) GenericLinkParamsProvider {
	return GenericLinkParamsProvider{store: store}
}

// Shape returns GenericLinkParams.
func (GenericLinkParamsProvider) Shape() LinkParamsShape { return GenericLinkParams }

// Store returns the link params store.
func (p GenericLinkParamsProvider) Store() LinkParamsStore { return storeOrEmpty(p.store) }

func (GenericLinkParamsProvider) isLinkParamsProvider() {}

// SpecificLinkParamsProvider is the link params provider of targets only a narrower set
// of rules consume.
type SpecificLinkParamsProvider struct {
	store LinkParamsStore
}

// NewSpecificLinkParamsProvider wraps store.
func NewSpecificLinkParamsProvider(store LinkParamsStore) SpecificLinkParamsProvider {
	return SpecificLinkParamsProvider{store: store}
}

// Shape returns SpecificLinkParams.
func (SpecificLinkParamsProvider) Shape() LinkParamsShape { return SpecificLinkParams }

// Store returns the link params store.
func (p SpecificLinkParamsProvider) Store() LinkParamsStore { return storeOrEmpty(p.store) }

func (SpecificLinkParamsProvider) isLinkParamsProvider() {}

func storeOrEmpty(s LinkParamsStore) LinkParamsStore {
	if s == nil {
		return EmptyLinkParamsStore()
	}
	return s
}

// Registry maps each provider tag to at most one provider. Every tag except the link
// params one may be set only once; the link params tag holds a single value of either
// shape, so both shapes can never be present together.
type Registry struct {
	tags []ProviderTag

	runfiles           *CppRunfilesProvider
	compilationContext *CompilationContext
	debugFiles         *DebugFileProvider
	fdo                *FdoProfilingInfo
	temps              *TempsProvider
	nativeLibraries    *NativeLibraryProvider
	execDynamicLibs    *ExecutionDynamicLibrariesProvider
	linkParams         LinkParamsProvider
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) claim(tag ProviderTag, taken bool) {
	if taken {
		panic(zerr.With(ErrDuplicateProvider, "provider", tag.String()))
	}
	r.tags = append(r.tags, tag)
}

// SetRunfiles sets the C++ runfiles provider.
func (r *Registry) SetRunfiles(p CppRunfilesProvider) *Registry {
	r.claim(RunfilesTag, r.runfiles != nil)
	r.runfiles = &p
	return r
}

// SetCompilationContext sets the compilation context. c must not be nil.
func (r *Registry) SetCompilationContext(c *CompilationContext) *Registry {
	if c == nil {
		panic(zerr.With(ErrInconsistentInput, "provider", CompilationContextTag.String()))
	}
	r.claim(CompilationContextTag, r.compilationContext != nil)
	r.compilationContext = c
	return r
}

// SetDebugFiles sets the split debug info provider.
func (r *Registry) SetDebugFiles(p DebugFileProvider) *Registry {
	r.claim(DebugFileTag, r.debugFiles != nil)
	r.debugFiles = &p
	return r
}

// SetFdoProfilingInfo sets the FDO label provider.
func (r *Registry) SetFdoProfilingInfo(p FdoProfilingInfo) *Registry {
	r.claim(FdoProfilingInfoTag, r.fdo != nil)
	r.fdo = &p
	return r
}

// SetTemps sets the intermediates provider.
func (r *Registry) SetTemps(p TempsProvider) *Registry {
	r.claim(TempsTag, r.temps != nil)
	r.temps = &p
	return r
}

// SetNativeLibraries sets the native library provider.
func (r *Registry) SetNativeLibraries(p NativeLibraryProvider) *Registry {
	r.claim(NativeLibraryTag, r.nativeLibraries != nil)
	r.nativeLibraries = &p
	return r
}

// SetExecutionDynamicLibraries sets the execution time shared object provider.
func (r *Registry) SetExecutionDynamicLibraries(p ExecutionDynamicLibrariesProvider) *Registry {
	r.claim(ExecutionDynamicLibrariesTag, r.execDynamicLibs != nil)
	r.execDynamicLibs = &p
	return r
}

// SetLinkParams sets the link params provider. Setting it again replaces the previous
// value, whatever its shape.
func (r *Registry) SetLinkParams(p LinkParamsProvider) *Registry {
	if r.linkParams == nil {
		r.tags = append(r.tags, LinkParamsTag)
	}
	r.linkParams = p
	return r
}

// Runfiles returns the C++ runfiles provider.
func (r *Registry) Runfiles() (CppRunfilesProvider, bool) {
	if r.runfiles == nil {
		return CppRunfilesProvider{}, false
	}
	return *r.runfiles, true
}

// CompilationContext returns the compilation context.
func (r *Registry) CompilationContext() (*CompilationContext, bool) {
	return r.compilationContext, r.compilationContext != nil
}

// DebugFiles returns the split debug info provider.
func (r *Registry) DebugFiles() (DebugFileProvider, bool) {
	if r.debugFiles == nil {
		return DebugFileProvider{}, false
	}
	return *r.debugFiles, true
}

// FdoProfilingInfo returns the FDO label provider.
func (r *Registry) FdoProfilingInfo() (FdoProfilingInfo, bool) {
	if r.fdo == nil {
		return FdoProfilingInfo{}, false
	}
	return *r.fdo, true
}

// Temps returns the intermediates provider.
func (r *Registry) Temps() (TempsProvider, bool) {
	if r.temps == nil {
		return TempsProvider{}, false
	}
	return *r.temps, true
}

// NativeLibraries returns the native library provider.
func (r *Registry) NativeLibraries() (NativeLibraryProvider, bool) {
	if r.nativeLibraries == nil {
		return NativeLibraryProvider{}, false
	}
	return *r.nativeLibraries, true
}

// ExecutionDynamicLibraries returns the execution time shared object provider.
func (r *Registry) ExecutionDynamicLibraries() (ExecutionDynamicLibrariesProvider, bool) {
	if r.execDynamicLibs == nil {
		return ExecutionDynamicLibrariesProvider{}, false
	}
	return *r.execDynamicLibs, true
}

// LinkParams returns the link params provider, whichever shape it has.
func (r *Registry) LinkParams() (LinkParamsProvider, bool) {
	return r.linkParams, r.linkParams != nil
}

// GenericLinkParams returns the store of a generic link params provider.
func (r *Registry) GenericLinkParams() (LinkParamsStore, bool) {
	if p, ok := r.linkParams.(GenericLinkParamsProvider); ok {
		return p.Store(), true
	}
	return nil, false
}

// SpecificLinkParams returns the store of a specific link params provider.
func (r *Registry) SpecificLinkParams() (LinkParamsStore, bool) {
	if p, ok := r.linkParams.(SpecificLinkParamsProvider); ok {
		return p.Store(), true
	}
	return nil, false
}

// Tags returns the populated tags in insertion order.
func (r *Registry) Tags() []ProviderTag {
	return slices.Clone(r.tags)
}

// Has reports whether tag is populated.
func (r *Registry) Has(tag ProviderTag) bool {
	return slices.Contains(r.tags, tag)
}

// Complete reports whether every provider a planned target must expose is populated.
func (r *Registry) Complete() bool {
	for _, tag := range mandatoryTags {
		if !r.Has(tag) {
			return false
		}
	}
	return true
}

// PluginInfo describes a compiler plugin.
type PluginInfo struct {
	Label    Label
	Artifact Artifact
}

// Dependency is a handle to an already planned target.
type Dependency interface {
	// Label returns the dependency's label.
	Label() Label
	// Providers returns the dependency's providers. It may be nil for targets that are
	// not C++ targets.
	Providers() *Registry
	// DefaultRunfiles returns the dependency's default runfiles.
	DefaultRunfiles() Runfiles
}

// Plugin is a dependency that may act as a compiler plugin.
type Plugin interface {
	PluginInfo() (PluginInfo, bool)
}

// PlannedTarget is the Dependency implementation for targets planned in this process.
type PlannedTarget struct {
	label           Label
	providers       *Registry
	defaultRunfiles Runfiles
	plugin          *PluginInfo
}

// NewPlannedTarget returns a dependency handle for a planned target.
func NewPlannedTarget(label Label, providers *Registry, defaultRunfiles Runfiles) *PlannedTarget {
	return &PlannedTarget{label: label, providers: providers, defaultRunfiles: defaultRunfiles}
}

// WithPlugin returns a copy of t that also acts as a compiler plugin.
func (t *PlannedTarget) WithPlugin(info PluginInfo) *PlannedTarget {
	c := *t
	c.plugin = &info
	return &c
}

// Label returns the target's label.
func (t *PlannedTarget) Label() Label { return t.label }

// Providers returns the target's providers.
func (t *PlannedTarget) Providers() *Registry { return t.providers }

// DefaultRunfiles returns the target's default runfiles.
func (t *PlannedTarget) DefaultRunfiles() Runfiles { return t.defaultRunfiles }

// PluginInfo returns the plugin info if the target is a compiler plugin.
func (t *PlannedTarget) PluginInfo() (PluginInfo, bool) {
	if t.plugin == nil {
		return PluginInfo{}, false
	}
	return *t.plugin, true
}
