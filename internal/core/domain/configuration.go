package domain

// Default output roots, relative to the exec root.
const (
	DefaultGenfilesRoot = "bazel-out/genfiles"
	DefaultBinRoot      = "bazel-out/bin"
)

// Configuration is the C++ configuration fragment a target is planned under.
type Configuration struct {
	// GenfilesRoot is the output root for generated sources and headers.
	GenfilesRoot string
	// BinRoot is the output root for objects, archives and module maps.
	BinRoot string
	// ForcePic makes every link prefer PIC libraries.
	ForcePic bool
	// FdoRoot enables FDO label propagation when non-empty.
	FdoRoot string
	// LipoContextCollector is set when planning for a LIPO context collector build.
	LipoContextCollector bool
	// SaveTemps keeps preprocessed and assembly outputs of compilation.
	SaveTemps bool
	// Fission emits split debug info (.dwo) next to object files.
	Fission bool
}

// DefaultConfiguration returns a configuration with the default output roots.
func DefaultConfiguration() Configuration {
	return Configuration{
		GenfilesRoot: DefaultGenfilesRoot,
		BinRoot:      DefaultBinRoot,
	}
}

// GenfilesFragment returns the genfiles root used as a quote include directory.
func (c Configuration) GenfilesFragment() string {
	if c.GenfilesRoot == "" {
		return DefaultGenfilesRoot
	}
	return c.GenfilesRoot
}

// BinFragment returns the bin root.
func (c Configuration) BinFragment() string {
	if c.BinRoot == "" {
		return DefaultBinRoot
	}
	return c.BinRoot
}

// FdoEnabled reports whether an FDO root is configured.
func (c Configuration) FdoEnabled() bool {
	return c.FdoRoot != ""
}

// Toolchain is the C++ toolchain collaborator: its own headers and module map.
type Toolchain struct {
	// Context holds the toolchain's compilation context, merged into every target.
	Context *CompilationContext
	// ModuleMap is the toolchain's module map, if any.
	ModuleMap *ModuleMap
	// ModuleMaps reports whether the toolchain supports module maps at all.
	ModuleMaps bool
}

// SupportsModuleMaps reports whether module maps should be generated. A nil toolchain
// does not support them.
func (t *Toolchain) SupportsModuleMaps() bool {
	return t != nil && t.ModuleMaps
}

// CompilationContext returns the toolchain's compilation context, or nil.
func (t *Toolchain) CompilationContext() *CompilationContext {
	if t == nil {
		return nil
	}
	return t.Context
}

// CppModuleMap returns the toolchain's module map, or nil.
func (t *Toolchain) CppModuleMap() *ModuleMap {
	if t == nil {
		return nil
	}
	return t.ModuleMap
}
