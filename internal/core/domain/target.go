package domain

// WorkspaceFileName is the file a workspace is declared in.
const WorkspaceFileName = "ccplan.yaml"

// Target is a C/C++ library target declared in a workspace.
type Target struct {
	Label   Label
	Hdrs    []Artifact
	Srcs    []Artifact
	Objs    []Artifact
	Deps    []Label
	Plugins []Label
	Copts   []string
	// Data are extra files the target's dependents need at run time.
	Data []Artifact
	// Plugin is set when the target can be used as a compiler plugin.
	Plugin *PluginInfo

	Alwayslink           bool
	HeadersChecking      HeadersCheckingMode
	LayeringCheck        bool
	ModuleMaps           bool
	CompileIfEmpty       bool
	NativeLibraries      bool
	SpecificLinkParams   bool
	LipoContextCollector bool
}

// NewTarget returns a target with the default policy toggles.
func NewTarget(label Label) *Target {
	return &Target{
		Label:                label,
		ModuleMaps:           true,
		CompileIfEmpty:       true,
		LipoContextCollector: true,
	}
}

// Dependencies returns the explicit dependencies followed by the plugins.
func (t *Target) Dependencies() []Label {
	res := make([]Label, 0, len(t.Deps)+len(t.Plugins))
	res = append(res, t.Deps...)
	return append(res, t.Plugins...)
}

// Workspace is everything needed to plan the targets of a loaded workspace file.
type Workspace struct {
	Configuration Configuration
	Toolchain     *Toolchain
	// STL is the implicit standard library dependency of every other target, if set.
	STL   Label
	Graph *Graph
}

// ImplicitDeps returns the dependencies every target except label gets for free.
func (w *Workspace) ImplicitDeps(label Label) []Label {
	if w.STL.IsZero() || w.STL == label {
		return nil
	}
	return []Label{w.STL}
}
