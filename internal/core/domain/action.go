package domain

// ActionKind is the kind of a planned build action.
type ActionKind int

const (
	// CompileAction compiles one source file into an object file.
	CompileAction ActionKind = iota
	// ArchiveAction bundles object files into a static library.
	ArchiveAction
	// DynamicLinkAction links object files into a shared object.
	DynamicLinkAction
	// ModuleMapAction writes a module map file.
	ModuleMapAction
)

// Mnemonic returns the short action name shown to users.
func (k ActionKind) Mnemonic() string {
	switch k {
	case CompileAction:
		return "CppCompile"
	case ArchiveAction:
		return "CppArchive"
	case DynamicLinkAction:
		return "CppLink"
	case ModuleMapAction:
		return "CppModuleMap"
	default:
		return "Unknown"
	}
}

// Action is a planned build step. The composer only decides that an action exists and
// what it consumes and produces; executing it is somebody else's job.
type Action struct {
	Kind    ActionKind
	Owner   Label
	Inputs  []Artifact
	Outputs []Artifact
	Args    []string
	// Key identifies the action by its content. It is filled in on registration.
	Key string
}

// PrimaryOutput returns the first output, or the zero artifact.
func (a Action) PrimaryOutput() Artifact {
	if len(a.Outputs) == 0 {
		return Artifact{}
	}
	return a.Outputs[0]
}
