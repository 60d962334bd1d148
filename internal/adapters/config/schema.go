package config

// Workfile is the structure of a ccplan.yaml workspace file.
type Workfile struct {
	Version       string               `yaml:"version"`
	Configuration ConfigurationDTO     `yaml:"configuration"`
	Toolchain     ToolchainDTO         `yaml:"toolchain"`
	STL           string               `yaml:"stl"`
	Targets       map[string]TargetDTO `yaml:"targets"`
}

// ConfigurationDTO is the C++ configuration every target is planned under.
type ConfigurationDTO struct {
	Genfiles             string `yaml:"genfiles"`
	Bin                  string `yaml:"bin"`
	ForcePic             bool   `yaml:"force_pic"`
	FdoRoot              string `yaml:"fdo_root"`
	LipoContextCollector bool   `yaml:"lipo_context_collector"`
	SaveTemps            bool   `yaml:"save_temps"`
	Fission              bool   `yaml:"fission"`
}

// ToolchainDTO describes the C++ toolchain.
type ToolchainDTO struct {
	ModuleMaps  bool     `yaml:"module_maps"`
	ModuleMap   string   `yaml:"module_map"`
	Headers     []string `yaml:"headers"`
	IncludeDirs []string `yaml:"include_dirs"`
}

// TargetDTO is a library target definition. Pointer fields default to true.
type TargetDTO struct {
	Hdrs          []string `yaml:"hdrs"`
	GeneratedHdrs []string `yaml:"generated_hdrs"`
	Srcs          []string `yaml:"srcs"`
	Objs          []string `yaml:"objs"`
	Deps          []string `yaml:"deps"`
	Copts         []string `yaml:"copts"`
	Plugins       []string `yaml:"plugins"`
	Data          []string `yaml:"data"`
	Plugin        string   `yaml:"plugin"`

	Alwayslink           bool   `yaml:"alwayslink"`
	HeadersChecking      string `yaml:"headers_checking"`
	LayeringCheck        bool   `yaml:"layering_check"`
	ModuleMaps           *bool  `yaml:"module_maps"`
	CompileIfEmpty       *bool  `yaml:"compile_if_empty"`
	NativeLibraries      bool   `yaml:"native_libraries"`
	SpecificLinkParams   bool   `yaml:"specific_link_params"`
	LipoContextCollector *bool  `yaml:"lipo_context_collector"`
}
