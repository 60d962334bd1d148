// Package config provides the workspace loader for ccplan.
package config

import (
	"maps"
	"os"
	"path"
	"path/filepath"
	"slices"

	"go.trai.ch/ccplan/internal/core/domain"
	"go.trai.ch/ccplan/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the only workspace file version understood by the loader.
const SupportedVersion = "1"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the workspace file at path. A directory means the ccplan.yaml inside it.
func (l *Loader) Load(configPath string) (*domain.Workspace, error) {
	if info, err := os.Stat(configPath); err == nil && info.IsDir() {
		configPath = filepath.Join(configPath, domain.WorkspaceFileName)
	}

	var workfile Workfile
	if err := readAndUnmarshalYAML(configPath, &workfile); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	if workfile.Version != "" && workfile.Version != SupportedVersion {
		l.Logger.Warn("unknown workspace version " + workfile.Version + " in " + configPath + ", reading it as version " + SupportedVersion)
	}

	ws, err := l.buildWorkspace(&workfile)
	if err != nil {
		return nil, zerr.With(err, "path", configPath)
	}
	return ws, nil
}

func (l *Loader) buildWorkspace(workfile *Workfile) (*domain.Workspace, error) {
	cfg := buildConfiguration(workfile.Configuration)

	ws := &domain.Workspace{
		Configuration: cfg,
		Toolchain:     buildToolchain(workfile.Toolchain),
		Graph:         domain.NewGraph(),
	}

	if workfile.STL != "" {
		stl, err := domain.ParseLabel(workfile.STL)
		if err != nil {
			return nil, zerr.With(err, "field", "stl")
		}
		ws.STL = stl
	}

	// Map iteration order is random; sort so errors and warnings are reproducible.
	keys := slices.Sorted(maps.Keys(workfile.Targets))
	labels := make([]domain.Label, 0, len(keys))
	for _, key := range keys {
		target, err := l.buildTarget(key, workfile.Targets[key], cfg)
		if err != nil {
			return nil, err
		}
		if err := ws.Graph.AddTarget(target); err != nil {
			return nil, err
		}
		labels = append(labels, target.Label)
	}

	if !ws.STL.IsZero() {
		if _, ok := ws.Graph.Target(ws.STL); !ok {
			return nil, zerr.With(zerr.With(domain.ErrMissingDependency, "field", "stl"), "dependency", ws.STL.String())
		}
		for _, label := range labels {
			for _, implicit := range ws.ImplicitDeps(label) {
				ws.Graph.AddImplicitEdge(label, implicit)
			}
		}
	}

	if err := ws.Graph.Validate(); err != nil {
		return nil, err
	}
	return ws, nil
}

func buildConfiguration(dto ConfigurationDTO) domain.Configuration {
	cfg := domain.DefaultConfiguration()
	if dto.Genfiles != "" {
		cfg.GenfilesRoot = path.Clean(dto.Genfiles)
	}
	if dto.Bin != "" {
		cfg.BinRoot = path.Clean(dto.Bin)
	}
	cfg.ForcePic = dto.ForcePic
	cfg.FdoRoot = dto.FdoRoot
	cfg.LipoContextCollector = dto.LipoContextCollector
	cfg.SaveTemps = dto.SaveTemps
	cfg.Fission = dto.Fission
	return cfg
}

func buildToolchain(dto ToolchainDTO) *domain.Toolchain {
	tc := &domain.Toolchain{ModuleMaps: dto.ModuleMaps}

	if len(dto.Headers) > 0 || len(dto.IncludeDirs) > 0 {
		b := domain.NewCompilationContextBuilder().
			AddDeclaredIncludeSrcs(domain.NewSourceArtifacts(canonicalPaths(dto.Headers)...)...)
		for _, dir := range canonicalPaths(dto.IncludeDirs) {
			b.AddSystemIncludeDir(dir)
		}
		tc.Context = b.Build()
	}

	if dto.ModuleMap != "" {
		artifact := domain.NewSourceArtifact(path.Clean(dto.ModuleMap))
		tc.ModuleMap = &domain.ModuleMap{Name: "crosstool", Artifact: artifact}
	}
	return tc
}

func (l *Loader) buildTarget(key string, dto TargetDTO, cfg domain.Configuration) (*domain.Target, error) {
	label, err := domain.ParseLabel(key)
	if err != nil {
		return nil, err
	}
	if label.String() != key {
		l.Logger.Warn("target " + key + " is declared as " + label.String())
	}

	mode, err := domain.ParseHeadersCheckingMode(dto.HeadersChecking)
	if err != nil {
		return nil, zerr.With(err, "target", key)
	}

	target := domain.NewTarget(label)
	target.Hdrs = domain.NewSourceArtifacts(canonicalPaths(dto.Hdrs)...)
	for _, hdr := range canonicalPaths(dto.GeneratedHdrs) {
		target.Hdrs = append(target.Hdrs, domain.NewDerivedArtifact(cfg.GenfilesFragment(), hdr))
	}
	target.Srcs = domain.NewSourceArtifacts(canonicalPaths(dto.Srcs)...)
	target.Objs = domain.NewSourceArtifacts(canonicalPaths(dto.Objs)...)
	target.Data = domain.NewSourceArtifacts(canonicalPaths(dto.Data)...)
	target.Copts = dto.Copts

	if target.Deps, err = parseLabels(dto.Deps); err != nil {
		return nil, zerr.With(zerr.With(err, "field", "deps"), "target", key)
	}
	if target.Plugins, err = parseLabels(dto.Plugins); err != nil {
		return nil, zerr.With(zerr.With(err, "field", "plugins"), "target", key)
	}
	if dto.Plugin != "" {
		target.Plugin = &domain.PluginInfo{Label: label, Artifact: domain.NewSourceArtifact(path.Clean(dto.Plugin))}
	}

	for _, src := range target.Srcs {
		if !src.IsCompilable() && !src.IsHeader() && !src.IsObject() {
			l.Logger.Warn("source " + src.ExecPath() + " of " + key + " is neither compiled nor a header")
		}
	}

	target.Alwayslink = dto.Alwayslink
	target.HeadersChecking = mode
	target.LayeringCheck = dto.LayeringCheck
	target.ModuleMaps = boolOr(dto.ModuleMaps, true)
	target.CompileIfEmpty = boolOr(dto.CompileIfEmpty, true)
	target.NativeLibraries = dto.NativeLibraries
	target.SpecificLinkParams = dto.SpecificLinkParams
	target.LipoContextCollector = boolOr(dto.LipoContextCollector, true)
	return target, nil
}

func parseLabels(strs []string) ([]domain.Label, error) {
	res := make([]domain.Label, 0, len(strs))
	for _, s := range strs {
		label, err := domain.ParseLabel(s)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(res, label) {
			res = append(res, label)
		}
	}
	return res, nil
}

// canonicalPaths cleans paths and removes duplicates, keeping declaration order since
// sources compile and link in that order.
func canonicalPaths(paths []string) []string {
	res := make([]string, 0, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		p = path.Clean(p)
		if !slices.Contains(res, p) {
			res = append(res, p)
		}
	}
	return res
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is provided by the user
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
