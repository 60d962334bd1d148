// Package planner composes the compile and link actions of a C/C++ library target and
// the providers its dependents build against.
package planner

import (
	"context"

	"go.trai.ch/ccplan/internal/core/depset"
	"go.trai.ch/ccplan/internal/core/domain"
	"go.trai.ch/ccplan/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// ExecRootFragment is the quote include directory standing for the exec root.
	ExecRootFragment = "."
	// PregreppedExtension is appended to a generated header to name its inclusion list.
	PregreppedExtension = ".pregrepped"
)

// RuleContext is what the planner needs to know about the rule being planned besides
// its TargetSpec.
type RuleContext struct {
	Configuration domain.Configuration
	Toolchain     *domain.Toolchain
	// STL is the implicit standard library dependency, or nil.
	STL domain.Dependency
	// DeclaresLipoContextCollector reports whether the rule declares the lipo context
	// collector attribute. Planning fails without it.
	DeclaresLipoContextCollector bool
}

// Planner plans library targets. It keeps no state between calls and may be shared by
// concurrent Plan calls as long as its collaborators allow it.
type Planner struct {
	compiler  ports.Compiler
	linker    ports.Linker
	registrar ports.ActionRegistrar
	logger    ports.Logger
}

// New creates a Planner.
func New(compiler ports.Compiler, linker ports.Linker, registrar ports.ActionRegistrar, logger ports.Logger) *Planner {
	return &Planner{
		compiler:  compiler,
		linker:    linker,
		registrar: registrar,
		logger:    logger,
	}
}

// Plan consumes spec and creates the compile and link actions of the target together
// with its providers.
func (p *Planner) Plan(ctx context.Context, rule RuleContext, spec *TargetSpec) (*Info, error) {
	s := spec.consume()
	label := s.label.String()

	// Configuration errors are reported before any action is planned.
	if !rule.DeclaresLipoContextCollector {
		return nil, domain.NewConfigurationError(zerr.With(domain.ErrMissingLipoContextCollector, "target", label))
	}
	if !s.headersCheckingMode.Valid() {
		err := zerr.With(domain.ErrUnsupportedHeadersCheckingMode, "mode", s.headersCheckingMode.String())
		return nil, domain.NewConfigurationError(zerr.With(err, "target", label))
	}

	compilationContext, err := p.initializeCompilationContext(ctx, &s, rule)
	if err != nil {
		return nil, err
	}

	compilationOutputs := domain.NewCompilationOutputsBuilder().Build()
	compiled := s.emitCompileActionsIfEmpty || len(s.sources) > 0
	if compiled {
		compilationOutputs, err = p.compile(ctx, &s, rule, compilationContext)
		if err != nil {
			return nil, err
		}
	} else {
		p.logger.Debug("compile step skipped", "target", label)
	}

	linkingOutputs, err := p.link(ctx, &s, rule, compilationOutputs, compiled)
	if err != nil {
		return nil, err
	}

	providers := p.collectProviders(&s, rule, compilationContext, compilationOutputs, linkingOutputs)

	return &Info{
		providers:          providers,
		compilationOutputs: compilationOutputs,
		linkingOutputs:     linkingOutputs,
		compilationContext: compilationContext,
	}, nil
}

func (p *Planner) initializeCompilationContext(
	ctx context.Context,
	s *TargetSpec,
	rule RuleContext,
) (*domain.CompilationContext, error) {
	b := domain.NewCompilationContextBuilder()
	b.MergeDependentContexts(dependencyContexts(s.deps)...)
	b.MergeDependentContexts(contextOf(rule.STL), rule.Toolchain.CompilationContext())
	b.AddDeclaredIncludeSrcs(s.publicHeaders...)
	b.AddPregreppedHeaders(pregreppedHeaders(s.publicHeaders, rule.Configuration)...)

	// The exec root must precede the genfiles root so a source file wins over a stale
	// generated file with the same relative path.
	b.AddQuoteIncludeDir(ExecRootFragment)
	b.AddQuoteIncludeDir(rule.Configuration.GenfilesFragment())

	switch s.headersCheckingMode {
	case domain.HeadersCheckingWarn:
		b.AddDeclaredIncludeWarnDir(s.label.PackageFragment())
	case domain.HeadersCheckingLoose:
		b.AddDeclaredIncludeDir(s.label.PackageFragment())
	case domain.HeadersCheckingStrict:
		// Only the declared headers are visible.
	}

	if emitsModuleMap(s, rule) {
		mm := ModuleMapFor(s.label, rule.Configuration)
		b.SetModuleMap(mm)
		if err := p.registerModuleMap(ctx, s, rule, mm); err != nil {
			return nil, err
		}
	}

	return b.Build(), nil
}

func (p *Planner) compile(
	ctx context.Context,
	s *TargetSpec,
	rule RuleContext,
	compilationContext *domain.CompilationContext,
) (*domain.CompilationOutputs, error) {
	out, err := p.compiler.Compile(ctx, ports.CompileRequest{
		Label:          s.label,
		Sources:        s.sources,
		Copts:          s.copts,
		Plugins:        s.plugins,
		Context:        compilationContext,
		LinkTargetType: s.linkType,
		SaveTemps:      rule.Configuration.SaveTemps,
		EnableModules:  s.enableLayeringCheck,
		Configuration:  rule.Configuration,
	})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCompileFailed.Error()), "target", s.label.String())
	}

	// Injected objects serve PIC and non-PIC links alike.
	return domain.NewCompilationOutputsBuilder().
		Merge(out).
		AddObjectFiles(s.objectFiles...).
		AddPicObjectFiles(s.objectFiles...).
		AddPicObjectFiles(s.picObjectFiles...).
		Build(), nil
}

func (p *Planner) link(
	ctx context.Context,
	s *TargetSpec,
	rule RuleContext,
	outputs *domain.CompilationOutputs,
	compiled bool,
) (*domain.LinkingOutputs, error) {
	out, err := p.linker.Link(ctx, ports.LinkRequest{
		Label:                 s.label,
		Outputs:               outputs,
		LinkTargetType:        s.linkType,
		CompileActionsEmitted: compiled,
		Configuration:         rule.Configuration,
	})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrLinkFailed.Error()), "target", s.label.String())
	}
	if out == nil {
		return domain.EmptyLinkingOutputs(), nil
	}
	return out, nil
}

func (p *Planner) collectProviders(
	s *TargetSpec,
	rule RuleContext,
	compilationContext *domain.CompilationContext,
	compilationOutputs *domain.CompilationOutputs,
	linkingOutputs *domain.LinkingOutputs,
) *domain.Registry {
	reg := domain.NewRegistry().
		SetRunfiles(domain.CppRunfilesProvider{
			Static: collectCppRunfiles(s.deps, linkingOutputs, true),
			Shared: collectCppRunfiles(s.deps, linkingOutputs, false),
		}).
		SetCompilationContext(compilationContext).
		SetDebugFiles(collectDebugFiles(s.deps, compilationOutputs)).
		SetFdoProfilingInfo(collectTransitiveLipoInfo(s, rule)).
		SetTemps(collectTemps(rule.Configuration, compilationOutputs))

	if s.emitNativeLibraries {
		reg.SetNativeLibraries(collectNativeLibraries(s.deps, linkingOutputs))
	}
	reg.SetExecutionDynamicLibraries(collectExecutionDynamicLibraries(s.deps, linkingOutputs))

	var linkParams domain.LinkParamsProvider
	store := linkParamsStore(s.deps, linkingOutputs, rule.Configuration.ForcePic)
	if s.emitSpecificLinkParams {
		linkParams = domain.NewSpecificLinkParamsProvider(store)
	} else {
		linkParams = domain.NewGenericLinkParamsProvider(store)
	}
	reg.SetLinkParams(linkParams)

	p.logger.Debug("providers collected",
		"target", s.label.String(),
		"providers", len(reg.Tags()),
		"link_params", linkParams.Shape().String())
	return reg
}

func collectCppRunfiles(deps []domain.Dependency, linking *domain.LinkingOutputs, linkingStatically bool) domain.Runfiles {
	return domain.NewRunfilesBuilder().
		AddTargets(deps, domain.DefaultRunfiles).
		AddTargets(deps, domain.CppRunfiles(linkingStatically)).
		AddArtifacts(linking.LibrariesForRunfiles(linkingStatically)...).
		Build()
}

func collectDebugFiles(deps []domain.Dependency, outputs *domain.CompilationOutputs) domain.DebugFileProvider {
	dwo := depset.NewBuilder[domain.Artifact](depset.Stable).Direct(outputs.DwoFiles()...)
	picDwo := depset.NewBuilder[domain.Artifact](depset.Stable).Direct(outputs.PicDwoFiles()...)
	for _, dep := range deps {
		p, ok := providersOf(dep).DebugFiles()
		if !ok {
			continue
		}
		dwo.Transitive(p.Dwo)
		picDwo.Transitive(p.PicDwo)
	}
	return domain.DebugFileProvider{Dwo: dwo.Build(), PicDwo: picDwo.Build()}
}

func collectTransitiveLipoInfo(s *TargetSpec, rule RuleContext) domain.FdoProfilingInfo {
	if !rule.Configuration.FdoEnabled() {
		return domain.FdoProfilingInfo{}
	}

	b := depset.NewBuilder[domain.Label](depset.Stable)
	if rule.STL != nil {
		if p, ok := providersOf(rule.STL).FdoProfilingInfo(); ok {
			b.Transitive(p.TransitiveLipoLabels)
		}
	}
	for _, dep := range s.deps {
		if p, ok := providersOf(dep).FdoProfilingInfo(); ok {
			b.Transitive(p.TransitiveLipoLabels)
		}
	}
	b.Direct(s.label)
	return domain.FdoProfilingInfo{TransitiveLipoLabels: b.Build()}
}

func collectTemps(cfg domain.Configuration, outputs *domain.CompilationOutputs) domain.TempsProvider {
	if cfg.LipoContextCollector {
		return domain.TempsProvider{}
	}
	return domain.TempsProvider{Temps: outputs.Temps()}
}

func collectNativeLibraries(deps []domain.Dependency, linking *domain.LinkingOutputs) domain.NativeLibraryProvider {
	b := depset.NewBuilder[domain.LibraryToLink](depset.Link).Direct(linking.DynamicLibraries()...)
	for _, dep := range deps {
		if p, ok := providersOf(dep).NativeLibraries(); ok {
			b.Transitive(p.TransitiveNativeLibraries)
		}
	}
	return domain.NativeLibraryProvider{TransitiveNativeLibraries: b.Build()}
}

// collectExecutionDynamicLibraries prefers the target's own execution time libraries
// and only falls back to the dependencies' when it has none.
func collectExecutionDynamicLibraries(
	deps []domain.Dependency,
	linking *domain.LinkingOutputs,
) domain.ExecutionDynamicLibrariesProvider {
	if own := domain.LibraryArtifacts(linking.ExecutionDynamicLibraries()); len(own) > 0 {
		return domain.ExecutionDynamicLibrariesProvider{Artifacts: depset.Wrap(depset.Stable, own)}
	}

	b := depset.NewBuilder[domain.Artifact](depset.Stable)
	for _, dep := range deps {
		if p, ok := providersOf(dep).ExecutionDynamicLibraries(); ok {
			b.Transitive(p.Artifacts)
		}
	}
	return domain.ExecutionDynamicLibrariesProvider{Artifacts: b.Build()}
}

func linkParamsStore(deps []domain.Dependency, linking *domain.LinkingOutputs, forcePic bool) domain.LinkParamsStore {
	return domain.NewLinkParamsStore(func(b *domain.LinkParamsBuilder, linkingStatically, linkShared bool) {
		b.AddTransitiveTargets(deps...)
		b.AddLibraries(linking.PreferredLibraries(linkingStatically, linkShared || forcePic)...)
	})
}

// pregreppedHeaders pairs every generated header with the file listing its inclusions.
// Source headers are scanned in place.
func pregreppedHeaders(headers []domain.Artifact, cfg domain.Configuration) []domain.PregreppedHeader {
	var res []domain.PregreppedHeader
	for _, h := range headers {
		if h.IsSourceArtifact() {
			continue
		}
		res = append(res, domain.PregreppedHeader{
			Header:     h,
			Pregrepped: domain.NewDerivedArtifact(cfg.GenfilesFragment(), h.RootRelativePath()+PregreppedExtension),
		})
	}
	return res
}

var emptyRegistry = domain.NewRegistry()

// providersOf returns the registry of dep, or an empty one for non C++ dependencies.
func providersOf(dep domain.Dependency) *domain.Registry {
	if dep == nil || dep.Providers() == nil {
		return emptyRegistry
	}
	return dep.Providers()
}

func contextOf(dep domain.Dependency) *domain.CompilationContext {
	c, _ := providersOf(dep).CompilationContext()
	return c
}

func dependencyContexts(deps []domain.Dependency) []*domain.CompilationContext {
	res := make([]*domain.CompilationContext, 0, len(deps))
	for _, dep := range deps {
		if c := contextOf(dep); c != nil {
			res = append(res, c)
		}
	}
	return res
}
