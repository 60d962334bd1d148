package planner_test

import (
	"context"
	"path"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/ccplan/internal/core/domain"
	"go.trai.ch/ccplan/internal/core/ports"
	"go.trai.ch/ccplan/internal/core/ports/mocks"
	"go.trai.ch/ccplan/internal/engine/planner"
	"go.uber.org/mock/gomock"
)

const bin = domain.DefaultBinRoot

type fixture struct {
	compiler  *mocks.MockCompiler
	linker    *mocks.MockLinker
	registrar *mocks.MockActionRegistrar
	planner   *planner.Planner
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()

	f := &fixture{
		compiler:  mocks.NewMockCompiler(ctrl),
		linker:    mocks.NewMockLinker(ctrl),
		registrar: mocks.NewMockActionRegistrar(ctrl),
	}
	f.planner = planner.New(f.compiler, f.linker, f.registrar, logger)
	return f
}

// expectBuild answers compile and link requests with path deriving fakes.
func (f *fixture) expectBuild() *fixture {
	f.compiler.EXPECT().Compile(gomock.Any(), gomock.Any()).DoAndReturn(compileObjects).AnyTimes()
	f.linker.EXPECT().Link(gomock.Any(), gomock.Any()).DoAndReturn(linkLibraries).AnyTimes()
	return f
}

func (f *fixture) plan(t *testing.T, rule planner.RuleContext, spec *planner.TargetSpec) *planner.Info {
	t.Helper()
	info, err := f.planner.Plan(context.Background(), rule, spec)
	require.NoError(t, err)
	require.NotNil(t, info)
	return info
}

func defaultRule() planner.RuleContext {
	return planner.RuleContext{
		Configuration:                domain.DefaultConfiguration(),
		DeclaresLipoContextCollector: true,
	}
}

func label(s string) domain.Label {
	return domain.MustParseLabel(s)
}

func src(paths ...string) []domain.Artifact {
	return domain.NewSourceArtifacts(paths...)
}

func compileObjects(_ context.Context, req ports.CompileRequest) (*domain.CompilationOutputs, error) {
	b := domain.NewCompilationOutputsBuilder()
	for _, s := range req.Sources {
		if !s.IsCompilable() {
			continue
		}
		base := path.Join(req.Label.Package, "_objs", req.Label.Name, path.Base(s.Stem()))
		b.AddObjectFiles(domain.NewDerivedArtifact(bin, base+".o"))
		b.AddPicObjectFiles(domain.NewDerivedArtifact(bin, base+".pic.o"))
		if req.SaveTemps {
			b.AddTemps(domain.NewDerivedArtifact(bin, base+".ii"))
		}
		if req.Configuration.Fission {
			b.AddDwoFiles(domain.NewDerivedArtifact(bin, base+".dwo"))
			b.AddPicDwoFiles(domain.NewDerivedArtifact(bin, base+".pic.dwo"))
		}
	}
	return b.Build(), nil
}

func linkLibraries(_ context.Context, req ports.LinkRequest) (*domain.LinkingOutputs, error) {
	objects, picObjects := req.Outputs.ObjectFiles(), req.Outputs.PicObjectFiles()
	if len(objects) == 0 && len(picObjects) == 0 {
		return domain.EmptyLinkingOutputs(), nil
	}

	prefix := path.Join(req.Label.Package, "lib"+req.Label.Name)
	b := domain.NewLinkingOutputsBuilder()
	if len(objects) > 0 {
		b.AddStaticLibrary(libraryOf(prefix, req.LinkTargetType))
	}
	if len(picObjects) > 0 {
		so := libraryOf(prefix, domain.DynamicLibrary)
		b.AddPicStaticLibrary(libraryOf(prefix, req.LinkTargetType.Pic())).
			AddDynamicLibrary(so).
			AddExecutionDynamicLibrary(so)
	}
	return b.Build(), nil
}

func libraryOf(prefix string, kind domain.LinkTargetType) domain.LibraryToLink {
	return domain.LibraryToLink{Artifact: domain.NewDerivedArtifact(bin, prefix+kind.Extension()), Kind: kind}
}

// registrySnapshot flattens a registry into plain values so two registries can be
// compared with assert.Equal.
type registrySnapshot struct {
	Tags           []domain.ProviderTag
	StaticRunfiles []domain.Artifact
	SharedRunfiles []domain.Artifact
	QuoteDirs      []string
	DeclaredDirs   []string
	WarnDirs       []string
	DeclaredSrcs   []domain.Artifact
	ModuleMap      *domain.ModuleMap
	Dwo            []domain.Artifact
	PicDwo         []domain.Artifact
	LipoLabels     []domain.Label
	Temps          []domain.Artifact
	NativeLibs     []domain.LibraryToLink
	ExecDynamic    []domain.Artifact
	LinkShape      domain.LinkParamsShape
	Link           [4][]domain.LibraryToLink
}

func snapshot(t *testing.T, reg *domain.Registry) registrySnapshot {
	t.Helper()
	require.True(t, reg.Complete())

	runfiles, _ := reg.Runfiles()
	cc, _ := reg.CompilationContext()
	debug, _ := reg.DebugFiles()
	fdo, _ := reg.FdoProfilingInfo()
	temps, _ := reg.Temps()
	native, _ := reg.NativeLibraries()
	execDyn, _ := reg.ExecutionDynamicLibraries()
	lp, _ := reg.LinkParams()

	s := registrySnapshot{
		Tags:           reg.Tags(),
		StaticRunfiles: runfiles.Static.Artifacts(),
		SharedRunfiles: runfiles.Shared.Artifacts(),
		QuoteDirs:      cc.QuoteIncludeDirs(),
		DeclaredDirs:   cc.DeclaredIncludeDirs().ToList(),
		WarnDirs:       cc.DeclaredIncludeWarnDirs().ToList(),
		DeclaredSrcs:   cc.DeclaredIncludeSrcs().ToList(),
		ModuleMap:      cc.CppModuleMap(),
		Dwo:            debug.Dwo.ToList(),
		PicDwo:         debug.PicDwo.ToList(),
		LipoLabels:     fdo.TransitiveLipoLabels.ToList(),
		Temps:          temps.Temps,
		NativeLibs:     native.TransitiveNativeLibraries.ToList(),
		ExecDynamic:    execDyn.Artifacts.ToList(),
		LinkShape:      lp.Shape(),
	}
	for i, shape := range [4][2]bool{{true, false}, {true, true}, {false, false}, {false, true}} {
		s.Link[i] = lp.Store().Get(shape[0], shape[1]).Libraries()
	}
	return s
}
