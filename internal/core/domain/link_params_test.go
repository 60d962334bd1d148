package domain_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ccplan/internal/core/domain"
)

// plannedLib returns a dependency whose generic link params hold its own preferred
// library on top of the given deps.
func plannedLib(name string, deps ...domain.Dependency) *domain.PlannedTarget {
	outputs := domain.NewLinkingOutputsBuilder().
		AddStaticLibrary(lib("lib/lib"+name+".a", domain.StaticLibrary)).
		AddPicStaticLibrary(lib("lib/lib"+name+".pic.a", domain.PicStaticLibrary)).
		Build()

	store := domain.NewLinkParamsStore(func(b *domain.LinkParamsBuilder, linkingStatically, linkShared bool) {
		b.AddTransitiveTargets(deps...)
		b.AddLinkopts("-l" + name)
		b.AddLibraries(outputs.PreferredLibraries(linkingStatically, linkShared)...)
	})

	reg := domain.NewRegistry().SetLinkParams(domain.NewGenericLinkParamsProvider(store))
	return domain.NewPlannedTarget(domain.MustParseLabel("//lib:"+name), reg, domain.Runfiles{})
}

func artifactsOf(libs []domain.LibraryToLink) []string {
	return domain.ExecPaths(domain.LibraryArtifacts(libs))
}

func TestLinkParamsStore_ShapesAreIndependent(t *testing.T) {
	calls := 0
	store := domain.NewLinkParamsStore(func(b *domain.LinkParamsBuilder, linkingStatically, linkShared bool) {
		calls++
		if linkingStatically {
			b.AddLinkopts("-static")
		}
		if linkShared {
			b.AddLinkopts("-fPIC")
		}
	})

	first := store.Get(true, false)
	second := store.Get(false, true)
	third := store.Get(true, false)

	assert.Equal(t, []string{"-static"}, first.Linkopts())
	assert.Equal(t, []string{"-fPIC"}, second.Linkopts())
	assert.Equal(t, first.Linkopts(), third.Linkopts())
	assert.Equal(t, 2, calls, "each shape is collected once")
	assert.Empty(t, store.Get(false, false).Linkopts())
	assert.Equal(t, []string{"-static", "-fPIC"}, store.Get(true, true).Linkopts())
}

func TestLinkParamsStore_DiamondLadder(t *testing.T) {
	const depth = 40
	calls := 0
	ladderLib := func(name string, deps ...domain.Dependency) *domain.PlannedTarget {
		outputs := domain.NewLinkingOutputsBuilder().
			AddStaticLibrary(lib("lib/lib"+name+".a", domain.StaticLibrary)).
			Build()
		store := domain.NewLinkParamsStore(func(b *domain.LinkParamsBuilder, linkingStatically, linkShared bool) {
			calls++
			b.AddTransitiveTargets(deps...)
			b.AddLibraries(outputs.PreferredLibraries(linkingStatically, linkShared)...)
		})
		reg := domain.NewRegistry().SetLinkParams(domain.NewGenericLinkParamsProvider(store))
		return domain.NewPlannedTarget(domain.MustParseLabel("//lib:"+name), reg, domain.Runfiles{})
	}

	// Every level depends on both targets of the level below.
	left, right := ladderLib("l0"), ladderLib("r0")
	for i := 1; i <= depth; i++ {
		left, right = ladderLib(fmt.Sprintf("l%d", i), left, right), ladderLib(fmt.Sprintf("r%d", i), left, right)
	}
	top := ladderLib("top", left, right)

	store, ok := top.Providers().GenericLinkParams()
	require.True(t, ok)
	params := store.Get(true, false)

	assert.Len(t, params.Libraries(), 2*(depth+1)+1)
	assert.Equal(t, "bazel-out/bin/lib/libtop.a", artifactsOf(params.Libraries())[0])
	assert.Equal(t, 2*(depth+1)+1, calls, "every target is collected once per shape")

	store.Get(true, false)
	assert.Equal(t, 2*(depth+1)+1, calls)
}

func TestLinkParamsBuilder_TransitiveLinkOrder(t *testing.T) {
	base := plannedLib("base")
	left := plannedLib("left", base)
	right := plannedLib("right", base)
	top := plannedLib("top", left, right)

	store, ok := top.Providers().GenericLinkParams()
	require.True(t, ok)

	static := store.Get(true, false)
	assert.Equal(t, []string{
		"bazel-out/bin/lib/libtop.a",
		"bazel-out/bin/lib/libleft.a",
		"bazel-out/bin/lib/libright.a",
		"bazel-out/bin/lib/libbase.a",
	}, artifactsOf(static.Libraries()))
	assert.Equal(t, []string{"-ltop", "-lleft", "-lright", "-lbase"}, static.Linkopts())

	pic := store.Get(true, true)
	assert.Equal(t, "bazel-out/bin/lib/libtop.pic.a", artifactsOf(pic.Libraries())[0])
	assert.Len(t, pic.Libraries(), 4)
}

func TestLinkParamsBuilder_SkipsDependenciesWithoutLinkParams(t *testing.T) {
	bare := domain.NewPlannedTarget(domain.MustParseLabel("//data:files"), domain.NewRegistry(), domain.Runfiles{})
	nilProviders := domain.NewPlannedTarget(domain.MustParseLabel("//data:other"), nil, domain.Runfiles{})

	params := domain.NewLinkParamsBuilder(true, false).
		AddTransitiveTargets(bare, nilProviders, nil).
		Build()

	assert.True(t, params.IsEmpty())
}

func TestLinkParamsBuilder_UsesSpecificShape(t *testing.T) {
	store := domain.NewLinkParamsStore(func(b *domain.LinkParamsBuilder, _, _ bool) {
		b.AddLinkopts("-lspecific")
	})
	reg := domain.NewRegistry().SetLinkParams(domain.NewSpecificLinkParamsProvider(store))
	dep := domain.NewPlannedTarget(domain.MustParseLabel("//lib:specific"), reg, domain.Runfiles{})

	params := domain.NewLinkParamsBuilder(false, false).AddTransitiveTargets(dep).Build()

	assert.Equal(t, []string{"-lspecific"}, params.Linkopts())
}

func TestEmptyLinkParamsStore(t *testing.T) {
	for _, ls := range []bool{true, false} {
		for _, lsh := range []bool{true, false} {
			assert.True(t, domain.EmptyLinkParamsStore().Get(ls, lsh).IsEmpty())
		}
	}
}
