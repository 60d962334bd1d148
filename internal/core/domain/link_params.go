package domain

import (
	"sync"

	"go.trai.ch/ccplan/internal/core/depset"
)

// LinkParams are the flags and libraries a binary needs to link against a target and
// everything it transitively depends on.
type LinkParams struct {
	linkopts  depset.Set[string]
	libraries depset.Set[LibraryToLink]
}

// Linkopts returns the linker flags in link order.
func (p LinkParams) Linkopts() []string {
	return p.linkopts.ToList()
}

// Libraries returns the libraries to link in link order.
func (p LinkParams) Libraries() []LibraryToLink {
	return p.libraries.ToList()
}

// LinkoptSet returns the linker flags as a set.
func (p LinkParams) LinkoptSet() depset.Set[string] {
	return p.linkopts
}

// LibrarySet returns the libraries as a set.
func (p LinkParams) LibrarySet() depset.Set[LibraryToLink] {
	return p.libraries
}

// IsEmpty reports whether there is nothing to link.
func (p LinkParams) IsEmpty() bool {
	return p.linkopts.IsEmpty() && p.libraries.IsEmpty()
}

// LinkParamsBuilder accumulates LinkParams for one (linkingStatically, linkShared) pair.
type LinkParamsBuilder struct {
	linkingStatically bool
	linkShared        bool
	linkopts          *depset.Builder[string]
	libraries         *depset.Builder[LibraryToLink]
}

// NewLinkParamsBuilder returns a builder for the given link shape.
func NewLinkParamsBuilder(linkingStatically, linkShared bool) *LinkParamsBuilder {
	return &LinkParamsBuilder{
		linkingStatically: linkingStatically,
		linkShared:        linkShared,
		linkopts:          depset.NewBuilder[string](depset.Link),
		libraries:         depset.NewBuilder[LibraryToLink](depset.Link),
	}
}

// AddLinkopts adds linker flags.
func (b *LinkParamsBuilder) AddLinkopts(opts ...string) *LinkParamsBuilder {
	b.linkopts.Direct(opts...)
	return b
}

// AddLibraries adds this target's libraries.
func (b *LinkParamsBuilder) AddLibraries(libs ...LibraryToLink) *LinkParamsBuilder {
	b.libraries.Direct(libs...)
	return b
}

// AddTransitive adds already computed link params.
func (b *LinkParamsBuilder) AddTransitive(p LinkParams) *LinkParamsBuilder {
	b.linkopts.Transitive(p.linkopts)
	b.libraries.Transitive(p.libraries)
	return b
}

// AddTransitiveTargets adds the link params of every dependency exposing either link
// params shape, computed for this builder's link shape. Dependencies without link
// params are skipped.
func (b *LinkParamsBuilder) AddTransitiveTargets(deps ...Dependency) *LinkParamsBuilder {
	for _, dep := range deps {
		if dep == nil || dep.Providers() == nil {
			continue
		}
		provider, ok := dep.Providers().LinkParams()
		if !ok {
			continue
		}
		b.AddTransitive(provider.Store().Get(b.linkingStatically, b.linkShared))
	}
	return b
}

// Build returns the link params.
func (b *LinkParamsBuilder) Build() LinkParams {
	return LinkParams{
		linkopts:  b.linkopts.Build(),
		libraries: b.libraries.Build(),
	}
}

// LinkParamsStore computes link params on demand for a link shape.
type LinkParamsStore interface {
	// Get returns the link params for a static or dynamic link of a binary or shared library.
	Get(linkingStatically, linkShared bool) LinkParams
}

// LinkParamsCollector fills a fresh builder for one link shape.
type LinkParamsCollector func(b *LinkParamsBuilder, linkingStatically, linkShared bool)

// collectingStore holds one lazily built result per link shape. Each result is
// computed by its own fresh builder and never changes afterwards.
type collectingStore struct {
	shapes [4]func() LinkParams
}

// NewLinkParamsStore returns a store that runs collect against a fresh builder the first
// time a link shape is requested. Shapes never share a builder, so calls with different
// arguments never affect each other.
func NewLinkParamsStore(collect LinkParamsCollector) LinkParamsStore {
	s := &collectingStore{}
	for i := range s.shapes {
		linkingStatically, linkShared := i&2 != 0, i&1 != 0
		s.shapes[i] = sync.OnceValue(func() LinkParams {
			b := NewLinkParamsBuilder(linkingStatically, linkShared)
			if collect != nil {
				collect(b, linkingStatically, linkShared)
			}
			return b.Build()
		})
	}
	return s
}

func (s *collectingStore) Get(linkingStatically, linkShared bool) LinkParams {
	i := 0
	if linkingStatically {
		i |= 2
	}
	if linkShared {
		i |= 1
	}
	return s.shapes[i]()
}

// EmptyLinkParamsStore returns a store whose link params are always empty.
func EmptyLinkParamsStore() LinkParamsStore {
	return NewLinkParamsStore(nil)
}
