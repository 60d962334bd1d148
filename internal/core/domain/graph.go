// Package domain contains the core domain model of the C/C++ build-action composer.
package domain

import (
	"cmp"
	"iter"
	"maps"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Graph is the dependency graph of a workspace's targets.
type Graph struct {
	targets        map[Label]*Target
	implicit       map[Label][]Label
	dependents     map[Label][]Label
	executionOrder []Label
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		targets:    make(map[Label]*Target),
		implicit:   make(map[Label][]Label),
		dependents: make(map[Label][]Label),
	}
}

// AddTarget adds a target to the graph.
// It returns an error if a target with the same label already exists.
func (g *Graph) AddTarget(t *Target) error {
	if _, exists := g.targets[t.Label]; exists {
		return zerr.With(ErrTargetAlreadyExists, "target", t.Label.String())
	}
	g.targets[t.Label] = t
	return nil
}

// AddImplicitEdge records that from must be planned after to, although to is not one
// of from's declared dependencies.
func (g *Graph) AddImplicitEdge(from, to Label) {
	if slices.Contains(g.implicit[from], to) {
		return
	}
	g.implicit[from] = append(g.implicit[from], to)
}

// DependenciesOf returns the declared and implicit dependencies of label.
func (g *Graph) DependenciesOf(label Label) []Label {
	t, ok := g.targets[label]
	if !ok {
		return nil
	}
	return append(t.Dependencies(), g.implicit[label]...)
}

// Target returns the target with the given label.
func (g *Graph) Target(label Label) (*Target, bool) {
	t, ok := g.targets[label]
	return t, ok
}

// TargetCount returns the number of targets.
func (g *Graph) TargetCount() int {
	return len(g.targets)
}

// Dependents returns the targets depending directly on label. Validate must run first.
func (g *Graph) Dependents(label Label) []Label {
	return g.dependents[label]
}

// Validate checks for missing dependencies and cycles with a topological sort.
// It populates the execution order used by Walk. Targets are visited in label order so
// that the result is deterministic.
func (g *Graph) Validate() error {
	g.executionOrder = make([]Label, 0, len(g.targets))
	g.dependents = make(map[Label][]Label, len(g.targets))
	visited := make(map[Label]int) // 0: unvisited, 1: visiting, 2: visited
	var path []Label

	var visit func(u Label) error
	visit = func(u Label) error {
		visited[u] = 1
		path = append(path, u)

		for _, dep := range g.DependenciesOf(u) {
			if _, ok := g.targets[dep]; !ok {
				return zerr.With(zerr.With(ErrMissingDependency, "target", u.String()), "dependency", dep.String())
			}
			if !slices.Contains(g.dependents[dep], u) {
				g.dependents[dep] = append(g.dependents[dep], u)
			}
			if visited[dep] == 1 {
				return buildCycleError(path, dep)
			}
			if visited[dep] == 0 {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		g.executionOrder = append(g.executionOrder, u)
		return nil
	}

	for _, label := range g.sortedLabels() {
		if visited[label] == 0 {
			if err := visit(label); err != nil {
				return err
			}
		}
	}

	for label := range g.dependents {
		slices.SortFunc(g.dependents[label], compareLabels)
	}
	return nil
}

func (g *Graph) sortedLabels() []Label {
	return slices.SortedFunc(maps.Keys(g.targets), compareLabels)
}

func compareLabels(a, b Label) int {
	return cmp.Compare(a.String(), b.String())
}

// buildCycleError constructs an error with cycle path metadata.
func buildCycleError(path []Label, dep Label) error {
	start := slices.Index(path, dep)
	parts := make([]string, 0, len(path)-start+1)
	for _, l := range path[start:] {
		parts = append(parts, l.String())
	}
	parts = append(parts, dep.String())
	return zerr.With(ErrCycleDetected, "cycle", strings.Join(parts, " -> "))
}

// Walk returns an iterator that yields targets in dependency order.
// It assumes Validate() has been called and returned nil.
func (g *Graph) Walk() iter.Seq[*Target] {
	return func(yield func(*Target) bool) {
		for _, label := range g.executionOrder {
			if !yield(g.targets[label]) {
				return
			}
		}
	}
}

// Closure returns the given targets and everything they depend on, in dependency order.
// It assumes Validate() has been called and returned nil.
func (g *Graph) Closure(labels []Label) ([]*Target, error) {
	needed := make(map[Label]bool)
	queue := make([]Label, 0, len(labels))
	for _, l := range labels {
		if _, ok := g.targets[l]; !ok {
			return nil, zerr.With(ErrTargetNotFound, "target", l.String())
		}
		if !needed[l] {
			needed[l] = true
			queue = append(queue, l)
		}
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, dep := range g.DependenciesOf(current) {
			if !needed[dep] {
				needed[dep] = true
				queue = append(queue, dep)
			}
		}
	}

	res := make([]*Target, 0, len(needed))
	for t := range g.Walk() {
		if needed[t.Label] {
			res = append(res, t)
		}
	}
	return res, nil
}
