// Package depset implements an immutable, structurally shared set used to aggregate
// transitive collections (headers, module maps, linker inputs, labels) across a
// dependency graph without copying them at every level.
package depset

import (
	"iter"
	"slices"

	"go.trai.ch/zerr"
)

// ErrIncompatibleOrder is raised when a child set's order cannot be nested under its parent.
var ErrIncompatibleOrder = zerr.New("incompatible depset order")

// Order selects how a Set is flattened by ToList.
type Order int

const (
	// Stable flattens in postorder: children left to right, then direct elements.
	Stable Order = iota
	// Compile flattens in preorder: direct elements first, then children left to right.
	Compile
	// Link flattens so that every element precedes the elements of the sets it depends on.
	Link
)

// String returns the name of the order.
func (o Order) String() string {
	switch o {
	case Stable:
		return "stable"
	case Compile:
		return "compile"
	case Link:
		return "link"
	default:
		return "unknown"
	}
}

// compatible reports whether a child of order c may be nested in a parent of order o.
func (o Order) compatible(c Order) bool {
	return c == Stable || c == o
}

type node[T comparable] struct {
	order    Order
	direct   []T
	children []*node[T]
}

// Set is an immutable aggregation of direct elements and child sets.
// The zero value is an empty set in Stable order.
type Set[T comparable] struct {
	n *node[T]
}

// New returns a set holding a copy of direct and sharing the given transitive sets.
// Empty transitive sets are dropped. It panics if a transitive set has an order that
// cannot be nested in order.
func New[T comparable](order Order, direct []T, transitive []Set[T]) Set[T] {
	children := make([]*node[T], 0, len(transitive))
	for _, t := range transitive {
		if t.IsEmpty() {
			continue
		}
		if !order.compatible(t.n.order) {
			panic(zerr.With(zerr.With(ErrIncompatibleOrder, "parent", order.String()), "child", t.n.order.String()))
		}
		children = append(children, t.n)
	}

	if len(direct) == 0 && len(children) == 1 && children[0].order == order {
		return Set[T]{n: children[0]}
	}

	return Set[T]{n: &node[T]{
		order:    order,
		direct:   slices.Clone(direct),
		children: children,
	}}
}

// Wrap returns a set holding only the given direct elements.
func Wrap[T comparable](order Order, elems []T) Set[T] {
	return New(order, elems, nil)
}

// Empty returns an empty set of the given order.
func Empty[T comparable](order Order) Set[T] {
	return Set[T]{n: &node[T]{order: order}}
}

// Merge links a and b under a new node without copying either of them.
// The resulting order is the non-stable order of the two, if any.
func Merge[T comparable](a, b Set[T]) Set[T] {
	order := a.Order()
	if order == Stable {
		order = b.Order()
	}
	return New(order, nil, []Set[T]{a, b})
}

// AddDirect returns a set with elems as direct elements and s as its only child.
func AddDirect[T comparable](s Set[T], elems ...T) Set[T] {
	return New(s.Order(), elems, []Set[T]{s})
}

// Order returns the order the set flattens in.
func (s Set[T]) Order() Order {
	if s.n == nil {
		return Stable
	}
	return s.n.order
}

// IsEmpty reports whether the set has no elements.
func (s Set[T]) IsEmpty() bool {
	return s.n == nil || (len(s.n.direct) == 0 && len(s.n.children) == 0)
}

// Len returns the number of distinct elements in the set.
func (s Set[T]) Len() int {
	return len(s.ToList())
}

// All returns an iterator over the flattened elements.
func (s Set[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, e := range s.ToList() {
			if !yield(e) {
				return
			}
		}
	}
}

// ToList flattens the set according to its order, dropping duplicate elements.
// It allocates a fresh slice on every call and never mutates the set.
func (s Set[T]) ToList() []T {
	if s.IsEmpty() {
		return nil
	}

	w := walker[T]{
		visited: make(map[*node[T]]struct{}),
		seen:    make(map[T]struct{}),
	}

	switch s.n.order {
	case Compile:
		w.preorder(s.n)
	case Link:
		w.reversePostorder(s.n)
		slices.Reverse(w.out)
	default:
		w.postorder(s.n)
	}
	return w.out
}

type walker[T comparable] struct {
	visited map[*node[T]]struct{}
	seen    map[T]struct{}
	out     []T
}

func (w *walker[T]) enter(n *node[T]) bool {
	if _, ok := w.visited[n]; ok {
		return false
	}
	w.visited[n] = struct{}{}
	return true
}

func (w *walker[T]) emit(e T) {
	if _, ok := w.seen[e]; ok {
		return
	}
	w.seen[e] = struct{}{}
	w.out = append(w.out, e)
}

func (w *walker[T]) postorder(n *node[T]) {
	if !w.enter(n) {
		return
	}
	for _, c := range n.children {
		w.postorder(c)
	}
	for _, e := range n.direct {
		w.emit(e)
	}
}

func (w *walker[T]) preorder(n *node[T]) {
	if !w.enter(n) {
		return
	}
	for _, e := range n.direct {
		w.emit(e)
	}
	for _, c := range n.children {
		w.preorder(c)
	}
}

// reversePostorder emits children right to left and direct elements backwards,
// so that reversing the result yields the link order.
func (w *walker[T]) reversePostorder(n *node[T]) {
	if !w.enter(n) {
		return
	}
	for i := len(n.children) - 1; i >= 0; i-- {
		w.reversePostorder(n.children[i])
	}
	for i := len(n.direct) - 1; i >= 0; i-- {
		w.emit(n.direct[i])
	}
}
