package depset

// Builder accumulates direct elements and transitive sets for a single Set.
type Builder[T comparable] struct {
	order      Order
	direct     []T
	transitive []Set[T]
}

// NewBuilder returns a builder for a set of the given order.
func NewBuilder[T comparable](order Order) *Builder[T] {
	return &Builder[T]{order: order}
}

// Direct appends direct elements.
func (b *Builder[T]) Direct(elems ...T) *Builder[T] {
	b.direct = append(b.direct, elems...)
	return b
}

// Transitive appends already built sets as children.
func (b *Builder[T]) Transitive(sets ...Set[T]) *Builder[T] {
	b.transitive = append(b.transitive, sets...)
	return b
}

// IsEmpty reports whether nothing non-empty has been added.
func (b *Builder[T]) IsEmpty() bool {
	if len(b.direct) > 0 {
		return false
	}
	for _, t := range b.transitive {
		if !t.IsEmpty() {
			return false
		}
	}
	return true
}

// Build returns the set. The builder may keep being used afterwards; the returned
// set is unaffected by later calls.
func (b *Builder[T]) Build() Set[T] {
	return New(b.order, b.direct, b.transitive)
}
