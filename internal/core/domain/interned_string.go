package domain

import "unique"

// InternedString is a canonical handle to a string. Artifact roots and paths repeat
// across every target of a workspace, so they are stored once and compared by handle.
// The zero value is the empty string but differs from NewInternedString("").
type InternedString struct {
	h unique.Handle[string]
}

// NewInternedString interns s.
func NewInternedString(s string) InternedString {
	return InternedString{h: unique.Make(s)}
}

// String returns the interned value.
func (is InternedString) String() string {
	if is.IsZero() {
		return ""
	}
	return is.h.Value()
}

// IsZero reports whether is was never set.
func (is InternedString) IsZero() bool {
	var zero unique.Handle[string]
	return is.h == zero
}
