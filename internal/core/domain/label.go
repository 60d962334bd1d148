package domain

import (
	"path"
	"strings"

	"go.trai.ch/zerr"
)

// Label identifies a target as //package:name.
type Label struct {
	Package string
	Name    string
}

// ParseLabel parses "//pkg:name" or "//pkg", where the latter names the target after the
// last package component.
func ParseLabel(s string) (Label, error) {
	rest, ok := strings.CutPrefix(s, "//")
	if !ok {
		return Label{}, zerr.With(ErrInvalidLabel, "label", s)
	}

	pkg, name, hasName := strings.Cut(rest, ":")
	if !hasName {
		name = path.Base(pkg)
	}
	if name == "" || name == "." || name == "/" || strings.ContainsAny(name, ":") {
		return Label{}, zerr.With(ErrInvalidLabel, "label", s)
	}
	if strings.HasPrefix(pkg, "/") || strings.HasSuffix(pkg, "/") || strings.Contains(pkg, "//") {
		return Label{}, zerr.With(ErrInvalidLabel, "label", s)
	}

	return Label{Package: pkg, Name: name}, nil
}

// MustParseLabel is like ParseLabel but panics on error. It is meant for tests and
// static tables.
func MustParseLabel(s string) Label {
	l, err := ParseLabel(s)
	if err != nil {
		panic(err)
	}
	return l
}

// String returns the canonical //pkg:name form.
func (l Label) String() string {
	return "//" + l.Package + ":" + l.Name
}

// PackageFragment returns the package path relative to the exec root.
func (l Label) PackageFragment() string {
	return l.Package
}

// IsZero reports whether the label is unset.
func (l Label) IsZero() bool {
	return l == Label{}
}

// MarshalText implements encoding.TextMarshaler.
func (l Label) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}
