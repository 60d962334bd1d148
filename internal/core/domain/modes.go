package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// HeadersCheckingMode controls how strictly a target's header inclusions are checked.
type HeadersCheckingMode int

const (
	// HeadersCheckingLoose allows any header below the target's package directory.
	HeadersCheckingLoose HeadersCheckingMode = iota
	// HeadersCheckingWarn reports inclusions of undeclared headers below the package directory.
	HeadersCheckingWarn
	// HeadersCheckingStrict only allows explicitly declared headers.
	HeadersCheckingStrict
)

// ParseHeadersCheckingMode parses "strict", "warn" or "loose". An empty string means loose.
func ParseHeadersCheckingMode(s string) (HeadersCheckingMode, error) {
	switch strings.ToLower(s) {
	case "", "loose":
		return HeadersCheckingLoose, nil
	case "warn":
		return HeadersCheckingWarn, nil
	case "strict":
		return HeadersCheckingStrict, nil
	default:
		return HeadersCheckingLoose, NewConfigurationError(zerr.With(ErrUnsupportedHeadersCheckingMode, "mode", s))
	}
}

// String returns the lower case name of the mode.
func (m HeadersCheckingMode) String() string {
	switch m {
	case HeadersCheckingLoose:
		return "loose"
	case HeadersCheckingWarn:
		return "warn"
	case HeadersCheckingStrict:
		return "strict"
	default:
		return "unknown"
	}
}

// Valid reports whether m is one of the known modes.
func (m HeadersCheckingMode) Valid() bool {
	return m >= HeadersCheckingLoose && m <= HeadersCheckingStrict
}

// LinkTargetType is the kind of artifact a link action produces.
type LinkTargetType int

const (
	// StaticLibrary is a regular static archive.
	StaticLibrary LinkTargetType = iota
	// AlwaysLinkStaticLibrary is a static archive whose members are always linked in.
	AlwaysLinkStaticLibrary
	// PicStaticLibrary is a static archive of position independent objects.
	PicStaticLibrary
	// AlwaysLinkPicStaticLibrary is the always-link variant of PicStaticLibrary.
	AlwaysLinkPicStaticLibrary
	// DynamicLibrary is a shared object.
	DynamicLibrary
)

// String returns the name of the link target type.
func (t LinkTargetType) String() string {
	switch t {
	case StaticLibrary:
		return "static_library"
	case AlwaysLinkStaticLibrary:
		return "alwayslink_static_library"
	case PicStaticLibrary:
		return "pic_static_library"
	case AlwaysLinkPicStaticLibrary:
		return "alwayslink_pic_static_library"
	case DynamicLibrary:
		return "dynamic_library"
	default:
		return "unknown"
	}
}

// Extension returns the file extension of artifacts of this type.
func (t LinkTargetType) Extension() string {
	switch t {
	case AlwaysLinkStaticLibrary:
		return ".lo"
	case PicStaticLibrary:
		return ".pic.a"
	case AlwaysLinkPicStaticLibrary:
		return ".pic.lo"
	case DynamicLibrary:
		return ".so"
	default:
		return ".a"
	}
}

// IsAlwaysLink reports whether the archive members are force-retained by the linker.
func (t LinkTargetType) IsAlwaysLink() bool {
	return t == AlwaysLinkStaticLibrary || t == AlwaysLinkPicStaticLibrary
}

// IsStatic reports whether the type is one of the static archive kinds.
func (t LinkTargetType) IsStatic() bool {
	return t != DynamicLibrary
}

// Pic returns the PIC twin of a static archive type. Other types are returned unchanged.
func (t LinkTargetType) Pic() LinkTargetType {
	switch t {
	case StaticLibrary:
		return PicStaticLibrary
	case AlwaysLinkStaticLibrary:
		return AlwaysLinkPicStaticLibrary
	default:
		return t
	}
}
