package domain

import (
	"path"
	"strings"
)

var (
	headerExtensions = map[string]bool{
		".h": true, ".hh": true, ".hpp": true, ".hxx": true, ".inc": true, ".inl": true, ".h++": true,
	}
	sourceExtensions = map[string]bool{
		".c": true, ".cc": true, ".cpp": true, ".cxx": true, ".c++": true, ".C": true, ".S": true, ".s": true,
	}
	objectExtensions = map[string]bool{
		".o": true, ".obj": true,
	}
)

// Artifact is a file known to the build, either a source file under the exec root or a
// derived file under an output root. Artifacts are compared by identity (root and path).
type Artifact struct {
	root InternedString
	path InternedString
}

// NewSourceArtifact returns a source artifact at the given exec-root relative path.
func NewSourceArtifact(p string) Artifact {
	return Artifact{path: NewInternedString(path.Clean(p))}
}

// NewSourceArtifacts returns source artifacts for every path.
func NewSourceArtifacts(paths ...string) []Artifact {
	res := make([]Artifact, len(paths))
	for i, p := range paths {
		res[i] = NewSourceArtifact(p)
	}
	return res
}

// NewDerivedArtifact returns an artifact at rel inside the output root.
func NewDerivedArtifact(root, rel string) Artifact {
	return Artifact{
		root: NewInternedString(path.Clean(root)),
		path: NewInternedString(path.Clean(rel)),
	}
}

// Root returns the output root, or "" for source artifacts.
func (a Artifact) Root() string {
	return a.root.String()
}

// RootRelativePath returns the path relative to the artifact's root.
func (a Artifact) RootRelativePath() string {
	return a.path.String()
}

// ExecPath returns the path relative to the exec root.
func (a Artifact) ExecPath() string {
	if a.root.String() == "" {
		return a.path.String()
	}
	return path.Join(a.root.String(), a.path.String())
}

// IsSourceArtifact reports whether the artifact lives in the exec root itself.
func (a Artifact) IsSourceArtifact() bool {
	return a.root.String() == ""
}

// Extension returns the file extension including the dot.
func (a Artifact) Extension() string {
	return path.Ext(a.path.String())
}

// Stem returns the root relative path without its extension.
func (a Artifact) Stem() string {
	p := a.path.String()
	return strings.TrimSuffix(p, path.Ext(p))
}

// IsHeader reports whether the artifact is a C/C++ header.
func (a Artifact) IsHeader() bool {
	return headerExtensions[a.Extension()]
}

// IsCompilable reports whether the artifact is a C/C++ or assembler source.
func (a Artifact) IsCompilable() bool {
	return sourceExtensions[a.Extension()]
}

// IsObject reports whether the artifact is an object file.
func (a Artifact) IsObject() bool {
	return objectExtensions[a.Extension()]
}

// IsZero reports whether the artifact is unset.
func (a Artifact) IsZero() bool {
	return a == Artifact{}
}

// String returns the exec path.
func (a Artifact) String() string {
	return a.ExecPath()
}

// MarshalText implements encoding.TextMarshaler.
func (a Artifact) MarshalText() ([]byte, error) {
	return []byte(a.ExecPath()), nil
}

// ExecPaths returns the exec paths of the given artifacts.
func ExecPaths(artifacts []Artifact) []string {
	res := make([]string, len(artifacts))
	for i, a := range artifacts {
		res[i] = a.ExecPath()
	}
	return res
}
