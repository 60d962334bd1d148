package domain

import "slices"

// LibraryToLink is a library artifact together with the kind of link that produced it.
type LibraryToLink struct {
	Artifact Artifact
	Kind     LinkTargetType
}

// IsAlwaysLink reports whether the linker must retain all members of the library.
func (l LibraryToLink) IsAlwaysLink() bool {
	return l.Kind.IsAlwaysLink()
}

// LinkingOutputs are the libraries produced by a target's link step.
type LinkingOutputs struct {
	staticLibraries           []LibraryToLink
	picStaticLibraries        []LibraryToLink
	dynamicLibraries          []LibraryToLink
	executionDynamicLibraries []LibraryToLink
}

// EmptyLinkingOutputs returns outputs without any library.
func EmptyLinkingOutputs() *LinkingOutputs {
	return &LinkingOutputs{}
}

// StaticLibraries returns the non-PIC static archives.
func (o *LinkingOutputs) StaticLibraries() []LibraryToLink {
	return slices.Clone(o.staticLibraries)
}

// PicStaticLibraries returns the PIC static archives.
func (o *LinkingOutputs) PicStaticLibraries() []LibraryToLink {
	return slices.Clone(o.picStaticLibraries)
}

// DynamicLibraries returns the shared objects used at link time.
func (o *LinkingOutputs) DynamicLibraries() []LibraryToLink {
	return slices.Clone(o.dynamicLibraries)
}

// ExecutionDynamicLibraries returns the shared objects needed at execution time.
func (o *LinkingOutputs) ExecutionDynamicLibraries() []LibraryToLink {
	return slices.Clone(o.executionDynamicLibraries)
}

// IsEmpty reports whether no library was produced.
func (o *LinkingOutputs) IsEmpty() bool {
	return len(o.staticLibraries) == 0 && len(o.picStaticLibraries) == 0 &&
		len(o.dynamicLibraries) == 0 && len(o.executionDynamicLibraries) == 0
}

// PreferredLibraries selects the libraries a dependent link should use. Static links
// use archives; dynamic links use shared objects when there are any. preferPic picks
// the PIC archive variant, falling back to the other variant when one is missing.
func (o *LinkingOutputs) PreferredLibraries(linkingStatically, preferPic bool) []LibraryToLink {
	if !linkingStatically && len(o.dynamicLibraries) > 0 {
		return o.DynamicLibraries()
	}
	if preferPic {
		if len(o.picStaticLibraries) > 0 {
			return o.PicStaticLibraries()
		}
		return o.StaticLibraries()
	}
	if len(o.staticLibraries) > 0 {
		return o.StaticLibraries()
	}
	return o.PicStaticLibraries()
}

// LibrariesForRunfiles returns the shared objects a binary needs at run time. A static
// link of a target that has archives needs none.
func (o *LinkingOutputs) LibrariesForRunfiles(linkingStatically bool) []Artifact {
	if linkingStatically && (len(o.staticLibraries) > 0 || len(o.picStaticLibraries) > 0) {
		return nil
	}
	libs := o.executionDynamicLibraries
	if len(libs) == 0 {
		libs = o.dynamicLibraries
	}
	return LibraryArtifacts(libs)
}

// LibraryOutputArtifacts returns every static, PIC static, dynamic and execution
// dynamic library artifact, without duplicates.
func (o *LinkingOutputs) LibraryOutputArtifacts() []Artifact {
	var u uniqueArtifacts
	u.add(LibraryArtifacts(o.staticLibraries)...)
	u.add(LibraryArtifacts(o.picStaticLibraries)...)
	u.add(LibraryArtifacts(o.dynamicLibraries)...)
	u.add(LibraryArtifacts(o.executionDynamicLibraries)...)
	return u.build()
}

// LibraryArtifacts returns the artifacts of the given libraries.
func LibraryArtifacts(libs []LibraryToLink) []Artifact {
	res := make([]Artifact, len(libs))
	for i, l := range libs {
		res[i] = l.Artifact
	}
	return res
}

// LinkingOutputsBuilder accumulates LinkingOutputs.
type LinkingOutputsBuilder struct {
	out LinkingOutputs
}

// NewLinkingOutputsBuilder returns an empty builder.
func NewLinkingOutputsBuilder() *LinkingOutputsBuilder {
	return &LinkingOutputsBuilder{}
}

// AddStaticLibrary adds a non-PIC archive.
func (b *LinkingOutputsBuilder) AddStaticLibrary(lib LibraryToLink) *LinkingOutputsBuilder {
	b.out.staticLibraries = append(b.out.staticLibraries, lib)
	return b
}

// AddPicStaticLibrary adds a PIC archive.
func (b *LinkingOutputsBuilder) AddPicStaticLibrary(lib LibraryToLink) *LinkingOutputsBuilder {
	b.out.picStaticLibraries = append(b.out.picStaticLibraries, lib)
	return b
}

// AddDynamicLibrary adds a link time shared object.
func (b *LinkingOutputsBuilder) AddDynamicLibrary(lib LibraryToLink) *LinkingOutputsBuilder {
	b.out.dynamicLibraries = append(b.out.dynamicLibraries, lib)
	return b
}

// AddExecutionDynamicLibrary adds an execution time shared object.
func (b *LinkingOutputsBuilder) AddExecutionDynamicLibrary(lib LibraryToLink) *LinkingOutputsBuilder {
	b.out.executionDynamicLibraries = append(b.out.executionDynamicLibraries, lib)
	return b
}

// Build returns the outputs.
func (b *LinkingOutputsBuilder) Build() *LinkingOutputs {
	return &LinkingOutputs{
		staticLibraries:           slices.Clone(b.out.staticLibraries),
		picStaticLibraries:        slices.Clone(b.out.picStaticLibraries),
		dynamicLibraries:          slices.Clone(b.out.dynamicLibraries),
		executionDynamicLibraries: slices.Clone(b.out.executionDynamicLibraries),
	}
}
