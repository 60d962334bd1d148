package domain

import "slices"

// CompilationOutputs are the object files and intermediates produced for a target.
type CompilationOutputs struct {
	objectFiles    []Artifact
	picObjectFiles []Artifact
	dwoFiles       []Artifact
	picDwoFiles    []Artifact
	temps          []Artifact
}

// ObjectFiles returns the non-PIC object files.
func (o *CompilationOutputs) ObjectFiles() []Artifact {
	return slices.Clone(o.objectFiles)
}

// PicObjectFiles returns the PIC object files.
func (o *CompilationOutputs) PicObjectFiles() []Artifact {
	return slices.Clone(o.picObjectFiles)
}

// ObjectFilesFor returns the PIC or non-PIC object files.
func (o *CompilationOutputs) ObjectFilesFor(usePic bool) []Artifact {
	if usePic {
		return o.PicObjectFiles()
	}
	return o.ObjectFiles()
}

// DwoFiles returns the split debug info files of the non-PIC objects.
func (o *CompilationOutputs) DwoFiles() []Artifact {
	return slices.Clone(o.dwoFiles)
}

// PicDwoFiles returns the split debug info files of the PIC objects.
func (o *CompilationOutputs) PicDwoFiles() []Artifact {
	return slices.Clone(o.picDwoFiles)
}

// Temps returns preprocessed and assembly intermediates.
func (o *CompilationOutputs) Temps() []Artifact {
	return slices.Clone(o.temps)
}

// IsEmpty reports whether no file at all was produced.
func (o *CompilationOutputs) IsEmpty() bool {
	return len(o.objectFiles) == 0 && len(o.picObjectFiles) == 0 &&
		len(o.dwoFiles) == 0 && len(o.picDwoFiles) == 0 && len(o.temps) == 0
}

// uniqueArtifacts is an insertion ordered artifact list without duplicates.
type uniqueArtifacts struct {
	list []Artifact
	seen map[Artifact]struct{}
}

func (u *uniqueArtifacts) add(artifacts ...Artifact) {
	if u.seen == nil {
		u.seen = make(map[Artifact]struct{})
	}
	for _, a := range artifacts {
		if _, ok := u.seen[a]; ok {
			continue
		}
		u.seen[a] = struct{}{}
		u.list = append(u.list, a)
	}
}

func (u *uniqueArtifacts) build() []Artifact {
	return slices.Clone(u.list)
}

// CompilationOutputsBuilder accumulates CompilationOutputs. Each list keeps insertion
// order and drops artifacts it already holds.
type CompilationOutputsBuilder struct {
	objectFiles    uniqueArtifacts
	picObjectFiles uniqueArtifacts
	dwoFiles       uniqueArtifacts
	picDwoFiles    uniqueArtifacts
	temps          uniqueArtifacts
}

// NewCompilationOutputsBuilder returns an empty builder.
func NewCompilationOutputsBuilder() *CompilationOutputsBuilder {
	return &CompilationOutputsBuilder{}
}

// Merge adds every file of o.
func (b *CompilationOutputsBuilder) Merge(o *CompilationOutputs) *CompilationOutputsBuilder {
	if o == nil {
		return b
	}
	b.objectFiles.add(o.objectFiles...)
	b.picObjectFiles.add(o.picObjectFiles...)
	b.dwoFiles.add(o.dwoFiles...)
	b.picDwoFiles.add(o.picDwoFiles...)
	b.temps.add(o.temps...)
	return b
}

// AddObjectFiles adds non-PIC object files.
func (b *CompilationOutputsBuilder) AddObjectFiles(objects ...Artifact) *CompilationOutputsBuilder {
	b.objectFiles.add(objects...)
	return b
}

// AddPicObjectFiles adds PIC object files.
func (b *CompilationOutputsBuilder) AddPicObjectFiles(objects ...Artifact) *CompilationOutputsBuilder {
	b.picObjectFiles.add(objects...)
	return b
}

// AddDwoFiles adds split debug info files for non-PIC objects.
func (b *CompilationOutputsBuilder) AddDwoFiles(dwos ...Artifact) *CompilationOutputsBuilder {
	b.dwoFiles.add(dwos...)
	return b
}

// AddPicDwoFiles adds split debug info files for PIC objects.
func (b *CompilationOutputsBuilder) AddPicDwoFiles(dwos ...Artifact) *CompilationOutputsBuilder {
	b.picDwoFiles.add(dwos...)
	return b
}

// AddTemps adds intermediate files.
func (b *CompilationOutputsBuilder) AddTemps(temps ...Artifact) *CompilationOutputsBuilder {
	b.temps.add(temps...)
	return b
}

// Build returns the outputs.
func (b *CompilationOutputsBuilder) Build() *CompilationOutputs {
	return &CompilationOutputs{
		objectFiles:    b.objectFiles.build(),
		picObjectFiles: b.picObjectFiles.build(),
		dwoFiles:       b.dwoFiles.build(),
		picDwoFiles:    b.picDwoFiles.build(),
		temps:          b.temps.build(),
	}
}
