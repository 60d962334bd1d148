// Package fingerprint digests planning results so two plans can be compared bit for bit.
package fingerprint

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/ccplan/internal/core/domain"
	"go.trai.ch/ccplan/internal/core/ports"
)

var _ ports.Fingerprinter = (*Hasher)(nil)

// linkShapes are the four (linkingStatically, linkShared) combinations a link params
// store answers.
var linkShapes = [4][2]bool{{true, false}, {true, true}, {false, false}, {false, true}}

// Hasher implements ports.Fingerprinter with XXHash.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Fingerprint walks every provider of reg in tag order and returns the digest of what it
// saw. Flattened sets are hashed, so two registries built differently but holding the
// same ordered contents have equal fingerprints.
func (h *Hasher) Fingerprint(reg *domain.Registry) string {
	d := &digest{h: xxhash.New()}
	if reg == nil {
		return d.sum()
	}

	for _, tag := range reg.Tags() {
		d.section(tag.String())
		switch tag {
		case domain.RunfilesTag:
			p, _ := reg.Runfiles()
			d.artifacts(p.Static.Artifacts())
			d.artifacts(p.Shared.Artifacts())
		case domain.CompilationContextTag:
			c, _ := reg.CompilationContext()
			hashCompilationContext(d, c)
		case domain.DebugFileTag:
			p, _ := reg.DebugFiles()
			d.artifacts(p.Dwo.ToList())
			d.artifacts(p.PicDwo.ToList())
		case domain.FdoProfilingInfoTag:
			p, _ := reg.FdoProfilingInfo()
			for _, l := range p.TransitiveLipoLabels.ToList() {
				d.field(l.String())
			}
		case domain.TempsTag:
			p, _ := reg.Temps()
			d.artifacts(p.Temps)
		case domain.NativeLibraryTag:
			p, _ := reg.NativeLibraries()
			d.libraries(p.TransitiveNativeLibraries.ToList())
		case domain.ExecutionDynamicLibrariesTag:
			p, _ := reg.ExecutionDynamicLibraries()
			d.artifacts(p.Artifacts.ToList())
		case domain.LinkParamsTag:
			p, _ := reg.LinkParams()
			d.field(p.Shape().String())
			for _, shape := range linkShapes {
				params := p.Store().Get(shape[0], shape[1])
				d.list(params.Linkopts())
				d.libraries(params.Libraries())
			}
		}
	}
	return d.sum()
}

func hashCompilationContext(d *digest, c *domain.CompilationContext) {
	d.list(c.QuoteIncludeDirs())
	d.list(c.SystemIncludeDirs())
	d.list(c.DeclaredIncludeDirs().ToList())
	d.list(c.DeclaredIncludeWarnDirs().ToList())
	d.artifacts(c.DeclaredIncludeSrcs().ToList())
	for _, p := range c.PregreppedHeaders().ToList() {
		d.field(p.Header.ExecPath())
		d.field(p.Pregrepped.ExecPath())
	}
	d.end()
	if mm := c.CppModuleMap(); mm != nil {
		d.field(mm.Name)
		d.field(mm.Artifact.ExecPath())
	}
	d.end()
	for _, mm := range c.TransitiveModuleMaps().ToList() {
		d.field(mm.Name)
		d.field(mm.Artifact.ExecPath())
	}
	d.end()
}

// digest writes NUL terminated fields and 0x01 terminated lists, so moving a value
// between lists changes the digest.
type digest struct {
	h *xxhash.Digest
}

func (d *digest) field(s string) {
	_, _ = d.h.WriteString(s)
	_, _ = d.h.Write([]byte{0})
}

func (d *digest) end() {
	_, _ = d.h.Write([]byte{1})
}

func (d *digest) section(name string) {
	_, _ = d.h.Write([]byte{2})
	d.field(name)
}

func (d *digest) list(items []string) {
	for _, s := range items {
		d.field(s)
	}
	d.end()
}

func (d *digest) artifacts(items []domain.Artifact) {
	for _, a := range items {
		d.field(a.Root())
		d.field(a.RootRelativePath())
	}
	d.end()
}

func (d *digest) libraries(items []domain.LibraryToLink) {
	for _, l := range items {
		d.field(l.Artifact.ExecPath())
		d.field(strconv.Itoa(int(l.Kind)))
	}
	d.end()
}

func (d *digest) sum() string {
	return fmt.Sprintf("%016x", d.h.Sum64())
}
