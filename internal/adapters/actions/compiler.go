package actions

import (
	"context"
	"path"
	"strings"

	"go.trai.ch/ccplan/internal/core/domain"
	"go.trai.ch/ccplan/internal/core/ports"
	"go.trai.ch/zerr"
)

// ObjectsDir is the directory below a target's package holding its object files.
const ObjectsDir = "_objs"

// Compiler is the reference ports.Compiler. It registers one compile action per object
// file: a PIC object for every source, plus a non-PIC one unless PIC is forced.
type Compiler struct {
	registrar ports.ActionRegistrar
}

// NewCompiler creates a Compiler registering its actions with registrar.
func NewCompiler(registrar ports.ActionRegistrar) *Compiler {
	return &Compiler{registrar: registrar}
}

type objectFlavor struct {
	pic    bool
	suffix string
}

// Compile registers the compile actions of req. Headers and other non compilable files
// among the sources are skipped.
func (c *Compiler) Compile(ctx context.Context, req ports.CompileRequest) (*domain.CompilationOutputs, error) {
	flavors := []objectFlavor{{pic: true, suffix: ".pic"}}
	if !req.Configuration.ForcePic {
		flavors = append([]objectFlavor{{suffix: ""}}, flavors...)
	}

	inputs := compileInputs(req)
	out := domain.NewCompilationOutputsBuilder()

	for _, src := range req.Sources {
		if !src.IsCompilable() {
			continue
		}
		base := ObjectBase(req.Label, src)

		for _, flavor := range flavors {
			object := domain.NewDerivedArtifact(req.Configuration.BinFragment(), base+flavor.suffix+".o")
			outputs := []domain.Artifact{object}

			var dwo domain.Artifact
			if req.Configuration.Fission {
				dwo = domain.NewDerivedArtifact(req.Configuration.BinFragment(), base+flavor.suffix+".dwo")
				outputs = append(outputs, dwo)
			}

			var temps []domain.Artifact
			if req.SaveTemps {
				temps = tempsFor(req.Configuration, src, base+flavor.suffix)
				outputs = append(outputs, temps...)
			}

			action := domain.Action{
				Kind:    domain.CompileAction,
				Owner:   req.Label,
				Inputs:  append([]domain.Artifact{src}, inputs...),
				Outputs: outputs,
				Args:    compileArgs(req, src, object, flavor.pic),
			}
			if _, err := c.registrar.Register(ctx, action); err != nil {
				return nil, zerr.With(err, "source", src.ExecPath())
			}

			if flavor.pic {
				out.AddPicObjectFiles(object)
				if !dwo.IsZero() {
					out.AddPicDwoFiles(dwo)
				}
			} else {
				out.AddObjectFiles(object)
				if !dwo.IsZero() {
					out.AddDwoFiles(dwo)
				}
			}
			out.AddTemps(temps...)
		}
	}

	return out.Build(), nil
}

// ObjectBase returns the bin root relative path of src's object files without extension:
// <pkg>/_objs/<name>/<src relative to pkg>.
func ObjectBase(label domain.Label, src domain.Artifact) string {
	rel := src.Stem()
	if label.Package != "" {
		rel = strings.TrimPrefix(rel, label.Package+"/")
	}
	return path.Join(label.Package, ObjectsDir, label.Name, rel)
}

func tempsFor(cfg domain.Configuration, src domain.Artifact, base string) []domain.Artifact {
	preprocessed := ".ii"
	if src.Extension() == ".c" {
		preprocessed = ".i"
	}
	if ext := src.Extension(); ext == ".s" || ext == ".S" {
		return nil
	}
	return []domain.Artifact{
		domain.NewDerivedArtifact(cfg.BinFragment(), base+preprocessed),
		domain.NewDerivedArtifact(cfg.BinFragment(), base+".s"),
	}
}

// compileInputs lists what every compile action of req reads besides its source.
func compileInputs(req ports.CompileRequest) []domain.Artifact {
	var inputs []domain.Artifact
	if req.Context != nil {
		inputs = append(inputs, req.Context.CompilationPrerequisites()...)
		if req.EnableModules {
			for _, mm := range moduleMapsOf(req.Context) {
				inputs = append(inputs, mm.Artifact)
			}
		}
	}
	for _, p := range req.Plugins {
		inputs = append(inputs, p.Artifact)
	}
	return inputs
}

func moduleMapsOf(c *domain.CompilationContext) []domain.ModuleMap {
	var res []domain.ModuleMap
	if mm := c.CppModuleMap(); mm != nil {
		res = append(res, *mm)
	}
	return append(res, c.TransitiveModuleMaps().ToList()...)
}

func compileArgs(req ports.CompileRequest, src, object domain.Artifact, pic bool) []string {
	args := []string{"-c", src.ExecPath(), "-o", object.ExecPath()}
	if pic {
		args = append(args, "-fPIC")
	}
	if req.Configuration.Fission {
		args = append(args, "-gsplit-dwarf")
	}
	if req.SaveTemps {
		args = append(args, "-save-temps")
	}

	if req.Context != nil {
		for _, dir := range req.Context.QuoteIncludeDirs() {
			args = append(args, "-iquote", dir)
		}
		for _, dir := range req.Context.SystemIncludeDirs() {
			args = append(args, "-isystem", dir)
		}
		if req.EnableModules {
			args = append(args, "-fmodules-strict-decluse")
			if mm := req.Context.CppModuleMap(); mm != nil {
				args = append(args, "-fmodule-name="+mm.Name)
			}
			for _, mm := range moduleMapsOf(req.Context) {
				args = append(args, "-fmodule-map-file="+mm.Artifact.ExecPath())
			}
		}
	}

	for _, p := range req.Plugins {
		args = append(args, "-fplugin="+p.Artifact.ExecPath())
	}
	return append(args, req.Copts...)
}
