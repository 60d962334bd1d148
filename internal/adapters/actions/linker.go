package actions

import (
	"context"
	"path"

	"go.trai.ch/ccplan/internal/core/domain"
	"go.trai.ch/ccplan/internal/core/ports"
)

// Linker is the reference ports.Linker. Non-PIC objects are archived into lib<name>.a
// (.lo when always linked). PIC objects are archived into lib<name>.pic.a and linked
// into lib<name>.so.
type Linker struct {
	registrar ports.ActionRegistrar
}

// NewLinker creates a Linker registering its actions with registrar.
func NewLinker(registrar ports.ActionRegistrar) *Linker {
	return &Linker{registrar: registrar}
}

// Link registers the archive and shared object actions of req. A target without object
// files links nothing.
func (l *Linker) Link(ctx context.Context, req ports.LinkRequest) (*domain.LinkingOutputs, error) {
	objects := req.Outputs.ObjectFiles()
	picObjects := req.Outputs.PicObjectFiles()
	if len(objects) == 0 && len(picObjects) == 0 {
		return domain.EmptyLinkingOutputs(), nil
	}

	b := domain.NewLinkingOutputsBuilder()
	if len(objects) > 0 {
		lib, err := l.archive(ctx, req, objects, req.LinkTargetType)
		if err != nil {
			return nil, err
		}
		b.AddStaticLibrary(lib)
	}

	if len(picObjects) > 0 {
		lib, err := l.archive(ctx, req, picObjects, req.LinkTargetType.Pic())
		if err != nil {
			return nil, err
		}
		b.AddPicStaticLibrary(lib)

		so, err := l.sharedObject(ctx, req, picObjects)
		if err != nil {
			return nil, err
		}
		b.AddDynamicLibrary(so).AddExecutionDynamicLibrary(so)
	}

	return b.Build(), nil
}

// LibraryPath returns the bin root relative path of the library of label with kind.
func LibraryPath(label domain.Label, kind domain.LinkTargetType) string {
	return path.Join(label.Package, "lib"+label.Name+kind.Extension())
}

func (l *Linker) archive(
	ctx context.Context,
	req ports.LinkRequest,
	objects []domain.Artifact,
	kind domain.LinkTargetType,
) (domain.LibraryToLink, error) {
	lib := domain.NewDerivedArtifact(req.Configuration.BinFragment(), LibraryPath(req.Label, kind))

	args := append([]string{"rcsD", lib.ExecPath()}, domain.ExecPaths(objects)...)
	_, err := l.registrar.Register(ctx, domain.Action{
		Kind:    domain.ArchiveAction,
		Owner:   req.Label,
		Inputs:  objects,
		Outputs: []domain.Artifact{lib},
		Args:    args,
	})
	if err != nil {
		return domain.LibraryToLink{}, err
	}
	return domain.LibraryToLink{Artifact: lib, Kind: kind}, nil
}

func (l *Linker) sharedObject(
	ctx context.Context,
	req ports.LinkRequest,
	objects []domain.Artifact,
) (domain.LibraryToLink, error) {
	so := domain.NewDerivedArtifact(req.Configuration.BinFragment(), LibraryPath(req.Label, domain.DynamicLibrary))

	args := append([]string{"-shared", "-o", so.ExecPath()}, domain.ExecPaths(objects)...)

	_, err := l.registrar.Register(ctx, domain.Action{
		Kind:    domain.DynamicLinkAction,
		Owner:   req.Label,
		Inputs:  objects,
		Outputs: []domain.Artifact{so},
		Args:    args,
	})
	if err != nil {
		return domain.LibraryToLink{}, err
	}
	return domain.LibraryToLink{Artifact: so, Kind: domain.DynamicLibrary}, nil
}
