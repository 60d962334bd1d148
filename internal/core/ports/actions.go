// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/ccplan/internal/core/domain"
)

//go:generate mockgen -source=actions.go -destination=mocks/mock_actions.go -package=mocks

// CompileRequest describes the compile actions a target needs.
type CompileRequest struct {
	Label   domain.Label
	Sources []domain.Artifact
	Copts   []string
	Plugins []domain.PluginInfo
	// Context is the consolidated compilation context every source compiles against.
	Context        *domain.CompilationContext
	LinkTargetType domain.LinkTargetType
	SaveTemps      bool
	// EnableModules turns on layering check compiles against the module maps.
	EnableModules bool
	Configuration domain.Configuration
}

// Compiler plans compile actions.
type Compiler interface {
	// Compile registers the compile actions for req and returns what they produce.
	Compile(ctx context.Context, req CompileRequest) (*domain.CompilationOutputs, error)
}

// LinkRequest describes the link actions a target needs.
type LinkRequest struct {
	Label          domain.Label
	Outputs        *domain.CompilationOutputs
	LinkTargetType domain.LinkTargetType
	// CompileActionsEmitted is false when the compile step was skipped.
	CompileActionsEmitted bool
	Configuration         domain.Configuration
}

// Linker plans link actions.
type Linker interface {
	// Link registers the archive and shared object actions for req and returns the libraries.
	Link(ctx context.Context, req LinkRequest) (*domain.LinkingOutputs, error)
}

// ModuleMapDeclaration is the content of a module map file.
type ModuleMapDeclaration struct {
	Owner          domain.Label
	ModuleMap      domain.ModuleMap
	PublicHeaders  []domain.Artifact
	PrivateHeaders []domain.Artifact
	// Dependencies are the module maps the module uses, in declaration order.
	Dependencies []domain.ModuleMap
}

// ActionRegistrar records planned actions.
type ActionRegistrar interface {
	// Register records action and returns it with its content key set.
	Register(ctx context.Context, action domain.Action) (domain.Action, error)
	// RegisterModuleMap records the action writing a module map.
	RegisterModuleMap(ctx context.Context, decl ModuleMapDeclaration) error
	// Actions returns the actions registered for owner in registration order.
	Actions(owner domain.Label) []domain.Action
}
