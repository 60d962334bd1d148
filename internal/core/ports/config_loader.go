package ports

import "go.trai.ch/ccplan/internal/core/domain"

// ConfigLoader defines the interface for loading a workspace.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the workspace file at path and returns the validated workspace.
	Load(path string) (*domain.Workspace, error)
}
