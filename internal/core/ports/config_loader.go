package ports

import "go.trai.ch/autoload/internal/core/domain"

// ProjectLoader defines the interface for loading the project configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ProjectLoader interface {
	// Load finds the project file starting at cwd and walking up, and resolves it.
	Load(cwd string) (*domain.Project, error)
}

// OverrideLoader reads per-folder override files.
type OverrideLoader interface {
	// Load parses the override file in dir. It returns nil, nil when dir has neither
	// an autoloader.ini nor a legacy library.ini.
	Load(dir string) (*domain.Override, error)
}
