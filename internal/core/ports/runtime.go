package ports

import "go.trai.ch/autoload/internal/core/domain"

// Runtime is the host type space the resolver materializes types into.
//
//go:generate mockgen -source=runtime.go -destination=mocks/mock_runtime.go -package=mocks
type Runtime interface {
	// Declared reports whether name is already materialized.
	Declared(name string) bool
	// Load materializes every type defined in file. Loading a file twice is a no-op.
	Load(file string) error
	// Derive materializes name as an empty subclass of base.
	Derive(name, base string) error
	// Describe returns what the runtime knows about a materialized type.
	Describe(name string) (domain.TypeInfo, bool)
}
