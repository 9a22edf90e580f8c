package domain

import "go.trai.ch/zerr"

var (
	// ErrUnknownType is returned when no declaration exists for a requested type,
	// not even at a shallower namespace.
	ErrUnknownType = zerr.New("unknown type")

	// ErrParentDeclarationFailed is returned when the supertype of a type could not be declared.
	ErrParentDeclarationFailed = zerr.New("parent declaration failed")

	// ErrInterfaceDeclarationFailed is returned when an interface implemented by a class could not be declared.
	ErrInterfaceDeclarationFailed = zerr.New("interface declaration failed")

	// ErrSourceFileCorrupt is returned when a defining file cannot be loaded or does not declare
	// the type the index promised.
	ErrSourceFileCorrupt = zerr.New("source file corrupt")

	// ErrCyclicDependency is returned when a type is requested again while its own
	// supertypes or interfaces are still being resolved.
	ErrCyclicDependency = zerr.New("cyclic dependency")

	// ErrCacheWriteFailed is reported when a snapshot could not be persisted.
	ErrCacheWriteFailed = zerr.New("cache write failed")

	// ErrSnapshotCorrupt is returned when a snapshot artifact cannot be decoded.
	ErrSnapshotCorrupt = zerr.New("snapshot corrupt")

	// ErrConfigNotFound is returned when no project file exists in the directory tree.
	ErrConfigNotFound = zerr.New("project configuration not found")

	// ErrInvalidConfig is returned when the project file is malformed.
	ErrInvalidConfig = zerr.New("invalid project configuration")

	// ErrModuleNotFound is returned when a configured module path does not exist.
	ErrModuleNotFound = zerr.New("module not found")

	// ErrTypeAlreadyDeclared is returned when the runtime is asked to declare a name twice.
	ErrTypeAlreadyDeclared = zerr.New("type already declared")

	// ErrNoTypesSpecified is returned when a command requires type names but none were given.
	ErrNoTypesSpecified = zerr.New("no types specified")

	// ErrValidationFailed is returned when the registry references types that cannot be found.
	ErrValidationFailed = zerr.New("registry validation failed")

	// ErrUnsupportedFormat is returned when a dump is requested in an unknown format.
	ErrUnsupportedFormat = zerr.New("unsupported format")

	// ErrNoSourceFile is returned when a type has no defining file to show.
	ErrNoSourceFile = zerr.New("type has no source file")
)
