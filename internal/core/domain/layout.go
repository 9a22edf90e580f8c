package domain

import "path/filepath"

const (
	// ProjectFileName is the name of the project configuration file.
	ProjectFileName = "autoload.yaml"

	// OverrideFileName is the name of the per-folder override file.
	OverrideFileName = "autoloader.ini"

	// LegacyOverrideFileName is the deprecated name of the per-folder override file.
	LegacyOverrideFileName = "library.ini"

	// StrictDirName is the dedicated declarations folder that switches a module to strict mode.
	StrictDirName = "classes"

	// DefaultCacheDir is the cache directory relative to the project root.
	DefaultCacheDir = "tmp/autoload"

	// DefaultDatabaseFile is the consolidated snapshot relative to the project root.
	DefaultDatabaseFile = "autoload.db"

	// SnapshotExt is the file extension of snapshot artifacts.
	SnapshotExt = ".msgpack"

	// SourceExt is the extension of scannable source files.
	SourceExt = ".php"

	// DefaultRootType is the universal base type elided from supertype lists.
	DefaultRootType = `SledgeHammer\Object`

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultExempt lists the class names that may omit a superclass in strict folders.
var DefaultExempt = []string{"Object", "Framework", "ErrorHandler"}

// ArtifactPath returns the snapshot path for a module stored inside the project.
func ArtifactPath(cacheDir, module string) string {
	return filepath.Join(cacheDir, module+SnapshotExt)
}

// ExternalArtifactPath returns the snapshot path for a module that lives outside the project.
// The key segment keeps modules with the same name but different locations apart.
func ExternalArtifactPath(cacheDir, key, module string) string {
	return filepath.Join(cacheDir, key, module+SnapshotExt)
}
