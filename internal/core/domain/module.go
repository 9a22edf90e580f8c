package domain

import (
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// Module is a named source tree that is indexed and cached on its own.
type Module struct {
	Name string
	// Path is the module's base path.
	Path string
	// Strict is set when the module carries a dedicated declarations folder.
	Strict bool
}

// SourceDir returns the folder the walker starts from.
func (m Module) SourceDir() string {
	if m.Strict {
		return filepath.Join(m.Path, StrictDirName)
	}
	return m.Path
}

// Settings returns the preset for the module.
func (m Module) Settings() Settings {
	if m.Strict {
		return StrictSettings()
	}
	return DefaultSettings()
}

// Settings controls how a folder is walked.
type Settings struct {
	MandatorySuperclass                bool
	MatchingFilename                   bool
	MandatoryCommentBlock              bool
	NotifyOnMultipleDefinitionsPerFile bool
	// RevalidateCacheDelay is zero when every run re-checks the tree.
	RevalidateCacheDelay time.Duration
	IgnoreAll            bool
	IgnoreFolders        []string
	IgnoreFiles          []string
	// TolerateAllExtensions skips every non-source file silently.
	TolerateAllExtensions bool
	// TolerateExtensions lists the extensions skipped silently when TolerateAllExtensions is false.
	TolerateExtensions []string
}

// DefaultSettings is the preset for modules without a declarations folder.
func DefaultSettings() Settings {
	return Settings{
		MandatorySuperclass:                false,
		MatchingFilename:                   true,
		MandatoryCommentBlock:              false,
		NotifyOnMultipleDefinitionsPerFile: true,
		RevalidateCacheDelay:               20 * time.Second,
		IgnoreAll:                          false,
		IgnoreFolders:                      []string{".git", ".svn"},
		IgnoreFiles:                        []string{".DS_Store", ".gitignore"},
		TolerateAllExtensions:              true,
	}
}

// StrictSettings is the preset for modules with a declarations folder.
func StrictSettings() Settings {
	return Settings{
		MandatorySuperclass:                true,
		MatchingFilename:                   true,
		MandatoryCommentBlock:              true,
		NotifyOnMultipleDefinitionsPerFile: true,
		RevalidateCacheDelay:               10 * time.Second,
		IgnoreAll:                          false,
		IgnoreFolders:                      nil,
		IgnoreFiles:                        []string{".DS_Store"},
		TolerateExtensions:                 []string{"swp", "bak", "backup"},
	}
}

// IgnoresFolder reports whether a folder with the given base name is skipped.
func (s Settings) IgnoresFolder(name string) bool {
	return slices.Contains(s.IgnoreFolders, name)
}

// IgnoresFile reports whether a file with the given base name is skipped.
// The override file itself is never scanned.
func (s Settings) IgnoresFile(name string) bool {
	return name == OverrideFileName || slices.Contains(s.IgnoreFiles, name)
}

// ToleratesExtension reports whether a non-source file may be skipped without a diagnostic.
func (s Settings) ToleratesExtension(name string) bool {
	if s.TolerateAllExtensions {
		return true
	}
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	return slices.Contains(s.TolerateExtensions, ext)
}

// SettingKeys lists the keys recognized in override files.
var SettingKeys = []string{
	"mandatory_superclass",
	"matching_filename",
	"mandatory_comment_block",
	"notify_on_multiple_definitions_per_file",
	"revalidate_cache_delay",
	"ignore_all",
	"ignore_folders",
	"ignore_files",
	"ignore_extensions",
}

// Binding maps a type name to a file explicitly, bypassing the scanner.
type Binding struct {
	Name string
	// File is relative to the folder holding the override file.
	File string
}

// SettingsPatch holds the settings an override file sets. Nil fields are inherited.
type SettingsPatch struct {
	MandatorySuperclass                *bool
	MatchingFilename                   *bool
	MandatoryCommentBlock              *bool
	NotifyOnMultipleDefinitionsPerFile *bool
	RevalidateCacheDelay               *time.Duration
	IgnoreAll                          *bool
	IgnoreFolders                      *[]string
	IgnoreFiles                        *[]string
	TolerateAllExtensions              *bool
	TolerateExtensions                 *[]string
}

// Override is the parsed content of a per-folder override file.
type Override struct {
	Bindings []Binding
	Patch    SettingsPatch
	// Invalid lists root keys that are not recognized settings.
	Invalid []string
	// Legacy is set when the folder still carries a library.ini.
	Legacy bool
}

// Apply returns s with the patch applied.
//
//nolint:cyclop // one branch per setting
func (p SettingsPatch) Apply(s Settings) Settings {
	if p.MandatorySuperclass != nil {
		s.MandatorySuperclass = *p.MandatorySuperclass
	}
	if p.MatchingFilename != nil {
		s.MatchingFilename = *p.MatchingFilename
	}
	if p.MandatoryCommentBlock != nil {
		s.MandatoryCommentBlock = *p.MandatoryCommentBlock
	}
	if p.NotifyOnMultipleDefinitionsPerFile != nil {
		s.NotifyOnMultipleDefinitionsPerFile = *p.NotifyOnMultipleDefinitionsPerFile
	}
	if p.RevalidateCacheDelay != nil {
		s.RevalidateCacheDelay = *p.RevalidateCacheDelay
	}
	if p.IgnoreAll != nil {
		s.IgnoreAll = *p.IgnoreAll
	}
	if p.IgnoreFolders != nil {
		s.IgnoreFolders = *p.IgnoreFolders
	}
	if p.IgnoreFiles != nil {
		s.IgnoreFiles = *p.IgnoreFiles
	}
	if p.TolerateAllExtensions != nil {
		s.TolerateAllExtensions = *p.TolerateAllExtensions
	}
	if p.TolerateExtensions != nil {
		s.TolerateExtensions = *p.TolerateExtensions
	}
	return s
}
