package domain

import "strings"

// ModuleStatus represents where a module is in a rebuild.
type ModuleStatus string

const (
	// ModuleStatusPending indicates the module has not been indexed yet.
	ModuleStatusPending ModuleStatus = "pending"
	// ModuleStatusRunning indicates the module is being walked.
	ModuleStatusRunning ModuleStatus = "running"
	// ModuleStatusCompleted indicates the module was walked.
	ModuleStatusCompleted ModuleStatus = "completed"
	// ModuleStatusCached indicates the module's snapshot was reused.
	ModuleStatusCached ModuleStatus = "cached"
	// ModuleStatusFailed indicates the module could not be indexed.
	ModuleStatusFailed ModuleStatus = "failed"
	// ModuleStatusSkipped indicates the module folder does not exist.
	ModuleStatusSkipped ModuleStatus = "skipped"
)

// LogLevel represents the severity of a log message, mirroring the standard slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// IsTerminal checks if a status is final for the current rebuild.
func (s ModuleStatus) IsTerminal() bool {
	switch s {
	case ModuleStatusCompleted, ModuleStatusCached, ModuleStatusFailed, ModuleStatusSkipped:
		return true
	default:
		return false
	}
}

// NormalizeModuleStatus converts a string to a ModuleStatus, defaulting to pending if unknown.
func NormalizeModuleStatus(s string) ModuleStatus {
	switch strings.ToLower(s) {
	case string(ModuleStatusRunning):
		return ModuleStatusRunning
	case string(ModuleStatusCompleted):
		return ModuleStatusCompleted
	case string(ModuleStatusCached):
		return ModuleStatusCached
	case string(ModuleStatusFailed):
		return ModuleStatusFailed
	case string(ModuleStatusSkipped):
		return ModuleStatusSkipped
	default:
		return ModuleStatusPending
	}
}
