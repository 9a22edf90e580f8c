package logger

// Chain flattening and rendering are tested apart from the slog handlers.
var (
	CollectErrorEntries = collectErrorEntries
	FormatErrorEntries  = formatErrorEntries
)
