package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/autoload/internal/core/ports"
)

var _ ports.Logger = (*Logger)(nil)

// messager matches the Message and Metadata methods of zerr.Error.
type messager interface {
	Message() string
	Metadata() map[string]any
}

// ErrorEntry is one link of an error chain as rendered by Error.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger   *slog.Logger
	mu       sync.RWMutex
	jsonMode bool
	output   io.Writer
	level    slog.LevelVar
}

// New creates a new Logger writing pretty output to stderr.
func New() *Logger {
	l := &Logger{output: os.Stderr}
	l.rebuild()
	return l
}

// SetOutput updates the logger's output destination.
// It preserves the current JSON mode setting. A nil writer means stderr.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.rebuild()
}

// SetJSON switches between JSON and pretty logging.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.jsonMode = enable
	l.rebuild()
}

// SetDebug lowers the level so Debug messages are written.
func (l *Logger) SetDebug(enable bool) {
	if enable {
		l.level.Set(slog.LevelDebug)
		return
	}
	l.level.Set(slog.LevelInfo)
}

func (l *Logger) rebuild() {
	opts := &slog.HandlerOptions{Level: &l.level}
	if l.jsonMode {
		l.logger = slog.New(slog.NewJSONHandler(l.output, opts))
		return
	}
	l.logger = slog.New(NewPrettyHandler(l.output, opts))
}

// Debug logs a message only written at debug level.
func (l *Logger) Debug(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Debug(msg)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error with its whole cause chain.
func (l *Logger) Error(err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if err == nil {
		return
	}

	entries := collectErrorEntries(err)
	if l.jsonMode {
		chain := make([]string, 0, len(entries))
		for _, e := range entries[1:] {
			chain = append(chain, e.Message)
		}
		args := []any{"error", err.Error()}
		if len(chain) > 0 {
			args = append(args, "causes", chain)
		}
		for _, e := range entries {
			for k, v := range e.Metadata {
				args = append(args, k, v)
			}
		}
		l.logger.Error(entries[0].Message, args...)
		return
	}

	l.logger.Error(formatErrorEntries(entries))
}

// collectErrorEntries flattens an error chain. zerr links contribute their own
// message and metadata, joined errors are expanded in order and any other
// error ends its branch with its full text.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry
	var pending map[string]any

	add := func(e ErrorEntry) {
		if len(pending) > 0 {
			if e.Metadata == nil {
				e.Metadata = make(map[string]any, len(pending))
			}
			maps.Copy(e.Metadata, pending)
			pending = nil
		}
		entries = append(entries, e)
	}

	var walk func(error)
	walk = func(current error) {
		for current != nil {
			switch e := current.(type) {
			case messager:
				if msg := e.Message(); msg != "" {
					add(ErrorEntry{Message: msg, Metadata: e.Metadata()})
				} else if md := e.Metadata(); len(md) > 0 {
					// Metadata-only wrappers belong to the nearest message.
					if len(entries) > 0 {
						last := &entries[len(entries)-1]
						if last.Metadata == nil {
							last.Metadata = make(map[string]any, len(md))
						}
						maps.Copy(last.Metadata, md)
					} else {
						pending = md
					}
				}
				current = errors.Unwrap(current)
			case interface{ Unwrap() []error }:
				for _, member := range e.Unwrap() {
					walk(member)
				}
				return
			default:
				add(ErrorEntry{Message: current.Error()})
				return
			}
		}
	}
	walk(err)
	return entries
}

// formatErrorEntries renders entries as an "Error:" line followed by a
// "Caused by:" list, each with its metadata sorted by key.
func formatErrorEntries(entries []ErrorEntry) string {
	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")
		head, indent := "    → ", "      "
		if i == 0 {
			head, indent = "Error: ", "       "
		} else if i == 1 {
			lines = append(lines, "", "  Caused by:")
		}

		lines = append(lines, head+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, indent+line)
		}
		for _, key := range slices.Sorted(maps.Keys(entry.Metadata)) {
			lines = append(lines, fmt.Sprintf("%s%s: %v", indent, key, entry.Metadata[key]))
		}
	}

	return strings.Join(lines, "\n")
}
