// Package logger implements a logging adapter using log/slog.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
)

// levelStyle is the glyph and colour of one log level.
type levelStyle struct {
	glyph string
	color string
}

// styleFor picks the style of the highest level not above l.
func styleFor(l slog.Level) levelStyle {
	switch {
	case l >= slog.LevelError:
		return levelStyle{glyph: Cross, color: Red}
	case l >= slog.LevelWarn:
		return levelStyle{glyph: Warning, color: Yellow}
	case l >= slog.LevelInfo:
		return levelStyle{glyph: Check, color: Green}
	default:
		return levelStyle{glyph: Dot, color: Slate}
	}
}

// PrettyHandler writes one coloured line per record: a level glyph, the
// message, then key=value attributes. Groups nest as dotted key prefixes.
type PrettyHandler struct {
	out    *termenv.Output
	level  slog.Leveler
	attrs  []string
	prefix string
}

// NewPrettyHandler creates a PrettyHandler with the colour profile of the environment.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	return NewPrettyHandlerWithProfile(w, ColorProfile(), opts)
}

// NewPrettyHandlerWithProfile creates a PrettyHandler with a fixed colour profile.
// The level is read on every record, so a *slog.LevelVar can change it later.
func NewPrettyHandlerWithProfile(w io.Writer, profile termenv.Profile, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}
	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}
	return &PrettyHandler{out: newOutput(w, profile), level: level}
}

func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle writes the record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	style := styleFor(r.Level)

	parts := append([]string{style.glyph, r.Message}, h.attrs...)
	r.Attrs(func(attr slog.Attr) bool {
		parts = appendAttr(parts, h.prefix, attr)
		return true
	})

	styled := h.out.String(strings.Join(parts, " ")).Foreground(termenv.RGBColor(style.color))
	_, err := h.out.WriteString(styled.String() + "\n")
	return err
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = h.attrs[:len(h.attrs):len(h.attrs)]
	for _, attr := range attrs {
		clone.attrs = appendAttr(clone.attrs, h.prefix, attr)
	}
	return &clone
}

func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

// appendAttr appends "key=value" to parts, expanding group values into
// prefixed keys and quoting values that contain spaces.
func appendAttr(parts []string, prefix string, attr slog.Attr) []string {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return parts
	}
	if attr.Value.Kind() == slog.KindGroup {
		inner := prefix
		if attr.Key != "" {
			inner += attr.Key + "."
		}
		for _, a := range attr.Value.Group() {
			parts = appendAttr(parts, inner, a)
		}
		return parts
	}

	value := attr.Value.String()
	if strings.ContainsAny(value, " \t\n\"") {
		value = strconv.Quote(value)
	}
	return append(parts, prefix+attr.Key+"="+value)
}
