package logger

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// Palette and glyphs used by the pretty handler.
const (
	Slate  = "#667085"
	Green  = "#22A06B"
	Red    = "#D93025"
	Yellow = "#F59E0B"

	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "·"
)

// ColorProfile returns Ascii when NO_COLOR is set and the detected profile otherwise.
func ColorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

func newOutput(w io.Writer, profile termenv.Profile) *termenv.Output {
	return termenv.NewOutput(w, termenv.WithProfile(profile), termenv.WithTTY(true))
}
