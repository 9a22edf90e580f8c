package logger

import (
	"context"
	"os"
	"strings"

	"github.com/grindlemire/graft"
	"go.trai.ch/autoload/internal/core/ports"
)

// NodeID is the unique identifier for the logger Graft node.
const NodeID graft.ID = "adapter.logger"

// Environment variables read when the logger node starts.
const (
	EnvLogFormat = "AUTOLOAD_LOG_FORMAT"
	EnvLogLevel  = "AUTOLOAD_LOG_LEVEL"
)

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Logger, error) {
			return FromEnv(os.Getenv), nil
		},
	})
}

// FromEnv builds a stderr logger, switched to JSON when the format variable
// is "json" and to debug level when the level variable is "debug".
func FromEnv(getenv func(string) string) *Logger {
	l := New()
	if strings.EqualFold(getenv(EnvLogFormat), "json") {
		l.SetJSON(true)
	}
	if strings.EqualFold(getenv(EnvLogLevel), "debug") {
		l.SetDebug(true)
	}
	return l
}
