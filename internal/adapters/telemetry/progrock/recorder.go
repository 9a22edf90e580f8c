// Package progrock provides the Progrock implementation of the telemetry adapter.
package progrock

import (
	"context"
	"time"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/autoload/internal/core/ports"
)

var _ ports.Telemetry = (*Recorder)(nil)

// Recorder implements ports.Telemetry on a progrock tape. When a logger is
// attached, every finished vertex is also reported at debug level.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder
	log ports.Logger
	now func() time.Time
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithLogger reports vertex outcomes to log.
func WithLogger(log ports.Logger) Option {
	return func(r *Recorder) { r.log = log }
}

// New creates a Recorder writing to an in-memory tape.
func New(opts ...Option) *Recorder {
	return NewRecorder(progrock.NewTape(), opts...)
}

// NewRecorder creates a Recorder writing status updates to w.
func NewRecorder(w progrock.Writer, opts ...Option) *Recorder {
	r := &Recorder{
		w:   w,
		rec: progrock.NewRecorder(w),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record starts a vertex named after the unit of work and stores it in the
// returned context. Vertexes with the same name share a digest.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	vertex := &Vertex{
		vertex:  r.rec.Vertex(digest.FromString(name), name),
		name:    name,
		log:     r.log,
		now:     r.now,
		started: r.now(),
	}
	return ports.ContextWithVertex(ctx, vertex), vertex
}

// Close closes the underlying writer when it supports closing.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
