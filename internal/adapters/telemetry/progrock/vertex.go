package progrock

import (
	"fmt"
	"io"
	"time"

	"github.com/vito/progrock"
	"go.trai.ch/autoload/internal/core/domain"
	"go.trai.ch/autoload/internal/core/ports"
)

var _ ports.Vertex = (*Vertex)(nil)

// Vertex is one recorded unit of work, usually the indexing of a module.
type Vertex struct {
	vertex  *progrock.VertexRecorder
	name    string
	log     ports.Logger
	now     func() time.Time
	started time.Time
	cached  bool
}

func (v *Vertex) Stdout() io.Writer {
	return v.vertex.Stdout()
}

// Log writes msg to the vertex output as "[level] msg".
func (v *Vertex) Log(level domain.LogLevel, msg string) {
	_, _ = fmt.Fprintf(v.vertex.Stdout(), "[%s] %s\n", level.String(), msg)
}

func (v *Vertex) Complete(err error) {
	v.vertex.Done(err)
	if v.log == nil {
		return
	}

	elapsed := v.now().Sub(v.started).Round(time.Millisecond)
	switch {
	case err != nil:
		v.log.Debug(fmt.Sprintf("%s failed after %s: %v", v.name, elapsed, err))
	case v.cached:
		v.log.Debug(fmt.Sprintf("%s: cached", v.name))
	default:
		v.log.Debug(fmt.Sprintf("%s: done in %s", v.name, elapsed))
	}
}

func (v *Vertex) Cached() {
	v.cached = true
	v.vertex.Cached()
}
