package progress

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
)

// Sink receives periodic percent-complete updates for running tasks.
type Sink interface {
	Update(title string, percent float64)
}

// ConsoleSink renders a single rewritten meter line on a shared console.
// Writes are serialized; with several workers updating at once the last
// writer wins, which is tolerable for a display-only meter.
type ConsoleSink struct {
	mu      sync.Mutex
	out     io.Writer
	percent *color.Color
}

// NewConsoleSink creates a console meter writing to out
func NewConsoleSink(out io.Writer) *ConsoleSink {
	return &ConsoleSink{
		out:     out,
		percent: color.New(color.FgCyan, color.Bold),
	}
}

// Update rewrites the meter line for the given task
func (s *ConsoleSink) Update(title string, percent float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "\r%s %s", title, s.percent.Sprintf("%5.1f%%", percent))
}

// NopSink discards all updates; used when no console is attached
type NopSink struct{}

// Update implements Sink
func (NopSink) Update(string, float64) {}
