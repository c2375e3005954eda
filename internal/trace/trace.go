// Package trace defines the optional structured execution event sink
// the interpreter reports to after every instruction. It is distinct
// from the application logger: the tracer is a machine-readable
// per-instruction feed, not a human-facing operational log.
package trace

import (
	"time"

	"github.com/alexisbeaulieu97/weave/internal/value"
)

// Event describes one executed instruction.
type Event struct {
	PipelineTag     string
	Depth           int
	Cursor          int
	InstructionKind string
	Input           value.Value
	Result          value.Value
	Floating        bool
	Duration        time.Duration
}

// Sink receives trace events. Implementations must not block the
// interpreter for long; the zerolog-backed sink in this module writes
// asynchronously-safe structured log lines.
type Sink interface {
	Emit(evt Event)
}

// NoopSink discards every event. It is the zero value used whenever
// tracing has not been enabled, keeping the interpreter's hot path free
// of nil checks.
type NoopSink struct{}

// Emit implements Sink by doing nothing.
func (NoopSink) Emit(Event) {}
