package tui

import (
	"github.com/alexisbeaulieu97/weave/internal/trace"
)

// stepSink is a trace.Sink that pauses the interpreter after every
// instruction: Emit publishes the event and blocks until the debugger
// signals resume, turning the interpreter's otherwise uninterruptible
// Execute loop into something a Bubbletea program can single-step.
type stepSink struct {
	events chan trace.Event
	resume chan struct{}
}

func newStepSink() *stepSink {
	return &stepSink{
		events: make(chan trace.Event),
		resume: make(chan struct{}),
	}
}

// Emit satisfies trace.Sink.
func (s *stepSink) Emit(evt trace.Event) {
	s.events <- evt
	<-s.resume
}

var _ trace.Sink = (*stepSink)(nil)
