package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/weave/internal/compiler"
	"github.com/alexisbeaulieu97/weave/internal/container"
	"github.com/alexisbeaulieu97/weave/internal/trace"
	"github.com/alexisbeaulieu97/weave/internal/value"
)

// stepMsg reports one instruction paused by the step sink.
type stepMsg struct {
	evt trace.Event
}

// finishedMsg reports that the pipeline run has completed.
type finishedMsg struct {
	output value.Value
	err    error
}

// Model is the Bubbletea state for weave's pipeline step debugger: it
// drives a pipeline run in the background, paused after every
// instruction by a stepSink, and lets the operator advance one
// instruction at a time or let the rest run unattended.
type Model struct {
	tag      string
	compiled []compiler.Instruction

	sink *stepSink
	done chan finishedMsg

	spinner spinner.Model

	cursor   int
	kind     string
	input    value.Value
	result   value.Value
	floating bool

	auto     bool
	finished bool
	output   value.Value
	err      error
}

// NewModel starts tag running against c, paused on a stepSink, and
// returns the debugger model that steps through its execution.
func NewModel(ctx context.Context, c *container.Container, tag string, compiled []compiler.Instruction, input value.Value) Model {
	sink := newStepSink()
	done := make(chan finishedMsg, 1)

	prior := c.Trace()
	c.SetTrace(sink)

	go func() {
		out, err := c.RunPipeline(ctx, tag, input, value.NewComponent(c), 0)
		c.SetTrace(prior)
		done <- finishedMsg{output: out, err: err}
	}()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = runningStyle

	return Model{
		tag:      tag,
		compiled: compiled,
		sink:     sink,
		done:     done,
		spinner:  s,
		cursor:   -1,
		input:    input,
	}
}

// Init starts listening for the first paused instruction.
func (m Model) Init() tea.Cmd {
	return waitForStep(m.sink, m.done)
}

func waitForStep(sink *stepSink, done chan finishedMsg) tea.Cmd {
	return func() tea.Msg {
		select {
		case evt := <-sink.events:
			return stepMsg{evt: evt}
		case fin := <-done:
			return fin
		}
	}
}

func resumeAndWait(sink *stepSink, done chan finishedMsg) tea.Cmd {
	return func() tea.Msg {
		sink.resume <- struct{}{}
		select {
		case evt := <-sink.events:
			return stepMsg{evt: evt}
		case fin := <-done:
			return fin
		}
	}
}

// Cursor returns the index of the instruction paused on, or -1 before
// the first instruction has run.
func (m Model) Cursor() int {
	return m.cursor
}

// Finished reports whether the pipeline run has completed.
func (m Model) Finished() bool {
	return m.finished
}

// Output returns the final output Value once Finished reports true.
func (m Model) Output() value.Value {
	return m.output
}

// Err returns the error the run finished with, if any.
func (m Model) Err() error {
	return m.err
}
