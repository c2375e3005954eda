package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles Bubbletea messages and advances the step debugger.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stepMsg:
		m.cursor = msg.evt.Cursor
		m.kind = msg.evt.InstructionKind
		m.input = msg.evt.Input
		m.result = msg.evt.Result
		m.floating = msg.evt.Floating
		if m.auto {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, tea.Batch(cmd, resumeAndWait(m.sink, m.done))
		}
		return m, nil

	case finishedMsg:
		m.finished = true
		m.output = msg.output
		m.err = msg.err
		return m, nil

	case spinner.TickMsg:
		if !m.auto || m.finished {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "n":
			if !m.finished && !m.auto {
				return m, resumeAndWait(m.sink, m.done)
			}
		case "r":
			if !m.finished && !m.auto {
				m.auto = true
				return m, tea.Batch(m.spinner.Tick, resumeAndWait(m.sink, m.done))
			}
		case "ctrl+c", "q":
			return m, tea.Quit
		}
	}

	return m, nil
}
