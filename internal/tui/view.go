package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/weave/internal/compiler"
	"github.com/alexisbeaulieu97/weave/internal/value"
)

// View renders the current state of the model.
func (m Model) View() string {
	var sections []string

	sections = append(sections, titleStyle.Render(fmt.Sprintf("weave watch • %s", m.tag)))
	sections = append(sections, sectionStyle.Render("Instructions"))
	sections = append(sections, renderInstructions(m.compiled, m.cursor))

	sections = append(sections, sectionStyle.Render("State"))
	sections = append(sections, renderState(m))

	sections = append(sections, sectionStyle.Render("Controls"))
	sections = append(sections, summaryStyle.Render(m.footer()))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderInstructions(compiled []compiler.Instruction, cursor int) string {
	lines := make([]string, 0, len(compiled))
	for i, instr := range compiled {
		marker := "  "
		style := pendingStyle
		if i == cursor {
			marker = "> "
			style = runningStyle
		} else if i < cursor {
			style = successStyle
		}
		lines = append(lines, style.Render(fmt.Sprintf("%s%3d  %s", marker, i, formatInstruction(instr))))
	}
	return strings.Join(lines, "\n")
}

func formatInstruction(instr compiler.Instruction) string {
	first := instr.First()
	var head string
	switch first.Kind {
	case compiler.TokenOp:
		head = string(first.Op)
	case compiler.TokenCall:
		head = "$" + first.Text
	case compiler.TokenComment:
		head = first.Text
	default:
		head = first.Text
	}
	parts := []string{head}
	for _, arg := range instr.Args() {
		parts = append(parts, arg.Text)
	}
	return strings.Join(parts, " ")
}

func renderState(m Model) string {
	floatingIcon := failureStyle.Render("false")
	if m.floating {
		floatingIcon = successStyle.Render("true")
	}

	lines := []string{
		fmt.Sprintf("kind:     %s", m.kind),
		fmt.Sprintf("floating: %s", floatingIcon),
		fmt.Sprintf("input:    %s", value.MarshalOrdered(m.input)),
		fmt.Sprintf("result:   %s", value.MarshalOrdered(m.result)),
	}
	if m.finished {
		status := successStyle.Render("done")
		if m.err != nil {
			status = failureStyle.Render("error: " + m.err.Error())
		}
		lines = append(lines, fmt.Sprintf("status:   %s", status))
		lines = append(lines, fmt.Sprintf("output:   %s", value.MarshalOrdered(m.output)))
	} else if m.auto {
		lines = append(lines, fmt.Sprintf("status:   %s running to completion", m.spinner.View()))
	} else {
		lines = append(lines, "status:   paused")
	}
	return strings.Join(lines, "\n")
}

func (m Model) footer() string {
	if m.finished {
		return "q quit"
	}
	if m.auto {
		return "running… q quit"
	}
	return "n step  r run to completion  q quit"
}
