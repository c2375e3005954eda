package compiler

import "strings"

// DefaultName is the registry key the container always keeps populated.
const DefaultName = "default"

// Default is the line-oriented tokenizer described in §4.D. It has no
// execution behaviour of its own — execution is implemented by
// interpreter.Default, which wraps Default to satisfy the
// full compiler plug-in contract.
type Default struct{}

// NewDefault constructs the default tokenizer.
func NewDefault() Default { return Default{} }

// Compile tokenizes every line independently. A blank line yields an
// empty Instruction (a no-op at run time).
func (Default) Compile(lines []string) ([]Instruction, error) {
	out := make([]Instruction, 0, len(lines))
	for _, line := range lines {
		out = append(out, tokenizeLine(line))
	}
	return out, nil
}

// DebugPrefix marks a line as "debug/trace only": skipped when the
// pipeline runs as a callee, executed normally at the top level.
const DebugPrefix = "->"

// tokenizeLine implements the per-line rules: trim, strip a leading
// "->" debug marker (recorded on the first token without disturbing
// its Kind/Op so dispatch is unaffected), split on spaces, and re-join
// quoted runs of words (preserving interior spaces) before
// classifying each one.
func tokenizeLine(line string) Instruction {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Instruction{}
	}

	debug := false
	if strings.HasPrefix(trimmed, DebugPrefix) {
		debug = true
		trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, DebugPrefix))
	}
	if trimmed == "" {
		return Instruction{}
	}

	words := strings.Split(trimmed, " ")
	merged := mergeQuotedWords(words)

	instr := make(Instruction, 0, len(merged))
	for _, w := range merged {
		if w == "" {
			continue
		}
		instr = append(instr, getTokenFromWord(w))
	}
	if debug && len(instr) > 0 {
		instr[0].Text = DebugPrefix + instr[0].Text
	}
	return instr
}

// mergeQuotedWords rejoins a "..." or '...' run that got split on
// spaces back into one word, separated by single spaces, keeping the
// surrounding quote characters so that literal recognition (done later,
// at resolve time) can strip them.
func mergeQuotedWords(words []string) []string {
	out := make([]string, 0, len(words))
	for i := 0; i < len(words); i++ {
		w := words[i]
		if len(w) == 0 || (w[0] != '"' && w[0] != '\'') {
			out = append(out, w)
			continue
		}
		quote := w[0]
		if len(w) > 1 && w[len(w)-1] == quote {
			out = append(out, w)
			continue
		}
		joined := w
		j := i + 1
		for ; j < len(words); j++ {
			joined += " " + words[j]
			if len(words[j]) > 0 && words[j][len(words[j])-1] == quote {
				break
			}
		}
		out = append(out, joined)
		i = j
	}
	return out
}
