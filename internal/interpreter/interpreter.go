// Package interpreter implements the stack-free default execution
// engine: a cursor-driven loop over a compiled instruction program,
// dispatching on each instruction's first token.
package interpreter

import (
	"context"
	"strings"
	"time"

	compilerpkg "github.com/alexisbeaulieu97/weave/internal/compiler"
	"github.com/alexisbeaulieu97/weave/internal/pathresolve"
	"github.com/alexisbeaulieu97/weave/internal/pipeline"
	"github.com/alexisbeaulieu97/weave/internal/trace"
	"github.com/alexisbeaulieu97/weave/internal/value"
	werrors "github.com/alexisbeaulieu97/weave/pkg/errors"
)

// MaxDepth is the recursion ceiling enforced by runPipeline; the
// eleventh nested call raises PipelineDepthExceeded.
const MaxDepth = 10

// Default is the stack-free interpreter paired with the default
// tokenizer. It satisfies pipeline.Compiler.
type Default struct {
	resolver *pathresolve.Resolver
}

// NewDefault builds an interpreter whose path resolution is rooted at
// lookup (ordinarily the container's registry).
func NewDefault(lookup pathresolve.Lookup) *Default {
	return &Default{resolver: pathresolve.New(lookup)}
}

// Name satisfies pipeline.Compiler.
func (d *Default) Name() string { return compilerpkg.DefaultName }

// Compile satisfies pipeline.Compiler by delegating to the default
// tokenizer.
func (d *Default) Compile(lines []string) ([]compilerpkg.Instruction, error) {
	return compilerpkg.NewDefault().Compile(lines)
}

// execState carries the cursor and label table through one Execute
// call; the floating flag lives on the per-call context object. It is not shared across concurrent invocations —
// pipelines are not reentrant, per the single-threaded cooperative
// model.
type execState struct {
	cursor int
	labels map[string]int
}

// Execute runs compiled against rt, starting from input/srcObject, at
// the given recursion depth. It satisfies pipeline.Compiler.
func (d *Default) Execute(ctx context.Context, rt pipeline.Runtime, compiled []compilerpkg.Instruction, input, srcObject value.Value, depth int) (value.Value, error) {
	state := &execState{labels: findLabels(compiled)}
	contextObj := value.NewObject()

	for state.cursor < len(compiled) {
		instr := compiled[state.cursor]
		next := state.cursor + 1

		skip, stripped := prefixDecision(instr, depth)
		if skip {
			state.cursor = next
			continue
		}
		if stripped != nil {
			instr = stripped
		}

		cursorBefore := state.cursor
		started := time.Now()
		result, hasResult, jumped, err := d.step(ctx, rt, state, instr, contextObj, input, srcObject, depth)
		if sink := rt.Trace(); sink != nil {
			floating, _ := contextObj.Object().Get("floating")
			sink.Emit(trace.Event{
				Depth:           depth,
				Cursor:          cursorBefore,
				InstructionKind: instructionKindLabel(instr),
				Input:           input,
				Result:          result,
				Floating:        floating.Truthy(),
				Duration:        time.Since(started),
			})
		}
		if err != nil {
			return value.Null(), err
		}
		if hasResult {
			input = result
		}
		if jumped {
			continue
		}
		state.cursor = next
	}

	return input, nil
}

// prefixDecision implements the "->" debug-prefix rule: skipped when
// executing as a callee (depth > 0), stripped (Kind/Op left intact so
// dispatch is unaffected) and executed normally at the top level.
func prefixDecision(instr compilerpkg.Instruction, depth int) (skip bool, stripped compilerpkg.Instruction) {
	first := instr.First()
	if !strings.HasPrefix(first.Text, compilerpkg.DebugPrefix) {
		return false, nil
	}
	if depth > 0 {
		return true, nil
	}
	out := make(compilerpkg.Instruction, len(instr))
	copy(out, instr)
	out[0].Text = strings.TrimPrefix(first.Text, compilerpkg.DebugPrefix)
	return false, out
}

// findLabels pre-scans the program and records the index of every
// label instruction, observable before any instruction runs.
func findLabels(compiled []compilerpkg.Instruction) map[string]int {
	labels := make(map[string]int)
	for i, instr := range compiled {
		first := instr.First()
		if first.Kind == compilerpkg.TokenOp && first.Op == compilerpkg.OpLabel {
			if args := instr.Args(); len(args) > 0 {
				labels[args[0].Text] = i
			}
		}
	}
	return labels
}

// step executes one instruction and reports whether it produced a
// value that should become the new input, whether it performed a
// jump (so the caller must not apply the default cursor+=1), and any
// error.
func (d *Default) step(ctx context.Context, rt pipeline.Runtime, state *execState, instr compilerpkg.Instruction, contextObj, input, srcObject value.Value, depth int) (result value.Value, hasResult, jumped bool, err error) {
	first := instr.First()
	args := instr.Args()

	switch first.Kind {
	case compilerpkg.TokenComment:
		return value.Null(), false, false, nil
	case compilerpkg.TokenCall:
		res, err := rt.RunPipeline(ctx, first.Text, input, srcObject, depth+1)
		return res, true, false, err
	case compilerpkg.TokenReference:
		res, err := d.executeReference(instr, contextObj, input, srcObject)
		return res, true, false, err
	case compilerpkg.TokenOp:
		return d.executeOp(first.Op, args, state, contextObj, input, srcObject)
	default:
		return value.Null(), false, false, nil
	}
}

func (d *Default) executeOp(op compilerpkg.OpKind, args []compilerpkg.Token, state *execState, contextObj, input, srcObject value.Value) (result value.Value, hasResult, jumped bool, err error) {
	arg := func(i int) string {
		if i < len(args) {
			return args[i].Text
		}
		return ""
	}

	switch op {
	case compilerpkg.OpSet:
		return value.Null(), false, false, d.resolver.SetValue(arg(0), arg(1), contextObj, input, srcObject)
	case compilerpkg.OpDelete:
		return value.Null(), false, false, d.resolver.DeleteValue(arg(0), contextObj, input, srcObject)
	case compilerpkg.OpGet:
		v, err := d.resolver.GetValue(arg(0), contextObj, input, srcObject)
		return v, true, false, err
	case compilerpkg.OpInc:
		return value.Null(), false, false, d.resolver.IncValue(arg(0), arg(1), contextObj, input, srcObject)
	case compilerpkg.OpDec:
		return value.Null(), false, false, d.resolver.DecValue(arg(0), arg(1), contextObj, input, srcObject)
	case compilerpkg.OpEq:
		_, err := d.resolver.EqValue(arg(0), arg(1), contextObj, input, srcObject)
		return value.Null(), false, false, err
	case compilerpkg.OpNeq:
		_, err := d.resolver.NeqValue(arg(0), arg(1), contextObj, input, srcObject)
		return value.Null(), false, false, err
	case compilerpkg.OpGt:
		_, err := d.resolver.GtValue(arg(0), arg(1), contextObj, input, srcObject)
		return value.Null(), false, false, err
	case compilerpkg.OpGe:
		_, err := d.resolver.GeValue(arg(0), arg(1), contextObj, input, srcObject)
		return value.Null(), false, false, err
	case compilerpkg.OpLt:
		_, err := d.resolver.LtValue(arg(0), arg(1), contextObj, input, srcObject)
		return value.Null(), false, false, err
	case compilerpkg.OpLe:
		_, err := d.resolver.LeValue(arg(0), arg(1), contextObj, input, srcObject)
		return value.Null(), false, false, err
	case compilerpkg.OpLabel:
		return value.Null(), false, false, nil
	case compilerpkg.OpGoto:
		d.doGoto(state, arg(0))
		return value.Null(), false, true, nil
	case compilerpkg.OpJe:
		floating, _ := contextObj.Object().Get("floating")
		if floating.Truthy() {
			d.doGoto(state, arg(0))
			return value.Null(), false, true, nil
		}
		return value.Null(), false, false, nil
	case compilerpkg.OpJne:
		floating, _ := contextObj.Object().Get("floating")
		if !floating.Truthy() {
			d.doGoto(state, arg(0))
			return value.Null(), false, true, nil
		}
		return value.Null(), false, false, nil
	default:
		return value.Null(), false, false, nil
	}
}

// doGoto sets cursor to the label's index. Execute does not advance the
// cursor after a jump, so the label instruction itself (a no-op) runs
// next, followed by the instruction after it. An unknown label leaves
// the cursor unchanged.
func (d *Default) doGoto(state *execState, name string) {
	if idx, ok := state.labels[name]; ok {
		state.cursor = idx
	}
}

// executeReference resolves a bare Reference token: an object with a
// "run" member is invoked bound to itself; a callable value is invoked
// with the instruction's remaining tokens resolved to plain Values (the
// callee receives no literal-vs-reference tag for them); anything else
// is returned as-is when the instruction has no arguments. A
// non-callable resolution given arguments raises MethodNotFound.
func (d *Default) executeReference(instr compilerpkg.Instruction, contextObj, input, srcObject value.Value) (value.Value, error) {
	first := instr.First()
	resolved, err := d.resolver.ResolveWithType(first.Text, contextObj, input, srcObject)
	if err != nil {
		return value.Null(), err
	}

	target := resolved.Value
	if target.Kind() == value.KindObject {
		if run, ok := target.Object().Get("run"); ok && run.Callable() {
			target = run
		}
	}

	args := instr.Args()
	fn := target.Func()
	if fn == nil {
		if len(args) == 0 {
			return resolved.Value, nil
		}
		return value.Null(), werrors.NewMethodNotFound(first.Text)
	}

	resolvedArgs := make([]value.Value, 0, len(args))
	for _, a := range args {
		av, err := d.resolver.Resolve(a.Text, contextObj, input, srcObject)
		if err != nil {
			return value.Null(), err
		}
		resolvedArgs = append(resolvedArgs, av)
	}
	return fn(input, resolvedArgs...)
}

// instructionKindLabel renders a short tag for trace events.
func instructionKindLabel(instr compilerpkg.Instruction) string {
	first := instr.First()
	switch first.Kind {
	case compilerpkg.TokenOp:
		return string(first.Op)
	case compilerpkg.TokenCall:
		return "call"
	case compilerpkg.TokenReference:
		return "reference"
	case compilerpkg.TokenComment:
		return "comment"
	default:
		return "noop"
	}
}
