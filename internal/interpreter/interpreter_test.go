package interpreter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	compilerpkg "github.com/alexisbeaulieu97/weave/internal/compiler"
	"github.com/alexisbeaulieu97/weave/internal/pathresolve"
	"github.com/alexisbeaulieu97/weave/internal/trace"
	"github.com/alexisbeaulieu97/weave/internal/value"
	werrors "github.com/alexisbeaulieu97/weave/pkg/errors"
)

type stubRuntime struct {
	components map[string]value.Value
	pipelines  map[string][]compilerpkg.Instruction
	interp     *Default
}

func newStubRuntime() *stubRuntime {
	rt := &stubRuntime{
		components: map[string]value.Value{},
		pipelines:  map[string][]compilerpkg.Instruction{},
	}
	rt.interp = NewDefault(rt)
	return rt
}

func (s *stubRuntime) Get(name string) (value.Value, bool) {
	v, ok := s.components[name]
	return v, ok
}

func (s *stubRuntime) Trace() trace.Sink { return trace.NoopSink{} }

func (s *stubRuntime) RunPipeline(ctx context.Context, tag string, input, srcObject value.Value, depth int) (value.Value, error) {
	compiled, ok := s.pipelines[tag]
	if !ok {
		return value.Null(), werrors.NewPipelineNotFound(tag)
	}
	return s.interp.Execute(ctx, s, compiled, input, srcObject, depth)
}

func compile(t *testing.T, lines []string) []compilerpkg.Instruction {
	t.Helper()
	instrs, err := compilerpkg.NewDefault().Compile(lines)
	require.NoError(t, err)
	return instrs
}

func TestCounterLoop(t *testing.T) {
	t.Parallel()

	rt := newStubRuntime()
	lines := []string{
		"set input.count 0",
		"label loop",
		"inc input.count",
		"lt input.count 3",
		"je loop",
		"get input",
	}
	compiled := compile(t, lines)

	result, err := rt.interp.Execute(context.Background(), rt, compiled, value.NewObject(), value.NewObject(), 0)
	require.NoError(t, err)

	count, ok := result.Object().Get("count")
	require.True(t, ok)
	require.Equal(t, float64(3), count.Number())
}

func TestLiteralSetterPreservesInternalSpace(t *testing.T) {
	t.Parallel()

	rt := newStubRuntime()
	compiled := compile(t, []string{
		`set input.name "Ada Lovelace"`,
		"get input.name",
	})

	result, err := rt.interp.Execute(context.Background(), rt, compiled, value.NewObject(), value.NewObject(), 0)
	require.NoError(t, err)
	require.Equal(t, "Ada Lovelace", result.String())
}

func TestConditionalJumpTakenWhenFalsy(t *testing.T) {
	t.Parallel()

	rt := newStubRuntime()
	compiled := compile(t, []string{
		"set input.x 5",
		"eq input.x 6",
		"jne skip",
		"set input.hit true",
		"label skip",
		"get input",
	})

	result, err := rt.interp.Execute(context.Background(), rt, compiled, value.NewObject(), value.NewObject(), 0)
	require.NoError(t, err)

	_, hasHit := result.Object().Get("hit")
	require.False(t, hasHit)
	x, _ := result.Object().Get("x")
	require.Equal(t, float64(5), x.Number())
}

func TestConditionalJumpNotTakenWhenTruthy(t *testing.T) {
	t.Parallel()

	rt := newStubRuntime()
	compiled := compile(t, []string{
		"set input.x 5",
		"eq input.x 5",
		"jne skip",
		"set input.hit true",
		"label skip",
		"get input",
	})

	result, err := rt.interp.Execute(context.Background(), rt, compiled, value.NewObject(), value.NewObject(), 0)
	require.NoError(t, err)

	hit, ok := result.Object().Get("hit")
	require.True(t, ok)
	require.True(t, hit.Bool())
}

func TestCallIncrementsDepthAndChainsInput(t *testing.T) {
	t.Parallel()

	rt := newStubRuntime()
	rt.pipelines["child"] = compile(t, []string{"inc input.v"})
	compiled := compile(t, []string{"$child", "$child", "get input"})

	in := value.NewObject()
	in.Object().Set("v", value.Number(0))

	result, err := rt.interp.Execute(context.Background(), rt, compiled, in, value.NewObject(), 0)
	require.NoError(t, err)

	v, _ := result.Object().Get("v")
	require.Equal(t, float64(2), v.Number())
}

func TestDebugPrefixSkippedAsCalleeExecutedAtTopLevel(t *testing.T) {
	t.Parallel()

	rt := newStubRuntime()
	compiled := compile(t, []string{"-> set input.marker true", "get input"})

	// Top level (depth 0): the prefix is stripped and the line runs.
	top, err := rt.interp.Execute(context.Background(), rt, compiled, value.NewObject(), value.NewObject(), 0)
	require.NoError(t, err)
	marker, ok := top.Object().Get("marker")
	require.True(t, ok)
	require.True(t, marker.Bool())

	// As a callee (depth 1): the prefixed line is skipped entirely.
	nested, err := rt.interp.Execute(context.Background(), rt, compiled, value.NewObject(), value.NewObject(), 1)
	require.NoError(t, err)
	_, ok = nested.Object().Get("marker")
	require.False(t, ok)
}

func TestReferenceInvokesComponentMethodWithLiteralArg(t *testing.T) {
	t.Parallel()

	rt := newStubRuntime()
	rt.components["greeter"] = value.NewComponent(greeterStub{})
	compiled := compile(t, []string{`greeter.hello "world"`})

	result, err := rt.interp.Execute(context.Background(), rt, compiled, value.NewObject(), value.NewObject(), 0)
	require.NoError(t, err)
	require.Equal(t, "hi world", result.String())
}

type greeterStub struct{}

func (greeterStub) Member(name string) (value.Value, bool) {
	if name != "hello" {
		return value.Null(), false
	}
	return value.NewFunc(func(input value.Value, args ...value.Value) (value.Value, error) {
		return value.String("hi " + args[0].String()), nil
	}), true
}

var _ pathresolve.Members = greeterStub{}
