// Package container ties the registry, interpreter, and default
// compiler together into the process-wide façade: it loads pipeline
// text, dispatches runPipeline with the depth cap and trace sink, and
// runs the singleton start sequence.
package container

import (
	"context"
	"strings"

	"github.com/alexisbeaulieu97/weave/internal/compiler"
	"github.com/alexisbeaulieu97/weave/internal/interpreter"
	"github.com/alexisbeaulieu97/weave/internal/pathresolve"
	"github.com/alexisbeaulieu97/weave/internal/pipeline"
	"github.com/alexisbeaulieu97/weave/internal/registry"
	"github.com/alexisbeaulieu97/weave/internal/trace"
	"github.com/alexisbeaulieu97/weave/internal/value"
	werrors "github.com/alexisbeaulieu97/weave/pkg/errors"
)

// MainPipelineName is the default entry point start() runs after the
// singleton start sequence completes.
const MainPipelineName = "main"

// maxDepth bounds recursive runPipeline dispatch; the eleventh nested
// call raises PipelineDepthExceeded.
const maxDepth = 10

// Container bundles a Registry with the default interpreter and
// implements pipeline.Runtime so pipelines can call back into it.
type Container struct {
	Registry *registry.Registry
	trace    trace.Sink
	children *childRegistrations
}

// New constructs a container optionally chained to a parent registry,
// with the default compiler pre-registered.
func New(parent *registry.Registry) *Container {
	c := &Container{Registry: registry.New(parent), trace: trace.NoopSink{}, children: newChildRegistrations()}
	c.Registry.RegisterCompiler(compiler.DefaultName, interpreter.NewDefault(c))
	return c
}

// SetTrace installs the structured execution-event sink; pass
// trace.NoopSink{} to disable tracing.
func (c *Container) SetTrace(sink trace.Sink) {
	if sink == nil {
		sink = trace.NoopSink{}
	}
	c.trace = sink
}

// Trace satisfies pipeline.Runtime.
func (c *Container) Trace() trace.Sink { return c.trace }

// Get satisfies pathresolve.Lookup by delegating to the registry.
func (c *Container) Get(name string) (value.Value, bool) {
	return c.Registry.Get(name)
}

// RunPipeline satisfies pipeline.Runtime: it enforces the recursion
// cap, resolves src as a tag (strict, then wildcard), and delegates to
// the pipeline's own compiler. Raw lines go through RunAdHocPipeline
// instead.
func (c *Container) RunPipeline(ctx context.Context, src string, input, srcObject value.Value, depth int) (value.Value, error) {
	if depth > maxDepth {
		return value.Null(), werrors.NewPipelineDepthExceeded(src, depth)
	}

	p, ok := c.Registry.GetPipeline(src)
	if !ok {
		return value.Null(), werrors.NewPipelineNotFound(src)
	}
	return p.Compiler.Execute(ctx, c, p.Compiled, input, srcObject, depth)
}

// RunAdHocPipeline runs lines directly, registering them under their
// own stringified form (§4.E step 3) so repeated calls with identical
// lines hit the same compiled program.
func (c *Container) RunAdHocPipeline(ctx context.Context, lines []string, input, srcObject value.Value, depth int) (value.Value, error) {
	if depth > maxDepth {
		return value.Null(), werrors.NewPipelineDepthExceeded(strings.Join(lines, "\n"), depth)
	}
	tag := value.MarshalOrdered(linesToValue(lines))
	p, err := c.Registry.RegisterAdHocPipeline(tag, lines)
	if err != nil {
		return value.Null(), err
	}
	return p.Compiler.Execute(ctx, c, p.Compiled, input, srcObject, depth)
}

func linesToValue(lines []string) value.Value {
	items := make([]value.Value, len(lines))
	for i, l := range lines {
		items[i] = value.String(l)
	}
	return value.NewArray(items)
}

// Start awaits every registered singleton's "start" member (in
// factory insertion order), then, if a pipeline named pipelineName
// exists, runs it with empty input and srcObject = the container
// itself.
func (c *Container) Start(ctx context.Context, pipelineName string) (value.Value, error) {
	if pipelineName == "" {
		pipelineName = MainPipelineName
	}
	if err := c.Registry.StartSingletons(ctx); err != nil {
		return value.Null(), err
	}
	if _, ok := c.Registry.GetPipeline(pipelineName); !ok {
		return value.Null(), nil
	}
	self := value.NewComponent(c)
	return c.RunPipeline(ctx, pipelineName, value.NewObject(), self, 0)
}

var _ pipeline.Runtime = (*Container)(nil)
var _ pathresolve.Lookup = (*Container)(nil)
