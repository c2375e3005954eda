// Package pipeline defines the shared types that let the interpreter,
// registry, and container packages depend on each other without an
// import cycle: the container is the only package that implements
// Runtime, while interpreter.Default is the only package
// that implements Compiler. Both interfaces live here because
// registry must store Pipeline values without importing interpreter,
// and interpreter must invoke child pipelines without importing
// registry or container.
package pipeline

import (
	"context"

	"github.com/alexisbeaulieu97/weave/internal/compiler"
	"github.com/alexisbeaulieu97/weave/internal/pathresolve"
	"github.com/alexisbeaulieu97/weave/internal/trace"
	"github.com/alexisbeaulieu97/weave/internal/value"
)

// Pipeline is a named, compiled sequence of lines. Lines is kept
// alongside Compiled so that $super can re-slice the original source
// when a child pipeline extends a parent one.
type Pipeline struct {
	Tag      string
	Lines    []string
	Compiler Compiler
	Compiled []compiler.Instruction
}

// Compiler is the pluggable compile+execute contract a pipeline names
// via a leading "// compiler=NAME" directive. The default compiler is
// the line tokenizer in package compiler paired with the stack-free
// interpreter in package interpreter.
type Compiler interface {
	Name() string
	Compile(lines []string) ([]compiler.Instruction, error)
	Execute(ctx context.Context, rt Runtime, compiled []compiler.Instruction, input, srcObject value.Value, depth int) (value.Value, error)
}

// Runtime is the host a Compiler executes against: path resolution
// rooted at the registry, recursive pipeline invocation, and an
// optional trace sink.
type Runtime interface {
	pathresolve.Lookup
	RunPipeline(ctx context.Context, tag string, input, srcObject value.Value, depth int) (value.Value, error)
	Trace() trace.Sink
}
