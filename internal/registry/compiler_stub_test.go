package registry

import (
	"context"

	compilerpkg "github.com/alexisbeaulieu97/weave/internal/compiler"
	"github.com/alexisbeaulieu97/weave/internal/pipeline"
	"github.com/alexisbeaulieu97/weave/internal/value"
)

// testCompiler is a minimal pipeline.Compiler used to exercise
// registry's build/compile plumbing without pulling in the full
// interpreter package (which would import registry, creating a cycle
// in test code).
type testCompiler struct {
	name string
}

func (c testCompiler) Name() string { return c.name }

func (c testCompiler) Compile(lines []string) ([]compilerpkg.Instruction, error) {
	return compilerpkg.NewDefault().Compile(lines)
}

func (c testCompiler) Execute(ctx context.Context, rt pipeline.Runtime, compiled []compilerpkg.Instruction, input, srcObject value.Value, depth int) (value.Value, error) {
	return input, nil
}
