package registry

import (
	"strings"

	"github.com/alexisbeaulieu97/weave/internal/compiler"
	"github.com/alexisbeaulieu97/weave/internal/pipeline"
	"github.com/alexisbeaulieu97/weave/internal/wildcard"
)

const superDirective = "$super"
const compilerDirectivePrefix = "// compiler="

// RegisterPipeline compiles lines and stores the result under tag. A
// no-op when tag already exists and overwrite is false. On overwrite,
// the previous pipeline's source lines are threaded through as
// prevLines so a leading "$super" line can expand to them.
func (r *Registry) RegisterPipeline(tag string, lines []string, overwrite bool) error {
	r.mu.Lock()
	existing, has := r.pipelines[tag]
	if has && !overwrite {
		r.mu.Unlock()
		return nil
	}
	var prevLines []string
	if has {
		prevLines = existing.Lines
	}
	r.mu.Unlock()

	built, err := r.BuildPipeline(lines, prevLines)
	if err != nil {
		return err
	}
	built.Tag = tag

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.pipelines[tag]; !exists {
		r.pipelineOrder = append(r.pipelineOrder, tag)
	}
	r.pipelines[tag] = built
	r.cachePipelines = make(map[string]string)
	return nil
}

// GetPipeline resolves tag: strict, then wildcard over registered
// pipeline tags, memoized in cachePipelines.
func (r *Registry) GetPipeline(tag string) (*pipeline.Pipeline, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.pipelines[tag]; ok {
		return p, true
	}
	if key, ok := r.cachePipelines[tag]; ok {
		if key == "" {
			if r.parent != nil {
				return r.parent.GetPipeline(tag)
			}
			return nil, false
		}
		return r.pipelines[key], true
	}
	for _, key := range r.pipelineOrder {
		if wildcard.Match(tag, key) || wildcard.Match(key, tag) {
			r.cachePipelines[tag] = key
			return r.pipelines[key], true
		}
	}
	r.cachePipelines[tag] = ""
	if r.parent != nil {
		return r.parent.GetPipeline(tag)
	}
	return nil, false
}

// RegisterAdHocPipeline registers an already-built, uncompiled
// pipeline body under its own JSON-stringified lines, the mechanism
// runPipeline uses (§4.E step 3) to memoize a pipeline value passed by
// source rather than by tag.
func (r *Registry) RegisterAdHocPipeline(tag string, lines []string) (*pipeline.Pipeline, error) {
	if err := r.RegisterPipeline(tag, lines, false); err != nil {
		return nil, err
	}
	p, _ := r.GetPipeline(tag)
	return p, nil
}

// BuildPipeline compiles lines into a Pipeline, selecting the compiler
// named by a leading "// compiler=NAME" directive (falling back to
// the default compiler when the name is not registered) and
// expanding a bare "$super" line to prevLines, excluding "->"-prefixed
// lines from the inherited body.
func (r *Registry) BuildPipeline(lines []string, prevLines []string) (*pipeline.Pipeline, error) {
	name, body := compilerDirective(lines)
	c, err := r.GetCompiler(name)
	if err != nil {
		c, err = r.GetCompiler(compiler.DefaultName)
		if err != nil {
			return nil, err
		}
	}

	expanded := expandSuper(body, prevLines)
	compiled, err := c.Compile(expanded)
	if err != nil {
		return nil, err
	}

	return &pipeline.Pipeline{Lines: expanded, Compiler: c, Compiled: compiled}, nil
}

// compilerDirective strips a leading "// compiler=NAME" line, if
// present, returning the selected name (or the default) and the
// remaining lines.
func compilerDirective(lines []string) (string, []string) {
	if len(lines) == 0 {
		return compiler.DefaultName, lines
	}
	first := strings.TrimSpace(lines[0])
	if !strings.HasPrefix(first, compilerDirectivePrefix) {
		return compiler.DefaultName, lines
	}
	name := strings.TrimSpace(strings.TrimPrefix(first, compilerDirectivePrefix))
	if name == "" {
		name = compiler.DefaultName
	}
	return name, lines[1:]
}

// expandSuper replaces a bare "$super" line with prevLines, dropping
// any "->"-prefixed debug lines from the inherited body.
func expandSuper(lines, prevLines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == superDirective {
			for _, prev := range prevLines {
				if strings.HasPrefix(strings.TrimSpace(prev), "->") {
					continue
				}
				out = append(out, prev)
			}
			continue
		}
		out = append(out, line)
	}
	return out
}
