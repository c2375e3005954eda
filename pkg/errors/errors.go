// Package errors defines the typed error values weave returns from
// its loader, resolver, registry, and interpreter so callers can
// distinguish failure modes with errors.As instead of string matching.
package errors

import (
	"fmt"
)

// ConfigError represents a bootstrap-file load or validation failure.
type ConfigError struct {
	Path    string
	Message string
	Err     error
}

// NewConfigError constructs a ConfigError.
func NewConfigError(path, message string, err error) error {
	return &ConfigError{Path: path, Message: message, Err: err}
}

func (e *ConfigError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("config error: %s: %s: %v", e.Path, e.Message, e.Err)
}

// Unwrap exposes the underlying error.
func (e *ConfigError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// PathNotFound indicates a dotted path could not be resolved against
// any of the four lookup roots.
type PathNotFound struct {
	Path string
}

// NewPathNotFound constructs a PathNotFound.
func NewPathNotFound(path string) error {
	return &PathNotFound{Path: path}
}

func (e *PathNotFound) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("path not found: %s", e.Path)
}

// PipelineNotFound indicates a tag with no registered pipeline.
type PipelineNotFound struct {
	Tag string
}

// NewPipelineNotFound constructs a PipelineNotFound.
func NewPipelineNotFound(tag string) error {
	return &PipelineNotFound{Tag: tag}
}

func (e *PipelineNotFound) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("pipeline not found: %s", e.Tag)
}

// CompilerNotFound indicates a pipeline named a compiler with no
// registered implementation.
type CompilerNotFound struct {
	Name string
}

// NewCompilerNotFound constructs a CompilerNotFound.
func NewCompilerNotFound(name string) error {
	return &CompilerNotFound{Name: name}
}

func (e *CompilerNotFound) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("compiler not found: %s", e.Name)
}

// MethodNotFound indicates a call instruction referenced an unknown
// method name on its target component.
type MethodNotFound struct {
	Method string
}

// NewMethodNotFound constructs a MethodNotFound.
func NewMethodNotFound(method string) error {
	return &MethodNotFound{Method: method}
}

func (e *MethodNotFound) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("method not found: %s", e.Method)
}

// PipelineDepthExceeded indicates a recursive pipeline call chain
// exceeded the interpreter's depth cap.
type PipelineDepthExceeded struct {
	Source string
	Depth  int
}

// NewPipelineDepthExceeded constructs a PipelineDepthExceeded.
func NewPipelineDepthExceeded(source string, depth int) error {
	return &PipelineDepthExceeded{Source: source, Depth: depth}
}

func (e *PipelineDepthExceeded) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("pipeline depth exceeded at %d calling %s", e.Depth, e.Source)
}

// GitSourceError wraps a failure fetching or reading a git-sourced
// pipeline library.
type GitSourceError struct {
	URL string
	Err error
}

// NewGitSourceError constructs a GitSourceError.
func NewGitSourceError(url string, err error) error {
	return &GitSourceError{URL: url, Err: err}
}

func (e *GitSourceError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("git source error: %s: %v", e.URL, e.Err)
}

// Unwrap exposes the underlying error.
func (e *GitSourceError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
