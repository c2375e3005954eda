package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/weave/internal/container"
	"github.com/alexisbeaulieu97/weave/internal/logger"
)

// AppContext bundles the long-lived services a weave invocation needs:
// the structured logger and the process-wide container every
// subcommand loads pipelines into and runs against.
type AppContext struct {
	Logger    *logger.Logger
	Container *container.Container
}

// CommandContext returns the command's context (falling back to
// Background) together with a component-scoped logger.
func (a *AppContext) CommandContext(cmd *cobra.Command, component string) (context.Context, *logger.Logger) {
	ctx := context.Background()
	if cmd != nil && cmd.Context() != nil {
		ctx = cmd.Context()
	}
	return ctx, a.LoggerFor(component)
}

// LoggerFor derives a child logger tagged with the supplied component.
func (a *AppContext) LoggerFor(component string) *logger.Logger {
	if a == nil || a.Logger == nil {
		return nil
	}
	return a.Logger.With(map[string]any{"component": component})
}
