package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alexisbeaulieu97/weave/internal/container"
	"github.com/alexisbeaulieu97/weave/internal/logger"
)

func main() {
	appLogger, err := logger.New(logger.Options{
		Level:     "info",
		Component: "cli",
		Layer:     "weave",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create application logger: %v\n", err)
		os.Exit(1)
	}

	correlationID := logger.NewCorrelationID()
	ctx := logger.WithCorrelationID(context.Background(), correlationID)

	app := &AppContext{
		Logger:    appLogger,
		Container: container.New(nil),
	}

	rootCmd := newRootCmd(app)
	appLogger.Info(ctx, "starting weave command", "pid", os.Getpid())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
