package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/weave/internal/trace"
	"github.com/alexisbeaulieu97/weave/internal/value"
)

type runOptions struct {
	Tag       string
	InputJSON string
	Trace     bool
}

func newRunCmd(app *AppContext) *cobra.Command {
	opts := runOptions{}

	cmd := &cobra.Command{
		Use:   "run <pipeline-file>",
		Short: "Load, register, and run a pipeline, printing the resulting output as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, app, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Tag, "tag", "", "Pipeline tag to register under (defaults to the file's base name)")
	cmd.Flags().StringVar(&opts.InputJSON, "input-json", "", "JSON document to use as the pipeline's initial input")
	cmd.Flags().BoolVar(&opts.Trace, "trace", false, "Emit one structured zerolog event per executed instruction to stderr")

	return cmd
}

func runRun(cmd *cobra.Command, app *AppContext, opts runOptions, path string) error {
	lines, tag, err := readPipelineFile(path, opts.Tag)
	if err != nil {
		return err
	}

	if err := app.Container.Registry.RegisterPipeline(tag, lines, true); err != nil {
		return err
	}

	input, err := parseInputJSON(opts.InputJSON)
	if err != nil {
		return err
	}

	ctx, log := app.CommandContext(cmd, "run")
	log.Info(ctx, "running pipeline", "tag", tag)

	if opts.Trace {
		app.Container.SetTrace(trace.NewZerologSink(cmd.ErrOrStderr()))
		defer app.Container.SetTrace(nil)
	}

	self := value.NewComponent(app.Container)
	output, err := app.Container.RunPipeline(ctx, tag, input, self, 0)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), value.MarshalOrdered(output))
	return nil
}

func readPipelineFile(path, tag string) (lines []string, resolvedTag string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read pipeline file: %w", err)
	}

	resolvedTag = tag
	if resolvedTag == "" {
		base := filepath.Base(path)
		resolvedTag = strings.TrimSuffix(base, filepath.Ext(base))
	}

	text := strings.TrimRight(string(data), "\n")
	if text == "" {
		return nil, resolvedTag, nil
	}
	return strings.Split(text, "\n"), resolvedTag, nil
}

func parseInputJSON(raw string) (value.Value, error) {
	if strings.TrimSpace(raw) == "" {
		return value.NewObject(), nil
	}
	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return value.Null(), fmt.Errorf("parse --input-json: %w", err)
	}
	return value.FromAny(decoded), nil
}
