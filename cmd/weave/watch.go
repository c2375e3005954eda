package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/weave/internal/tui"
	"github.com/alexisbeaulieu97/weave/internal/value"
)

func newWatchCmd(app *AppContext) *cobra.Command {
	var tag string

	cmd := &cobra.Command{
		Use:   "watch <pipeline-file>",
		Short: "Launch the interactive step debugger for a pipeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, resolvedTag, err := readPipelineFile(args[0], tag)
			if err != nil {
				return err
			}
			if err := app.Container.Registry.RegisterPipeline(resolvedTag, lines, true); err != nil {
				return err
			}
			p, ok := app.Container.Registry.GetPipeline(resolvedTag)
			if !ok {
				return fmt.Errorf("pipeline %q was not registered", resolvedTag)
			}

			ctx, _ := app.CommandContext(cmd, "watch")
			model := tui.NewModel(ctx, app.Container, resolvedTag, p.Compiled, value.NewObject())

			program := tea.NewProgram(model)
			_, err = program.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&tag, "tag", "", "Pipeline tag to register under (defaults to the file's base name)")

	return cmd
}
