package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List pipelines and components registered after loading the bootstrap config",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			pipelines := app.Container.Registry.PipelineTags()
			fmt.Fprintln(out, "Pipelines:")
			if len(pipelines) == 0 {
				fmt.Fprintln(out, "  (none)")
			}
			for _, tag := range pipelines {
				fmt.Fprintf(out, "  %s\n", tag)
			}

			components := app.Container.Registry.ComponentNames()
			fmt.Fprintln(out, "Components:")
			if len(components) == 0 {
				fmt.Fprintln(out, "  (none)")
			}
			for _, name := range components {
				fmt.Fprintf(out, "  %s\n", name)
			}

			return nil
		},
	}
}
