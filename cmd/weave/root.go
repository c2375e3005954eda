package main

import (
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/weave/internal/logger"
)

type rootFlags struct {
	bootstrap string
	verbose   bool
}

func newRootCmd(app *AppContext) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "weave",
		Short:         "weave compiles and runs line-oriented pipelines against a component container",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flags.verbose {
				verbose, err := logger.New(logger.Options{Level: "debug", Component: "cli", Layer: "weave"})
				if err != nil {
					return err
				}
				app.Logger = verbose
			}
			if flags.bootstrap == "" {
				return nil
			}
			return app.Container.LoadBootstrapFile(flags.bootstrap)
		},
	}

	cmd.PersistentFlags().StringVar(&flags.bootstrap, "bootstrap", "", "Path to a bootstrap YAML document to load before running the command")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(newRunCmd(app))
	cmd.AddCommand(newCompileCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newWatchCmd(app))

	return cmd
}
