package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/weave/internal/gitsource"
)

type importOptions struct {
	Ref string
	Dir string
}

func newImportCmd(app *AppContext) *cobra.Command {
	opts := importOptions{}

	cmd := &cobra.Command{
		Use:   "import <git-url>",
		Short: "Fetch a pipeline library via git and load it into the container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, log := app.CommandContext(cmd, "import")

			cacheDir, err := importCacheDir(args[0])
			if err != nil {
				return err
			}

			src := gitsource.Source{URL: args[0], Ref: opts.Ref, Dir: opts.Dir}
			log.Info(ctx, "importing pipeline library", "url", src.URL, "ref", src.Ref, "dir", src.Dir)
			return app.Container.ImportPipelines(ctx, src, cacheDir)
		},
	}

	cmd.Flags().StringVar(&opts.Ref, "ref", "", "Git branch to check out")
	cmd.Flags().StringVar(&opts.Dir, "dir", "", "Subdirectory of the checkout holding pipeline text files")

	return cmd
}

func importCacheDir(url string) (string, error) {
	cacheRoot, err := os.UserCacheDir()
	if err != nil {
		cacheRoot = os.TempDir()
	}
	return filepath.Join(cacheRoot, "weave", "imports", sanitizeCacheKey(url)), nil
}

func sanitizeCacheKey(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
