package container

import (
	"context"
	"os"
	"path/filepath"

	"github.com/alexisbeaulieu97/weave/internal/gitsource"
	werrors "github.com/alexisbeaulieu97/weave/pkg/errors"
)

// pipelineFileExt is the extension a fetched pipeline library's
// source files are expected to carry.
const pipelineFileExt = ".pipelines.md"

// ImportPipelines clones or opens src at a local cache directory,
// reads every pipeline text file it contains, and feeds each one to
// LoadPipelinesFromString. This is the one "file loader that feeds
// text into loadPipelinesFromString" the core keeps external — it is
// implemented here as CLI-facing ambient infrastructure, never called
// by the core itself.
func (c *Container) ImportPipelines(ctx context.Context, src gitsource.Source, cacheDir string) error {
	root, err := gitsource.Fetch(ctx, src, cacheDir)
	if err != nil {
		return err
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return werrors.NewGitSourceError(src.URL, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) == "" {
			continue
		}
		if !matchesPipelineFile(entry.Name()) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(root, entry.Name()))
		if err != nil {
			return werrors.NewGitSourceError(src.URL, err)
		}
		if err := c.LoadPipelinesFromString(string(data)); err != nil {
			return err
		}
	}
	return nil
}

func matchesPipelineFile(name string) bool {
	return len(name) > len(pipelineFileExt) && name[len(name)-len(pipelineFileExt):] == pipelineFileExt
}
