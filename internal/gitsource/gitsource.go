// Package gitsource fetches a remote repository of pipeline
// definitions with go-git, the same clone/checkout sequence the
// teacher's repo plugin uses to sync a dotfile repository, repurposed
// here for "fetch a library of pipeline text files for weave import".
package gitsource

import (
	"context"
	"fmt"
	"os"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/alexisbeaulieu97/weave/internal/config"
	werrors "github.com/alexisbeaulieu97/weave/pkg/errors"
)

// Source describes a remote pipeline library: a git URL, an optional
// ref (branch name), and the subdirectory under the checkout holding
// pipeline text files.
type Source struct {
	URL string `validate:"required,git_url"`
	Ref string
	Dir string
}

// Fetch clones src.URL into dest, checking out branch src.Ref when set,
// and returns the directory pipeline text files should be read from
// (dest joined with src.Dir). When dest already holds a git repository
// it is used as-is: its remote is not compared with src.URL and src.Ref
// is not checked out.
func Fetch(ctx context.Context, src Source, dest string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := config.GetValidator().Struct(src); err != nil {
		return "", werrors.NewGitSourceError(src.URL, err)
	}

	if info, err := os.Stat(dest); err == nil && info.IsDir() {
		if _, err := git.PlainOpen(dest); err == nil {
			return pipelinesPath(dest, src.Dir), nil
		}
		return "", werrors.NewGitSourceError(src.URL, fmt.Errorf("destination %q exists and is not a git checkout", dest))
	}

	opts := &git.CloneOptions{URL: src.URL}
	if src.Ref != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(src.Ref)
		opts.SingleBranch = true
	}

	if _, err := git.PlainCloneContext(ctx, dest, false, opts); err != nil {
		return "", werrors.NewGitSourceError(src.URL, err)
	}

	return pipelinesPath(dest, src.Dir), nil
}

func pipelinesPath(dest, dir string) string {
	if dir == "" {
		return dest
	}
	return dest + string(os.PathSeparator) + dir
}
