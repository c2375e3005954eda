package gitsource

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

func initGitRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "pipelines"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pipelines", "greet.pipelines.md"), []byte("## greet\nget input\n"), 0o644))
	_, err = wt.Add("pipelines/greet.pipelines.md")
	require.NoError(t, err)

	_, err = wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "weave",
			Email: "weave@example.com",
			When:  time.Now(),
		},
	})
	require.NoError(t, err)

	return dir
}

func TestFetchClonesRepositoryAndResolvesPipelinesDir(t *testing.T) {
	t.Parallel()

	source := initGitRepo(t)
	dest := filepath.Join(t.TempDir(), "clone")

	root, err := Fetch(context.Background(), Source{URL: source, Dir: "pipelines"}, dest)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, "greet.pipelines.md"))
	require.NoError(t, err)
	require.Contains(t, string(data), "## greet")
}

func TestFetchIsIdempotentOnExistingCheckout(t *testing.T) {
	t.Parallel()

	source := initGitRepo(t)
	dest := filepath.Join(t.TempDir(), "clone")

	_, err := Fetch(context.Background(), Source{URL: source}, dest)
	require.NoError(t, err)

	root, err := Fetch(context.Background(), Source{URL: source}, dest)
	require.NoError(t, err)
	require.Equal(t, dest, root)
}

func TestFetchInvalidURLReturnsGitSourceError(t *testing.T) {
	t.Parallel()

	dest := filepath.Join(t.TempDir(), "clone")
	_, err := Fetch(context.Background(), Source{URL: "not-a-real-remote://nowhere"}, dest)
	require.Error(t, err)
}
