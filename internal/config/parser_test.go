package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseBootstrapValidDocument(t *testing.T) {
	t.Parallel()

	data := []byte(`
version: 1.2.3
pipelines_dir: ./pipelines
components:
  - name: greeter
    singleton: true
    settings:
      greeting: hello
configurations:
  db:
    host: localhost
`)
	cfg, err := ParseBootstrap("inline", data)
	require.NoError(t, err)
	require.Equal(t, "1.2.3", cfg.Version)
	require.Len(t, cfg.Components, 1)
	require.Equal(t, "greeter", cfg.Components[0].Name)
	require.True(t, cfg.Components[0].Singleton)
}

func TestParseBootstrapRejectsMissingVersion(t *testing.T) {
	t.Parallel()

	data := []byte(`
components:
  - name: greeter
`)
	_, err := ParseBootstrap("inline", data)
	require.Error(t, err)
}

func TestParseBootstrapRejectsMalformedVersion(t *testing.T) {
	t.Parallel()

	data := []byte(`
version: not-a-version
`)
	_, err := ParseBootstrap("inline", data)
	require.Error(t, err)
}

func TestLoadBootstrapFileReadsFromDisk(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "bootstrap.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 0.1.0\n"), 0o644))

	cfg, err := LoadBootstrapFile(path)
	require.NoError(t, err)
	require.Equal(t, "0.1.0", cfg.Version)
}

func TestLoadBootstrapFileMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadBootstrapFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
