package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadOptional_MissingFileIsEmpty(t *testing.T) {
	cfg, err := LoadOptional(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Equal(t, &File{}, cfg)
}

func TestLoadFromFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), DefaultConfigFilename)
	require.NoError(t, os.WriteFile(p, []byte("output: short\nlevel: warn\ncolor: true\ntime: local\n"), 0o644))

	cfg, err := LoadFromFile(p)
	require.NoError(t, err)
	require.Equal(t, "short", cfg.Output)
	require.Equal(t, "warn", cfg.Level)
	require.Equal(t, "local", cfg.Time)
	require.NotNil(t, cfg.Color)
	require.True(t, *cfg.Color)
}

func TestLoadFromFile_BadYAML(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(p, []byte(":\n\t-"), 0o644))

	_, err := LoadFromFile(p)
	require.Error(t, err)
}
