package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProjectConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shaynefro.yaml")
	require.NoError(t, os.WriteFile(path, []byte("target: javascript\noutput: build/out.js\n"), 0o644))

	cfg, err := loadProjectConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "javascript", cfg.Target)
	assert.Equal(t, "build/out.js", cfg.Output)
}

func TestLoadProjectConfigMissingDefault(t *testing.T) {
	// The default location is optional; absence yields the zero config.
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	cfg, err := loadProjectConfig(defaultConfigFile)
	require.NoError(t, err)
	assert.Empty(t, cfg.Target)
	assert.Empty(t, cfg.Output)
}

func TestLoadProjectConfigMissingExplicitPathFails(t *testing.T) {
	_, err := loadProjectConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadProjectConfigMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shaynefro.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\t not yaml ["), 0o644))

	_, err := loadProjectConfig(path)
	require.Error(t, err)
}
