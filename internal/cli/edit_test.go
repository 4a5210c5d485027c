package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LemonBreezes/emacs-fish-completion/internal/config"
)

func TestEdit_CreatesConfigIfNotExists(t *testing.T) {
	dir := isolateConfig(t)

	// Set a valid editor that just exits (for testing)
	t.Setenv("EDITOR", "true")

	output, err := captureOutput(t, Edit)
	require.NoError(t, err)

	configPath := filepath.Join(dir, "config.yml")
	assert.Contains(t, output, "Created new config: "+configPath)

	cfg, err := config.Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "fish", cfg.Command)
}

func TestEdit_OpensExistingConfig(t *testing.T) {
	dir := isolateConfig(t)
	require.NoError(t, os.MkdirAll(dir, 0755))

	configPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("fallback_enabled = true\n"), 0644))

	t.Setenv("EDITOR", "true")

	output, err := captureOutput(t, Edit)
	require.NoError(t, err)
	assert.Contains(t, output, "Opening config: "+configPath)

	// No YAML file is created next to the existing one
	_, err = os.Stat(filepath.Join(dir, "config.yml"))
	assert.True(t, os.IsNotExist(err))
}

func TestEdit_EditorFails(t *testing.T) {
	isolateConfig(t)
	t.Setenv("EDITOR", "false")

	_, err := captureOutput(t, Edit)
	assert.Error(t, err)
}

func TestFindEditor(t *testing.T) {
	t.Setenv("EDITOR", "myeditor")
	t.Setenv("VISUAL", "visual")
	assert.Equal(t, "myeditor", findEditor())

	t.Setenv("EDITOR", "")
	assert.Equal(t, "visual", findEditor())
}
