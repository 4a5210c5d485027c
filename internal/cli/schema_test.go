package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema_PrintToStdout(t *testing.T) {
	output, err := captureOutput(t, func() error { return Schema("") })
	require.NoError(t, err)
	assert.Contains(t, output, `"title": "fishcomp configuration"`)
}

func TestSchema_WriteToFile(t *testing.T) {
	tmpDir := t.TempDir()
	outputFile := filepath.Join(tmpDir, "test-schema.json")

	_, err := captureOutput(t, func() error { return Schema(outputFile) })
	require.NoError(t, err)

	content, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	schemaStr := string(content)
	assert.Contains(t, schemaStr, `"$schema": "http://json-schema.org/draft-07/schema#"`)
	assert.Contains(t, schemaStr, `"fallback_enabled"`)
	assert.Contains(t, schemaStr, `"prefer_fallback"`)
	assert.Contains(t, schemaStr, `"parent_commands"`)
}

func TestSchema_WriteToFile_InvalidPath(t *testing.T) {
	err := Schema("/nonexistent/directory/schema.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write schema")
}
