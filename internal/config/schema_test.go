package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSchemaJSON(t *testing.T) {
	schema := GetSchemaJSON()

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(schema), &parsed))
	assert.Equal(t, "http://json-schema.org/draft-07/schema#", parsed["$schema"])

	properties, ok := parsed["properties"].(map[string]interface{})
	require.True(t, ok)
	for _, key := range []string{
		"fallback_enabled", "prefer_fallback", "command", "fallback_command",
		"bash_completion_script", "sentinel_pattern", "invocation", "timeout",
		"log_level", "parent_commands",
	} {
		assert.Contains(t, properties, key)
	}
}

func TestValidateWithSchema(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		content   string
		wantValid bool
		wantField string
	}{
		{
			name:      "valid yaml",
			path:      "config.yml",
			content:   "fallback_enabled: true\ncommand: fish\ntimeout: 1.5s\n",
			wantValid: true,
		},
		{
			name:      "empty yaml document",
			path:      "config.yaml",
			content:   "",
			wantValid: true,
		},
		{
			name:      "valid json",
			path:      "config.json",
			content:   `{"prefer_fallback": false, "log_level": "debug"}`,
			wantValid: true,
		},
		{
			name:      "valid toml",
			path:      "config.toml",
			content:   "command = \"fish\"\n\n[[parent_commands]]\nname = \"sudo\"\nvalue_flags = [\"-u\"]\n",
			wantValid: true,
		},
		{
			name:      "unknown key",
			path:      "config.yml",
			content:   "fallback: true\n",
			wantValid: false,
		},
		{
			name:      "wrong type",
			path:      "config.yml",
			content:   "fallback_enabled: \"yes\"\n",
			wantValid: false,
			wantField: "fallback_enabled",
		},
		{
			name:      "bad timeout",
			path:      "config.yml",
			content:   "timeout: soon\n",
			wantValid: false,
			wantField: "timeout",
		},
		{
			name:      "bad log level",
			path:      "config.yml",
			content:   "log_level: verbose\n",
			wantValid: false,
			wantField: "log_level",
		},
		{
			name:      "parent without name",
			path:      "config.yml",
			content:   "parent_commands:\n  - value_flags: [-u]\n",
			wantValid: false,
		},
		{
			name:      "value flag without dash",
			path:      "config.yml",
			content:   "parent_commands:\n  - name: sudo\n    value_flags: [u]\n",
			wantValid: false,
		},
		{
			name:      "invalid yaml syntax",
			path:      "config.yml",
			content:   "command: [fish\n",
			wantValid: false,
			wantField: "syntax",
		},
		{
			name:      "invalid json syntax",
			path:      "config.json",
			content:   `{"command": `,
			wantValid: false,
			wantField: "syntax",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidateWithSchema(tt.path, []byte(tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, result.Valid, "%v", result.Errors)
			if !tt.wantValid {
				assert.NotEmpty(t, result.Errors)
			}
			if tt.wantField != "" {
				fields := make([]string, 0, len(result.Errors))
				for _, e := range result.Errors {
					fields = append(fields, e.Field)
				}
				assert.Contains(t, fields, tt.wantField)
			}
		})
	}
}

func TestValidateWithSchema_UnsupportedFormat(t *testing.T) {
	_, err := ValidateWithSchema("config.ini", []byte("command=fish"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file format")
}
