package config

import (
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaJSON string

// GetSchemaJSON returns the JSON Schema for fishcomp configuration
func GetSchemaJSON() string {
	return schemaJSON
}

// ValidateWithSchema validates raw config content against the JSON Schema.
// The format is chosen from the extension of path.
func ValidateWithSchema(path string, content []byte) (*ValidationResult, error) {
	result := &ValidationResult{
		Valid:  true,
		Errors: []ValidationError{},
	}

	var data interface{}
	var parseErr error
	format := strings.ToLower(filepath.Ext(path))

	switch format {
	case ".yml", ".yaml":
		parseErr = yaml.Unmarshal(content, &data)
	case ".json":
		data, parseErr = json.Parser().Unmarshal(content)
	case ".toml":
		data, parseErr = toml.Parser().Unmarshal(content)
	default:
		return nil, fmt.Errorf("unsupported file format: %s", format)
	}

	if parseErr != nil {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   "syntax",
			Message: fmt.Sprintf("Invalid %s syntax: %v", strings.ToUpper(strings.TrimPrefix(format, ".")), parseErr),
		})
		return result, nil
	}

	// An empty YAML document is a valid, empty config.
	if data == nil {
		data = map[string]interface{}{}
	}

	schemaLoader := gojsonschema.NewStringLoader(GetSchemaJSON())
	documentLoader := gojsonschema.NewGoLoader(data)

	validationResult, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}

	if !validationResult.Valid() {
		result.Valid = false
		for _, err := range validationResult.Errors() {
			result.Errors = append(result.Errors, ValidationError{
				Field:   err.Field(),
				Message: err.Description(),
			})
		}
	}

	return result, nil
}
