package cli

import (
	"fmt"
	"os"

	"github.com/LemonBreezes/emacs-fish-completion/internal/config"
	"github.com/LemonBreezes/emacs-fish-completion/internal/derrors"
)

// Validate validates a fishcomp configuration file
func Validate(configPath string) error {
	// If no path provided, validate the user config
	if configPath == "" {
		dir, err := config.GetConfigDir()
		if err != nil {
			return err
		}

		configPath = config.FindConfigFile(dir)
		if configPath == "" {
			return derrors.NewNotFoundError(dir, fmt.Sprintf("no config file found in %s", dir))
		}
	}

	fmt.Printf("Validating: %s\n\n", configPath)

	// Read file content for schema validation
	content, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// First validate with JSON Schema
	result, err := config.ValidateWithSchema(configPath, content)
	if err != nil {
		return err
	}

	// If schema validation passes, run the semantic checks
	if result.Valid {
		customResult, err := config.ValidateFile(configPath)
		if err != nil {
			return err
		}
		if !customResult.Valid {
			result.Valid = false
			result.Errors = append(result.Errors, customResult.Errors...)
		}
	}

	if result.Valid {
		fmt.Println("✅ Configuration is valid!")
		return nil
	}

	fmt.Println("❌ Configuration has errors:")
	for i, validationErr := range result.Errors {
		fmt.Printf("%d. [%s] %s\n", i+1, validationErr.Field, validationErr.Message)
	}

	fmt.Printf("\nFound %d error(s)\n", len(result.Errors))

	return fmt.Errorf("validation failed")
}
