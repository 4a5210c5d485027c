package config

import (
	"fmt"
	"strings"

	"github.com/LemonBreezes/emacs-fish-completion/internal/completion"
)

// ValidationError represents a validation error with details
type ValidationError struct {
	Field   string
	Message string
}

// ValidationResult contains the results of config validation
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

func (r *ValidationResult) add(field, format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	})
}

// Validate checks what the schema cannot: that patterns compile, the
// invocation template parses, and parent commands are well-formed.
func Validate(cfg *Config) *ValidationResult {
	result := &ValidationResult{
		Valid:  true,
		Errors: []ValidationError{},
	}

	if strings.TrimSpace(cfg.Command) == "" {
		result.add("command", "Primary shell command is empty")
	}

	if strings.TrimSpace(cfg.FallbackCommand) == "" {
		result.add("fallback_command", "Fallback shell command is empty")
	}

	if _, err := completion.CompileSentinel(cfg.SentinelPattern); err != nil {
		result.add("sentinel_pattern", "Invalid regular expression: %v", err)
	}

	if _, err := completion.ParseInvocation(cfg.Invocation); err != nil {
		result.add("invocation", "Invalid invocation template: %v", err)
	}

	if cfg.Timeout < 0 {
		result.add("timeout", "Timeout must not be negative")
	}

	seen := make(map[string]bool)
	for i, parent := range cfg.ParentCommands {
		field := fmt.Sprintf("parent_commands/%d", i)
		name := strings.TrimSpace(parent.Name)
		if name == "" {
			result.add(field, "Parent command name is empty")
			continue
		}
		if seen[name] {
			result.add(field, "Duplicate parent command '%s'", name)
		}
		seen[name] = true

		for _, flag := range parent.ValueFlags {
			if !strings.HasPrefix(flag, "-") {
				result.add(field, "Value flag '%s' of '%s' does not start with '-'", flag, name)
			}
		}
	}

	return result
}

// ValidateFile loads path over the defaults and validates the result
func ValidateFile(path string) (*ValidationResult, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	return Validate(cfg), nil
}
