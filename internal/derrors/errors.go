// Package derrors provides the error types used across fishcomp.
// Only configuration and CLI paths surface these to the user; the completion
// pipeline degrades every failure to an empty candidate list.
package derrors

import (
	"errors"
	"fmt"
)

// FishcompError is the base interface for all fishcomp errors
type FishcompError interface {
	error
	// Code returns a unique error code for programmatic error handling
	Code() string
}

// baseError provides common functionality for all fishcomp errors
type baseError struct {
	code    string
	message string
	cause   error
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Code() string {
	return e.code
}

func (e *baseError) Unwrap() error {
	return e.cause
}

// SpawnError means a backend executable could not be found or started.
type SpawnError struct {
	baseError
	Command string
}

// NewSpawnError creates a new spawn error
func NewSpawnError(command string, message string, cause error) *SpawnError {
	return &SpawnError{
		baseError: baseError{
			code:    "SPAWN_ERROR",
			message: message,
			cause:   cause,
		},
		Command: command,
	}
}

// ConfigurationError represents errors in configuration files
type ConfigurationError struct {
	baseError
	Path string
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(path string, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		baseError: baseError{
			code:    "CONFIG_ERROR",
			message: message,
			cause:   cause,
		},
		Path: path,
	}
}

// ValidationError represents errors during validation
type ValidationError struct {
	baseError
	Field string
}

// NewValidationError creates a new validation error
func NewValidationError(field string, message string, cause error) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			code:    "VALIDATION_ERROR",
			message: message,
			cause:   cause,
		},
		Field: field,
	}
}

// NotFoundError represents errors when a resource is not found
type NotFoundError struct {
	baseError
	Resource string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, message string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			code:    "NOT_FOUND",
			message: message,
			cause:   nil,
		},
		Resource: resource,
	}
}

// IsSpawnError reports whether err (or anything it wraps) is a SpawnError.
func IsSpawnError(err error) bool {
	var spawnErr *SpawnError
	return errors.As(err, &spawnErr)
}

// CodeOf returns the code of the first FishcompError in err's chain, or "".
func CodeOf(err error) string {
	var fe FishcompError
	if errors.As(err, &fe) {
		return fe.Code()
	}
	return ""
}
