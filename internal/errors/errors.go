package errors

import (
	"errors"
	"fmt"
)

// Error types for the cmq system
type ErrorType string

const (
	// Snapshot preconditions - the build tree has not produced the data yet
	ErrorTypeNoBuildDir  ErrorType = "no_build_dir"
	ErrorTypeNoCache     ErrorType = "no_cache"
	ErrorTypeNoCodemodel ErrorType = "no_codemodel"

	// Configuration errors
	ErrorTypeConfig ErrorType = "config"

	// Internal errors
	ErrorTypeInternal ErrorType = "internal"
)

// SnapshotError reports that a required project snapshot could not be acquired
// at all. It is distinct from "acquired but empty": a configured project with
// zero cache entries or zero targets is not an error.
type SnapshotError struct {
	Type       ErrorType
	BuildDir   string
	Underlying error
}

// NewSnapshotError creates a snapshot precondition error for a build directory
func NewSnapshotError(errType ErrorType, buildDir string, err error) *SnapshotError {
	return &SnapshotError{
		Type:       errType,
		BuildDir:   buildDir,
		Underlying: err,
	}
}

// Error implements the error interface
func (e *SnapshotError) Error() string {
	var what string
	switch e.Type {
	case ErrorTypeNoBuildDir:
		what = "build directory not found"
	case ErrorTypeNoCache:
		what = "no CMake cache in build directory"
	case ErrorTypeNoCodemodel:
		what = "no file-api codemodel reply in build directory"
	default:
		what = string(e.Type)
	}
	if e.Underlying != nil {
		return fmt.Sprintf("%s (%s): %v", what, e.BuildDir, e.Underlying)
	}
	return fmt.Sprintf("%s (%s)", what, e.BuildDir)
}

// Unwrap returns the underlying error for errors.Is/As
func (e *SnapshotError) Unwrap() error {
	return e.Underlying
}

// IsSnapshotError reports whether err (or anything it wraps) is a snapshot
// precondition failure, and if so which type.
func IsSnapshotError(err error) (ErrorType, bool) {
	var se *SnapshotError
	if errors.As(err, &se) {
		return se.Type, true
	}
	return "", false
}

// ConfigError represents a configuration problem
type ConfigError struct {
	Type       ErrorType
	Path       string
	Field      string
	Underlying error
}

// NewConfigError creates a configuration error with context
func NewConfigError(path, field string, err error) *ConfigError {
	return &ConfigError{
		Type:       ErrorTypeConfig,
		Path:       path,
		Field:      field,
		Underlying: err,
	}
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config %s: field %s: %v", e.Path, e.Field, e.Underlying)
	}
	return fmt.Sprintf("config %s: %v", e.Path, e.Underlying)
}

// Unwrap returns the underlying error
func (e *ConfigError) Unwrap() error {
	return e.Underlying
}
