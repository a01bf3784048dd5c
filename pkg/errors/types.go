// Package errors provides typed errors for gcd.
//
// This package defines the error taxonomy shared by the indexer, the matcher
// and the CLI: invalid scan roots, failed matches, persistence failures and
// configuration problems. All error types implement the standard error
// interface and support errors.Is() and errors.As() from the standard library
// and cockroachdb/errors.
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ConfigError represents configuration-related errors.
type ConfigError struct {
	Field   string // Which config field has the issue
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
	}
	return "config error: " + e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}

// NewConfigErrorWithCause creates a new ConfigError with an underlying cause.
func NewConfigErrorWithCause(field, message string, cause error) *ConfigError {
	return &ConfigError{Field: field, Message: message, Cause: cause}
}

// RootError reports a scan root that does not exist or is not a directory.
type RootError struct {
	Root    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *RootError) Error() string {
	return fmt.Sprintf("invalid root %s: %s", e.Root, e.Message)
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *RootError) Unwrap() error {
	return e.Cause
}

// NewRootError creates a new RootError.
func NewRootError(root, message string) *RootError {
	return &RootError{Root: root, Message: message}
}

// NewRootErrorWithCause creates a new RootError with an underlying cause.
func NewRootErrorWithCause(root, message string, cause error) *RootError {
	return &RootError{Root: root, Message: message, Cause: cause}
}

// NoMatchError is returned when no indexed repository matches a query.
type NoMatchError struct {
	Query   string
	Indexed int // Number of records that were considered
}

// Error implements the error interface.
func (e *NoMatchError) Error() string {
	if e.Indexed == 0 {
		return fmt.Sprintf("no repository matches %q: the index is empty", e.Query)
	}
	return fmt.Sprintf("no repository matches %q", e.Query)
}

// NewNoMatchError creates a new NoMatchError.
func NewNoMatchError(query string, indexed int) *NoMatchError {
	return &NoMatchError{Query: query, Indexed: indexed}
}

// StoreError represents a failure reading or writing the persisted index.
// Corrupt marks content that could be read but not decoded; callers recover
// from those by starting with an empty index.
type StoreError struct {
	Operation string // "load", "save", "lock"
	Path      string
	Corrupt   bool
	Cause     error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	msg := fmt.Sprintf("index %s %s failed", e.Operation, e.Path)
	if e.Corrupt {
		msg = fmt.Sprintf("index %s is corrupt", e.Path)
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *StoreError) Unwrap() error {
	return e.Cause
}

// NewStoreError creates a new StoreError for an I/O failure.
func NewStoreError(operation, path string, cause error) *StoreError {
	return &StoreError{Operation: operation, Path: path, Cause: cause}
}

// NewCorruptError creates a StoreError for undecodable index content.
func NewCorruptError(path string, cause error) *StoreError {
	return &StoreError{Operation: "load", Path: path, Corrupt: true, Cause: cause}
}

// IsConfigError checks if an error or any error in its chain is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsRootError checks if an error or any error in its chain is a RootError.
func IsRootError(err error) bool {
	var rootErr *RootError
	return errors.As(err, &rootErr)
}

// IsNoMatchError checks if an error or any error in its chain is a NoMatchError.
func IsNoMatchError(err error) bool {
	var noMatch *NoMatchError
	return errors.As(err, &noMatch)
}

// IsStoreError checks if an error or any error in its chain is a StoreError.
func IsStoreError(err error) bool {
	var storeErr *StoreError
	return errors.As(err, &storeErr)
}

// IsCorrupt reports whether err carries a corrupt-index StoreError.
func IsCorrupt(err error) bool {
	var storeErr *StoreError
	return errors.As(err, &storeErr) && storeErr.Corrupt
}

// Re-export commonly used functions from cockroachdb/errors for convenience.
// This allows consumers to use gcderrors.Wrap() instead of importing two packages.
var (
	// New creates a new error with the given message.
	New = errors.New

	// Newf creates a new error with formatted message.
	Newf = errors.Newf

	// Wrap wraps an error with additional context.
	Wrap = errors.Wrap

	// Wrapf wraps an error with formatted additional context.
	Wrapf = errors.Wrapf

	// Is reports whether any error in err's chain matches target.
	Is = errors.Is

	// As finds the first error in err's chain that matches target.
	As = errors.As

	// Cause returns the root cause of an error.
	Cause = errors.Cause
)
