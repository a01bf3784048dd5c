package errors

import (
	"fmt"
	"strings"
)

// Process exit codes. These are part of the command-line contract and must
// not be renumbered.
const (
	ExitOK        = 0
	ExitFailure   = 1
	ExitBadRoot   = 2
	ExitNoMatch   = 3
	ExitStore     = 4
	ExitBadConfig = 5
)

// ExitCode maps an error to the process exit code for its kind.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case IsRootError(err):
		return ExitBadRoot
	case IsNoMatchError(err):
		return ExitNoMatch
	case IsStoreError(err):
		return ExitStore
	case IsConfigError(err):
		return ExitBadConfig
	default:
		return ExitFailure
	}
}

// FormatUserError returns a user-friendly error message with actionable guidance.
// It examines the error chain and provides context-appropriate help text.
func FormatUserError(err error) string {
	if err == nil {
		return ""
	}

	var configErr *ConfigError
	if As(err, &configErr) {
		return formatConfigError(configErr)
	}

	var rootErr *RootError
	if As(err, &rootErr) {
		return formatRootError(rootErr)
	}

	var noMatch *NoMatchError
	if As(err, &noMatch) {
		return formatNoMatchError(noMatch)
	}

	var storeErr *StoreError
	if As(err, &storeErr) {
		return formatStoreError(storeErr)
	}

	// Default: return the error message as-is
	return err.Error()
}

// formatConfigError formats a ConfigError with actionable guidance.
func formatConfigError(err *ConfigError) string {
	var b strings.Builder

	if err.Field != "" {
		fmt.Fprintf(&b, "Configuration error in '%s': %s\n", err.Field, err.Message)
	} else {
		fmt.Fprintf(&b, "Configuration error: %s\n", err.Message)
	}

	b.WriteString("\nTo fix this:\n")
	b.WriteString("  • Check your config file: ~/.config/gcd/config.toml\n")
	b.WriteString("  • Run 'gcd config' to see the effective settings\n")

	if err.Cause != nil {
		fmt.Fprintf(&b, "\nUnderlying error: %v", err.Cause)
	}

	return b.String()
}

func formatRootError(err *RootError) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Cannot index %s: %s\n", err.Root, err.Message)
	b.WriteString("\nPass an existing directory, e.g. 'gcd index ~/src'\n")

	return b.String()
}

func formatNoMatchError(err *NoMatchError) string {
	if err.Indexed == 0 {
		return fmt.Sprintf("No repositories indexed yet, so nothing matches %q.\nRun 'gcd index <dir>' first.", err.Query)
	}
	return "No matching repository found"
}

func formatStoreError(err *StoreError) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Could not %s the repository index at %s\n", err.Operation, err.Path)
	if err.Cause != nil {
		fmt.Fprintf(&b, "\nUnderlying error: %v", err.Cause)
	}

	return b.String()
}
