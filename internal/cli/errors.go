package cli

import (
	"errors"
	"fmt"
)

// UsageError indicates bad or missing command-line input. Cobra prints the
// offending command's usage text alongside it; the process exits 2.
type UsageError struct {
	msg string
}

func usageErrorf(format string, args ...any) *UsageError {
	return &UsageError{msg: fmt.Sprintf(format, args...)}
}

func (e *UsageError) Error() string { return e.msg }

// UnknownCommandError is returned when the first positional argument does
// not name a registered command.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("Command %q not found.", e.Name)
}

// ConfigError indicates that no usable credentials could be resolved from
// flags or the config file.
type ConfigError struct {
	msg string
	err error
}

func configErrorf(format string, args ...any) *ConfigError {
	return &ConfigError{msg: fmt.Sprintf(format, args...)}
}

func (e *ConfigError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

func (e *ConfigError) Unwrap() error { return e.err }

// exitCode maps an error to the process exit status: 2 for user-fixable
// invocation errors, 1 for everything else.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var usageErr *UsageError
	var unknownErr *UnknownCommandError
	if errors.As(err, &usageErr) || errors.As(err, &unknownErr) {
		return 2
	}
	return 1
}
