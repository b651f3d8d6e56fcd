// Package errs provides structured, user-friendly errors with machine-parseable codes.
package errs

import (
	"errors"
	"fmt"
)

// ErrorCode is a machine-parseable error identifier.
type ErrorCode string

const (
	ErrUnknown    ErrorCode = "ERR-000"
	ErrInternal   ErrorCode = "ERR-001"
	ErrConfig     ErrorCode = "ERR-002"
	ErrValidation ErrorCode = "ERR-003"

	ErrDisplay    ErrorCode = "ERR-DISPLAY-001"
	ErrAudio      ErrorCode = "ERR-AUDIO-001"
	ErrScreenshot ErrorCode = "ERR-SHOT-001"
)

// OrbitsError is the structured error type shared by every package.
type OrbitsError struct {
	Code   ErrorCode // Machine-parseable error code
	Op     string    // Operation chain, e.g. "config.validate"
	Field  string    // Offending setting, if any
	Cause  error     // Wrapped upstream error
	Advice string    // Human-readable remediation hint
}

func (e *OrbitsError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("[%s] %s (%s): %v", e.Code, e.Op, e.Field, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Code, e.Op, e.Cause)
}

func (e *OrbitsError) Unwrap() error {
	return e.Cause
}

// UserMessage returns the message shown on stderr, with the advice when set.
func (e *OrbitsError) UserMessage() string {
	msg := fmt.Sprintf("%s: %v", e.Op, e.Cause)
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s: %v", e.Op, e.Field, e.Cause)
	}
	if e.Advice != "" {
		msg += fmt.Sprintf("\n  → %s", e.Advice)
	}
	return msg
}

// New creates a new OrbitsError.
func New(code ErrorCode, op string, cause error) *OrbitsError {
	return &OrbitsError{Code: code, Op: op, Cause: cause}
}

// Newf creates a new OrbitsError with a formatted message as the cause.
func Newf(code ErrorCode, op, format string, args ...any) *OrbitsError {
	return &OrbitsError{Code: code, Op: op, Cause: fmt.Errorf(format, args...)}
}

// WithField names the setting the error is about.
func (e *OrbitsError) WithField(field string) *OrbitsError {
	e.Field = field
	return e
}

// WithAdvice sets the human-readable remediation hint.
func (e *OrbitsError) WithAdvice(advice string) *OrbitsError {
	e.Advice = advice
	return e
}

// Wrap wraps an existing error at a new operation boundary.
func Wrap(err error, code ErrorCode, op string) *OrbitsError {
	if err == nil {
		return nil
	}
	return &OrbitsError{Code: code, Op: op, Cause: err}
}

// IsCode reports whether err is an OrbitsError with the given code.
func IsCode(err error, code ErrorCode) bool {
	var oe *OrbitsError
	if errors.As(err, &oe) {
		return oe.Code == code
	}
	return false
}

// As extracts the *OrbitsError from err, or returns nil.
func As(err error) *OrbitsError {
	var oe *OrbitsError
	if errors.As(err, &oe) {
		return oe
	}
	return nil
}
