package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Process exit codes returned by seqcalc.
const (
	ExitSuccess       = 0
	ExitErrorGeneric  = 1
	ExitErrorTimeout  = 2   // --timeout elapsed
	ExitErrorMismatch = 3   // two algorithms disagreed on the same n
	ExitErrorConfig   = 4   // bad flag, env var, YAML key or pattern
	ExitErrorCanceled = 130 // SIGINT
)

// ConfigError reports settings that prevent seqcalc from starting, such as an
// unknown --algo or a --pattern without exactly one placeholder.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError formats a ConfigError.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError marks a failure inside a calculator. The message is the
// cause's own, so printing it does not add a prefix.
type CalculationError struct {
	Cause error
}

func (e CalculationError) Error() string { return e.Cause.Error() }

// Unwrap exposes Cause to errors.Is and errors.As.
func (e CalculationError) Unwrap() error { return e.Cause }

// TimeoutError names the operation that ran past its limit. The exit code
// mapping treats it like context.DeadlineExceeded.
type TimeoutError struct {
	Operation string
	Limit     time.Duration
}

func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError rejects one input field, e.g. the n query parameter of
// /fib or the limit of /program.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// OverflowError is returned by the fixed-width helpers when F(n) or n! needs
// more than Bits bits. F(93) and 20! are the last values that fit in 64.
type OverflowError struct {
	Sequence string // "fib" or "fac"
	N        uint64
	Bits     int
}

func (e OverflowError) Error() string {
	return fmt.Sprintf("%s(%d) overflows a %d-bit integer", e.Sequence, e.N, e.Bits)
}

// WrapError prefixes err with a formatted message, keeping it in the chain.
// A nil err stays nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err stems from cancellation or a deadline.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
