package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies the ANSI sequences used when printing errors.
// A nil provider prints plain text.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

type plainColors struct{}

func (plainColors) Red() string    { return "" }
func (plainColors) Yellow() string { return "" }
func (plainColors) Reset() string  { return "" }

// HandleCalculationError reports a failed calculation on out and maps the
// error to a process exit code.
//
// Parameters:
//   - err: The calculation error. A nil error yields ExitSuccess.
//   - duration: How long the calculation ran before failing.
//   - out: The writer for the error report.
//   - colors: The color provider, or nil for plain output.
//
// Returns:
//   - int: The exit code matching the error class.
func HandleCalculationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = plainColors{}
	}

	elapsed := ""
	if duration > 0 {
		elapsed = fmt.Sprintf(" after %s", duration.Round(time.Microsecond))
	}

	var (
		timeoutErr    TimeoutError
		validationErr ValidationError
		overflowErr   OverflowError
		configErr     ConfigError
	)

	switch {
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(out, "%sCalculation timed out%s.%s\n", colors.Yellow(), elapsed, colors.Reset())
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "%sCalculation canceled%s.%s\n", colors.Yellow(), elapsed, colors.Reset())
		return ExitErrorCanceled
	case errors.As(err, &validationErr), errors.As(err, &configErr):
		fmt.Fprintf(out, "%sInvalid input: %v%s\n", colors.Red(), err, colors.Reset())
		return ExitErrorConfig
	case errors.As(err, &overflowErr):
		fmt.Fprintf(out, "%sResult does not fit: %v%s\n", colors.Red(), err, colors.Reset())
		return ExitErrorGeneric
	default:
		fmt.Fprintf(out, "%sCalculation failed%s: %v%s\n", colors.Red(), elapsed, err, colors.Reset())
		return ExitErrorGeneric
	}
}
