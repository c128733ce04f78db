package apperrors

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type testColors struct{}

func (testColors) Red() string    { return "<red>" }
func (testColors) Yellow() string { return "<yellow>" }
func (testColors) Reset() string  { return "</>" }

func TestHandleCalculationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		wantCode int
		contains string
	}{
		{"nil error", nil, ExitSuccess, ""},
		{"deadline", context.DeadlineExceeded, ExitErrorTimeout, "timed out"},
		{"timeout error", TimeoutError{Operation: "fib", Limit: time.Second}, ExitErrorTimeout, "timed out"},
		{"canceled", WrapError(context.Canceled, "run"), ExitErrorCanceled, "canceled"},
		{"validation", ValidationError{Field: "n", Message: "too large"}, ExitErrorConfig, "Invalid input"},
		{"config", NewConfigError("bad algo"), ExitErrorConfig, "bad algo"},
		{"overflow", CalculationError{Cause: OverflowError{Sequence: "fac", N: 21, Bits: 64}}, ExitErrorGeneric, "does not fit"},
		{"generic", errors.New("boom"), ExitErrorGeneric, "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			code := HandleCalculationError(tt.err, 5*time.Millisecond, &buf, nil)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			if !strings.Contains(buf.String(), tt.contains) {
				t.Errorf("output %q should contain %q", buf.String(), tt.contains)
			}
			if tt.err == nil && buf.Len() != 0 {
				t.Errorf("nil error should print nothing, got %q", buf.String())
			}
		})
	}
}

func TestHandleCalculationError_UsesColors(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	HandleCalculationError(errors.New("boom"), 0, &buf, testColors{})
	out := buf.String()
	if !strings.HasPrefix(out, "<red>") || !strings.Contains(out, "</>") {
		t.Errorf("expected colored output, got %q", out)
	}
	if strings.Contains(out, "after") {
		t.Errorf("zero duration should not be reported, got %q", out)
	}
}
