//go:generate mockgen -source=calculator.go -destination=mocks/mock_calculator.go -package=mocks

package sequence

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	apperrors "github.com/agbru/seqcalc/internal/errors"
	"github.com/agbru/seqcalc/internal/progress"
)

// Kind identifies which sequence a calculator produces.
type Kind string

const (
	// KindFibonacci is the Fibonacci sequence.
	KindFibonacci Kind = "fib"
	// KindFactorial is the factorial sequence.
	KindFactorial Kind = "fac"
)

// String returns the short name of the kind.
func (k Kind) String() string { return string(k) }

// Symbol returns the notation used when printing a result, e.g. "F(10)" or "10!".
func (k Kind) Symbol(n uint64) string {
	if k == KindFactorial {
		return fmt.Sprintf("%d!", n)
	}
	return fmt.Sprintf("F(%d)", n)
}

// ParseKind converts a user-supplied name into a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fib", "fibonacci", "f":
		return KindFibonacci, nil
	case "fac", "factorial", "!":
		return KindFactorial, nil
	}
	return "", apperrors.ValidationError{Field: "kind", Message: fmt.Sprintf("unknown sequence %q (accepted: fib, fac)", s)}
}

// Calculator computes the n-th value of a sequence.
//
// Calculate must honour ctx cancellation and must never block on
// progressChan; a nil channel disables progress reporting. calcIndex tags
// the progress updates when several calculators run concurrently.
type Calculator interface {
	Calculate(ctx context.Context, progressChan chan<- progress.ProgressUpdate, calcIndex int, n uint64) (*big.Int, error)
	Name() string
	Kind() Kind
}
