package sequence

import (
	"context"
	"fmt"
	"math/big"

	apperrors "github.com/agbru/seqcalc/internal/errors"
	"github.com/agbru/seqcalc/internal/progress"
)

// RecursiveFactorial follows the textbook definition fac(n) = n * fac(n-1)
// with fac(1) = 1. fac(0) is the empty product, 1.
type RecursiveFactorial struct{}

// Name returns the display name of the algorithm.
func (RecursiveFactorial) Name() string { return "Recursive Factorial (O(n))" }

// Kind returns KindFactorial.
func (RecursiveFactorial) Kind() Kind { return KindFactorial }

// CalculateCore returns n!. Indices above MaxRecursiveN are rejected.
func (RecursiveFactorial) CalculateCore(ctx context.Context, report progress.ProgressCallback, n uint64) (*big.Int, error) {
	if n > MaxRecursiveN {
		return nil, apperrors.ValidationError{
			Field:   "n",
			Message: fmt.Sprintf("recursive factorial supports n <= %d, got %d", MaxRecursiveN, n),
		}
	}
	return facRec(ctx, report, n, n)
}

func facRec(ctx context.Context, report progress.ProgressCallback, n, total uint64) (*big.Int, error) {
	if n <= 1 {
		return big.NewInt(1), nil
	}
	if err := canceled(ctx, n); err != nil {
		return nil, err
	}
	sub, err := facRec(ctx, report, n-1, total)
	if err != nil {
		return nil, err
	}
	if n%checkInterval == 0 {
		progress.ReportStepProgress(report, n, total)
	}
	return sub.Mul(sub, new(big.Int).SetUint64(n)), nil
}

// IterativeFactorial multiplies 2·3·…·n in a single loop.
type IterativeFactorial struct{}

// Name returns the display name of the algorithm.
func (IterativeFactorial) Name() string { return "Iterative Factorial (O(n))" }

// Kind returns KindFactorial.
func (IterativeFactorial) Kind() Kind { return KindFactorial }

// CalculateCore returns n!.
func (IterativeFactorial) CalculateCore(ctx context.Context, report progress.ProgressCallback, n uint64) (*big.Int, error) {
	result := big.NewInt(1)
	factor := new(big.Int)
	for i := uint64(2); i <= n; i++ {
		if err := canceled(ctx, i); err != nil {
			return nil, err
		}
		if i%checkInterval == 0 {
			progress.ReportStepProgress(report, i, n)
		}
		result.Mul(result, factor.SetUint64(i))
	}
	return result, nil
}

// Factorial returns n! using the iterative algorithm.
func Factorial(n uint64) *big.Int {
	result, _ := IterativeFactorial{}.CalculateCore(context.Background(), nil, n)
	return result
}
