package sequence

import (
	"context"
	"math/big"

	"github.com/agbru/seqcalc/internal/progress"
)

// IterativeFibonacci accumulates the sequence from a=0, b=1, one step per
// index. It is the reference algorithm the others are checked against.
type IterativeFibonacci struct{}

// Name returns the display name of the algorithm.
func (IterativeFibonacci) Name() string { return "Iterative Fibonacci (O(n))" }

// Kind returns KindFibonacci.
func (IterativeFibonacci) Kind() Kind { return KindFibonacci }

// CalculateCore returns F(n).
func (IterativeFibonacci) CalculateCore(ctx context.Context, report progress.ProgressCallback, n uint64) (*big.Int, error) {
	a, b := big.NewInt(0), big.NewInt(1)
	for i := uint64(0); i < n; i++ {
		if err := canceled(ctx, i); err != nil {
			return nil, err
		}
		if i%checkInterval == 0 {
			progress.ReportStepProgress(report, i, n)
		}
		// c = b; b = a + b; a = c
		a.Add(a, b)
		a, b = b, a
	}
	return a, nil
}

// Fibonacci returns F(n) using the iterative algorithm.
func Fibonacci(n uint64) *big.Int {
	result, _ := IterativeFibonacci{}.CalculateCore(context.Background(), nil, n)
	return result
}
