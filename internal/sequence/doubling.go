package sequence

import (
	"context"
	"fmt"
	"math/big"
	"math/bits"

	"github.com/agbru/seqcalc/internal/progress"
)

// FastDoubling computes F(n) in O(log n) steps using
//
//	F(2k)   = F(k) * (2*F(k+1) - F(k))
//	F(2k+1) = F(k+1)² + F(k)²
type FastDoubling struct{}

// Name returns the display name of the algorithm.
func (FastDoubling) Name() string { return "Fast Doubling Fibonacci (O(log n))" }

// Kind returns KindFibonacci.
func (FastDoubling) Kind() Kind { return KindFibonacci }

// CalculateCore returns F(n).
func (FastDoubling) CalculateCore(ctx context.Context, report progress.ProgressCallback, n uint64) (*big.Int, error) {
	return doubling(ctx, report, n, nil)
}

// FastDoublingMod computes F(n) mod m. Memory usage is O(log m) regardless
// of n, which makes it suitable for the last K digits of F(n).
func FastDoublingMod(n uint64, m *big.Int) (*big.Int, error) {
	return FastDoublingModContext(context.Background(), n, m)
}

// FastDoublingModContext is FastDoublingMod checking ctx between bits.
func FastDoublingModContext(ctx context.Context, n uint64, m *big.Int) (*big.Int, error) {
	if m == nil || m.Sign() <= 0 {
		return nil, fmt.Errorf("modulus must be positive")
	}
	return doubling(ctx, nil, n, m)
}

// doubling walks the bits of n from the most significant one. When m is
// non-nil every intermediate value is reduced modulo m.
func doubling(ctx context.Context, report progress.ProgressCallback, n uint64, m *big.Int) (*big.Int, error) {
	fk, fk1 := big.NewInt(0), big.NewInt(1)
	if n == 0 {
		return fk, nil
	}
	t1, t2, t3 := new(big.Int), new(big.Int), new(big.Int)
	reduce := func(x *big.Int) {
		if m != nil {
			x.Mod(x, m)
		}
	}

	numBits := bits.Len64(n)
	for i := numBits - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// F(2k). Mod keeps the sign of m, so 2*F(k+1) - F(k) stays non-negative.
		t1.Lsh(fk1, 1)
		t1.Sub(t1, fk)
		reduce(t1)
		t1.Mul(t1, fk)
		reduce(t1)

		// F(2k+1)
		t2.Mul(fk1, fk1)
		t3.Mul(fk, fk)
		t2.Add(t2, t3)
		reduce(t2)

		fk, t1 = t1, fk
		fk1, t2 = t2, fk1

		if (n>>uint(i))&1 == 1 {
			t1.Add(fk, fk1)
			reduce(t1)
			fk, fk1, t1 = fk1, t1, fk
		}
		progress.ReportStepProgress(report, uint64(numBits-i), uint64(numBits))
	}
	return fk, nil
}
