package sequence

import (
	"math"
	"math/big"

	apperrors "github.com/agbru/seqcalc/internal/errors"
)

// FibonacciUint64 returns F(n) as a uint64, or an OverflowError when
// n > MaxUint64FibonacciIndex.
func FibonacciUint64(n uint64) (uint64, error) {
	if n > MaxUint64FibonacciIndex {
		return 0, apperrors.OverflowError{Sequence: string(KindFibonacci), N: n, Bits: 64}
	}
	var a, b uint64 = 0, 1
	for i := uint64(0); i < n; i++ {
		a, b = b, a+b
	}
	return a, nil
}

// FactorialUint64 returns n! as a uint64, or an OverflowError when
// n > MaxUint64FactorialIndex.
func FactorialUint64(n uint64) (uint64, error) {
	if n > MaxUint64FactorialIndex {
		return 0, apperrors.OverflowError{Sequence: string(KindFactorial), N: n, Bits: 64}
	}
	result := uint64(1)
	for i := uint64(2); i <= n; i++ {
		result *= i
	}
	return result, nil
}

// FitsInt32 reports whether v is representable as a 32-bit signed integer,
// the width of a C int.
func FitsInt32(v *big.Int) bool {
	return v.IsInt64() && v.Int64() >= math.MinInt32 && v.Int64() <= math.MaxInt32
}
