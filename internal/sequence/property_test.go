package sequence

import (
	"context"
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// calc is a shorthand that runs a core calculator without progress.
func calc(c coreCalculator, n uint64) (*big.Int, error) {
	return c.CalculateCore(context.Background(), noReport, n)
}

// TestCassinisIdentity_PropertyBased verifies Cassini's identity
//
//	F(n-1) * F(n+1) - F(n)² = (-1)ⁿ
//
// for every Fibonacci algorithm.
func TestCassinisIdentity_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	for _, calculator := range fibonacciCores() {
		properties.Property(calculator.Name()+" satisfies Cassini's identity", prop.ForAll(
			func(n uint64) bool {
				fnMinus1, err1 := calc(calculator, n-1)
				fn, err2 := calc(calculator, n)
				fnPlus1, err3 := calc(calculator, n+1)
				if err1 != nil || err2 != nil || err3 != nil {
					return false
				}

				left := new(big.Int).Mul(fnMinus1, fnPlus1)
				left.Sub(left, new(big.Int).Mul(fn, fn))

				right := big.NewInt(1)
				if n%2 != 0 {
					right.Neg(right)
				}
				return left.Cmp(right) == 0
			},
			gen.UInt64Range(1, 5000),
		))
	}

	properties.TestingRun(t)
}

// TestFactorialRecurrence_PropertyBased verifies n! = n * (n-1)! for every
// factorial algorithm.
func TestFactorialRecurrence_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	for _, calculator := range factorialCores() {
		properties.Property(calculator.Name()+" satisfies n! = n*(n-1)!", prop.ForAll(
			func(n uint64) bool {
				prev, err := calc(calculator, n-1)
				if err != nil {
					return false
				}
				cur, err := calc(calculator, n)
				if err != nil {
					return false
				}
				return cur.Cmp(prev.Mul(prev, new(big.Int).SetUint64(n))) == 0
			},
			gen.UInt64Range(1, 2000),
		))
	}

	properties.TestingRun(t)
}

// TestAlgorithmsAgree_PropertyBased checks that every registered algorithm
// returns the same value as the reference algorithm of its kind.
func TestAlgorithmsAgree_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("fast doubling matches iteration", prop.ForAll(
		func(n uint64) bool {
			got, err := calc(FastDoubling{}, n)
			return err == nil && got.Cmp(Fibonacci(n)) == 0
		},
		gen.UInt64Range(0, 20000),
	))

	properties.Property("binary splitting matches iteration", prop.ForAll(
		func(n uint64) bool {
			got, err := calc(SplitFactorial{ParallelThreshold: 64}, n)
			return err == nil && got.Cmp(Factorial(n)) == 0
		},
		gen.UInt64Range(0, 3000),
	))

	properties.TestingRun(t)
}
