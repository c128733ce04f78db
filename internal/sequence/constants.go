package sequence

const (
	// MaxRecursiveN bounds the recursion depth of the recursive factorial.
	// Larger indices are rejected instead of growing the stack without limit.
	MaxRecursiveN = 1 << 14

	// SplitParallelThreshold is the width of a product range above which the
	// binary-splitting factorial computes its two halves concurrently.
	SplitParallelThreshold = 2048

	// splitLeafSize is the width below which a product range is multiplied
	// sequentially.
	splitLeafSize = 32

	// checkInterval is the number of loop iterations between context checks
	// and progress reports in the linear algorithms.
	checkInterval = 256
)

// Largest indices whose values fit fixed-width integers.
const (
	MaxUint64FibonacciIndex = 93
	MaxUint64FactorialIndex = 20
	MaxInt32FibonacciIndex  = 46
	MaxInt32FactorialIndex  = 12
)
