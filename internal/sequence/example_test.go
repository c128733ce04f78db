package sequence

import (
	"context"
	"fmt"
	"math/big"
)

// ExampleNewCalculator shows the display names of the built-in algorithms.
func ExampleNewCalculator() {
	fmt.Println(NewCalculator(IterativeFibonacci{}).Name())
	fmt.Println(NewCalculator(FastDoubling{}).Name())
	fmt.Println(NewCalculator(SplitFactorial{}).Name())
	// Output:
	// Iterative Fibonacci (O(n))
	// Fast Doubling Fibonacci (O(log n))
	// Binary Splitting Factorial (Parallel)
}

// ExampleDefaultFactory resolves calculators by short name.
func ExampleDefaultFactory() {
	factory := NewDefaultFactory()
	fmt.Println(factory.ListKind(KindFibonacci))

	calc, err := factory.Get("fac-rec")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	result, err := calc.Calculate(context.Background(), nil, 0, 5)
	if err != nil {
		fmt.Printf("Calculation error: %v\n", err)
		return
	}
	fmt.Println(result)
	// Output:
	// [fib-double fib-iter]
	// 120
}

// Example_oddIndices prints the values the demonstration program shows.
func Example_oddIndices() {
	for n := uint64(1); n < 17; n += 2 {
		fmt.Printf("%s = %s\n", KindFibonacci.Symbol(n), Fibonacci(n))
	}
	// Output:
	// F(1) = 1
	// F(3) = 2
	// F(5) = 5
	// F(7) = 13
	// F(9) = 34
	// F(11) = 89
	// F(13) = 233
	// F(15) = 610
}

// ExampleFastDoublingMod computes the last digits of a large Fibonacci number.
func ExampleFastDoublingMod() {
	m, _ := FastDoublingMod(1000, big.NewInt(1_000_000))
	fmt.Println(m)
	// Output:
	// 228875
}
