package sequence

import (
	"errors"
	"math/big"
	"testing"

	apperrors "github.com/agbru/seqcalc/internal/errors"
)

func TestFibonacciUint64(t *testing.T) {
	t.Parallel()

	for n := uint64(0); n <= MaxUint64FibonacciIndex; n++ {
		got, err := FibonacciUint64(n)
		if err != nil {
			t.Fatalf("FibonacciUint64(%d): %v", n, err)
		}
		if want := Fibonacci(n); !want.IsUint64() || want.Uint64() != got {
			t.Fatalf("FibonacciUint64(%d) = %d, want %s", n, got, want)
		}
	}

	_, err := FibonacciUint64(MaxUint64FibonacciIndex + 1)
	var overflowErr apperrors.OverflowError
	if !errors.As(err, &overflowErr) {
		t.Fatalf("expected OverflowError, got %v", err)
	}
	if overflowErr.Bits != 64 || overflowErr.Sequence != "fib" {
		t.Errorf("unexpected overflow details: %+v", overflowErr)
	}
}

func TestFactorialUint64(t *testing.T) {
	t.Parallel()

	for n := uint64(0); n <= MaxUint64FactorialIndex; n++ {
		got, err := FactorialUint64(n)
		if err != nil {
			t.Fatalf("FactorialUint64(%d): %v", n, err)
		}
		if want := Factorial(n); want.Uint64() != got {
			t.Fatalf("FactorialUint64(%d) = %d, want %s", n, got, want)
		}
	}

	if _, err := FactorialUint64(MaxUint64FactorialIndex + 1); err == nil {
		t.Error("expected overflow for 21!")
	}
}

func TestFitsInt32(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		v    *big.Int
		want bool
	}{
		{"largest int32 Fibonacci", Fibonacci(MaxInt32FibonacciIndex), true},
		{"next Fibonacci", Fibonacci(MaxInt32FibonacciIndex + 1), false},
		{"largest int32 factorial", Factorial(MaxInt32FactorialIndex), true},
		{"next factorial", Factorial(MaxInt32FactorialIndex + 1), false},
		{"negative bound", big.NewInt(-2147483648), true},
		{"huge", Factorial(40), false},
	}
	for _, tt := range tests {
		if got := FitsInt32(tt.v); got != tt.want {
			t.Errorf("%s: FitsInt32(%s) = %v, want %v", tt.name, tt.v, got, tt.want)
		}
	}
}
