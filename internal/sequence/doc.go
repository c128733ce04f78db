// Package sequence computes Fibonacci numbers and factorials with arbitrary
// precision.
//
// Each algorithm implements a small core interface and is wrapped by
// NewCalculator into a Calculator that handles progress delivery. A Factory
// maps short names ("fib-iter", "fac-split", ...) to calculators so the CLI,
// the REPL, the HTTP server and the dashboard all select algorithms the same
// way.
//
// The reference definitions are:
//
//	fib(0) = 0, fib(n) by accumulation from a=0, b=1
//	fac(0) = fac(1) = 1, fac(n) = n * fac(n-1)
package sequence
