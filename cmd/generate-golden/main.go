// Command generate-golden writes the reference values checked by the
// sequence package tests. The values come from plain loops that share no
// code with the calculators under test.
//
// Usage:
//
//	go run ./cmd/generate-golden -out internal/sequence/testdata/golden.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
)

type goldenEntry struct {
	N     uint64 `json:"n"`
	Value string `json:"value"`
}

type goldenFile struct {
	Fibonacci []goldenEntry `json:"fibonacci"`
	Factorial []goldenEntry `json:"factorial"`
}

var (
	fibIndices = []uint64{0, 1, 2, 3, 5, 10, 17, 20, 50, 92, 93, 94, 100, 500, 1000, 2500}
	facIndices = []uint64{0, 1, 2, 5, 10, 12, 13, 20, 21, 25, 50, 100, 300}
)

// fibBig is the oracle: F(0)=0, F(1)=1, accumulated one step at a time.
func fibBig(n uint64) *big.Int {
	a, b := big.NewInt(0), big.NewInt(1)
	for i := uint64(0); i < n; i++ {
		a.Add(a, b)
		a, b = b, a
	}
	return a
}

// facBig is the oracle product 1*2*...*n, with 0! = 1.
func facBig(n uint64) *big.Int {
	r := big.NewInt(1)
	for i := uint64(2); i <= n; i++ {
		r.Mul(r, new(big.Int).SetUint64(i))
	}
	return r
}

func build() goldenFile {
	var g goldenFile
	for _, n := range fibIndices {
		g.Fibonacci = append(g.Fibonacci, goldenEntry{N: n, Value: fibBig(n).String()})
	}
	for _, n := range facIndices {
		g.Factorial = append(g.Factorial, goldenEntry{N: n, Value: facBig(n).String()})
	}
	return g
}

func run(out string) error {
	data, err := json.MarshalIndent(build(), "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}
	return os.WriteFile(out, append(data, '\n'), 0o644)
}

func main() {
	out := flag.String("out", filepath.Join("internal", "sequence", "testdata", "golden.json"), "Destination file.")
	flag.Parse()

	if err := run(*out); err != nil {
		fmt.Fprintf(os.Stderr, "generate-golden: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s\n", *out)
}
