package sequence

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// goldenFile mirrors the file written by cmd/generate-golden.
type goldenFile struct {
	Fibonacci []goldenEntry `json:"fibonacci"`
	Factorial []goldenEntry `json:"factorial"`
}

type goldenEntry struct {
	N     uint64 `json:"n"`
	Value string `json:"value"`
}

func loadGolden(t *testing.T) goldenFile {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "golden.json"))
	if err != nil {
		t.Fatalf("read golden file: %v", err)
	}
	var g goldenFile
	if err := json.Unmarshal(data, &g); err != nil {
		t.Fatalf("parse golden file: %v", err)
	}
	return g
}

func TestCalculators_MatchGolden(t *testing.T) {
	t.Parallel()
	g := loadGolden(t)
	f := NewDefaultFactory()

	cases := map[Kind][]goldenEntry{
		KindFibonacci: g.Fibonacci,
		KindFactorial: g.Factorial,
	}
	for kind, entries := range cases {
		if len(entries) == 0 {
			t.Fatalf("no golden entries for %s", kind)
		}
		for _, name := range f.ListKind(kind) {
			calc, err := f.Get(name)
			if err != nil {
				t.Fatal(err)
			}
			t.Run(name, func(t *testing.T) {
				t.Parallel()
				for _, e := range entries {
					got, err := calc.Calculate(context.Background(), nil, 0, e.N)
					if err != nil {
						t.Fatalf("%s: %v", kind.Symbol(e.N), err)
					}
					if got.String() != e.Value {
						t.Errorf("%s = %s, want %s", kind.Symbol(e.N), got, e.Value)
					}
				}
			})
		}
	}
}
