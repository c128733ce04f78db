package orchestration

import (
	"context"
	"errors"
	"io"
	"math/big"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/agbru/seqcalc/internal/progress"
	"github.com/agbru/seqcalc/internal/sequence"
)

// stallCalculator misbehaves toward the progress pipeline in one of several
// ways while still returning F(n) = 1 for the tests below.
type stallCalculator struct {
	name string
	mode string // "flood", "blocked", "fail"
}

func (s stallCalculator) Name() string        { return s.name }
func (s stallCalculator) Kind() sequence.Kind { return sequence.KindFibonacci }

func (s stallCalculator) Calculate(ctx context.Context, ch chan<- progress.ProgressUpdate, idx int, _ uint64) (*big.Int, error) {
	switch s.mode {
	case "flood":
		for i := range 10_000 {
			select {
			case ch <- progress.ProgressUpdate{CalculatorIndex: idx, Value: float64(i) / 10_000}:
			default:
			}
		}
	case "blocked":
		<-ctx.Done()
		return nil, ctx.Err()
	case "fail":
		return nil, errors.New("worker lost")
	}
	return big.NewInt(1), nil
}

// slowReporter reads the channel more slowly than calculators write to it.
type slowReporter struct{ seen atomic.Int64 }

func (r *slowReporter) DisplayProgress(wg *sync.WaitGroup, ch <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for range ch {
		r.seen.Add(1)
		time.Sleep(100 * time.Microsecond)
	}
}

func mustCalc(t *testing.T, name string) sequence.Calculator {
	t.Helper()
	c, err := sequence.NewDefaultFactory().Get(name)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func runWithin(t *testing.T, limit time.Duration, ctx context.Context, calcs []sequence.Calculator, n uint64, r ProgressReporter) []CalculationResult {
	t.Helper()
	done := make(chan []CalculationResult, 1)
	go func() { done <- ExecuteCalculations(ctx, calcs, n, r, io.Discard) }()
	select {
	case res := <-done:
		return res
	case <-time.After(limit):
		t.Fatalf("ExecuteCalculations did not return within %v", limit)
		return nil
	}
}

// Real algorithms run next to misbehaving ones under a slow display; every
// result slot is filled and the honest calculators still agree.
func TestExecuteCalculations_NoDeadlockWithSlowDisplay(t *testing.T) {
	const n = 90
	want, _ := new(big.Int).SetString("2880067194370816120", 10)

	tests := []struct {
		name  string
		calcs []sequence.Calculator
	}{
		{"fibonacci algorithms", []sequence.Calculator{mustCalc(t, "fib-iter"), mustCalc(t, "fib-double")}},
		{"with flooders", []sequence.Calculator{mustCalc(t, "fib-iter"), stallCalculator{"f1", "flood"}, stallCalculator{"f2", "flood"}}},
		{"with failure", []sequence.Calculator{stallCalculator{"bad", "fail"}, mustCalc(t, "fib-double")}},
		{"single", []sequence.Calculator{mustCalc(t, "fib-iter")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &slowReporter{}
			results := runWithin(t, 10*time.Second, context.Background(), tt.calcs, n, r)
			if len(results) != len(tt.calcs) {
				t.Fatalf("got %d results, want %d", len(results), len(tt.calcs))
			}
			for i, res := range results {
				if res.Name != tt.calcs[i].Name() {
					t.Errorf("result %d is %q, want %q", i, res.Name, tt.calcs[i].Name())
				}
				if _, fake := tt.calcs[i].(stallCalculator); fake {
					continue
				}
				if res.Err != nil || res.Result.Cmp(want) != 0 {
					t.Errorf("%s: F(%d) = %v, %v; want %s", res.Name, n, res.Result, res.Err, want)
				}
			}
			if r.seen.Load() == 0 {
				t.Error("the display should see at least the completion updates")
			}
		})
	}
}

// Cancelling while a calculator waits on its context unblocks the whole run.
func TestExecuteCalculations_NoDeadlockOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	calcs := []sequence.Calculator{
		stallCalculator{"stuck", "blocked"},
		mustCalc(t, "fac-iter"),
	}
	results := runWithin(t, 5*time.Second, ctx, calcs, 20, &slowReporter{})

	if !errors.Is(results[0].Err, context.Canceled) {
		t.Errorf("blocked calculator err = %v, want context.Canceled", results[0].Err)
	}
	if results[1].Err != nil || results[1].Result.String() != "2432902008176640000" {
		t.Errorf("fac-iter 20! = %v, %v", results[1].Result, results[1].Err)
	}
}
