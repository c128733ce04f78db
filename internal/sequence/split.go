package sequence

import (
	"context"
	"math/big"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/seqcalc/internal/progress"
)

// SplitFactorial computes n! as a balanced product tree. Multiplying
// operands of similar size lets math/big use its sub-quadratic algorithms,
// and wide subtrees are evaluated concurrently.
type SplitFactorial struct {
	// ParallelThreshold overrides SplitParallelThreshold when positive.
	ParallelThreshold uint64
}

// Name returns the display name of the algorithm.
func (SplitFactorial) Name() string { return "Binary Splitting Factorial (Parallel)" }

// Kind returns KindFactorial.
func (SplitFactorial) Kind() Kind { return KindFactorial }

// CalculateCore returns n!.
func (s SplitFactorial) CalculateCore(ctx context.Context, report progress.ProgressCallback, n uint64) (*big.Int, error) {
	if n < 2 {
		return big.NewInt(1), nil
	}
	threshold := s.ParallelThreshold
	if threshold == 0 {
		threshold = SplitParallelThreshold
	}
	p := &splitter{threshold: threshold, total: n - 1}
	if report != nil {
		var mu sync.Mutex
		p.report = func(v float64) {
			mu.Lock()
			report(v)
			mu.Unlock()
		}
	}
	return p.product(ctx, 2, n)
}

type splitter struct {
	threshold uint64
	total     uint64
	done      atomic.Uint64
	report    progress.ProgressCallback
}

// product returns lo·(lo+1)·…·hi for lo <= hi.
func (s *splitter) product(ctx context.Context, lo, hi uint64) (*big.Int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if hi-lo < splitLeafSize {
		result := new(big.Int).SetUint64(lo)
		factor := new(big.Int)
		for i := lo + 1; i <= hi; i++ {
			result.Mul(result, factor.SetUint64(i))
		}
		done := s.done.Add(hi - lo + 1)
		progress.ReportStepProgress(s.report, done, s.total)
		return result, nil
	}

	mid := lo + (hi-lo)/2
	if hi-lo < s.threshold {
		left, err := s.product(ctx, lo, mid)
		if err != nil {
			return nil, err
		}
		right, err := s.product(ctx, mid+1, hi)
		if err != nil {
			return nil, err
		}
		return left.Mul(left, right), nil
	}

	var left, right *big.Int
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		left, err = s.product(gctx, lo, mid)
		return err
	})
	g.Go(func() error {
		var err error
		right, err = s.product(gctx, mid+1, hi)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return left.Mul(left, right), nil
}
