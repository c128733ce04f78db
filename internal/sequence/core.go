package sequence

import (
	"context"
	"math/big"

	apperrors "github.com/agbru/seqcalc/internal/errors"
	"github.com/agbru/seqcalc/internal/progress"
)

// coreCalculator is implemented by each algorithm. It receives a plain
// progress callback and knows nothing about channels.
type coreCalculator interface {
	CalculateCore(ctx context.Context, report progress.ProgressCallback, n uint64) (*big.Int, error)
	Name() string
	Kind() Kind
}

// SeqCalculator adapts a coreCalculator to the Calculator interface.
type SeqCalculator struct {
	core coreCalculator
}

// NewCalculator wraps an algorithm into a Calculator.
func NewCalculator(core coreCalculator) Calculator {
	return &SeqCalculator{core: core}
}

// Name returns the display name of the wrapped algorithm.
func (c *SeqCalculator) Name() string { return c.core.Name() }

// Kind returns the sequence produced by the wrapped algorithm.
func (c *SeqCalculator) Kind() Kind { return c.core.Kind() }

// Calculate runs the algorithm and reports completion on success.
// Context errors are returned unwrapped so callers can match them with
// errors.Is; any other failure is wrapped in a CalculationError.
func (c *SeqCalculator) Calculate(ctx context.Context, progressChan chan<- progress.ProgressUpdate, calcIndex int, n uint64) (*big.Int, error) {
	report := progress.ChannelCallback(progressChan, calcIndex)
	result, err := c.core.CalculateCore(ctx, report, n)
	if err != nil {
		if apperrors.IsContextError(err) {
			return nil, err
		}
		return nil, apperrors.CalculationError{Cause: err}
	}
	report(1.0)
	return result, nil
}

// canceled reports the context error, if any, every checkInterval steps.
func canceled(ctx context.Context, step uint64) error {
	if step%checkInterval != 0 {
		return nil
	}
	return ctx.Err()
}
