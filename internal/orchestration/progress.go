package orchestration

import (
	"fmt"
	"time"

	"github.com/agbru/seqcalc/internal/format"
	"github.com/agbru/seqcalc/internal/progress"
)

// ProgressAggregator folds the updates of the calculators racing on the same
// n into one average and one ETA. The CLI spinner reads it between ticks.
type ProgressAggregator struct {
	eta  *format.ProgressWithETA
	done []bool
}

// NewProgressAggregator returns nil when there is nothing to track.
func NewProgressAggregator(numCalculators int) *ProgressAggregator {
	if numCalculators <= 0 {
		return nil
	}
	return &ProgressAggregator{
		eta:  format.NewProgressWithETA(numCalculators),
		done: make([]bool, numCalculators),
	}
}

// Update records one calculator's progress and returns the new average and
// estimate. Updates for unknown indices leave the state unchanged.
func (a *ProgressAggregator) Update(u progress.ProgressUpdate) (float64, time.Duration) {
	if u.CalculatorIndex >= 0 && u.CalculatorIndex < len(a.done) && u.Value >= 1 {
		a.done[u.CalculatorIndex] = true
	}
	return a.eta.UpdateWithETA(u.CalculatorIndex, u.Value)
}

// CalculateAverage returns the current average without updating.
func (a *ProgressAggregator) CalculateAverage() float64 { return a.eta.CalculateAverage() }

// GetETA returns the current estimate without updating.
func (a *ProgressAggregator) GetETA() time.Duration { return a.eta.GetETA() }

// NumCalculators returns the number of calculators being tracked.
func (a *ProgressAggregator) NumCalculators() int { return len(a.done) }

// IsMultiCalculator reports whether algorithms are being compared.
func (a *ProgressAggregator) IsMultiCalculator() bool { return len(a.done) > 1 }

// Finished counts calculators that reported full progress.
func (a *ProgressAggregator) Finished() int {
	n := 0
	for _, d := range a.done {
		if d {
			n++
		}
	}
	return n
}

// Label names the work for the spinner: "Computing" for one algorithm,
// "Computing (2 algorithms)" for a comparison, and the finished count once
// the first one is done.
func (a *ProgressAggregator) Label() string {
	if !a.IsMultiCalculator() {
		return "Computing"
	}
	if f := a.Finished(); f > 0 {
		return fmt.Sprintf("Computing (%d algorithms, %d done)", a.NumCalculators(), f)
	}
	return fmt.Sprintf("Computing (%d algorithms)", a.NumCalculators())
}

// DrainChannel discards updates until the channel is closed.
func DrainChannel(progressChan <-chan progress.ProgressUpdate) {
	for range progressChan {
	}
}
