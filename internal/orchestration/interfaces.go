package orchestration

import (
	"io"
	"math/big"
	"sync"
	"time"

	"github.com/agbru/seqcalc/internal/progress"
	"github.com/agbru/seqcalc/internal/sequence"
)

// CalculationResult is the outcome of one calculator run. It is the type
// shared between orchestration and presentation.
type CalculationResult struct {
	// Name is the display name of the algorithm.
	Name string
	// Kind is the sequence the algorithm computes.
	Kind sequence.Kind
	// Result is nil if an error occurred.
	Result *big.Int
	// Duration is the wall time of the run.
	Duration time.Duration
	// Err is the error returned by the calculator, if any.
	Err error
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	N         uint64
	Kind      sequence.Kind
	Verbose   bool
	Details   bool
	ShowValue bool
}

// ProgressReporter displays calculation progress. It decouples the
// orchestration layer from spinners and progress bars.
type ProgressReporter interface {
	// DisplayProgress consumes progressChan until it is closed and then
	// calls wg.Done.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCalculators int, out io.Writer)
}

// ProgressReporterFunc adapts a function to ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCalculators int, out io.Writer)

// DisplayProgress calls f.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCalculators int, out io.Writer) {
	f(wg, progressChan, numCalculators, out)
}

// NullProgressReporter drains the progress channel without displaying
// anything. Used for quiet mode, the server and tests.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter presents calculation results.
type ResultPresenter interface {
	// PresentComparisonTable displays the comparison summary table.
	PresentComparisonTable(results []CalculationResult, out io.Writer)

	// PresentResult displays the final calculation result.
	PresentResult(result CalculationResult, opts PresentationOptions, out io.Writer)
}

// DurationFormatter formats durations for display.
type DurationFormatter interface {
	FormatDuration(d time.Duration) string
}

// ErrorHandler handles calculation errors and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
