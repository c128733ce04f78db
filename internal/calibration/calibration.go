package calibration

import (
	"context"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	apperrors "github.com/agbru/seqcalc/internal/errors"
	"github.com/agbru/seqcalc/internal/orchestration"
	"github.com/agbru/seqcalc/internal/progress"
	"github.com/agbru/seqcalc/internal/sequence"
)

// DefaultCalibrationN is the factorial measured when the requested index is
// too small to tell thresholds apart.
const DefaultCalibrationN uint64 = 50_000

// Result is the timing of one threshold candidate.
type Result struct {
	Threshold uint64
	Duration  time.Duration
	Err       error
}

// effectiveThreshold maps Sequential to a width no range ever reaches.
func effectiveThreshold(t uint64) uint64 {
	if t == Sequential {
		return math.MaxUint64
	}
	return t
}

// calculatorFor returns the splitting factorial configured with threshold.
func calculatorFor(threshold uint64) sequence.Calculator {
	return sequence.NewCalculator(sequence.SplitFactorial{ParallelThreshold: effectiveThreshold(threshold)})
}

// Measure times n! once per threshold, in order. Progress in [0,1] is sent
// on progressChan after each candidate when the channel is non-nil.
func Measure(ctx context.Context, n uint64, thresholds []uint64, progressChan chan<- progress.ProgressUpdate) []Result {
	report := progress.ChannelCallback(progressChan, 0)
	results := make([]Result, 0, len(thresholds))
	for i, th := range thresholds {
		start := time.Now()
		_, err := calculatorFor(th).Calculate(ctx, nil, 0, n)
		results = append(results, Result{Threshold: th, Duration: time.Since(start), Err: err})
		report(float64(i+1) / float64(len(thresholds)))
		if apperrors.IsContextError(err) {
			break
		}
	}
	return results
}

// Best returns the fastest successful result.
func Best(results []Result) (Result, bool) {
	var best Result
	found := false
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		if !found || r.Duration < best.Duration {
			best, found = r, true
		}
	}
	return best, found
}

// RunCalibration measures every candidate threshold, prints the summary
// and saves the winner to profilePath (the default location when empty).
//
// Parameters:
//   - ctx: Bounds the whole calibration.
//   - out: The writer for the report.
//   - n: The factorial index to measure; small values use DefaultCalibrationN.
//   - profilePath: Where the profile is saved.
//   - reporter: Displays progress; nil disables it.
//
// Returns:
//   - int: The exit code.
func RunCalibration(ctx context.Context, out io.Writer, n uint64, profilePath string, reporter orchestration.ProgressReporter) int {
	if n < DefaultCalibrationN {
		n = DefaultCalibrationN
	}
	if profilePath == "" {
		profilePath = GetDefaultProfilePath()
	}
	if reporter == nil {
		reporter = orchestration.NullProgressReporter{}
	}
	thresholds := GenerateSplitThresholds()

	fmt.Fprintf(out, "--- Calibration ---\n")
	fmt.Fprintf(out, "Measuring %d! with %d thresholds.\n", n, len(thresholds))

	progressChan := make(chan progress.ProgressUpdate, len(thresholds)*orchestration.ProgressBufferMultiplier)
	var wg sync.WaitGroup
	wg.Add(1)
	go reporter.DisplayProgress(&wg, progressChan, 1, out)

	start := time.Now()
	results := Measure(ctx, n, thresholds, progressChan)
	close(progressChan)
	wg.Wait()
	elapsed := time.Since(start)

	best, ok := Best(results)
	if !ok {
		for _, r := range results {
			if r.Err != nil {
				return apperrors.HandleCalculationError(r.Err, elapsed, out, nil)
			}
		}
		return apperrors.ExitErrorGeneric
	}
	printCalibrationResults(out, results, best.Threshold)

	profile := NewProfile()
	profile.OptimalSplitThreshold = effectiveThreshold(best.Threshold)
	profile.CalibrationN = n
	profile.CalibrationTime = elapsed.Round(time.Millisecond).String()
	if err := profile.SaveProfile(profilePath); err != nil {
		fmt.Fprintf(out, "Warning: could not save calibration profile: %v\n", err)
		return apperrors.ExitSuccess
	}
	fmt.Fprintf(out, "Profile saved to %s\n", profilePath)
	return apperrors.ExitSuccess
}

// AutoCalibrate measures the quick threshold set with a smaller factorial
// and saves the winner to profilePath. It prints a one-line summary on out.
//
// Returns:
//   - uint64: The selected threshold, usable as SplitFactorial.ParallelThreshold.
//   - bool: false if every measurement failed.
func AutoCalibrate(ctx context.Context, out io.Writer, profilePath string) (uint64, bool) {
	if profilePath == "" {
		profilePath = GetDefaultProfilePath()
	}
	n := DefaultCalibrationN / 2
	start := time.Now()
	best, ok := Best(Measure(ctx, n, GenerateQuickSplitThresholds(), nil))
	if !ok {
		return 0, false
	}
	threshold := effectiveThreshold(best.Threshold)

	profile := NewProfile()
	profile.OptimalSplitThreshold = threshold
	profile.CalibrationN = n
	profile.CalibrationTime = time.Since(start).Round(time.Millisecond).String()
	saved := profile.SaveProfile(profilePath) == nil

	fmt.Fprintf(out, "Auto-calibration: split threshold %s (%s)", thresholdLabel(best.Threshold), profile.CalibrationTime)
	if !saved {
		fmt.Fprint(out, ", profile not saved")
	}
	fmt.Fprintln(out)
	return threshold, true
}
