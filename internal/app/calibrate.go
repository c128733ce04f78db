package app

import (
	"context"
	"io"

	"github.com/agbru/seqcalc/internal/calibration"
	"github.com/agbru/seqcalc/internal/cli"
	"github.com/agbru/seqcalc/internal/logging"
	"github.com/agbru/seqcalc/internal/sequence"
)

const splitAlgo = "fac-split"

// Threshold sources, highest priority first.
const (
	thresholdFromConfig   = "config"
	thresholdFromProfile  = "profile"
	thresholdFromEstimate = "estimate"
)

// resolveSplitThreshold returns the parallel threshold of fac-split and
// where it came from: the flag, environment or file setting, then a valid
// calibration profile, then a hardware estimate.
func (a *Application) resolveSplitThreshold() (uint64, string) {
	if a.Config.SplitThreshold > 0 {
		return a.Config.SplitThreshold, thresholdFromConfig
	}
	if cached, ok := calibration.LoadCachedSplitThreshold(a.Config.CalibrationProfile); ok {
		return cached, thresholdFromProfile
	}
	return calibration.EstimateOptimalSplitThreshold(), thresholdFromEstimate
}

// applySplitThreshold re-registers fac-split with threshold. Factories
// without fac-split are left untouched.
func (a *Application) applySplitThreshold(threshold uint64, source string) {
	if _, err := a.Factory.Get(splitAlgo); err != nil {
		return
	}
	a.Factory.Register(splitAlgo, sequence.NewCalculator(sequence.SplitFactorial{ParallelThreshold: threshold}))
	a.Logger.Debug("split threshold configured",
		logging.Uint64("threshold", threshold),
		logging.String("source", source),
	)
}

// runAutoCalibrationIfEnabled runs a quick calibration when it is enabled
// and no better source than the hardware estimate exists.
func (a *Application) runAutoCalibrationIfEnabled(ctx context.Context, out io.Writer) {
	if !a.Config.AutoCalibrate {
		return
	}
	if _, source := a.resolveSplitThreshold(); source != thresholdFromEstimate {
		return
	}
	if a.Config.Quiet {
		out = io.Discard
	}
	if threshold, ok := calibration.AutoCalibrate(ctx, out, a.Config.CalibrationProfile); ok {
		a.applySplitThreshold(threshold, "auto-calibration")
	}
}

// runCalibration measures fac-split thresholds and saves the fastest.
func (a *Application) runCalibration(ctx context.Context, out io.Writer) int {
	ctx, cancel := a.lifecycle(ctx)
	defer cancel()

	var reporter cli.CLIProgressReporter
	return calibration.RunCalibration(ctx, out, a.Config.N, a.Config.CalibrationProfile, reporter)
}
