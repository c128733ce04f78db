package app

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/agbru/seqcalc/internal/cli"
	apperrors "github.com/agbru/seqcalc/internal/errors"
	"github.com/agbru/seqcalc/internal/logging"
	"github.com/agbru/seqcalc/internal/metrics"
	"github.com/agbru/seqcalc/internal/orchestration"
	"github.com/agbru/seqcalc/internal/sequence"
	"github.com/agbru/seqcalc/internal/ui"
)

// lifecycle applies the configured timeout and stops on SIGINT or SIGTERM.
func (a *Application) lifecycle(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	return ctx, func() {
		stopSignals()
		cancelTimeout()
	}
}

// runCalculate orchestrates the execution of the CLI calculation command.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	ctx, cancel := a.lifecycle(ctx)
	defer cancel()

	calculatorsToRun := orchestration.GetCalculatorsToRun(a.Config.Algo, a.Config.Kind, a.Factory)
	a.Logger.Debug("starting calculation",
		logging.String("kind", string(a.Config.Kind)),
		logging.Uint64("n", a.Config.N),
		logging.Int("calculators", len(calculatorsToRun)),
	)

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(calculatorsToRun, out)
	}

	var progressReporter orchestration.ProgressReporter
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		progressReporter = orchestration.NullProgressReporter{}
	} else {
		progressReporter = cli.CLIProgressReporter{}
	}

	before := metrics.NewMemoryCollector().Snapshot()
	results := orchestration.ExecuteCalculations(ctx, calculatorsToRun, a.Config.N, progressReporter, progressOut)

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		ShowValue:  a.Config.ShowValue,
	}
	return a.analyzeResultsWithOutput(results, outputCfg, &before, out)
}

func (a *Application) presentationOptions() orchestration.PresentationOptions {
	return orchestration.PresentationOptions{
		N:         a.Config.N,
		Kind:      a.Config.Kind,
		Verbose:   a.Config.Verbose,
		Details:   a.Config.Details,
		ShowValue: a.Config.ShowValue,
	}
}

func (a *Application) analyzeResultsWithOutput(results []orchestration.CalculationResult, outputCfg cli.OutputConfig, before *metrics.MemorySnapshot, out io.Writer) int {
	presOpts := a.presentationOptions()
	bestResult := findBestResult(results)

	if outputCfg.Quiet {
		if bestResult == nil {
			return a.reportFailure(results)
		}
		if err := cli.DisplayResultWithConfig(out, *bestResult, presOpts, outputCfg); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
		return apperrors.ExitSuccess
	}

	presenter := cli.CLIResultPresenter{Memory: before}
	exitCode := orchestration.AnalyzeComparisonResults(results, presOpts, presenter, presenter, out)

	if bestResult != nil && exitCode == apperrors.ExitSuccess && outputCfg.OutputFile != "" {
		if err := cli.WriteResultToFile(bestResult.Result, presOpts, bestResult.Duration, bestResult.Name, outputCfg); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
		fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
			ui.ColorGreen(), ui.ColorCyan(), outputCfg.OutputFile, ui.ColorReset())
	}
	return exitCode
}

// reportFailure maps the first error of an all-failed run to its exit code.
func (a *Application) reportFailure(results []orchestration.CalculationResult) int {
	for _, r := range results {
		if r.Err != nil {
			return apperrors.HandleCalculationError(r.Err, r.Duration, a.ErrWriter, cli.CLIColorProvider{})
		}
	}
	return apperrors.ExitErrorGeneric
}

func findBestResult(results []orchestration.CalculationResult) *orchestration.CalculationResult {
	var bestResult *orchestration.CalculationResult
	for i := range results {
		if results[i].Err == nil {
			if bestResult == nil || results[i].Duration < bestResult.Duration {
				bestResult = &results[i]
			}
		}
	}
	return bestResult
}

// runLastDigits computes only the last K decimal digits of F(N) using modular
// arithmetic, requiring O(K) memory regardless of N.
func (a *Application) runLastDigits(ctx context.Context, out io.Writer) int {
	ctx, cancel := a.lifecycle(ctx)
	defer cancel()

	k := a.Config.LastDigits
	n := a.Config.N
	mod := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(k)), nil)

	if !a.Config.Quiet {
		fmt.Fprintf(out, "Computing last %d digits of F(%d)...\n", k, n)
	}

	start := time.Now()
	result, err := sequence.FastDoublingModContext(ctx, n, mod)
	elapsed := time.Since(start)
	if err != nil {
		return apperrors.HandleCalculationError(err, elapsed, a.ErrWriter, cli.CLIColorProvider{})
	}

	digits := result.String()
	if pad := k - len(digits); pad > 0 {
		digits = strings.Repeat("0", pad) + digits
	}
	if a.Config.Quiet {
		fmt.Fprintln(out, digits)
	} else {
		fmt.Fprintf(out, "Last %d digits of F(%d): %s\n", k, n, digits)
		fmt.Fprintf(out, "Computed in %s\n", elapsed.Round(time.Millisecond))
	}
	return apperrors.ExitSuccess
}
