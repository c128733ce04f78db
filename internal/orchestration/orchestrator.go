package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/seqcalc/internal/errors"
	"github.com/agbru/seqcalc/internal/progress"
	"github.com/agbru/seqcalc/internal/sequence"
)

// ProgressBufferMultiplier sizes the progress channel per calculator so a
// slow display rarely makes calculators drop updates.
const ProgressBufferMultiplier = 5

const tracerName = "github.com/agbru/seqcalc/internal/orchestration"

// ExecuteCalculations runs every calculator on n concurrently and collects
// one result per calculator, in input order.
//
// A calculator failure does not cancel the others: each result carries its
// own error so the comparison can report partial success.
//
// Parameters:
//   - ctx: The context for cancellation and deadlines.
//   - calculators: The calculators to execute.
//   - n: The index to compute.
//   - progressReporter: The progress display (NullProgressReporter for quiet mode).
//   - out: The writer for progress output.
//
// Returns:
//   - []CalculationResult: The results, aligned with calculators.
func ExecuteCalculations(ctx context.Context, calculators []sequence.Calculator, n uint64, progressReporter ProgressReporter, out io.Writer) []CalculationResult {
	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "ExecuteCalculations")
	span.SetAttributes(attribute.Int64("seqcalc.n", int64(n)), attribute.Int("seqcalc.calculators", len(calculators)))
	defer span.End()

	if progressReporter == nil {
		progressReporter = NullProgressReporter{}
	}

	var g errgroup.Group
	results := make([]CalculationResult, len(calculators))
	progressChan := make(chan progress.ProgressUpdate, len(calculators)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(calculators), out)

	for i, calc := range calculators {
		g.Go(func() error {
			calcCtx, calcSpan := tracer.Start(ctx, "Calculate")
			calcSpan.SetAttributes(
				attribute.String("seqcalc.algorithm", calc.Name()),
				attribute.String("seqcalc.kind", calc.Kind().String()),
			)
			defer calcSpan.End()

			start := time.Now()
			res, err := calc.Calculate(calcCtx, progressChan, i, n)
			results[i] = CalculationResult{
				Name: calc.Name(), Kind: calc.Kind(), Result: res, Duration: time.Since(start), Err: err,
			}
			if err != nil {
				calcSpan.RecordError(err)
				calcSpan.SetStatus(codes.Error, err.Error())
			}
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// AnalyzeComparisonResults sorts results by duration, checks that every
// successful calculator agrees and presents the summary.
//
// Parameters:
//   - results: The results to analyze. The slice is sorted in place.
//   - opts: The presentation options.
//   - presenter: The result presenter.
//   - errHandler: Maps the first error to an exit code when every run failed.
//   - out: The writer for the summary report.
//
// Returns:
//   - int: ExitSuccess, ExitErrorMismatch, or the code from errHandler.
func AnalyzeComparisonResults(results []CalculationResult, opts PresentationOptions, presenter ResultPresenter, errHandler ErrorHandler, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstValid *CalculationResult
	var firstError error
	for i := range results {
		if results[i].Err != nil {
			if firstError == nil {
				firstError = results[i].Err
			}
			continue
		}
		if firstValid == nil {
			firstValid = &results[i]
		}
	}

	presenter.PresentComparisonTable(results, out)

	if firstValid == nil {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No algorithm could complete the calculation.\n")
		if firstError == nil {
			return apperrors.ExitErrorGeneric
		}
		return errHandler.HandleError(firstError, 0, out)
	}

	for _, res := range results {
		if res.Err == nil && res.Result.Cmp(firstValid.Result) != 0 {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! %s and %s disagree on %s.\n",
				firstValid.Name, res.Name, opts.Kind.Symbol(opts.N))
			return apperrors.ExitErrorMismatch
		}
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	presenter.PresentResult(*firstValid, opts, out)
	return apperrors.ExitSuccess
}
