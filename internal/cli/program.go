package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/agbru/seqcalc/internal/program"
	"github.com/agbru/seqcalc/internal/ui"
)

// RunProgram runs the demonstration loop, printing its lines on out. With
// trace set, each visited index is reported afterwards.
//
// Parameters:
//   - ctx: Cancels the run between steps.
//   - runner: The configured runner; its Sink is replaced by out.
//   - trace: Whether to print the per-index trace.
//   - out: The destination writer.
//
// Returns:
//   - program.Result: The recorded run.
//   - error: The first evaluation, format or write error.
func RunProgram(ctx context.Context, runner program.Runner, trace bool, out io.Writer) (program.Result, error) {
	runner.Sink = program.WriterSink{W: out}
	res, err := runner.Run(ctx)
	if err != nil || !trace {
		return res, err
	}
	DisplayTrace(res, out)
	return res, nil
}

// DisplayTrace prints what the loop did at every visited index.
func DisplayTrace(res program.Result, out io.Writer) {
	fmt.Fprintf(out, "\n%s--- Trace ---%s\n", ui.ColorBold(), ui.ColorReset())
	for _, s := range res.Steps {
		color := ui.ColorCyan()
		switch s.Action {
		case program.ActionPrinted:
			color = ui.ColorGreen()
		case program.ActionBreak:
			color = ui.ColorRed()
		}
		line := fmt.Sprintf("i=%-3d %s%-7s%s", s.Index, color, s.Action, ui.ColorReset())
		if s.Action == program.ActionPrinted {
			line += " " + s.Text
		}
		fmt.Fprintln(out, line)
	}
	fmt.Fprintf(out, "%d printed, %d visited.\n", len(res.Printed()), len(res.Steps))
}
