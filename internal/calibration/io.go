package calibration

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/agbru/seqcalc/internal/format"
	"github.com/agbru/seqcalc/internal/ui"
)

func thresholdLabel(t uint64) string {
	if t == Sequential {
		return "Sequential"
	}
	return fmt.Sprintf("%d", t)
}

// printCalibrationResults formats and prints the calibration results table.
func printCalibrationResults(out io.Writer, results []Result, bestThreshold uint64) {
	fmt.Fprintf(out, "\n--- Calibration Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "  %sThreshold%s\t%sExecution Time%s\n", ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())
	fmt.Fprintf(tw, "  %s\t%s\n", strings.Repeat("─", 10), strings.Repeat("─", 16))
	for _, res := range results {
		durationStr := fmt.Sprintf("%sN/A%s", ui.ColorRed(), ui.ColorReset())
		if res.Err == nil {
			durationStr = format.FormatExecutionDuration(res.Duration)
		}
		highlight := ""
		if res.Err == nil && res.Threshold == bestThreshold {
			highlight = fmt.Sprintf("  %s(Optimal)%s", ui.ColorGreen(), ui.ColorReset())
		}
		fmt.Fprintf(tw, "  %s%s%s\t%s%s%s%s\n",
			ui.ColorCyan(), thresholdLabel(res.Threshold), ui.ColorReset(),
			ui.ColorYellow(), durationStr, ui.ColorReset(), highlight)
	}
	tw.Flush()
	fmt.Fprintf(out, "%sRecommended split threshold: %s%s%s\n",
		ui.ColorGreen(), ui.ColorYellow(), thresholdLabel(bestThreshold), ui.ColorReset())
}
