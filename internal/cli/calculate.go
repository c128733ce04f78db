package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/seqcalc/internal/config"
	"github.com/agbru/seqcalc/internal/sequence"
	"github.com/agbru/seqcalc/internal/ui"
)

// PrintExecutionConfig describes what is about to be computed.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Calculating %s%s%s with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), cfg.Kind.Symbol(cfg.N), ui.ColorReset(), ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
}

// PrintExecutionMode states whether one algorithm runs or several are
// compared.
func PrintExecutionMode(calculators []sequence.Calculator, out io.Writer) {
	var modeDesc string
	switch len(calculators) {
	case 0:
		modeDesc = "No algorithm selected"
	case 1:
		modeDesc = fmt.Sprintf("Single calculation with the %s%s%s algorithm",
			ui.ColorGreen(), calculators[0].Name(), ui.ColorReset())
	default:
		modeDesc = fmt.Sprintf("Parallel comparison of %d algorithms", len(calculators))
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
