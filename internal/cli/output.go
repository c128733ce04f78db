// # Naming Conventions
//
// Functions in this package follow consistent naming patterns:
//
//   - Display* functions write formatted output to an [io.Writer].
//   - Format* functions return a string without performing I/O.
//   - Write* functions write to the filesystem.

package cli

import (
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/seqcalc/internal/format"
	"github.com/agbru/seqcalc/internal/orchestration"
	"github.com/agbru/seqcalc/internal/sequence"
	"github.com/agbru/seqcalc/internal/ui"
)

// OutputConfig holds the result output settings.
type OutputConfig struct {
	// OutputFile is the path to save the result to; empty disables it.
	OutputFile string
	Quiet      bool
	Verbose    bool
	ShowValue  bool
}

// WriteResultToFile writes a result with a commented header.
//
// Parameters:
//   - result: The computed value.
//   - opts: The kind and index of the value.
//   - duration: The calculation duration.
//   - algo: The algorithm name.
//   - config: The output settings. Nothing is written without OutputFile.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultToFile(result *big.Int, opts orchestration.PresentationOptions, duration time.Duration, algo string, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	if dir := filepath.Dir(config.OutputFile); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	digits := result.String()
	fmt.Fprintf(file, "# %s result\n", kindTitle(opts.Kind))
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Algorithm: %s\n", algo)
	fmt.Fprintf(file, "# Duration: %s\n", duration)
	fmt.Fprintf(file, "# N: %d\n", opts.N)
	fmt.Fprintf(file, "# Bits: %d\n", result.BitLen())
	fmt.Fprintf(file, "# Digits: %d\n\n", len(digits))
	if _, err := fmt.Fprintf(file, "%s =\n%s\n", opts.Kind.Symbol(opts.N), digits); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return file.Close()
}

func kindTitle(k sequence.Kind) string {
	if k == sequence.KindFactorial {
		return "Factorial"
	}
	return "Fibonacci"
}

// FormatQuietResult returns the bare decimal value, for scripting.
func FormatQuietResult(result *big.Int) string {
	return result.String()
}

// DisplayQuietResult prints the bare decimal value.
func DisplayQuietResult(out io.Writer, result *big.Int) {
	fmt.Fprintln(out, FormatQuietResult(result))
}

// FormatValue renders "F(n) = v" or "n! = v", truncating long values unless
// verbose is set.
func FormatValue(result *big.Int, opts orchestration.PresentationOptions) string {
	digits := result.String()
	symbol := opts.Kind.Symbol(opts.N)
	if !opts.Verbose && len(digits) > TruncationLimit {
		return fmt.Sprintf("%s = %s (truncated)", symbol, format.Truncate(digits, TruncationLimit, DisplayEdges))
	}
	return fmt.Sprintf("%s = %s", symbol, format.FormatNumberString(digits))
}

// DisplayResult prints a result according to opts.
//
// Parameters:
//   - result: The computed value.
//   - opts: What to show and for which index.
//   - duration: The calculation duration.
//   - out: The destination writer.
func DisplayResult(result *big.Int, opts orchestration.PresentationOptions, duration time.Duration, out io.Writer) {
	digits := len(result.String())

	if opts.Details {
		fmt.Fprintf(out, "\n%s--- Detailed result analysis ---%s\n", ui.ColorBold(), ui.ColorReset())
		fmt.Fprintf(out, "Calculation time:   %s%s%s\n", ui.ColorGreen(), format.FormatExecutionDuration(duration), ui.ColorReset())
		fmt.Fprintf(out, "Result binary size: %s%s%s bits\n", ui.ColorCyan(), format.FormatNumberString(fmt.Sprint(result.BitLen())), ui.ColorReset())
		fmt.Fprintf(out, "Number of digits:   %s%s%s\n", ui.ColorCyan(), format.FormatNumberString(fmt.Sprint(digits)), ui.ColorReset())
		fmt.Fprintf(out, "Fits a 32-bit int:  %s\n", yesNo(sequence.FitsInt32(result)))
	}

	if !opts.ShowValue {
		if !opts.Details {
			fmt.Fprintf(out, "%s computed: %d digits. Use -c to display the value.\n", opts.Kind.Symbol(opts.N), digits)
		}
		return
	}

	fmt.Fprintf(out, "\n%s--- Calculated value ---%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(out, "%s%s%s\n", ui.ColorGreen(), FormatValue(result, opts), ui.ColorReset())
	if !opts.Verbose && digits > TruncationLimit {
		fmt.Fprintf(out, "%sTip: use -v to display the full value.%s\n", ui.ColorYellow(), ui.ColorReset())
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// DisplayResultWithConfig prints a result in quiet or standard form and
// writes it to the configured file.
//
// Returns:
//   - error: An error if file output fails.
func DisplayResultWithConfig(out io.Writer, res orchestration.CalculationResult, opts orchestration.PresentationOptions, config OutputConfig) error {
	if config.Quiet {
		DisplayQuietResult(out, res.Result)
	} else {
		opts.Verbose, opts.ShowValue = config.Verbose, config.ShowValue
		DisplayResult(res.Result, opts, res.Duration, out)
	}

	if config.OutputFile == "" {
		return nil
	}
	if err := WriteResultToFile(res.Result, opts, res.Duration, res.Name, config); err != nil {
		return err
	}
	if !config.Quiet {
		fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n", ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
	}
	return nil
}
