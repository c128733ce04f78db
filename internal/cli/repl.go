// Package cli implements the terminal surfaces of seqcalc: progress display,
// result output, shell completion, the demonstration program runner and the
// interactive REPL.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/agbru/seqcalc/internal/format"
	"github.com/agbru/seqcalc/internal/orchestration"
	"github.com/agbru/seqcalc/internal/program"
	"github.com/agbru/seqcalc/internal/progress"
	"github.com/agbru/seqcalc/internal/sequence"
	"github.com/agbru/seqcalc/internal/ui"
)

// REPLConfig holds the settings of a REPL session.
type REPLConfig struct {
	// DefaultAlgo is the algorithm selected at start.
	DefaultAlgo string
	// Timeout bounds each calculation.
	Timeout time.Duration
	// HexOutput displays results in hexadecimal.
	HexOutput bool
	// Plan is the loop executed by the run command.
	Plan program.Plan
}

// REPL is an interactive calculator session.
type REPL struct {
	config      REPLConfig
	factory     sequence.CalculatorFactory
	currentAlgo string
	in          io.Reader
	out         io.Writer
}

// NewREPL creates a session over the calculators of factory.
func NewREPL(factory sequence.CalculatorFactory, config REPLConfig) *REPL {
	current := strings.ToLower(config.DefaultAlgo)
	if _, err := factory.Get(current); err != nil {
		current = sequence.DefaultAlgorithm(sequence.KindFibonacci)
	}
	if config.Timeout <= 0 {
		config.Timeout = time.Minute
	}
	if config.Plan == (program.Plan{}) {
		config.Plan = program.DefaultPlan()
	}
	return &REPL{
		config:      config,
		factory:     factory,
		currentAlgo: current,
		in:          os.Stdin,
		out:         os.Stdout,
	}
}

// SetInput replaces the input reader.
func (r *REPL) SetInput(in io.Reader) { r.in = in }

// SetOutput replaces the output writer.
func (r *REPL) SetOutput(out io.Writer) { r.out = out }

// Start reads and executes commands until exit, EOF or ctx is done.
func (r *REPL) Start(ctx context.Context) {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprint(r.out, ui.ColorGreen()+"seq> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && input != "") {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return
		}

		input = strings.TrimSpace(input)
		if input != "" && !r.processCommand(ctx, input) {
			return
		}
		if err != nil {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s   %sseqcalc - Fibonacci & factorial REPL%s     %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

func (r *REPL) printHelp() {
	cmds := []struct{ name, help string }{
		{"fib <n>", "Compute F(n)"},
		{"fac <n>", "Compute n!"},
		{"<n>", "Compute with the current algorithm"},
		{"algo <name>", "Change algorithm (" + strings.Join(r.factory.List(), ", ") + ")"},
		{"compare <n>", "Run every algorithm of the current kind on n"},
		{"run [limit]", "Run the demonstration program"},
		{"list", "List algorithms"},
		{"hex", "Toggle hexadecimal display"},
		{"status", "Show the session settings"},
		{"help", "Show this help"},
		{"exit / quit", "Leave the REPL"},
	}
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, c := range cmds {
		fmt.Fprintf(r.out, "  %s%-12s%s - %s\n", ui.ColorYellow(), c.name, ui.ColorReset(), c.help)
	}
}

// processCommand executes one command line. It returns false to end the
// session.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}
	cmd, args := strings.ToLower(parts[0]), parts[1:]

	switch cmd {
	case "fib", "f":
		r.cmdKind(ctx, sequence.KindFibonacci, args)
	case "fac", "!":
		r.cmdKind(ctx, sequence.KindFactorial, args)
	case "algo", "a":
		r.cmdAlgo(args)
	case "compare", "cmp":
		r.cmdCompare(ctx, args)
	case "run":
		r.cmdRun(ctx, args)
	case "list", "ls":
		r.cmdList()
	case "hex":
		r.cmdHex()
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		if n, err := strconv.ParseUint(cmd, 10, 64); err == nil {
			r.calculate(ctx, r.currentAlgo, n)
			return true
		}
		fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
	}
	return true
}

func (r *REPL) parseIndex(usage string, args []string) (uint64, bool) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: %s%s\n", ui.ColorRed(), usage, ui.ColorReset())
		return 0, false
	}
	n, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(r.out, "%sInvalid index: %s (expected a non-negative integer)%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		return 0, false
	}
	return n, true
}

// cmdKind computes with the current algorithm when it matches kind, and
// with the kind's reference algorithm otherwise.
func (r *REPL) cmdKind(ctx context.Context, kind sequence.Kind, args []string) {
	n, ok := r.parseIndex(string(kind)+" <n>", args)
	if !ok {
		return
	}
	algo := sequence.DefaultAlgorithm(kind)
	if calc, err := r.factory.Get(r.currentAlgo); err == nil && calc.Kind() == kind {
		algo = r.currentAlgo
	}
	r.calculate(ctx, algo, n)
}

func (r *REPL) calculate(ctx context.Context, algo string, n uint64) {
	calc, err := r.factory.Get(algo)
	if err != nil {
		fmt.Fprintf(r.out, "%s%v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}

	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	symbol := calc.Kind().Symbol(n)
	fmt.Fprintf(r.out, "Calculating %s%s%s with %s%s%s...\n",
		ui.ColorMagenta(), symbol, ui.ColorReset(), ui.ColorCyan(), calc.Name(), ui.ColorReset())

	progressChan := make(chan progress.ProgressUpdate, orchestration.ProgressBufferMultiplier)
	var wg sync.WaitGroup
	wg.Add(1)
	go DisplayProgress(&wg, progressChan, 1, r.out)

	start := time.Now()
	result, err := calc.Calculate(ctx, progressChan, 0, n)
	duration := time.Since(start)
	close(progressChan)
	wg.Wait()

	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}

	digits := result.String()
	fmt.Fprintf(r.out, "\n%sResult:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Time:   %s%s%s\n", ui.ColorGreen(), format.FormatExecutionDuration(duration), ui.ColorReset())
	fmt.Fprintf(r.out, "  Bits:   %s%d%s\n", ui.ColorCyan(), result.BitLen(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Digits: %s%d%s\n", ui.ColorCyan(), len(digits), ui.ColorReset())
	switch {
	case r.config.HexOutput:
		fmt.Fprintf(r.out, "  %s = %s0x%s%s\n", symbol, ui.ColorGreen(), result.Text(16), ui.ColorReset())
	case len(digits) > TruncationLimit:
		fmt.Fprintf(r.out, "  %s = %s%s%s (truncated)\n", symbol, ui.ColorGreen(), format.Truncate(digits, TruncationLimit, DisplayEdges), ui.ColorReset())
	default:
		fmt.Fprintf(r.out, "  %s = %s%s%s\n", symbol, ui.ColorGreen(), digits, ui.ColorReset())
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdAlgo(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: algo <name>%s\n", ui.ColorRed(), ui.ColorReset())
		fmt.Fprintf(r.out, "Available algorithms: %s\n", strings.Join(r.factory.List(), ", "))
		return
	}
	name := strings.ToLower(args[0])
	calc, err := r.factory.Get(name)
	if err != nil {
		fmt.Fprintf(r.out, "%sUnknown algorithm: %s%s\n", ui.ColorRed(), name, ui.ColorReset())
		fmt.Fprintf(r.out, "Available algorithms: %s\n", strings.Join(r.factory.List(), ", "))
		return
	}
	r.currentAlgo = name
	fmt.Fprintf(r.out, "Algorithm changed to: %s%s%s\n", ui.ColorGreen(), calc.Name(), ui.ColorReset())
}

func (r *REPL) currentKind() sequence.Kind {
	if calc, err := r.factory.Get(r.currentAlgo); err == nil {
		return calc.Kind()
	}
	return sequence.KindFibonacci
}

func (r *REPL) cmdCompare(ctx context.Context, args []string) {
	n, ok := r.parseIndex("compare <n>", args)
	if !ok {
		return
	}
	kind := r.currentKind()
	calcs := orchestration.GetCalculatorsToRun("all", kind, r.factory)

	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()
	results := orchestration.ExecuteCalculations(ctx, calcs, n, orchestration.NullProgressReporter{}, io.Discard)

	fmt.Fprintf(r.out, "\n%sComparison for %s:%s\n", ui.ColorBold(), kind.Symbol(n), ui.ColorReset())
	fmt.Fprintf(r.out, "%s─────────────────────────────────────────────%s\n", ui.ColorCyan(), ui.ColorReset())

	var reference string
	for _, res := range results {
		name := res.Name
		if res.Err != nil {
			fmt.Fprintf(r.out, "  %s%-12s%s: %sError - %v%s\n",
				ui.ColorYellow(), name, ui.ColorReset(), ui.ColorRed(), res.Err, ui.ColorReset())
			continue
		}
		digits := res.Result.String()
		if reference == "" {
			reference = digits
		}
		status := ui.ColorGreen() + "✓" + ui.ColorReset()
		if digits != reference {
			status = ui.ColorRed() + "✗ INCONSISTENT" + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "  %s%-12s%s: %s%12s%s %s\n",
			ui.ColorYellow(), name, ui.ColorReset(),
			ui.ColorCyan(), format.FormatExecutionDuration(res.Duration), ui.ColorReset(), status)
	}
	fmt.Fprintf(r.out, "%s─────────────────────────────────────────────%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

func (r *REPL) cmdRun(ctx context.Context, args []string) {
	plan := r.config.Plan
	if len(args) > 0 {
		limit, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(r.out, "%sInvalid limit: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
			return
		}
		plan.Limit = limit
	}
	if _, err := RunProgram(ctx, program.Runner{Plan: plan}, false, r.out); err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
	}
}

func (r *REPL) cmdList() {
	fmt.Fprintf(r.out, "\n%sAvailable algorithms:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, name := range r.factory.List() {
		calc, err := r.factory.Get(name)
		if err != nil {
			continue
		}
		marker := "  "
		if name == r.currentAlgo {
			marker = ui.ColorGreen() + "► " + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "%s%s%-10s%s - %s\n", marker, ui.ColorYellow(), name, ui.ColorReset(), calc.Name())
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdHex() {
	r.config.HexOutput = !r.config.HexOutput
	fmt.Fprintf(r.out, "Hexadecimal display: %s%s%s\n", ui.ColorGreen(), onOff(r.config.HexOutput), ui.ColorReset())
}

func onOff(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}

func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Algorithm:   %s%s%s (%s)\n", ui.ColorCyan(), r.currentAlgo, ui.ColorReset(), r.currentKind())
	fmt.Fprintf(r.out, "  Timeout:     %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	fmt.Fprintf(r.out, "  Hexadecimal: %s%s%s\n", ui.ColorCyan(), yesNo(r.config.HexOutput), ui.ColorReset())
	fmt.Fprintf(r.out, "  Program:     limit=%d break_at=%d\n", r.config.Plan.Limit, r.config.Plan.BreakAt)
	fmt.Fprintln(r.out)
}
