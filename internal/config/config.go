// Package config parses the command line, the SEQCALC_* environment and an
// optional YAML file into an AppConfig.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/seqcalc/internal/errors"
	"github.com/agbru/seqcalc/internal/program"
	"github.com/agbru/seqcalc/internal/sequence"
)

const (
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "SEQCALC_"
	// DefaultTimeout bounds a single calculation.
	DefaultTimeout = 5 * time.Minute
	// DefaultAddr is the listen address of --serve.
	DefaultAddr = ":8080"
	// DefaultN is the index computed when -n is not given.
	DefaultN uint64 = 10
)

// AppConfig is the resolved configuration of one invocation.
type AppConfig struct {
	// Calculation
	N          uint64
	Kind       sequence.Kind
	Algo       string
	Timeout    time.Duration
	LastDigits int

	// Demonstration program
	Run     bool
	Limit   int
	BreakAt int
	Pattern string

	// Output
	ShowValue  bool
	Verbose    bool
	Details    bool
	Quiet      bool
	OutputFile string
	NoColor    bool
	LogLevel   string

	// Modes
	REPL       bool
	TUI        bool
	Serve      bool
	Addr       string
	Completion string

	// Calibration
	Calibrate          bool
	AutoCalibrate      bool
	SplitThreshold     uint64
	CalibrationProfile string

	ConfigFile string
}

// Plan returns the demonstration loop described by the configuration.
func (c AppConfig) Plan() program.Plan {
	p := program.DefaultPlan()
	p.Limit = c.Limit
	p.BreakAt = c.BreakAt
	return p
}

// Validate checks the semantic consistency of the configuration.
//
// Parameters:
//   - availableAlgos: The registered algorithm names.
//
// Returns:
//   - error: A ConfigError describing the first problem found, or nil.
func (c AppConfig) Validate(availableAlgos []string) error {
	if _, err := sequence.ParseKind(string(c.Kind)); err != nil {
		return apperrors.NewConfigError("unknown kind %q (expected fib or fac)", c.Kind)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	if c.Algo != "all" && !slices.Contains(availableAlgos, c.Algo) {
		return apperrors.NewConfigError("unknown algorithm %q (available: all, %s)", c.Algo, strings.Join(availableAlgos, ", "))
	}
	if c.LastDigits < 0 {
		return apperrors.NewConfigError("--last-digits must be positive, got %d", c.LastDigits)
	}
	if c.LastDigits > 0 && c.Kind != sequence.KindFibonacci {
		return apperrors.NewConfigError("--last-digits is only supported for fib")
	}
	if c.Limit < 0 {
		return apperrors.NewConfigError("--limit must be non-negative, got %d", c.Limit)
	}
	if c.Pattern != "" {
		if _, err := program.Format(c.Pattern, 0); err != nil {
			return apperrors.NewConfigError("invalid --pattern (one {} placeholder, braces escaped as {{ and }}): %v", err)
		}
	}
	switch c.Completion {
	case "", "bash", "zsh", "fish":
	default:
		return apperrors.NewConfigError("unsupported completion shell %q", c.Completion)
	}
	return nil
}

// ParseConfig builds an AppConfig with the priority
// flags > environment > config file > defaults.
//
// Parameters:
//   - programName: The name shown in usage messages.
//   - args: The command-line arguments, without the program name.
//   - errorWriter: Receives usage and parse errors.
//   - availableAlgos: The registered algorithm names.
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: flag.ErrHelp for -h, or a parse, file or validation error.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	var cfg AppConfig
	var kind string
	fs.Uint64Var(&cfg.N, "n", DefaultN, "Index to compute.")
	fs.StringVar(&kind, "kind", string(sequence.KindFibonacci), "Sequence to compute: 'fib' or 'fac'.")
	fs.StringVar(&cfg.Algo, "algo", "", fmt.Sprintf("Algorithm: 'all' or one of %s. Defaults to the reference algorithm of --kind.", strings.Join(availableAlgos, ", ")))
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "Maximum execution time.")
	fs.IntVar(&cfg.LastDigits, "last-digits", 0, "Compute only the last K decimal digits of F(n).")

	fs.BoolVar(&cfg.Run, "run", false, "Run the demonstration program.")
	fs.IntVar(&cfg.Limit, "limit", program.DefaultLimit, "Exclusive upper bound of the demonstration loop.")
	fs.IntVar(&cfg.BreakAt, "break-at", program.DefaultBreakAt, "Index at which the demonstration loop breaks (-1 disables).")
	fs.StringVar(&cfg.Pattern, "pattern", program.DefaultPattern, "Print pattern of the demonstration program.")

	fs.BoolVar(&cfg.ShowValue, "calculate", false, "Display the calculated value.")
	fs.BoolVar(&cfg.ShowValue, "c", false, "Display the calculated value (shorthand).")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Display the full value without truncation.")
	fs.BoolVar(&cfg.Verbose, "v", false, "Shorthand for --verbose.")
	fs.BoolVar(&cfg.Details, "details", false, "Display digits, bits and memory statistics.")
	fs.BoolVar(&cfg.Details, "d", false, "Shorthand for --details.")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Print only the result.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Shorthand for --quiet.")
	fs.StringVar(&cfg.OutputFile, "output", "", "Write the result to a file.")
	fs.StringVar(&cfg.OutputFile, "o", "", "Shorthand for --output.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&cfg.LogLevel, "log-level", "info", "Log level: debug, info, warn, error.")

	fs.BoolVar(&cfg.REPL, "repl", false, "Start the interactive REPL.")
	fs.BoolVar(&cfg.TUI, "tui", false, "Replay the demonstration program in a terminal viewer.")
	fs.BoolVar(&cfg.Serve, "serve", false, "Start the HTTP server.")
	fs.StringVar(&cfg.Addr, "addr", DefaultAddr, "HTTP listen address for --serve.")
	fs.StringVar(&cfg.Completion, "completion", "", "Generate a completion script: bash, zsh or fish.")
	fs.StringVar(&cfg.ConfigFile, "config", "", "YAML configuration file.")

	fs.BoolVar(&cfg.Calibrate, "calibrate", false, "Measure fac-split parallel thresholds and save the fastest.")
	fs.BoolVar(&cfg.AutoCalibrate, "auto-calibrate", false, "Run a quick calibration when no calibration profile exists.")
	fs.Uint64Var(&cfg.SplitThreshold, "split-threshold", 0, "Parallel threshold of fac-split (0 uses the calibration profile or the default).")
	fs.StringVar(&cfg.CalibrationProfile, "calibration-profile", "", "Calibration profile path (defaults to the home directory).")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	cfg.Kind = sequence.Kind(strings.ToLower(kind))

	if !isFlagSet(fs, "config") {
		cfg.ConfigFile = getEnvString("CONFIG", cfg.ConfigFile)
	}
	if cfg.ConfigFile != "" {
		file, err := LoadFile(cfg.ConfigFile)
		if err != nil {
			return AppConfig{}, err
		}
		file.apply(&cfg, fs)
	}
	applyEnvOverrides(&cfg, fs)

	if cfg.Algo == "" {
		cfg.Algo = sequence.DefaultAlgorithm(cfg.Kind)
	}
	cfg.Algo = strings.ToLower(cfg.Algo)

	if err := cfg.Validate(availableAlgos); err != nil {
		fmt.Fprintln(errorWriter, err)
		return AppConfig{}, err
	}
	return cfg, nil
}
