// Package app wires configuration, calculators and the user-facing surfaces
// (CLI, demonstration program, REPL, viewer and HTTP server) together.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/agbru/seqcalc/internal/cli"
	"github.com/agbru/seqcalc/internal/config"
	apperrors "github.com/agbru/seqcalc/internal/errors"
	"github.com/agbru/seqcalc/internal/logging"
	"github.com/agbru/seqcalc/internal/program"
	"github.com/agbru/seqcalc/internal/sequence"
	"github.com/agbru/seqcalc/internal/ui"
)

// Application represents the seqcalc application instance.
type Application struct {
	Config    config.AppConfig
	Factory   sequence.CalculatorFactory
	ErrWriter io.Writer
	Logger    logging.Logger
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom CalculatorFactory for the application.
func WithFactory(f sequence.CalculatorFactory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithLogger sets the logger used by long-running modes.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
// An explicit algorithm must produce the requested kind.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = sequence.NewDefaultFactory()
	}

	programName := "seqcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Factory.List())
	if err != nil {
		return nil, err
	}

	if cfg.Algo != "all" {
		calc, err := app.Factory.Get(cfg.Algo)
		if err != nil {
			return nil, apperrors.NewConfigError("%v", err)
		}
		if calc.Kind() != cfg.Kind {
			err := apperrors.NewConfigError("algorithm %q computes %s, not %s", cfg.Algo, calc.Kind(), cfg.Kind)
			fmt.Fprintln(errWriter, err)
			return nil, err
		}
	}

	if app.Logger == nil {
		app.Logger = newLogger(errWriter, cfg)
	}
	app.Config = cfg
	app.applySplitThreshold(app.resolveSplitThreshold())
	return app, nil
}

// newLogger builds the console logger of the application at the configured
// level.
func newLogger(w io.Writer, cfg config.AppConfig) logging.Logger {
	out := zerolog.ConsoleWriter{Out: w, NoColor: cfg.NoColor, TimeFormat: "15:04:05"}
	zl := zerolog.New(out).
		Level(logging.ParseLevel(cfg.LogLevel)).
		With().Timestamp().Str("component", "seqcalc").
		Logger()
	return logging.NewZerologAdapter(zl)
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	zerolog.SetGlobalLevel(logging.ParseLevel(a.Config.LogLevel))
	ui.InitTheme(a.Config.NoColor)

	if a.Config.Calibrate {
		return a.runCalibration(ctx, out)
	}
	a.runAutoCalibrationIfEnabled(ctx, out)

	switch {
	case a.Config.Serve:
		return a.runServer(ctx)
	case a.Config.REPL:
		return a.runREPL(ctx, out)
	case a.Config.TUI:
		return a.runTUI(ctx)
	case a.Config.Run:
		return a.runProgram(ctx, out)
	case a.Config.LastDigits > 0:
		return a.runLastDigits(ctx, out)
	}
	return a.runCalculate(ctx, out)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// evaluator returns the function computing printed values of the
// demonstration program: the configured algorithm, or the reference one of
// the kind when every algorithm is selected.
func (a *Application) evaluator() (program.Evaluator, error) {
	algo := a.Config.Algo
	if algo == "all" {
		algo = sequence.DefaultAlgorithm(a.Config.Kind)
	}
	calc, err := a.Factory.Get(algo)
	if err != nil {
		return nil, err
	}
	return program.FromCalculator(calc), nil
}

// runner builds the demonstration program runner from the configuration.
func (a *Application) runner() (program.Runner, error) {
	eval, err := a.evaluator()
	if err != nil {
		return program.Runner{}, err
	}
	return program.Runner{
		Plan:    a.Config.Plan(),
		Eval:    eval,
		Pattern: a.Config.Pattern,
	}, nil
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
