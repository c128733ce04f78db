package app

import (
	"context"
	"io"
	"os/signal"
	"syscall"

	"github.com/agbru/seqcalc/internal/cli"
	apperrors "github.com/agbru/seqcalc/internal/errors"
	"github.com/agbru/seqcalc/internal/logging"
	"github.com/agbru/seqcalc/internal/server"
	"github.com/agbru/seqcalc/internal/tui"
)

// runProgram runs the demonstration loop and prints its output. Details
// mode adds the per-index trace.
func (a *Application) runProgram(ctx context.Context, out io.Writer) int {
	ctx, cancel := a.lifecycle(ctx)
	defer cancel()

	runner, err := a.runner()
	if err != nil {
		return apperrors.HandleCalculationError(err, 0, a.ErrWriter, cli.CLIColorProvider{})
	}
	a.Logger.Debug("running demonstration program",
		logging.Int("limit", runner.Plan.Limit),
		logging.Int("break_at", runner.Plan.BreakAt),
		logging.String("algo", a.Config.Algo),
	)
	if _, err := cli.RunProgram(ctx, runner, a.Config.Details, out); err != nil {
		return apperrors.HandleCalculationError(err, 0, a.ErrWriter, cli.CLIColorProvider{})
	}
	return apperrors.ExitSuccess
}

// runREPL starts an interactive session. Each command carries its own
// timeout so the session itself is bounded only by signals.
func (a *Application) runREPL(ctx context.Context, out io.Writer) int {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM)
	defer stop()

	repl := cli.NewREPL(a.Factory, cli.REPLConfig{
		DefaultAlgo: a.Config.Algo,
		Timeout:     a.Config.Timeout,
		Plan:        a.Config.Plan(),
	})
	repl.SetOutput(out)
	repl.Start(ctx)
	return apperrors.ExitSuccess
}

// runTUI replays the demonstration program in the terminal viewer.
func (a *Application) runTUI(ctx context.Context) int {
	ctx, cancel := a.lifecycle(ctx)
	defer cancel()

	runner, err := a.runner()
	if err != nil {
		return apperrors.HandleCalculationError(err, 0, a.ErrWriter, cli.CLIColorProvider{})
	}
	return tui.Run(ctx, runner, Version)
}

// runServer serves the HTTP API until SIGINT or SIGTERM. The configured
// timeout bounds each request rather than the server lifetime.
func (a *Application) runServer(ctx context.Context) int {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(a.Config.Addr, a.Factory,
		server.WithLogger(a.Logger),
		server.WithRequestTimeout(a.Config.Timeout),
		server.WithPlan(a.Config.Plan()),
		server.WithVersion(Version),
	)
	if err := srv.Start(ctx); err != nil {
		a.Logger.Error("server failed", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}
