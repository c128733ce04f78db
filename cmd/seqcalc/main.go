// Command seqcalc computes Fibonacci numbers and factorials from the command
// line, an interactive REPL, a terminal dashboard or an HTTP server. --run
// executes the demonstration loop: fib(i) for odd i below 17, then "Done".
package main

import (
	"context"
	"os"

	"github.com/agbru/seqcalc/internal/app"
	apperrors "github.com/agbru/seqcalc/internal/errors"
)

func main() {
	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout)
		return
	}

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(apperrors.ExitSuccess)
		}
		os.Exit(apperrors.ExitErrorConfig)
	}

	os.Exit(application.Run(context.Background(), os.Stdout))
}
