package program

import (
	"context"
	"math/big"
	"time"

	"github.com/agbru/seqcalc/internal/sequence"
)

// Action is what the loop did at one index.
type Action int

const (
	// ActionPrinted means the value was computed and printed.
	ActionPrinted Action = iota
	// ActionSkipped means the index was skipped (continue).
	ActionSkipped
	// ActionBreak means the loop ended at this index (break).
	ActionBreak
)

func (a Action) String() string {
	switch a {
	case ActionPrinted:
		return "printed"
	case ActionSkipped:
		return "skipped"
	case ActionBreak:
		return "break"
	}
	return "unknown"
}

// Step records one visited index. Value and Text are set only for printed
// steps.
type Step struct {
	Index  int
	Action Action
	Value  *big.Int
	Text   string
}

// Result is the outcome of a complete run.
type Result struct {
	Steps []Step
	// Lines holds everything printed, ending with DoneMarker.
	Lines []string
}

// Printed returns the printed steps in order.
func (r Result) Printed() []Step {
	var out []Step
	for _, s := range r.Steps {
		if s.Action == ActionPrinted {
			out = append(out, s)
		}
	}
	return out
}

// Evaluator computes the value printed for an index.
type Evaluator func(ctx context.Context, n uint64) (*big.Int, error)

// FromCalculator adapts a calculator to an Evaluator.
func FromCalculator(calc sequence.Calculator) Evaluator {
	return func(ctx context.Context, n uint64) (*big.Int, error) {
		return calc.Calculate(ctx, nil, 0, n)
	}
}

// Runner executes a Plan.
type Runner struct {
	Plan Plan
	// Eval computes printed values; defaults to the iterative Fibonacci.
	Eval Evaluator
	// Sink receives printed lines; may be nil.
	Sink Sink
	// Pattern is the print format, DefaultPattern when empty.
	Pattern string
	// Observer, when set, is called after every step and once more with
	// Index -1 and the DoneMarker text after the final line.
	Observer func(Step)
	// Pace delays each step, letting interactive views animate the run.
	Pace time.Duration
}

// Run executes the demonstration loop with plan, printing through sink.
func Run(ctx context.Context, plan Plan, eval Evaluator, sink Sink) (Result, error) {
	r := Runner{Plan: plan, Eval: eval, Sink: sink}
	return r.Run(ctx)
}

// Run executes the loop. The final DoneMarker line is printed only when the
// loop completes without error.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	var res Result
	if err := r.Plan.Validate(); err != nil {
		return res, err
	}
	eval := r.Eval
	if eval == nil {
		eval = FromCalculator(sequence.NewCalculator(sequence.IterativeFibonacci{}))
	}
	pattern := r.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}

	p := r.Plan
	for i := p.Start; i < p.Limit; i += p.Step {
		if err := r.wait(ctx); err != nil {
			return res, err
		}

		step := Step{Index: i, Action: p.actionFor(i)}
		if step.Action == ActionPrinted {
			value, err := eval(ctx, uint64(i))
			if err != nil {
				return res, err
			}
			text, err := Format(pattern, value)
			if err != nil {
				return res, err
			}
			step.Value, step.Text = value, text
			if err := r.print(&res, text); err != nil {
				return res, err
			}
		}
		res.Steps = append(res.Steps, step)
		r.observe(step)
		if step.Action == ActionBreak {
			break
		}
	}

	done, err := Format(DoneMarker)
	if err != nil {
		return res, err
	}
	if err := r.print(&res, done); err != nil {
		return res, err
	}
	r.observe(Step{Index: -1, Text: done})
	return res, nil
}

func (r *Runner) print(res *Result, line string) error {
	res.Lines = append(res.Lines, line)
	if r.Sink == nil {
		return nil
	}
	return r.Sink.Print(line)
}

func (r *Runner) observe(s Step) {
	if r.Observer != nil {
		r.Observer(s)
	}
}

func (r *Runner) wait(ctx context.Context) error {
	if r.Pace <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(r.Pace)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
