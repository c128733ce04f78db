package program

import (
	"fmt"

	apperrors "github.com/agbru/seqcalc/internal/errors"
)

// Defaults of the demonstration loop.
const (
	DefaultLimit   = 20
	DefaultBreakAt = 17
	DefaultPattern = "{}"
	DoneMarker     = "Done"
)

// Plan describes the loop `for i := Start; i < Limit; i += Step`.
// When SkipEven is set even indices are skipped; reaching BreakAt ends the
// loop before printing. A negative BreakAt disables the break.
type Plan struct {
	Start    int
	Limit    int
	Step     int
	SkipEven bool
	BreakAt  int
}

// DefaultPlan returns the loop of the demonstration program.
func DefaultPlan() Plan {
	return Plan{Start: 0, Limit: DefaultLimit, Step: 1, SkipEven: true, BreakAt: DefaultBreakAt}
}

// Validate checks that the loop terminates and uses non-negative indices.
func (p Plan) Validate() error {
	switch {
	case p.Step <= 0:
		return apperrors.ValidationError{Field: "step", Message: fmt.Sprintf("must be positive, got %d", p.Step)}
	case p.Start < 0:
		return apperrors.ValidationError{Field: "start", Message: fmt.Sprintf("must be non-negative, got %d", p.Start)}
	case p.Limit < p.Start:
		return apperrors.ValidationError{Field: "limit", Message: fmt.Sprintf("must be >= start (%d), got %d", p.Start, p.Limit)}
	}
	return nil
}

// Indices returns the indices the plan prints, without evaluating them.
func (p Plan) Indices() []int {
	var out []int
	for i := p.Start; i < p.Limit; i += p.Step {
		switch p.actionFor(i) {
		case ActionSkipped:
			continue
		case ActionBreak:
			return out
		}
		out = append(out, i)
	}
	return out
}

func (p Plan) actionFor(i int) Action {
	if p.SkipEven && i%2 == 0 {
		return ActionSkipped
	}
	if p.BreakAt >= 0 && i == p.BreakAt {
		return ActionBreak
	}
	return ActionPrinted
}
