package orchestration

import (
	"github.com/agbru/seqcalc/internal/sequence"
)

// GetCalculatorsToRun resolves the algorithm selection. "all" selects every
// registered calculator of kind, in sorted name order; any other value is
// looked up by name.
//
// Parameters:
//   - algo: The algorithm name, or "all".
//   - kind: The sequence to compute.
//   - factory: The calculator factory.
//
// Returns:
//   - []sequence.Calculator: The calculators to execute; nil when algo is unknown.
func GetCalculatorsToRun(algo string, kind sequence.Kind, factory sequence.CalculatorFactory) []sequence.Calculator {
	if algo == "all" {
		names := factory.ListKind(kind)
		calculators := make([]sequence.Calculator, 0, len(names))
		for _, name := range names {
			if calc, err := factory.Get(name); err == nil {
				calculators = append(calculators, calc)
			}
		}
		return calculators
	}
	if calc, err := factory.Get(algo); err == nil {
		return []sequence.Calculator{calc}
	}
	return nil
}
