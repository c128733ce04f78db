package sequence

import (
	"sort"
	"strings"
	"sync"

	apperrors "github.com/agbru/seqcalc/internal/errors"
)

// CalculatorFactory resolves calculators by short name.
type CalculatorFactory interface {
	// Get returns the calculator registered under name.
	Get(name string) (Calculator, error)
	// List returns all registered names in sorted order.
	List() []string
	// ListKind returns the sorted names of calculators producing kind.
	ListKind(kind Kind) []string
	// Register adds or replaces a calculator.
	Register(name string, calc Calculator)
}

// DefaultFactory is a concurrency-safe CalculatorFactory.
type DefaultFactory struct {
	mu          sync.RWMutex
	calculators map[string]Calculator
}

// builtins lists the algorithms every default factory registers.
// Build-tagged files may append to it from init.
var builtins = map[string]coreCalculator{
	"fib-iter":   IterativeFibonacci{},
	"fib-double": FastDoubling{},
	"fac-rec":    RecursiveFactorial{},
	"fac-iter":   IterativeFactorial{},
	"fac-split":  SplitFactorial{},
}

// DefaultAlgorithm returns the algorithm used for kind when none is given.
func DefaultAlgorithm(kind Kind) string {
	if kind == KindFactorial {
		return "fac-iter"
	}
	return "fib-iter"
}

// NewDefaultFactory returns a factory populated with the built-in algorithms.
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{calculators: make(map[string]Calculator, len(builtins))}
	for name, core := range builtins {
		f.calculators[name] = NewCalculator(core)
	}
	return f
}

var (
	globalFactory     *DefaultFactory
	globalFactoryOnce sync.Once
)

// GlobalFactory returns a process-wide default factory.
func GlobalFactory() *DefaultFactory {
	globalFactoryOnce.Do(func() {
		globalFactory = NewDefaultFactory()
	})
	return globalFactory
}

// Get returns the calculator registered under name (case-insensitive).
func (f *DefaultFactory) Get(name string) (Calculator, error) {
	f.mu.RLock()
	calc, ok := f.calculators[strings.ToLower(name)]
	f.mu.RUnlock()
	if !ok {
		return nil, apperrors.NewConfigError("unknown algorithm %q (available: %s)", name, strings.Join(f.List(), ", "))
	}
	return calc, nil
}

// List returns all registered names in sorted order.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.calculators))
	for name := range f.calculators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListKind returns the sorted names of calculators producing kind.
func (f *DefaultFactory) ListKind(kind Kind) []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var names []string
	for name, calc := range f.calculators {
		if calc.Kind() == kind {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Register adds or replaces a calculator.
func (f *DefaultFactory) Register(name string, calc Calculator) {
	f.mu.Lock()
	f.calculators[strings.ToLower(name)] = calc
	f.mu.Unlock()
}

// GetAll returns a copy of the name to calculator mapping.
func (f *DefaultFactory) GetAll() map[string]Calculator {
	f.mu.RLock()
	defer f.mu.RUnlock()
	all := make(map[string]Calculator, len(f.calculators))
	for name, calc := range f.calculators {
		all[name] = calc
	}
	return all
}
