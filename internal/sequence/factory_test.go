package sequence

import (
	"errors"
	"reflect"
	"testing"

	apperrors "github.com/agbru/seqcalc/internal/errors"
)

func TestDefaultFactory_List(t *testing.T) {
	t.Parallel()

	f := NewDefaultFactory()
	for _, name := range []string{"fac-iter", "fac-rec", "fac-split", "fib-double", "fib-iter"} {
		if _, err := f.Get(name); err != nil {
			t.Errorf("Get(%q): %v", name, err)
		}
	}

	names := f.List()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("List() not sorted: %v", names)
		}
	}
}

func TestDefaultFactory_ListKind(t *testing.T) {
	t.Parallel()

	f := NewDefaultFactory()
	if got, want := f.ListKind(KindFibonacci), []string{"fib-double", "fib-iter"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ListKind(fib) = %v, want %v", got, want)
	}
	for _, name := range f.ListKind(KindFactorial) {
		calc, _ := f.Get(name)
		if calc.Kind() != KindFactorial {
			t.Errorf("%s listed as factorial but has kind %s", name, calc.Kind())
		}
	}
}

func TestDefaultFactory_GetUnknown(t *testing.T) {
	t.Parallel()

	_, err := NewDefaultFactory().Get("fib-matrix")
	var configErr apperrors.ConfigError
	if !errors.As(err, &configErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func TestDefaultFactory_RegisterIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	f := NewDefaultFactory()
	f.Register("Fib-Custom", NewCalculator(FastDoubling{}))
	if _, err := f.Get("FIB-CUSTOM"); err != nil {
		t.Errorf("Get after Register: %v", err)
	}
	if _, ok := f.GetAll()["fib-custom"]; !ok {
		t.Error("GetAll should contain the registered calculator")
	}
}

func TestGlobalFactory_IsSingleton(t *testing.T) {
	t.Parallel()
	if GlobalFactory() != GlobalFactory() {
		t.Error("GlobalFactory should return the same instance")
	}
}

func TestDefaultAlgorithm(t *testing.T) {
	t.Parallel()
	for _, kind := range []Kind{KindFibonacci, KindFactorial} {
		calc, err := NewDefaultFactory().Get(DefaultAlgorithm(kind))
		if err != nil {
			t.Fatalf("DefaultAlgorithm(%s): %v", kind, err)
		}
		if calc.Kind() != kind {
			t.Errorf("DefaultAlgorithm(%s) has kind %s", kind, calc.Kind())
		}
	}
}
