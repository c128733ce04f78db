//go:build gmp

package sequence

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ncw/gmp"

	"github.com/agbru/seqcalc/internal/progress"
)

func init() {
	builtins["fac-gmp"] = GMPFactorial{}
}

// GMPFactorial multiplies 2·3·…·n with GNU MP integers. It is only
// available in binaries built with the gmp tag.
type GMPFactorial struct{}

// Name returns the display name of the algorithm.
func (GMPFactorial) Name() string { return "GMP Factorial (O(n))" }

// Kind returns KindFactorial.
func (GMPFactorial) Kind() Kind { return KindFactorial }

// CalculateCore returns n!.
func (GMPFactorial) CalculateCore(ctx context.Context, report progress.ProgressCallback, n uint64) (*big.Int, error) {
	result := gmp.NewInt(1)
	factor := new(gmp.Int)
	for i := uint64(2); i <= n; i++ {
		if err := canceled(ctx, i); err != nil {
			return nil, err
		}
		if i%checkInterval == 0 {
			progress.ReportStepProgress(report, i, n)
		}
		result.Mul(result, factor.SetUint64(i))
	}
	out, ok := new(big.Int).SetString(result.String(), 10)
	if !ok {
		return nil, fmt.Errorf("gmp: cannot convert result for n=%d", n)
	}
	return out, nil
}
