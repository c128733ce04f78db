// Package calibration measures the binary splitting factorial across
// parallel thresholds and persists the fastest one per machine.
package calibration

import (
	"runtime"

	"github.com/agbru/seqcalc/internal/sequence"
)

// Sequential is the threshold candidate that disables parallel subtrees.
const Sequential uint64 = 0

// GenerateSplitThresholds returns the thresholds to measure, scaled to the
// number of available cores. The list always starts with Sequential.
//
// The rationale:
//   - Single-core: only the sequential product is worth measuring.
//   - 2-4 cores: goroutine overhead is relatively high, so wide ranges only.
//   - 8+ cores: narrower ranges can keep more cores busy.
func GenerateSplitThresholds() []uint64 {
	numCPU := runtime.NumCPU()
	thresholds := []uint64{Sequential}

	switch {
	case numCPU == 1:
		return thresholds
	case numCPU <= 4:
		thresholds = append(thresholds, 1024, 2048, 4096, 8192)
	case numCPU <= 8:
		thresholds = append(thresholds, 512, 1024, 2048, 4096, 8192)
	default:
		thresholds = append(thresholds, 256, 512, 1024, 2048, 4096, 8192)
	}
	return thresholds
}

// GenerateQuickSplitThresholds returns a reduced candidate set.
func GenerateQuickSplitThresholds() []uint64 {
	if runtime.NumCPU() == 1 {
		return []uint64{Sequential}
	}
	return []uint64{Sequential, 1024, sequence.SplitParallelThreshold, 4096}
}

// EstimateOptimalSplitThreshold guesses a threshold from the core count
// without measuring anything.
func EstimateOptimalSplitThreshold() uint64 {
	switch numCPU := runtime.NumCPU(); {
	case numCPU <= 2:
		return 8192
	case numCPU <= 8:
		return sequence.SplitParallelThreshold
	default:
		return 1024
	}
}
