// Package progress defines the progress messages calculators emit while they
// run and the helpers that deliver them without blocking the computation.
package progress

// ProgressUpdate is a single progress report from one calculator.
type ProgressUpdate struct {
	// CalculatorIndex identifies the calculator in a concurrent run.
	CalculatorIndex int
	// Value is the normalized progress, from 0.0 to 1.0.
	Value float64
}

// ProgressCallback receives normalized progress values.
type ProgressCallback func(progress float64)

// ReportThreshold is the minimum progress delta between two reports.
// Values closer together are dropped, except the final 1.0.
const ReportThreshold = 0.01

// ChannelCallback returns a callback that forwards progress to ch tagged with
// index. Sends never block: when the channel is full the update is dropped.
// A nil channel yields a no-op callback.
func ChannelCallback(ch chan<- ProgressUpdate, index int) ProgressCallback {
	if ch == nil {
		return func(float64) {}
	}
	last := -1.0
	return func(v float64) {
		v = clamp(v)
		if v < 1.0 && v-last < ReportThreshold {
			return
		}
		last = v
		select {
		case ch <- ProgressUpdate{CalculatorIndex: index, Value: v}:
		default:
		}
	}
}

// ReportStepProgress reports step/total through cb. It is a no-op for a nil
// callback or a zero total.
func ReportStepProgress(cb ProgressCallback, step, total uint64) {
	if cb == nil || total == 0 {
		return
	}
	cb(float64(step) / float64(total))
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
