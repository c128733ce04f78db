package tui

import (
	"time"

	"github.com/agbru/seqcalc/internal/program"
)

// StepMsg reports one visited index. The final step has Index -1 and the
// done marker as Text.
type StepMsg struct {
	Step       program.Step
	Generation uint64
}

// LineMsg carries one line printed by the program.
type LineMsg struct {
	Line       string
	Generation uint64
}

// ProgramDoneMsg is sent when a run ends, successfully or not.
type ProgramDoneMsg struct {
	Result     program.Result
	Err        error
	Generation uint64
}

// TickMsg drives the periodic sampling.
type TickMsg time.Time

// MemStatsMsg carries a runtime memory sample.
type MemStatsMsg struct {
	Alloc        uint64
	Sys          uint64
	NumGC        uint32
	PauseTotalNs uint64
	NumGoroutine int
}

// SysStatsMsg carries a system-wide CPU and memory sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
	LogicalCPU int
}

// ContextCancelledMsg is sent when the run context ends.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}
