package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/seqcalc/internal/format"
	"github.com/agbru/seqcalc/internal/program"
)

// HeaderModel renders the top bar: title, version, loop summary, elapsed
// time and logical CPU count.
type HeaderModel struct {
	startTime  time.Time
	endTime    time.Time
	version    string
	plan       program.Plan
	logicalCPU int
	width      int
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version string, plan program.Plan) HeaderModel {
	return HeaderModel{
		startTime: time.Now(),
		version:   version,
		plan:      plan,
	}
}

// SetDone freezes the elapsed timer at the current time.
func (h *HeaderModel) SetDone() {
	h.endTime = time.Now()
}

// Reset restarts the elapsed timer.
func (h *HeaderModel) Reset() {
	h.startTime = time.Now()
	h.endTime = time.Time{}
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// SetLogicalCPU records the CPU count reported by the system sampler.
func (h *HeaderModel) SetLogicalCPU(n int) {
	h.logicalCPU = n
}

// Elapsed returns the run duration so far.
func (h HeaderModel) Elapsed() time.Duration {
	if !h.endTime.IsZero() {
		return h.endTime.Sub(h.startTime)
	}
	return time.Since(h.startTime)
}

// planSummary describes the loop in one line.
func planSummary(p program.Plan) string {
	s := fmt.Sprintf("for i in [%d,%d)", p.Start, p.Limit)
	if p.Step != 1 {
		s += fmt.Sprintf(" step %d", p.Step)
	}
	if p.SkipEven {
		s += ", skip even"
	}
	if p.BreakAt >= 0 {
		s += fmt.Sprintf(", break at %d", p.BreakAt)
	}
	return s
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "seqcalc program viewer"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	title := titleStyle.Render(titleText)
	pipe := versionStyle.Render(" | ")

	elapsed := elapsedStyle.Render(fmt.Sprintf("Elapsed: %s", format.FormatExecutionDuration(h.Elapsed())))
	left := title + pipe + versionStyle.Render(planSummary(h.plan)) + pipe + elapsed

	right := ""
	if h.logicalCPU > 0 {
		right = versionStyle.Render(fmt.Sprintf("%d CPUs", h.logicalCPU))
	}

	innerWidth := max(h.width-2, 0)
	gap := max(innerWidth-lipgloss.Width(left)-lipgloss.Width(right), 1)

	return headerStyle.Width(h.width).Render(left + spaces(gap) + right)
}

// spaces returns a string of n space characters.
func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
