package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/seqcalc/internal/format"
	"github.com/agbru/seqcalc/internal/program"
)

// MetricsModel displays run progress with runtime memory statistics.
type MetricsModel struct {
	alloc        uint64
	sys          uint64
	numGC        uint32
	pauseTotalNs uint64
	numGoroutine int
	visited      int
	printed      int
	total        int
	speed        float64 // progress per second
	lastProgress float64
	lastUpdate   time.Time
	width        int
	height       int
}

// NewMetricsModel creates a metrics panel for a run visiting total indices.
func NewMetricsModel(total int) MetricsModel {
	return MetricsModel{
		total:      total,
		lastUpdate: time.Now(),
	}
}

// visitCount returns how many indices a run of p visits, the break
// included.
func visitCount(p program.Plan) int {
	if p.Step <= 0 {
		return 0
	}
	n := 0
	for i := p.Start; i < p.Limit; i += p.Step {
		n++
		if !(p.SkipEven && i%2 == 0) && p.BreakAt >= 0 && i == p.BreakAt {
			break
		}
	}
	return n
}

// SetSize updates dimensions.
func (m *MetricsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// UpdateMemStats updates memory statistics.
func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) {
	m.alloc = msg.Alloc
	m.sys = msg.Sys
	m.numGC = msg.NumGC
	m.pauseTotalNs = msg.PauseTotalNs
	m.numGoroutine = msg.NumGoroutine
}

// AddStep counts a visited index and refreshes the speed.
func (m *MetricsModel) AddStep(s program.Step) {
	if s.Index < 0 {
		return
	}
	m.visited++
	if s.Action == program.ActionPrinted {
		m.printed++
	}
	m.UpdateProgress(m.Progress())
}

// Progress returns the fraction of the run already visited.
func (m MetricsModel) Progress() float64 {
	if m.total <= 0 {
		return 0
	}
	return min(float64(m.visited)/float64(m.total), 1)
}

// UpdateProgress updates the speed metric.
func (m *MetricsModel) UpdateProgress(progress float64) {
	now := time.Now()
	dt := now.Sub(m.lastUpdate).Seconds()
	if dt > 0.05 {
		dp := progress - m.lastProgress
		if dp > 0 {
			instantSpeed := dp / dt
			if m.speed > 0 {
				m.speed = 0.7*m.speed + 0.3*instantSpeed
			} else {
				m.speed = instantSpeed
			}
		}
		m.lastProgress = progress
		m.lastUpdate = now
	}
}

// View renders the metrics panel.
func (m MetricsModel) View() string {
	var rows strings.Builder
	rows.WriteString(panelTitleStyle.Render("Metrics"))

	colWidth := (m.width - 6) / 2
	stepsPerSec := m.speed * float64(m.total)

	leftCol := []string{
		formatMetricCol("Progress:", fmt.Sprintf("%d/%d (%.0f%%)", m.visited, m.total, m.Progress()*100), colWidth),
		formatMetricCol("Heap:", format.FormatBytes(m.alloc)+" / "+format.FormatBytes(m.sys), colWidth),
		formatMetricCol("Goroutines:", fmt.Sprintf("%d", m.numGoroutine), colWidth),
	}
	rightCol := []string{
		formatMetricCol("Printed:", fmt.Sprintf("%d", m.printed), colWidth),
		formatMetricCol("GC Runs:", fmt.Sprintf("%d (%.1fms)", m.numGC, float64(m.pauseTotalNs)/1e6), colWidth),
		formatMetricCol("Speed:", fmt.Sprintf("%.1f steps/s", stepsPerSec), colWidth),
	}

	for i := range leftCol {
		rows.WriteString("\n")
		rows.WriteString(leftCol[i])
		rows.WriteString(rightCol[i])
	}

	return panel(rows.String(), m.width, m.height)
}

func formatMetricCol(label, value string, colWidth int) string {
	cell := fmt.Sprintf(" %s %s",
		metricLabelStyle.Render(fmt.Sprintf("%-11s", label)),
		metricValueStyle.Render(value))
	// Pad to fixed column width using lipgloss-aware width
	visible := lipgloss.Width(cell)
	if visible < colWidth {
		cell += strings.Repeat(" ", colWidth-visible)
	}
	return cell
}
