package tui

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/agbru/seqcalc/internal/format"
)

// sysHistoryLen is the number of CPU and memory samples kept.
const sysHistoryLen = 60

// ChartModel plots the size of the printed values and the system load.
type ChartModel struct {
	bits       []float64
	last       *big.Int
	cpuHistory *loadHistory
	memHistory *loadHistory
	elapsed    time.Duration
	done       bool
	width      int
	height     int
}

// NewChartModel creates an empty chart.
func NewChartModel() ChartModel {
	return ChartModel{
		cpuHistory: newLoadHistory(sysHistoryLen),
		memHistory: newLoadHistory(sysHistoryLen),
	}
}

// SetSize updates dimensions and resizes the sparkline histories to fit.
func (c *ChartModel) SetSize(w, h int) {
	c.width = w
	c.height = h
	if n := w - 16; n > 0 {
		c.cpuHistory.SetLimit(n)
		c.memHistory.SetLimit(n)
	}
}

// AddValue records a printed value by its bit length.
func (c *ChartModel) AddValue(v *big.Int) {
	if v == nil {
		return
	}
	c.bits = append(c.bits, float64(v.BitLen()))
	c.last = v
}

// UpdateSysStats records a system sample.
func (c *ChartModel) UpdateSysStats(cpu, mem float64) {
	c.cpuHistory.Add(cpu)
	c.memHistory.Add(mem)
}

// SetDone freezes the chart with the run duration.
func (c *ChartModel) SetDone(elapsed time.Duration) {
	c.done = true
	c.elapsed = elapsed
}

// Reset clears all samples.
func (c *ChartModel) Reset() {
	c.bits = nil
	c.last = nil
	c.cpuHistory.Clear()
	c.memHistory.Clear()
	c.done = false
	c.elapsed = 0
}

// normalized scales the bit lengths to 0..100 against the largest one.
func (c ChartModel) normalized() []float64 {
	return scaleToPeak(c.bits)
}

// View renders the chart panel.
func (c ChartModel) View() string {
	inner := max(c.width-4, 1)
	// title, bits, last value, cpu, mem
	chartRows := max(c.height-2-5, 1)

	var b strings.Builder
	title := "Printed values (bits)"
	if c.done {
		title += " - finished in " + format.FormatExecutionDuration(c.elapsed)
	}
	b.WriteString(panelTitleStyle.Render(title))

	// Two dot columns per printed value keep neighbouring points apart.
	for _, row := range dotPlot(c.normalized(), 2, inner, chartRows) {
		b.WriteString("\n")
		b.WriteString(chartDotStyle.Render(row))
	}
	if len(c.bits) == 0 {
		b.WriteString(strings.Repeat("\n", chartRows))
	}

	b.WriteString("\n")
	b.WriteString(metricLabelStyle.Render("Bits "))
	b.WriteString(chartDotStyle.Render(bitsLine(c.bits, max(inner-5, 1))))

	b.WriteString("\n")
	if c.last != nil {
		b.WriteString(metricLabelStyle.Render("Last: "))
		b.WriteString(metricValueStyle.Render(fmt.Sprintf("%s (%d bits)", format.Truncate(c.last.String(), 24, 10), c.last.BitLen())))
	} else {
		b.WriteString(metricLabelStyle.Render("Last: -"))
	}

	b.WriteString("\n")
	b.WriteString(metricLabelStyle.Render("CPU "))
	b.WriteString(cpuSparklineStyle.Render(blockLine(c.cpuHistory.Samples())))
	b.WriteString(metricValueStyle.Render(fmt.Sprintf(" %5.1f%%", c.cpuHistory.Latest())))
	b.WriteString("\n")
	b.WriteString(metricLabelStyle.Render("MEM "))
	b.WriteString(memSparklineStyle.Render(blockLine(c.memHistory.Samples())))
	b.WriteString(metricValueStyle.Render(fmt.Sprintf(" %5.1f%%", c.memHistory.Latest())))

	return panel(b.String(), c.width, c.height)
}
