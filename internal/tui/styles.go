package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/seqcalc/internal/ui"
)

// Style variables for the program viewer.
// Initialized from the ui theme system via initTUIStyles().
var (
	panelStyle         lipgloss.Style
	panelTitleStyle    lipgloss.Style
	headerStyle        lipgloss.Style
	titleStyle         lipgloss.Style
	versionStyle       lipgloss.Style
	elapsedStyle       lipgloss.Style
	stepIndexStyle     lipgloss.Style
	stepPrintedStyle   lipgloss.Style
	stepSkippedStyle   lipgloss.Style
	stepBreakStyle     lipgloss.Style
	stepDoneStyle      lipgloss.Style
	stepErrorStyle     lipgloss.Style
	outputLineStyle    lipgloss.Style
	metricLabelStyle   lipgloss.Style
	metricValueStyle   lipgloss.Style
	chartDotStyle      lipgloss.Style
	statusRunningStyle lipgloss.Style
	statusPausedStyle  lipgloss.Style
	statusDoneStyle    lipgloss.Style
	statusErrorStyle   lipgloss.Style
	cpuSparklineStyle  lipgloss.Style
	memSparklineStyle  lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all styles from the current ui theme.
// Called at package init and again from Run() after InitTheme has been invoked.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text)

	panelTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	versionStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	elapsedStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	stepIndexStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	stepPrintedStyle = lipgloss.NewStyle().
		Foreground(t.Success)

	stepSkippedStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	stepBreakStyle = lipgloss.NewStyle().
		Foreground(t.Warning).
		Bold(true)

	stepDoneStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	stepErrorStyle = lipgloss.NewStyle().
		Foreground(t.Error)

	outputLineStyle = lipgloss.NewStyle().
		Foreground(t.Text)

	metricLabelStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	metricValueStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	chartDotStyle = lipgloss.NewStyle().
		Foreground(t.Success)

	statusRunningStyle = lipgloss.NewStyle().
		Foreground(t.Success).
		Bold(true)

	statusPausedStyle = lipgloss.NewStyle().
		Foreground(t.Warning).
		Bold(true)

	statusDoneStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	statusErrorStyle = lipgloss.NewStyle().
		Foreground(t.Error).
		Bold(true)

	cpuSparklineStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	memSparklineStyle = lipgloss.NewStyle().
		Foreground(t.Warning)
}

// panel renders content inside a bordered box of the given outer size.
func panel(content string, width, height int) string {
	return panelStyle.
		Width(max(width-2, 0)).
		Height(max(height-2, 0)).
		Render(content)
}
