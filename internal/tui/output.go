package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// OutputModel shows what the program printed, as a terminal would.
type OutputModel struct {
	lines  []string
	width  int
	height int
}

// NewOutputModel creates an empty output panel.
func NewOutputModel() OutputModel { return OutputModel{} }

// SetSize updates dimensions.
func (o *OutputModel) SetSize(w, h int) {
	o.width = w
	o.height = h
}

// AddLine appends a printed line.
func (o *OutputModel) AddLine(line string) { o.lines = append(o.lines, line) }

// Reset clears the panel.
func (o *OutputModel) Reset() { o.lines = nil }

// Lines returns the printed lines.
func (o OutputModel) Lines() []string { return o.lines }

// View renders the lines space-separated, keeping the most recent ones when
// they overflow.
func (o OutputModel) View() string {
	inner := max(o.width-4, 1)
	rows := max(o.height-3, 1)

	var wrapped []string
	var cur string
	for _, l := range o.lines {
		switch {
		case cur == "":
			cur = l
		case lipgloss.Width(cur)+1+lipgloss.Width(l) <= inner:
			cur += " " + l
		default:
			wrapped = append(wrapped, cur)
			cur = l
		}
	}
	if cur != "" {
		wrapped = append(wrapped, cur)
	}
	if len(wrapped) > rows {
		wrapped = wrapped[len(wrapped)-rows:]
	}

	content := panelTitleStyle.Render("Output")
	if len(wrapped) > 0 {
		content += "\n" + outputLineStyle.Render(strings.Join(wrapped, "\n"))
	}
	return panel(content, o.width, o.height)
}
