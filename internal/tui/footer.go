package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// FooterModel renders the run status and the key help.
type FooterModel struct {
	help   help.Model
	keymap KeyMap
	paused bool
	done   bool
	failed bool
	width  int
}

// NewFooterModel creates a footer for keymap.
func NewFooterModel(keymap KeyMap) FooterModel {
	h := help.New()
	h.Styles.ShortKey = metricValueStyle
	h.Styles.ShortDesc = metricLabelStyle
	h.Styles.FullKey = metricValueStyle
	h.Styles.FullDesc = metricLabelStyle
	return FooterModel{help: h, keymap: keymap}
}

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) {
	f.width = w
	f.help.Width = w
}

// SetPaused marks the run as paused.
func (f *FooterModel) SetPaused(p bool) { f.paused = p }

// SetDone marks the run as finished.
func (f *FooterModel) SetDone(d bool) { f.done = d }

// SetError marks the run as failed.
func (f *FooterModel) SetError(e bool) { f.failed = e }

// ToggleHelp switches between the short and the full key help.
func (f *FooterModel) ToggleHelp() { f.help.ShowAll = !f.help.ShowAll }

// Status returns the status label.
func (f FooterModel) Status() string {
	switch {
	case f.failed:
		return "ERROR"
	case f.done:
		return "DONE"
	case f.paused:
		return "PAUSED"
	}
	return "RUNNING"
}

// View renders the footer.
func (f FooterModel) View() string {
	var status string
	switch label := " " + f.Status() + " "; {
	case f.failed:
		status = statusErrorStyle.Render(label)
	case f.done:
		status = statusDoneStyle.Render(label)
	case f.paused:
		status = statusPausedStyle.Render(label)
	default:
		status = statusRunningStyle.Render(label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, status, " ", f.help.View(f.keymap))
}
