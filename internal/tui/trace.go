package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/seqcalc/internal/program"
)

// traceEntry is one line of the trace panel.
type traceEntry struct {
	step program.Step
	err  error
}

// TraceModel lists what the loop did at each index. It follows new entries
// until the user scrolls up.
type TraceModel struct {
	entries []traceEntry
	offset  int
	follow  bool
	keymap  KeyMap
	width   int
	height  int
}

// NewTraceModel creates an empty trace panel.
func NewTraceModel() TraceModel {
	return TraceModel{follow: true, keymap: DefaultKeyMap()}
}

// SetSize updates dimensions.
func (t *TraceModel) SetSize(w, h int) {
	t.width = w
	t.height = h
	t.clamp()
}

// AddStep appends a visited index.
func (t *TraceModel) AddStep(s program.Step) {
	t.entries = append(t.entries, traceEntry{step: s})
	t.clamp()
}

// AddError appends a failure line.
func (t *TraceModel) AddError(err error) {
	t.entries = append(t.entries, traceEntry{err: err})
	t.clamp()
}

// Reset clears the panel.
func (t *TraceModel) Reset() {
	t.entries = nil
	t.offset = 0
	t.follow = true
}

// Len returns the number of entries.
func (t TraceModel) Len() int { return len(t.entries) }

// rows is the number of entries that fit under the panel title.
func (t TraceModel) rows() int {
	return max(t.height-3, 1)
}

func (t TraceModel) maxOffset() int {
	return max(len(t.entries)-t.rows(), 0)
}

func (t *TraceModel) clamp() {
	if t.follow {
		t.offset = t.maxOffset()
		return
	}
	t.offset = min(max(t.offset, 0), t.maxOffset())
}

// Update scrolls the panel.
func (t *TraceModel) Update(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, t.keymap.Up):
		t.offset--
	case key.Matches(msg, t.keymap.Down):
		t.offset++
	case key.Matches(msg, t.keymap.PageUp):
		t.offset -= t.rows()
	case key.Matches(msg, t.keymap.PageDown):
		t.offset += t.rows()
	default:
		return
	}
	t.follow = false
	t.clamp()
	t.follow = t.offset == t.maxOffset()
}

func renderEntry(e traceEntry) string {
	if e.err != nil {
		return stepErrorStyle.Render("error: " + e.err.Error())
	}
	s := e.step
	if s.Index < 0 {
		return stepDoneStyle.Render(s.Text)
	}
	idx := stepIndexStyle.Render(fmt.Sprintf("i=%-3d", s.Index))
	switch s.Action {
	case program.ActionPrinted:
		return idx + " " + stepPrintedStyle.Render("print   "+s.Text)
	case program.ActionSkipped:
		return idx + " " + stepSkippedStyle.Render("continue")
	case program.ActionBreak:
		return idx + " " + stepBreakStyle.Render("break")
	}
	return idx
}

// renderToHeight renders the panel with the given outer height.
func (t TraceModel) renderToHeight(h int) string {
	t.height = h
	t.clamp()

	var b strings.Builder
	b.WriteString(panelTitleStyle.Render(fmt.Sprintf("Trace (%d)", len(t.entries))))
	end := min(t.offset+t.rows(), len(t.entries))
	for _, e := range t.entries[t.offset:end] {
		b.WriteString("\n")
		b.WriteString(renderEntry(e))
	}
	return panel(b.String(), t.width, h)
}

// View renders the panel at its configured height.
func (t TraceModel) View() string {
	return t.renderToHeight(t.height)
}
