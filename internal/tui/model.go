package tui

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/agbru/seqcalc/internal/errors"
	"github.com/agbru/seqcalc/internal/metrics"
	"github.com/agbru/seqcalc/internal/program"
	"github.com/agbru/seqcalc/internal/sysmon"
)

// DefaultPace is the delay between steps when the runner sets none.
const DefaultPace = 250 * time.Millisecond

// ExecutionState holds the execution-related fields of a viewer session.
type ExecutionState struct {
	ctx        context.Context
	cancel     context.CancelFunc
	generation uint64
	done       bool
	exitCode   int
}

// LayoutManager holds terminal dimensions and provides layout calculations.
type LayoutManager struct {
	width  int
	height int
}

// bodyHeight returns the available height for the main body panels.
func (l LayoutManager) bodyHeight() int {
	return max(l.height-headerHeight-footerHeight, minBodyHeight)
}

// traceWidth returns the width allocated to the trace panel.
func (l LayoutManager) traceWidth() int {
	return l.width * TracePanelWidthPercent / 100
}

// rightWidth returns the width allocated to the right column.
func (l LayoutManager) rightWidth() int {
	return l.width - l.traceWidth()
}

// metricsHeight returns the height allocated to the metrics panel.
func (l LayoutManager) metricsHeight() int {
	return min(MetricsPanelHeight, l.bodyHeight()/3)
}

// outputHeight returns the height allocated to the output panel.
func (l LayoutManager) outputHeight() int {
	return min(OutputPanelHeight, l.bodyHeight()/3)
}

// chartHeight returns the height allocated to the chart panel.
func (l LayoutManager) chartHeight() int {
	return l.bodyHeight() - l.metricsHeight() - l.outputHeight()
}

// Layout constants for the viewer.
const (
	headerHeight           = 1
	footerHeight           = 1
	minBodyHeight          = 12
	TracePanelWidthPercent = 40
	MetricsPanelHeight     = 6
	OutputPanelHeight      = 5
)

// Model is the root bubbletea model of the program viewer.
type Model struct {
	header  HeaderModel
	trace   TraceModel
	output  OutputModel
	metrics MetricsModel
	chart   ChartModel
	footer  FooterModel

	keymap KeyMap

	ExecutionState
	LayoutManager

	parentCtx context.Context
	runner    program.Runner
	ref       *programRef
	gate      *pauseGate
	paused    bool
}

// NewModel creates a viewer replaying runner.
func NewModel(parentCtx context.Context, runner program.Runner, version string) Model {
	if runner.Pace <= 0 {
		runner.Pace = DefaultPace
	}
	ctx, cancel := context.WithCancel(parentCtx)
	keymap := DefaultKeyMap()

	return Model{
		header:  NewHeaderModel(version, runner.Plan),
		trace:   NewTraceModel(),
		output:  NewOutputModel(),
		metrics: NewMetricsModel(visitCount(runner.Plan)),
		chart:   NewChartModel(),
		footer:  NewFooterModel(keymap),
		keymap:  keymap,
		ExecutionState: ExecutionState{
			ctx:      ctx,
			cancel:   cancel,
			exitCode: apperrors.ExitSuccess,
		},
		parentCtx: parentCtx,
		runner:    runner,
		ref:       &programRef{},
		gate:      &pauseGate{},
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		runProgramCmd(m.ref, m.ctx, m.runner, m.gate, m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case StepMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.trace.AddStep(msg.Step)
		m.metrics.AddStep(msg.Step)
		if msg.Step.Action == program.ActionPrinted && msg.Step.Index >= 0 {
			m.chart.AddValue(msg.Step.Value)
		}
		return m, nil

	case LineMsg:
		if msg.Generation == m.generation {
			m.output.AddLine(msg.Line)
		}
		return m, nil

	case ProgramDoneMsg:
		if msg.Generation != m.generation {
			return m, nil // stale message from a restarted run
		}
		m.done = true
		m.header.SetDone()
		m.chart.SetDone(m.header.Elapsed())
		m.footer.SetDone(true)
		if msg.Err != nil && !errors.Is(msg.Err, context.Canceled) {
			m.trace.AddError(msg.Err)
			m.footer.SetError(true)
			m.exitCode = apperrors.HandleCalculationError(msg.Err, m.header.Elapsed(), io.Discard, nil)
		}
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		if !m.paused {
			return m, tea.Batch(sampleMemStatsCmd(), sampleSysStatsCmd(), tickCmd())
		}
		return m, tickCmd()

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg)
		return m, nil

	case SysStatsMsg:
		m.chart.UpdateSysStats(msg.CPUPercent, msg.MemPercent)
		m.header.SetLogicalCPU(msg.LogicalCPU)
		return m, nil

	case ContextCancelledMsg:
		if msg.Generation != m.generation {
			return m, nil // stale message from a restarted run
		}
		m.done = true
		m.header.SetDone()
		m.footer.SetDone(true)
		if errors.Is(msg.Err, context.DeadlineExceeded) {
			m.exitCode = apperrors.ExitErrorTimeout
		}
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		if m.done {
			return m, nil
		}
		m.paused = !m.paused
		m.gate.Set(m.paused)
		m.footer.SetPaused(m.paused)
		return m, nil

	case key.Matches(msg, m.keymap.Reset):
		if m.cancel != nil {
			m.cancel()
		}

		m.generation++
		ctx, cancel := context.WithCancel(m.parentCtx)
		m.ctx = ctx
		m.cancel = cancel

		m.header.Reset()
		m.trace.Reset()
		m.output.Reset()
		m.chart.Reset()
		m.metrics = NewMetricsModel(visitCount(m.runner.Plan))
		m.metrics.SetSize(m.rightWidth(), m.metricsHeight())
		m.footer.SetDone(false)
		m.footer.SetError(false)
		m.footer.SetPaused(false)
		m.gate.Set(false)
		m.done = false
		m.paused = false
		m.exitCode = apperrors.ExitSuccess

		return m, tea.Batch(
			tickCmd(),
			runProgramCmd(m.ref, m.ctx, m.runner, m.gate, m.generation),
			watchContextCmd(m.ctx, m.generation),
		)

	case key.Matches(msg, m.keymap.Help):
		m.footer.ToggleHelp()
		return m, nil

	case key.Matches(msg, m.keymap.Up), key.Matches(msg, m.keymap.Down),
		key.Matches(msg, m.keymap.PageUp), key.Matches(msg, m.keymap.PageDown):
		m.trace.Update(msg)
		return m, nil
	}

	return m, nil
}

// View renders the whole viewer.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	rightCol := lipgloss.JoinVertical(lipgloss.Left, m.output.View(), m.metrics.View(), m.chart.View())
	trace := m.trace.renderToHeight(lipgloss.Height(rightCol))
	body := lipgloss.JoinHorizontal(lipgloss.Top, trace, rightCol)

	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.footer.View())
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.trace.SetSize(m.traceWidth(), m.bodyHeight())
	m.output.SetSize(m.rightWidth(), m.outputHeight())
	m.metrics.SetSize(m.rightWidth(), m.metricsHeight())
	m.chart.SetSize(m.rightWidth(), m.chartHeight())
}

// Run is the public entry point of the viewer.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, runner program.Runner, version string) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, runner, version)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	// Inject the program reference before running so bridge goroutines can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}

	if m, ok := finalModel.(Model); ok {
		m.cancel()
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// tickCmd returns a command that sends a TickMsg after 500ms.
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleMemStatsCmd reads runtime memory stats and returns a MemStatsMsg.
func sampleMemStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := metrics.NewMemoryCollector().Snapshot()
		return MemStatsMsg{
			Alloc:        s.HeapAlloc,
			Sys:          s.Sys,
			NumGC:        s.NumGC,
			PauseTotalNs: s.PauseTotalNs,
			NumGoroutine: s.Goroutines,
		}
	}
}

// sampleSysStatsCmd reads system-wide CPU and memory stats and returns a SysStatsMsg.
func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{CPUPercent: s.CPUPercent, MemPercent: s.MemPercent, LogicalCPU: s.LogicalCPU}
	}
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}
