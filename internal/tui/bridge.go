package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/seqcalc/internal/program"
)

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, we need a pointer
// that survives copies so the bridge goroutines can send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe).
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// pauseGate blocks the running program between steps while paused.
type pauseGate struct {
	mu     sync.Mutex
	paused bool
	resume chan struct{}
}

// Set pauses or resumes the run.
func (g *pauseGate) Set(paused bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	switch {
	case paused && !g.paused:
		g.resume = make(chan struct{})
	case !paused && g.paused:
		close(g.resume)
	}
	g.paused = paused
}

// Wait returns once the gate is open or ctx is done.
func (g *pauseGate) Wait(ctx context.Context) {
	g.mu.Lock()
	if !g.paused {
		g.mu.Unlock()
		return
	}
	ch := g.resume
	g.mu.Unlock()

	select {
	case <-ch:
	case <-ctx.Done():
	}
}

// msgSender delivers messages to the running viewer. programRef is the
// production implementation.
type msgSender interface {
	Send(msg tea.Msg)
}

// runProgramCmd runs the plan in the background. Printed lines leave the
// runner through a ChannelSink and steps through its observer; a single
// forwarder sends both, so a printed line always reaches the viewer before
// the step that printed it.
func runProgramCmd(ref msgSender, ctx context.Context, runner program.Runner, gate *pauseGate, gen uint64) tea.Cmd {
	return func() tea.Msg {
		lines := make(chan string)
		steps := make(chan program.Step)
		forwarded := make(chan struct{})
		go func() {
			defer close(forwarded)
			for {
				select {
				case line, ok := <-lines:
					if !ok {
						return
					}
					ref.Send(LineMsg{Line: line, Generation: gen})
				case s := <-steps:
					ref.Send(StepMsg{Step: s, Generation: gen})
				}
			}
		}()

		runner.Sink = program.ChannelSink{C: lines, Done: ctx.Done()}
		runner.Observer = func(s program.Step) {
			select {
			case steps <- s:
			case <-ctx.Done():
				return
			}
			gate.Wait(ctx)
		}
		res, err := runner.Run(ctx)
		close(lines)
		<-forwarded

		return ProgramDoneMsg{Result: res, Err: err, Generation: gen}
	}
}
