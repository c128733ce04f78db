package tui

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/seqcalc/internal/program"
)

func TestProgramRef_Send_NilProgram(t *testing.T) {
	ref := &programRef{} // program is nil
	// Should not panic
	ref.Send(LineMsg{Line: "1"})
}

func TestProgramRef_Send_Concurrent(t *testing.T) {
	ref := &programRef{} // nil program - Send is a no-op

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ref.Send(StepMsg{Step: program.Step{Index: i}})
		}(i)
	}
	wg.Wait()
}

func TestPauseGate_OpenByDefault(t *testing.T) {
	var g pauseGate
	done := make(chan struct{})
	go func() {
		g.Wait(context.Background())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait blocked on an open gate")
	}
}

func TestPauseGate_BlocksUntilResumed(t *testing.T) {
	var g pauseGate
	g.Set(true)

	done := make(chan struct{})
	go func() {
		g.Wait(context.Background())
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Wait returned while paused")
	case <-time.After(50 * time.Millisecond):
	}

	g.Set(false)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after resume")
	}
}

func TestPauseGate_ContextCancelReleases(t *testing.T) {
	var g pauseGate
	g.Set(true)
	g.Set(true) // repeated pause keeps the same gate

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		g.Wait(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait ignored context cancellation")
	}
}

func TestRunProgramCmd_DefaultPlan(t *testing.T) {
	ref := &programRef{}
	runner := program.Runner{Plan: program.DefaultPlan()}

	msg := runProgramCmd(ref, context.Background(), runner, &pauseGate{}, 3)()
	done, ok := msg.(ProgramDoneMsg)
	if !ok {
		t.Fatalf("expected ProgramDoneMsg, got %T", msg)
	}
	if done.Err != nil {
		t.Fatalf("unexpected error: %v", done.Err)
	}
	if done.Generation != 3 {
		t.Errorf("generation = %d, want 3", done.Generation)
	}

	want := []string{"1", "2", "5", "13", "34", "89", "233", "610", "Done"}
	if len(done.Result.Lines) != len(want) {
		t.Fatalf("lines = %v, want %v", done.Result.Lines, want)
	}
	for i := range want {
		if done.Result.Lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, done.Result.Lines[i], want[i])
		}
	}
}

func TestRunProgramCmd_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := program.Runner{Plan: program.DefaultPlan(), Pace: time.Second}
	msg := runProgramCmd(&programRef{}, ctx, runner, &pauseGate{}, 0)()
	done := msg.(ProgramDoneMsg)
	if done.Err == nil {
		t.Fatal("expected an error from a canceled run")
	}
	if len(done.Result.Lines) != 0 {
		t.Errorf("canceled run printed %v", done.Result.Lines)
	}
}

// recordingSender keeps every message in arrival order.
type recordingSender struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (r *recordingSender) Send(msg tea.Msg) {
	r.mu.Lock()
	r.msgs = append(r.msgs, msg)
	r.mu.Unlock()
}

func TestRunProgramCmd_LineArrivesBeforeItsStep(t *testing.T) {
	rec := &recordingSender{}
	runner := program.Runner{Plan: program.DefaultPlan()}

	if done := runProgramCmd(rec, context.Background(), runner, &pauseGate{}, 1)().(ProgramDoneMsg); done.Err != nil {
		t.Fatalf("unexpected error: %v", done.Err)
	}

	var lastLine string
	printed := 0
	for _, msg := range rec.msgs {
		switch m := msg.(type) {
		case LineMsg:
			lastLine = m.Line
		case StepMsg:
			if m.Step.Action != program.ActionPrinted && m.Step.Index != -1 {
				continue
			}
			if m.Step.Text != lastLine {
				t.Fatalf("step %d (%q) arrived before its line; last line was %q", m.Step.Index, m.Step.Text, lastLine)
			}
			printed++
		}
	}
	// Eight printed values plus the final done step.
	if printed != 9 {
		t.Errorf("saw %d printing steps, want 9", printed)
	}
}
