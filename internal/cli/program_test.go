package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/agbru/seqcalc/internal/program"
	"github.com/agbru/seqcalc/internal/ui"
)

func TestRunProgram_DefaultOutput(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	res, err := RunProgram(context.Background(), program.Runner{Plan: program.DefaultPlan()}, false, &buf)
	if err != nil {
		t.Fatalf("RunProgram error: %v", err)
	}
	want := "1\n2\n5\n13\n34\n89\n233\n610\nDone\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
	if len(res.Printed()) != 8 {
		t.Errorf("printed %d values, want 8", len(res.Printed()))
	}
}

func TestRunProgram_Trace(t *testing.T) {
	ui.InitTheme(true)
	var buf bytes.Buffer
	plan := program.Plan{Start: 0, Limit: 6, Step: 1, SkipEven: true, BreakAt: 5}
	if _, err := RunProgram(context.Background(), program.Runner{Plan: plan}, true, &buf); err != nil {
		t.Fatalf("RunProgram error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"--- Trace ---", "i=0   skipped", "i=1   printed 1", "i=5   break", "2 printed, 6 visited."} {
		if !strings.Contains(out, want) {
			t.Errorf("trace should contain %q, got:\n%s", want, out)
		}
	}
}

func TestRunProgram_BadPattern(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	runner := program.Runner{Plan: program.DefaultPlan(), Pattern: "{} and {}"}
	if _, err := RunProgram(context.Background(), runner, true, &buf); err == nil {
		t.Error("expected a format error")
	}
	if strings.Contains(buf.String(), "Trace") {
		t.Error("no trace should be printed after an error")
	}
}
