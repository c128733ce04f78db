package tui

import (
	"math/big"
	"strings"
	"testing"
	"time"
)

func TestChartModel_AddValue(t *testing.T) {
	chart := NewChartModel()
	chart.SetSize(50, 12)

	chart.AddValue(big.NewInt(1))
	chart.AddValue(big.NewInt(610))
	chart.AddValue(nil)

	if len(chart.bits) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(chart.bits))
	}
	if chart.last.Int64() != 610 {
		t.Errorf("expected last 610, got %s", chart.last)
	}
}

func TestChartModel_Normalized(t *testing.T) {
	chart := NewChartModel()
	chart.AddValue(big.NewInt(1))   // 1 bit
	chart.AddValue(big.NewInt(255)) // 8 bits

	got := chart.normalized()
	if got[0] != 12.5 || got[1] != 100 {
		t.Errorf("normalized = %v, want [12.5 100]", got)
	}
}

func TestChartModel_Normalized_Zero(t *testing.T) {
	chart := NewChartModel()
	chart.AddValue(big.NewInt(0))

	got := chart.normalized()
	if len(got) != 1 || got[0] != 0 {
		t.Errorf("normalized = %v, want [0]", got)
	}
}

func TestChartModel_Reset(t *testing.T) {
	chart := NewChartModel()
	chart.AddValue(big.NewInt(5))
	chart.UpdateSysStats(25.0, 60.0)
	chart.SetDone(time.Second)

	chart.Reset()

	if len(chart.bits) != 0 || chart.last != nil {
		t.Error("expected values to be cleared after reset")
	}
	if chart.cpuHistory.Len() != 0 {
		t.Error("expected cpuHistory to be empty after reset")
	}
	if chart.memHistory.Len() != 0 {
		t.Error("expected memHistory to be empty after reset")
	}
	if chart.done {
		t.Error("expected done to be cleared after reset")
	}
}

func TestChartModel_View(t *testing.T) {
	chart := NewChartModel()
	chart.SetSize(50, 14)
	chart.AddValue(big.NewInt(13))
	chart.AddValue(big.NewInt(34))

	view := chart.View()
	for _, want := range []string{"Printed values", "Last:", "34 (6 bits)", "Bits", "CPU", "MEM"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestChartModel_View_Empty(t *testing.T) {
	chart := NewChartModel()
	chart.SetSize(40, 12)

	view := chart.View()
	if !strings.Contains(view, "Last: -") {
		t.Error("expected placeholder for missing last value")
	}
}

func TestChartModel_View_Done(t *testing.T) {
	chart := NewChartModel()
	chart.SetSize(60, 12)
	chart.SetDone(2 * time.Second)

	if !strings.Contains(chart.View(), "finished in") {
		t.Error("expected finished title once done")
	}
}

func TestChartModel_UpdateSysStats(t *testing.T) {
	chart := NewChartModel()
	chart.SetSize(50, 15)

	chart.UpdateSysStats(25.0, 60.0)
	chart.UpdateSysStats(30.0, 62.0)

	if chart.cpuHistory.Len() != 2 {
		t.Errorf("expected 2 cpu samples, got %d", chart.cpuHistory.Len())
	}
	if chart.memHistory.Len() != 2 {
		t.Errorf("expected 2 mem samples, got %d", chart.memHistory.Len())
	}
	if chart.cpuHistory.Latest() != 30.0 {
		t.Errorf("expected last cpu 30.0, got %f", chart.cpuHistory.Latest())
	}
	if chart.memHistory.Latest() != 62.0 {
		t.Errorf("expected last mem 62.0, got %f", chart.memHistory.Latest())
	}
}

func TestChartModel_SetSize_ResizesBuffers(t *testing.T) {
	chart := NewChartModel()
	chart.SetSize(50, 15)

	expectedWidth := 50 - 16
	if chart.cpuHistory.Limit() != expectedWidth {
		t.Errorf("expected cpu buffer cap %d, got %d", expectedWidth, chart.cpuHistory.Limit())
	}
	if chart.memHistory.Limit() != expectedWidth {
		t.Errorf("expected mem buffer cap %d, got %d", expectedWidth, chart.memHistory.Limit())
	}
}

func TestChartModel_SetSize_TooNarrowKeepsBuffers(t *testing.T) {
	chart := NewChartModel()
	chart.SetSize(10, 15)

	if chart.cpuHistory.Limit() != sysHistoryLen {
		t.Errorf("expected cap %d, got %d", sysHistoryLen, chart.cpuHistory.Limit())
	}
}
