package sysmon

import (
	"context"
	"testing"
)

func TestSample_ReturnsValidRanges(t *testing.T) {
	s := Sample()
	if s.CPUPercent < 0 || s.CPUPercent > 100 {
		t.Errorf("CPUPercent out of range: %f", s.CPUPercent)
	}
	if s.MemPercent < 0 || s.MemPercent > 100 {
		t.Errorf("MemPercent out of range: %f", s.MemPercent)
	}
}

func TestSampleContext_ReadsMemory(t *testing.T) {
	s := SampleContext(context.Background())
	if s.MemPercent == 0 || s.MemTotal == 0 {
		t.Errorf("expected memory readings on a running system, got %+v", s)
	}
	if s.LogicalCPU < 1 {
		t.Errorf("LogicalCPU = %d, want >= 1", s.LogicalCPU)
	}
}
