// Package sysmon samples system-wide CPU and memory usage for the program
// viewer header and the server health endpoint.
package sysmon

import (
	"context"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats is one snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 `json:"cpu_percent"` // 0.0 .. 100.0
	MemPercent float64 `json:"mem_percent"` // 0.0 .. 100.0
	MemTotal   uint64  `json:"mem_total"`
	LogicalCPU int     `json:"logical_cpus"`
}

// Sample collects a snapshot with a background context.
func Sample() Stats {
	return SampleContext(context.Background())
}

// SampleContext collects a snapshot. CPU usage is the delta since the
// previous call. Fields that cannot be read stay zero.
func SampleContext(ctx context.Context) Stats {
	var s Stats
	if pcts, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = pcts[0]
	}
	if vmem, err := mem.VirtualMemoryWithContext(ctx); err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
		s.MemTotal = vmem.Total
	}
	if n, err := cpu.CountsWithContext(ctx, true); err == nil {
		s.LogicalCPU = n
	}
	return s
}
