// Package metrics reads runtime memory statistics around a calculation.
package metrics

import (
	"runtime"
	"time"
)

// MemorySnapshot is a point-in-time reading of the Go runtime.
type MemorySnapshot struct {
	Taken        time.Time
	HeapAlloc    uint64 // bytes in use
	TotalAlloc   uint64 // cumulative bytes allocated
	Sys          uint64 // bytes obtained from the OS
	NumGC        uint32
	PauseTotalNs uint64
	Goroutines   int
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector returns a collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads the current statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		Taken:        time.Now(),
		HeapAlloc:    m.HeapAlloc,
		TotalAlloc:   m.TotalAlloc,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
		Goroutines:   runtime.NumGoroutine(),
	}
}

// MemoryDelta is what happened between two snapshots.
type MemoryDelta struct {
	Allocated    uint64 // bytes allocated in between
	PeakHeap     uint64 // larger of the two heap readings
	GCCycles     uint32
	PauseTotalNs uint64
	Elapsed      time.Duration
}

// Delta compares a snapshot taken before a calculation with one taken after.
func Delta(before, after MemorySnapshot) MemoryDelta {
	d := MemoryDelta{
		PeakHeap: max(before.HeapAlloc, after.HeapAlloc),
		Elapsed:  after.Taken.Sub(before.Taken),
	}
	if after.TotalAlloc >= before.TotalAlloc {
		d.Allocated = after.TotalAlloc - before.TotalAlloc
	}
	if after.NumGC >= before.NumGC {
		d.GCCycles = after.NumGC - before.NumGC
	}
	if after.PauseTotalNs >= before.PauseTotalNs {
		d.PauseTotalNs = after.PauseTotalNs - before.PauseTotalNs
	}
	return d
}
