// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package health

import (
	"runtime"

	"github.com/c9s/goprocinfo/linux"
)

const (
	CurrentMemoryUtilizationAlloc   Stat = "CurrentMemoryUtilizationAlloc"
	CurrentMemoryUtilizationHeapSys Stat = "CurrentMemoryUtilizationHeapSys"
	CurrentMemoryUtilizationActive  Stat = "CurrentMemoryUtilizationActive"
	MaxMemoryUtilizationAlloc       Stat = "MaxMemoryUtilizationAlloc"
	MaxMemoryUtilizationHeapSys     Stat = "MaxMemoryUtilizationHeapSys"
	MaxMemoryUtilizationActive      Stat = "MaxMemoryUtilizationActive"

	// DefaultMemInfoLocation is where linux exposes host memory information
	DefaultMemInfoLocation = "/proc/meminfo"
)

var memoryStats = []Option{
	CurrentMemoryUtilizationAlloc,
	CurrentMemoryUtilizationHeapSys,
	CurrentMemoryUtilizationActive,
	MaxMemoryUtilizationAlloc,
	MaxMemoryUtilizationHeapSys,
	MaxMemoryUtilizationActive,
}

// MemInfoReader reads host memory information from a linux meminfo file.  On hosts
// without one, Read simply fails and only the runtime stats are tracked.
type MemInfoReader struct {
	Location string
}

func (r *MemInfoReader) Read() (*linux.MemInfo, error) {
	location := DefaultMemInfoLocation
	if r != nil && len(r.Location) > 0 {
		location = r.Location
	}

	return linux.ReadMemInfo(location)
}

// track sets the current stat and raises the max stat to match when it is exceeded.
func (s Stats) track(current, max Stat, value int) {
	s[current] = value
	if value > s[max] {
		s[max] = value
	}
}

// UpdateMemInfo records the host's active memory in bytes.
func (s Stats) UpdateMemInfo(memInfo *linux.MemInfo) {
	s.track(CurrentMemoryUtilizationActive, MaxMemoryUtilizationActive, int(memInfo.Active*1024))
}

// UpdateMemStats records the runtime's allocated and heap memory.
func (s Stats) UpdateMemStats(memStats *runtime.MemStats) {
	s.track(CurrentMemoryUtilizationAlloc, MaxMemoryUtilizationAlloc, int(memStats.Alloc))
	s.track(CurrentMemoryUtilizationHeapSys, MaxMemoryUtilizationHeapSys, int(memStats.HeapSys))
}

// UpdateMemory refreshes every memory stat.  Host memory is skipped when r cannot be read.
func (s Stats) UpdateMemory(r *MemInfoReader) {
	if memInfo, err := r.Read(); err == nil {
		s.UpdateMemInfo(memInfo)
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	s.UpdateMemStats(&memStats)
}
