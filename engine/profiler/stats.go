package profiler

import "runtime"

// MemStats is the subset of runtime.MemStats shown in the stats panel.
type MemStats struct {
	HeapAlloc uint64 // bytes of allocated heap objects
	Mallocs   uint64 // cumulative heap allocations
	NumGC     uint32
}

// Memory reads the runtime memory counters. It stops the world briefly, so
// call it at most once per frame.
func Memory() MemStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemStats{HeapAlloc: m.HeapAlloc, Mallocs: m.Mallocs, NumGC: m.NumGC}
}

func NumGoroutine() int { return runtime.NumGoroutine() }
