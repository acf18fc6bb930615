// Package cpuid supplies the CPU-enumeration contract the allocator core
// needs from its host: a processor count queried once at init, and a
// cheap per-call "which CPU am I on" hint used only modulo that count.
//
// Go exposes neither sched_getcpu(2) nor an equivalent portably without
// cgo, and callers only need a hint that need not be stable across
// calls — so RoundRobin hands out a lock-free, ever-increasing counter
// rather than a true affinity query. See the root package's DESIGN.md
// for the tradeoff this accepts.
package cpuid

import (
	"runtime"
	"sync/atomic"
)

// NumCPU reports the number of per-CPU heaps the allocator should
// create, defaulting to the machine's logical processor count.
func NumCPU() int { return runtime.NumCPU() }

// RoundRobin hands out an ever-increasing integer to approximate "the
// CPU this call is running on" for the purpose of heap sharding. Its
// zero value is ready to use.
type RoundRobin struct {
	next atomic.Uint64
}

// Current returns the next value in the round-robin sequence. Callers
// reduce it modulo their CPU count; the absolute value carries no
// meaning on its own.
func (r *RoundRobin) Current() int {
	return int(r.next.Add(1) - 1)
}
