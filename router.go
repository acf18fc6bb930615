// Package hoard implements a concurrent, multi-heap, size-class memory
// allocator in the style of Hoard, over a flat contiguous arena obtained
// from a monotonic "brk"-style extension primitive (internal/arena).
// It shards allocation across per-CPU heaps to cut contention and
// recycles whole superblocks through a shared global heap to bound
// fragmentation; see DESIGN.md for how each piece is grounded in the
// example corpus this package was written against.
package hoard

import (
	"go.uber.org/zap"

	"github.com/koko1996/Parallel-Memory-Allocator/internal/arena"
	"github.com/koko1996/Parallel-Memory-Allocator/internal/cpuid"
)

// Allocator is the allocator handle: heap 0 is the global heap, heaps
// 1..numCPU are per-CPU heaps. There is no package-level mutable
// global — every allocator instance owns its own arena and heap array,
// per the Design Notes' "pass an allocator handle explicitly" guidance.
type Allocator struct {
	arena         *arena.Arena
	heaps         []heap // len == numCPU+1
	numCPU        int
	rr            cpuid.RoundRobin
	arenaLock     spinLock
	freeThreshold int32
	log           *zap.Logger
}

// New reserves the arena, aligns it to a superblock boundary, queries
// the CPU count, and brings up every heap's lists and locks. It returns
// errNotInitialized (wrapped) if the arena could not be reserved;
// Allocate/Release on an Allocator from a failed New call are
// undefined, so callers must check the error.
func New(opts ...Option) (*Allocator, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		o.Logger = defaultLogger
	}

	ar, err := arena.New(o.ArenaCapacity)
	if err != nil {
		o.Logger.Error("hoard: arena reservation failed", zap.Error(err))
		return nil, wrapInit(err)
	}

	// Align the extension cursor to a superblock boundary so every
	// future Extend() returns a superblock-aligned address, preserving
	// the pageref-masking invariant.
	if padding := roundup(ar.Lo(), superblockSize) - ar.Lo(); padding > 0 {
		if _, err := ar.Extend(padding); err != nil {
			o.Logger.Error("hoard: superblock alignment padding failed", zap.Error(err))
			return nil, wrapInit(err)
		}
	}

	numCPU := o.NumCPU
	if numCPU <= 0 {
		numCPU = cpuid.NumCPU()
	}
	if numCPU < 1 {
		numCPU = 1
	}

	a := &Allocator{
		arena:         ar,
		heaps:         make([]heap, numCPU+1),
		numCPU:        numCPU,
		freeThreshold: int32(o.FreePageThreshold),
		log:           o.Logger,
	}
	for i := range a.heaps {
		a.heaps[i].id = int32(i)
	}

	a.log.Debug("hoard: allocator initialized",
		zap.Int("numCPU", numCPU),
		zap.Uintptr("arenaCapacity", o.ArenaCapacity),
		zap.Uintptr("dsegLo", ar.Lo()),
	)
	return a, nil
}

func wrapInit(cause error) error {
	if cause == nil {
		return errNotInitialized
	}
	return &initError{cause: cause}
}

type initError struct{ cause error }

func (e *initError) Error() string { return "hoard: allocator failed to initialize: " + e.cause.Error() }
func (e *initError) Unwrap() error { return errNotInitialized }

// globalHeap returns heap 0, the shared pool donated to by per-CPU
// heaps once their free-superblock count exceeds the configured
// threshold.
func (a *Allocator) globalHeap() *heap { return &a.heaps[0] }

// heapForCPU maps a CPU id to its owning heap: (cpu mod P) + 1. Heap 0
// is reserved for the shared pool and is never the target of a fresh
// allocation's owning heap.
func (a *Allocator) heapForCPU(cpu int) *heap {
	idx := cpu % a.numCPU
	if idx < 0 {
		idx += a.numCPU
	}
	return &a.heaps[idx+1]
}

// currentHeap picks the heap servicing the calling goroutine's
// allocation, using the cpuid round-robin hint described in
// internal/cpuid.
func (a *Allocator) currentHeap() *heap {
	return a.heapForCPU(a.rr.Current())
}

// extendArena grows the arena by n bytes under the single process-wide
// arena lock; it is the only lock that may be held across a potentially
// long operation.
func (a *Allocator) extendArena(n uintptr) (uintptr, error) {
	a.arenaLock.Lock()
	base, err := a.arena.Extend(n)
	a.arenaLock.Unlock()
	return base, err
}

// DsegLo and DsegHi expose the arena's observable bounds: every address
// Allocate ever returns lies in [DsegLo, DsegHi).
func (a *Allocator) DsegLo() uintptr { return a.arena.Lo() }
func (a *Allocator) DsegHi() uintptr { return a.arena.Hi() }

// Close releases the allocator's arena reservation back to the OS. Not
// necessary before process exit (mirrors github.com/cznic/memory's
// Allocator.Close doc comment).
func (a *Allocator) Close() error {
	return a.arena.Close()
}
