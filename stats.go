package hoard

// Stats is a read-only snapshot of allocator usage, the one piece of
// instrumentation this repository adds beyond the original a2alloc.c
// (see SPEC_FULL.md's "Supplemented Features"). It is purely additive:
// computing it never mutates allocator state, and nothing about
// Allocate/Release depends on it.
type Stats struct {
	DsegLo, DsegHi uintptr
	ArenaCapacity  uintptr
	NumCPU         int

	// GlobalFreeSuperblocks is the global heap's free-list length.
	GlobalFreeSuperblocks int32

	// PerHeapFreeSuperblocks[i] is heap i+1's free-list length.
	PerHeapFreeSuperblocks []int32

	// OutstandingSuperblocks[c] counts small-class superblocks
	// currently on any heap's size_class[c] or complete list, summed
	// across every heap.
	OutstandingSuperblocks [numSizeClasses]int
}

// Stats walks every list under its lock and returns a point-in-time
// snapshot. It is safe to call concurrently with Allocate/Release, but
// under heavy concurrent mutation the numbers may not all reflect the
// exact same instant.
func (a *Allocator) Stats() Stats {
	s := Stats{
		DsegLo:                 a.arena.Lo(),
		DsegHi:                 a.arena.Hi(),
		ArenaCapacity:          a.arena.Cap(),
		NumCPU:                 a.numCPU,
		PerHeapFreeSuperblocks: make([]int32, a.numCPU),
	}

	g := a.globalHeap()
	g.freeLock.Lock()
	s.GlobalFreeSuperblocks = g.nFree
	g.freeLock.Unlock()

	for i := 0; i < a.numCPU; i++ {
		h := &a.heaps[i+1]

		h.freeLock.Lock()
		s.PerHeapFreeSuperblocks[i] = h.nFree
		h.freeLock.Unlock()

		for c := 0; c < numSizeClasses; c++ {
			h.sizeClassLock[c].Lock()
			for p := h.sizeClass[c]; p != nil; p = p.next {
				s.OutstandingSuperblocks[c]++
			}
			h.sizeClassLock[c].Unlock()
		}

		h.completeLock.Lock()
		for p := h.complete; p != nil; p = p.next {
			s.OutstandingSuperblocks[int(p.blockType)]++
		}
		h.completeLock.Unlock()
	}

	return s
}
