package hoard

// moveToFree handles a superblock that has just become entirely empty
// (block_type already set to FREE by the caller): push it to the head
// of h's free list, then consider donating to the global heap.
func (a *Allocator) moveToFree(h *heap, p *pageref) {
	h.pushFree(p, p, 1)
	a.moveToGlobal(h)
}

// moveToGlobal implements the donation policy: once there is more than
// one CPU heap and h has more than freeThreshold free superblocks, the
// head one is handed to the global heap so other CPUs can reuse it
// without extending the arena. The donor lock is released before the
// recipient lock is acquired — they are never held together.
func (a *Allocator) moveToGlobal(h *heap) {
	if a.numCPU <= 1 {
		return
	}

	h.freeLock.Lock()
	if h.nFree <= a.freeThreshold {
		h.freeLock.Unlock()
		return
	}
	p := listPopFront(&h.free)
	h.nFree--
	h.freeLock.Unlock()

	p.heapID = 0
	global := a.globalHeap()
	global.pushFree(p, p, 1)

	a.log.Debug("hoard: donated superblock to global heap")
}
