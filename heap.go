package hoard

// cacheLinePad is a generous guess at the host's cache line size. The
// trailing padding field below exists purely to keep adjacent heaps in
// the allocator's []heap array from sharing a cache line, the same
// concern the original C struct heap documents ("padded to fit in 3
// cache lines... without the padding the size of this struct is 152
// bytes").
const cacheLinePad = 64

// heap is one of the P+1 per-CPU (or, for id 0, global) heaps. Every
// list it owns — free, complete, large, and the nine size-class lists —
// has its own spinLock.
type heap struct {
	id int32

	freeLock spinLock
	free     *pageref
	nFree    int32

	completeLock spinLock
	complete     *pageref

	largeLock spinLock
	large     *pageref

	sizeClassLock [numSizeClasses]spinLock
	sizeClass     [numSizeClasses]*pageref

	_ [cacheLinePad]byte
}

// popFree detaches and returns the head of the free list, or nil.
func (h *heap) popFree() *pageref {
	h.freeLock.Lock()
	p := listPopFront(&h.free)
	if p != nil {
		h.nFree--
	}
	h.freeLock.Unlock()
	return p
}

// pushFree adds superblock sub-list [head..tail] (already linked
// through next/prev, tail.next == nil) to the head of the free list and
// bumps nFree by count.
func (h *heap) pushFree(head, tail *pageref, count int32) {
	h.freeLock.Lock()
	head.prev = nil
	tail.next = h.free
	if h.free != nil {
		h.free.prev = tail
	}
	h.free = head
	h.nFree += count
	h.freeLock.Unlock()
}
