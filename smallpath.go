package hoard

// tryPopSizeClass takes the head of h.sizeClass[class], pops one block
// off its free-list, and — if that empties it — migrates it to
// h.complete while still holding the size-class lock, acquiring
// h.completeLock in that fixed order.
func (h *heap) tryPopSizeClass(class int) (uintptr, bool) {
	h.sizeClassLock[class].Lock()
	p := h.sizeClass[class]
	if p == nil {
		h.sizeClassLock[class].Unlock()
		return 0, false
	}

	block := p.flist
	p.flist = block.next
	p.count--

	if p.count == 0 {
		listUnlink(&h.sizeClass[class], p)
		h.completeLock.Lock()
		listPushFront(&h.complete, p)
		h.completeLock.Unlock()
	}
	h.sizeClassLock[class].Unlock()

	return addrOfNode(block), true
}

// pushSizeClassHead inserts p at the head of h.sizeClass[class] under
// that class's lock.
func (h *heap) pushSizeClassHead(class int, p *pageref) {
	h.sizeClassLock[class].Lock()
	listPushFront(&h.sizeClass[class], p)
	h.sizeClassLock[class].Unlock()
}

// initSmallSuperblock carves a freshly obtained superblock (from the
// local free list, the global free list, or a brand-new arena
// extension) into classCapacity(class) equal blocks, detaches the
// free-list head (the last block built) for the caller, and links the superblock onto the head of
// h.sizeClass[class].
func (h *heap) initSmallSuperblock(p *pageref, class int) uintptr {
	cmax := classCapacity(class)
	size := sizeClasses[class]
	base := addrOf(p)

	// Build the intrusive free-list spanning all cmax blocks: block i's
	// first word points at block i-1, head points at the last block
	// built — the same tail-pointing-backward construction as
	// github.com/cznic/memory's newSharedPage/Malloc free-list chain.
	var head *freeNode
	for i := 0; i < cmax; i++ {
		n := nodeAt(blockAt(base, uintptr(i), size))
		n.next = head
		head = n
	}

	p.blockType = int32(class)
	p.heapID = h.id
	p.flist = head
	p.count = int32(cmax)

	block := p.flist
	p.flist = block.next
	p.count--

	h.pushSizeClassHead(class, p)

	return addrOfNode(block)
}
