package hoard

import "go.uber.org/zap"

// Allocate routes requests larger than largestSmall to the
// large-allocation path; everything else is rounded up to its size
// class and served by the calling goroutine's current per-CPU heap. The
// returned address is always 8-byte aligned and, on success, satisfies
// dsegLo <= addr && addr+n <= dsegHi. On out-of-memory it returns
// (0, error) and leaves all allocator state unchanged.
func (a *Allocator) Allocate(n uintptr) (uintptr, error) {
	if n == 0 {
		n = 1
	}
	if n > largestSmall {
		return a.allocateLarge(n)
	}
	return a.allocateSmall(n)
}

func (a *Allocator) allocateSmall(n uintptr) (uintptr, error) {
	class := classFor(n)
	h := a.currentHeap()

	if addr, ok := h.tryPopSizeClass(class); ok {
		a.log.Debug("hoard: small allocation served from size-class list",
			zap.Int("class", class), zap.Int32("heap", h.id))
		return addr, nil
	}

	p := h.popFree()
	source := "local-free"
	if p == nil {
		p = a.globalHeap().popFree()
		source = "global-free"
	}
	if p == nil {
		base, err := a.extendArena(superblockSize)
		if err != nil {
			a.log.Debug("hoard: arena extension failed", zap.Error(err))
			return 0, errOutOfMemory
		}
		p = pagerefAt(base)
		source = "arena-extend"
	}

	addr := h.initSmallSuperblock(p, class)
	a.log.Debug("hoard: small allocation initialized a new superblock",
		zap.Int("class", class), zap.Int32("heap", h.id), zap.String("source", source))
	return addr, nil
}

// allocateLarge reserves k contiguous superblocks, where k is the
// fewest that can hold the pageref header plus n bytes, and hands the
// whole run to the calling heap's large list.
func (a *Allocator) allocateLarge(n uintptr) (uintptr, error) {
	k := (pagerefHeaderSize + n + superblockSize - 1) / superblockSize
	base, err := a.extendArena(k * superblockSize)
	if err != nil {
		a.log.Debug("hoard: large allocation out of memory", zap.Uintptr("requested", n), zap.Error(err))
		return 0, errOutOfMemory
	}

	h := a.currentHeap()
	p := pagerefAt(base)
	p.blockType = blockLarge
	p.count = int32(k)
	p.heapID = h.id

	h.largeLock.Lock()
	listPushFront(&h.large, p)
	h.largeLock.Unlock()

	a.log.Debug("hoard: large allocation", zap.Uintptr("bytes", n), zap.Uintptr("superblocks", k), zap.Int32("heap", h.id))
	return base + pagerefHeaderSize, nil
}

// Release(0) is a no-op, double-release is silently ignored, and
// releasing an interior or never-issued address is undefined behavior
// that this function does not attempt to detect.
func (a *Allocator) Release(addr uintptr) {
	if addr == 0 {
		return
	}
	p := pagerefOf(addr)
	switch p.blockType {
	case blockFree:
		a.log.Debug("hoard: ignoring double release", zap.Uintptr("addr", addr))
		return
	case blockLarge:
		a.releaseLarge(addr, p)
	default:
		a.releaseSmall(addr, p)
	}
}

// releaseSmall mutates p.flist/p.count under both the owning size-class
// lock and the complete-list lock, acquired in that fixed order to
// match the allocation path and avoid deadlock. p.count before this
// call is either 0 (p is on h.complete) or in (0, C_max(c)-1) (p is on
// h.sizeClass[c]); the two transition branches below are mutually
// exclusive for exactly that reason.
func (a *Allocator) releaseSmall(addr uintptr, p *pageref) {
	h := &a.heaps[p.heapID]
	class := int(p.blockType)
	cmax := int32(classCapacity(class))

	h.sizeClassLock[class].Lock()
	h.completeLock.Lock()

	node := nodeAt(addr)
	node.next = p.flist
	p.flist = node
	p.count++

	switch {
	case p.count == cmax:
		h.completeLock.Unlock()
		listUnlink(&h.sizeClass[class], p)
		h.sizeClassLock[class].Unlock()
		p.blockType = blockFree
		a.moveToFree(h, p)
	case p.count == 1:
		listUnlink(&h.complete, p)
		h.completeLock.Unlock()
		listPushFront(&h.sizeClass[class], p)
		h.sizeClassLock[class].Unlock()
	default:
		h.completeLock.Unlock()
		h.sizeClassLock[class].Unlock()
	}

	a.log.Debug("hoard: small release", zap.Int("class", class), zap.Int32("count", p.count), zap.Int32("heap", h.id))
}

func (a *Allocator) releaseLarge(addr uintptr, p *pageref) {
	h := &a.heaps[p.heapID]

	h.largeLock.Lock()
	listUnlink(&h.large, p)
	h.largeLock.Unlock()

	k := p.count
	base := addrOf(p)

	head := p
	head.blockType = blockFree
	head.prev = nil
	cur := head
	for i := int32(1); i < k; i++ {
		next := pagerefAt(base + uintptr(i)*superblockSize)
		next.blockType = blockFree
		next.heapID = head.heapID
		next.prev = cur
		cur.next = next
		cur = next
	}
	cur.next = nil

	h.pushFree(head, cur, k)
	a.log.Debug("hoard: large release split into superblocks", zap.Int32("count", k), zap.Int32("heap", h.id))
	a.moveToGlobal(h)
}
