package hoard

import (
	"unsafe"
)

// superblockSize is the fixed unit the arena is carved into: two
// 4096-byte OS pages.
const superblockSize = uintptr(8192)

// superblockMask recovers a superblock's base address from any interior
// address via addr &^ superblockMask.
const superblockMask = superblockSize - 1

// alignment is the minimum block size and the alignment guarantee on
// every address Allocate returns.
const alignment = uintptr(8)

// Sentinel block_type values outside the 0..8 size-class range.
const (
	blockFree  int32 = -1
	blockLarge int32 = -2
)

// pageref is the per-superblock header. It is always the first bytes of
// the superblock it describes; recovering it from an interior address
// is the masking identity that makes Release run without an auxiliary
// map. Like github.com/cznic/memory's page/node types, it is overlaid
// directly onto raw arena bytes via unsafe.Pointer — no typed Go value
// ever lives on top of block memory while that memory is free or
// belongs to a different header.
type pageref struct {
	next, prev *pageref
	flist      *freeNode
	blockType  int32
	count      int32
	heapID     int32
	_          int32 // pad to 8-byte alignment; keeps headerSize a multiple of `alignment`
}

// freeNode is the intrusive free-list node carved out of a free block's
// first machine word, the same trick as github.com/cznic/memory's node
// type: a block is only ever read as a freeNode while it is on a
// superblock's flist, never both as data and as a list node at once.
type freeNode struct {
	next *freeNode
}

// pagerefHeaderSize is sizeof(pageref) rounded up to the allocator's
// alignment, matching github.com/cznic/memory's headerSize derivation
// (roundup(unsafe.Sizeof(page{}), mallocAllign)).
var pagerefHeaderSize = roundup(uintptr(unsafe.Sizeof(pageref{})), alignment)

func roundup(n, m uintptr) uintptr {
	return (n + m - 1) &^ (m - 1)
}

// pagerefAt overlays a pageref onto the superblock starting at addr.
func pagerefAt(addr uintptr) *pageref {
	return (*pageref)(unsafe.Pointer(addr))
}

// pagerefOf recovers the owning superblock's header from any address
// interior to it.
func pagerefOf(addr uintptr) *pageref {
	return pagerefAt(addr &^ superblockMask)
}

// addrOf returns the numeric address of a pageref's own superblock.
func addrOf(p *pageref) uintptr {
	return uintptr(unsafe.Pointer(p))
}

// blockAt returns the address of the i-th block (0-based) of a
// small-class superblock at base, for a class whose block size is size.
func blockAt(base uintptr, i uintptr, size uintptr) uintptr {
	return base + pagerefHeaderSize + i*size
}

// nodeAt overlays a freeNode onto a block address.
func nodeAt(addr uintptr) *freeNode {
	return (*freeNode)(unsafe.Pointer(addr))
}

// addrOfNode returns the numeric address of a freeNode's block.
func addrOfNode(n *freeNode) uintptr {
	return uintptr(unsafe.Pointer(n))
}

// bytesAt views n bytes starting at addr as a byte slice, for callers
// that need to read or write payload data directly (tests, callers
// copying into/out of an allocation).
func bytesAt(addr, n uintptr) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), int(n))
}
