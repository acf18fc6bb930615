package hoard

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestPagerefMaskingRecoversHeader(t *testing.T) {
	buf := make([]byte, 3*superblockSize)
	base := alignedBase(buf, superblockSize)
	p := pagerefAt(base)
	p.blockType = 4
	p.count = 7

	for _, off := range []uintptr{0, 1, pagerefHeaderSize, superblockSize - 1} {
		got := pagerefOf(base + off)
		require.Same(t, p, got, "offset %d did not recover the header", off)
	}
}

func TestPagerefHeaderSizeIsAligned(t *testing.T) {
	require.Zero(t, pagerefHeaderSize%alignment)
	require.Greater(t, pagerefHeaderSize, uintptr(0))
}

func TestBlockAtLaysOutContiguousEqualSlots(t *testing.T) {
	const size = uintptr(32)
	base := uintptr(0x10000)
	for i := uintptr(0); i < 4; i++ {
		got := blockAt(base, i, size)
		want := base + pagerefHeaderSize + i*size
		require.Equal(t, want, got)
	}
}

func TestClassCapacityFitsWithinSuperblock(t *testing.T) {
	for c := 0; c < numSizeClasses; c++ {
		cap := classCapacity(c)
		require.Greater(t, cap, 0)
		used := pagerefHeaderSize + uintptr(cap)*sizeClasses[c]
		require.LessOrEqual(t, used, superblockSize)
	}
}

func TestClassForMonotonic(t *testing.T) {
	prev := -1
	for n := uintptr(1); n <= largestSmall; n *= 2 {
		c := classFor(n)
		require.GreaterOrEqual(t, c, prev)
		require.Less(t, c, numSizeClasses)
		prev = c
	}
}

// alignedBase returns the first address at or after buf's start that is
// a multiple of align, for header-overlay tests that need a real
// writable region rather than an arbitrary uintptr. It does not check
// how much of buf remains past that address; callers size buf for it.
func alignedBase(buf []byte, align uintptr) uintptr {
	start := uintptr(unsafe.Pointer(&buf[0]))
	return roundup(start, align)
}
