package hoard

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func newTestPageref(id int32) *pageref {
	buf := make([]byte, superblockSize)
	p := pagerefAt(uintptr(unsafe.Pointer(&buf[0])))
	p.heapID = id
	return p
}

func TestListPushPopFrontOrder(t *testing.T) {
	var head *pageref
	a, b, c := newTestPageref(1), newTestPageref(2), newTestPageref(3)

	listPushFront(&head, a)
	listPushFront(&head, b)
	listPushFront(&head, c)

	require.Same(t, c, listPopFront(&head))
	require.Same(t, b, listPopFront(&head))
	require.Same(t, a, listPopFront(&head))
	require.Nil(t, listPopFront(&head))
}

func TestListUnlinkMiddle(t *testing.T) {
	var head *pageref
	a, b, c := newTestPageref(1), newTestPageref(2), newTestPageref(3)
	listPushFront(&head, a)
	listPushFront(&head, b)
	listPushFront(&head, c) // head: c -> b -> a

	listUnlink(&head, b)

	require.Same(t, c, head)
	require.Same(t, a, head.next)
	require.Nil(t, a.next)
	require.Nil(t, b.next)
	require.Nil(t, b.prev)
}

func TestHeapPopFreeTracksCount(t *testing.T) {
	var h heap
	p := newTestPageref(0)
	h.pushFree(p, p, 1)
	require.EqualValues(t, 1, h.nFree)

	got := h.popFree()
	require.Same(t, p, got)
	require.EqualValues(t, 0, h.nFree)
	require.Nil(t, h.popFree())
}

func TestHeapPushFreeSplicesSubList(t *testing.T) {
	var h heap
	a, b := newTestPageref(0), newTestPageref(0)
	a.next = b
	b.prev = a

	h.pushFree(a, b, 2)
	require.EqualValues(t, 2, h.nFree)
	require.Same(t, a, h.free)
	require.Same(t, b, h.free.next)
}
