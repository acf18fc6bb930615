package hoard

import (
	"math"
	"sync"
	"testing"

	"github.com/cznic/mathutil"
	"github.com/stretchr/testify/require"
)

// This is the allocator's adaptation of github.com/cznic/memory's
// all_test.go fuzz harness: a deterministic, shuffled sequence of sizes
// (via mathutil.FC32) drives allocate-fill-verify-free cycles. The
// teacher runs this single-threaded against one Allocator; here every
// simulated CPU gets its own FC32 sequence and runs concurrently
// against one shared Allocator, since that concurrent multi-heap
// behavior is this allocator's whole point.
const fuzzQuota = 4 << 20 // bytes requested per simulated CPU

func fuzzOneCPU(t *testing.T, a *Allocator, seed int32, maxSize int) {
	rem := fuzzQuota
	var allocated [][2]uintptr // addr, size
	rng, err := mathutil.NewFC32(1, math.MaxInt32, true)
	require.NoError(t, err)
	rng.Seed(seed)
	pos := rng.Pos()

	for rem > 0 {
		size := uintptr(rng.Next()%maxSize + 1)
		rem -= int(size)
		addr, err := a.Allocate(size)
		require.NoError(t, err)
		require.Zero(t, addr%alignment, "address %#x not aligned", addr)
		require.GreaterOrEqual(t, addr, a.DsegLo())
		require.LessOrEqual(t, addr+size, a.DsegHi())
		allocated = append(allocated, [2]uintptr{addr, size})
		fill(addr, size, rng)
	}

	rng.Seek(pos)
	for _, e := range allocated {
		addr, size := e[0], e[1]
		expectedSize := uintptr(rng.Next()%maxSize + 1)
		require.Equal(t, expectedSize, size)
		verify(t, addr, size, rng)
	}

	for _, e := range allocated {
		a.Release(e[0])
	}
}

func fill(addr, size uintptr, rng *mathutil.FC32) {
	b := bytesAt(addr, size)
	for i := range b {
		b[i] = byte(rng.Next())
	}
}

func verify(t *testing.T, addr, size uintptr, rng *mathutil.FC32) {
	b := bytesAt(addr, size)
	for i, g := range b {
		e := byte(rng.Next())
		require.Equalf(t, e, g, "byte %d at %#x", i, addr)
	}
}

func TestFuzzSingleCPUSmall(t *testing.T) {
	a, err := New(WithNumCPU(1), WithArenaCapacity(1<<26))
	require.NoError(t, err)
	defer a.Close()
	fuzzOneCPU(t, a, 42, 2*4096)
}

func TestFuzzSingleCPULarge(t *testing.T) {
	a, err := New(WithNumCPU(1), WithArenaCapacity(1<<26))
	require.NoError(t, err)
	defer a.Close()
	fuzzOneCPU(t, a, 43, 2*int(superblockSize))
}

func TestFuzzMultiCPUConcurrent(t *testing.T) {
	const cpus = 4
	a, err := New(WithNumCPU(cpus), WithArenaCapacity(1<<27))
	require.NoError(t, err)
	defer a.Close()

	var wg sync.WaitGroup
	wg.Add(cpus)
	for i := 0; i < cpus; i++ {
		seed := int32(100 + i)
		go func() {
			defer wg.Done()
			fuzzOneCPU(t, a, seed, 4096)
		}()
	}
	wg.Wait()
}
