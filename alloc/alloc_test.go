package alloc_test

import (
	"testing"

	fsim "github.com/ayraqutub/FileSystemSimulator"
	"github.com/ayraqutub/FileSystemSimulator/alloc"
	"github.com/boljen/go-bitmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlloc__FirstFitStartsAtBlockOne(t *testing.T) {
	freeMap := bitmap.New(fsim.TotalBlocks)

	start, ok := alloc.FindContiguous(freeMap, 3)
	require.True(t, ok)
	assert.Equal(t, 1, start)
}

// Block 0 is never allocatable even when its bit is clear.
func TestAlloc__NeverReturnsBlockZero(t *testing.T) {
	freeMap := bitmap.New(fsim.TotalBlocks)
	for block := 2; block <= fsim.MaxDataBlock; block++ {
		freeMap.Set(block, true)
	}

	start, ok := alloc.FindContiguous(freeMap, 1)
	require.True(t, ok)
	assert.Equal(t, 1, start)

	freeMap.Set(1, true)
	_, ok = alloc.FindContiguous(freeMap, 1)
	assert.False(t, ok)
}

func TestAlloc__SkipsTooSmallGaps(t *testing.T) {
	freeMap := bitmap.New(fsim.TotalBlocks)
	// Free gaps: [1,2], [5,7], [10,...]. A run of 3 must land at 5.
	freeMap.Set(3, true)
	freeMap.Set(4, true)
	freeMap.Set(8, true)
	freeMap.Set(9, true)

	start, ok := alloc.FindContiguous(freeMap, 3)
	require.True(t, ok)
	assert.Equal(t, 5, start)
}

func TestAlloc__RunMayEndAtLastBlock(t *testing.T) {
	freeMap := bitmap.New(fsim.TotalBlocks)
	for block := 1; block < 124; block++ {
		freeMap.Set(block, true)
	}

	start, ok := alloc.FindContiguous(freeMap, 4)
	require.True(t, ok)
	assert.Equal(t, 124, start)

	_, ok = alloc.FindContiguous(freeMap, 5)
	assert.False(t, ok)
}

func TestAlloc__FullLengthRun(t *testing.T) {
	freeMap := bitmap.New(fsim.TotalBlocks)

	start, ok := alloc.FindContiguous(freeMap, fsim.MaxFileBlocks)
	require.True(t, ok)
	assert.Equal(t, 1, start)
}

func TestAlloc__RejectsBadLengths(t *testing.T) {
	freeMap := bitmap.New(fsim.TotalBlocks)

	_, ok := alloc.FindContiguous(freeMap, 0)
	assert.False(t, ok)
	_, ok = alloc.FindContiguous(freeMap, fsim.MaxFileBlocks+1)
	assert.False(t, ok)
}

func TestAlloc__ReserveRelease(t *testing.T) {
	freeMap := bitmap.New(fsim.TotalBlocks)

	alloc.Reserve(freeMap, 5, 4)
	for block := 5; block <= 8; block++ {
		assert.Truef(t, freeMap.Get(block), "block %d should be reserved", block)
	}
	assert.False(t, freeMap.Get(4))
	assert.False(t, freeMap.Get(9))

	// The next fit must skip the reserved run.
	start, ok := alloc.FindContiguous(freeMap, 5)
	require.True(t, ok)
	assert.Equal(t, 9, start)

	alloc.Release(freeMap, 5, 4)
	start, ok = alloc.FindContiguous(freeMap, 5)
	require.True(t, ok)
	assert.Equal(t, 1, start)
}
