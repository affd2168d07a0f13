// Package alloc implements the contiguous block allocator.
//
// Allocation state is the superblock's free-space bitmap; this package only
// manipulates bits. Callers own the corresponding physical blocks: releasing
// a run obliges the caller to zero those blocks on disk.
package alloc

import (
	fsim "github.com/ayraqutub/FileSystemSimulator"
	"github.com/boljen/go-bitmap"
)

// FindContiguous scans data blocks 1..127 in ascending order and returns the
// start of the first run of `length` consecutive free blocks. The second
// return value is false if no such run exists.
//
// First-fit from the lowest block number is a hard guarantee, not a policy
// choice: resize relocation and defragmentation both depend on it for
// deterministic placement.
func FindContiguous(freeMap bitmap.Bitmap, length int) (int, bool) {
	if length < 1 || length > fsim.MaxFileBlocks {
		return 0, false
	}

	runSize := 0
	runStart := 0
	for block := fsim.MinDataBlock; block <= fsim.MaxDataBlock; block++ {
		if freeMap.Get(block) {
			runSize = 0
			continue
		}
		if runSize == 0 {
			runStart = block
		}
		runSize++
		if runSize == length {
			return runStart, true
		}
	}
	return 0, false
}

// Reserve marks the run of `length` blocks starting at `start` as allocated.
func Reserve(freeMap bitmap.Bitmap, start, length int) {
	for block := start; block < start+length; block++ {
		freeMap.Set(block, true)
	}
}

// Release marks the run of `length` blocks starting at `start` as free. The
// caller must zero the physical blocks.
func Release(freeMap bitmap.Bitmap, start, length int) {
	for block := start; block < start+length; block++ {
		freeMap.Set(block, false)
	}
}
