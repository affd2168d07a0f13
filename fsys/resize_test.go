package fsys_test

import (
	"testing"

	fsim "github.com/ayraqutub/FileSystemSimulator"
	"github.com/ayraqutub/FileSystemSimulator/errors"
	fsimtest "github.com/ayraqutub/FileSystemSimulator/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeBlocks fills each block of a file with a distinct marker byte.
func writeBlocks(t *testing.T, session interface {
	SetBuffer([]byte)
	WriteBlock(string, int) error
}, name string, size int, seed byte) {
	t.Helper()
	for block := 0; block < size; block++ {
		session.SetBuffer(fsimtest.FillBlock(seed + byte(block)))
		require.NoError(t, session.WriteBlock(name, block))
	}
}

// readBlockEquals asserts one block of a file reads back a given marker.
func readBlockEquals(t *testing.T, session interface {
	SetBuffer([]byte)
	ReadBlock(string, int) error
	Buffer() []byte
}, name string, block int, seed byte) {
	t.Helper()
	session.SetBuffer(nil)
	require.NoError(t, session.ReadBlock(name, block))
	assert.Equalf(t, fsimtest.FillBlock(seed), session.Buffer(),
		"%s block %d has wrong contents", name, block)
}

func TestResize__GrowInPlace(t *testing.T) {
	session, image := fsimtest.MountBlank(t)
	require.NoError(t, session.Create("f", 2)) // blocks 1-2
	writeBlocks(t, session, "f", 2, 0x10)

	require.NoError(t, session.Resize("f", 5))
	checkConsistent(t, image)

	// Start block unchanged, run extended to 1-5.
	for block := 1; block <= 5; block++ {
		assert.True(t, fsimtest.FreeBitSet(image, block))
	}
	readBlockEquals(t, session, "f", 0, 0x10)
	readBlockEquals(t, session, "f", 1, 0x11)

	// The new tail blocks are addressable.
	session.SetBuffer(fsimtest.FillBlock(0x14))
	require.NoError(t, session.WriteBlock("f", 4))
}

// Growth with occupied trailing blocks relocates to the first
// fitting run, which may overlap the old position.
func TestResize__GrowRelocates(t *testing.T) {
	session, image := fsimtest.MountBlank(t)

	require.NoError(t, session.Create("pad", 4))  // blocks 1-4
	require.NoError(t, session.Create("f", 4))    // blocks 5-8
	require.NoError(t, session.Create("tail", 3)) // blocks 9-11
	writeBlocks(t, session, "f", 4, 0x20)
	require.NoError(t, session.Delete("pad")) // frees 1-4

	require.NoError(t, session.Resize("f", 6))
	checkConsistent(t, image)

	// Relocated to blocks 1-6; old blocks 7-8 are free and zeroed.
	for block := 1; block <= 6; block++ {
		assert.Truef(t, fsimtest.FreeBitSet(image, block), "bit %d should be set", block)
	}
	assert.False(t, fsimtest.FreeBitSet(image, 7))
	assert.False(t, fsimtest.FreeBitSet(image, 8))
	assert.Equal(t, make([]byte, fsim.BlockSize), fsimtest.BlockBytes(image, 7))
	assert.Equal(t, make([]byte, fsim.BlockSize), fsimtest.BlockBytes(image, 8))

	for block := 0; block < 4; block++ {
		readBlockEquals(t, session, "f", block, byte(0x20+block))
	}
}

func TestResize__GrowRelocatesToDisjointRun(t *testing.T) {
	session, image := fsimtest.MountBlank(t)

	require.NoError(t, session.Create("a", 1)) // block 1
	require.NoError(t, session.Create("f", 2)) // blocks 2-3
	require.NoError(t, session.Create("b", 1)) // block 4
	writeBlocks(t, session, "f", 2, 0x30)

	// Free run starts at 5; in-place is blocked by "b", the run at 5 wins.
	require.NoError(t, session.Resize("f", 4))
	checkConsistent(t, image)

	assert.False(t, fsimtest.FreeBitSet(image, 2))
	assert.False(t, fsimtest.FreeBitSet(image, 3))
	for block := 5; block <= 8; block++ {
		assert.True(t, fsimtest.FreeBitSet(image, block))
	}
	readBlockEquals(t, session, "f", 0, 0x30)
	readBlockEquals(t, session, "f", 1, 0x31)
}

func TestResize__CannotExpandLeavesFileUntouched(t *testing.T) {
	session, image := fsimtest.MountBlank(t)

	require.NoError(t, session.Create("f", 2)) // blocks 1-2
	require.NoError(t, session.Create("wall", 125))
	writeBlocks(t, session, "f", 2, 0x40)

	err := session.Resize("f", 3)
	require.Error(t, err)
	fsErr := err.(errors.Error)
	assert.Equal(t, errors.CannotExpand, fsErr.Code())
	assert.Equal(t, "f", fsErr.Subject())
	assert.Equal(t, 3, fsErr.Detail())
	checkConsistent(t, image)

	// Nothing moved, nothing lost.
	assert.True(t, fsimtest.FreeBitSet(image, 1))
	assert.True(t, fsimtest.FreeBitSet(image, 2))
	readBlockEquals(t, session, "f", 0, 0x40)
	readBlockEquals(t, session, "f", 1, 0x41)
	err = session.ReadBlock("f", 2)
	assert.Equal(t, errors.BlockOutOfRange, errors.CodeOf(err))
}

func TestResize__Shrink(t *testing.T) {
	session, image := fsimtest.MountBlank(t)
	require.NoError(t, session.Create("f", 4)) // blocks 1-4
	writeBlocks(t, session, "f", 4, 0x50)

	require.NoError(t, session.Resize("f", 2))
	checkConsistent(t, image)

	// Head intact, tail released and zeroed on disk.
	readBlockEquals(t, session, "f", 0, 0x50)
	readBlockEquals(t, session, "f", 1, 0x51)
	assert.False(t, fsimtest.FreeBitSet(image, 3))
	assert.False(t, fsimtest.FreeBitSet(image, 4))
	assert.Equal(t, make([]byte, fsim.BlockSize), fsimtest.BlockBytes(image, 3))
	assert.Equal(t, make([]byte, fsim.BlockSize), fsimtest.BlockBytes(image, 4))

	err := session.ReadBlock("f", 2)
	assert.Equal(t, errors.BlockOutOfRange, errors.CodeOf(err))
}

func TestResize__SameSizeIsNoOp(t *testing.T) {
	session, image := fsimtest.MountBlank(t)
	require.NoError(t, session.Create("f", 2))
	writeBlocks(t, session, "f", 2, 0x60)

	require.NoError(t, session.Resize("f", 2))
	checkConsistent(t, image)
	readBlockEquals(t, session, "f", 0, 0x60)
	readBlockEquals(t, session, "f", 1, 0x61)
}

func TestResize__NameResolution(t *testing.T) {
	session, _ := fsimtest.MountBlank(t)
	require.NoError(t, session.Create("dir", 0))

	err := session.Resize("ghost", 2)
	assert.Equal(t, errors.NotFound, errors.CodeOf(err))
	err = session.Resize("dir", 2)
	assert.Equal(t, errors.NotAFile, errors.CodeOf(err))
}

// Growing into space freed by a shrink exercises both paths back to back.
func TestResize__ShrinkThenRegrow(t *testing.T) {
	session, image := fsimtest.MountBlank(t)
	require.NoError(t, session.Create("f", 3))
	writeBlocks(t, session, "f", 3, 0x70)

	require.NoError(t, session.Resize("f", 1))
	require.NoError(t, session.Resize("f", 3))
	checkConsistent(t, image)

	readBlockEquals(t, session, "f", 0, 0x70)
	// Regrown tail blocks were zeroed on release.
	readBlockEquals(t, session, "f", 1, 0x00)
	readBlockEquals(t, session, "f", 2, 0x00)
}
