// Package testing provides disk-image fixtures for tests: blank and
// hand-corrupted volumes backed by in-memory streams.
package testing

import (
	"io"
	"testing"

	fsim "github.com/ayraqutub/FileSystemSimulator"
	"github.com/ayraqutub/FileSystemSimulator/blockdev"
	"github.com/ayraqutub/FileSystemSimulator/fsys"
	"github.com/ayraqutub/FileSystemSimulator/superblock"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"
)

// BlankImage returns a zeroed full-size volume image. An all-zero superblock
// is a valid empty filesystem.
func BlankImage() []byte {
	return make([]byte, fsim.VolumeSize)
}

// ImageStream wraps raw image bytes in a fixed-size in-memory stream. Writes
// through the stream mutate `image` directly, so tests can assert on raw
// on-disk bytes after running operations.
func ImageStream(image []byte) io.ReadWriteSeeker {
	return bytesextra.NewReadWriteSeeker(image)
}

// ImageDevice wraps raw image bytes in a block device named "disk0".
func ImageDevice(image []byte) *blockdev.Device {
	return blockdev.New(ImageStream(image), "disk0")
}

// ImageWithSuperblock returns a blank image whose block 0 holds the given
// superblock.
func ImageWithSuperblock(t *testing.T, sb *superblock.Superblock) []byte {
	t.Helper()
	image := BlankImage()
	copy(image, sb.Encode())
	return image
}

// MountImage mounts raw image bytes and fails the test on any mount error.
func MountImage(t *testing.T, image []byte) *fsys.Session {
	t.Helper()
	session, err := fsys.MountDevice(ImageDevice(image))
	require.NoError(t, err, "fixture image failed to mount")
	return session
}

// MountBlank mounts a fresh empty volume and returns both the session and
// the backing image bytes.
func MountBlank(t *testing.T) (*fsys.Session, []byte) {
	t.Helper()
	image := BlankImage()
	return MountImage(t, image), image
}

// FillBlock builds a full block of repeating data, tagged by a seed byte so
// different blocks are distinguishable.
func FillBlock(seed byte) []byte {
	block := make([]byte, fsim.BlockSize)
	for i := range block {
		block[i] = seed
	}
	return block
}

// RawInodeBytes returns the 8 raw bytes of an inode slot in an image.
func RawInodeBytes(image []byte, slot int) []byte {
	offset := fsim.FreeMapSize + slot*fsim.InodeSize
	return image[offset : offset+fsim.InodeSize]
}

// FreeBitSet reports whether a block's bit is set in the image's on-disk
// free map (MSB-first within each byte).
func FreeBitSet(image []byte, block int) bool {
	return image[block/8]>>(7-block%8)&1 == 1
}

// BlockBytes returns the raw bytes of one block of the image.
func BlockBytes(image []byte, block int) []byte {
	return image[block*fsim.BlockSize : (block+1)*fsim.BlockSize]
}
