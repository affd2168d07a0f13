// Package superblock implements the metadata block of the volume: the
// 128-bit free-space bitmap, the 126-slot inode table, the codec that moves
// both to and from block 0, and the mount-time consistency validator.
package superblock

import (
	"fmt"

	fsim "github.com/ayraqutub/FileSystemSimulator"
	"github.com/ayraqutub/FileSystemSimulator/blockdev"
	"github.com/ayraqutub/FileSystemSimulator/errors"
	"github.com/boljen/go-bitmap"
	"github.com/noxer/bytewriter"
)

// Superblock is the in-memory image of block 0.
//
// FreeMap is indexed by block number: bit i set means data block i is
// allocated. Bit 0 is unused and ignored; block 0 always holds this
// structure itself.
type Superblock struct {
	FreeMap bitmap.Bitmap
	Inodes  [fsim.NumInodes]Inode
}

// New returns an empty superblock: nothing allocated, every slot free. Its
// encoding is 1024 zero bytes, which is also what a freshly formatted image
// contains.
func New() *Superblock {
	return &Superblock{FreeMap: bitmap.New(fsim.TotalBlocks)}
}

// Decode deserializes a raw block 0. The buffer must be exactly one block.
//
// The wire bitmap packs block bits MSB-first within each byte; the in-memory
// bitmap is addressed by block number only, so the bit order is converted
// here and nowhere else.
func Decode(raw []byte) (*Superblock, error) {
	if len(raw) != fsim.BlockSize {
		return nil, errors.NewWithMessage(
			errors.IOFailed,
			fmt.Sprintf("superblock must be %d bytes, got %d", fsim.BlockSize, len(raw)),
		)
	}

	sb := New()
	for block := 0; block < fsim.TotalBlocks; block++ {
		set := raw[block/8]>>(7-block%8)&1 == 1
		sb.FreeMap.Set(block, set)
	}

	var inodeBytes [fsim.InodeSize]byte
	for i := 0; i < fsim.NumInodes; i++ {
		offset := fsim.FreeMapSize + i*fsim.InodeSize
		copy(inodeBytes[:], raw[offset:offset+fsim.InodeSize])
		sb.Inodes[i] = DecodeInode(inodeBytes)
	}
	return sb, nil
}

// Encode serializes the superblock into a fresh one-block buffer.
func (sb *Superblock) Encode() []byte {
	raw := make([]byte, fsim.BlockSize)
	writer := bytewriter.New(raw)

	freeMapBytes := make([]byte, fsim.FreeMapSize)
	for block := 0; block < fsim.TotalBlocks; block++ {
		if sb.FreeMap.Get(block) {
			freeMapBytes[block/8] |= 1 << (7 - block%8)
		}
	}
	writer.Write(freeMapBytes)

	for i := 0; i < fsim.NumInodes; i++ {
		inodeBytes := sb.Inodes[i].Encode()
		writer.Write(inodeBytes[:])
	}
	return raw
}

// Load reads and deserializes block 0 of a device.
func Load(dev *blockdev.Device) (*Superblock, error) {
	raw := make([]byte, fsim.BlockSize)
	if err := dev.ReadBlock(0, raw); err != nil {
		return nil, err
	}
	return Decode(raw)
}

// Store serializes the superblock and writes it back to block 0. Every
// operation that mutates the inode table or the free map persists through
// this before returning; there is no batching and no journal.
func (sb *Superblock) Store(dev *blockdev.Device) error {
	return dev.WriteBlock(0, sb.Encode())
}

// FindChild returns the slot index of the in-use inode with the given name
// under the given parent, or -1 if there is none.
func (sb *Superblock) FindChild(parent uint8, name Name) int {
	for i := range sb.Inodes {
		inode := &sb.Inodes[i]
		if inode.InUse && inode.Parent == parent && inode.Name == name {
			return i
		}
	}
	return -1
}

// CountChildren returns the number of in-use inodes under the given parent.
func (sb *Superblock) CountChildren(parent uint8) int {
	count := 0
	for i := range sb.Inodes {
		if sb.Inodes[i].InUse && sb.Inodes[i].Parent == parent {
			count++
		}
	}
	return count
}

// FirstFreeSlot returns the lowest free slot index, or -1 if the table is
// full.
func (sb *Superblock) FirstFreeSlot() int {
	for i := range sb.Inodes {
		if !sb.Inodes[i].InUse {
			return i
		}
	}
	return -1
}
