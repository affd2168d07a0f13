package superblock

import (
	"bytes"

	fsim "github.com/ayraqutub/FileSystemSimulator"
)

// Name is the fixed 5-byte name of a file or directory. Names shorter than
// five bytes are zero-padded; comparison and uniqueness are over all five
// bytes with no trimming.
type Name [fsim.MaxNameLen]byte

// NameOf converts a string to a fixed-width name. Anything past five bytes is
// dropped.
func NameOf(s string) Name {
	var name Name
	copy(name[:], s)
	return name
}

// String returns the printable form of the name, cut at the first zero byte.
func (n Name) String() string {
	end := bytes.IndexByte(n[:], 0)
	if end < 0 {
		end = len(n)
	}
	return string(n[:end])
}

// IsReserved reports whether the name is one of the two reserved entries "."
// and "..", which always denote the current and parent directory.
func (n Name) IsReserved() bool {
	return n == NameOf(".") || n == NameOf("..")
}

// Inode describes one file or directory. The bit-packed on-disk layout lives
// entirely in Encode/DecodeInode; everything else works with these unpacked
// fields.
//
// For files, Size is the length in blocks and StartBlock the first block of
// the contiguous run. Directories own no blocks: both are zero. Parent is
// 0-125 for an entry inside a real directory and [fsim.ParentRoot] for an
// entry of the root container.
type Inode struct {
	Name       Name
	InUse      bool
	IsDir      bool
	Size       uint8
	StartBlock uint8
	Parent     uint8
}

// NewFile builds an in-use file inode.
func NewFile(name Name, startBlock, size, parent uint8) Inode {
	return Inode{
		Name:       name,
		InUse:      true,
		Size:       size,
		StartBlock: startBlock,
		Parent:     parent,
	}
}

// NewDirectory builds an in-use directory inode.
func NewDirectory(name Name, parent uint8) Inode {
	return Inode{
		Name:   name,
		InUse:  true,
		IsDir:  true,
		Parent: parent,
	}
}

// IsZero reports whether every field of the inode is zero. A free slot must
// be zero in its entirety; the decoder is lossless, so checking the unpacked
// fields is equivalent to checking the raw bytes.
func (inode Inode) IsZero() bool {
	return inode == Inode{}
}

// LastBlock returns the final block of a file's run.
func (inode Inode) LastBlock() uint8 {
	return inode.StartBlock + inode.Size - 1
}

// Encode packs the inode into its 8-byte wire form: five name bytes, the
// in-use flag sharing a byte with the 7-bit size, the start block, and the
// directory flag sharing a byte with the 7-bit parent index.
func (inode Inode) Encode() [fsim.InodeSize]byte {
	var raw [fsim.InodeSize]byte
	copy(raw[0:5], inode.Name[:])
	raw[5] = inode.Size & 0x7F
	if inode.InUse {
		raw[5] |= 0x80
	}
	raw[6] = inode.StartBlock
	raw[7] = inode.Parent & 0x7F
	if inode.IsDir {
		raw[7] |= 0x80
	}
	return raw
}

// DecodeInode unpacks an 8-byte wire inode.
func DecodeInode(raw [fsim.InodeSize]byte) Inode {
	var inode Inode
	copy(inode.Name[:], raw[0:5])
	inode.InUse = raw[5]&0x80 != 0
	inode.Size = raw[5] & 0x7F
	inode.StartBlock = raw[6]
	inode.IsDir = raw[7]&0x80 != 0
	inode.Parent = raw[7] & 0x7F
	return inode
}
