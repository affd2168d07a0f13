package fsim

// Volume geometry. These are invariants of the on-disk format, not tunables;
// a volume of any other shape fails to mount.
const (
	// BlockSize is the size of one block in bytes.
	BlockSize = 1024

	// TotalBlocks is the number of blocks in a volume, including block 0.
	TotalBlocks = 128

	// VolumeSize is the exact size of a disk image in bytes.
	VolumeSize = BlockSize * TotalBlocks

	// NumInodes is the number of slots in the inode table.
	NumInodes = 126

	// InodeSize is the size of one serialized inode in bytes.
	InodeSize = 8

	// FreeMapSize is the size of the serialized free-space bitmap in bytes.
	FreeMapSize = TotalBlocks / 8

	// MaxNameLen is the maximum length of a file or directory name in bytes.
	MaxNameLen = 5

	// MinDataBlock and MaxDataBlock bound the range of allocatable blocks.
	// Block 0 is reserved for the superblock.
	MinDataBlock = 1
	MaxDataBlock = TotalBlocks - 1

	// MaxFileBlocks is the largest size a single file can have, in blocks.
	MaxFileBlocks = 127
)

// Values of an inode's 7-bit parent field.
const (
	// ParentRoot marks an inode whose parent is the implicit root container.
	// Root has no inode slot of its own.
	ParentRoot = 127

	// ParentInvalid is never a legal parent value; the validator rejects it.
	ParentInvalid = 126
)
