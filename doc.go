// Package fsim implements a single-volume flat filesystem that lives inside
// a fixed-size 128 KiB disk image.
//
// The volume consists of 128 blocks of 1024 bytes each. Block 0 holds the
// superblock: a 128-bit free-space bitmap followed by a table of 126 eight-byte
// inodes. Blocks 1-127 hold raw file data; every file occupies a contiguous
// run of blocks. Directories are pure metadata and own no blocks. The flat
// inode table is interpreted as a tree through each inode's parent index, with
// the value 127 denoting the implicit root container.
//
// The engine is split into small packages:
//
//   - blockdev: raw 1024-byte block I/O over a disk image
//   - superblock: the block-0 codec, inode wire format, and the mount-time
//     consistency validator
//   - alloc: the first-fit contiguous block allocator
//   - fsys: the mounted session and all namespace, I/O, resize and
//     defragmentation operations
//   - imagefile: blank-image formatting and inode-table dumps
//   - shell: the line-oriented command front end
//
// This root package only carries the volume geometry shared by all of them.
package fsim
