package fsys

import (
	fsim "github.com/ayraqutub/FileSystemSimulator"
	"github.com/ayraqutub/FileSystemSimulator/alloc"
	"github.com/ayraqutub/FileSystemSimulator/errors"
	"github.com/ayraqutub/FileSystemSimulator/superblock"
)

// Resize changes the named file's length to newSize blocks (1-127).
//
// Growing first tries to extend in place: if the blocks immediately after the
// current run are free, they are reserved and only the size changes. Failing
// that the whole file relocates to the first free run of newSize blocks; the
// old run is released and zeroed. If neither works the file is left entirely
// unchanged and the error carries code [errors.CannotExpand].
//
// Shrinking releases and zeroes the trailing blocks past the new length; the
// start block never moves.
func (s *Session) Resize(name string, newSize int) error {
	index, err := s.findFile(superblock.NameOf(name))
	if err != nil {
		return err
	}
	inode := &s.sb.Inodes[index]
	currentSize := int(inode.Size)
	start := int(inode.StartBlock)

	switch {
	case newSize > currentSize:
		if s.canExtendInPlace(start, currentSize, newSize) {
			alloc.Reserve(s.sb.FreeMap, start+currentSize, newSize-currentSize)
			inode.Size = uint8(newSize)
			return s.persist()
		}
		return s.relocate(index, newSize)

	case newSize < currentSize:
		alloc.Release(s.sb.FreeMap, start+newSize, currentSize-newSize)
		for block := start + newSize; block < start+currentSize; block++ {
			if err := s.dev.ZeroBlock(uint(block)); err != nil {
				return err
			}
		}
		inode.Size = uint8(newSize)
		return s.persist()

	default:
		return nil
	}
}

// canExtendInPlace reports whether the newSize-currentSize blocks directly
// after the current run are all free and within the volume.
func (s *Session) canExtendInPlace(start, currentSize, newSize int) bool {
	if start+newSize-1 > fsim.MaxDataBlock {
		return false
	}
	for block := start + currentSize; block < start+newSize; block++ {
		if s.sb.FreeMap.Get(block) {
			return false
		}
	}
	return true
}

// relocate moves the file at slot index to the first free run of newSize
// blocks. The old run is released before the search, so the new run may
// overlap the old blocks; it can only differ from the old position, since
// extending in place was already ruled out. If no run fits, the release is
// undone and nothing observable changes.
func (s *Session) relocate(index, newSize int) error {
	inode := &s.sb.Inodes[index]
	currentSize := int(inode.Size)
	oldStart := int(inode.StartBlock)

	staging, err := s.stageRun(oldStart, currentSize)
	if err != nil {
		return err
	}

	alloc.Release(s.sb.FreeMap, oldStart, currentSize)
	newStart, ok := alloc.FindContiguous(s.sb.FreeMap, newSize)
	if !ok {
		alloc.Reserve(s.sb.FreeMap, oldStart, currentSize)
		return errors.WithDetail(errors.CannotExpand, inode.Name.String(), newSize)
	}

	// Zero the old run before writing the new one: when the runs overlap,
	// the staged copy is what makes this ordering safe.
	for block := oldStart; block < oldStart+currentSize; block++ {
		if err := s.dev.ZeroBlock(uint(block)); err != nil {
			return err
		}
	}

	alloc.Reserve(s.sb.FreeMap, newStart, newSize)
	if err := s.writeRun(newStart, staging); err != nil {
		return err
	}

	inode.StartBlock = uint8(newStart)
	inode.Size = uint8(newSize)
	return s.persist()
}

// stageRun copies `length` blocks starting at `start` into a scratch buffer
// whose lifetime is the single resize or defragment call.
func (s *Session) stageRun(start, length int) ([]byte, error) {
	staging := make([]byte, length*fsim.BlockSize)
	for i := 0; i < length; i++ {
		chunk := staging[i*fsim.BlockSize : (i+1)*fsim.BlockSize]
		if err := s.dev.ReadBlock(uint(start+i), chunk); err != nil {
			return nil, err
		}
	}
	return staging, nil
}

// writeRun writes a staged run back to disk starting at `start`.
func (s *Session) writeRun(start int, staging []byte) error {
	length := len(staging) / fsim.BlockSize
	for i := 0; i < length; i++ {
		chunk := staging[i*fsim.BlockSize : (i+1)*fsim.BlockSize]
		if err := s.dev.WriteBlock(uint(start+i), chunk); err != nil {
			return err
		}
	}
	return nil
}
