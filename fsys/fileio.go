package fsys

import (
	fsim "github.com/ayraqutub/FileSystemSimulator"
	"github.com/ayraqutub/FileSystemSimulator/errors"
	"github.com/ayraqutub/FileSystemSimulator/superblock"
)

// SetBuffer clears the shared transfer buffer to zero and copies in up to
// one block of data. It is independent of any file.
func (s *Session) SetBuffer(data []byte) {
	s.buffer = [fsim.BlockSize]byte{}
	copy(s.buffer[:], data)
}

// Buffer exposes the shared transfer buffer. ReadBlock fills it; WriteBlock
// drains it.
func (s *Session) Buffer() []byte {
	return s.buffer[:]
}

// findFile resolves a name to an in-use file inode in the current working
// directory. Directories and missing names are both errors, distinguished by
// code.
func (s *Session) findFile(name superblock.Name) (int, error) {
	index := s.findSibling(name)
	if index == -1 {
		return -1, errors.WithName(errors.NotFound, name.String())
	}
	if s.sb.Inodes[index].IsDir {
		return -1, errors.WithName(errors.NotAFile, name.String())
	}
	return index, nil
}

// ReadBlock fills the transfer buffer from block blockNum of the named file.
// blockNum counts from 0 within the file.
func (s *Session) ReadBlock(name string, blockNum int) error {
	index, err := s.findFile(superblock.NameOf(name))
	if err != nil {
		return err
	}
	inode := &s.sb.Inodes[index]
	if blockNum < 0 || blockNum >= int(inode.Size) {
		return errors.WithDetail(errors.BlockOutOfRange, inode.Name.String(), blockNum)
	}
	return s.dev.ReadBlock(uint(int(inode.StartBlock)+blockNum), s.buffer[:])
}

// WriteBlock writes the transfer buffer's contents to block blockNum of the
// named file. The superblock is persisted afterwards even though no metadata
// changed, keeping every mutating operation on the same persistence path.
func (s *Session) WriteBlock(name string, blockNum int) error {
	index, err := s.findFile(superblock.NameOf(name))
	if err != nil {
		return err
	}
	inode := &s.sb.Inodes[index]
	if blockNum < 0 || blockNum >= int(inode.Size) {
		return errors.WithDetail(errors.BlockOutOfRange, inode.Name.String(), blockNum)
	}
	if err := s.dev.WriteBlock(uint(int(inode.StartBlock)+blockNum), s.buffer[:]); err != nil {
		return err
	}
	return s.persist()
}
