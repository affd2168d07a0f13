package fsys

import (
	fsim "github.com/ayraqutub/FileSystemSimulator"
	"github.com/ayraqutub/FileSystemSimulator/alloc"
	"github.com/ayraqutub/FileSystemSimulator/errors"
	"github.com/ayraqutub/FileSystemSimulator/superblock"
)

// Entry is one row of a directory listing. For files Size is the length in
// blocks; for directories (and the leading "." / ".." rows) it is the entry
// count of the directory plus two, counting its own "." and "..".
type Entry struct {
	Name  string
	IsDir bool
	Size  int
}

// findSibling returns the slot index of the named in-use entry in the
// current working directory, or -1.
func (s *Session) findSibling(name superblock.Name) int {
	return s.sb.FindChild(s.cwd, name)
}

// Create creates a file of `size` blocks, or a directory when size is 0, in
// the current working directory.
//
// The data blocks of a new file are reserved but not written: their contents
// are whatever the volume last held there. Every release path zeroes blocks,
// so on a volume with a clean history new blocks read back zero.
func (s *Session) Create(name string, size int) error {
	entryName := superblock.NameOf(name)
	if entryName.IsReserved() {
		return errors.WithName(errors.NameReserved, entryName.String())
	}
	if s.findSibling(entryName) != -1 {
		return errors.WithName(errors.Exists, entryName.String())
	}

	slot := s.sb.FirstFreeSlot()
	if slot == -1 {
		return errors.WithName(errors.TableFull, entryName.String())
	}

	if size == 0 {
		s.sb.Inodes[slot] = superblock.NewDirectory(entryName, s.cwd)
		return s.persist()
	}

	start, ok := alloc.FindContiguous(s.sb.FreeMap, size)
	if !ok {
		return errors.WithDetail(errors.AllocFailed, s.disk, size)
	}
	alloc.Reserve(s.sb.FreeMap, start, size)
	s.sb.Inodes[slot] = superblock.NewFile(entryName, uint8(start), uint8(size), s.cwd)
	return s.persist()
}

// Delete removes the named entry from the current working directory. A
// directory is torn down recursively: every descendant file's run is
// released and zeroed on disk and every descendant slot is zeroed, before
// the directory's own slot is cleared.
func (s *Session) Delete(name string) error {
	target := s.findSibling(superblock.NameOf(name))
	if target == -1 {
		return errors.WithName(errors.NotFound, superblock.NameOf(name).String())
	}
	if err := s.deleteTree(target); err != nil {
		return err
	}
	return s.persist()
}

func (s *Session) deleteTree(index int) error {
	inode := &s.sb.Inodes[index]
	if inode.IsDir {
		for child := range s.sb.Inodes {
			if s.sb.Inodes[child].InUse && s.sb.Inodes[child].Parent == uint8(index) {
				if err := s.deleteTree(child); err != nil {
					return err
				}
			}
		}
	} else {
		start := int(inode.StartBlock)
		length := int(inode.Size)
		alloc.Release(s.sb.FreeMap, start, length)
		for block := start; block < start+length; block++ {
			if err := s.dev.ZeroBlock(uint(block)); err != nil {
				return err
			}
		}
	}
	s.sb.Inodes[index] = superblock.Inode{}
	return nil
}

// ChangeDir moves the current working directory to the named sibling
// directory. "." is a no-op; ".." moves to the parent, with root's parent
// being root itself.
func (s *Session) ChangeDir(name string) error {
	entryName := superblock.NameOf(name)
	if entryName == superblock.NameOf(".") {
		return nil
	}
	if entryName == superblock.NameOf("..") {
		if s.cwd != fsim.ParentRoot {
			s.cwd = s.sb.Inodes[s.cwd].Parent
		}
		return nil
	}

	target := s.findSibling(entryName)
	if target == -1 {
		return errors.WithName(errors.NotFound, entryName.String())
	}
	if !s.sb.Inodes[target].IsDir {
		return errors.WithName(errors.NotADirectory, entryName.String())
	}
	s.cwd = uint8(target)
	return nil
}

// List returns the contents of the current working directory: "." and ".."
// first, then every sibling in ascending slot order. Listing mutates
// nothing.
func (s *Session) List() []Entry {
	ownCount := s.sb.CountChildren(s.cwd) + 2
	parentCount := ownCount
	if s.cwd != fsim.ParentRoot {
		parentCount = s.sb.CountChildren(s.sb.Inodes[s.cwd].Parent) + 2
	}

	entries := []Entry{
		{Name: ".", IsDir: true, Size: ownCount},
		{Name: "..", IsDir: true, Size: parentCount},
	}
	for i := range s.sb.Inodes {
		inode := &s.sb.Inodes[i]
		if !inode.InUse || inode.Parent != s.cwd {
			continue
		}
		if inode.IsDir {
			entries = append(entries, Entry{
				Name:  inode.Name.String(),
				IsDir: true,
				Size:  s.sb.CountChildren(uint8(i)) + 2,
			})
		} else {
			entries = append(entries, Entry{
				Name: inode.Name.String(),
				Size: int(inode.Size),
			})
		}
	}
	return entries
}
