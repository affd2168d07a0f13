package fsys

import (
	"sort"

	"github.com/ayraqutub/FileSystemSimulator/alloc"
)

// Defragment packs all file data toward the front of the volume, eliminating
// free gaps between files while preserving their relative ordering by
// current start block. Directories are unaffected; they own no blocks. The
// superblock is persisted once at the end.
func (s *Session) Defragment() error {
	var files []int
	for i := range s.sb.Inodes {
		if s.sb.Inodes[i].InUse && !s.sb.Inodes[i].IsDir {
			files = append(files, i)
		}
	}
	sort.SliceStable(files, func(a, b int) bool {
		return s.sb.Inodes[files[a]].StartBlock < s.sb.Inodes[files[b]].StartBlock
	})

	cursor := 1
	for _, index := range files {
		inode := &s.sb.Inodes[index]
		size := int(inode.Size)
		oldStart := int(inode.StartBlock)

		if oldStart == cursor {
			cursor += size
			continue
		}

		staging, err := s.stageRun(oldStart, size)
		if err != nil {
			return err
		}

		alloc.Release(s.sb.FreeMap, oldStart, size)
		for block := oldStart; block < oldStart+size; block++ {
			if err := s.dev.ZeroBlock(uint(block)); err != nil {
				return err
			}
		}

		// The destination may overlap the tail of the old run; the staged
		// copy makes the overwrite safe.
		alloc.Reserve(s.sb.FreeMap, cursor, size)
		if err := s.writeRun(cursor, staging); err != nil {
			return err
		}

		inode.StartBlock = uint8(cursor)
		cursor += size
	}
	return s.persist()
}
