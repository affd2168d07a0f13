package superblock

import (
	fsim "github.com/ayraqutub/FileSystemSimulator"
	"github.com/ayraqutub/FileSystemSimulator/errors"
)

// Validate runs the six consistency checks against a freshly loaded
// superblock, in numeric order, stopping at the first violation. The returned
// error carries code [errors.Inconsistent] with the disk name as subject and
// the failed check number as detail. A superblock must pass validation before
// it may be adopted as the active session.
//
// The checks:
//
//  1. A free inode slot is zero in its entirety.
//  2. An in-use file inode has a start block in [1,127] and its run ends at
//     or before block 127.
//  3. An in-use directory inode has zero size and zero start block.
//  4. No in-use inode has parent 126; a parent in [0,125] must reference an
//     in-use directory inode.
//  5. Names are unique among siblings (exact 5-byte comparison).
//  6. The free map and the union of file runs agree exactly: every allocated
//     bit belongs to exactly one file's run, and every run block is marked
//     allocated. Both mismatch directions fail with check number 6.
func (sb *Superblock) Validate(disk string) error {
	for check := 1; check <= 6; check++ {
		var ok bool
		switch check {
		case 1:
			ok = sb.checkFreeSlotsZeroed()
		case 2:
			ok = sb.checkFileRunsInBounds()
		case 3:
			ok = sb.checkDirectoriesOwnNoBlocks()
		case 4:
			ok = sb.checkParentLinks()
		case 5:
			ok = sb.checkSiblingNamesUnique()
		case 6:
			ok = sb.checkFreeMapAgreement()
		}
		if !ok {
			return errors.WithDetail(errors.Inconsistent, disk, check)
		}
	}
	return nil
}

func (sb *Superblock) checkFreeSlotsZeroed() bool {
	for i := range sb.Inodes {
		if !sb.Inodes[i].InUse && !sb.Inodes[i].IsZero() {
			return false
		}
	}
	return true
}

func (sb *Superblock) checkFileRunsInBounds() bool {
	for i := range sb.Inodes {
		inode := &sb.Inodes[i]
		if !inode.InUse || inode.IsDir {
			continue
		}
		if inode.StartBlock < fsim.MinDataBlock {
			return false
		}
		if int(inode.StartBlock)+int(inode.Size)-1 > fsim.MaxDataBlock {
			return false
		}
	}
	return true
}

func (sb *Superblock) checkDirectoriesOwnNoBlocks() bool {
	for i := range sb.Inodes {
		inode := &sb.Inodes[i]
		if inode.InUse && inode.IsDir && (inode.StartBlock != 0 || inode.Size != 0) {
			return false
		}
	}
	return true
}

func (sb *Superblock) checkParentLinks() bool {
	for i := range sb.Inodes {
		inode := &sb.Inodes[i]
		if !inode.InUse {
			continue
		}
		if inode.Parent == fsim.ParentInvalid {
			return false
		}
		if inode.Parent < fsim.NumInodes {
			parent := &sb.Inodes[inode.Parent]
			if !parent.InUse || !parent.IsDir {
				return false
			}
		}
	}
	return true
}

func (sb *Superblock) checkSiblingNamesUnique() bool {
	for i := range sb.Inodes {
		if !sb.Inodes[i].InUse {
			continue
		}
		for j := i + 1; j < fsim.NumInodes; j++ {
			if !sb.Inodes[j].InUse {
				continue
			}
			if sb.Inodes[i].Parent == sb.Inodes[j].Parent &&
				sb.Inodes[i].Name == sb.Inodes[j].Name {
				return false
			}
		}
	}
	return true
}

func (sb *Superblock) checkFreeMapAgreement() bool {
	var owners [fsim.TotalBlocks]int
	for i := range sb.Inodes {
		inode := &sb.Inodes[i]
		if !inode.InUse || inode.IsDir {
			continue
		}
		for block := int(inode.StartBlock); block <= int(inode.LastBlock()); block++ {
			owners[block]++
		}
	}

	// Bit 0 is ignored: block 0 is the superblock itself.
	for block := fsim.MinDataBlock; block <= fsim.MaxDataBlock; block++ {
		if sb.FreeMap.Get(block) {
			if owners[block] != 1 {
				return false
			}
		} else if owners[block] != 0 {
			return false
		}
	}
	return true
}
