// Package imagefile creates blank volume images and renders volume metadata
// in formats meant for humans and scripts rather than for the simulator
// itself.
package imagefile

import (
	"os"

	fsim "github.com/ayraqutub/FileSystemSimulator"
	"github.com/ayraqutub/FileSystemSimulator/errors"
	"github.com/ayraqutub/FileSystemSimulator/superblock"
	"github.com/gocarina/gocsv"
)

// Format writes a blank, consistent volume image to path. Every byte is
// zero, which encodes an all-free block map and an empty inode table. An
// existing file at path is truncated.
func Format(path string) error {
	image := make([]byte, fsim.VolumeSize)
	if err := os.WriteFile(path, image, 0o644); err != nil {
		return errors.NewFromError(errors.IOFailed, err)
	}
	return nil
}

// Record is one inode table entry flattened for CSV output. Free slots are
// omitted from dumps, so every record describes a live file or directory.
type Record struct {
	Slot       int    `csv:"slot"`
	Name       string `csv:"name"`
	Kind       string `csv:"kind"`
	SizeBlocks uint8  `csv:"size_blocks"`
	StartBlock uint8  `csv:"start_block"`
	Parent     string `csv:"parent"`
}

// Records flattens the in-use inodes of a superblock, in slot order.
func Records(sb *superblock.Superblock) []*Record {
	records := []*Record{}
	for slot := range sb.Inodes {
		inode := &sb.Inodes[slot]
		if !inode.InUse {
			continue
		}
		record := &Record{
			Slot: slot,
			Name: inode.Name.String(),
		}
		if inode.IsDir {
			record.Kind = "dir"
		} else {
			record.Kind = "file"
			record.SizeBlocks = inode.Size
			record.StartBlock = inode.StartBlock
		}
		if inode.Parent == fsim.ParentRoot {
			record.Parent = "/"
		} else {
			record.Parent = sb.Inodes[inode.Parent].Name.String()
		}
		records = append(records, record)
	}
	return records
}

// DumpCSV renders the in-use inodes of a superblock as CSV, header row
// included.
func DumpCSV(sb *superblock.Superblock) (string, error) {
	out, err := gocsv.MarshalString(Records(sb))
	if err != nil {
		return "", errors.NewFromError(errors.IOFailed, err)
	}
	return out, nil
}
