package imagefile_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	fsim "github.com/ayraqutub/FileSystemSimulator"
	"github.com/ayraqutub/FileSystemSimulator/fsys"
	"github.com/ayraqutub/FileSystemSimulator/imagefile"
	"github.com/ayraqutub/FileSystemSimulator/superblock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat__ProducesMountableImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disk0")
	require.NoError(t, imagefile.Format(path))

	image, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, image, fsim.VolumeSize)
	assert.Equal(t, make([]byte, fsim.VolumeSize), image)

	session, err := fsys.Mount(path)
	require.NoError(t, err)
	defer session.Close()
	assert.Len(t, session.List(), 2)
}

func TestFormat__TruncatesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disk0")
	require.NoError(t, os.WriteFile(path, make([]byte, 3*fsim.VolumeSize), 0o644))

	require.NoError(t, imagefile.Format(path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.EqualValues(t, fsim.VolumeSize, info.Size())
}

func TestRecords__SkipsFreeSlots(t *testing.T) {
	sb := superblock.New()
	sb.Inodes[0] = superblock.NewDirectory(superblock.NameOf("sub"), fsim.ParentRoot)
	sb.Inodes[5] = superblock.NewFile(superblock.NameOf("notes"), 9, 3, 0)

	records := imagefile.Records(sb)
	require.Len(t, records, 2)

	assert.Equal(t, 0, records[0].Slot)
	assert.Equal(t, "sub", records[0].Name)
	assert.Equal(t, "dir", records[0].Kind)
	assert.Equal(t, "/", records[0].Parent)

	assert.Equal(t, 5, records[1].Slot)
	assert.Equal(t, "notes", records[1].Name)
	assert.Equal(t, "file", records[1].Kind)
	assert.EqualValues(t, 3, records[1].SizeBlocks)
	assert.EqualValues(t, 9, records[1].StartBlock)
	assert.Equal(t, "sub", records[1].Parent)
}

func TestDumpCSV(t *testing.T) {
	sb := superblock.New()
	sb.Inodes[0] = superblock.NewFile(superblock.NameOf("a"), 1, 2, fsim.ParentRoot)

	out, err := imagefile.DumpCSV(sb)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "slot,name,kind,size_blocks,start_block,parent", lines[0])
	assert.Equal(t, "0,a,file,2,1,/", lines[1])
}

func TestDumpCSV__EmptyVolumeIsHeaderOnly(t *testing.T) {
	out, err := imagefile.DumpCSV(superblock.New())
	require.NoError(t, err)
	assert.Equal(t, "slot,name,kind,size_blocks,start_block,parent",
		strings.TrimSpace(out))
}
