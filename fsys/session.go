// Package fsys implements the mounted-volume session and every operation of
// the filesystem engine: mounting, the namespace (create, delete, change
// directory, listing), per-block file I/O, resizing, and defragmentation.
//
// All state lives in an explicit [Session]: the open device, the cached
// superblock, the current working directory, and the shared one-block
// transfer buffer. There are no package-level globals; the single-mounted-
// volume rule is modeled by [FS], which owns at most one session at a time.
package fsys

import (
	fsim "github.com/ayraqutub/FileSystemSimulator"
	"github.com/ayraqutub/FileSystemSimulator/blockdev"
	"github.com/ayraqutub/FileSystemSimulator/errors"
	"github.com/ayraqutub/FileSystemSimulator/superblock"
)

// Session is one mounted volume. It is created only by a successful Mount
// and stays valid until replaced or closed.
type Session struct {
	dev *blockdev.Device
	sb  *superblock.Superblock

	// cwd is the inode index of the current working directory, or
	// fsim.ParentRoot for the implicit root container. Using the same
	// sentinel as the on-disk parent encoding means cwd doubles as the
	// parent value for entries created here.
	cwd uint8

	// buffer is the shared 1 KiB transfer buffer used by ReadBlock and
	// WriteBlock.
	buffer [fsim.BlockSize]byte

	disk string
}

// Mount opens the disk image at path, loads its superblock, and validates it.
// Only a candidate that passes all six consistency checks becomes a session;
// on any failure the image is closed again and the error describes what went
// wrong ([errors.DiskNotFound] or [errors.Inconsistent] with the check
// number). The caller's previous session, if any, is untouched.
func Mount(path string) (*Session, error) {
	dev, err := blockdev.Open(path)
	if err != nil {
		return nil, err
	}
	return mountDevice(dev, path)
}

// MountDevice mounts an already-open device, typically an in-memory image.
func MountDevice(dev *blockdev.Device) (*Session, error) {
	return mountDevice(dev, dev.Name())
}

func mountDevice(dev *blockdev.Device, disk string) (*Session, error) {
	sb, err := superblock.Load(dev)
	if err != nil {
		dev.Close()
		return nil, err
	}
	if err := sb.Validate(disk); err != nil {
		dev.Close()
		return nil, err
	}

	return &Session{
		dev:  dev,
		sb:   sb,
		cwd:  fsim.ParentRoot,
		disk: disk,
	}, nil
}

// Disk returns the name the volume was mounted under.
func (s *Session) Disk() string {
	return s.disk
}

// Close releases the underlying device. The session must not be used
// afterwards.
func (s *Session) Close() error {
	return s.dev.Close()
}

// persist writes the cached superblock back to block 0. Every mutating
// operation ends with this; there is no batching.
func (s *Session) persist() error {
	return s.sb.Store(s.dev)
}

// FS is the single-mounted-volume facade consumed by front ends. Operations
// before the first successful mount, and a failed mount itself, leave it
// unchanged; a successful mount atomically supersedes the previous volume.
type FS struct {
	cur *Session
}

// New returns an FS with nothing mounted.
func New() *FS {
	return &FS{}
}

// Mounted reports whether a volume is currently mounted.
func (f *FS) Mounted() bool {
	return f.cur != nil
}

// Session returns the active session, or nil when nothing is mounted. Tests
// and front ends needing the transfer buffer go through this.
func (f *FS) Session() *Session {
	return f.cur
}

// DiskName returns the name of the mounted volume, or "" when unmounted.
func (f *FS) DiskName() string {
	if f.cur == nil {
		return ""
	}
	return f.cur.disk
}

// Mount mounts the disk image at path. On success the previous volume, if
// any, is closed and replaced; on failure the previous volume stays mounted
// and usable.
func (f *FS) Mount(path string) error {
	next, err := Mount(path)
	if err != nil {
		return err
	}
	if f.cur != nil {
		f.cur.Close()
	}
	f.cur = next
	return nil
}

// MountDevice is Mount for an already-open device.
func (f *FS) MountDevice(dev *blockdev.Device) error {
	next, err := MountDevice(dev)
	if err != nil {
		return err
	}
	if f.cur != nil {
		f.cur.Close()
	}
	f.cur = next
	return nil
}

func (f *FS) session() (*Session, error) {
	if f.cur == nil {
		return nil, errors.New(errors.NotMounted)
	}
	return f.cur, nil
}

// Create creates a file (size 1-127 blocks) or directory (size 0) in the
// current working directory.
func (f *FS) Create(name string, size int) error {
	s, err := f.session()
	if err != nil {
		return err
	}
	return s.Create(name, size)
}

// Delete removes the named entry from the current working directory,
// recursively for directories.
func (f *FS) Delete(name string) error {
	s, err := f.session()
	if err != nil {
		return err
	}
	return s.Delete(name)
}

// ChangeDir moves the current working directory to the named sibling
// directory, or along "." / "..".
func (f *FS) ChangeDir(name string) error {
	s, err := f.session()
	if err != nil {
		return err
	}
	return s.ChangeDir(name)
}

// List returns the entries of the current working directory.
func (f *FS) List() ([]Entry, error) {
	s, err := f.session()
	if err != nil {
		return nil, err
	}
	return s.List(), nil
}

// SetBuffer replaces the contents of the shared transfer buffer.
func (f *FS) SetBuffer(data []byte) error {
	s, err := f.session()
	if err != nil {
		return err
	}
	s.SetBuffer(data)
	return nil
}

// ReadBlock reads one block of the named file into the transfer buffer.
func (f *FS) ReadBlock(name string, blockNum int) error {
	s, err := f.session()
	if err != nil {
		return err
	}
	return s.ReadBlock(name, blockNum)
}

// WriteBlock writes the transfer buffer into one block of the named file.
func (f *FS) WriteBlock(name string, blockNum int) error {
	s, err := f.session()
	if err != nil {
		return err
	}
	return s.WriteBlock(name, blockNum)
}

// Resize changes the named file's size to newSize blocks.
func (f *FS) Resize(name string, newSize int) error {
	s, err := f.session()
	if err != nil {
		return err
	}
	return s.Resize(name, newSize)
}

// Defragment compacts all file data toward the front of the volume.
func (f *FS) Defragment() error {
	s, err := f.session()
	if err != nil {
		return err
	}
	return s.Defragment()
}

// Close unmounts the current volume, if any.
func (f *FS) Close() error {
	if f.cur == nil {
		return nil
	}
	err := f.cur.Close()
	f.cur = nil
	return err
}
