// Package blockdev provides raw fixed-size block access to a disk image.
//
// A device is 128 blocks of 1024 bytes addressed 0-127. There is no caching
// layer: every read and write seeks to the block's offset and transfers
// exactly one block, leaving buffering to the OS page cache.
package blockdev

import (
	"fmt"
	"io"
	"os"

	fsim "github.com/ayraqutub/FileSystemSimulator"
	"github.com/ayraqutub/FileSystemSimulator/errors"
)

// Device is a block-addressed view of a disk image stream.
type Device struct {
	stream io.ReadWriteSeeker
	name   string
}

// Open opens the disk image file at the given path for block access. A path
// that cannot be opened, or an image smaller than a full volume, reports
// [errors.DiskNotFound].
func Open(path string) (*Device, error) {
	file, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, errors.WithName(errors.DiskNotFound, path)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, errors.NewFromError(errors.DiskNotFound, err)
	}
	if info.Size() < fsim.VolumeSize {
		file.Close()
		return nil, errors.WithName(errors.DiskNotFound, path)
	}

	return &Device{stream: file, name: path}, nil
}

// New wraps an already-open stream as a device. The stream must hold at least
// a full volume; this is not re-checked here.
func New(stream io.ReadWriteSeeker, name string) *Device {
	return &Device{stream: stream, name: name}
}

// Name returns the name the device was opened under, usually the image path.
func (dev *Device) Name() string {
	return dev.name
}

// seekToBlock sets the stream position to the start of the given block.
func (dev *Device) seekToBlock(index uint) error {
	if index >= fsim.TotalBlocks {
		return errors.NewWithMessage(
			errors.IOFailed,
			fmt.Sprintf(
				"invalid block number: %d not in range [0, %d)",
				index,
				fsim.TotalBlocks,
			),
		)
	}

	_, err := dev.stream.Seek(int64(index)*fsim.BlockSize, io.SeekStart)
	if err != nil {
		return errors.NewFromError(errors.IOFailed, err)
	}
	return nil
}

// ReadBlock fills buffer with the contents of the given block. The buffer
// must be exactly one block long.
func (dev *Device) ReadBlock(index uint, buffer []byte) error {
	if len(buffer) != fsim.BlockSize {
		return errors.NewWithMessage(
			errors.IOFailed,
			fmt.Sprintf("read buffer must be %d bytes, got %d", fsim.BlockSize, len(buffer)),
		)
	}
	if err := dev.seekToBlock(index); err != nil {
		return err
	}

	_, err := io.ReadFull(dev.stream, buffer)
	if err != nil {
		return errors.NewFromError(errors.IOFailed, err)
	}
	return nil
}

// WriteBlock writes buffer to the given block. The buffer must be exactly one
// block long.
func (dev *Device) WriteBlock(index uint, buffer []byte) error {
	if len(buffer) != fsim.BlockSize {
		return errors.NewWithMessage(
			errors.IOFailed,
			fmt.Sprintf("write buffer must be %d bytes, got %d", fsim.BlockSize, len(buffer)),
		)
	}
	if err := dev.seekToBlock(index); err != nil {
		return err
	}

	n, err := dev.stream.Write(buffer)
	if err != nil {
		return errors.NewFromError(errors.IOFailed, err)
	}
	if n != fsim.BlockSize {
		return errors.NewWithMessage(
			errors.IOFailed,
			fmt.Sprintf("short write: expected %d bytes, wrote %d", fsim.BlockSize, n),
		)
	}
	return nil
}

// ZeroBlock overwrites the given block with zero bytes. Released data blocks
// are always zeroed through this.
func (dev *Device) ZeroBlock(index uint) error {
	var zeroes [fsim.BlockSize]byte
	return dev.WriteBlock(index, zeroes[:])
}

// Close releases the underlying stream if it is closable. The device must not
// be used afterwards.
func (dev *Device) Close() error {
	closer, ok := dev.stream.(io.Closer)
	if !ok {
		return nil
	}
	err := closer.Close()
	if err != nil {
		return errors.NewFromError(errors.IOFailed, err)
	}
	return nil
}
