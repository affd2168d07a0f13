package errors

// Code identifies the kind of a filesystem error. Every operation of the
// engine either succeeds or reports exactly one of these.
type Code int

const (
	Ok Code = iota

	// DiskNotFound: the disk image is missing, unopenable, or too small to
	// hold a volume.
	DiskNotFound

	// Inconsistent: the superblock failed a mount-time consistency check.
	// Detail() carries the check number (1-6).
	Inconsistent

	// NotMounted: the operation requires a mounted volume.
	NotMounted

	// TableFull: no free inode slot is left for a new file or directory.
	TableFull

	// Exists: a sibling with the same name already exists.
	Exists

	// NameReserved: the name "." or ".." cannot be created.
	NameReserved

	// AllocFailed: no contiguous free run of the requested length exists.
	// Detail() carries the requested size in blocks.
	AllocFailed

	// NotFound: no entry with the given name in the current directory.
	NotFound

	// NotAFile: the name resolves to a directory where a file is required.
	NotAFile

	// NotADirectory: the name resolves to a file where a directory is
	// required.
	NotADirectory

	// BlockOutOfRange: the block number is outside [0, size-1] for the file.
	// Detail() carries the offending block number.
	BlockOutOfRange

	// CannotExpand: neither in-place growth nor relocation can fit the file
	// at its new size. Detail() carries the requested size in blocks.
	CannotExpand

	// IOFailed: the underlying disk image could not be read or written.
	IOFailed
)

var messagesByCode = map[Code]string{
	Ok:              "success",
	DiskNotFound:    "cannot find disk",
	Inconsistent:    "file system is inconsistent",
	NotMounted:      "no file system is mounted",
	TableFull:       "inode table is full",
	Exists:          "file or directory already exists",
	NameReserved:    "name is reserved",
	AllocFailed:     "cannot allocate contiguous blocks",
	NotFound:        "no such file or directory",
	NotAFile:        "not a file",
	NotADirectory:   "not a directory",
	BlockOutOfRange: "no such block in file",
	CannotExpand:    "cannot expand file",
	IOFailed:        "input/output error",
}

// StrError returns the default description for an error code.
func StrError(code Code) string {
	message, ok := messagesByCode[code]
	if ok {
		return message
	}
	return "unknown error"
}
