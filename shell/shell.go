// Package shell implements the line-oriented command front end. Scripts are
// plain text, one command per line:
//
//	M <disk>            mount a volume image
//	C <name> <size>     create a file (size 1..127) or directory (size 0)
//	D <name>            delete a file or directory tree
//	R <name> <block>    read one file block into the transfer buffer
//	W <name> <block>    write the transfer buffer into one file block
//	B <bytes>           load the transfer buffer
//	L                   list the current directory
//	E <name> <size>     resize a file (size 1..127)
//	O                   defragment the volume
//	Y <name>            change the current directory
//
// A malformed line is reported as `Command Error: <script>, <line>` on
// stderr and skipped; execution continues with the next line. Failures of
// well-formed commands are reported as single-line `Error: ...` diagnostics
// derived from the engine's error codes.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ayraqutub/FileSystemSimulator/errors"
	"github.com/ayraqutub/FileSystemSimulator/fsys"
)

// Interpreter executes command scripts against one FS facade.
type Interpreter struct {
	fs     *fsys.FS
	stdout io.Writer
	stderr io.Writer
}

func New(fs *fsys.FS, stdout, stderr io.Writer) *Interpreter {
	return &Interpreter{fs: fs, stdout: stdout, stderr: stderr}
}

// Run executes the script at path. An unreadable script reports
// `Command Error: <path>, 0`. The returned error covers I/O trouble with the
// script itself; command failures are reported on stderr and never abort the
// run.
func (in *Interpreter) Run(path string) error {
	file, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(in.stderr, "Command Error: %s, 0\n", path)
		return errors.NewFromError(errors.IOFailed, err)
	}
	defer file.Close()
	return in.Execute(path, file)
}

// Execute runs a script from r. script is the name used in Command Error
// diagnostics.
func (in *Interpreter) Execute(script string, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if !in.runLine(scanner.Text()) {
			fmt.Fprintf(in.stderr, "Command Error: %s, %d\n", script, lineNum)
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.NewFromError(errors.IOFailed, err)
	}
	return nil
}

// runLine parses and executes one line. It returns false when the line is
// malformed; engine failures still count as handled.
func (in *Interpreter) runLine(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 || len(fields[0]) != 1 {
		return false
	}

	switch fields[0] {
	case "M":
		if len(fields) < 2 {
			return false
		}
		in.mount(fields[1])
	case "C":
		name, size, ok := nameAndNumber(fields, 0, 127)
		if !ok {
			return false
		}
		in.create(name, size)
	case "D":
		if len(fields) < 2 || len(fields[1]) > 5 {
			return false
		}
		in.delete(fields[1])
	case "R":
		name, block, ok := nameAndNumber(fields, 0, 127)
		if !ok {
			return false
		}
		in.read(name, block)
	case "W":
		name, block, ok := nameAndNumber(fields, 0, 127)
		if !ok {
			return false
		}
		in.write(name, block)
	case "B":
		payload, ok := bufferPayload(line)
		if !ok {
			return false
		}
		in.setBuffer(payload)
	case "L":
		if len(fields) != 1 {
			return false
		}
		in.list()
	case "E":
		name, size, ok := nameAndNumber(fields, 1, 127)
		if !ok {
			return false
		}
		in.resize(name, size)
	case "O":
		if len(fields) != 1 {
			return false
		}
		in.defragment()
	case "Y":
		if len(fields) != 2 || len(fields[1]) > 5 {
			return false
		}
		in.changeDir(fields[1])
	default:
		return false
	}
	return true
}

// nameAndNumber validates the `<letter> <name> <number>` commands: name at
// most five bytes, number within [min,max].
func nameAndNumber(fields []string, min, max int) (string, int, bool) {
	if len(fields) < 3 || len(fields[1]) > 5 {
		return "", 0, false
	}
	n, err := strconv.Atoi(fields[2])
	if err != nil || n < min || n > max {
		return "", 0, false
	}
	return fields[1], n, true
}

// bufferPayload extracts the buffer contents of a B command: everything
// after the first space, verbatim, at most one block.
func bufferPayload(line string) (string, bool) {
	idx := strings.IndexByte(line, ' ')
	if idx == -1 {
		return "", false
	}
	payload := line[idx+1:]
	if len(payload) > 1024 {
		return "", false
	}
	return payload, true
}

////////////////////////////////////////////////////////////////////////////////
// Command execution and diagnostic rendering

func (in *Interpreter) fail(format string, args ...any) {
	fmt.Fprintf(in.stderr, format+"\n", args...)
}

// failDefault renders codes a command has no dedicated wording for.
func (in *Interpreter) failDefault(err error) {
	if errors.CodeOf(err) == errors.NotMounted {
		in.fail("Error: No file system is mounted")
		return
	}
	in.fail("Error: %s", err.Error())
}

func detailOf(err error) int {
	if fsErr, ok := err.(errors.Error); ok {
		return fsErr.Detail()
	}
	return 0
}

func (in *Interpreter) mount(disk string) {
	err := in.fs.Mount(disk)
	switch errors.CodeOf(err) {
	case errors.Ok:
	case errors.DiskNotFound:
		in.fail("Error: Cannot find disk %s", disk)
	case errors.Inconsistent:
		in.fail("Error: File system in %s is inconsistent (error code: %d)",
			disk, detailOf(err))
	default:
		in.failDefault(err)
	}
}

func (in *Interpreter) create(name string, size int) {
	err := in.fs.Create(name, size)
	switch errors.CodeOf(err) {
	case errors.Ok:
	case errors.NameReserved, errors.Exists:
		in.fail("Error: File or directory %s already exists", name)
	case errors.TableFull:
		in.fail("Error: Superblock in disk %s is full, cannot create %s",
			in.fs.DiskName(), name)
	case errors.AllocFailed:
		in.fail("Error: Cannot allocate %d blocks on %s", size, in.fs.DiskName())
	default:
		in.failDefault(err)
	}
}

func (in *Interpreter) delete(name string) {
	err := in.fs.Delete(name)
	switch errors.CodeOf(err) {
	case errors.Ok:
	case errors.NotFound:
		in.fail("Error: File or directory %s does not exist", name)
	default:
		in.failDefault(err)
	}
}

func (in *Interpreter) read(name string, block int) {
	in.reportFileIO(in.fs.ReadBlock(name, block), name, block)
}

func (in *Interpreter) write(name string, block int) {
	in.reportFileIO(in.fs.WriteBlock(name, block), name, block)
}

func (in *Interpreter) reportFileIO(err error, name string, block int) {
	switch errors.CodeOf(err) {
	case errors.Ok:
	case errors.NotFound, errors.NotAFile:
		in.fail("Error: File %s does not exist", name)
	case errors.BlockOutOfRange:
		in.fail("Error: %s does not have block %d", name, block)
	default:
		in.failDefault(err)
	}
}

func (in *Interpreter) setBuffer(payload string) {
	if err := in.fs.SetBuffer([]byte(payload)); err != nil {
		in.failDefault(err)
	}
}

func (in *Interpreter) list() {
	entries, err := in.fs.List()
	if err != nil {
		in.failDefault(err)
		return
	}
	// The first two entries are always "." and "..".
	fmt.Fprintf(in.stdout, ".   %5d\n", entries[0].Size)
	fmt.Fprintf(in.stdout, "..  %5d\n", entries[1].Size)
	for _, entry := range entries[2:] {
		if entry.IsDir {
			fmt.Fprintf(in.stdout, "%-5s %3d\n", entry.Name, entry.Size)
		} else {
			fmt.Fprintf(in.stdout, "%-5s %3d KB\n", entry.Name, entry.Size)
		}
	}
}

func (in *Interpreter) resize(name string, size int) {
	err := in.fs.Resize(name, size)
	switch errors.CodeOf(err) {
	case errors.Ok:
	case errors.NotFound, errors.NotAFile:
		in.fail("Error: File %s does not exist", name)
	case errors.CannotExpand:
		in.fail("Error: File %s cannot expand to size %d", name, size)
	default:
		in.failDefault(err)
	}
}

func (in *Interpreter) defragment() {
	if err := in.fs.Defragment(); err != nil {
		in.failDefault(err)
	}
}

func (in *Interpreter) changeDir(name string) {
	err := in.fs.ChangeDir(name)
	switch errors.CodeOf(err) {
	case errors.Ok:
	case errors.NotFound, errors.NotADirectory:
		in.fail("Error: Directory %s does not exist", name)
	default:
		in.failDefault(err)
	}
}
