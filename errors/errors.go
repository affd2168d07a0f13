// Package errors defines the error taxonomy of the filesystem engine.
//
// Every error carries a Code plus the identifiers the failure is about (the
// disk, file or directory name, and where relevant a numeric detail such as a
// consistency-check number, a block number or a size in blocks). Front ends
// render their own diagnostics from those pieces.
package errors

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Error is the error type returned by every operation of the engine.
type Error interface {
	error
	Code() Code
	// Subject returns the name of the thing the failure is about: the disk
	// image for mount-level failures, the file or directory name otherwise.
	// It may be empty.
	Subject() string
	// Detail returns the numeric detail of the failure (check number, block
	// number, or size in blocks), or 0 when the code has none.
	Detail() int
	Unwrap() error
}

type fsError struct {
	code          Code
	subject       string
	detail        int
	message       string
	originalError error
}

// Error implements the `error` interface. When called, it returns a string
// describing the error.
func (e fsError) Error() string {
	if e.message != "" {
		return e.message
	}
	if e.subject != "" {
		return fmt.Sprintf("%s: %s", StrError(e.code), e.subject)
	}
	return StrError(e.code)
}

func (e fsError) Code() Code {
	return e.code
}

func (e fsError) Subject() string {
	return e.subject
}

func (e fsError) Detail() int {
	return e.detail
}

func (e fsError) Unwrap() error {
	return e.originalError
}

// New creates a new [Error] with a default message derived from the code.
func New(code Code) Error {
	return fsError{code: code}
}

// WithName creates a new [Error] about the named disk, file, or directory.
func WithName(code Code, name string) Error {
	return fsError{code: code, subject: name}
}

// WithDetail creates a new [Error] about the named subject carrying a numeric
// detail: the failed check number for [Inconsistent], the block number for
// [BlockOutOfRange], the requested size in blocks for [AllocFailed] and
// [CannotExpand].
func WithDetail(code Code, name string, detail int) Error {
	return fsError{code: code, subject: name, detail: detail}
}

// NewWithMessage creates a new [Error] with a custom message.
func NewWithMessage(code Code, message string) Error {
	return fsError{code: code, message: message}
}

// NewFromError creates a new [Error] chained to the error that caused it. The
// cause stays reachable through Unwrap.
func NewFromError(code Code, originalError error) Error {
	return fsError{
		code:          code,
		message:       fmt.Sprintf("%s: %s", StrError(code), originalError.Error()),
		originalError: multierror.Append(New(code), originalError),
	}
}

// CodeOf extracts the Code from any error, or Ok if err is nil. Errors from
// outside the engine report IOFailed.
func CodeOf(err error) Code {
	if err == nil {
		return Ok
	}
	if fsErr, ok := err.(Error); ok {
		return fsErr.Code()
	}
	return IOFailed
}
