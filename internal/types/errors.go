package types

import (
	"errors"
	"fmt"
)

// ErrNoVolumeData is returned when a file carries a valid header but no
// payload bytes at all.
var ErrNoVolumeData = errors.New("kretzfile: no volume data")

// ErrVolumeTooLarge is returned when the declared voxel payload exceeds the
// configured memory budget.
var ErrVolumeTooLarge = errors.New("kretzfile: volume exceeds size limit")

// OutOfBoundsError is returned when a read would run past the end of the data.
type OutOfBoundsError struct {
	Path   string
	What   string
	Offset int64
	Length int
	Size   int64
}

func (e *OutOfBoundsError) Error() string {
	if e.Offset >= e.Size {
		return fmt.Sprintf("%s: offset %d out of bounds (size: %d) while reading %s",
			e.Path, e.Offset, e.Size, e.What)
	}
	return fmt.Sprintf("%s: read of %d bytes at offset %d would exceed size %d while reading %s",
		e.Path, e.Length, e.Offset, e.Size, e.What)
}

// NotFoundError is returned when the input path does not resolve to a
// readable regular file.
type NotFoundError struct {
	Err  error
	Path string
}

func (e *NotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: file not found or unreadable: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("%s: file not found or unreadable", e.Path)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// FormatError is returned when the file structure is invalid: bad magic,
// truncated header, unknown enumeration codes, or an inconsistent payload.
type FormatError struct {
	Err    error
	Path   string
	Reason string
	Offset int64
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("invalid kretzfile at offset %d: %s", e.Offset, e.Reason)
	if e.Path != "" {
		msg = e.Path + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// NewFormatError builds a FormatError without a path. The loader fills in
// the path once the error reaches the public API.
func NewFormatError(offset int64, reason string, args ...any) *FormatError {
	if len(args) > 0 {
		reason = fmt.Sprintf(reason, args...)
	}
	return &FormatError{Offset: offset, Reason: reason}
}
