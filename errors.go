package kretzfile

import (
	"github.com/simonhull/kretzfile/internal/types"
)

// NotFoundError is returned by Open when the path does not resolve to a
// readable regular file.
type NotFoundError = types.NotFoundError

// FormatError is returned by Open when the file is not a structurally
// valid kretzfile: bad magic, truncated header, unknown coordinate system or
// data type code, or a truncated or inconsistent payload.
type FormatError = types.FormatError

// OutOfBoundsError describes a read past the end of the data. It appears
// wrapped inside a FormatError.
type OutOfBoundsError = types.OutOfBoundsError

// ErrNoVolumeData is returned by File.Volume for header-only files.
var ErrNoVolumeData = types.ErrNoVolumeData

// ErrVolumeTooLarge is wrapped by Open when the declared payload exceeds
// the limit set with WithMaxVolumeBytes.
var ErrVolumeTooLarge = types.ErrVolumeTooLarge
