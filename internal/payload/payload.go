// Package payload materializes the voxel buffer that follows the header.
package payload

import (
	"errors"
	"fmt"
	"math"

	"github.com/simonhull/kretzfile/internal/binary"
	"github.com/simonhull/kretzfile/internal/types"
)

// Buffer is a decoded flat voxel array. Data holds a slice whose element
// type matches DataType ([]uint8 for types.Uint8 and so on); its length is
// always x*y*z.
type Buffer struct {
	Data     any
	DataType types.DataType
	Len      int
}

// ExpectedSize returns the number of voxels and the number of payload
// bytes the header declares.
func ExpectedSize(h types.Header) (voxels, size int, err error) {
	desc, err := types.Describe(uint8(h.DataType))
	if err != nil {
		return 0, 0, err
	}

	voxels, ok := h.Dimensions.Voxels()
	if !ok || voxels > math.MaxInt/desc.Size {
		return 0, 0, types.NewFormatError(17,
			"dimensions %dx%dx%d overflow the addressable size",
			h.Dimensions.X, h.Dimensions.Y, h.Dimensions.Z)
	}
	return voxels, voxels * desc.Size, nil
}

// Options controls decoding limits.
type Options struct {
	// MaxBytes caps the decoded payload size. 0 means no limit.
	MaxBytes int
}

// Check validates what the header declares against the number of payload
// bytes present in the file, without reading them. It returns the voxel
// count and the decoded size in bytes.
//
// Zero available bytes returns types.ErrNoVolumeData. A zero dimension
// with payload bytes present is a *types.FormatError, as is a size that
// overflows int. A size above opts.MaxBytes wraps types.ErrVolumeTooLarge.
func Check(h types.Header, available int64, opts Options) (voxels, size int, err error) {
	if available <= 0 {
		return 0, 0, types.ErrNoVolumeData
	}

	voxels, size, err = ExpectedSize(h)
	if err != nil {
		return 0, 0, err
	}
	if voxels == 0 {
		return 0, 0, types.NewFormatError(17,
			"degenerate dimensions %dx%dx%d with %d payload bytes",
			h.Dimensions.X, h.Dimensions.Y, h.Dimensions.Z, available)
	}
	if opts.MaxBytes > 0 && size > opts.MaxBytes {
		return 0, 0, fmt.Errorf("%w: %d bytes declared, limit %d", types.ErrVolumeTooLarge, size, opts.MaxBytes)
	}
	return voxels, size, nil
}

// Decode interprets the bytes after the header.
//
// Decode applies Check to len(src) first. Any structural problem is a
// *types.FormatError with offsets relative to the start of the file.
func Decode(src []byte, h types.Header, opts Options) (*Buffer, error) {
	voxels, size, err := Check(h, int64(len(src)), opts)
	if err != nil {
		return nil, err
	}

	raw := src
	if h.Compressed {
		raw, err = ExpandRLE(src, h.DataType.Size(), size, types.HeaderSize)
		if err != nil {
			return nil, err
		}
	} else if len(src) < size {
		return nil, types.NewFormatError(types.HeaderSize+int64(len(src)),
			"truncated payload: have %d bytes, need %d", len(src), size)
	}

	data, err := reinterpret(raw, h.DataType, voxels)
	if err != nil {
		return nil, err
	}
	return &Buffer{Data: data, DataType: h.DataType, Len: voxels}, nil
}

// reinterpret converts the first n elements of raw into a typed slice.
func reinterpret(raw []byte, dt types.DataType, n int) (any, error) {
	switch dt {
	case types.Uint8:
		return binary.DecodeSliceLE[uint8](raw, n), nil
	case types.Uint16:
		return binary.DecodeSliceLE[uint16](raw, n), nil
	case types.Uint32:
		return binary.DecodeSliceLE[uint32](raw, n), nil
	case types.Int8:
		return binary.DecodeSliceLE[int8](raw, n), nil
	case types.Int16:
		return binary.DecodeSliceLE[int16](raw, n), nil
	case types.Int32:
		return binary.DecodeSliceLE[int32](raw, n), nil
	case types.Float32:
		return binary.DecodeSliceLE[float32](raw, n), nil
	case types.Float64:
		return binary.DecodeSliceLE[float64](raw, n), nil
	default:
		return nil, errors.New("payload: unsupported data type " + dt.String())
	}
}
