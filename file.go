package kretzfile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/net/html/charset"
	"golang.org/x/sync/errgroup"

	"github.com/simonhull/kretzfile/internal/binary"
	"github.com/simonhull/kretzfile/internal/header"
	"github.com/simonhull/kretzfile/internal/payload"
	"github.com/simonhull/kretzfile/internal/types"
)

// File is a fully loaded kretzfile.
//
// A File is immutable: Open parses the header and decodes the whole voxel
// payload before returning, and releases the underlying file handle. Every
// accessor returns a fresh copy, so a File may be shared between
// goroutines without locking.
//
//	file, err := kretzfile.Open("scan.vol")
//	if err != nil {
//		return err
//	}
//	fmt.Println(file.Dimension(), file.CoordinateSystem())
type File struct {
	// Path to the kretzfile
	Path string

	// File size in bytes
	Size int64

	header types.Header
	volume *Volume // nil for header-only files
}

// Open loads a kretzfile from disk.
//
// Open fails with *NotFoundError if the path cannot be opened as a regular
// file, and with *FormatError if the header or payload is malformed. On
// error no File is returned.
//
// A file whose payload region is empty loads successfully as a header-only
// File unless WithRequireVolume is given; see File.HasVolume.
//
// Example:
//
//	file, err := kretzfile.Open("scan.vol")
//	if err != nil {
//		return err
//	}
//	vol, err := file.Volume()
func Open(path string, opts ...Option) (*File, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	if options.charset != "" {
		enc, _ := charset.Lookup(options.charset)
		if enc == nil {
			return nil, fmt.Errorf("unknown charset %q", options.charset)
		}
		options.encoding = enc
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &NotFoundError{Path: path, Err: err}
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, &NotFoundError{Path: path, Err: err}
	}
	if !stat.Mode().IsRegular() {
		return nil, &NotFoundError{Path: path, Err: fmt.Errorf("not a regular file (%s)", stat.Mode().Type())}
	}

	return openReader(f, stat.Size(), path, options)
}

// openReader loads from an io.ReaderAt (internal, for testing).
//
// Loading is two-stage: the fixed header is decoded first, which fixes the
// payload size, then the payload region is read and decoded.
func openReader(r io.ReaderAt, size int64, path string, options *openOptions) (*File, error) {
	log := options.logger.With(slog.String("path", path))
	sr := binary.NewSafeReader(r, size, path)

	hdrBuf := make([]byte, min(size, types.HeaderSize))
	if err := sr.ReadAt(hdrBuf, 0, "header"); err != nil {
		return nil, err
	}

	h, err := header.Parse(hdrBuf, header.NewTextDecoder(options.encoding))
	if err != nil {
		return nil, withPath(err, path)
	}

	log.Debug("header parsed",
		slog.String("version", h.Version),
		slog.Any("dims", h.Dimensions),
		slog.String("data_type", h.DataType.String()),
		slog.String("coordinate_system", h.CoordinateSystem.String()),
		slog.Bool("compressed", h.Compressed))

	file := &File{Path: path, Size: size, header: h}
	opts := payload.Options{MaxBytes: options.maxVolumeBytes}

	_, expected, err := payload.Check(h, size-types.HeaderSize, opts)
	switch {
	case errors.Is(err, types.ErrNoVolumeData):
		if options.requireVolume {
			return nil, &FormatError{
				Path:   path,
				Offset: types.HeaderSize,
				Reason: "missing volume payload",
				Err:    err,
			}
		}
		log.Debug("no volume payload, loaded header only")
		return file, nil
	case err != nil:
		return nil, withPath(err, path)
	}

	src, err := readPayload(sr, h, expected)
	if err != nil {
		return nil, withPath(err, path)
	}

	buf, err := payload.Decode(src, h, opts)
	if err != nil {
		return nil, withPath(err, path)
	}

	file.volume = newVolume(buf, h.Dimensions)
	log.Debug("payload decoded", slog.Int("voxels", buf.Len), slog.Int("bytes", len(src)))

	return file, nil
}

// readPayload reads the region after the header. Uncompressed payloads are
// read only up to the declared size; trailing bytes are never loaded.
func readPayload(sr *binary.SafeReader, h types.Header, expected int) ([]byte, error) {
	n := sr.Size() - types.HeaderSize
	if !h.Compressed && int64(expected) < n {
		n = int64(expected)
	}

	buf := make([]byte, n)
	if err := sr.ReadAt(buf, types.HeaderSize, "volume payload"); err != nil {
		return nil, err
	}
	return buf, nil
}

// withPath attaches the file path to a FormatError, or converts a read
// failure into one.
func withPath(err error, path string) error {
	var fe *FormatError
	if errors.As(err, &fe) {
		fe.Path = path
		return err
	}
	var oob *OutOfBoundsError
	if errors.As(err, &oob) {
		return &FormatError{Path: path, Offset: oob.Offset, Reason: "unexpected end of file", Err: err}
	}
	return err
}

// OpenContext opens a file with context support for cancellation.
//
// Loading itself runs to completion once started; the context is only
// checked before the file is opened.
func OpenContext(ctx context.Context, path string, opts ...Option) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Open(path, opts...)
}

// OpenMany loads multiple kretzfiles concurrently.
//
// Files are loaded in parallel using up to runtime.NumCPU() goroutines.
// Results are returned in the same order as the input paths. If any file
// fails to load, OpenMany returns the first error and no files.
//
// Example:
//
//	files, err := kretzfile.OpenMany(ctx, paths)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, f := range files {
//		fmt.Printf("%s: %v\n", f.Path, f.Dimension())
//	}
func OpenMany(ctx context.Context, paths []string, opts ...Option) ([]*File, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*File, len(paths))

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			file, err := Open(path, opts...)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			results[i] = file
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// Metadata returns the full field dump. Each call returns a new value.
func (f *File) Metadata() Metadata {
	return Metadata{
		Header:            f.header,
		VolumeDataMissing: f.volume == nil,
	}
}

// HasVolume reports whether the file carried voxel data.
func (f *File) HasVolume() bool {
	return f.volume != nil
}

// Volume returns a copy of the voxel array. Header-only files return
// ErrNoVolumeData.
func (f *File) Volume() (*Volume, error) {
	if f.volume == nil {
		return nil, ErrNoVolumeData
	}
	return f.volume.Clone(), nil
}

// Dimension returns the voxel counts along x, y and z.
func (f *File) Dimension() [3]int {
	d := f.header.Dimensions
	return [3]int{int(d.X), int(d.Y), int(d.Z)}
}

// Spacing returns the voxel spacing along x, y and z in millimeters.
func (f *File) Spacing() [3]float32 {
	s := f.header.Spacing
	return [3]float32{s.X, s.Y, s.Z}
}

// CoordinateSystem returns the coordinate system label, such as
// "cartesian" or "toroidal".
func (f *File) CoordinateSystem() string {
	return f.header.CoordinateSystem.String()
}

// PatientInfo returns the patient and study fields.
func (f *File) PatientInfo() PatientInfo {
	return PatientInfo{
		PatientName: f.header.PatientName,
		StudyDate:   f.header.StudyDate,
		StudyTime:   f.header.StudyTime,
	}
}

// SystemInfo returns the ultrasound system fields.
func (f *File) SystemInfo() SystemInfo {
	return SystemInfo{
		SystemName: f.header.SystemName,
		ProbeName:  f.header.ProbeName,
	}
}

// String returns a short description: base name, dimensions and
// coordinate system.
func (f *File) String() string {
	d := f.Dimension()
	return fmt.Sprintf("kretzfile(%s, %dx%dx%d, %s)",
		filepath.Base(f.Path), d[0], d[1], d[2], f.CoordinateSystem())
}
