package kretzfile

import (
	"log/slog"

	"golang.org/x/text/encoding"
)

// Option configures behavior when opening kretzfiles.
//
// Example:
//
//	file, err := kretzfile.Open("scan.vol",
//	    kretzfile.WithRequireVolume(),
//	    kretzfile.WithCharset("iso-8859-1"),
//	)
type Option func(*openOptions)

// openOptions holds configuration for opening files.
type openOptions struct {
	logger         *slog.Logger
	encoding       encoding.Encoding // Text fields; nil means UTF-8
	charset        string            // Resolved into encoding at Open
	requireVolume  bool              // Header-only files are an error
	maxVolumeBytes int               // 0 = no limit
}

// defaultOptions returns the default configuration.
func defaultOptions() *openOptions {
	return &openOptions{
		logger: slog.New(slog.DiscardHandler),
	}
}

// WithLogger sets the logger used for debug records during loading.
//
// By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(o *openOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithRequireVolume makes a header-only file a FormatError.
//
// By default a file whose payload region is empty loads successfully;
// File.HasVolume reports false and File.Volume returns ErrNoVolumeData.
func WithRequireVolume() Option {
	return func(o *openOptions) {
		o.requireVolume = true
	}
}

// WithMaxVolumeBytes caps the decoded voxel buffer size.
//
// Files that declare a larger payload fail with an error wrapping
// ErrVolumeTooLarge before the payload is read. Default is 0
// (no limit).
//
// Example:
//
//	// Refuse volumes above 512 MiB
//	file, err := kretzfile.Open("scan.vol",
//	    kretzfile.WithMaxVolumeBytes(512<<20),
//	)
func WithMaxVolumeBytes(n int) Option {
	return func(o *openOptions) {
		o.maxVolumeBytes = n
	}
}

// WithCharset decodes text fields using the named character set, as
// understood by golang.org/x/net/html/charset ("iso-8859-1", "windows-1252",
// "shift_jis", ...). An unknown label makes Open fail.
func WithCharset(label string) Option {
	return func(o *openOptions) {
		o.charset = label
		o.encoding = nil
	}
}

// WithEncoding decodes text fields using enc.
func WithEncoding(enc encoding.Encoding) Option {
	return func(o *openOptions) {
		o.encoding = enc
		o.charset = ""
	}
}
