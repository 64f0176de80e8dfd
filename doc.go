// Package kretzfile loads volumetric ultrasound scans stored in the
// Kretztechnik "kretzfile" binary format.
//
// A kretzfile is a fixed 256-byte header followed by a voxel payload that is
// either a raw little-endian array or run-length encoded. Loading is eager:
// Open decodes everything and releases the file before it returns.
//
// # Quick Start
//
//	file, err := kretzfile.Open("scan.vol")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Println(file.Dimension())        // [128 128 96]
//	fmt.Println(file.Spacing())          // [0.5 0.5 0.7]
//	fmt.Println(file.CoordinateSystem()) // toroidal
//
//	vol, err := file.Volume()
//	if err != nil {
//		log.Fatal(err) // ErrNoVolumeData for header-only files
//	}
//	samples, err := kretzfile.Voxels[uint8](vol)
//
// # File Layout
//
//	offset  size  field
//	0       9     magic "KRETZFILE"
//	9       3     version "1.0"
//	12      1     separator ' '
//	13      4     frame count            uint32
//	17      12    dimensions x, y, z     3x uint32
//	29      12    spacing x, y, z (mm)   3x float32
//	41      1     coordinate system      0-3
//	42      1     data type              0-7
//	43      1     compressed             0/1
//	44      64    patient name
//	108     16    study date
//	124     16    study time
//	140     32    acquisition mode
//	172     32    system name
//	204     32    probe name
//	236     12    origin x, y, z         3x float32
//	256     ...   voxel payload
//
// All integers and floats are little-endian. Text fields are NUL padded;
// they are decoded as UTF-8 by default (see WithCharset) and invalid bytes
// become U+FFFD rather than failing the load.
//
// # Compression
//
// Compressed payloads use KRLE v1: a sequence of runs, each a count byte
// (1-255) followed by one voxel value, with a zero count marking the end of
// the stream. The expanded stream must be exactly x*y*z*element_size
// bytes; anything else is a FormatError.
//
// # Error Handling
//
//   - *NotFoundError: the path cannot be opened as a regular file
//   - *FormatError: bad magic, truncated header or payload, unknown
//     coordinate system or data type, RLE length mismatch
//
// Failed loads never return a File. Header-only files (no payload bytes at
// all) load successfully with HasVolume() == false; pass WithRequireVolume
// to reject them instead.
//
// # Concurrency
//
// A File is immutable and every accessor returns a copy, so Files can be
// shared freely. OpenMany loads several files in parallel.
package kretzfile
