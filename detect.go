package kretzfile

import (
	"bytes"
	"io"
	"os"

	"github.com/simonhull/kretzfile/internal/types"
)

// IsKretzfile reports whether r starts with the kretzfile signature.
//
// It only checks the magic bytes; Open still validates the full header.
func IsKretzfile(r io.ReaderAt, size int64) bool {
	if size < int64(len(types.Magic)) {
		return false
	}
	buf := make([]byte, len(types.Magic))
	if n, _ := r.ReadAt(buf, 0); n < len(buf) {
		return false
	}
	return bytes.Equal(buf, []byte(types.Magic))
}

// IsKretzfilePath is IsKretzfile for a path on disk. Unreadable paths
// report false.
func IsKretzfilePath(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil || !stat.Mode().IsRegular() {
		return false
	}
	return IsKretzfile(f, stat.Size())
}
