package binary

import "io"

// SafeWriter wraps io.Writer with position tracking. Values are always
// written little-endian.
type SafeWriter struct {
	w      io.Writer
	offset int64
}

// NewSafeWriter creates a new SafeWriter.
func NewSafeWriter(w io.Writer) *SafeWriter {
	return &SafeWriter{w: w}
}

// Offset returns the current position (number of bytes written).
func (sw *SafeWriter) Offset() int64 {
	return sw.offset
}

// WriteBytes writes raw bytes to the underlying writer.
func (sw *SafeWriter) WriteBytes(b []byte) error {
	n, err := sw.w.Write(b)
	sw.offset += int64(n)
	return err
}

// WritePadded writes b into a field of exactly width bytes, truncating or
// padding with NUL as needed.
func (sw *SafeWriter) WritePadded(b []byte, width int) error {
	field := make([]byte, width)
	copy(field, b)
	return sw.WriteBytes(field)
}

// PadTo writes NUL bytes until the offset reaches off. It does nothing if
// the writer is already at or past off.
func (sw *SafeWriter) PadTo(off int64) error {
	if off <= sw.offset {
		return nil
	}
	return sw.WriteBytes(make([]byte, off-sw.offset))
}

// WriteLE writes a value of type T in little-endian byte order.
func WriteLE[T Number](sw *SafeWriter, val T) error {
	buf := make([]byte, SizeOf[T]())
	PutLE(buf, val)
	return sw.WriteBytes(buf)
}
