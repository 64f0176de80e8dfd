// Package kretztest builds synthetic kretzfiles for tests.
package kretztest

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/simonhull/kretzfile/internal/binary"
	"github.com/simonhull/kretzfile/internal/types"
)

// Header holds the raw field values written into a synthetic header.
// Codes are written verbatim so tests can produce invalid files.
type Header struct {
	Magic            string
	Version          string
	FrameCount       uint32
	Dimensions       types.Dimensions
	Spacing          types.Vec3
	CoordinateSystem uint8
	DataType         uint8
	Compressed       bool
	PatientName      string
	StudyDate        string
	StudyTime        string
	AcquisitionMode  string
	SystemName       string
	ProbeName        string
	Origin           types.Vec3
}

// Default returns a valid header for a 4x4x4 uint8 cartesian volume.
func Default() Header {
	return Header{
		Magic:            types.Magic,
		Version:          "1.0",
		FrameCount:       1,
		Dimensions:       types.Dimensions{X: 4, Y: 4, Z: 4},
		Spacing:          types.Vec3{X: 0.5, Y: 0.5, Z: 0.5},
		CoordinateSystem: uint8(types.Cartesian),
		DataType:         uint8(types.Uint8),
		PatientName:      "Test Patient",
		StudyDate:        "2024-01-01",
		StudyTime:        "12:00:00",
		AcquisitionMode:  "3D",
		SystemName:       "GE Voluson",
		ProbeName:        "4D Probe",
	}
}

// EncodeHeader serializes h into exactly types.HeaderSize bytes.
func EncodeHeader(h Header) []byte {
	buf := &bytes.Buffer{}
	sw := binary.NewSafeWriter(buf)

	// Writes to a bytes.Buffer cannot fail, so SafeWriter errors are ignored.
	sw.WritePadded([]byte(h.Magic), 9)
	sw.WritePadded([]byte(h.Version), 3)
	sw.WriteBytes([]byte{' '})
	binary.WriteLE(sw, h.FrameCount)
	binary.WriteLE(sw, h.Dimensions.X)
	binary.WriteLE(sw, h.Dimensions.Y)
	binary.WriteLE(sw, h.Dimensions.Z)
	writeVec3(sw, h.Spacing)
	binary.WriteLE(sw, h.CoordinateSystem)
	binary.WriteLE(sw, h.DataType)
	if h.Compressed {
		binary.WriteLE(sw, uint8(1))
	} else {
		binary.WriteLE(sw, uint8(0))
	}
	sw.WritePadded([]byte(h.PatientName), 64)
	sw.WritePadded([]byte(h.StudyDate), 16)
	sw.WritePadded([]byte(h.StudyTime), 16)
	sw.WritePadded([]byte(h.AcquisitionMode), 32)
	sw.WritePadded([]byte(h.SystemName), 32)
	sw.WritePadded([]byte(h.ProbeName), 32)
	writeVec3(sw, h.Origin)
	sw.PadTo(types.HeaderSize)

	return buf.Bytes()
}

func writeVec3(sw *binary.SafeWriter, v types.Vec3) {
	binary.WriteLE(sw, v.X)
	binary.WriteLE(sw, v.Y)
	binary.WriteLE(sw, v.Z)
}

// Encode returns the header followed by payload.
func Encode(h Header, payload []byte) []byte {
	return append(EncodeHeader(h), payload...)
}

// Raw encodes values as a little-endian voxel stream.
func Raw[T binary.Number](values []T) []byte {
	size := binary.SizeOf[T]()
	out := make([]byte, len(values)*size)
	for i, v := range values {
		binary.PutLE(out[i*size:], v)
	}
	return out
}

// RLE encodes a raw voxel stream as KRLE v1 runs followed by the
// terminator. len(raw) must be a multiple of elemSize.
func RLE(raw []byte, elemSize int) []byte {
	var out []byte
	for i := 0; i < len(raw); {
		elem := raw[i : i+elemSize]
		count := 1
		for count < 255 {
			j := i + count*elemSize
			if j+elemSize > len(raw) || !bytes.Equal(raw[j:j+elemSize], elem) {
				break
			}
			count++
		}
		out = append(out, byte(count))
		out = append(out, elem...)
		i += count * elemSize
	}
	return append(out, 0)
}

// Ramp returns n deterministic voxel values of type T: i modulo a small
// period, so runs appear when n exceeds the period and RLE has work to do.
func Ramp[T binary.Number](n int) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = T((i / 3) % 100)
	}
	return out
}

// WriteFile writes data under t.TempDir() and returns its path.
func WriteFile(t testing.TB, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
