package kretzfile_test

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/simonhull/kretzfile"
	"github.com/simonhull/kretzfile/internal/kretztest"
)

// scenario4x4x4 returns the 64 uint8 values used by the reference scenario.
func scenario4x4x4() []uint8 {
	values := make([]uint8, 64)
	for i := range values {
		values[i] = uint8(i * 3)
	}
	return values
}

func TestOpen_Uncompressed4x4x4(t *testing.T) {
	values := scenario4x4x4()
	path := kretztest.WriteFile(t, "scan.vol", kretztest.Encode(kretztest.Default(), values))

	file, err := kretzfile.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if got := file.Dimension(); got != [3]int{4, 4, 4} {
		t.Errorf("Dimension() = %v", got)
	}
	if got := file.Spacing(); got != [3]float32{0.5, 0.5, 0.5} {
		t.Errorf("Spacing() = %v", got)
	}
	if got := file.CoordinateSystem(); got != "cartesian" {
		t.Errorf("CoordinateSystem() = %q", got)
	}

	vol, err := file.Volume()
	if err != nil {
		t.Fatalf("Volume failed: %v", err)
	}
	got, err := kretzfile.Voxels[uint8](vol)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, values) {
		t.Errorf("voxels differ from the 64 payload bytes")
	}
}

func TestOpen_Compressed4x4x4(t *testing.T) {
	values := scenario4x4x4()
	raw := kretztest.Encode(kretztest.Default(), values)

	kh := kretztest.Default()
	kh.Compressed = true
	rle := kretztest.Encode(kh, kretztest.RLE(values, 1))

	plain, err := kretzfile.Open(kretztest.WriteFile(t, "raw.vol", raw))
	if err != nil {
		t.Fatal(err)
	}
	packed, err := kretzfile.Open(kretztest.WriteFile(t, "rle.vol", rle))
	if err != nil {
		t.Fatal(err)
	}

	a, _ := plain.Volume()
	b, _ := packed.Volume()
	va, _ := kretzfile.Voxels[uint8](a)
	vb, _ := kretzfile.Voxels[uint8](b)
	if !bytes.Equal(va, vb) {
		t.Error("compressed volume differs from the uncompressed one")
	}
	if !packed.Metadata().Compressed {
		t.Error("Metadata().Compressed should be true")
	}
}

func TestOpen_RoundTrip(t *testing.T) {
	dims := kretzfile.Dimensions{X: 3, Y: 5, Z: 7}
	n := 3 * 5 * 7

	types := []struct {
		dt   kretzfile.DataType
		raw  []byte
		want []float64
	}{
		{kretzfile.Uint8, kretztest.Raw(kretztest.Ramp[uint8](n)), ramp(n)},
		{kretzfile.Uint16, kretztest.Raw(kretztest.Ramp[uint16](n)), ramp(n)},
		{kretzfile.Uint32, kretztest.Raw(kretztest.Ramp[uint32](n)), ramp(n)},
		{kretzfile.Int8, kretztest.Raw(kretztest.Ramp[int8](n)), ramp(n)},
		{kretzfile.Int16, kretztest.Raw(kretztest.Ramp[int16](n)), ramp(n)},
		{kretzfile.Int32, kretztest.Raw(kretztest.Ramp[int32](n)), ramp(n)},
		{kretzfile.Float32, kretztest.Raw(kretztest.Ramp[float32](n)), ramp(n)},
		{kretzfile.Float64, kretztest.Raw(kretztest.Ramp[float64](n)), ramp(n)},
	}
	coords := []kretzfile.CoordinateSystem{
		kretzfile.Cartesian, kretzfile.Toroidal, kretzfile.Spherical, kretzfile.Cylindrical,
	}

	for _, tt := range types {
		for _, cs := range coords {
			for _, compressed := range []bool{false, true} {
				name := tt.dt.String() + "/" + cs.String()
				if compressed {
					name += "/rle"
				}
				t.Run(name, func(t *testing.T) {
					kh := kretztest.Default()
					kh.Dimensions = dims
					kh.Spacing = kretzfile.Vec3{X: 0.25, Y: 0.5, Z: 1.5}
					kh.DataType = uint8(tt.dt)
					kh.CoordinateSystem = uint8(cs)
					kh.Compressed = compressed

					body := tt.raw
					if compressed {
						body = kretztest.RLE(tt.raw, tt.dt.Size())
					}

					file, err := kretzfile.Open(kretztest.WriteFile(t, "rt.vol", kretztest.Encode(kh, body)))
					if err != nil {
						t.Fatalf("Open failed: %v", err)
					}

					if file.Dimension() != [3]int{3, 5, 7} {
						t.Errorf("Dimension() = %v", file.Dimension())
					}
					if file.Spacing() != [3]float32{0.25, 0.5, 1.5} {
						t.Errorf("Spacing() = %v", file.Spacing())
					}
					if file.CoordinateSystem() != cs.String() {
						t.Errorf("CoordinateSystem() = %q", file.CoordinateSystem())
					}

					vol, err := file.Volume()
					if err != nil {
						t.Fatal(err)
					}
					if vol.Shape() != file.Dimension() {
						t.Errorf("Shape() = %v, Dimension() = %v", vol.Shape(), file.Dimension())
					}
					if vol.DataType() != tt.dt {
						t.Errorf("DataType() = %v, want %v", vol.DataType(), tt.dt)
					}
					got := vol.Float64s()
					for i := range tt.want {
						if got[i] != tt.want[i] {
							t.Fatalf("voxel %d = %v, want %v", i, got[i], tt.want[i])
						}
					}
				})
			}
		}
	}
}

func ramp(n int) []float64 {
	return kretztest.Ramp[float64](n)
}

func TestOpen_FileNotFound(t *testing.T) {
	_, err := kretzfile.Open(filepath.Join(t.TempDir(), "missing.vol"))
	var nf *kretzfile.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %T: %v", err, err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("NotFoundError should wrap os.ErrNotExist")
	}
}

func TestOpen_Directory(t *testing.T) {
	_, err := kretzfile.Open(t.TempDir())
	var nf *kretzfile.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError for a directory, got %v", err)
	}
}

func TestOpen_FormatErrors(t *testing.T) {
	validHeader := kretztest.Default()

	tests := []struct {
		name string
		data func() []byte
	}{
		{
			name: "invalid magic",
			data: func() []byte {
				d := kretztest.Encode(validHeader, scenario4x4x4())
				copy(d, "INVALID!!")
				return d
			},
		},
		{
			name: "short file",
			data: func() []byte { return []byte("KRETZFILE1.0 ") },
		},
		{
			name: "empty file",
			data: func() []byte { return nil },
		},
		{
			name: "unknown coordinate system",
			data: func() []byte {
				kh := kretztest.Default()
				kh.CoordinateSystem = 17
				return kretztest.Encode(kh, scenario4x4x4())
			},
		},
		{
			name: "unknown data type",
			data: func() []byte {
				kh := kretztest.Default()
				kh.DataType = 9
				return kretztest.Encode(kh, scenario4x4x4())
			},
		},
		{
			name: "truncated payload",
			data: func() []byte { return kretztest.Encode(validHeader, scenario4x4x4()[:63]) },
		},
		{
			name: "corrupted rle",
			data: func() []byte {
				kh := kretztest.Default()
				kh.Compressed = true
				return kretztest.Encode(kh, []byte{60, 1, 0})
			},
		},
		{
			name: "zero axis with payload",
			data: func() []byte {
				kh := kretztest.Default()
				kh.Dimensions.Y = 0
				return kretztest.Encode(kh, scenario4x4x4())
			},
		},
		{
			name: "zero axis with compressed payload",
			data: func() []byte {
				kh := kretztest.Default()
				kh.Dimensions.Y = 0
				kh.Compressed = true
				return kretztest.Encode(kh, scenario4x4x4())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := kretztest.WriteFile(t, "bad.vol", tt.data())
			file, err := kretzfile.Open(path)
			if file != nil {
				t.Error("no File may be returned on error")
			}
			var fe *kretzfile.FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("expected FormatError, got %T: %v", err, err)
			}
			if fe.Path != path {
				t.Errorf("FormatError.Path = %q, want %q", fe.Path, path)
			}
		})
	}
}

func TestOpen_HeaderOnly(t *testing.T) {
	for _, compressed := range []bool{false, true} {
		kh := kretztest.Default()
		kh.Compressed = compressed
		path := kretztest.WriteFile(t, "header.vol", kretztest.EncodeHeader(kh))

		file, err := kretzfile.Open(path)
		if err != nil {
			t.Fatalf("compressed=%v: header-only file should load: %v", compressed, err)
		}
		if file.HasVolume() {
			t.Error("HasVolume() should be false")
		}
		if !file.Metadata().VolumeDataMissing {
			t.Error("VolumeDataMissing should be set")
		}
		if _, err := file.Volume(); !errors.Is(err, kretzfile.ErrNoVolumeData) {
			t.Errorf("Volume() error = %v, want ErrNoVolumeData", err)
		}
		if file.Dimension() != [3]int{4, 4, 4} {
			t.Errorf("header fields should still be available, got %v", file.Dimension())
		}

		_, err = kretzfile.Open(path, kretzfile.WithRequireVolume())
		var fe *kretzfile.FormatError
		if !errors.As(err, &fe) || !errors.Is(err, kretzfile.ErrNoVolumeData) {
			t.Errorf("WithRequireVolume: got %v, want FormatError wrapping ErrNoVolumeData", err)
		}
	}
}

func TestOpen_TrailingBytesIgnored(t *testing.T) {
	data := append(kretztest.Encode(kretztest.Default(), scenario4x4x4()), []byte("FOOTER")...)
	file, err := kretzfile.Open(kretztest.WriteFile(t, "footer.vol", data))
	if err != nil {
		t.Fatal(err)
	}
	vol, _ := file.Volume()
	if vol.Len() != 64 {
		t.Errorf("Len() = %d, want 64", vol.Len())
	}
}

func TestFile_Metadata(t *testing.T) {
	kh := kretztest.Default()
	kh.Dimensions = kretzfile.Dimensions{X: 2, Y: 3, Z: 4}
	kh.PatientName = "Jane Smith"
	kh.StudyDate = "2024-07-20"
	kh.StudyTime = "14:30:00"
	kh.SystemName = "Voluson E10"
	kh.ProbeName = "RSP6-16"
	file, err := kretzfile.Open(kretztest.WriteFile(t, "m.vol", kretztest.Encode(kh, make([]byte, 24))))
	if err != nil {
		t.Fatal(err)
	}

	md := file.Metadata()
	if md.Version != "1.0" || md.FrameCount != 1 {
		t.Errorf("Version/FrameCount = %q/%d", md.Version, md.FrameCount)
	}
	if md.Dimensions != kh.Dimensions {
		t.Errorf("Dimensions = %+v", md.Dimensions)
	}
	if md.DataType != kretzfile.Uint8 || md.CoordinateSystem != kretzfile.Cartesian {
		t.Errorf("DataType/CoordinateSystem = %v/%v", md.DataType, md.CoordinateSystem)
	}

	pi := file.PatientInfo()
	if pi != (kretzfile.PatientInfo{PatientName: "Jane Smith", StudyDate: "2024-07-20", StudyTime: "14:30:00"}) {
		t.Errorf("PatientInfo() = %+v", pi)
	}
	si := file.SystemInfo()
	if si != (kretzfile.SystemInfo{SystemName: "Voluson E10", ProbeName: "RSP6-16"}) {
		t.Errorf("SystemInfo() = %+v", si)
	}
}

func TestFile_ReturnsCopies(t *testing.T) {
	file, err := kretzfile.Open(kretztest.WriteFile(t, "c.vol", kretztest.Encode(kretztest.Default(), scenario4x4x4())))
	if err != nil {
		t.Fatal(err)
	}

	md := file.Metadata()
	md.PatientName = "changed"
	m := md.Map()
	m["test_key"] = "test_value"
	if file.Metadata().PatientName != "Test Patient" {
		t.Error("mutating a returned Metadata changed the File")
	}
	if _, ok := file.Metadata().Map()["test_key"]; ok {
		t.Error("Map() must return a fresh map")
	}

	vol, _ := file.Volume()
	v1, _ := kretzfile.Voxels[uint8](vol)
	v1[0] = 255

	again, _ := file.Volume()
	v2, _ := kretzfile.Voxels[uint8](again)
	if v2[0] == 255 {
		t.Error("mutating returned voxels changed the File")
	}
	if vol == again {
		t.Error("Volume() must return a new instance each call")
	}
}

func TestFile_String(t *testing.T) {
	kh := kretztest.Default()
	kh.Dimensions = kretzfile.Dimensions{X: 10, Y: 12, Z: 14}
	kh.CoordinateSystem = uint8(kretzfile.Toroidal)
	file, err := kretzfile.Open(kretztest.WriteFile(t, "test.vol", kretztest.EncodeHeader(kh)))
	if err != nil {
		t.Fatal(err)
	}

	s := file.String()
	for _, want := range []string{"test.vol", "10x12x14", "toroidal"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, want it to contain %q", s, want)
		}
	}
}

func TestOpen_TextDecoding(t *testing.T) {
	kh := kretztest.Default()
	kh.PatientName = "Jos\xe9 Garc\xeda" // Latin-1
	path := kretztest.WriteFile(t, "latin1.vol", kretztest.Encode(kh, scenario4x4x4()))

	file, err := kretzfile.Open(path)
	if err != nil {
		t.Fatalf("invalid UTF-8 must not fail the load: %v", err)
	}
	if got := file.PatientInfo().PatientName; got != "Jos� Garc�a" {
		t.Errorf("default decode = %q", got)
	}

	file, err = kretzfile.Open(path, kretzfile.WithCharset("iso-8859-1"))
	if err != nil {
		t.Fatal(err)
	}
	if got := file.PatientInfo().PatientName; got != "José García" {
		t.Errorf("latin-1 decode = %q", got)
	}

	if _, err := kretzfile.Open(path, kretzfile.WithCharset("no-such-charset")); err == nil {
		t.Error("unknown charset should fail")
	}
}

func TestOpen_MaxVolumeBytes(t *testing.T) {
	path := kretztest.WriteFile(t, "big.vol", kretztest.Encode(kretztest.Default(), scenario4x4x4()))

	if _, err := kretzfile.Open(path, kretzfile.WithMaxVolumeBytes(64)); err != nil {
		t.Errorf("limit equal to the payload should pass: %v", err)
	}
	_, err := kretzfile.Open(path, kretzfile.WithMaxVolumeBytes(32))
	if !errors.Is(err, kretzfile.ErrVolumeTooLarge) {
		t.Errorf("expected ErrVolumeTooLarge, got %v", err)
	}
}

func TestOpen_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	path := kretztest.WriteFile(t, "log.vol", kretztest.Encode(kretztest.Default(), scenario4x4x4()))
	if _, err := kretzfile.Open(path, kretzfile.WithLogger(logger)); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"header parsed", "payload decoded", "data_type=uint8"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}
