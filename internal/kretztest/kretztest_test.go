package kretztest

import (
	"bytes"
	"testing"

	"github.com/simonhull/kretzfile/internal/types"
)

func TestEncodeHeader_Size(t *testing.T) {
	h := Default()
	h.PatientName = string(bytes.Repeat([]byte("x"), 200)) // truncated to field width

	got := EncodeHeader(h)
	if len(got) != types.HeaderSize {
		t.Fatalf("header size = %d, want %d", len(got), types.HeaderSize)
	}
	if string(got[:9]) != "KRETZFILE" || string(got[9:12]) != "1.0" || got[12] != ' ' {
		t.Errorf("preamble = %q", got[:13])
	}
	if got[17] != 4 || got[21] != 4 || got[25] != 4 {
		t.Errorf("dimensions not at offset 17: % x", got[17:29])
	}
}

func TestRLE(t *testing.T) {
	raw := []byte{7, 7, 7, 1, 2, 2}
	want := []byte{3, 7, 1, 1, 2, 2, 0}
	if got := RLE(raw, 1); !bytes.Equal(got, want) {
		t.Errorf("RLE = % x, want % x", got, want)
	}

	long := bytes.Repeat([]byte{9, 0}, 300)
	got := RLE(long, 2)
	want = []byte{255, 9, 0, 45, 9, 0, 0}
	if !bytes.Equal(got, want) {
		t.Errorf("long RLE = % x, want % x", got, want)
	}
}

func TestRamp(t *testing.T) {
	r := Ramp[uint16](7)
	want := []uint16{0, 0, 0, 1, 1, 1, 2}
	for i := range want {
		if r[i] != want[i] {
			t.Fatalf("Ramp = %v, want %v", r, want)
		}
	}
}
