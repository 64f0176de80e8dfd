// Package header decodes the fixed 256-byte kretzfile preamble.
package header

import (
	"bytes"

	"github.com/simonhull/kretzfile/internal/binary"
	"github.com/simonhull/kretzfile/internal/types"
)

// Parse decodes the header at the start of data.
//
// data must hold at least types.HeaderSize bytes; anything after the header
// is ignored. All errors are *types.FormatError.
func Parse(data []byte, dec TextDecoder) (types.Header, error) {
	var h types.Header

	if len(data) < types.HeaderSize {
		return h, types.NewFormatError(int64(len(data)),
			"truncated header: have %d bytes, need %d", len(data), types.HeaderSize)
	}
	data = data[:types.HeaderSize]

	if !bytes.Equal(data[offMagic:offMagic+lenMagic], []byte(types.Magic)) {
		return h, types.NewFormatError(offMagic,
			"bad magic %q, expected %q", data[offMagic:offMagic+lenMagic], types.Magic)
	}
	h.Magic = types.Magic

	sr := binary.NewSafeReader(bytes.NewReader(data), int64(len(data)), "")
	cr := binary.NewChainReader(binary.NewReader(sr, offVersion))

	h.Version = dec.Decode(cr.Bytes(lenVersion, "version"))
	cr.Skip(1) // separator, not validated

	h.FrameCount = binary.ReadChained[uint32](cr, "frame count")
	h.Dimensions = types.Dimensions{
		X: binary.ReadChained[uint32](cr, "dimension x"),
		Y: binary.ReadChained[uint32](cr, "dimension y"),
		Z: binary.ReadChained[uint32](cr, "dimension z"),
	}
	h.Spacing = readVec3(cr, "spacing")

	coordCode := binary.ReadChained[uint8](cr, "coordinate system")
	typeCode := binary.ReadChained[uint8](cr, "data type")
	compressed := binary.ReadChained[uint8](cr, "compression flag")

	h.PatientName = dec.Decode(cr.Bytes(lenPatientName, "patient name"))
	h.StudyDate = dec.Decode(cr.Bytes(lenStudyDate, "study date"))
	h.StudyTime = dec.Decode(cr.Bytes(lenStudyTime, "study time"))
	h.AcquisitionMode = dec.Decode(cr.Bytes(lenAcquisitionMode, "acquisition mode"))
	h.SystemName = dec.Decode(cr.Bytes(lenSystemName, "system name"))
	h.ProbeName = dec.Decode(cr.Bytes(lenProbeName, "probe name"))
	h.Origin = readVec3(cr, "origin")

	if err := cr.Error(); err != nil {
		// Only reachable if the field layout outgrows HeaderSize.
		fe := types.NewFormatError(cr.ErrorOffset(), "header read failed")
		fe.Err = err
		return types.Header{}, fe
	}

	cs, err := types.ParseCoordinateSystem(coordCode)
	if err != nil {
		return types.Header{}, wrap(offCoordinateSystem, "invalid coordinate system", err)
	}
	h.CoordinateSystem = cs

	dt, err := types.ParseDataType(typeCode)
	if err != nil {
		return types.Header{}, wrap(offDataType, "invalid data type", err)
	}
	h.DataType = dt

	h.Compressed = compressed != 0

	return h, nil
}

func readVec3(cr *binary.ChainReader, what string) types.Vec3 {
	return types.Vec3{
		X: binary.ReadChained[float32](cr, what+" x"),
		Y: binary.ReadChained[float32](cr, what+" y"),
		Z: binary.ReadChained[float32](cr, what+" z"),
	}
}

func wrap(off int64, reason string, err error) *types.FormatError {
	fe := types.NewFormatError(off, reason)
	fe.Err = err
	return fe
}
