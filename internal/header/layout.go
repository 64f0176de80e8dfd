package header

// Byte offsets of every header field. Fields are contiguous; the gap from
// the end of origin to HeaderSize is reserved.
const (
	offMagic            = 0
	offVersion          = 9
	offSeparator        = 12
	offFrameCount       = 13
	offDimensions       = 17
	offSpacing          = 29
	offCoordinateSystem = 41
	offDataType         = 42
	offCompressed       = 43
	offPatientName      = 44
	offStudyDate        = 108
	offStudyTime        = 124
	offAcquisitionMode  = 140
	offSystemName       = 172
	offProbeName        = 204
	offOrigin           = 236
	offReserved         = 248
)

// Widths of the fixed-width fields.
const (
	lenMagic           = 9
	lenVersion         = 3
	lenPatientName     = 64
	lenStudyDate       = 16
	lenStudyTime       = 16
	lenAcquisitionMode = 32
	lenSystemName      = 32
	lenProbeName       = 32
)

// Field describes one entry of the header layout.
type Field struct {
	Name     string
	Offset   int
	Size     int
	Encoding string
}

// Layout lists the header fields in file order.
var Layout = []Field{
	{"magic", offMagic, lenMagic, "ascii"},
	{"version", offVersion, lenVersion, "ascii"},
	{"separator", offSeparator, 1, "ascii"},
	{"frame_count", offFrameCount, 4, "uint32 le"},
	{"dimensions", offDimensions, 12, "3x uint32 le"},
	{"spacing", offSpacing, 12, "3x float32 le"},
	{"coordinate_system", offCoordinateSystem, 1, "enum 0-3"},
	{"data_type", offDataType, 1, "enum 0-7"},
	{"compressed", offCompressed, 1, "flag 0/1"},
	{"patient_name", offPatientName, lenPatientName, "padded text"},
	{"study_date", offStudyDate, lenStudyDate, "padded text"},
	{"study_time", offStudyTime, lenStudyTime, "padded text"},
	{"acquisition_mode", offAcquisitionMode, lenAcquisitionMode, "padded text"},
	{"system_name", offSystemName, lenSystemName, "padded text"},
	{"probe_name", offProbeName, lenProbeName, "padded text"},
	{"origin", offOrigin, 12, "3x float32 le"},
	{"reserved", offReserved, 8, "zero"},
}
