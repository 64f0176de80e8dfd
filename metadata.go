package kretzfile

import (
	"github.com/simonhull/kretzfile/internal/types"
)

// DataType identifies the numeric type of each voxel.
type DataType = types.DataType

// Re-export all data type constants.
const (
	Uint8   = types.Uint8
	Uint16  = types.Uint16
	Uint32  = types.Uint32
	Int8    = types.Int8
	Int16   = types.Int16
	Int32   = types.Int32
	Float32 = types.Float32
	Float64 = types.Float64
)

// CoordinateSystem tags how voxel indices map to physical space.
type CoordinateSystem = types.CoordinateSystem

// Re-export all coordinate system constants.
const (
	Cartesian   = types.Cartesian
	Toroidal    = types.Toroidal
	Spherical   = types.Spherical
	Cylindrical = types.Cylindrical
)

// Dimensions holds voxel counts per axis.
type Dimensions = types.Dimensions

// Vec3 is a 3-component single precision vector (spacing, origin).
type Vec3 = types.Vec3

// Header is the decoded fixed-size file preamble.
type Header = types.Header

// Metadata is the full field dump of a loaded file.
//
// Metadata is a plain value: every call to File.Metadata returns a new
// copy, so modifying it never affects the File.
type Metadata struct {
	Header `yaml:",inline"`

	// VolumeDataMissing is set for header-only files.
	VolumeDataMissing bool `yaml:"volume_data_missing" json:"volume_data_missing"`
}

// Map returns the metadata as a freshly allocated nested map, keyed the
// way downstream report tools expect (dimensions, spacing and origin are
// maps with x, y and z keys).
func (m Metadata) Map() map[string]any {
	return map[string]any{
		"version":             m.Version,
		"frame_count":         m.FrameCount,
		"dimensions":          map[string]any{"x": m.Dimensions.X, "y": m.Dimensions.Y, "z": m.Dimensions.Z},
		"spacing":             vec3Map(m.Spacing),
		"coordinate_system":   m.CoordinateSystem.String(),
		"data_type":           m.DataType.String(),
		"compressed":          m.Compressed,
		"patient_name":        m.PatientName,
		"study_date":          m.StudyDate,
		"study_time":          m.StudyTime,
		"acquisition_mode":    m.AcquisitionMode,
		"system_name":         m.SystemName,
		"probe_name":          m.ProbeName,
		"origin":              vec3Map(m.Origin),
		"volume_data_missing": m.VolumeDataMissing,
	}
}

func vec3Map(v Vec3) map[string]any {
	return map[string]any{"x": v.X, "y": v.Y, "z": v.Z}
}

// PatientInfo groups the patient and study fields.
type PatientInfo struct {
	PatientName string `yaml:"patient_name" json:"patient_name"`
	StudyDate   string `yaml:"study_date" json:"study_date"`
	StudyTime   string `yaml:"study_time" json:"study_time"`
}

// Map returns the fields as a new map.
func (p PatientInfo) Map() map[string]string {
	return map[string]string{
		"patient_name": p.PatientName,
		"study_date":   p.StudyDate,
		"study_time":   p.StudyTime,
	}
}

// SystemInfo groups the ultrasound system fields.
type SystemInfo struct {
	SystemName string `yaml:"system_name" json:"system_name"`
	ProbeName  string `yaml:"probe_name" json:"probe_name"`
}

// Map returns the fields as a new map.
func (s SystemInfo) Map() map[string]string {
	return map[string]string{
		"system_name": s.SystemName,
		"probe_name":  s.ProbeName,
	}
}
