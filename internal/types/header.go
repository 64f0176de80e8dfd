// Package types provides the value types shared by the kretzfile loader
// packages: the parsed header, enumerations, and error types.
package types

import (
	"math"
	"math/bits"
)

// Magic is the signature every kretzfile starts with.
const Magic = "KRETZFILE"

// HeaderSize is the fixed size of the file preamble in bytes.
const HeaderSize = 256

// Dimensions holds voxel counts per axis.
type Dimensions struct {
	X uint32 `yaml:"x" json:"x"`
	Y uint32 `yaml:"y" json:"y"`
	Z uint32 `yaml:"z" json:"z"`
}

// Voxels returns the total voxel count, or false if it does not fit in an int.
func (d Dimensions) Voxels() (int, bool) {
	hi, n := bits.Mul64(uint64(d.X)*uint64(d.Y), uint64(d.Z))
	if hi != 0 || n > math.MaxInt {
		return 0, false
	}
	return int(n), true
}

// Empty reports whether any axis has zero voxels.
func (d Dimensions) Empty() bool {
	return d.X == 0 || d.Y == 0 || d.Z == 0
}

// Vec3 is a 3-component single precision vector.
type Vec3 struct {
	X float32 `yaml:"x" json:"x"`
	Y float32 `yaml:"y" json:"y"`
	Z float32 `yaml:"z" json:"z"`
}

// Header is the decoded fixed-size file preamble.
type Header struct {
	Magic            string           `yaml:"-" json:"-"`
	Version          string           `yaml:"version" json:"version"`
	FrameCount       uint32           `yaml:"frame_count" json:"frame_count"`
	Dimensions       Dimensions       `yaml:"dimensions" json:"dimensions"`
	Spacing          Vec3             `yaml:"spacing" json:"spacing"`
	CoordinateSystem CoordinateSystem `yaml:"coordinate_system" json:"coordinate_system"`
	DataType         DataType         `yaml:"data_type" json:"data_type"`
	Compressed       bool             `yaml:"compressed" json:"compressed"`
	PatientName      string           `yaml:"patient_name" json:"patient_name"`
	StudyDate        string           `yaml:"study_date" json:"study_date"`
	StudyTime        string           `yaml:"study_time" json:"study_time"`
	AcquisitionMode  string           `yaml:"acquisition_mode" json:"acquisition_mode"`
	SystemName       string           `yaml:"system_name" json:"system_name"`
	ProbeName        string           `yaml:"probe_name" json:"probe_name"`
	Origin           Vec3             `yaml:"origin" json:"origin"`
}
