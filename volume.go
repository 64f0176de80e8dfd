package kretzfile

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/simonhull/kretzfile/internal/payload"
)

// Element is the set of Go types a voxel can be decoded into.
type Element interface {
	uint8 | uint16 | uint32 | int8 | int16 | int32 | float32 | float64
}

// Volume is an immutable three-dimensional voxel array.
//
// Voxels are stored row-major over (x, y, z): z varies fastest, so the
// flat index of (x, y, z) is (x*Y + y)*Z + z.
type Volume struct {
	data     any // []uint8, []int16, ... matching dataType
	shape    [3]int
	dataType DataType
}

func newVolume(buf *payload.Buffer, dims Dimensions) *Volume {
	return &Volume{
		data:     buf.Data,
		shape:    [3]int{int(dims.X), int(dims.Y), int(dims.Z)},
		dataType: buf.DataType,
	}
}

// Shape returns the voxel counts per axis, equal to File.Dimension.
func (v *Volume) Shape() [3]int {
	return v.shape
}

// DataType returns the element type of the voxels.
func (v *Volume) DataType() DataType {
	return v.dataType
}

// Len returns the total number of voxels.
func (v *Volume) Len() int {
	return v.shape[0] * v.shape[1] * v.shape[2]
}

// Index returns the flat index of (x, y, z). It panics if any coordinate
// is out of range.
func (v *Volume) Index(x, y, z int) int {
	if x < 0 || x >= v.shape[0] || y < 0 || y >= v.shape[1] || z < 0 || z >= v.shape[2] {
		panic(fmt.Sprintf("kretzfile: index (%d, %d, %d) out of range %v", x, y, z, v.shape))
	}
	return (x*v.shape[1]+y)*v.shape[2] + z
}

// At returns the voxel at (x, y, z) converted to float64.
func (v *Volume) At(x, y, z int) float64 {
	i := v.Index(x, y, z)
	switch d := v.data.(type) {
	case []uint8:
		return float64(d[i])
	case []uint16:
		return float64(d[i])
	case []uint32:
		return float64(d[i])
	case []int8:
		return float64(d[i])
	case []int16:
		return float64(d[i])
	case []int32:
		return float64(d[i])
	case []float32:
		return float64(d[i])
	case []float64:
		return d[i]
	}
	panic("kretzfile: unsupported voxel storage")
}

// Float64s returns all voxels converted to float64, in flat order.
func (v *Volume) Float64s() []float64 {
	switch d := v.data.(type) {
	case []uint8:
		return toFloat64s(d)
	case []uint16:
		return toFloat64s(d)
	case []uint32:
		return toFloat64s(d)
	case []int8:
		return toFloat64s(d)
	case []int16:
		return toFloat64s(d)
	case []int32:
		return toFloat64s(d)
	case []float32:
		return toFloat64s(d)
	case []float64:
		return slices.Clone(d)
	}
	return nil
}

func toFloat64s[T Element](src []T) []float64 {
	out := make([]float64, len(src))
	for i, x := range src {
		out[i] = float64(x)
	}
	return out
}

// Voxels returns a copy of the voxels in flat order. T must match the
// volume's data type exactly.
//
// Example:
//
//	vol, err := file.Volume()
//	if err != nil {
//		return err
//	}
//	samples, err := kretzfile.Voxels[uint8](vol)
func Voxels[T Element](v *Volume) ([]T, error) {
	d, ok := v.data.([]T)
	if !ok {
		var zero T
		return nil, fmt.Errorf("kretzfile: volume holds %s voxels, not %T", v.dataType, zero)
	}
	return slices.Clone(d), nil
}

// Clone returns a deep copy of v.
func (v *Volume) Clone() *Volume {
	c := *v
	switch d := v.data.(type) {
	case []uint8:
		c.data = slices.Clone(d)
	case []uint16:
		c.data = slices.Clone(d)
	case []uint32:
		c.data = slices.Clone(d)
	case []int8:
		c.data = slices.Clone(d)
	case []int16:
		c.data = slices.Clone(d)
	case []int32:
		c.data = slices.Clone(d)
	case []float32:
		c.data = slices.Clone(d)
	case []float64:
		c.data = slices.Clone(d)
	}
	return &c
}

// Summary holds intensity statistics over all voxels.
type Summary struct {
	Count  int     `yaml:"count" json:"count"` // voxels that are not NaN
	Min    float64 `yaml:"min" json:"min"`
	Max    float64 `yaml:"max" json:"max"`
	Mean   float64 `yaml:"mean" json:"mean"`
	StdDev float64 `yaml:"stddev" json:"stddev"` // population
	Median float64 `yaml:"median" json:"median"`
}

// Summary computes intensity statistics, useful for choosing a display
// window. NaN voxels are skipped and not counted.
func (v *Volume) Summary() Summary {
	x := slices.DeleteFunc(v.Float64s(), math.IsNaN)
	if len(x) == 0 {
		return Summary{}
	}

	mean, std := stat.PopMeanStdDev(x, nil)
	slices.Sort(x)

	return Summary{
		Count:  len(x),
		Min:    floats.Min(x),
		Max:    floats.Max(x),
		Mean:   mean,
		StdDev: std,
		Median: stat.Quantile(0.5, stat.Empirical, x, nil),
	}
}
