package types

import "fmt"

// DataType identifies the numeric type of each voxel.
type DataType uint8

const (
	// Uint8 is an unsigned 8-bit voxel.
	Uint8 DataType = iota
	// Uint16 is an unsigned 16-bit voxel.
	Uint16
	// Uint32 is an unsigned 32-bit voxel.
	Uint32
	// Int8 is a signed 8-bit voxel.
	Int8
	// Int16 is a signed 16-bit voxel.
	Int16
	// Int32 is a signed 32-bit voxel.
	Int32
	// Float32 is an IEEE-754 single precision voxel.
	Float32
	// Float64 is an IEEE-754 double precision voxel.
	Float64
)

// Kind is the numeric family of a data type.
type Kind uint8

const (
	KindUnsigned Kind = iota + 1
	KindSigned
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindUnsigned:
		return "unsigned"
	case KindSigned:
		return "signed"
	case KindFloat:
		return "float"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Descriptor describes the storage of a single voxel.
type Descriptor struct {
	Name string
	Size int // bytes per element
	Kind Kind
}

// dataTypes is indexed by DataType code.
var dataTypes = [...]Descriptor{
	Uint8:   {Name: "uint8", Size: 1, Kind: KindUnsigned},
	Uint16:  {Name: "uint16", Size: 2, Kind: KindUnsigned},
	Uint32:  {Name: "uint32", Size: 4, Kind: KindUnsigned},
	Int8:    {Name: "int8", Size: 1, Kind: KindSigned},
	Int16:   {Name: "int16", Size: 2, Kind: KindSigned},
	Int32:   {Name: "int32", Size: 4, Kind: KindSigned},
	Float32: {Name: "float32", Size: 4, Kind: KindFloat},
	Float64: {Name: "float64", Size: 8, Kind: KindFloat},
}

// Describe returns the element size and numeric kind for a type code.
//
// Unknown codes are an error; the header codec rejects them before any
// caller gets here, so Describe never substitutes a default.
func Describe(code uint8) (Descriptor, error) {
	if int(code) >= len(dataTypes) {
		return Descriptor{}, fmt.Errorf("unknown data type code %d", code)
	}
	return dataTypes[code], nil
}

// ParseDataType validates a raw type code.
func ParseDataType(code uint8) (DataType, error) {
	if _, err := Describe(code); err != nil {
		return 0, err
	}
	return DataType(code), nil
}

// Valid reports whether d is one of the known data types.
func (d DataType) Valid() bool {
	return int(d) < len(dataTypes)
}

// Size returns the element size in bytes, or 0 for an unknown type.
func (d DataType) Size() int {
	if !d.Valid() {
		return 0
	}
	return dataTypes[d].Size
}

// Kind returns the numeric family, or 0 for an unknown type.
func (d DataType) Kind() Kind {
	if !d.Valid() {
		return 0
	}
	return dataTypes[d].Kind
}

func (d DataType) String() string {
	if !d.Valid() {
		return fmt.Sprintf("unknown_%d", uint8(d))
	}
	return dataTypes[d].Name
}

// MarshalText encodes the data type by name.
func (d DataType) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("unknown data type code %d", uint8(d))
	}
	return []byte(d.String()), nil
}
