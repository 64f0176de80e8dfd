package types

import "fmt"

// CoordinateSystem tags how voxel indices map to physical space.
type CoordinateSystem uint8

const (
	Cartesian CoordinateSystem = iota
	Toroidal
	Spherical
	Cylindrical
)

var coordinateSystemNames = [...]string{
	Cartesian:   "cartesian",
	Toroidal:    "toroidal",
	Spherical:   "spherical",
	Cylindrical: "cylindrical",
}

// ParseCoordinateSystem validates a raw coordinate system code.
func ParseCoordinateSystem(code uint8) (CoordinateSystem, error) {
	if int(code) >= len(coordinateSystemNames) {
		return 0, fmt.Errorf("unknown coordinate system code %d", code)
	}
	return CoordinateSystem(code), nil
}

// Valid reports whether c is one of the known coordinate systems.
func (c CoordinateSystem) Valid() bool {
	return int(c) < len(coordinateSystemNames)
}

func (c CoordinateSystem) String() string {
	if !c.Valid() {
		return fmt.Sprintf("unknown_%d", uint8(c))
	}
	return coordinateSystemNames[c]
}

// MarshalText encodes the coordinate system by name.
func (c CoordinateSystem) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("unknown coordinate system code %d", uint8(c))
	}
	return []byte(c.String()), nil
}
