package lsm303

import "math"

// DefaultFrom is the reference direction for Heading: the board's -Y axis.
var DefaultFrom = Vector[float64]{X: 0, Y: -1, Z: 0}

// Heading returns the number of degrees from the -Y axis that the board
// is pointing, in [0, 360).
func (d *Device) Heading() float64 {
	return d.HeadingFrom(DefaultFrom)
}

// HeadingFrom returns the angular difference in the horizontal plane
// between from and magnetic north, in degrees.
//
// The magnetic reading is shifted by the calibration midpoint to find the
// north vector. The acceleration reading gives the up vector (gravity is
// measured as an upward acceleration). North × up is east; east and north
// form a basis for the horizontal plane, from is projected into it, and
// the angle between the projection and north comes out of atan2.
func (d *Device) HeadingFrom(from Vector[float64]) float64 {
	// subtract the per-axis midpoint of the calibration bounds; the sum
	// is taken in int32 so +32767 + +32767 cannot overflow
	m := Vector[int32]{X: int32(d.M.X), Y: int32(d.M.Y), Z: int32(d.M.Z)}
	m.X -= (int32(d.MMin.X) + int32(d.MMax.X)) / 2
	m.Y -= (int32(d.MMin.Y) + int32(d.MMax.Y)) / 2
	m.Z -= (int32(d.MMin.Z) + int32(d.MMax.Z)) / 2

	a := Float64(d.A)
	east := Normalize(Cross(Float64(m), a))
	north := Normalize(Cross(a, east))

	heading := math.Atan2(Dot(east, from), Dot(north, from)) * 180 / math.Pi
	if heading < 0 {
		heading += 360
	}
	return heading
}
