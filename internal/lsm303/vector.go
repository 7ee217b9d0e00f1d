package lsm303

import "math"

// Number constrains vector element types.
type Number interface {
	~int16 | ~int32 | ~float32 | ~float64
}

// Vector is a 3-component vector over any numeric element type.
type Vector[T Number] struct {
	X T `json:"x"`
	Y T `json:"y"`
	Z T `json:"z"`
}

// Cross returns a × b.
func Cross[T Number](a, b Vector[T]) Vector[T] {
	return Vector[T]{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

// Dot returns a · b.
func Dot[T Number](a, b Vector[T]) T {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Normalize scales v to unit length. A zero-magnitude input divides by
// zero and yields NaN components, which then poison any heading computed
// from it; callers feeding real sensor data never hit that in practice.
func Normalize(v Vector[float64]) Vector[float64] {
	mag := math.Sqrt(Dot(v, v))
	return Vector[float64]{X: v.X / mag, Y: v.Y / mag, Z: v.Z / mag}
}

// Float64 widens a vector for floating-point math.
func Float64[T Number](v Vector[T]) Vector[float64] {
	return Vector[float64]{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}
