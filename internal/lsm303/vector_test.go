package lsm303

import (
	"math"
	"testing"
)

func TestCross(t *testing.T) {
	a := Vector[int32]{X: 1, Y: 0, Z: 0}
	b := Vector[int32]{X: 0, Y: 1, Z: 0}
	if got := Cross(a, b); got != (Vector[int32]{X: 0, Y: 0, Z: 1}) {
		t.Errorf("x × y = %+v, want +z", got)
	}
	if got := Cross(b, a); got != (Vector[int32]{X: 0, Y: 0, Z: -1}) {
		t.Errorf("y × x = %+v, want -z", got)
	}
}

func TestDot(t *testing.T) {
	a := Vector[int16]{X: 1, Y: 2, Z: 3}
	b := Vector[int16]{X: 4, Y: -5, Z: 6}
	if got := Dot(a, b); got != 12 {
		t.Errorf("Dot = %d, want 12", got)
	}
}

func TestNormalize(t *testing.T) {
	v := Normalize(Vector[float64]{X: 3, Y: 0, Z: 4})
	want := Vector[float64]{X: 0.6, Y: 0, Z: 0.8}
	if math.Abs(v.X-want.X) > 1e-12 || math.Abs(v.Y-want.Y) > 1e-12 || math.Abs(v.Z-want.Z) > 1e-12 {
		t.Errorf("Normalize = %+v, want %+v", v, want)
	}
}

func TestNormalizeZeroIsNaN(t *testing.T) {
	v := Normalize(Vector[float64]{})
	if !math.IsNaN(v.X) || !math.IsNaN(v.Y) || !math.IsNaN(v.Z) {
		t.Errorf("Normalize(0) = %+v, want NaN components", v)
	}
}
