package value

import "testing"

func TestUnitBezierEndpoints(t *testing.T) {
	u := NewUnitBezier(0.25, 0.1, 0.25, 1.0)
	if got := u.Solve(0, 1e-6); !approxEqual(got, 0, 1e-3) {
		t.Errorf("Solve(0) = %v, want ~0", got)
	}
	if got := u.Solve(1, 1e-6); !approxEqual(got, 1, 1e-3) {
		t.Errorf("Solve(1) = %v, want ~1", got)
	}
}

func TestUnitBezierLinear(t *testing.T) {
	u := NewUnitBezier(0.0, 0.0, 1.0, 1.0)
	for _, x := range []float64{0, 0.25, 0.5, 0.75, 1} {
		if got := u.Solve(x, 1e-6); !approxEqual(got, x, 1e-3) {
			t.Errorf("linear bezier Solve(%v) = %v, want %v", x, got, x)
		}
	}
}

func TestUnitBezierMonotonic(t *testing.T) {
	u := NewUnitBezier(0.42, 0, 0.58, 1)
	prev := -1.0
	for i := 0; i <= 10; i++ {
		x := float64(i) / 10
		y := u.Solve(x, 1e-6)
		if y < prev {
			t.Errorf("Solve not monotonic at x=%v: %v < %v", x, y, prev)
		}
		prev = y
	}
}

func approxEqual(a, b, eps float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < eps
}
