package value

import "math"

// UnitBezier solves a cubic bezier curve with implicit endpoints (0,0) and
// (1,1), ported from the original engine's UnitBezier (in turn ported from
// mapbox-gl-native's util/unitbezier.hpp). The four control-point
// coefficients are computed once at construction; expression control points
// rarely change, so callers should build one UnitBezier per
// BezierInterpolated node and reuse it across evaluations.
type UnitBezier struct {
	ax, bx, cx float64
	ay, by, cy float64
}

// NewUnitBezier computes the polynomial coefficients for control points
// (p1x, p1y) and (p2x, p2y).
func NewUnitBezier(p1x, p1y, p2x, p2y float64) UnitBezier {
	cx := 3.0 * p1x
	bx := 3.0*(p2x-p1x) - cx
	ax := 1.0 - cx - bx

	cy := 3.0 * p1y
	by := 3.0*(p2y-p1y) - cy
	ay := 1.0 - cy - by

	return UnitBezier{ax: ax, bx: bx, cx: cx, ay: ay, by: by, cy: cy}
}

func (u UnitBezier) sampleCurveX(t float64) float64 {
	return ((u.ax*t+u.bx)*t + u.cx) * t
}

func (u UnitBezier) sampleCurveY(t float64) float64 {
	return ((u.ay*t+u.by)*t + u.cy) * t
}

func (u UnitBezier) sampleCurveDerivativeX(t float64) float64 {
	return (3.0*u.ax*t+2.0*u.bx)*t + u.cx
}

// solveCurveX finds the parametric t for a given x, trying Newton's method
// first (normally very fast) and falling back to bisection for reliability.
func (u UnitBezier) solveCurveX(x, epsilon float64) float64 {
	t2 := x
	for i := 0; i < 8; i++ {
		x2 := u.sampleCurveX(t2) - x
		if math.Abs(x2) < epsilon {
			return t2
		}
		d2 := u.sampleCurveDerivativeX(t2)
		if math.Abs(d2) < 1e-6 {
			break
		}
		t2 = t2 - x2/d2
	}

	t0, t1 := 0.0, 1.0
	t2 = x
	if t2 < t0 {
		return t0
	}
	if t2 > t1 {
		return t1
	}
	for t0 < t1 {
		x2 := u.sampleCurveX(t2)
		if math.Abs(x2-x) < epsilon {
			return t2
		}
		if x > x2 {
			t0 = t2
		} else {
			t1 = t2
		}
		t2 = (t1-t0)*0.5 + t0
	}
	return t2
}

// Solve returns the bezier's y value at parametric x, within epsilon.
func (u UnitBezier) Solve(x, epsilon float64) float64 {
	return u.sampleCurveY(u.solveCurveX(x, epsilon))
}
