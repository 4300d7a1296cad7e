package collision

import "math"

// OBB is an oriented bounding box defined by its four corners in
// counter-clockwise order, plus a bounding circle for cheap rejection
// (spec §3 "OBB2D"). Used by the symbol package as the pre-collision test
// before a box is ever handed to a Grid.
type OBB struct {
	Corners [4]Point
	Center  Point
	Radius  float64

	axis0, axis1 Point // edge vectors scaled so dot(axis, edge) == 1 on-edge
}

// Point is a plain 2D point, kept separate from value.Vec2 so this package
// has no dependency on the value package's evaluation-oriented vocabulary.
type Point struct {
	X, Y float64
}

// NewOBB builds an OBB from four corners given in order (e.g. TL, TR, BR,
// BL). The bounding circle is the centroid and the max corner distance from
// it; the two separating axes are the first two edges, normalised to unit
// dot-product at the far corner.
func NewOBB(corners [4]Point) OBB {
	cx, cy := 0.0, 0.0
	for _, c := range corners {
		cx += c.X
		cy += c.Y
	}
	center := Point{X: cx / 4, Y: cy / 4}

	radius := 0.0
	for _, c := range corners {
		d := dist(c, center)
		if d > radius {
			radius = d
		}
	}

	e0 := sub(corners[1], corners[0])
	e1 := sub(corners[3], corners[0])
	axis0 := scaleToUnitDot(e0)
	axis1 := scaleToUnitDot(e1)

	return OBB{Corners: corners, Center: center, Radius: radius, axis0: axis0, axis1: axis1}
}

func sub(a, b Point) Point { return Point{X: a.X - b.X, Y: a.Y - b.Y} }

func dist(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

func dot(a, b Point) float64 { return a.X*b.X + a.Y*b.Y }

// scaleToUnitDot returns edge scaled by 1/|edge|^2, so that dot(axis, edge)
// == 1 exactly at the far corner — the "derived axes" construction named in
// spec §3, letting overlap tests use `dot(axis, p-origin) < 1` as the
// on-edge test without a separate normalise-then-divide-by-length step.
func scaleToUnitDot(edge Point) Point {
	lenSq := edge.X*edge.X + edge.Y*edge.Y
	if lenSq == 0 {
		return Point{}
	}
	return Point{X: edge.X / lenSq, Y: edge.Y / lenSq}
}

// circlesOverlap is the cheap rejection gate used before the full
// separating-axis test.
func (o OBB) circlesOverlap(other OBB) bool {
	d := dist(o.Center, other.Center)
	return d <= o.Radius+other.Radius
}

// Overlaps runs the gated two-axis separating-axis test from spec §4.6: a
// bounding-circle rejection, then a projection test on each box's own two
// axes. Symmetric: Overlaps is defined so that A.Overlaps(B) == B.Overlaps(A).
func (o OBB) Overlaps(other OBB) bool {
	if !o.circlesOverlap(other) {
		return false
	}
	return o.separatingAxisTest(other) && other.separatingAxisTest(o)
}

// separatingAxisTest projects every corner of `other` onto each of o's two
// axes (relative to o.Corners[0]) and reports whether the resulting
// [min,max] interval overlaps o's own [0,1] interval on both axes. This is
// the true interval-projection test (see original_source/shared/public/
// OBB2D.h's overlaps1Way): a single corner of `other` landing inside o is
// sufficient but not necessary for overlap, so the full projected interval
// of all four corners must be tested, not just whether any one corner
// falls in [0,1].
func (o OBB) separatingAxisTest(other OBB) bool {
	origin := o.Corners[0]
	return o.axisIntervalOverlaps(other, o.axis0, origin) &&
		o.axisIntervalOverlaps(other, o.axis1, origin)
}

func (o OBB) axisIntervalOverlaps(other OBB, axis, origin Point) bool {
	min, max := math.Inf(1), math.Inf(-1)
	for _, c := range other.Corners {
		t := dot(axis, sub(c, origin))
		if t < min {
			min = t
		}
		if t > max {
			max = t
		}
	}
	return max >= 0 && min <= 1
}
