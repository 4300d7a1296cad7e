// Package symbol implements the tile-level symbol object and placement
// model (spec §4.8): a per-feature bundle of up to three drawable
// primitives (icon, stretched icon, label), their oriented bounding boxes
// in world space, per-zoom collision memoisation, line/point placement,
// and click resolution. OBB affine construction is grounded on the
// teacher's transform.go composition order (translate(-pivot) -> scale ->
// rotate -> translate), generalized from scene-graph node transforms to
// per-symbol world transforms driven by zoom/scale/rotation.
package symbol

import (
	"math"
	"sort"

	"github.com/openmobilemaps/maps-core-sub000/collision"
	"github.com/openmobilemaps/maps-core-sub000/sprite"
	"github.com/openmobilemaps/maps-core-sub000/value"
)

// Icon is a simple quad primitive.
type Icon struct {
	Region sprite.Region
	Size   float64 // size multiplier applied to the region's native pixel size
}

// StretchedIcon is a 9-slice quad with stretch-x/stretch-y bands, per the
// sprite-sheet stretch-band contract (spec §6).
type StretchedIcon struct {
	Region sprite.Region
	Width  float64
	Height float64
}

// Label is a potentially multi-line, potentially curved text primitive.
type Label struct {
	Lines    []string
	FontSize float64
	Curved   bool // true when laid out along a line geometry
}

// zoomEntry is one cached "collides at this zoom" sample.
type zoomEntry struct {
	zoom     float64
	collides bool
}

// Object bundles one feature's symbol primitives plus their current
// world-space OBBs and the per-zoom collision memo (spec §4.8).
type Object struct {
	FeatureID uint64
	Anchor    value.Vec2 // world-space anchor position

	Icon          *Icon
	StretchedIcon *StretchedIcon
	Label         *Label

	iconOBB    collision.OBB
	stretchOBB collision.OBB
	labelOBB   collision.OBB
	hasIcon    bool
	hasStretch bool
	hasLabel   bool

	memo []zoomEntry // kept sorted by zoom
}

// NewObject constructs a symbol object anchored at anchor.
func NewObject(featureID uint64, anchor value.Vec2) *Object {
	return &Object{FeatureID: featureID, Anchor: anchor}
}

// localRect returns the four corners of an axis-aligned rect of the given
// size, centred at the origin (pivot at rect centre), in local space.
func localRect(w, h float64) [4]collision.Point {
	hw, hh := w/2, h/2
	return [4]collision.Point{
		{X: -hw, Y: -hh},
		{X: hw, Y: -hh},
		{X: hw, Y: hh},
		{X: -hw, Y: hh},
	}
}

// transformOBB applies scale then rotation then translation to a local
// rect, matching the teacher's affine composition order generalized to a
// per-symbol transform (no skew/pivot offset: symbol anchors are always
// rect-centred).
func transformOBB(local [4]collision.Point, scale, rotation, tx, ty float64) collision.OBB {
	sin, cos := math.Sincos(rotation)
	var corners [4]collision.Point
	for i, p := range local {
		sx := p.X * scale
		sy := p.Y * scale
		rx := sx*cos - sy*sin
		ry := sx*sin + sy*cos
		corners[i] = collision.Point{X: rx + tx, Y: ry + ty}
	}
	return collision.NewOBB(corners)
}

// UpdateTransform recomputes every active primitive's OBB from the current
// zoom-driven scale and map rotation (spec §4.8: "per-frame update
// recomputes these from the current zoom, scale, and map rotation").
func (o *Object) UpdateTransform(scale, rotationRad float64) {
	if o.Icon != nil {
		w := o.Icon.Region.Width * o.Icon.Size
		h := o.Icon.Region.Height * o.Icon.Size
		o.iconOBB = transformOBB(localRect(w, h), scale, rotationRad, o.Anchor.X, o.Anchor.Y)
		o.hasIcon = true
	}
	if o.StretchedIcon != nil {
		o.stretchOBB = transformOBB(localRect(o.StretchedIcon.Width, o.StretchedIcon.Height), scale, rotationRad, o.Anchor.X, o.Anchor.Y)
		o.hasStretch = true
	}
	if o.Label != nil {
		w, h := labelExtent(o.Label)
		o.labelOBB = transformOBB(localRect(w, h), scale, rotationRad, o.Anchor.X, o.Anchor.Y)
		o.hasLabel = true
	}
}

// labelExtent estimates the label's local bounding box from its line count
// and font size, assuming a monospace-ish average glyph width; real glyph
// metrics come from the (out-of-scope) font atlas at render time.
func labelExtent(l *Label) (w, h float64) {
	maxLen := 0
	for _, line := range l.Lines {
		if len(line) > maxLen {
			maxLen = len(line)
		}
	}
	w = float64(maxLen) * l.FontSize * 0.6
	h = float64(len(l.Lines)) * l.FontSize * 1.2
	return w, h
}

// CombinedOBB returns a single OBB enclosing every active primitive's OBB,
// used for click resolution (spec §4.8: "tests each visible symbol's
// combined OBB").
func (o *Object) CombinedOBB() (collision.OBB, bool) {
	var corners []collision.Point
	if o.hasIcon {
		corners = append(corners, o.iconOBB.Corners[:]...)
	}
	if o.hasStretch {
		corners = append(corners, o.stretchOBB.Corners[:]...)
	}
	if o.hasLabel {
		corners = append(corners, o.labelOBB.Corners[:]...)
	}
	if len(corners) == 0 {
		return collision.OBB{}, false
	}
	return collision.NewOBB(boundingQuad(corners)), true
}

// boundingQuad reduces an arbitrary point set to the axis-aligned bounding
// rectangle's four corners (combined-OBB is therefore always axis-aligned,
// which is sufficient for click resolution's single-point test).
func boundingQuad(points []collision.Point) [4]collision.Point {
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := points[0].X, points[0].Y
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return [4]collision.Point{
		{X: minX, Y: minY}, {X: maxX, Y: minY}, {X: maxX, Y: maxY}, {X: minX, Y: maxY},
	}
}

// CollidesAt returns the cached collision result for zoom if one exists
// within 0.1 zoom units, otherwise queries grid with the current OBB,
// records the result, and returns it (spec §4.8's per-zoom memoisation
// snap rule).
func (o *Object) CollidesAt(zoom float64, grid *collision.Grid) bool {
	if i, ok := o.nearestMemo(zoom); ok {
		return o.memo[i].collides
	}

	obb, ok := o.CombinedOBB()
	collides := false
	if ok {
		r := boundingRect(obb)
		collides = grid.TryInsertRect(r) == collision.Collides
	}
	o.recordMemo(zoom, collides)
	return collides
}

func boundingRect(obb collision.OBB) collision.Rect {
	minX, minY := obb.Corners[0].X, obb.Corners[0].Y
	maxX, maxY := minX, minY
	for _, c := range obb.Corners[1:] {
		minX = math.Min(minX, c.X)
		minY = math.Min(minY, c.Y)
		maxX = math.Max(maxX, c.X)
		maxY = math.Max(maxY, c.Y)
	}
	return collision.NewRect(minX, minY, maxX-minX, maxY-minY)
}

func (o *Object) nearestMemo(zoom float64) (int, bool) {
	i := sort.Search(len(o.memo), func(i int) bool { return o.memo[i].zoom >= zoom })
	if i < len(o.memo) && math.Abs(o.memo[i].zoom-zoom) <= 0.1 {
		return i, true
	}
	if i > 0 && math.Abs(o.memo[i-1].zoom-zoom) <= 0.1 {
		return i - 1, true
	}
	return 0, false
}

func (o *Object) recordMemo(zoom float64, collides bool) {
	i := sort.Search(len(o.memo), func(i int) bool { return o.memo[i].zoom >= zoom })
	entry := zoomEntry{zoom: zoom, collides: collides}
	o.memo = append(o.memo, zoomEntry{})
	copy(o.memo[i+1:], o.memo[i:])
	o.memo[i] = entry
}
