// Package value implements the dynamically-typed value system shared by the
// style-expression evaluator: the property-key interner, the tagged-union
// Variant the expression IR produces, and the small geometric primitives
// (Vec2, Rect, Coord) used throughout tile and symbol placement.
package value

// Vec2 is a 2D vector used for positions, offsets, sizes, and directions
// throughout the package.
type Vec2 struct {
	X, Y float64
}

// Add returns the component-wise sum of v and o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns the component-wise difference of v and o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v scaled by k.
func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Range is a general-purpose min/max range.
type Range struct {
	Min, Max float64
}

// Coord is a single point in a named coordinate system (e.g. EPSG:3857,
// or a tile-local integer system). SystemIdentifier lets callers detect
// accidental mixing of coordinate systems without a full CRS stack.
type Coord struct {
	SystemIdentifier int32
	X, Y, Z          float64
}

// RectCoord is an axis-aligned rectangle expressed as two Coords in the
// same coordinate system.
type RectCoord struct {
	TopLeft     Coord
	BottomRight Coord
}

// TileToWorld converts a tile-local integer coordinate in [0, extent] to a
// world-space Coord inside rc, per the conversion contract:
// tile_coords.top_left + (coord/extent) * tile_size.
func (rc RectCoord) TileToWorld(tileX, tileY, extent int32) Coord {
	sizeX := rc.BottomRight.X - rc.TopLeft.X
	sizeY := rc.BottomRight.Y - rc.TopLeft.Y
	fx := float64(tileX) / float64(extent)
	fy := float64(tileY) / float64(extent)
	return Coord{
		SystemIdentifier: rc.TopLeft.SystemIdentifier,
		X:                rc.TopLeft.X + fx*sizeX,
		Y:                rc.TopLeft.Y + fy*sizeY,
		Z:                rc.TopLeft.Z,
	}
}
