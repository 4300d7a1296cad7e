// Package collision implements the tile-level symbol/collision engine: an
// angle-aware, screen-space grid that accepts projected oriented rectangles
// and circles and decides, deterministically and order-sensitively, which
// labels/icons survive onto the final frame (spec §4.6).
package collision

import (
	"math"
)

// Result is the outcome of a try-insert call.
type Result uint8

const (
	// Placed means the shape did not overlap anything already stored and
	// has been inserted into every cell it covers.
	Placed Result = iota
	// Collides means the shape overlapped an existing entry (or, for a
	// circle bundle, had nothing left in view) and was not inserted.
	Collides
)

// Rect is an axis-aligned rectangle in grid (projected screen) space.
// Widths/heights are always normalised non-negative by NewRect.
type Rect struct {
	X, Y, W, H float64
}

// NewRect builds a Rect from possibly-signed width/height, normalising so
// X,Y is always the top-left corner (mirrors the "signed widths are
// normalised" contract in spec §4.6).
func NewRect(x, y, w, h float64) Rect {
	if w < 0 {
		x += w
		w = -w
	}
	if h < 0 {
		y += h
		h = -h
	}
	return Rect{X: x, Y: y, W: w, H: h}
}

// Circle is a circle in grid (projected screen) space.
type Circle struct {
	CX, CY, R float64
}

// overlapsRect reports whether two AABBs overlap. The comparisons are
// strict, so rects that only touch along an edge do not overlap.
func overlapsRect(a, b Rect) bool {
	return a.X < b.X+b.W && a.X+a.W > b.X && a.Y < b.Y+b.H && a.Y+a.H > b.Y
}

// overlapsRectCircle clamps the circle centre to the rect and compares the
// squared distance to the squared radius.
func overlapsRectCircle(r Rect, c Circle) bool {
	cx := clamp(c.CX, r.X, r.X+r.W)
	cy := clamp(c.CY, r.Y, r.Y+r.H)
	dx := c.CX - cx
	dy := c.CY - cy
	return dx*dx+dy*dy <= c.R*c.R
}

// overlapsCircle compares squared centre distance to the squared sum of radii.
func overlapsCircle(a, b Circle) bool {
	dx := a.CX - b.CX
	dy := a.CY - b.CY
	rs := a.R + b.R
	return dx*dx+dy*dy <= rs*rs
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// indexRange is the set of grid cells (inclusive) a projected shape covers.
type indexRange struct {
	xMin, xMax, yMin, yMax int
	empty                  bool
}

type cell struct {
	rects   []Rect
	circles []Circle
}

// Grid is a write-once-per-frame spatial hash of oriented rectangles and
// circles, built from a view-projection matrix, a viewport size, and a
// rotation angle applied to incoming shapes before projection. Per spec §4.9
// design notes, a fresh Grid is built every frame rather than reused across
// frames, which keeps insertion order (and therefore collision outcome)
// deterministic.
type Grid struct {
	vp       [16]float32
	viewport [2]float64
	angle    float64 // radians
	cellSize float64
	nx, ny   int
	cells    []cell // row-major, len = nx*ny
}

// NewGrid constructs a grid for one frame. angleDeg is the grid rotation in
// degrees (spec §4.6: "a grid angle (degrees)"). Cell side is
// min(w,h)/20, rounded up to a whole number of cells per axis.
func NewGrid(vpMatrix [16]float32, width, height float64, angleDeg float64) *Grid {
	cellSize := math.Min(width, height) / 20
	if cellSize <= 0 {
		cellSize = 1
	}
	nx := int(math.Ceil(width / cellSize))
	ny := int(math.Ceil(height / cellSize))
	if nx < 1 {
		nx = 1
	}
	if ny < 1 {
		ny = 1
	}
	g := &Grid{
		vp:       vpMatrix,
		viewport: [2]float64{width, height},
		angle:    angleDeg * math.Pi / 180,
		cellSize: cellSize,
		nx:       nx,
		ny:       ny,
		cells:    make([]cell, nx*ny),
	}
	return g
}

// project rotates (x,y) by the grid angle around the origin, then applies
// the view-projection matrix's 2D affine part (column-major 4x4, using the
// x/y/w row relevant to a screen-space projection).
func (g *Grid) project(x, y float64) (float64, float64) {
	sin, cos := math.Sincos(g.angle)
	rx := x*cos - y*sin
	ry := x*sin + y*cos

	m := g.vp
	px := float64(m[0])*rx + float64(m[4])*ry + float64(m[12])
	py := float64(m[1])*rx + float64(m[5])*ry + float64(m[13])
	pw := float64(m[3])*rx + float64(m[7])*ry + float64(m[15])
	if pw == 0 {
		pw = 1
	}
	return px / pw, py / pw
}

// cellRange converts a projected AABB into an inclusive index range,
// clamped to the grid. Fully-outside ranges are flagged empty.
func (g *Grid) cellRange(minX, minY, maxX, maxY float64) indexRange {
	xMin := int(math.Floor(minX / g.cellSize))
	yMin := int(math.Floor(minY / g.cellSize))
	xMax := int(math.Floor(maxX / g.cellSize))
	yMax := int(math.Floor(maxY / g.cellSize))

	if xMax < 0 || yMax < 0 || xMin >= g.nx || yMin >= g.ny {
		return indexRange{empty: true}
	}
	if xMin < 0 {
		xMin = 0
	}
	if yMin < 0 {
		yMin = 0
	}
	if xMax >= g.nx {
		xMax = g.nx - 1
	}
	if yMax >= g.ny {
		yMax = g.ny - 1
	}
	return indexRange{xMin: xMin, xMax: xMax, yMin: yMin, yMax: yMax}
}

func (g *Grid) cellAt(cx, cy int) *cell {
	return &g.cells[cy*g.nx+cx]
}

// projectedRect projects the four corners of world rect r and returns its
// axis-aligned projected bounding box, along with the covered cell range.
func (g *Grid) projectedRect(r Rect) (Rect, indexRange) {
	x0, y0 := g.project(r.X, r.Y)
	x1, y1 := g.project(r.X+r.W, r.Y)
	x2, y2 := g.project(r.X, r.Y+r.H)
	x3, y3 := g.project(r.X+r.W, r.Y+r.H)

	minX := math.Min(math.Min(x0, x1), math.Min(x2, x3))
	maxX := math.Max(math.Max(x0, x1), math.Max(x2, x3))
	minY := math.Min(math.Min(y0, y1), math.Min(y2, y3))
	maxY := math.Max(math.Max(y0, y1), math.Max(y2, y3))

	pr := NewRect(minX, minY, maxX-minX, maxY-minY)
	return pr, g.cellRange(minX, minY, maxX, maxY)
}

// projectedCircle projects a circle's centre and the end of its radius
// vector (centre + (R, 0)); with (rx, ry) the projected radius vector, the
// projected radius is sqrt(rx^2+ry^2), per DESIGN NOTES §9's resolution of
// the getProjectedCircle radius formula.
func (g *Grid) projectedCircle(c Circle) (Circle, indexRange) {
	cx, cy := g.project(c.CX, c.CY)
	ex, ey := g.project(c.CX+c.R, c.CY)
	rx, ry := ex-cx, ey-cy
	r := math.Sqrt(rx*rx + ry*ry)
	pc := Circle{CX: cx, CY: cy, R: r}
	ir := g.cellRange(cx-r, cy-r, cx+r, cy+r)
	return pc, ir
}

// TryInsertRect projects rect (rotated by the grid angle, then through the
// view-projection matrix), tests it against every rect/circle already
// stored in its covered cells, and inserts it into all of them if and only
// if nothing overlaps. A rect that falls fully outside the grid is treated
// as out-of-view and placed trivially (spec §4.6: "no-collide no-op").
func (g *Grid) TryInsertRect(r Rect) Result {
	pr, ir := g.projectedRect(r)
	if ir.empty {
		return Placed
	}
	for cy := ir.yMin; cy <= ir.yMax; cy++ {
		for cx := ir.xMin; cx <= ir.xMax; cx++ {
			c := g.cellAt(cx, cy)
			for _, other := range c.rects {
				if overlapsRect(pr, other) {
					return Collides
				}
			}
			for _, other := range c.circles {
				if overlapsRectCircle(pr, other) {
					return Collides
				}
			}
		}
	}
	for cy := ir.yMin; cy <= ir.yMax; cy++ {
		for cx := ir.xMin; cx <= ir.xMax; cx++ {
			c := g.cellAt(cx, cy)
			c.rects = append(c.rects, pr)
		}
	}
	return Placed
}

// TryInsertCircles projects every circle in the bundle, drops any that fall
// fully outside the grid, and tests the survivors against every rect/circle
// already stored. If every circle in the bundle drops out of view, the
// result is Collides ("nothing would be visible") — this is the documented
// asymmetry with TryInsertRect's empty-range handling, preserved verbatim
// per DESIGN NOTES §9.
func (g *Grid) TryInsertCircles(circles []Circle) Result {
	type projected struct {
		c  Circle
		ir indexRange
	}
	kept := make([]projected, 0, len(circles))
	for _, c := range circles {
		pc, ir := g.projectedCircle(c)
		if ir.empty {
			continue
		}
		kept = append(kept, projected{c: pc, ir: ir})
	}
	if len(kept) == 0 {
		return Collides
	}

	for _, p := range kept {
		for cy := p.ir.yMin; cy <= p.ir.yMax; cy++ {
			for cx := p.ir.xMin; cx <= p.ir.xMax; cx++ {
				cell := g.cellAt(cx, cy)
				for _, other := range cell.rects {
					if overlapsRectCircle(other, p.c) {
						return Collides
					}
				}
				for _, other := range cell.circles {
					if overlapsCircle(p.c, other) {
						return Collides
					}
				}
			}
		}
	}

	for _, p := range kept {
		for cy := p.ir.yMin; cy <= p.ir.yMax; cy++ {
			for cx := p.ir.xMin; cx <= p.ir.xMax; cx++ {
				cell := g.cellAt(cx, cy)
				cell.circles = append(cell.circles, p.c)
			}
		}
	}
	return Placed
}
