// Package mapcore is the top-level façade: it wires a style document, one
// or more tile sources, and a camera into per-frame TileRenderDescription
// batches. Grounded on the teacher's willow.go RunConfig/Run shape and
// camera.go's view-matrix math, generalized from a scene-graph camera to a
// zoom/pan/rotate camera whose Zoom feeds evalctx.EvaluationContext.Zoom
// directly (spec §3). mapcore never owns a window or event loop: ebiten is
// consumed only for its render-object vocabulary.
package mapcore

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/openmobilemaps/maps-core-sub000/value"
)

// Camera controls the view into the tile world: position, zoom, rotation,
// and viewport, mirroring the teacher's Camera but dropping scene-graph
// follow/bounds-clamp behaviour this domain doesn't need.
type Camera struct {
	X, Y     float64
	Zoom     float64
	Rotation float64 // radians, clockwise
	Viewport value.Rect

	viewMatrix [6]float64
	dirty      bool

	zoomTween *gween.Tween
}

// NewCamera returns a Camera centred at the origin with zoom 1.
func NewCamera(viewport value.Rect) *Camera {
	return &Camera{Zoom: 1, Viewport: viewport, dirty: true}
}

// AnimateZoomTo starts a gween tween from the camera's current zoom to to
// over duration seconds, grounded on the teacher's ScrollTo (camera.go).
func (c *Camera) AnimateZoomTo(to float64, duration float32, easeFn ease.TweenFunc) {
	c.zoomTween = gween.New(float32(c.Zoom), float32(to), duration, easeFn)
}

// Update advances the active zoom tween by dt seconds. Called once per
// frame before building TileRenderDescriptions, so EvaluationContext.Zoom
// reflects mid-animation zoom levels.
func (c *Camera) Update(dt float32) {
	if c.zoomTween == nil {
		return
	}
	z, done := c.zoomTween.Update(dt)
	c.Zoom = float64(z)
	c.dirty = true
	if done {
		c.zoomTween = nil
	}
}

// computeViewMatrix recomputes the cached 2D affine view matrix, matching
// the teacher's Translate(center) * Scale(zoom) * Rotate(-rotation) *
// Translate(-pos) composition.
func (c *Camera) computeViewMatrix() [6]float64 {
	if !c.dirty {
		return c.viewMatrix
	}
	c.dirty = false

	cx := c.Viewport.X + c.Viewport.Width/2
	cy := c.Viewport.Y + c.Viewport.Height/2

	cos := math.Cos(-c.Rotation)
	sin := math.Sin(-c.Rotation)
	z := c.Zoom

	a := z * cos
	b := -z * sin
	cc := z * sin
	d := z * cos
	tx := cx + z*(-cos*c.X+sin*c.Y)
	ty := cy + z*(-sin*c.X-cos*c.Y)

	c.viewMatrix = [6]float64{a, cc, b, d, tx, ty}
	return c.viewMatrix
}

// ViewProjectionMatrix returns the camera's current view as a column-major
// 4x4 homogeneous matrix, the shape collision.NewGrid expects, embedding
// the 2D affine view matrix in the XY plane.
func (c *Camera) ViewProjectionMatrix() [16]float32 {
	m := c.computeViewMatrix()
	var vp [16]float32
	vp[0] = float32(m[0])
	vp[1] = float32(m[1])
	vp[4] = float32(m[2])
	vp[5] = float32(m[3])
	vp[10] = 1
	vp[12] = float32(m[4])
	vp[13] = float32(m[5])
	vp[15] = 1
	return vp
}

// MarkDirty forces the next ViewProjectionMatrix call to recompute.
func (c *Camera) MarkDirty() { c.dirty = true }
