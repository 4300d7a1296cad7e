package tilelayer

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/openmobilemaps/maps-core-sub000/value"
)

// RenderObject is the render-thread's opaque GPU-object handle; its
// lifetime is owned by the (out-of-scope) graphics factory, matching the
// "Render output ... references GPU objects whose lifetime is managed by
// the engine's graphics factory" contract in spec §6.
type RenderObject struct {
	Vertices []ebiten.Vertex
	Indices  []uint16
	Texture  *ebiten.Image
	Blend    ebiten.Blend
}

// TileRenderDescription is one sub-layer's contribution to a frame, per
// spec §4.7.
type TileRenderDescription struct {
	LayerIndex      int
	SourceHash      uint64
	ZoomID          int
	RenderObjects   []RenderObject
	Mask            *RenderObject
	ModifiesMask    bool
	SelfMasked      bool
	RenderPassIndex int
}

// SortDescriptions orders descs by (render_pass_index, layer_index) per
// spec §6's "Render output" contract, in place.
func SortDescriptions(descs []TileRenderDescription) {
	// insertion sort: frame-sized slices, already near-sorted across frames.
	for i := 1; i < len(descs); i++ {
		for j := i; j > 0 && less(descs[j], descs[j-1]); j-- {
			descs[j], descs[j-1] = descs[j-1], descs[j]
		}
	}
}

func less(a, b TileRenderDescription) bool {
	if a.RenderPassIndex != b.RenderPassIndex {
		return a.RenderPassIndex < b.RenderPassIndex
	}
	return a.LayerIndex < b.LayerIndex
}

// GeomType is the per-feature geometry shape a FeatureIterator yields.
type GeomType uint8

const (
	GeomPoint GeomType = iota
	GeomLineString
	GeomPolygon
)

// Feature is one vector-tile feature: its geometry-type/id/property bag
// plus tile-local geometry (spec §6: "feature iterator producing {geom_type,
// id?, properties} and per-feature geometry as polylines / polygon rings /
// points").
type Feature struct {
	GeomType GeomType
	ID       uint64
	HasID    bool
	Properties []value.Variant // paired externally with interned keys by the caller
	PropertyKeys []value.Key

	// Points holds the feature's geometry: one path for a line, one ring
	// per polygon ring (outer first), or a single point.
	Points [][]TileCoord
}

// TileCoord is a tile-local integer coordinate in [0, Extent].
type TileCoord struct {
	X, Y int32
}

// FeatureIterator is the external vector-tile decoder collaborator (spec
// §6, "Non-goals: no vector-tile wire decoder"). Next advances to the next
// feature and reports whether one was produced.
type FeatureIterator interface {
	Next() (Feature, bool)
}

// ToWorld converts a tile-local coordinate to world space, per spec §6:
// "tile_coords.top_left + (coord/extent) * tile_size".
func ToWorld(c TileCoord, extent int32, topLeft value.Vec2, tileSize float64) value.Vec2 {
	fx := float64(c.X) / float64(extent)
	fy := float64(c.Y) / float64(extent)
	return value.Vec2{
		X: topLeft.X + fx*tileSize,
		Y: topLeft.Y + fy*tileSize,
	}
}
