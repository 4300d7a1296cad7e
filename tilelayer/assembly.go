package tilelayer

import (
	"hash/fnv"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/openmobilemaps/maps-core-sub000/value"
)

// maxIndex16 is the largest index a 16-bit index buffer can address; a
// batch must never accumulate more vertices than this (spec §4.9:
// "polygons with more than 65,535 vertices must be split").
const maxIndex16 = 65535

// Triangulator is the ear-cutting triangulation external collaborator
// (spec §4.9: "triangulated with an ear-cutting algorithm (external
// collaborator)"). Rings is outer-ring-first, holes following, each ring a
// closed polyline in world space. Triangulate returns a flat vertex list
// and a matching index list (not yet split to the 16-bit limit).
type Triangulator interface {
	Triangulate(rings [][]value.Vec2) (vertices []value.Vec2, indices []uint32, err error)
}

// polygonBatch accumulates one style-hash group's triangulated geometry
// until it would cross the 16-bit index limit.
type polygonBatch struct {
	styleHash uint64
	vertices  []ebiten.Vertex
	indices   []uint16
}

// BatchBuilder groups triangulated polygon geometry into vertex/index
// buffers no larger than maxIndex16, splitting into additional batches per
// style-hash group as the limit is crossed (spec §4.9: "each batch is
// grouped by a style hash ... so that all polygons sharing a style animate
// together").
type BatchBuilder struct {
	batches map[uint64][]*polygonBatch
	order   []uint64
}

// NewBatchBuilder returns an empty BatchBuilder.
func NewBatchBuilder() *BatchBuilder {
	return &BatchBuilder{batches: make(map[uint64][]*polygonBatch)}
}

// StyleHash computes the stable hash of a feature's evaluated style keys
// for the current context (spec §4.9: "a stable hash of the evaluated
// style keys for the feature's context").
func StyleHash(values ...value.Variant) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	for _, v := range values {
		x := v.Hash()
		for i := 0; i < 8; i++ {
			buf[i] = byte(x >> (8 * i))
		}
		h.Write(buf[:])
	}
	return h.Sum64()
}

// Add appends one triangulated polygon's vertices/indices (color already
// baked into each ebiten.Vertex by the caller) to the batch for styleHash,
// opening a new batch if the current one would exceed maxIndex16 vertices.
// A polygon with more than maxIndex16 vertices of its own fits no batch; it
// is logged and dropped.
func (b *BatchBuilder) Add(styleHash uint64, vertices []ebiten.Vertex, localIndices []uint32) {
	if len(vertices) > maxIndex16 {
		log.Printf("tilelayer: dropping polygon with %d vertices (16-bit index limit is %d)", len(vertices), maxIndex16)
		return
	}
	group := b.batches[styleHash]
	if len(group) == 0 {
		b.order = append(b.order, styleHash)
	}

	var cur *polygonBatch
	if len(group) > 0 {
		cur = group[len(group)-1]
	}
	if cur == nil || len(cur.vertices)+len(vertices) > maxIndex16 {
		cur = &polygonBatch{styleHash: styleHash}
		group = append(group, cur)
		b.batches[styleHash] = group
	}

	base := uint16(len(cur.vertices))
	cur.vertices = append(cur.vertices, vertices...)
	for _, idx := range localIndices {
		cur.indices = append(cur.indices, base+uint16(idx))
	}
}

// RenderObjects flattens every accumulated batch, in style-hash insertion
// order, into RenderObjects ready to attach to a TileRenderDescription.
func (b *BatchBuilder) RenderObjects(blend ebiten.Blend, texture *ebiten.Image) []RenderObject {
	var out []RenderObject
	for _, hash := range b.order {
		for _, batch := range b.batches[hash] {
			out = append(out, RenderObject{
				Vertices: batch.vertices,
				Indices:  batch.indices,
				Texture:  texture,
				Blend:    blend,
			})
		}
	}
	return out
}
