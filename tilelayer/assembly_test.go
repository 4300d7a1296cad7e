package tilelayer

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/openmobilemaps/maps-core-sub000/value"
)

func triangle(offset float32) ([]ebiten.Vertex, []uint32) {
	v := []ebiten.Vertex{
		{DstX: offset, DstY: 0},
		{DstX: offset + 1, DstY: 0},
		{DstX: offset, DstY: 1},
	}
	return v, []uint32{0, 1, 2}
}

func TestBatchBuilderGroupsByStyleHash(t *testing.T) {
	b := NewBatchBuilder()
	v, idx := triangle(0)
	b.Add(1, v, idx)
	b.Add(1, v, idx)
	b.Add(2, v, idx)

	objs := b.RenderObjects(ebiten.BlendSourceOver, nil)
	if len(objs) != 2 {
		t.Fatalf("expected 2 render objects (one per style hash), got %d", len(objs))
	}
	if len(objs[0].Vertices) != 6 {
		t.Fatalf("style-hash 1 batch should merge both triangles: got %d vertices", len(objs[0].Vertices))
	}
	if len(objs[1].Vertices) != 3 {
		t.Fatalf("style-hash 2 batch should hold one triangle: got %d vertices", len(objs[1].Vertices))
	}
}

func TestBatchBuilderSplitsAt16BitLimit(t *testing.T) {
	b := NewBatchBuilder()
	big := make([]ebiten.Vertex, maxIndex16)
	bigIdx := make([]uint32, 0, maxIndex16)
	for i := range big {
		bigIdx = append(bigIdx, uint32(i))
	}
	b.Add(1, big, bigIdx)

	v, idx := triangle(0)
	b.Add(1, v, idx) // pushes this style-hash group past the 16-bit ceiling

	objs := b.RenderObjects(ebiten.BlendSourceOver, nil)
	if len(objs) != 2 {
		t.Fatalf("expected a new batch once the limit is crossed, got %d batches", len(objs))
	}
}

func TestStyleHashStableForSameInputs(t *testing.T) {
	a := StyleHash(value.String("red"), value.Double(0.5))
	b := StyleHash(value.String("red"), value.Double(0.5))
	if a != b {
		t.Fatalf("StyleHash not stable for identical inputs")
	}
	c := StyleHash(value.String("blue"), value.Double(0.5))
	if a == c {
		t.Fatalf("StyleHash collided for different inputs")
	}
}
