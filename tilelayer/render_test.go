package tilelayer

import (
	"testing"

	"github.com/openmobilemaps/maps-core-sub000/value"
)

func TestSortDescriptionsByPassThenLayer(t *testing.T) {
	descs := []TileRenderDescription{
		{RenderPassIndex: 1, LayerIndex: 0},
		{RenderPassIndex: 0, LayerIndex: 2},
		{RenderPassIndex: 0, LayerIndex: 1},
	}
	SortDescriptions(descs)

	want := [][2]int{{0, 1}, {0, 2}, {1, 0}}
	for i, d := range descs {
		if d.RenderPassIndex != want[i][0] || d.LayerIndex != want[i][1] {
			t.Fatalf("descs[%d] = (%d,%d), want %v", i, d.RenderPassIndex, d.LayerIndex, want[i])
		}
	}
}

func TestToWorldConvertsTileLocalExtent(t *testing.T) {
	topLeft := value.Vec2{X: 1000, Y: 2000}
	got := ToWorld(TileCoord{X: 2048, Y: 0}, 4096, topLeft, 256)
	want := value.Vec2{X: 1000 + 0.5*256, Y: 2000}
	if got != want {
		t.Fatalf("ToWorld = %+v, want %+v", got, want)
	}
}
