package value

import "testing"

func TestRectContains(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	if !r.Contains(5, 5) {
		t.Error("center point should be contained")
	}
	if !r.Contains(0, 0) || !r.Contains(10, 10) {
		t.Error("edges should be contained")
	}
	if r.Contains(11, 5) {
		t.Error("outside point should not be contained")
	}
}

func TestRectIntersects(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := Rect{X: 5, Y: 5, Width: 10, Height: 10}
	c := Rect{X: 20, Y: 20, Width: 5, Height: 5}
	if !a.Intersects(b) {
		t.Error("overlapping rects should intersect")
	}
	if a.Intersects(c) {
		t.Error("disjoint rects should not intersect")
	}
}

func TestTileToWorld(t *testing.T) {
	rc := RectCoord{
		TopLeft:     Coord{SystemIdentifier: 3857, X: 0, Y: 0, Z: 0},
		BottomRight: Coord{SystemIdentifier: 3857, X: 100, Y: 100, Z: 0},
	}
	got := rc.TileToWorld(2048, 2048, 4096)
	if !approxEqual(got.X, 50, 1e-9) || !approxEqual(got.Y, 50, 1e-9) {
		t.Errorf("TileToWorld midpoint = %+v, want (50,50)", got)
	}
	if got.SystemIdentifier != 3857 {
		t.Errorf("SystemIdentifier = %d, want 3857", got.SystemIdentifier)
	}

	origin := rc.TileToWorld(0, 0, 4096)
	if origin.X != 0 || origin.Y != 0 {
		t.Errorf("TileToWorld origin = %+v, want (0,0)", origin)
	}
}
