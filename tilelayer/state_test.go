package tilelayer

import "testing"

func TestTileReadyOnceControlSetEmpties(t *testing.T) {
	tile := NewTile(Info{X: 1, Y: 2, Z: 3, Version: 1}, []int{0, 1, 2})
	if tile.Ready() {
		t.Fatalf("tile should not be ready before any sub-layer fulfils")
	}
	tile.FulfillSubLayer(0)
	tile.FulfillSubLayer(1)
	if tile.Ready() {
		t.Fatalf("tile should not be ready with sub-layer 2 still pending")
	}
	tile.FulfillSubLayer(2)
	if !tile.Ready() {
		t.Fatalf("tile should be ready once every sub-layer fulfils")
	}
}

func TestUploadOrderEnforced(t *testing.T) {
	tile := NewTile(Info{}, nil)
	if tile.Upload(StageGeometry) {
		t.Fatalf("geometry upload should fail before mask upload")
	}
	if !tile.Upload(StageMask) {
		t.Fatalf("mask upload should succeed first")
	}
	if !tile.Upload(StageGeometry) {
		t.Fatalf("geometry upload should succeed after mask")
	}
	if !tile.Upload(StageTexture) {
		t.Fatalf("texture upload should succeed after geometry")
	}
}

func TestTransitionTable(t *testing.T) {
	tile := NewTile(Info{}, nil)
	if err := tile.Transition(Visible); err != nil {
		t.Fatalf("PendingSetup -> Visible should be legal: %v", err)
	}
	if err := tile.Transition(Cached); err != nil {
		t.Fatalf("Visible -> Cached should be legal: %v", err)
	}
	if err := tile.Transition(Removed); err != nil {
		t.Fatalf("Cached -> Removed should be legal: %v", err)
	}
	if err := tile.Transition(Visible); err == nil {
		t.Fatalf("Removed -> Visible should be illegal")
	}
}
