package sprite

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestLoadParsesRegionsAndStretchBands(t *testing.T) {
	data := []byte(`{
		"pin": {"x": 0, "y": 0, "width": 20, "height": 30, "pixelRatio": 2},
		"banner": {"x": 20, "y": 0, "width": 40, "height": 12,
			"stretchX": [[10, 30]], "stretchY": [[2, 10]]}
	}`)
	sheet, err := Load(data, ebiten.NewImage(64, 64))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	pin, ok := sheet.Region("pin")
	if !ok || pin.Width != 20 || pin.PixelRatio != 2 {
		t.Fatalf("pin = %+v, ok=%v", pin, ok)
	}

	banner, ok := sheet.Region("banner")
	if !ok || len(banner.StretchX) != 1 || banner.StretchX[0] != (Band{A: 10, B: 30}) {
		t.Fatalf("banner = %+v, ok=%v", banner, ok)
	}
	if banner.PixelRatio != 1 {
		t.Fatalf("banner default pixelRatio = %v, want 1", banner.PixelRatio)
	}
}

func TestRegionMissingReturnsPlaceholderAndLogsOnce(t *testing.T) {
	sheet, err := Load([]byte(`{}`), ebiten.NewImage(1, 1))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	r, ok := sheet.Region("nope")
	if ok {
		t.Fatalf("expected ok=false for missing region")
	}
	if r.Width != 0 || r.Height != 0 {
		t.Fatalf("expected zero-sized placeholder, got %+v", r)
	}
	// Second lookup must not panic or duplicate state; warned map dedupes.
	if sheet.Has("nope") {
		t.Fatalf("Has should report false for unknown region")
	}
	sheet.Region("nope")
}
