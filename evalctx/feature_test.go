package evalctx

import (
	"testing"

	"github.com/openmobilemaps/maps-core-sub000/value"
)

func TestFeatureContextSyntheticProperties(t *testing.T) {
	f := NewFeatureContext(42, true, GeomPolygon, nil)
	if v, ok := f.Get(value.KeyID); !ok || v.I64 != 42 {
		t.Errorf("$id = %+v, ok=%v", v, ok)
	}
	if v, ok := f.Get(value.KeyType); !ok || v.Str != "Polygon" {
		t.Errorf("$type = %+v, ok=%v", v, ok)
	}
}

func TestFeatureContextPropertyLookup(t *testing.T) {
	k := value.Intern("class")
	f := NewFeatureContext(1, true, GeomPoint, []Property{{Key: k, Value: value.String("park")}})
	v, ok := f.Get(k)
	if !ok || v.Str != "park" {
		t.Errorf("Get(class) = %+v, ok=%v", v, ok)
	}
	if f.Has(value.Intern("missing-key-xyz")) {
		t.Error("Has reported true for an absent key")
	}
}

func TestFeatureContextStableHashWithoutTileID(t *testing.T) {
	k := value.Intern("name")
	props := []Property{{Key: k, Value: value.String("X")}}
	a := NewFeatureContext(0, false, GeomPoint, props)
	b := NewFeatureContext(0, false, GeomPoint, props)
	if a.ID != b.ID {
		t.Errorf("identical property lists hashed to different ids: %d, %d", a.ID, b.ID)
	}
}

func TestEvaluationContextZoomDiversion(t *testing.T) {
	ctx := &EvaluationContext{Zoom: 11.5}
	v, ok := ctx.GetProperty(value.KeyZoom)
	if !ok || v.Dbl != 11.5 {
		t.Errorf("GetProperty(zoom) = %+v, ok=%v", v, ok)
	}
}
