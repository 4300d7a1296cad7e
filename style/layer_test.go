package style

import (
	"testing"

	"github.com/openmobilemaps/maps-core-sub000/evalctx"
	"github.com/openmobilemaps/maps-core-sub000/expr"
	"github.com/openmobilemaps/maps-core-sub000/styleparser"
	"github.com/openmobilemaps/maps-core-sub000/value"
)

func TestBuildDocumentAllLayerKinds(t *testing.T) {
	arena := expr.NewArena()
	doc, err := styleparser.ParseDocument(arena, []byte(`{
		"sources": {"vec": {"type": "vector"}},
		"layers": [
			{"id": "bg", "type": "background", "paint": {"background-color": "#112233", "background-opacity": 0.5}},
			{"id": "roads", "type": "line", "source": "vec",
			 "paint": {"line-color": "#ff0000", "line-width": ["interpolate", ["linear"], ["zoom"], 10, 1, 18, 6]}},
			{"id": "water", "type": "fill", "source": "vec", "paint": {"fill-color": "#0000ff", "fill-opacity": 0.8}},
			{"id": "labels", "type": "symbol", "source": "vec",
			 "layout": {"text-field": ["get", "name"], "symbol-spacing": 250}},
			{"id": "imagery", "type": "raster", "source": "vec", "paint": {"raster-opacity": 0.9}}
		]
	}`))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	built := BuildDocument(arena, doc)
	if len(built.Layers) != 5 {
		t.Fatalf("got %d layers, want 5", len(built.Layers))
	}

	ctx := &evalctx.EvaluationContext{Zoom: 14, Feature: evalctx.NewFeatureContext(1, true, evalctx.GeomPoint, nil), State: evalctx.NewFeatureStateManager()}

	bg := built.ByID["bg"].(Background)
	color, _ := bg.Color.GetResult(ctx, value.Color{})
	if color.R == 0 && color.G == 0 && color.B == 0 {
		t.Errorf("expected parsed background color, got zero value")
	}

	line := built.ByID["roads"].(Line)
	width, _ := line.Width.GetResult(ctx, 0)
	if width <= 1 || width >= 6 {
		t.Errorf("interpolated line width at zoom 14 out of range: %v", width)
	}

	sym := built.ByID["labels"].(Symbol)
	spacing, _ := sym.SymbolSpacing.GetResult(ctx, 0)
	if spacing != 250 {
		t.Errorf("symbol-spacing = %v, want 250", spacing)
	}

	raster := built.ByID["imagery"].(Raster)
	op, _ := raster.Opacity.GetResult(ctx, 0)
	if op != 0.9 {
		t.Errorf("raster-opacity = %v, want 0.9", op)
	}
}
