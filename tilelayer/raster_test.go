package tilelayer

import (
	"testing"

	"github.com/openmobilemaps/maps-core-sub000/evalctx"
	"github.com/openmobilemaps/maps-core-sub000/expr"
	"github.com/openmobilemaps/maps-core-sub000/style"
	"github.com/openmobilemaps/maps-core-sub000/styleparser"
)

func TestEvaluateRasterStyleCombinesLayerAndOpacity(t *testing.T) {
	arena := expr.NewArena()
	doc, err := styleparser.ParseDocument(arena, []byte(`{
		"layers": [
			{"id": "imagery", "type": "raster", "source": "vec",
			 "paint": {"raster-opacity": 0.5, "raster-contrast": 1.2}}
		]
	}`))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	built := style.BuildDocument(arena, doc)
	raster := built.ByID["imagery"].(style.Raster)

	ctx := &evalctx.EvaluationContext{Zoom: 10, State: evalctx.NewFeatureStateManager()}
	values := EvaluateRasterStyle(&raster, ctx, 0.8)

	if values.Alpha != 0.4 {
		t.Fatalf("Alpha = %v, want 0.8*0.5=0.4", values.Alpha)
	}
	if values.Contrast != 1.2 {
		t.Fatalf("Contrast = %v, want 1.2", values.Contrast)
	}
	if values.Blend != style.BlendNormal {
		t.Fatalf("Blend = %v, want BlendNormal default", values.Blend)
	}
}
