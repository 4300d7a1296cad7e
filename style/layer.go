package style

import (
	"github.com/openmobilemaps/maps-core-sub000/evalctx"
	"github.com/openmobilemaps/maps-core-sub000/evaluator"
	"github.com/openmobilemaps/maps-core-sub000/expr"
	"github.com/openmobilemaps/maps-core-sub000/styleparser"
	"github.com/openmobilemaps/maps-core-sub000/value"
)

func toBlendMode(v value.Variant) BlendMode { return BlendModeFromString(v.ToString()) }

// Base carries the fields every layer-description style bundle shares,
// grounded on the per-layer metadata contract in spec §6.
type Base struct {
	ID              string
	Source          string
	RenderPassIndex int
	Multiselect     bool
	SelfMasked      bool
	Filter          *evaluator.FeatureValueEvaluator[bool]
	Interactable    *evaluator.FeatureValueEvaluator[bool]
	BlendMode       *evaluator.ValueEvaluator[BlendMode]
}

func buildBase(arena *expr.Arena, m styleparser.LayerMeta) Base {
	return Base{
		ID:              m.ID,
		Source:          m.Source,
		RenderPassIndex: m.RenderPassIndex,
		Multiselect:     m.Multiselect,
		SelfMasked:      m.SelfMasked,
		Filter:          evaluator.NewFeature(arena, m.Filter, toBool),
		Interactable:    evaluator.NewFeature(arena, m.Interactable, toBool),
		BlendMode:       evaluator.New(arena, m.BlendMode, toBlendMode),
	}
}

// Background holds the background-layer paint evaluators.
type Background struct {
	Base
	Color   *evaluator.ValueEvaluator[value.Color]
	Opacity *evaluator.ValueEvaluator[float64]
}

// BuildBackground constructs a Background bundle from a parsed layer.
func BuildBackground(arena *expr.Arena, m styleparser.LayerMeta) *Background {
	return &Background{
		Base:    buildBase(arena, m),
		Color:   evaluator.New(arena, m.Property(m.Paint, arena, "background-color"), toColor),
		Opacity: evaluator.New(arena, m.Property(m.Paint, arena, "background-opacity"), toFloat64),
	}
}

// Line holds the line-layer paint/layout evaluators.
type Line struct {
	Base
	Color   *evaluator.FeatureValueEvaluator[value.Color]
	Width   *evaluator.FeatureValueEvaluator[float64]
	Opacity *evaluator.FeatureValueEvaluator[float64]
	Cap     *evaluator.FeatureValueEvaluator[string]
	Join    *evaluator.FeatureValueEvaluator[string]
}

// BuildLine constructs a Line bundle from a parsed layer.
func BuildLine(arena *expr.Arena, m styleparser.LayerMeta) *Line {
	return &Line{
		Base:    buildBase(arena, m),
		Color:   evaluator.NewFeature(arena, m.Property(m.Paint, arena, "line-color"), toColor),
		Width:   evaluator.NewFeature(arena, m.Property(m.Paint, arena, "line-width"), toFloat64),
		Opacity: evaluator.NewFeature(arena, m.Property(m.Paint, arena, "line-opacity"), toFloat64),
		Cap:     evaluator.NewFeature(arena, m.Property(m.Layout, arena, "line-cap"), toString),
		Join:    evaluator.NewFeature(arena, m.Property(m.Layout, arena, "line-join"), toString),
	}
}

// Polygon holds the fill-layer paint evaluators.
type Polygon struct {
	Base
	FillColor   *evaluator.FeatureValueEvaluator[value.Color]
	FillOpacity *evaluator.FeatureValueEvaluator[float64]
	StrokeColor *evaluator.FeatureValueEvaluator[value.Color]
	StrokeWidth *evaluator.FeatureValueEvaluator[float64]
}

// BuildPolygon constructs a Polygon bundle from a parsed "fill" layer.
func BuildPolygon(arena *expr.Arena, m styleparser.LayerMeta) *Polygon {
	return &Polygon{
		Base:        buildBase(arena, m),
		FillColor:   evaluator.NewFeature(arena, m.Property(m.Paint, arena, "fill-color"), toColor),
		FillOpacity: evaluator.NewFeature(arena, m.Property(m.Paint, arena, "fill-opacity"), toFloat64),
		StrokeColor: evaluator.NewFeature(arena, m.Property(m.Paint, arena, "fill-outline-color"), toColor),
		StrokeWidth: evaluator.NewFeature(arena, m.Property(m.Paint, arena, "fill-outline-width"), toFloat64),
	}
}

// Symbol holds the symbol-layer paint/layout evaluators for the icon,
// stretched-icon, and label primitives (spec §4.8).
type Symbol struct {
	Base
	IconImage       *evaluator.FeatureValueEvaluator[string]
	IconSize        *evaluator.FeatureValueEvaluator[float64]
	IconOpacity     *evaluator.FeatureValueEvaluator[float64]
	TextField       *evaluator.FeatureValueEvaluator[string]
	TextSize        *evaluator.FeatureValueEvaluator[float64]
	TextColor       *evaluator.FeatureValueEvaluator[value.Color]
	TextOpacity     *evaluator.FeatureValueEvaluator[float64]
	SymbolSpacing   *evaluator.ValueEvaluator[float64]
	SymbolPlacement *evaluator.ValueEvaluator[string]
}

// BuildSymbol constructs a Symbol bundle from a parsed layer.
func BuildSymbol(arena *expr.Arena, m styleparser.LayerMeta) *Symbol {
	return &Symbol{
		Base:            buildBase(arena, m),
		IconImage:       evaluator.NewFeature(arena, m.Property(m.Layout, arena, "icon-image"), toString),
		IconSize:        evaluator.NewFeature(arena, m.Property(m.Layout, arena, "icon-size"), toFloat64),
		IconOpacity:     evaluator.NewFeature(arena, m.Property(m.Paint, arena, "icon-opacity"), toFloat64),
		TextField:       evaluator.NewFeature(arena, m.Property(m.Layout, arena, "text-field"), toString),
		TextSize:        evaluator.NewFeature(arena, m.Property(m.Layout, arena, "text-size"), toFloat64),
		TextColor:       evaluator.NewFeature(arena, m.Property(m.Paint, arena, "text-color"), toColor),
		TextOpacity:     evaluator.NewFeature(arena, m.Property(m.Paint, arena, "text-opacity"), toFloat64),
		SymbolSpacing:   evaluator.New(arena, m.Property(m.Layout, arena, "symbol-spacing"), toFloat64),
		SymbolPlacement: evaluator.New(arena, m.Property(m.Layout, arena, "symbol-placement"), toString),
	}
}

// Raster holds the raster-layer paint evaluators (spec §4.9). Each is a
// FeatureValueEvaluator<double> per spec even though raster tiles carry no
// per-feature properties, matching the original engine's typed-evaluator
// uniformity across layer kinds.
type Raster struct {
	Base
	Opacity         *evaluator.FeatureValueEvaluator[float64]
	BrightnessMin   *evaluator.FeatureValueEvaluator[float64]
	BrightnessMax   *evaluator.FeatureValueEvaluator[float64]
	Contrast        *evaluator.FeatureValueEvaluator[float64]
	Saturation      *evaluator.FeatureValueEvaluator[float64]
	Gamma           *evaluator.FeatureValueEvaluator[float64]
	BrightnessShift *evaluator.FeatureValueEvaluator[float64]
}

// BuildRaster constructs a Raster bundle from a parsed layer.
func BuildRaster(arena *expr.Arena, m styleparser.LayerMeta) *Raster {
	return &Raster{
		Base:            buildBase(arena, m),
		Opacity:         evaluator.NewFeature(arena, m.Property(m.Paint, arena, "raster-opacity"), toFloat64),
		BrightnessMin:   evaluator.NewFeature(arena, m.Property(m.Paint, arena, "raster-brightness-min"), toFloat64),
		BrightnessMax:   evaluator.NewFeature(arena, m.Property(m.Paint, arena, "raster-brightness-max"), toFloat64),
		Contrast:        evaluator.NewFeature(arena, m.Property(m.Paint, arena, "raster-contrast"), toFloat64),
		Saturation:      evaluator.NewFeature(arena, m.Property(m.Paint, arena, "raster-saturation"), toFloat64),
		Gamma:           evaluator.NewFeature(arena, m.Property(m.Paint, arena, "raster-gamma"), toFloat64),
		BrightnessShift: evaluator.NewFeature(arena, m.Property(m.Paint, arena, "raster-brightness-shift"), toFloat64),
	}
}

// EffectiveAlpha combines layer alpha and raster-opacity, per spec §4.9:
// "Alpha is a product of layer alpha and raster-opacity."
func (r *Raster) EffectiveAlpha(ctx *evalctx.EvaluationContext, layerAlpha float64) float64 {
	opacity, _ := r.Opacity.GetResult(ctx, 1.0)
	return layerAlpha * opacity
}
