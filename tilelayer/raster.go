package tilelayer

import (
	"github.com/openmobilemaps/maps-core-sub000/evalctx"
	"github.com/openmobilemaps/maps-core-sub000/style"
)

// RasterStyleValues is the evaluated set of raster style knobs for one
// context, per spec §4.9 ("opacity/brightness-min/brightness-max/contrast/
// saturation/gamma/brightness-shift").
type RasterStyleValues struct {
	Alpha           float64
	BrightnessMin   float64
	BrightnessMax   float64
	Contrast        float64
	Saturation      float64
	Gamma           float64
	BrightnessShift float64
	Blend           style.BlendMode
}

// EvaluateRasterStyle evaluates every raster style evaluator against ctx,
// combining layer alpha and raster-opacity per spec §4.9: "Alpha is a
// product of layer alpha and raster-opacity."
func EvaluateRasterStyle(r *style.Raster, ctx *evalctx.EvaluationContext, layerAlpha float64) RasterStyleValues {
	brightnessMin, _ := r.BrightnessMin.GetResult(ctx, 0.0)
	brightnessMax, _ := r.BrightnessMax.GetResult(ctx, 1.0)
	contrast, _ := r.Contrast.GetResult(ctx, 1.0)
	saturation, _ := r.Saturation.GetResult(ctx, 1.0)
	gamma, _ := r.Gamma.GetResult(ctx, 1.0)
	brightnessShift, _ := r.BrightnessShift.GetResult(ctx, 0.0)
	blend, _ := r.BlendMode.GetResult(ctx, style.BlendNormal)

	return RasterStyleValues{
		Alpha:           r.EffectiveAlpha(ctx, layerAlpha),
		BrightnessMin:   brightnessMin,
		BrightnessMax:   brightnessMax,
		Contrast:        contrast,
		Saturation:      saturation,
		Gamma:           gamma,
		BrightnessShift: brightnessShift,
		Blend:           blend,
	}
}
