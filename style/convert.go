// Package style holds the per-layer-type style bundles (spec §2
// "Layer-description style bundles"): plain structs exposing many typed
// evaluators, grounded on the teacher's per-node typed-property shape
// (exported fields of evaluator-wrapper type, not a generic property bag).
package style

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/openmobilemaps/maps-core-sub000/value"
)

func toFloat64(v value.Variant) float64 { return v.ToNumber() }
func toBool(v value.Variant) bool       { return v.Truthy() }
func toString(v value.Variant) string   { return v.ToString() }

func toColor(v value.Variant) value.Color {
	if v.Kind == value.KindColor {
		return v.Clr
	}
	if v.Kind == value.KindString {
		if c, ok := value.ParseColor(v.Str); ok {
			return c
		}
	}
	return value.Color{}
}

// BlendMode selects a compositing operation for a raster/line/symbol layer,
// evaluated from the `blend-mode` layer metadata expression (spec §6).
// Mirrors the teacher's BlendMode/EbitenBlend() enum+mapping shape in
// willow.go, generalized to the style-document's blend-mode vocabulary.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota
	BlendAdd
	BlendMultiply
	BlendScreen
	BlendErase
	BlendNone
)

// EbitenBlend returns the ebiten.Blend value corresponding to b.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendAdd:
		return ebiten.BlendLighter
	case BlendMultiply:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
			BlendFactorSourceAlpha:      ebiten.BlendFactorDestinationAlpha,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendScreen:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorOne,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendErase:
		return ebiten.BlendDestinationOut
	case BlendNone:
		return ebiten.BlendCopy
	default:
		return ebiten.BlendSourceOver
	}
}

// BlendModeFromString maps a style-document blend-mode string to a BlendMode,
// defaulting to BlendNormal (source-over).
func BlendModeFromString(s string) BlendMode {
	switch s {
	case "add", "lighter":
		return BlendAdd
	case "multiply":
		return BlendMultiply
	case "screen":
		return BlendScreen
	case "destination-out", "erase":
		return BlendErase
	case "copy", "none":
		return BlendNone
	default:
		return BlendNormal
	}
}
