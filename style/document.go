package style

import (
	"log"

	"github.com/openmobilemaps/maps-core-sub000/expr"
	"github.com/openmobilemaps/maps-core-sub000/styleparser"
)

// Layer is the common interface every built layer-description bundle
// implements, letting tilelayer iterate layers without a type switch at
// every call site (the filter/blend/interactable fields live on Base).
type Layer interface {
	Layer() Base
}

func (b Background) Layer() Base { return b.Base }
func (l Line) Layer() Base       { return l.Base }
func (p Polygon) Layer() Base    { return p.Base }
func (s Symbol) Layer() Base     { return s.Base }
func (r Raster) Layer() Base     { return r.Base }

// Document is the fully built set of layer-description bundles for a
// parsed style document, in document order.
type Document struct {
	Source   *styleparser.Document
	Layers   []Layer
	ByID     map[string]Layer
}

// BuildDocument parses doc's layer list into typed style bundles. A layer
// whose type doesn't match any recognised kind (spec §6:
// background|raster|line|symbol|fill) is logged and skipped rather than
// aborting the document, matching the parser's "diagnostic, not fatal"
// contract.
func BuildDocument(arena *expr.Arena, doc *styleparser.Document) *Document {
	out := &Document{Source: doc, ByID: make(map[string]Layer, len(doc.Layers))}
	for _, m := range doc.Layers {
		var layer Layer
		switch m.Type {
		case styleparser.LayerBackground:
			layer = *BuildBackground(arena, m)
		case styleparser.LayerLine:
			layer = *BuildLine(arena, m)
		case styleparser.LayerFill:
			layer = *BuildPolygon(arena, m)
		case styleparser.LayerSymbol:
			layer = *BuildSymbol(arena, m)
		case styleparser.LayerRaster:
			layer = *BuildRaster(arena, m)
		default:
			log.Printf("style: unrecognised layer type %q for layer %q, skipping", m.Type, m.ID)
			continue
		}
		out.Layers = append(out.Layers, layer)
		out.ByID[m.ID] = layer
	}
	return out
}
