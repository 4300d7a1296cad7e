package styleparser

import (
	"encoding/json"

	"github.com/openmobilemaps/maps-core-sub000/expr"
)

// SourceType is the recognised `sources[*].type` value (spec §6).
type SourceType string

const (
	SourceVector  SourceType = "vector"
	SourceRaster  SourceType = "raster"
	SourceGeoJSON SourceType = "geojson"
)

// LayerType is the recognised `layers[*].type` value (spec §6).
type LayerType string

const (
	LayerBackground LayerType = "background"
	LayerRaster     LayerType = "raster"
	LayerLine       LayerType = "line"
	LayerSymbol     LayerType = "symbol"
	LayerFill       LayerType = "fill"
)

// Source is one entry of the document's top-level "sources" map.
type Source struct {
	Name string
	Type SourceType
}

// LayerMeta carries the per-layer metadata keys named in spec §6, each
// already reduced to IR where the value is an expression.
type LayerMeta struct {
	ID              string
	Type            LayerType
	Source          string
	RenderPassIndex int
	Interactable    expr.NodeID // expr.NoNode if absent
	Multiselect     bool
	SelfMasked      bool
	BlendMode       expr.NodeID // expr.NoNode if absent
	Filter          expr.NodeID // expr.NoNode if absent
	Paint           map[string]json.RawMessage
	Layout          map[string]json.RawMessage
}

// Document is a parsed style document: sources, layers (still carrying raw
// paint/layout property bags for the style package's typed bundles to
// consume), sprite URL, transition defaults, and free-form metadata.
type Document struct {
	Sources    map[string]Source
	Layers     []LayerMeta
	Sprite     string
	Transition TransitionSpec
	Metadata   map[string]json.RawMessage
}

// TransitionSpec is the document-level default transition timing.
type TransitionSpec struct {
	DurationMS int
	DelayMS    int
}

type rawDocument struct {
	Sources map[string]struct {
		Type SourceType `json:"type"`
	} `json:"sources"`
	Layers []struct {
		ID              string                     `json:"id"`
		Type            LayerType                  `json:"type"`
		Source          string                     `json:"source"`
		RenderPassIndex int                        `json:"render-pass-index"`
		Interactable    json.RawMessage            `json:"interactable"`
		Multiselect     bool                       `json:"multiselect"`
		SelfMasked      bool                       `json:"selfMasked"`
		BlendMode       json.RawMessage            `json:"blend-mode"`
		Filter          json.RawMessage            `json:"filter"`
		Paint           map[string]json.RawMessage `json:"paint"`
		Layout          map[string]json.RawMessage `json:"layout"`
	} `json:"layers"`
	Sprite     string          `json:"sprite"`
	Transition *transitionJSON `json:"transition"`
	Metadata   map[string]json.RawMessage
}

type transitionJSON struct {
	Duration int `json:"duration"`
	Delay    int `json:"delay"`
}

// ParseDocument parses a full style document. Unknown top-level keys are
// ignored (per spec §6). A document that encoding/json cannot decode into
// the known shape (not a JSON object, or a known key holding the wrong JSON
// type) returns a non-nil *Err, since there is no partial document to keep
// building from.
func ParseDocument(arena *expr.Arena, data []byte) (*Document, error) {
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &Err{Context: "document", Err: err}
	}

	doc := &Document{
		Sources:  make(map[string]Source, len(raw.Sources)),
		Sprite:   raw.Sprite,
		Metadata: raw.Metadata,
	}
	for name, s := range raw.Sources {
		doc.Sources[name] = Source{Name: name, Type: s.Type}
	}
	if raw.Transition != nil {
		doc.Transition = TransitionSpec{DurationMS: raw.Transition.Duration, DelayMS: raw.Transition.Delay}
	}

	for _, l := range raw.Layers {
		meta := LayerMeta{
			ID:              l.ID,
			Type:            l.Type,
			Source:          l.Source,
			RenderPassIndex: l.RenderPassIndex,
			Multiselect:     l.Multiselect,
			SelfMasked:      l.SelfMasked,
			Paint:           l.Paint,
			Layout:          l.Layout,
			Interactable:    expr.NoNode,
			BlendMode:       expr.NoNode,
			Filter:          expr.NoNode,
		}
		if len(l.Interactable) > 0 {
			meta.Interactable = ParseExpression(arena, l.Interactable)
		}
		if len(l.BlendMode) > 0 {
			meta.BlendMode = ParseExpression(arena, l.BlendMode)
		}
		if len(l.Filter) > 0 {
			meta.Filter = ParseExpression(arena, l.Filter)
		}
		doc.Layers = append(doc.Layers, meta)
	}
	return doc, nil
}

// Property looks up a paint or layout property by name and parses it as an
// expression, returning expr.NoNode if the key is absent.
func (m *LayerMeta) Property(bag map[string]json.RawMessage, arena *expr.Arena, name string) expr.NodeID {
	raw, ok := bag[name]
	if !ok {
		return expr.NoNode
	}
	return ParseExpression(arena, raw)
}
