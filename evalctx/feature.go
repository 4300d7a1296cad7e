// Package evalctx holds the inputs an expression evaluation reads: the
// feature being evaluated, the zoom/density-independent-pixel factor, and
// the shared feature/global state manager.
package evalctx

import (
	"hash/fnv"
	"sort"

	"github.com/openmobilemaps/maps-core-sub000/value"
)

// GeomType is the geometry kind a feature carries, surfaced to expressions
// as the synthetic "$type" property.
type GeomType uint8

const (
	GeomUnknown GeomType = iota
	GeomPoint
	GeomLineString
	GeomPolygon
)

// String returns the geometry-type name used for the synthetic "$type" property.
func (g GeomType) String() string {
	switch g {
	case GeomPoint:
		return "Point"
	case GeomLineString:
		return "LineString"
	case GeomPolygon:
		return "Polygon"
	default:
		return "Unknown"
	}
}

// Property is a single (key, value) pair on a feature.
type Property struct {
	Key   value.Key
	Value value.Variant
}

// FeatureContext is the property bag an expression evaluates against.
// Properties are kept sorted by Key so lookups use a cache-friendly binary
// search instead of a map.
type FeatureContext struct {
	ID       uint64
	GeomType GeomType
	Properties []Property
}

// NewFeatureContext builds a FeatureContext from an unsorted property list.
// When hasTileID is false, the identifier is a stable hash of the property
// list, matching the "otherwise a stable hash of the property list" rule.
func NewFeatureContext(tileID uint64, hasTileID bool, geomType GeomType, props []Property) *FeatureContext {
	sorted := make([]Property, len(props))
	copy(sorted, props)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })

	id := tileID
	if !hasTileID {
		id = hashProperties(sorted)
	}
	return &FeatureContext{ID: id, GeomType: geomType, Properties: sorted}
}

func hashProperties(props []Property) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	writeU64 := func(x uint64) {
		for i := 0; i < 8; i++ {
			buf[i] = byte(x >> (8 * i))
		}
		h.Write(buf[:])
	}
	for _, p := range props {
		writeU64(uint64(p.Key))
		writeU64(p.Value.Hash())
	}
	return h.Sum64()
}

// Get looks up key, diverting the synthetic "$id"/"$type" properties and
// otherwise binary-searching the sorted property list. "zoom" is never a
// feature property; callers must route it through EvaluationContext.Zoom.
func (f *FeatureContext) Get(key value.Key) (value.Variant, bool) {
	switch key {
	case value.KeyID:
		return value.Int64(int64(f.ID)), true
	case value.KeyType:
		return value.String(f.GeomType.String()), true
	}

	lo, hi := 0, len(f.Properties)
	for lo < hi {
		mid := (lo + hi) / 2
		if f.Properties[mid].Key < key {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(f.Properties) && f.Properties[lo].Key == key {
		return f.Properties[lo].Value, true
	}
	return value.Absent, false
}

// Has reports whether key is present (including the synthetic properties).
func (f *FeatureContext) Has(key value.Key) bool {
	_, ok := f.Get(key)
	return ok
}
