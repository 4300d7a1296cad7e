// Package evaluator implements the memoising value evaluator layered over
// the expr IR: ValueEvaluator/FeatureValueEvaluator compute a dependency
// classification at build time and cache results keyed by the inputs the
// expression actually reads.
package evaluator

import "math"

// ZoomRange is a closed [Min, Max] interval of zoom levels, merged by
// min/max union. IsFull reports the degenerate "no known bound" case
// [0, +Inf].
type ZoomRange struct {
	Min, Max float64
}

// FullZoomRange returns the unbounded range used whenever a zoom-dependent
// expression's bracket can't be determined statically.
func FullZoomRange() ZoomRange {
	return ZoomRange{Min: 0, Max: math.Inf(1)}
}

// IsFull reports whether r is the unbounded [0, +Inf] range.
func (r ZoomRange) IsFull() bool {
	return r.Min == 0 && math.IsInf(r.Max, 1)
}

// Merge returns the union of r and o.
func (r ZoomRange) Merge(o ZoomRange) ZoomRange {
	return ZoomRange{Min: math.Min(r.Min, o.Min), Max: math.Max(r.Max, o.Max)}
}

// Contains reports whether zoom z falls within [Min, Max].
func (r ZoomRange) Contains(z float64) bool {
	return z >= r.Min && z <= r.Max
}
