package expr

// ZoomRangeOf returns the tight zoom bracket [first stop, last stop] for
// nodes whose value is naturally bounded by their stop list (Interpolated,
// BezierInterpolated, Step). Any other node kind has no statically known
// zoom bracket and ok is false; callers should fall back to a full range.
func (a *Arena) ZoomRangeOf(id NodeID) (min, max float64, ok bool) {
	if id == NoNode {
		return 0, 0, false
	}
	n := &a.nodes[id]
	switch n.kind {
	case KindInterpolated, KindBezierInterpolated, KindStep:
		if len(n.stopKeys) == 0 {
			return 0, 0, false
		}
		return n.stopKeys[0], n.stopKeys[len(n.stopKeys)-1], true
	default:
		return 0, 0, false
	}
}

// IsPureProjection reports whether id is a bare GetProperty node with no
// surrounding coercion or computation — the evaluator skips caching for
// these since the lookup itself is already O(log n) over a sorted property
// list.
func (a *Arena) IsPureProjection(id NodeID) bool {
	return id != NoNode && a.nodes[id].kind == KindGetProperty
}
