package expr

import "github.com/openmobilemaps/maps-core-sub000/value"

// UsedKeys is the set of property/feature-state/global-state keys an
// expression subtree reads. The evaluator builds one per root to decide
// its memoisation class.
type UsedKeys struct {
	Properties   map[value.Key]struct{}
	FeatureState map[value.Key]struct{}
	GlobalState  map[value.Key]struct{}
}

// NewUsedKeys returns an empty set.
func NewUsedKeys() UsedKeys {
	return UsedKeys{
		Properties:   make(map[value.Key]struct{}),
		FeatureState: make(map[value.Key]struct{}),
		GlobalState:  make(map[value.Key]struct{}),
	}
}

func addKey(m map[value.Key]struct{}, k value.Key) { m[k] = struct{}{} }

// Union returns the associative, idempotent union of u and o. Neither
// argument is mutated.
func (u UsedKeys) Union(o UsedKeys) UsedKeys {
	out := NewUsedKeys()
	for k := range u.Properties {
		addKey(out.Properties, k)
	}
	for k := range o.Properties {
		addKey(out.Properties, k)
	}
	for k := range u.FeatureState {
		addKey(out.FeatureState, k)
	}
	for k := range o.FeatureState {
		addKey(out.FeatureState, k)
	}
	for k := range u.GlobalState {
		addKey(out.GlobalState, k)
	}
	for k := range o.GlobalState {
		addKey(out.GlobalState, k)
	}
	return out
}

// IsEmpty reports whether no keys of any kind were recorded.
func (u UsedKeys) IsEmpty() bool {
	return len(u.Properties) == 0 && len(u.FeatureState) == 0 && len(u.GlobalState) == 0
}

// IsStateDependent reports whether the union of feature-state and
// global-state keys is non-empty.
func (u UsedKeys) IsStateDependent() bool {
	return len(u.FeatureState) > 0 || len(u.GlobalState) > 0
}

// OnlyGlobalStateDependent reports state-dependence with no feature-state
// keys at all: only global-state keys are read.
func (u UsedKeys) OnlyGlobalStateDependent() bool {
	return len(u.FeatureState) == 0 && len(u.GlobalState) > 0
}

// IsZoomDependent reports whether the property set contains "zoom".
func (u UsedKeys) IsZoomDependent() bool {
	_, ok := u.Properties[value.KeyZoom]
	return ok
}

// UsedKeys computes the used-key set of the subtree rooted at id.
func (a *Arena) UsedKeys(id NodeID) UsedKeys {
	out := NewUsedKeys()
	a.collectUsedKeys(id, &out)
	return out
}

func (a *Arena) collectUsedKeys(id NodeID, out *UsedKeys) {
	if id == NoNode {
		return
	}
	n := &a.nodes[id]
	switch n.kind {
	case KindStatic:
		for _, tok := range n.tokens {
			if tok.isPlaceholder {
				addKey(out.Properties, tok.key)
			}
		}
		if n.static.Kind == value.KindStringVec && len(n.static.Strs) > 0 && n.static.Strs[0] == "zoom" {
			addKey(out.Properties, value.KeyZoom)
		}
	case KindGetProperty, KindHasProperty, KindHasNotProperty:
		addKey(out.Properties, n.key)
	case KindFeatureState:
		addKey(out.FeatureState, n.key)
	case KindGlobalState:
		addKey(out.GlobalState, n.key)
	case KindPropertyCompare:
		a.collectUsedKeys(n.lhs, out)
		a.collectUsedKeys(n.rhs, out)
	case KindInFilter, KindNotInFilter:
		addKey(out.Properties, n.key)
		a.collectUsedKeys(n.dynamic, out)
	case KindLogOp:
		a.collectUsedKeys(n.lhs, out)
		a.collectUsedKeys(n.rhs, out)
	case KindAll, KindAny, KindCoalesce, KindArray:
		for _, c := range n.children {
			a.collectUsedKeys(c, out)
		}
	case KindCase:
		for _, c := range n.conds {
			a.collectUsedKeys(c, out)
		}
		for _, r := range n.results {
			a.collectUsedKeys(r, out)
		}
		a.collectUsedKeys(n.def, out)
	case KindMatch:
		a.collectUsedKeys(n.lhs, out)
		for _, r := range n.results {
			a.collectUsedKeys(r, out)
		}
		a.collectUsedKeys(n.def, out)
	case KindStep:
		a.collectUsedKeys(n.lhs, out)
		for _, r := range n.results {
			a.collectUsedKeys(r, out)
		}
		a.collectUsedKeys(n.def, out)
	case KindInterpolated, KindBezierInterpolated:
		addKey(out.Properties, value.KeyZoom)
		for _, r := range n.results {
			a.collectUsedKeys(r, out)
		}
	case KindMath:
		a.collectUsedKeys(n.lhs, out)
		a.collectUsedKeys(n.rhs, out)
	case KindLength, KindToString, KindToNumber, KindToBoolean, KindScale:
		a.collectUsedKeys(n.lhs, out)
	case KindFormat:
		for _, e := range n.formatEntries {
			a.collectUsedKeys(e.text, out)
			a.collectUsedKeys(e.scale, out)
		}
	case KindNumberFormat:
		a.collectUsedKeys(n.lhs, out)
		a.collectUsedKeys(n.minFrac, out)
		a.collectUsedKeys(n.maxFrac, out)
	}
}
