package expr

import "github.com/openmobilemaps/maps-core-sub000/value"

// Equal reports structural equality of the subtrees rooted at x and y,
// bailing out immediately when they are the same NodeID (the common case
// once hash-consing has run), matching Value::isEqual's identity-first
// comparison in original_source.
func (a *Arena) Equal(x, y NodeID) bool {
	if x == y {
		return true
	}
	if x == NoNode || y == NoNode {
		return false
	}
	nx, ny := &a.nodes[x], &a.nodes[y]
	if nx.kind != ny.kind {
		return false
	}
	switch nx.kind {
	case KindStatic:
		return nx.static.Equal(ny.static)
	case KindGetProperty, KindHasProperty, KindHasNotProperty, KindFeatureState, KindGlobalState:
		return nx.key == ny.key
	case KindPropertyCompare:
		return nx.compareOp == ny.compareOp && a.Equal(nx.lhs, ny.lhs) && a.Equal(nx.rhs, ny.rhs)
	case KindInFilter, KindNotInFilter:
		return nx.key == ny.key && a.Equal(nx.dynamic, ny.dynamic) &&
			sameStringSet(nx.staticStrings, ny.staticStrings) && sameNumberSet(nx.staticNumbers, ny.staticNumbers)
	case KindLogOp:
		return nx.logOp == ny.logOp && a.Equal(nx.lhs, ny.lhs) && a.Equal(nx.rhs, ny.rhs)
	case KindAll, KindAny, KindCoalesce, KindArray:
		return a.equalNodeLists(nx.children, ny.children)
	case KindCase:
		return a.Equal(nx.def, ny.def) && a.equalNodeLists(nx.conds, ny.conds) && a.equalNodeLists(nx.results, ny.results)
	case KindMatch:
		if !a.Equal(nx.lhs, ny.lhs) || !a.Equal(nx.def, ny.def) || !a.equalNodeLists(nx.results, ny.results) {
			return false
		}
		if len(nx.matchSets) != len(ny.matchSets) {
			return false
		}
		for i := range nx.matchSets {
			if len(nx.matchSets[i].values) != len(ny.matchSets[i].values) {
				return false
			}
			for j := range nx.matchSets[i].values {
				if !nx.matchSets[i].values[j].Equal(ny.matchSets[i].values[j]) {
					return false
				}
			}
		}
		return true
	case KindStep:
		return a.Equal(nx.lhs, ny.lhs) && a.Equal(nx.def, ny.def) &&
			sameFloatSlice(nx.stopKeys, ny.stopKeys) && a.equalNodeLists(nx.results, ny.results)
	case KindInterpolated, KindBezierInterpolated:
		return nx.isBezier == ny.isBezier && nx.base == ny.base && nx.bezier == ny.bezier &&
			sameFloatSlice(nx.stopKeys, ny.stopKeys) && a.equalNodeLists(nx.results, ny.results)
	case KindMath:
		return nx.mathOp == ny.mathOp && a.Equal(nx.lhs, ny.lhs) && a.Equal(nx.rhs, ny.rhs)
	case KindLength, KindToString, KindToNumber, KindToBoolean:
		return a.Equal(nx.lhs, ny.lhs)
	case KindScale:
		return nx.factor == ny.factor && a.Equal(nx.lhs, ny.lhs)
	case KindFormat:
		if len(nx.formatEntries) != len(ny.formatEntries) {
			return false
		}
		for i := range nx.formatEntries {
			if !a.Equal(nx.formatEntries[i].text, ny.formatEntries[i].text) ||
				!a.Equal(nx.formatEntries[i].scale, ny.formatEntries[i].scale) {
				return false
			}
		}
		return true
	case KindNumberFormat:
		return a.Equal(nx.lhs, ny.lhs) && a.Equal(nx.minFrac, ny.minFrac) && a.Equal(nx.maxFrac, ny.maxFrac)
	default:
		return false
	}
}

func (a *Arena) equalNodeLists(xs, ys []NodeID) bool {
	if len(xs) != len(ys) {
		return false
	}
	for i := range xs {
		if !a.Equal(xs[i], ys[i]) {
			return false
		}
	}
	return true
}

func sameStringSet(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

func sameNumberSet(a, b map[float64]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

func sameFloatSlice(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Clone deep-copies the subtree rooted at id into dst (which may be a, to
// clone within the same arena), reapplying hash-consing on every rebuilt
// leaf so the clone shares storage with any structurally identical nodes
// dst already owns.
func (a *Arena) Clone(id NodeID, dst *Arena) NodeID {
	if id == NoNode {
		return NoNode
	}
	n := &a.nodes[id]
	switch n.kind {
	case KindStatic:
		return dst.Static(n.static)
	case KindGetProperty:
		return dst.GetProperty(n.key)
	case KindHasProperty:
		return dst.HasProperty(n.key)
	case KindHasNotProperty:
		return dst.HasNotProperty(n.key)
	case KindFeatureState:
		return dst.FeatureState(n.key)
	case KindGlobalState:
		return dst.GlobalState(n.key)
	case KindPropertyCompare:
		return dst.PropertyCompare(a.Clone(n.lhs, dst), a.Clone(n.rhs, dst), n.compareOp)
	case KindInFilter, KindNotInFilter:
		strs := make([]string, 0, len(n.staticStrings))
		for s := range n.staticStrings {
			strs = append(strs, s)
		}
		nums := make([]float64, 0, len(n.staticNumbers))
		for v := range n.staticNumbers {
			nums = append(nums, v)
		}
		dynamic := a.Clone(n.dynamic, dst)
		if n.kind == KindInFilter {
			return dst.InFilter(n.key, strs, nums, dynamic)
		}
		return dst.NotInFilter(n.key, strs, nums, dynamic)
	case KindLogOp:
		return dst.LogOp(n.logOp, a.Clone(n.lhs, dst), a.Clone(n.rhs, dst))
	case KindAll:
		return dst.All(a.cloneList(n.children, dst))
	case KindAny:
		return dst.Any(a.cloneList(n.children, dst))
	case KindCoalesce:
		return dst.Coalesce(a.cloneList(n.children, dst))
	case KindArray:
		return dst.Array(a.cloneList(n.children, dst))
	case KindCase:
		return dst.Case(a.cloneList(n.conds, dst), a.cloneList(n.results, dst), a.Clone(n.def, dst))
	case KindMatch:
		sets := make([][]value.Variant, len(n.matchSets))
		for i, s := range n.matchSets {
			sets[i] = s.values
		}
		return dst.Match(a.Clone(n.lhs, dst), sets, a.cloneList(n.results, dst), a.Clone(n.def, dst))
	case KindStep:
		return dst.Step(a.Clone(n.lhs, dst), n.stopKeys, a.cloneList(n.results, dst), a.Clone(n.def, dst))
	case KindInterpolated:
		return dst.Interpolated(n.base, n.stopKeys, a.cloneList(n.results, dst))
	case KindBezierInterpolated:
		return dst.buildInterpolated(0, n.bezier, true, n.stopKeys, a.cloneList(n.results, dst))
	case KindMath:
		return dst.Math(n.mathOp, a.Clone(n.lhs, dst), a.Clone(n.rhs, dst))
	case KindLength:
		return dst.Length(a.Clone(n.lhs, dst))
	case KindToString:
		return dst.ToString(a.Clone(n.lhs, dst))
	case KindToNumber:
		return dst.ToNumber(a.Clone(n.lhs, dst))
	case KindToBoolean:
		return dst.ToBoolean(a.Clone(n.lhs, dst))
	case KindScale:
		return dst.Scale(a.Clone(n.lhs, dst), n.factor)
	case KindFormat:
		texts := make([]NodeID, len(n.formatEntries))
		scales := make([]NodeID, len(n.formatEntries))
		for i, e := range n.formatEntries {
			texts[i] = a.Clone(e.text, dst)
			scales[i] = a.Clone(e.scale, dst)
		}
		return dst.Format(texts, scales)
	case KindNumberFormat:
		return dst.NumberFormat(a.Clone(n.lhs, dst), a.Clone(n.minFrac, dst), a.Clone(n.maxFrac, dst))
	default:
		return NoNode
	}
}

func (a *Arena) cloneList(ids []NodeID, dst *Arena) []NodeID {
	out := make([]NodeID, len(ids))
	for i, id := range ids {
		out[i] = a.Clone(id, dst)
	}
	return out
}
