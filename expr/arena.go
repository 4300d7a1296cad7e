package expr

import (
	"sync"

	"github.com/openmobilemaps/maps-core-sub000/value"
)

// Arena owns every node of every expression built against it. Expressions
// parsed from the same style document should share one Arena so that
// hash-consing can deduplicate repeated leaves across layers.
type Arena struct {
	mu    sync.RWMutex
	nodes []node

	staticByHash map[uint64][]NodeID
	keyedByKind  map[Kind]map[value.Key]NodeID
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{
		staticByHash: make(map[uint64][]NodeID),
		keyedByKind:  make(map[Kind]map[value.Key]NodeID),
	}
}

func (a *Arena) alloc(n node) NodeID {
	id := NodeID(len(a.nodes))
	a.nodes = append(a.nodes, n)
	return id
}

func (a *Arena) node(id NodeID) *node {
	return &a.nodes[id]
}

// Static interns a literal value as a node, reusing an existing node when an
// Equal Static literal was already built in this arena.
func (a *Arena) Static(v value.Variant) NodeID {
	h := v.Hash()
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, id := range a.staticByHash[h] {
		if a.nodes[id].static.Equal(v) {
			return id
		}
	}
	n := node{kind: KindStatic, static: v}
	if v.Kind == value.KindString {
		n.tokens = parseTokens(v.Str)
		n.wholeKey = value.Intern(v.Str)
	}
	id := a.alloc(n)
	a.staticByHash[h] = append(a.staticByHash[h], id)
	return id
}

func (a *Arena) keyed(kind Kind, key value.Key) NodeID {
	a.mu.Lock()
	defer a.mu.Unlock()
	byKey, ok := a.keyedByKind[kind]
	if !ok {
		byKey = make(map[value.Key]NodeID)
		a.keyedByKind[kind] = byKey
	}
	if id, ok := byKey[key]; ok {
		return id
	}
	id := a.alloc(node{kind: kind, key: key})
	byKey[key] = id
	return id
}

// GetProperty returns (hash-consed) the node that reads key from the
// evaluation context, diverting "zoom" to ctx.Zoom.
func (a *Arena) GetProperty(key value.Key) NodeID { return a.keyed(KindGetProperty, key) }

// HasProperty returns (hash-consed) the presence-test node for key.
func (a *Arena) HasProperty(key value.Key) NodeID { return a.keyed(KindHasProperty, key) }

// HasNotProperty returns (hash-consed) the negated presence-test node for key.
func (a *Arena) HasNotProperty(key value.Key) NodeID { return a.keyed(KindHasNotProperty, key) }

// FeatureState returns (hash-consed) the feature-state lookup node for key.
func (a *Arena) FeatureState(key value.Key) NodeID { return a.keyed(KindFeatureState, key) }

// GlobalState returns (hash-consed) the global-state lookup node for key.
func (a *Arena) GlobalState(key value.Key) NodeID { return a.keyed(KindGlobalState, key) }

// PropertyCompare builds a comparison node.
func (a *Arena) PropertyCompare(lhs, rhs NodeID, op CompareOp) NodeID {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.alloc(node{kind: KindPropertyCompare, lhs: lhs, rhs: rhs, compareOp: op})
}

// InFilter builds a static+optional-dynamic membership test over key. Pass
// NoNode for dynamic when there is no dynamically evaluated list.
func (a *Arena) InFilter(key value.Key, strs []string, nums []float64, dynamic NodeID) NodeID {
	return a.buildInFilter(KindInFilter, key, strs, nums, dynamic)
}

// NotInFilter is the negated counterpart of InFilter.
func (a *Arena) NotInFilter(key value.Key, strs []string, nums []float64, dynamic NodeID) NodeID {
	return a.buildInFilter(KindNotInFilter, key, strs, nums, dynamic)
}

func (a *Arena) buildInFilter(kind Kind, key value.Key, strs []string, nums []float64, dynamic NodeID) NodeID {
	ss := make(map[string]struct{}, len(strs))
	for _, s := range strs {
		ss[s] = struct{}{}
	}
	sn := make(map[float64]struct{}, len(nums))
	for _, n := range nums {
		sn[n] = struct{}{}
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.alloc(node{kind: kind, key: key, staticStrings: ss, staticNumbers: sn, dynamic: dynamic})
}

// LogOp builds a short-circuit AND/OR (rhs required) or NOT (rhs==NoNode) node.
func (a *Arena) LogOp(op LogOpKind, lhs, rhs NodeID) NodeID {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.alloc(node{kind: KindLogOp, lhs: lhs, rhs: rhs, logOp: op})
}

// All builds an n-ary short-circuit AND with the empty-list identity true.
func (a *Arena) All(children []NodeID) NodeID { return a.nary(KindAll, children) }

// Any builds an n-ary short-circuit OR with the empty-list identity false.
func (a *Arena) Any(children []NodeID) NodeID { return a.nary(KindAny, children) }

// Coalesce builds a first-non-monostate-wins node.
func (a *Arena) Coalesce(children []NodeID) NodeID { return a.nary(KindCoalesce, children) }

// Array builds an all-numeric/all-string vector node.
func (a *Arena) Array(children []NodeID) NodeID { return a.nary(KindArray, children) }

func (a *Arena) nary(kind Kind, children []NodeID) NodeID {
	cp := make([]NodeID, len(children))
	copy(cp, children)
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.alloc(node{kind: kind, children: cp})
}

// Case builds a first-truthy-condition-wins node; len(conds) must equal len(results).
func (a *Arena) Case(conds, results []NodeID, def NodeID) NodeID {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.alloc(node{
		kind:    KindCase,
		conds:   append([]NodeID(nil), conds...),
		results: append([]NodeID(nil), results...),
		def:     def,
	})
}

// Match builds an exact-ValueVariant-equality dispatch node; len(sets) must
// equal len(results).
func (a *Arena) Match(input NodeID, sets [][]value.Variant, results []NodeID, def NodeID) NodeID {
	ms := make([]matchSet, len(sets))
	for i, s := range sets {
		ms[i] = matchSet{values: append([]value.Variant(nil), s...)}
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.alloc(node{
		kind:      KindMatch,
		lhs:       input,
		matchSets: ms,
		results:   append([]NodeID(nil), results...),
		def:       def,
	})
}

// Step builds a piecewise-constant node; len(stops) must equal len(results).
func (a *Arena) Step(input NodeID, stops []float64, results []NodeID, def NodeID) NodeID {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.alloc(node{
		kind:     KindStep,
		lhs:      input,
		stopKeys: append([]float64(nil), stops...),
		results:  append([]NodeID(nil), results...),
		def:      def,
	})
}

// Interpolated builds an exponential zoom-interpolation node. When every
// result is a Static numeric literal, the fast path stores the values in a
// flat array and Evaluate skips child dispatch entirely.
func (a *Arena) Interpolated(base float64, stops []float64, results []NodeID) NodeID {
	return a.buildInterpolated(base, value.UnitBezier{}, false, stops, results)
}

// BezierInterpolated builds a cubic-bezier-timed interpolation node.
func (a *Arena) BezierInterpolated(x1, y1, x2, y2 float64, stops []float64, results []NodeID) NodeID {
	return a.buildInterpolated(0, value.NewUnitBezier(x1, y1, x2, y2), true, stops, results)
}

func (a *Arena) buildInterpolated(base float64, bez value.UnitBezier, isBezier bool, stops []float64, results []NodeID) NodeID {
	a.mu.Lock()
	defer a.mu.Unlock()

	fastValues, fast := a.tryFastPathLocked(results)

	kind := KindInterpolated
	if isBezier {
		kind = KindBezierInterpolated
	}
	return a.alloc(node{
		kind:           kind,
		base:           base,
		bezier:         bez,
		isBezier:       isBezier,
		stopKeys:       append([]float64(nil), stops...),
		results:        append([]NodeID(nil), results...),
		fastPath:       fast,
		fastPathValues: fastValues,
	})
}

func (a *Arena) tryFastPathLocked(results []NodeID) ([]float64, bool) {
	out := make([]float64, len(results))
	for i, r := range results {
		n := a.nodes[r]
		if n.kind != KindStatic || !n.static.IsNumeric() {
			return nil, false
		}
		f, _ := n.static.AsFloat64()
		out[i] = f
	}
	return out, true
}

// Math builds an arithmetic node; rhs==NoNode means unary negation ('-').
func (a *Arena) Math(op MathOp, lhs, rhs NodeID) NodeID {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.alloc(node{kind: KindMath, lhs: lhs, rhs: rhs, mathOp: op})
}

// Length builds a Length(child) node.
func (a *Arena) Length(child NodeID) NodeID { return a.unary(KindLength, child) }

// ToString builds a ToString(child) coercion node.
func (a *Arena) ToString(child NodeID) NodeID { return a.unary(KindToString, child) }

// ToNumber builds a ToNumber(child) coercion node.
func (a *Arena) ToNumber(child NodeID) NodeID { return a.unary(KindToNumber, child) }

// ToBoolean builds a ToBoolean(child) coercion node.
func (a *Arena) ToBoolean(child NodeID) NodeID { return a.unary(KindToBoolean, child) }

func (a *Arena) unary(kind Kind, child NodeID) NodeID {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.alloc(node{kind: kind, lhs: child})
}

// Scale builds a Scale(expr, k) node: evaluates child as a number and
// multiplies by factor.
func (a *Arena) Scale(child NodeID, factor float64) NodeID {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.alloc(node{kind: KindScale, lhs: child, factor: factor})
}

// Format builds a FormattedStringVec node from {text, scale?} pairs; a
// NoNode scale defaults to 1.0 at evaluation time (this is how Concat is
// expressed: every entry carries NoNode for scale).
func (a *Arena) Format(texts, scales []NodeID) NodeID {
	entries := make([]formatEntry, len(texts))
	for i, t := range texts {
		sc := NoNode
		if i < len(scales) {
			sc = scales[i]
		}
		entries[i] = formatEntry{text: t, scale: sc}
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.alloc(node{kind: KindFormat, formatEntries: entries})
}

// Concat builds a Format node whose entries all use the default scale 1.0.
func (a *Arena) Concat(texts []NodeID) NodeID {
	return a.Format(texts, nil)
}

// NumberFormat builds a NumberFormat(value, minFrac, maxFrac) node. minFrac
// and maxFrac are themselves expressions (typically Static numbers),
// evaluated via ToNumber at call time.
func (a *Arena) NumberFormat(val, minFrac, maxFrac NodeID) NodeID {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.alloc(node{kind: KindNumberFormat, lhs: val, minFrac: minFrac, maxFrac: maxFrac})
}
