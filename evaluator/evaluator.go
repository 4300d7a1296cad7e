package evaluator

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"sort"
	"sync"

	"github.com/openmobilemaps/maps-core-sub000/evalctx"
	"github.com/openmobilemaps/maps-core-sub000/expr"
	"github.com/openmobilemaps/maps-core-sub000/value"
)

// ValueEvaluator wraps an expr root with a memoising cache and a
// dependency-class analysis computed once at construction, per spec §4.5.
// T is the coerced Go type callers want back (float64, value.Color, string, ...).
type ValueEvaluator[T any] struct {
	arena *expr.Arena
	root  expr.NodeID
	toT   func(value.Variant) T

	isStatic         bool
	isZoomDependent  bool
	isStateDependent bool
	onlyGlobal       bool
	isPureProjection bool
	zoomRange        ZoomRange

	propKeys   []value.Key
	stateKeys  []value.Key
	globalKeys []value.Key

	mu             sync.Mutex
	constantCached bool
	constantValue  T
	cache          map[uint64]T
}

// New builds a ValueEvaluator over root. A NoNode root always returns the
// caller-supplied default with ClassConstant.
func New[T any](arena *expr.Arena, root expr.NodeID, toT func(value.Variant) T) *ValueEvaluator[T] {
	e := &ValueEvaluator[T]{
		arena: arena,
		root:  root,
		toT:   toT,
		cache: make(map[uint64]T),
	}
	if root == expr.NoNode {
		e.isStatic = true
		return e
	}

	uk := arena.UsedKeys(root)
	e.isStatic = uk.IsEmpty()
	e.isZoomDependent = uk.IsZoomDependent()
	e.isStateDependent = uk.IsStateDependent()
	e.onlyGlobal = uk.OnlyGlobalStateDependent()
	e.isPureProjection = arena.IsPureProjection(root)

	e.propKeys = sortedKeys(uk.Properties)
	e.stateKeys = sortedKeys(uk.FeatureState)
	e.globalKeys = sortedKeys(uk.GlobalState)

	if min, max, ok := arena.ZoomRangeOf(root); ok {
		e.zoomRange = ZoomRange{Min: min, Max: max}
	} else {
		e.zoomRange = FullZoomRange()
	}
	return e
}

func sortedKeys(m map[value.Key]struct{}) []value.Key {
	out := make([]value.Key, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// GetResult evaluates (or serves a cached result for) ctx, returning the
// value and its invalidation classification.
func (e *ValueEvaluator[T]) GetResult(ctx *evalctx.EvaluationContext, def T) (T, Classification) {
	if e.root == expr.NoNode {
		return def, Classification{Kind: ClassConstant}
	}

	if e.isStatic {
		e.mu.Lock()
		if !e.constantCached {
			e.constantValue = e.toT(e.arena.Evaluate(e.root, ctx))
			e.constantCached = true
		}
		v := e.constantValue
		e.mu.Unlock()
		return v, Classification{Kind: ClassConstant}
	}

	if e.isPureProjection {
		v := e.toT(e.arena.Evaluate(e.root, ctx))
		return v, e.classify(ctx)
	}

	key := e.cacheKey(ctx)
	e.mu.Lock()
	defer e.mu.Unlock()
	if v, ok := e.cache[key]; ok {
		return v, e.classify(ctx)
	}
	v := e.toT(e.arena.Evaluate(e.root, ctx))
	e.cache[key] = v
	return v, e.classify(ctx)
}

func (e *ValueEvaluator[T]) classify(ctx *evalctx.EvaluationContext) Classification {
	switch {
	case e.isZoomDependent && e.isStateDependent:
		return Classification{Kind: ClassZoomAndState, Zoom: e.zoomRange, StateGen: e.stateGen(ctx)}
	case e.isZoomDependent:
		return Classification{Kind: ClassZoomOnly, Zoom: e.zoomRange}
	case e.isStateDependent:
		return Classification{Kind: ClassStateOnly, StateGen: e.stateGen(ctx)}
	default:
		return Classification{Kind: ClassAlways}
	}
}

func (e *ValueEvaluator[T]) stateGen(ctx *evalctx.EvaluationContext) uint64 {
	if ctx.State == nil {
		return 0
	}
	return ctx.State.CurrentStateID()
}

// OnlyGlobalStateDependent reports whether the expression reads
// global-state keys but no feature-state keys.
func (e *ValueEvaluator[T]) OnlyGlobalStateDependent() bool { return e.onlyGlobal }

func (e *ValueEvaluator[T]) cacheKey(ctx *evalctx.EvaluationContext) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	write := func(x uint64) {
		binary.LittleEndian.PutUint64(buf[:], x)
		h.Write(buf[:])
	}
	for _, k := range e.propKeys {
		v, _ := ctx.GetProperty(k)
		write(v.Hash())
	}
	for _, k := range e.stateKeys {
		v, _ := ctx.FeatureState(k)
		write(v.Hash())
	}
	for _, k := range e.globalKeys {
		v, _ := ctx.GlobalState(k)
		write(v.Hash())
	}
	if e.isZoomDependent {
		write(math.Float64bits(ctx.Zoom))
	}
	return h.Sum64()
}

// FeatureValueEvaluator is a ValueEvaluator used for per-feature paint/layout
// properties; it is distinguished from ValueEvaluator only by convention
// (its root is expected to read feature properties), matching the original
// engine's separate ValueEvaluator/FeatureValueEvaluator types which the
// classification fold (see Classification) otherwise unified.
type FeatureValueEvaluator[T any] struct {
	*ValueEvaluator[T]
}

// NewFeature builds a FeatureValueEvaluator over root.
func NewFeature[T any](arena *expr.Arena, root expr.NodeID, toT func(value.Variant) T) *FeatureValueEvaluator[T] {
	return &FeatureValueEvaluator[T]{ValueEvaluator: New(arena, root, toT)}
}
