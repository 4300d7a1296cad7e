// Package expr implements the style-expression intermediate representation:
// a DAG of tagged nodes stored in an arena and addressed by NodeID, per the
// "tagged sum over owned handles" dispatch style (see DESIGN.md). Nodes are
// immutable once built; identical Static/property-lookup leaves are
// hash-consed during construction so equality can bail out on identity.
package expr

import "github.com/openmobilemaps/maps-core-sub000/value"

// NodeID addresses a node inside an Arena. NoNode marks an absent child
// (e.g. the right-hand operand of unary negation, or an omitted dynamic
// list in InFilter).
type NodeID int32

// NoNode is the sentinel for "no node".
const NoNode NodeID = -1

// Kind tags which operational contract a node implements.
type Kind uint8

const (
	KindStatic Kind = iota
	KindGetProperty
	KindHasProperty
	KindHasNotProperty
	KindFeatureState
	KindGlobalState
	KindPropertyCompare
	KindInFilter
	KindNotInFilter
	KindLogOp
	KindAll
	KindAny
	KindCase
	KindMatch
	KindStep
	KindInterpolated
	KindBezierInterpolated
	KindMath
	KindLength
	KindCoalesce
	KindArray
	KindFormat
	KindNumberFormat
	KindToString
	KindToNumber
	KindToBoolean
	KindScale
)

// CompareOp is the operator carried by a PropertyCompare node.
type CompareOp uint8

const (
	CompareEq CompareOp = iota
	CompareNe
	CompareLt
	CompareLe
	CompareGt
	CompareGe
)

// LogOpKind is the operator carried by a LogOp node.
type LogOpKind uint8

const (
	LogAnd LogOpKind = iota
	LogOr
	LogNot
)

// MathOp is the operator carried by a Math node.
type MathOp uint8

const (
	MathAdd MathOp = iota
	MathSub
	MathMul
	MathDiv
	MathMod
	MathPow
)

// matchSet is one ["values...", result] arm of a Match node.
type matchSet struct {
	values []value.Variant
}

// strToken is one piece of a parsed Static-string token stream: either a
// literal run of text, or a {key} placeholder to substitute.
type strToken struct {
	literal       string
	key           value.Key
	isPlaceholder bool
}

// formatEntry is one {text, scale} pair inside a Format/Concat node.
type formatEntry struct {
	text  NodeID
	scale NodeID // NoNode means "use scale 1.0"
}

// node is the single tagged-union representation every Kind is stored as.
// Only the fields relevant to Kind are populated; the zero value of the
// rest is never read by Evaluate/UsedKeys/Equal for that kind.
type node struct {
	kind Kind

	static   value.Variant // KindStatic
	tokens   []strToken    // KindStatic, only when static.Kind == KindString: parsed {key} substitutions
	wholeKey value.Key     // KindStatic string: the whole literal interned as a property key, for the direct-lookup rule
	key    value.Key     // KindGetProperty/HasProperty/HasNotProperty/FeatureState/GlobalState/InFilter/NotInFilter

	lhs, rhs NodeID // KindPropertyCompare, KindMath, KindLogOp (rhs==NoNode for NOT/unary), KindScale/KindLength/KindToString/KindToNumber/KindToBoolean (lhs only)

	children []NodeID // KindAll/KindAny/KindCoalesce/KindArray

	compareOp CompareOp // KindPropertyCompare
	logOp     LogOpKind // KindLogOp
	mathOp    MathOp    // KindMath

	// KindInFilter/KindNotInFilter
	staticStrings map[string]struct{}
	staticNumbers map[float64]struct{}
	dynamic       NodeID // NoNode if no dynamic list

	// KindCase: conds[i] -> results[i]; KindMatch: input=lhs, matchSets[i] -> results[i]; KindStep: input=lhs, stopKeys[i] -> results[i]
	conds     []NodeID
	results   []NodeID
	def       NodeID
	matchSets []matchSet
	stopKeys  []float64

	// KindInterpolated / KindBezierInterpolated (input is always ctx.zoom)
	base           float64
	bezier         value.UnitBezier
	isBezier       bool
	fastPath       bool
	fastPathValues []float64 // parallel to stopKeys, populated iff fastPath

	// KindFormat
	formatEntries []formatEntry

	// KindNumberFormat: value=lhs, minFrac, maxFrac are child expressions
	minFrac, maxFrac NodeID

	// KindScale
	factor float64
}
