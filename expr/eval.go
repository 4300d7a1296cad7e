package expr

import (
	"math"
	"strings"

	"github.com/openmobilemaps/maps-core-sub000/evalctx"
	"github.com/openmobilemaps/maps-core-sub000/value"
)

// Evaluate dispatches on the node's Kind and returns its value under ctx.
// Type mismatches never panic: operations fall back to the ValueVariant
// coercion rules or to value.Absent, per the "never throws" contract.
func (a *Arena) Evaluate(id NodeID, ctx *evalctx.EvaluationContext) value.Variant {
	if id == NoNode {
		return value.Absent
	}
	n := &a.nodes[id]
	switch n.kind {
	case KindStatic:
		return a.evalStatic(n, ctx)
	case KindGetProperty:
		if v, ok := ctx.GetProperty(n.key); ok {
			return v
		}
		return value.Absent
	case KindHasProperty:
		return value.Bool(ctx.HasProperty(n.key))
	case KindHasNotProperty:
		return value.Bool(!ctx.HasProperty(n.key))
	case KindFeatureState:
		if v, ok := ctx.FeatureState(n.key); ok {
			return v
		}
		return value.Absent
	case KindGlobalState:
		if v, ok := ctx.GlobalState(n.key); ok {
			return v
		}
		return value.Absent
	case KindPropertyCompare:
		lhs := a.Evaluate(n.lhs, ctx)
		rhs := a.Evaluate(n.rhs, ctx)
		return value.Bool(comparePropertyValues(lhs, rhs, n.compareOp))
	case KindInFilter:
		return a.evalInFilter(n, ctx, false)
	case KindNotInFilter:
		return a.evalInFilter(n, ctx, true)
	case KindLogOp:
		return a.evalLogOp(n, ctx)
	case KindAll:
		for _, c := range n.children {
			if !a.Evaluate(c, ctx).Truthy() {
				return value.Bool(false)
			}
		}
		return value.Bool(true)
	case KindAny:
		for _, c := range n.children {
			if a.Evaluate(c, ctx).Truthy() {
				return value.Bool(true)
			}
		}
		return value.Bool(false)
	case KindCase:
		for i, c := range n.conds {
			if a.Evaluate(c, ctx).Truthy() {
				return a.Evaluate(n.results[i], ctx)
			}
		}
		return a.Evaluate(n.def, ctx)
	case KindMatch:
		return a.evalMatch(n, ctx)
	case KindStep:
		return a.evalStep(n, ctx)
	case KindInterpolated, KindBezierInterpolated:
		return a.evalInterpolated(n, ctx)
	case KindMath:
		lhs := a.Evaluate(n.lhs, ctx)
		if n.rhs == NoNode {
			return evalMathUnary(n.mathOp, lhs)
		}
		rhs := a.Evaluate(n.rhs, ctx)
		return evalMathBinary(n.mathOp, lhs, rhs)
	case KindLength:
		return value.Int64(a.Evaluate(n.lhs, ctx).Length())
	case KindCoalesce:
		for _, c := range n.children {
			v := a.Evaluate(c, ctx)
			if !v.IsAbsent() {
				return v
			}
		}
		return value.Absent
	case KindArray:
		return a.evalArray(n, ctx)
	case KindFormat:
		return a.evalFormat(n, ctx)
	case KindNumberFormat:
		v := a.Evaluate(n.lhs, ctx)
		minFrac := int(a.Evaluate(n.minFrac, ctx).ToNumber())
		maxFrac := int(a.Evaluate(n.maxFrac, ctx).ToNumber())
		return value.String(value.FormatNumber(v.ToNumber(), minFrac, maxFrac))
	case KindToString:
		return value.String(a.Evaluate(n.lhs, ctx).ToString())
	case KindToNumber:
		return value.Double(a.Evaluate(n.lhs, ctx).ToNumber())
	case KindToBoolean:
		return value.Bool(a.Evaluate(n.lhs, ctx).Truthy())
	case KindScale:
		return value.Double(a.Evaluate(n.lhs, ctx).ToNumber() * n.factor)
	default:
		return value.Absent
	}
}

func (a *Arena) evalStatic(n *node, ctx *evalctx.EvaluationContext) value.Variant {
	if n.static.Kind != value.KindString {
		return n.static
	}
	if v, ok := ctx.GetProperty(n.wholeKey); ok {
		return v
	}
	if len(n.tokens) == 0 {
		return n.static
	}
	var b strings.Builder
	for _, tok := range n.tokens {
		if tok.isPlaceholder {
			if v, ok := ctx.GetProperty(tok.key); ok {
				b.WriteString(v.ToString())
			}
			continue
		}
		b.WriteString(tok.literal)
	}
	return value.String(b.String())
}

func comparePropertyValues(lhs, rhs value.Variant, op CompareOp) bool {
	if lhs.IsAbsent() || rhs.IsAbsent() {
		switch op {
		case CompareEq:
			return lhs.IsAbsent() && rhs.IsAbsent()
		case CompareNe:
			return !(lhs.IsAbsent() && rhs.IsAbsent())
		default:
			return false
		}
	}
	if lhs.Kind == value.KindColor && rhs.Kind == value.KindString {
		if c, ok := value.ParseColor(rhs.Str); ok {
			rhs = value.ColorValue(c)
		}
	} else if rhs.Kind == value.KindColor && lhs.Kind == value.KindString {
		if c, ok := value.ParseColor(lhs.Str); ok {
			lhs = value.ColorValue(c)
		}
	}
	switch op {
	case CompareEq:
		return lhs.Equal(rhs)
	case CompareNe:
		return !lhs.Equal(rhs)
	}
	ord := value.Compare(lhs, rhs)
	switch op {
	case CompareLt:
		return ord == value.Less
	case CompareLe:
		return ord == value.Less || ord == value.EqualOrder
	case CompareGt:
		return ord == value.Greater
	case CompareGe:
		return ord == value.Greater || ord == value.EqualOrder
	default:
		return false
	}
}

func (a *Arena) evalInFilter(n *node, ctx *evalctx.EvaluationContext, negate bool) value.Variant {
	prop, ok := ctx.GetProperty(n.key)
	if !ok {
		return value.Bool(negate)
	}
	found := false
	switch {
	case prop.Kind == value.KindString:
		_, found = n.staticStrings[prop.Str]
	case prop.IsNumeric():
		f, _ := prop.AsFloat64()
		_, found = n.staticNumbers[f]
	}
	if !found && n.dynamic != NoNode {
		dyn := a.Evaluate(n.dynamic, ctx)
		switch {
		case dyn.Kind == value.KindStringVec && prop.Kind == value.KindString:
			for _, s := range dyn.Strs {
				if s == prop.Str {
					found = true
					break
				}
			}
		case dyn.Kind == value.KindFloatVec && prop.IsNumeric():
			f, _ := prop.AsFloat64()
			for _, fv := range dyn.Floats {
				if float64(fv) == f {
					found = true
					break
				}
			}
		}
	}
	if negate {
		return value.Bool(!found)
	}
	return value.Bool(found)
}

func (a *Arena) evalLogOp(n *node, ctx *evalctx.EvaluationContext) value.Variant {
	switch n.logOp {
	case LogNot:
		return value.Bool(!a.Evaluate(n.lhs, ctx).Truthy())
	case LogAnd:
		if !a.Evaluate(n.lhs, ctx).Truthy() {
			return value.Bool(false)
		}
		return value.Bool(a.Evaluate(n.rhs, ctx).Truthy())
	case LogOr:
		if a.Evaluate(n.lhs, ctx).Truthy() {
			return value.Bool(true)
		}
		return value.Bool(a.Evaluate(n.rhs, ctx).Truthy())
	default:
		return value.Bool(false)
	}
}

func (a *Arena) evalMatch(n *node, ctx *evalctx.EvaluationContext) value.Variant {
	input := a.Evaluate(n.lhs, ctx)
	for i, set := range n.matchSets {
		for _, v := range set.values {
			if v.Equal(input) {
				return a.Evaluate(n.results[i], ctx)
			}
		}
	}
	return a.Evaluate(n.def, ctx)
}

func (a *Arena) evalStep(n *node, ctx *evalctx.EvaluationContext) value.Variant {
	x := a.Evaluate(n.lhs, ctx).ToNumber()
	if len(n.stopKeys) == 0 || x < n.stopKeys[0] {
		return a.Evaluate(n.def, ctx)
	}
	best := 0
	for i, stop := range n.stopKeys {
		if stop <= x {
			best = i
		}
	}
	return a.Evaluate(n.results[best], ctx)
}

func (a *Arena) evalInterpolated(n *node, ctx *evalctx.EvaluationContext) value.Variant {
	if len(n.stopKeys) == 0 {
		return value.Absent
	}
	x := ctx.Zoom
	last := len(n.stopKeys) - 1
	if x <= n.stopKeys[0] {
		return a.interpolatedValueAt(n, 0, ctx)
	}
	if x >= n.stopKeys[last] {
		return a.interpolatedValueAt(n, last, ctx)
	}
	i := 0
	for i < last && n.stopKeys[i+1] <= x {
		i++
	}
	f := interpolationFactor(n, x, n.stopKeys[i], n.stopKeys[i+1])
	if n.fastPath {
		va, vb := n.fastPathValues[i], n.fastPathValues[i+1]
		return value.Double(va + (vb-va)*f)
	}
	va := a.Evaluate(n.results[i], ctx)
	vb := a.Evaluate(n.results[i+1], ctx)
	return interpolateValues(va, vb, f)
}

func (a *Arena) interpolatedValueAt(n *node, i int, ctx *evalctx.EvaluationContext) value.Variant {
	if n.fastPath {
		return value.Double(n.fastPathValues[i])
	}
	return a.Evaluate(n.results[i], ctx)
}

func interpolationFactor(n *node, x, aStop, bStop float64) float64 {
	if n.isBezier {
		t := 1 - (bStop-x)/(bStop-aStop)
		return n.bezier.Solve(t, 1e-6)
	}
	if n.base == 1 {
		return (x - aStop) / (bStop - aStop)
	}
	return (math.Pow(n.base, x-aStop) - 1) / (math.Pow(n.base, bStop-aStop) - 1)
}

func interpolateValues(va, vb value.Variant, f float64) value.Variant {
	if va.IsNumeric() && vb.IsNumeric() {
		x, _ := va.AsFloat64()
		y, _ := vb.AsFloat64()
		return value.Double(x + (y-x)*f)
	}
	if va.Kind == value.KindColor && vb.Kind == value.KindColor {
		return value.ColorValue(value.Color{
			R: lerp32(va.Clr.R, vb.Clr.R, f),
			G: lerp32(va.Clr.G, vb.Clr.G, f),
			B: lerp32(va.Clr.B, vb.Clr.B, f),
			A: lerp32(va.Clr.A, vb.Clr.A, f),
		})
	}
	if va.Kind == value.KindFloatVec && vb.Kind == value.KindFloatVec && len(va.Floats) == len(vb.Floats) {
		out := make([]float32, len(va.Floats))
		for i := range out {
			out[i] = lerp32(va.Floats[i], vb.Floats[i], f)
		}
		return value.FloatVec(out)
	}
	if f < 0.5 {
		return va
	}
	return vb
}

func lerp32(x, y float32, f float64) float32 {
	return float32(float64(x) + (float64(y)-float64(x))*f)
}

func evalMathUnary(op MathOp, v value.Variant) value.Variant {
	x := v.ToNumber()
	if op == MathSub {
		return value.Double(-x)
	}
	return value.Double(x)
}

func evalMathBinary(op MathOp, a, b value.Variant) value.Variant {
	x, y := a.ToNumber(), b.ToNumber()
	switch op {
	case MathAdd:
		return value.Double(x + y)
	case MathSub:
		return value.Double(x - y)
	case MathMul:
		return value.Double(x * y)
	case MathDiv:
		return value.Double(x / y)
	case MathMod:
		return value.Double(math.Mod(x, y))
	case MathPow:
		return value.Double(math.Pow(x, y))
	default:
		return value.Absent
	}
}

func (a *Arena) evalArray(n *node, ctx *evalctx.EvaluationContext) value.Variant {
	vals := make([]value.Variant, len(n.children))
	allNumeric, allString := true, true
	for i, c := range n.children {
		v := a.Evaluate(c, ctx)
		vals[i] = v
		if !v.IsNumeric() {
			allNumeric = false
		}
		if v.Kind != value.KindString {
			allString = false
		}
	}
	if allNumeric {
		out := make([]float32, len(vals))
		for i, v := range vals {
			f, _ := v.AsFloat64()
			out[i] = float32(f)
		}
		return value.FloatVec(out)
	}
	if allString {
		out := make([]string, len(vals))
		for i, v := range vals {
			out[i] = v.Str
		}
		return value.StringVec(out)
	}
	return value.Absent
}

func (a *Arena) evalFormat(n *node, ctx *evalctx.EvaluationContext) value.Variant {
	entries := make([]value.FormattedEntry, len(n.formatEntries))
	for i, e := range n.formatEntries {
		text := a.Evaluate(e.text, ctx).ToString()
		scale := float32(1.0)
		if e.scale != NoNode {
			scale = float32(a.Evaluate(e.scale, ctx).ToNumber())
		}
		entries[i] = value.FormattedEntry{Text: text, Scale: scale}
	}
	return value.FormattedStringVec(entries)
}
