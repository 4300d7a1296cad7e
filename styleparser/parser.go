// Package styleparser builds expression IR and layer-description skeletons
// from a Mapbox-style JSON document (spec §4.4). Parsing never aborts the
// document: an unrecognised head is logged and reduced to expr.NoNode, per
// spec §7's "diagnostic, not fatal" parse-error contract.
package styleparser

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/openmobilemaps/maps-core-sub000/expr"
	"github.com/openmobilemaps/maps-core-sub000/value"
)

// Debug gates parser warning logs, mirroring the teacher's package-level
// globalDebug toggle (see value/intern.go's process-wide conventions and
// SPEC_FULL's "logging" ambient-stack section).
var Debug = false

func warnf(format string, args ...any) {
	if Debug {
		log.Printf("styleparser: "+format, args...)
	}
}

// ParseExpression builds an IR node from one JSON-encoded style expression
// (an array-head form, a legacy {"stops": [...]} object, or a bare literal)
// into arena. On a recognition failure the offending node becomes
// expr.NoNode and a warning is logged; the caller's containing expression
// continues to build around it.
func ParseExpression(arena *expr.Arena, raw json.RawMessage) expr.NodeID {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		warnf("invalid JSON expression: %v", err)
		return expr.NoNode
	}
	return parseValue(arena, v)
}

func parseValue(arena *expr.Arena, v any) expr.NodeID {
	switch t := v.(type) {
	case []any:
		return parseArray(arena, t)
	case map[string]any:
		return parseLegacyStops(arena, t)
	case string:
		return arena.Static(value.String(t))
	case float64:
		return arena.Static(numberVariant(t))
	case bool:
		return arena.Static(value.Bool(t))
	case nil:
		return arena.Static(value.Absent)
	default:
		warnf("unsupported literal type %T", v)
		return expr.NoNode
	}
}

// numberVariant keeps integral JSON numbers as Int64, matching the
// ValueVariant "Int64 vs Double" distinction expressions depend on for
// cross-type comparison coercion (spec §4.2).
func numberVariant(f float64) value.Variant {
	if f == float64(int64(f)) {
		return value.Int64(int64(f))
	}
	return value.Double(f)
}

// parseLegacyStops reduces the old {"stops": [[stop, value], ...], "base":
// b} function form to an Interpolated node, per spec §4.4.
func parseLegacyStops(arena *expr.Arena, obj map[string]any) expr.NodeID {
	rawStops, ok := obj["stops"].([]any)
	if !ok {
		warnf("object-form expression missing \"stops\"")
		return expr.NoNode
	}
	base := 1.0
	if b, ok := obj["base"].(float64); ok {
		base = b
	}
	stops := make([]float64, 0, len(rawStops))
	results := make([]expr.NodeID, 0, len(rawStops))
	for _, raw := range rawStops {
		pair, ok := raw.([]any)
		if !ok || len(pair) != 2 {
			warnf("malformed stops entry %v", raw)
			continue
		}
		stop, ok := pair[0].(float64)
		if !ok {
			warnf("non-numeric stop %v", pair[0])
			continue
		}
		stops = append(stops, stop)
		results = append(results, parseValue(arena, pair[1]))
	}
	return arena.Interpolated(base, stops, results)
}

func parseArray(arena *expr.Arena, arr []any) expr.NodeID {
	if len(arr) == 0 {
		warnf("empty expression array")
		return expr.NoNode
	}
	head, ok := arr[0].(string)
	if !ok {
		warnf("expression array head is not a string: %v", arr[0])
		return expr.NoNode
	}
	args := arr[1:]

	switch head {
	case "literal":
		return parseLiteral(arena, args)
	case "get":
		return arena.GetProperty(keyArg(args, 0))
	case "has":
		return arena.HasProperty(keyArg(args, 0))
	case "in":
		return parseInFilter(arena, args, false)
	case "!in":
		return parseInFilter(arena, args, true)
	case "==", "!=", "<", "<=", ">", ">=":
		return parseCompare(arena, head, args)
	case "all":
		return arena.All(parseChildren(arena, args))
	case "any":
		return arena.Any(parseChildren(arena, args))
	case "case":
		return parseCase(arena, args)
	case "match":
		return parseMatch(arena, args)
	case "to-string":
		return arena.ToString(parseValue(arena, arg(args, 0)))
	case "to-number":
		return arena.ToNumber(parseValue(arena, arg(args, 0)))
	case "boolean":
		return arena.ToBoolean(parseValue(arena, arg(args, 0)))
	case "step":
		return parseStep(arena, args)
	case "interpolate":
		return parseInterpolate(arena, args)
	case "format":
		return parseFormat(arena, args)
	case "concat":
		return arena.Concat(parseChildren(arena, args))
	case "length":
		return arena.Length(parseValue(arena, arg(args, 0)))
	case "!":
		return arena.LogOp(expr.LogNot, parseValue(arena, arg(args, 0)), expr.NoNode)
	case "-":
		return parseMinus(arena, args)
	case "+":
		return arena.Math(expr.MathAdd, parseValue(arena, arg(args, 0)), parseValue(arena, arg(args, 1)))
	case "*":
		return arena.Math(expr.MathMul, parseValue(arena, arg(args, 0)), parseValue(arena, arg(args, 1)))
	case "/":
		return arena.Math(expr.MathDiv, parseValue(arena, arg(args, 0)), parseValue(arena, arg(args, 1)))
	case "%":
		return arena.Math(expr.MathMod, parseValue(arena, arg(args, 0)), parseValue(arena, arg(args, 1)))
	case "^":
		return arena.Math(expr.MathPow, parseValue(arena, arg(args, 0)), parseValue(arena, arg(args, 1)))
	case "geometry-type":
		return arena.GetProperty(value.KeyType)
	case "feature-state":
		return arena.FeatureState(keyArg(args, 0))
	case "coalesce":
		return arena.Coalesce(parseChildren(arena, args))
	case "zoom":
		return arena.GetProperty(value.KeyZoom)
	default:
		warnf("unrecognised expression head %q", head)
		return expr.NoNode
	}
}

func arg(args []any, i int) any {
	if i < 0 || i >= len(args) {
		return nil
	}
	return args[i]
}

func keyArg(args []any, i int) value.Key {
	s, _ := arg(args, i).(string)
	return value.Intern(s)
}

func parseChildren(arena *expr.Arena, args []any) []expr.NodeID {
	out := make([]expr.NodeID, len(args))
	for i, a := range args {
		out[i] = parseValue(arena, a)
	}
	return out
}

func parseLiteral(arena *expr.Arena, args []any) expr.NodeID {
	if len(args) == 0 {
		return expr.NoNode
	}
	switch items := args[0].(type) {
	case []any:
		allNum, allStr := true, true
		for _, it := range items {
			switch it.(type) {
			case float64:
				allStr = false
			case string:
				allNum = false
			default:
				allNum, allStr = false, false
			}
		}
		if allNum {
			floats := make([]float32, len(items))
			for i, it := range items {
				floats[i] = float32(it.(float64))
			}
			return arena.Static(value.FloatVec(floats))
		}
		if allStr {
			strs := make([]string, len(items))
			for i, it := range items {
				strs[i] = it.(string)
			}
			return arena.Static(value.StringVec(strs))
		}
		warnf("mixed-type literal array is unsupported")
		return expr.NoNode
	default:
		return parseValue(arena, args[0])
	}
}

func parseInFilter(arena *expr.Arena, args []any, negate bool) expr.NodeID {
	if len(args) == 0 {
		return expr.NoNode
	}
	key, ok := args[0].(string)
	if !ok {
		warnf("in/!in: first argument must be a property key")
		return expr.NoNode
	}
	rest := args[1:]
	var strs []string
	var nums []float64
	dynamic := expr.NoNode
	for _, r := range rest {
		switch t := r.(type) {
		case string:
			strs = append(strs, t)
		case float64:
			nums = append(nums, t)
		default:
			// A non-literal argument (e.g. ["literal", [...]]) is treated
			// as the dynamic list; only the first one found is kept.
			if dynamic == expr.NoNode {
				dynamic = parseValue(arena, r)
			}
		}
	}
	k := value.Intern(key)
	if negate {
		return arena.NotInFilter(k, strs, nums, dynamic)
	}
	return arena.InFilter(k, strs, nums, dynamic)
}

func parseCompare(arena *expr.Arena, head string, args []any) expr.NodeID {
	if len(args) < 2 {
		warnf("%s: expected 2 arguments, got %d", head, len(args))
		return expr.NoNode
	}
	op := map[string]expr.CompareOp{
		"==": expr.CompareEq, "!=": expr.CompareNe,
		"<": expr.CompareLt, "<=": expr.CompareLe,
		">": expr.CompareGt, ">=": expr.CompareGe,
	}[head]
	lhs := parseValue(arena, args[0])
	rhs := parseValue(arena, args[1])
	return arena.PropertyCompare(lhs, rhs, op)
}

func parseCase(arena *expr.Arena, args []any) expr.NodeID {
	if len(args) == 0 {
		return expr.NoNode
	}
	def := parseValue(arena, args[len(args)-1])
	pairs := args[:len(args)-1]
	var conds, results []expr.NodeID
	for i := 0; i+1 < len(pairs); i += 2 {
		conds = append(conds, parseValue(arena, pairs[i]))
		results = append(results, parseValue(arena, pairs[i+1]))
	}
	return arena.Case(conds, results, def)
}

func parseMatch(arena *expr.Arena, args []any) expr.NodeID {
	if len(args) < 2 {
		return expr.NoNode
	}
	input := parseValue(arena, args[0])
	def := parseValue(arena, args[len(args)-1])
	pairs := args[1 : len(args)-1]
	var sets [][]value.Variant
	var results []expr.NodeID
	for i := 0; i+1 < len(pairs); i += 2 {
		sets = append(sets, literalSet(pairs[i]))
		results = append(results, parseValue(arena, pairs[i+1]))
	}
	return arena.Match(input, sets, results, def)
}

func literalSet(v any) []value.Variant {
	switch t := v.(type) {
	case []any:
		out := make([]value.Variant, len(t))
		for i, it := range t {
			out[i] = literalVariant(it)
		}
		return out
	default:
		return []value.Variant{literalVariant(v)}
	}
}

func literalVariant(v any) value.Variant {
	switch t := v.(type) {
	case string:
		return value.String(t)
	case float64:
		return numberVariant(t)
	case bool:
		return value.Bool(t)
	default:
		return value.Absent
	}
}

func parseStep(arena *expr.Arena, args []any) expr.NodeID {
	if len(args) < 2 {
		return expr.NoNode
	}
	input := parseValue(arena, args[0])
	def := parseValue(arena, args[1])
	pairs := args[2:]
	var stops []float64
	var results []expr.NodeID
	for i := 0; i+1 < len(pairs); i += 2 {
		stop, ok := pairs[i].(float64)
		if !ok {
			warnf("step: non-numeric stop %v", pairs[i])
			continue
		}
		stops = append(stops, stop)
		results = append(results, parseValue(arena, pairs[i+1]))
	}
	return arena.Step(input, stops, results, def)
}

// parseInterpolate expects ["interpolate", ["linear"]|["exponential",
// base]|["cubic-bezier", x1,y1,x2,y2], input, stop1, val1, ...]. The input
// argument is skipped without being parsed or checked:
// Interpolated/BezierInterpolated always read ctx.zoom directly (node.go).
func parseInterpolate(arena *expr.Arena, args []any) expr.NodeID {
	if len(args) < 2 {
		return expr.NoNode
	}
	interp, ok := args[0].([]any)
	if !ok || len(interp) == 0 {
		warnf("interpolate: malformed interpolation-type argument")
		return expr.NoNode
	}
	kind, _ := interp[0].(string)

	pairs := args[2:]
	var stops []float64
	var results []expr.NodeID
	for i := 0; i+1 < len(pairs); i += 2 {
		stop, ok := pairs[i].(float64)
		if !ok {
			warnf("interpolate: non-numeric stop %v", pairs[i])
			continue
		}
		stops = append(stops, stop)
		results = append(results, parseValue(arena, pairs[i+1]))
	}

	switch kind {
	case "linear":
		return arena.Interpolated(1.0, stops, results)
	case "exponential":
		base := 1.0
		if len(interp) > 1 {
			if b, ok := interp[1].(float64); ok {
				base = b
			}
		}
		return arena.Interpolated(base, stops, results)
	case "cubic-bezier":
		if len(interp) < 5 {
			warnf("cubic-bezier: expected 4 control-point arguments")
			return expr.NoNode
		}
		x1, _ := interp[1].(float64)
		y1, _ := interp[2].(float64)
		x2, _ := interp[3].(float64)
		y2, _ := interp[4].(float64)
		return arena.BezierInterpolated(x1, y1, x2, y2, stops, results)
	default:
		warnf("unrecognised interpolation type %q", kind)
		return expr.NoNode
	}
}

// parseFormat expects ["format", text1, opts1?, text2, opts2?, ...] where
// each opts object may carry a numeric "text-scale".
func parseFormat(arena *expr.Arena, args []any) expr.NodeID {
	var texts, scales []expr.NodeID
	i := 0
	for i < len(args) {
		texts = append(texts, parseValue(arena, args[i]))
		i++
		scale := expr.NoNode
		if i < len(args) {
			if opts, ok := args[i].(map[string]any); ok {
				if s, ok := opts["text-scale"].(float64); ok {
					scale = arena.Static(value.Double(s))
				}
				i++
			}
		}
		scales = append(scales, scale)
	}
	return arena.Format(texts, scales)
}

func parseMinus(arena *expr.Arena, args []any) expr.NodeID {
	if len(args) == 1 {
		return arena.Math(expr.MathSub, arena.Static(value.Double(0)), parseValue(arena, args[0]))
	}
	if len(args) >= 2 {
		return arena.Math(expr.MathSub, parseValue(arena, args[0]), parseValue(arena, args[1]))
	}
	return expr.NoNode
}

// Err wraps a parse failure that the caller chose to treat as fatal (e.g.
// a structurally invalid top-level document, as opposed to a single
// unrecognised expression node, which is merely logged).
type Err struct {
	Context string
	Err     error
}

func (e *Err) Error() string { return fmt.Sprintf("styleparser: %s: %v", e.Context, e.Err) }
func (e *Err) Unwrap() error { return e.Err }
