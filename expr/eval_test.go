package expr

import (
	"testing"

	"github.com/openmobilemaps/maps-core-sub000/evalctx"
	"github.com/openmobilemaps/maps-core-sub000/value"
)

func featureCtx(zoom float64, geom evalctx.GeomType, props ...evalctx.Property) *evalctx.EvaluationContext {
	return &evalctx.EvaluationContext{
		Zoom:    zoom,
		Feature: evalctx.NewFeatureContext(1, true, geom, props),
		State:   evalctx.NewFeatureStateManager(),
	}
}

// S1
func TestScenarioMatchOnToString(t *testing.T) {
	a := NewArena()
	widthKey := value.Intern("width")
	toStr := a.ToString(a.GetProperty(widthKey))
	m := a.Match(toStr,
		[][]value.Variant{
			{value.String("10")},
			{value.String("9")},
			{value.String("8"), value.String("7"), value.String("6")},
		},
		[]NodeID{a.Static(value.Int64(6)), a.Static(value.Int64(5)), a.Static(value.Int64(4))},
		a.Static(value.Int64(3)),
	)
	ctx := featureCtx(0, evalctx.GeomPoint, evalctx.Property{Key: widthKey, Value: value.Int64(8)})
	got := a.Evaluate(m, ctx)
	if got.I64 != 4 {
		t.Errorf("match result = %+v, want Int64(4)", got)
	}
}

// S2
func TestScenarioExponentialInterpolation(t *testing.T) {
	a := NewArena()
	n := a.Interpolated(1.5, []float64{13, 15}, []NodeID{a.Static(value.Double(0.3)), a.Static(value.Double(0.7))})
	ctx := featureCtx(14, evalctx.GeomPoint)
	got := a.Evaluate(n, ctx).Dbl
	if !approxEqual(got, 0.46, 1e-2) {
		t.Errorf("interpolated value at zoom 14 = %v, want ~0.46", got)
	}
}

// S4
func TestScenarioCaseHasProperty(t *testing.T) {
	a := NewArena()
	nameKey := value.Intern("name")
	c := a.Case([]NodeID{a.HasProperty(nameKey)}, []NodeID{a.Static(value.Int64(1))}, a.Static(value.Int64(0)))

	without := featureCtx(0, evalctx.GeomPoint)
	if got := a.Evaluate(c, without).I64; got != 0 {
		t.Errorf("without name = %d, want 0", got)
	}
	with := featureCtx(0, evalctx.GeomPoint, evalctx.Property{Key: nameKey, Value: value.String("X")})
	if got := a.Evaluate(c, with).I64; got != 1 {
		t.Errorf("with name = %d, want 1", got)
	}
}

// S5
func TestScenarioInFilter(t *testing.T) {
	a := NewArena()
	classKey := value.Intern("class")
	f := a.InFilter(classKey, []string{"park", "forest"}, nil, NoNode)

	park := featureCtx(0, evalctx.GeomPolygon, evalctx.Property{Key: classKey, Value: value.String("park")})
	if !a.Evaluate(f, park).Truthy() {
		t.Error("park should be in {park, forest}")
	}
	river := featureCtx(0, evalctx.GeomPolygon, evalctx.Property{Key: classKey, Value: value.String("river")})
	if a.Evaluate(f, river).Truthy() {
		t.Error("river should not be in {park, forest}")
	}
}

// S6
func TestScenarioNumberFormatRoundTrip(t *testing.T) {
	a := NewArena()
	n := a.NumberFormat(a.ToNumber(a.Static(value.String("-3.14159"))), a.Static(value.Int64(1)), a.Static(value.Int64(3)))
	ctx := featureCtx(0, evalctx.GeomPoint)
	got := a.Evaluate(n, ctx).Str
	if got != "-3.142" {
		t.Errorf("NumberFormat result = %q, want \"-3.142\"", got)
	}
}

func TestInterpolationEndpoints(t *testing.T) {
	a := NewArena()
	n := a.Interpolated(2, []float64{10, 20}, []NodeID{a.Static(value.Double(1)), a.Static(value.Double(9))})
	if got := a.Evaluate(n, featureCtx(10, evalctx.GeomPoint)).Dbl; got != 1 {
		t.Errorf("at zoom=a got %v, want 1 (exact)", got)
	}
	if got := a.Evaluate(n, featureCtx(20, evalctx.GeomPoint)).Dbl; got != 9 {
		t.Errorf("at zoom=b got %v, want 9 (exact)", got)
	}
}

func TestStepMonotonicity(t *testing.T) {
	a := NewArena()
	zoom := a.GetProperty(value.KeyZoom)
	step := a.Step(zoom, []float64{5, 10, 15},
		[]NodeID{a.Static(value.Int64(1)), a.Static(value.Int64(2)), a.Static(value.Int64(3))},
		a.Static(value.Int64(0)))

	cases := []struct {
		zoom float64
		want int64
	}{
		{0, 0}, {4.9, 0}, {5, 1}, {9.9, 1}, {10, 2}, {14.9, 2}, {15, 3}, {100, 3},
	}
	for _, c := range cases {
		got := a.Evaluate(step, featureCtx(c.zoom, evalctx.GeomPoint)).I64
		if got != c.want {
			t.Errorf("Step at zoom=%v = %d, want %d", c.zoom, got, c.want)
		}
	}
}

func TestCaseShortCircuit(t *testing.T) {
	a := NewArena()
	firstTrue := a.Static(value.Bool(true))
	secondCond := a.Static(value.Bool(true))
	firstResult := a.Static(value.Int64(1))
	secondResult := a.Static(value.Int64(2))

	c := a.Case([]NodeID{firstTrue, secondCond}, []NodeID{firstResult, secondResult}, a.Static(value.Int64(0)))
	got := a.Evaluate(c, featureCtx(0, evalctx.GeomPoint))
	if got.I64 != 1 {
		t.Errorf("first truthy branch should win, got %+v", got)
	}
}

func TestUsedKeysUnionAndZoomDependence(t *testing.T) {
	a := NewArena()
	k1 := value.Intern("a-key")
	k2 := value.Intern("b-key")
	n := a.LogOp(LogAnd, a.HasProperty(k1), a.PropertyCompare(a.GetProperty(k2), a.Static(value.Int64(1)), CompareEq))
	uk := a.UsedKeys(n)
	if _, ok := uk.Properties[k1]; !ok {
		t.Error("missing k1 in used keys")
	}
	if _, ok := uk.Properties[k2]; !ok {
		t.Error("missing k2 in used keys")
	}
	if uk.IsZoomDependent() {
		t.Error("should not be zoom dependent")
	}

	z := a.Interpolated(1, []float64{1, 2}, []NodeID{a.Static(value.Double(0)), a.Static(value.Double(1))})
	if !a.UsedKeys(z).IsZoomDependent() {
		t.Error("Interpolated should be zoom dependent")
	}
}

func TestFormatLengthRoundTrip(t *testing.T) {
	a := NewArena()
	f := a.Format(
		[]NodeID{a.Static(value.String("abc")), a.Static(value.String("de"))},
		[]NodeID{a.Static(value.Double(1)), a.Static(value.Double(1))},
	)
	l := a.Length(f)
	got := a.Evaluate(l, featureCtx(0, evalctx.GeomPoint)).I64
	if got != 2 {
		t.Errorf("Length(Format(...)) = %d, want 2", got)
	}
}

func TestHashConsingDedupsLeaves(t *testing.T) {
	a := NewArena()
	k := value.Intern("dedup-key")
	n1 := a.GetProperty(k)
	n2 := a.GetProperty(k)
	if n1 != n2 {
		t.Errorf("GetProperty(%v) returned distinct nodes: %v, %v", k, n1, n2)
	}
	s1 := a.Static(value.String("same"))
	s2 := a.Static(value.String("same"))
	if s1 != s2 {
		t.Errorf("identical Static literals were not consed: %v, %v", s1, s2)
	}
}

func approxEqual(a, b, eps float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < eps
}
