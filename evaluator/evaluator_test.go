package evaluator

import (
	"testing"

	"github.com/openmobilemaps/maps-core-sub000/evalctx"
	"github.com/openmobilemaps/maps-core-sub000/expr"
	"github.com/openmobilemaps/maps-core-sub000/value"
)

func toFloat64(v value.Variant) float64 { return v.ToNumber() }

func ctxAt(zoom float64, props ...evalctx.Property) *evalctx.EvaluationContext {
	return &evalctx.EvaluationContext{
		Zoom:    zoom,
		Feature: evalctx.NewFeatureContext(1, true, evalctx.GeomPoint, props),
		State:   evalctx.NewFeatureStateManager(),
	}
}

func TestStaticExpressionIsConstant(t *testing.T) {
	a := expr.NewArena()
	root := a.Static(value.Double(42))
	ev := New(a, root, toFloat64)

	got, cls := ev.GetResult(ctxAt(0), 0)
	if got != 42 {
		t.Errorf("GetResult = %v, want 42", got)
	}
	if cls.Kind != ClassConstant {
		t.Errorf("classification = %v, want ClassConstant", cls.Kind)
	}

	want := a.Evaluate(root, ctxAt(5)).ToNumber()
	if got2, _ := ev.GetResult(ctxAt(5), 0); got2 != want {
		t.Errorf("cached constant diverged from fresh evaluation: %v != %v", got2, want)
	}
}

func TestNoNodeReturnsDefault(t *testing.T) {
	ev := New[float64](expr.NewArena(), expr.NoNode, toFloat64)
	got, cls := ev.GetResult(ctxAt(0), 7)
	if got != 7 || cls.Kind != ClassConstant {
		t.Errorf("GetResult(NoNode) = %v/%v, want 7/ClassConstant", got, cls.Kind)
	}
}

func TestZoomDependentCacheMatchesFreshEvaluation(t *testing.T) {
	a := expr.NewArena()
	root := a.Interpolated(1.5, []float64{10, 20}, []expr.NodeID{a.Static(value.Double(1)), a.Static(value.Double(2))})
	ev := New(a, root, toFloat64)

	for _, zoom := range []float64{10, 12, 15, 18, 20} {
		ctx := ctxAt(zoom)
		got, cls := ev.GetResult(ctx, 0)
		want := a.Evaluate(root, ctx).ToNumber()
		if got != want {
			t.Errorf("zoom=%v: cached=%v fresh=%v", zoom, got, want)
		}
		if cls.Kind != ClassZoomOnly {
			t.Errorf("zoom=%v: classification=%v, want ClassZoomOnly", zoom, cls.Kind)
		}
		if !cls.Zoom.Contains(zoom) {
			t.Errorf("zoom=%v not contained in reported range %+v", zoom, cls.Zoom)
		}
	}
}

func TestStateDependentClassification(t *testing.T) {
	a := expr.NewArena()
	k := value.Intern("tier")
	root := a.FeatureState(k)
	ev := New(a, root, func(v value.Variant) value.Variant { return v })

	ctx := ctxAt(0)
	_, cls := ev.GetResult(ctx, value.Absent)
	if cls.Kind != ClassStateOnly {
		t.Errorf("classification = %v, want ClassStateOnly", cls.Kind)
	}

	ctx.State.SetFeatureState(ctx.Feature.ID, k, value.String("gold"))
	got, cls2 := ev.GetResult(ctx, value.Absent)
	if got.Str != "gold" {
		t.Errorf("after state mutation got = %+v, want gold", got)
	}
	if cls2.StateGen == cls.StateGen {
		t.Error("state generation should have advanced after SetFeatureState")
	}
}

func TestPureProjectionSkipsCache(t *testing.T) {
	a := expr.NewArena()
	k := value.Intern("width")
	root := a.GetProperty(k)
	ev := New(a, root, toFloat64)

	got, _ := ev.GetResult(ctxAt(0, evalctx.Property{Key: k, Value: value.Int64(5)}), 0)
	if got != 5 {
		t.Errorf("pure projection got %v, want 5", got)
	}
}
