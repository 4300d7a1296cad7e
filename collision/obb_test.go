package collision

import "testing"

func square(cx, cy, half float64) OBB {
	return rect(cx, cy, half, half)
}

func rect(cx, cy, halfW, halfH float64) OBB {
	return NewOBB([4]Point{
		{X: cx - halfW, Y: cy - halfH},
		{X: cx + halfW, Y: cy - halfH},
		{X: cx + halfW, Y: cy + halfH},
		{X: cx - halfW, Y: cy + halfH},
	})
}

// Property 8: overlap is symmetric.
func TestOBBOverlapSymmetry(t *testing.T) {
	cases := []struct {
		a, b OBB
	}{
		{square(0, 0, 5), square(3, 3, 5)},
		{square(0, 0, 5), square(20, 20, 5)},
		{square(0, 0, 5), square(5, 0, 5)},
	}
	for i, c := range cases {
		if got, want := c.a.Overlaps(c.b), c.b.Overlaps(c.a); got != want {
			t.Errorf("case %d: A.Overlaps(B)=%v B.Overlaps(A)=%v", i, got, want)
		}
	}
}

func TestOBBOverlapDetectsIntersection(t *testing.T) {
	a := square(0, 0, 5)
	b := square(3, 3, 5)
	if !a.Overlaps(b) {
		t.Fatalf("expected overlap")
	}
	c := square(100, 100, 5)
	if a.Overlaps(c) {
		t.Fatalf("expected no overlap")
	}

	// A tiny box centered deep inside a large box shares no corner with it
	// (no corner-containment), but the boxes plainly overlap.
	big := rect(0, 0, 25, 5)
	tiny := rect(0, 0, 0.05, 0.05)
	if !big.Overlaps(tiny) {
		t.Fatalf("expected a tiny box centered inside a large box to overlap")
	}

	// Two perpendicular strips crossing in a plus shape overlap in the
	// middle but neither box's corners land inside the other.
	horizontal := rect(0, 0, 2.5, 0.25)
	vertical := rect(0, 0, 0.25, 2.5)
	if !horizontal.Overlaps(vertical) {
		t.Fatalf("expected crossing perpendicular strips to overlap")
	}
}
