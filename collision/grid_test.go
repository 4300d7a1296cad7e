package collision

import "testing"

func identityVP() [16]float32 {
	var m [16]float32
	m[0] = 1
	m[5] = 1
	m[10] = 1
	m[15] = 1
	return m
}

// S3 from spec §8.
func TestTryInsertRect_S3(t *testing.T) {
	g := NewGrid(identityVP(), 512, 512, 0)

	if got := g.TryInsertRect(NewRect(10, 10, 20, 20)); got != Placed {
		t.Fatalf("A: got %v, want Placed", got)
	}
	if got := g.TryInsertRect(NewRect(25, 25, 20, 20)); got != Collides {
		t.Fatalf("B: got %v, want Collides", got)
	}
	if got := g.TryInsertRect(NewRect(100, 100, 10, 10)); got != Placed {
		t.Fatalf("C: got %v, want Placed", got)
	}
}

// Property 7: inserting the same OBB (here, rect) twice always collides the
// second time.
func TestTryInsertRect_Idempotence(t *testing.T) {
	g := NewGrid(identityVP(), 256, 256, 0)
	r := NewRect(50, 50, 10, 10)
	if got := g.TryInsertRect(r); got != Placed {
		t.Fatalf("first insert: got %v, want Placed", got)
	}
	if got := g.TryInsertRect(r); got != Collides {
		t.Fatalf("second insert: got %v, want Collides", got)
	}
}

func TestTryInsertRect_InsertionOrderIndependent(t *testing.T) {
	a := NewRect(0, 0, 5, 5)
	b := NewRect(100, 100, 5, 5)

	g1 := NewGrid(identityVP(), 256, 256, 0)
	r1a := g1.TryInsertRect(a)
	r1b := g1.TryInsertRect(b)

	g2 := NewGrid(identityVP(), 256, 256, 0)
	r2b := g2.TryInsertRect(b)
	r2a := g2.TryInsertRect(a)

	if r1a != Placed || r1b != Placed || r2a != Placed || r2b != Placed {
		t.Fatalf("non-overlapping rects should always place regardless of order")
	}
}

func TestTryInsertRect_OutOfView(t *testing.T) {
	g := NewGrid(identityVP(), 100, 100, 0)
	if got := g.TryInsertRect(NewRect(10000, 10000, 10, 10)); got != Placed {
		t.Fatalf("out-of-view rect: got %v, want Placed (no-collide no-op)", got)
	}
}

// addAndCheckCollisionCircles on an empty surviving bundle returns
// Collides, per DESIGN NOTES §9's documented asymmetry.
func TestTryInsertCircles_AllOutOfView(t *testing.T) {
	g := NewGrid(identityVP(), 50, 50, 0)
	got := g.TryInsertCircles([]Circle{{CX: 10000, CY: 10000, R: 1}})
	if got != Collides {
		t.Fatalf("got %v, want Collides", got)
	}
}

func TestTryInsertCircles_PlacedThenCollides(t *testing.T) {
	g := NewGrid(identityVP(), 200, 200, 0)
	bundle := []Circle{{CX: 20, CY: 20, R: 5}, {CX: 60, CY: 60, R: 5}}
	if got := g.TryInsertCircles(bundle); got != Placed {
		t.Fatalf("got %v, want Placed", got)
	}
	if got := g.TryInsertCircles([]Circle{{CX: 21, CY: 21, R: 5}}); got != Collides {
		t.Fatalf("overlapping circle: got %v, want Collides", got)
	}
}

func TestRectCircleOverlap(t *testing.T) {
	r := NewRect(0, 0, 10, 10)
	if !overlapsRectCircle(r, Circle{CX: 15, CY: 5, R: 6}) {
		t.Fatalf("expected overlap")
	}
	if overlapsRectCircle(r, Circle{CX: 50, CY: 50, R: 1}) {
		t.Fatalf("expected no overlap")
	}
}
