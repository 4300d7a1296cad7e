package scheduler

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestPoolRunsSubmittedTasks(t *testing.T) {
	p := NewPool(2)
	defer p.Shutdown()

	var count atomic.Int64
	const n = 50
	for i := 0; i < n; i++ {
		p.Submit(0, func() { count.Add(1) })
	}

	deadline := time.Now().Add(2 * time.Second)
	for count.Load() != n && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if got := count.Load(); got != n {
		t.Fatalf("ran %d tasks, want %d", got, n)
	}
}

func TestDefaultPoolSizeAtLeastOne(t *testing.T) {
	if DefaultPoolSize() < 1 {
		t.Fatalf("DefaultPoolSize() = %d, want >= 1", DefaultPoolSize())
	}
}

func TestDelayedQueueFiresAfterDelay(t *testing.T) {
	p := NewPool(1)
	defer p.Shutdown()
	q := NewDelayedQueue(p)
	defer q.Shutdown()

	done := make(chan struct{})
	start := time.Now()
	q.Schedule(0, 30, func() { close(done) })

	select {
	case <-done:
		if time.Since(start) < 20*time.Millisecond {
			t.Fatalf("task fired too early: %v", time.Since(start))
		}
	case <-time.After(2 * time.Second):
		t.Fatal("delayed task never fired")
	}
}

func TestGraphicsLaneDrainRespectsMaxTasks(t *testing.T) {
	g := NewGraphicsLane()
	var ran int
	for i := 0; i < 20; i++ {
		g.Submit(func() { ran++ })
	}
	n := g.Drain(5, time.Second)
	if n != 5 || ran != 5 {
		t.Fatalf("drained %d (ran %d), want 5", n, ran)
	}
	if g.Len() != 15 {
		t.Fatalf("remaining queue = %d, want 15", g.Len())
	}
}

func TestGraphicsLaneDrainRespectsBudget(t *testing.T) {
	g := NewGraphicsLane()
	for i := 0; i < 100; i++ {
		g.Submit(func() { time.Sleep(2 * time.Millisecond) })
	}
	n := g.Drain(100, 6*time.Millisecond)
	if n >= 100 {
		t.Fatalf("drain should have stopped early on budget, ran %d", n)
	}
}
