package perflog

import (
	"math"
	"testing"
	"time"
)

func TestRecordBucketsAndMean(t *testing.T) {
	l := NewLogger(10, 5*time.Millisecond)
	l.Record("eval", 1*time.Millisecond)
	l.Record("eval", 6*time.Millisecond)
	l.Record("eval", 11*time.Millisecond)

	snap := l.Snapshot("eval")
	if snap.Count != 3 {
		t.Fatalf("count = %d, want 3", snap.Count)
	}
	if snap.Buckets[0] != 1 || snap.Buckets[1] != 1 || snap.Buckets[2] != 1 {
		t.Fatalf("buckets = %v, want one sample in each of first three buckets", snap.Buckets)
	}
	wantMean := float64(1+6+11) / 3 * float64(time.Millisecond)
	if math.Abs(float64(snap.Mean)-wantMean) > float64(time.Microsecond) {
		t.Errorf("mean = %v, want ~%v", snap.Mean, time.Duration(wantMean))
	}
}

func TestOverflowBucket(t *testing.T) {
	l := NewLogger(2, 5*time.Millisecond)
	l.Record("x", 100*time.Millisecond)
	snap := l.Snapshot("x")
	if snap.Overflow != 1 {
		t.Fatalf("overflow = %d, want 1", snap.Overflow)
	}
}

func TestDisabledLoggerDropsSamples(t *testing.T) {
	l := NewLogger(0, 0)
	l.SetEnabled(false)
	l.Record("x", time.Millisecond)
	if snap := l.Snapshot("x"); snap.Count != 0 {
		t.Fatalf("disabled logger recorded a sample: %+v", snap)
	}
}

func TestTimeHelper(t *testing.T) {
	l := NewLogger(0, 0)
	stop := l.Time("op")
	time.Sleep(time.Millisecond)
	stop()
	if snap := l.Snapshot("op"); snap.Count != 1 {
		t.Fatalf("Time() did not record a sample: %+v", snap)
	}
}

func TestVarianceZeroForSingleSample(t *testing.T) {
	l := NewLogger(0, 0)
	l.Record("single", time.Millisecond)
	if snap := l.Snapshot("single"); snap.Variance != 0 {
		t.Fatalf("variance = %v, want 0 for a single sample", snap.Variance)
	}
}
