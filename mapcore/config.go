package mapcore

import (
	"runtime"

	"github.com/openmobilemaps/maps-core-sub000/perflog"
	"github.com/openmobilemaps/maps-core-sub000/scheduler"
)

// Config is mapcore's plain-struct-with-defaults entry point, mirroring
// the teacher's RunConfig (willow.go/testrunner.go) but scoped to this
// domain's knobs: worker pool size, the collision grid's cell-size
// divisor, and a debug flag gating verbose logging across every package
// that checks it.
type Config struct {
	// WorkerPoolSize overrides scheduler.DefaultPoolSize() when positive.
	WorkerPoolSize int
	// GridCellDivisor records the collision grid's cell-size divisor
	// (min(width,height)/divisor). collision.NewGrid always divides by 20
	// and Map does not pass this field on to it.
	GridCellDivisor int
	Debug           bool
}

// DefaultConfig returns a Config with every knob at its spec-default.
func DefaultConfig() Config {
	return Config{
		WorkerPoolSize:  scheduler.DefaultPoolSize(),
		GridCellDivisor: 20,
		Debug:           false,
	}
}

func (c Config) poolSize() int {
	if c.WorkerPoolSize > 0 {
		return c.WorkerPoolSize
	}
	n := scheduler.DefaultPoolSize()
	if n < 1 {
		n = runtime.NumCPU()
	}
	return n
}

// runtimeLogger is a package-wide perflog.Logger, analogous to the
// teacher's package-level globalDebug flag: cheap to query, shared across
// every mapcore call site that times a stage.
var runtimeLogger = perflog.NewLogger(0, 0)

// Logger returns the shared performance logger used to time frame-build
// stages ("frame.build", "frame.symbols", ...).
func Logger() *perflog.Logger { return runtimeLogger }
