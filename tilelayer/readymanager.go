package tilelayer

import (
	"sync"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SourceReadyEvent is published when every registered source manager has
// finished its current tile set (spec §4.7: "fires a 'source ready' edge
// when every registered manager has finished"). Replaces the teacher's
// generic InteractionEvent ECS bridge with a tile-lifecycle-specific
// payload, per SPEC_FULL's domain stack.
type SourceReadyEvent struct {
	SourceCount int
}

// SourceReadyEventType is the donburi event type the ready-manager
// publishes on, mirroring the teacher's ecs/donburi.go
// InteractionEventType (events.NewEventType[T]() + Publish/Subscribe).
var SourceReadyEventType = events.NewEventType[SourceReadyEvent]()

// ReadyManager tallies per-source registrations and fires
// SourceReadyEventType once every registered source has reported ready for
// its current tile set (spec §4.7's cross-tile coordination). Subscribers
// receive the edge through SourceReadyEventType; mapcore.Map does not
// subscribe to it, and Map.BuildFrame places symbols every frame whether or
// not the edge has fired.
type ReadyManager struct {
	world donburi.World

	mu         sync.Mutex
	registered map[string]bool
	ready      map[string]bool
}

// NewReadyManager returns a ReadyManager that publishes to world.
func NewReadyManager(world donburi.World) *ReadyManager {
	return &ReadyManager{
		world:      world,
		registered: make(map[string]bool),
		ready:      make(map[string]bool),
	}
}

// Register adds sourceName to the set of sources the manager waits on.
// Registering resets that source's ready flag.
func (m *ReadyManager) Register(sourceName string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.registered[sourceName] = true
	delete(m.ready, sourceName)
}

// Unregister drops sourceName, e.g. when a source is torn down.
func (m *ReadyManager) Unregister(sourceName string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.registered, sourceName)
	delete(m.ready, sourceName)
}

// ReportReady marks sourceName as having finished its current tile set. If
// every registered source is now ready, the manager publishes
// SourceReadyEventType and clears the per-source ready flags so the next
// tile set must report in again.
func (m *ReadyManager) ReportReady(sourceName string) {
	m.mu.Lock()
	if !m.registered[sourceName] {
		m.mu.Unlock()
		return
	}
	m.ready[sourceName] = true
	allReady := len(m.ready) == len(m.registered)
	count := len(m.registered)
	if allReady {
		for s := range m.registered {
			delete(m.ready, s)
		}
	}
	m.mu.Unlock()

	if allReady {
		SourceReadyEventType.Publish(m.world, SourceReadyEvent{SourceCount: count})
	}
}
