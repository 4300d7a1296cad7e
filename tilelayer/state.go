// Package tilelayer implements the tile update protocol (spec §4.7): the
// per-tile lifecycle state machine, the ready-manager that coordinates
// "source ready" edges across sources, and line/polygon/raster tile
// assembly into TileRenderDescription batches (spec §4.9). Grounded on the
// teacher's tilemap.go tile-buffer lifecycle, generalized from a fixed
// Tiled-TMX grid to arbitrary versioned vector-tile sources.
package tilelayer

import "fmt"

// State is one point in a tile's lifecycle (spec §4.7). PendingSetup is the
// only state with an internal READY substate, tracked separately by
// Tile.ready rather than as its own State value, since READY is not
// observable outside the render-thread upload sequence.
type State uint8

const (
	PendingSetup State = iota
	Cached
	Visible
	Removed
)

func (s State) String() string {
	switch s {
	case PendingSetup:
		return "PendingSetup"
	case Cached:
		return "Cached"
	case Visible:
		return "Visible"
	case Removed:
		return "Removed"
	default:
		return "Unknown"
	}
}

// transitions enumerates every legal State->State edge (DESIGN NOTES §9:
// "model as an explicit enum transition table"). A tile may also be
// dropped (removed) from any state on a version bump.
var transitions = map[State][]State{
	PendingSetup: {Cached, Visible, Removed},
	Cached:       {Visible, Removed},
	Visible:      {Cached, Removed},
	Removed:      {},
}

// CanTransition reports whether from->to is a legal edge.
func CanTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Transition moves the tile to to, returning an error naming the illegal
// edge rather than silently corrupting state (spec §5: "violations are a
// programmer error").
func (t *Tile) Transition(to State) error {
	if !CanTransition(t.state, to) {
		return fmt.Errorf("tilelayer: illegal transition %s -> %s for tile %v", t.state, to, t.Info)
	}
	t.state = to
	if to != PendingSetup {
		t.ready = false
	}
	return nil
}

// State returns the tile's current lifecycle state.
func (t *Tile) State() State { return t.state }
