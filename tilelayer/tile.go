package tilelayer

// Info keys a single versioned tile within one source (spec §4.7: "a
// versioned tile-info {x, y, z, version}").
type Info struct {
	X, Y, Z uint32
	Version uint64
}

// UploadStage orders the render-thread upload sequence within a tile
// (spec §4.7: "masks first, geometry second, textures last").
type UploadStage uint8

const (
	StageMask UploadStage = iota
	StageGeometry
	StageTexture
	stageCount
)

// Tile is one source's view of one (x, y, z) cell across versions. A fresh
// tile starts PendingSetup with a readiness control set populated from the
// sub-layer indices the source registered; it becomes internally "ready"
// once that set empties, independent of the externally observable State.
type Tile struct {
	Info  Info
	state State
	ready bool

	pendingSubLayers map[int]bool // sub-layer index -> still outstanding
	uploaded         [stageCount]bool
}

// NewTile constructs a PendingSetup tile whose readiness control set is
// subLayerIndices.
func NewTile(info Info, subLayerIndices []int) *Tile {
	pending := make(map[int]bool, len(subLayerIndices))
	for _, i := range subLayerIndices {
		pending[i] = true
	}
	return &Tile{Info: info, state: PendingSetup, pendingSubLayers: pending}
}

// Upload marks stage uploaded for this tile. Stages must be uploaded in
// order (mask, geometry, texture); calling Upload out of order is a
// programmer error and returns false rather than corrupting state.
func (t *Tile) Upload(stage UploadStage) bool {
	for s := StageMask; s < stage; s++ {
		if !t.uploaded[s] {
			return false
		}
	}
	t.uploaded[stage] = true
	return true
}

// FulfillSubLayer marks subLayerIndex as having produced render objects.
// Once every registered sub-layer is fulfilled the tile becomes internally
// ready (spec §4.7: "when the control set empties, the tile becomes READY").
func (t *Tile) FulfillSubLayer(subLayerIndex int) {
	delete(t.pendingSubLayers, subLayerIndex)
	if len(t.pendingSubLayers) == 0 {
		t.ready = true
	}
}

// Ready reports whether the tile's readiness control set has emptied.
func (t *Tile) Ready() bool { return t.ready }
