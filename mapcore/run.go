package mapcore

import (
	"math"
	"sort"
	"sync"

	"github.com/yohamta/donburi"

	"github.com/openmobilemaps/maps-core-sub000/collision"
	"github.com/openmobilemaps/maps-core-sub000/evalctx"
	"github.com/openmobilemaps/maps-core-sub000/scheduler"
	"github.com/openmobilemaps/maps-core-sub000/style"
	"github.com/openmobilemaps/maps-core-sub000/symbol"
	"github.com/openmobilemaps/maps-core-sub000/tilelayer"
	"github.com/openmobilemaps/maps-core-sub000/value"
)

// sourceTiles holds one source's visible tile set, ordered by Tile.Info
// for deterministic frame assembly (spec §4.6 "symbols are inserted in a
// deterministic order").
type sourceTiles struct {
	name  string
	mu    sync.Mutex
	tiles map[tilelayer.Info]*tilelayer.Tile
	descs map[tilelayer.Info][]tilelayer.TileRenderDescription
}

// Map is the top-level façade wiring a style document, one or more tile
// sources, a camera, and the collision/symbol/scheduling subsystems into
// per-frame render output (spec §3, §4.6-§4.9). It never owns a window or
// GPU context, matching the teacher's willow.Run boundary minus the
// ebiten.RunGame call.
type Map struct {
	Config Config
	Style  *style.Document
	Camera *Camera

	Pool     *scheduler.Pool
	Delayed  *scheduler.DelayedQueue
	Graphics *scheduler.GraphicsLane
	Ready    *tilelayer.ReadyManager
	State    *evalctx.FeatureStateManager

	world donburi.World

	mu      sync.Mutex
	sources map[string]*sourceTiles
	symbols []*symbol.Object
}

// NewMap constructs a Map over styleDoc with a camera sized to viewport.
// The worker pool, delayed queue, graphics lane, and ready-manager are
// created eagerly; callers must call Shutdown when done.
func NewMap(cfg Config, styleDoc *style.Document, viewport value.Rect) *Map {
	pool := scheduler.NewPool(cfg.poolSize())
	world := donburi.NewWorld()
	return &Map{
		Config:   cfg,
		Style:    styleDoc,
		Camera:   NewCamera(viewport),
		Pool:     pool,
		Delayed:  scheduler.NewDelayedQueue(pool),
		Graphics: scheduler.NewGraphicsLane(),
		Ready:    tilelayer.NewReadyManager(world),
		State:    evalctx.NewFeatureStateManager(),
		world:    world,
		sources:  make(map[string]*sourceTiles),
	}
}

// World returns the donburi world backing this Map's ready-manager and
// symbol click events, so callers can Subscribe to SourceReadyEventType /
// symbol.ClickEventType.
func (m *Map) World() donburi.World { return m.world }

// RegisterSource adds a named tile source and registers it with the
// ready-manager.
func (m *Map) RegisterSource(name string) {
	m.mu.Lock()
	m.sources[name] = &sourceTiles{
		name:  name,
		tiles: make(map[tilelayer.Info]*tilelayer.Tile),
		descs: make(map[tilelayer.Info][]tilelayer.TileRenderDescription),
	}
	m.mu.Unlock()
	m.Ready.Register(name)
}

// SetTile installs or replaces a tile's render descriptions for sourceName,
// transitioning the tile to Visible. A higher-or-equal version for the same
// (x, y, z) cell replaces the prior entry (late-arrival discard per §4.7).
func (m *Map) SetTile(sourceName string, info tilelayer.Info, descs []tilelayer.TileRenderDescription) {
	m.mu.Lock()
	src, ok := m.sources[sourceName]
	m.mu.Unlock()
	if !ok {
		return
	}

	src.mu.Lock()
	defer src.mu.Unlock()

	key := tilelayer.Info{X: info.X, Y: info.Y, Z: info.Z}
	for existing := range src.tiles {
		if existing.X == key.X && existing.Y == key.Y && existing.Z == key.Z && existing.Version > info.Version {
			return // a newer version already won this cell
		}
	}
	for existing := range src.tiles {
		if existing.X == key.X && existing.Y == key.Y && existing.Z == key.Z && existing != info {
			delete(src.tiles, existing)
			delete(src.descs, existing)
		}
	}
	tile := tilelayer.NewTile(info, nil)
	_ = tile.Transition(tilelayer.Visible)
	src.tiles[info] = tile
	src.descs[info] = descs
}

// RemoveTile drops a tile from sourceName (spec §4.7's Removed transition).
func (m *Map) RemoveTile(sourceName string, info tilelayer.Info) {
	m.mu.Lock()
	src, ok := m.sources[sourceName]
	m.mu.Unlock()
	if !ok {
		return
	}
	src.mu.Lock()
	defer src.mu.Unlock()
	delete(src.tiles, info)
	delete(src.descs, info)
}

// EvaluationContext builds the per-frame evaluation context from the
// camera's current zoom and the shared state manager.
func (m *Map) EvaluationContext(feature *evalctx.FeatureContext) *evalctx.EvaluationContext {
	return &evalctx.EvaluationContext{
		Zoom:     m.Camera.Zoom,
		DPFactor: 1,
		Feature:  feature,
		State:    m.State,
	}
}

// AddSymbol registers a symbol object for per-frame placement/collision.
func (m *Map) AddSymbol(obj *symbol.Object) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.symbols = append(m.symbols, obj)
}

// BuildFrame advances the camera by dtSeconds, recomputes every symbol's
// OBB and collision state against a fresh grid, and returns every visible
// tile's render descriptions sorted by (render_pass_index, layer_index)
// per spec §6.
func (m *Map) BuildFrame(dtSeconds float32) []tilelayer.TileRenderDescription {
	stop := Logger().Time("frame.build")
	defer stop()

	m.Camera.Update(dtSeconds)

	var descs []tilelayer.TileRenderDescription
	m.mu.Lock()
	names := make([]string, 0, len(m.sources))
	for name := range m.sources {
		names = append(names, name)
	}
	sort.Strings(names) // deterministic across-source ordering
	for _, name := range names {
		src := m.sources[name]
		src.mu.Lock()
		infos := make([]tilelayer.Info, 0, len(src.descs))
		for info := range src.descs {
			infos = append(infos, info)
		}
		sort.Slice(infos, func(i, j int) bool {
			a, b := infos[i], infos[j]
			if a.Z != b.Z {
				return a.Z < b.Z
			}
			if a.X != b.X {
				return a.X < b.X
			}
			return a.Y < b.Y
		})
		for _, info := range infos {
			descs = append(descs, src.descs[info]...)
		}
		src.mu.Unlock()
	}
	symbols := append([]*symbol.Object(nil), m.symbols...)
	m.mu.Unlock()

	tilelayer.SortDescriptions(descs)

	m.updateSymbols(symbols)

	return descs
}

// updateSymbols recomputes transforms and collision state for every
// registered symbol against a fresh grid, in deterministic registration
// order, per spec §4.6's "write-once-per-frame" and order-sensitivity
// requirements.
func (m *Map) updateSymbols(symbols []*symbol.Object) {
	vp := m.Camera.ViewProjectionMatrix()
	angleDeg := m.Camera.Rotation * 180 / math.Pi
	grid := collision.NewGrid(vp, m.Camera.Viewport.Width, m.Camera.Viewport.Height, angleDeg)

	scale := m.Camera.Zoom
	for _, obj := range symbols {
		obj.UpdateTransform(scale, m.Camera.Rotation)
		obj.CollidesAt(m.Camera.Zoom, grid)
	}
}

// Shutdown stops the worker pool, delayed queue, and releases every
// resource BuildFrame depends on. Safe to call once.
func (m *Map) Shutdown() {
	m.Delayed.Shutdown()
	m.Pool.Shutdown()
}
