package evalctx

import (
	"sync"

	"github.com/openmobilemaps/maps-core-sub000/value"
)

// FeatureStateManager holds per-feature and global mutable state, plus a
// generation counter bumped on every mutation. Evaluators use the
// generation as part of their cache key: a reader that observed an older
// generation may legitimately serve a stale cached result until it next
// consults the counter.
type FeatureStateManager struct {
	mu           sync.RWMutex
	featureState map[uint64]map[value.Key]value.Variant
	globalState  map[value.Key]value.Variant
	generation   uint64
}

// NewFeatureStateManager returns an empty manager at generation 0.
func NewFeatureStateManager() *FeatureStateManager {
	return &FeatureStateManager{
		featureState: make(map[uint64]map[value.Key]value.Variant),
		globalState:  make(map[value.Key]value.Variant),
	}
}

// GetFeatureState returns the state map for id. The caller must not mutate
// the returned map; it aliases internal storage read-locked only for the
// duration of the call.
func (m *FeatureStateManager) GetFeatureState(id uint64) map[value.Key]value.Variant {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.featureState[id]
}

// SetFeatureState assigns key on feature id and bumps the generation counter.
func (m *FeatureStateManager) SetFeatureState(id uint64, key value.Key, v value.Variant) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fs, ok := m.featureState[id]
	if !ok {
		fs = make(map[value.Key]value.Variant)
		m.featureState[id] = fs
	}
	fs[key] = v
	m.generation++
}

func (m *FeatureStateManager) featureStateValue(id uint64, key value.Key) (value.Variant, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	fs, ok := m.featureState[id]
	if !ok {
		return value.Absent, false
	}
	v, ok := fs[key]
	return v, ok
}

// GetGlobalState returns the current value of a process-wide global-state key.
func (m *FeatureStateManager) GetGlobalState(key value.Key) (value.Variant, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.globalState[key]
	return v, ok
}

// SetGlobalState assigns a process-wide global-state key and bumps the
// generation counter.
func (m *FeatureStateManager) SetGlobalState(key value.Key, v value.Variant) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.globalState[key] = v
	m.generation++
}

// CurrentStateID returns the monotonically increasing generation counter.
func (m *FeatureStateManager) CurrentStateID() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.generation
}
