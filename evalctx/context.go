package evalctx

import "github.com/openmobilemaps/maps-core-sub000/value"

// EvaluationContext is the set of inputs every expression evaluation reads.
// Feature may be nil for global (layout/paint default) evaluations that
// don't project a feature property.
type EvaluationContext struct {
	Zoom     float64
	DPFactor float64
	Feature  *FeatureContext
	State    *FeatureStateManager
}

// GetProperty resolves key against the evaluation context: "zoom" diverts
// to Zoom rather than a feature property lookup.
func (c *EvaluationContext) GetProperty(key value.Key) (value.Variant, bool) {
	if key == value.KeyZoom {
		return value.Double(c.Zoom), true
	}
	if c.Feature == nil {
		return value.Absent, false
	}
	return c.Feature.Get(key)
}

// HasProperty reports presence, diverting "zoom" to true unconditionally.
func (c *EvaluationContext) HasProperty(key value.Key) bool {
	if key == value.KeyZoom {
		return true
	}
	if c.Feature == nil {
		return false
	}
	return c.Feature.Has(key)
}

// FeatureState resolves a feature-state lookup for the context's current feature.
func (c *EvaluationContext) FeatureState(key value.Key) (value.Variant, bool) {
	if c.Feature == nil || c.State == nil {
		return value.Absent, false
	}
	return c.State.featureStateValue(c.Feature.ID, key)
}

// GlobalState resolves a process-wide global-state lookup.
func (c *EvaluationContext) GlobalState(key value.Key) (value.Variant, bool) {
	if c.State == nil {
		return value.Absent, false
	}
	return c.State.GetGlobalState(key)
}
