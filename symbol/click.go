package symbol

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/openmobilemaps/maps-core-sub000/collision"
	"github.com/openmobilemaps/maps-core-sub000/value"
)

// ClickEvent is published when Resolve finds a hit, replacing the teacher's
// generic InteractionEvent ECS bridge with a symbol-specific payload (spec
// §4.8: "emits (coordinate, feature_info) for the topmost hit").
type ClickEvent struct {
	Coordinate value.Vec2
	FeatureID  uint64
}

// ClickEventType is the donburi event type symbol click resolution
// publishes on, mirroring the teacher's ecs/donburi.go InteractionEventType
// (events.NewEventType[T]() + Publish/Subscribe).
var ClickEventType = events.NewEventType[ClickEvent]()

// clickEpsilon is the half-width, in world units, of the tiny OBB a click
// is projected into before testing against symbol OBBs (spec §4.8:
// "project screen click to a tiny world-space OBB").
const clickEpsilon = 0.5

// Resolve tests a world-space click point against objs in reverse order
// (topmost render order last drawn, so later entries in objs win ties) and
// publishes a ClickEvent for the first (topmost) hit. It reports whether
// any object was hit.
func Resolve(world donburi.World, objs []*Object, click value.Vec2) bool {
	clickOBB := collision.NewOBB([4]collision.Point{
		{X: click.X - clickEpsilon, Y: click.Y - clickEpsilon},
		{X: click.X + clickEpsilon, Y: click.Y - clickEpsilon},
		{X: click.X + clickEpsilon, Y: click.Y + clickEpsilon},
		{X: click.X - clickEpsilon, Y: click.Y + clickEpsilon},
	})

	for i := len(objs) - 1; i >= 0; i-- {
		obj := objs[i]
		obb, ok := obj.CombinedOBB()
		if !ok {
			continue
		}
		if obb.Overlaps(clickOBB) {
			ClickEventType.Publish(world, ClickEvent{Coordinate: click, FeatureID: obj.FeatureID})
			return true
		}
	}
	return false
}
