package symbol

import (
	"math"

	"github.com/openmobilemaps/maps-core-sub000/value"
)

// PlacementMode selects how an Object's anchor is derived from its source
// geometry (spec §4.8: "symbol-placement: point | line").
type PlacementMode uint8

const (
	PlacementPoint PlacementMode = iota
	PlacementLine
)

// PlacePoint returns a single anchor at the feature's centroid.
func PlacePoint(centroid value.Vec2) []value.Vec2 {
	return []value.Vec2{centroid}
}

// PlaceLine returns repeated anchors spaced spacingPx apart (converted
// through dpFactor, spec §4.8's "symbol-spacing ... converted via the dp
// factor") along the polyline in line, walking its arc length. Lines
// shorter than one spacing interval fall back to a single anchor at the
// line's midpoint.
func PlaceLine(line []value.Vec2, spacingPx, dpFactor float64) []value.Vec2 {
	if len(line) < 2 {
		if len(line) == 1 {
			return []value.Vec2{line[0]}
		}
		return nil
	}

	spacing := spacingPx * dpFactor
	if spacing <= 0 {
		spacing = 1
	}

	total := lineLength(line)
	if total < spacing {
		return []value.Vec2{midpoint(line, total)}
	}

	var anchors []value.Vec2
	var traveled, nextMark float64
	for i := 0; i+1 < len(line); i++ {
		a, b := line[i], line[i+1]
		segLen := dist(a, b)
		if segLen == 0 {
			continue
		}
		for nextMark <= traveled+segLen {
			t := (nextMark - traveled) / segLen
			anchors = append(anchors, lerp(a, b, t))
			nextMark += spacing
		}
		traveled += segLen
	}
	if len(anchors) == 0 {
		anchors = append(anchors, midpoint(line, total))
	}
	return anchors
}

func lineLength(line []value.Vec2) float64 {
	total := 0.0
	for i := 0; i+1 < len(line); i++ {
		total += dist(line[i], line[i+1])
	}
	return total
}

func midpoint(line []value.Vec2, total float64) value.Vec2 {
	half := total / 2
	traveled := 0.0
	for i := 0; i+1 < len(line); i++ {
		a, b := line[i], line[i+1]
		segLen := dist(a, b)
		if segLen == 0 {
			continue
		}
		if traveled+segLen >= half {
			t := (half - traveled) / segLen
			return lerp(a, b, t)
		}
		traveled += segLen
	}
	return line[len(line)/2]
}

func dist(a, b value.Vec2) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	return math.Hypot(dx, dy)
}

func lerp(a, b value.Vec2, t float64) value.Vec2 {
	return value.Vec2{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}
