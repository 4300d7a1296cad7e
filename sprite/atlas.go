// Package sprite loads the sprite-sheet input (spec §6): a JSON mapping of
// name to sub-rectangle plus a single backing image, used by the symbol
// package for icon/stretched-icon placement. Grounded on the teacher's
// atlas.go TexturePacker-JSON loader (probe-then-decode JSON parsing,
// named-region lookup, missing-region placeholder+once-per-name logging),
// generalized from a multi-page trimmed-sprite atlas to this spec's
// single-image stretchable-icon contract.
package sprite

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// Band is one [a, b] stretch band, in sprite-local pixels, along one axis.
type Band struct {
	A, B float64
}

// Region describes one named sub-rectangle of the sprite sheet image, plus
// the optional 9-slice stretch bands used by stretched icons.
type Region struct {
	Name       string
	X, Y       float64
	Width      float64
	Height     float64
	PixelRatio float64
	StretchX   []Band
	StretchY   []Band
}

type rawRegion struct {
	X          float64     `json:"x"`
	Y          float64     `json:"y"`
	Width      float64     `json:"width"`
	Height     float64     `json:"height"`
	PixelRatio float64     `json:"pixelRatio"`
	StretchX   [][]float64 `json:"stretchX"`
	StretchY   [][]float64 `json:"stretchY"`
}

// Sheet holds the sprite sheet's backing image and its named regions.
type Sheet struct {
	Image *ebiten.Image

	mu       sync.Mutex
	regions  map[string]Region
	warned   map[string]bool
}

// Load parses a sprite-sheet JSON document (name -> {x,y,width,height,
// pixelRatio,stretchX?,stretchY?}) paired with its backing image.
func Load(jsonData []byte, image *ebiten.Image) (*Sheet, error) {
	var raw map[string]rawRegion
	if err := json.Unmarshal(jsonData, &raw); err != nil {
		return nil, fmt.Errorf("sprite: parse sheet: %w", err)
	}

	regions := make(map[string]Region, len(raw))
	for name, r := range raw {
		pr := r.PixelRatio
		if pr <= 0 {
			pr = 1
		}
		regions[name] = Region{
			Name:       name,
			X:          r.X,
			Y:          r.Y,
			Width:      r.Width,
			Height:     r.Height,
			PixelRatio: pr,
			StretchX:   toBands(r.StretchX),
			StretchY:   toBands(r.StretchY),
		}
	}
	return &Sheet{Image: image, regions: regions, warned: make(map[string]bool)}, nil
}

func toBands(raw [][]float64) []Band {
	if len(raw) == 0 {
		return nil
	}
	out := make([]Band, 0, len(raw))
	for _, pair := range raw {
		if len(pair) != 2 {
			continue
		}
		out = append(out, Band{A: pair[0], B: pair[1]})
	}
	return out
}

// Region returns the named sub-rectangle. A missing name is logged once
// (per spec §7 "missing sprite ... logged once per name") and a zero-sized
// placeholder region is returned so callers can render without an icon
// rather than fail.
func (s *Sheet) Region(name string) (Region, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r, ok := s.regions[name]; ok {
		return r, true
	}
	if !s.warned[name] {
		log.Printf("sprite: missing region %q", name)
		s.warned[name] = true
	}
	return Region{Name: name}, false
}

// Has reports whether name is a known region, without logging.
func (s *Sheet) Has(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.regions[name]
	return ok
}
