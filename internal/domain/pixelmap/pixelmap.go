// Package pixelmap samples sprite surfaces into sparse sets of opaque cells.
//
// A PixelMap is built once per sprite image and attached to the positioned
// objects handed to the collision package. Maps are never patched: when the
// source image changes the caller builds a new one.
package pixelmap

import (
	"errors"

	"github.com/younwookim/pixelhit/internal/domain/geom"
)

// DefaultResolution is the sampling stride used when BuildConfig.Resolution is zero.
const DefaultResolution = 1

var (
	// ErrInvalidSurface is returned when a surface cannot supply pixel data.
	ErrInvalidSurface = errors.New("pixelmap: invalid surface")

	// ErrInvalidResolution is returned for a negative sampling stride.
	ErrInvalidResolution = errors.New("pixelmap: invalid resolution")
)

// Surface is the image source a pixel map is sampled from.
type Surface interface {
	// Size returns the surface extent in pixels.
	Size() (width, height int)

	// Opaque reports whether the leading (top-left) pixel of the region
	// has non-zero alpha. Regions starting outside the surface report false.
	Opaque(x, y, width, height int) bool
}

// Sample is the offset of an opaque cell relative to the sprite origin.
type Sample struct {
	X, Y int
}

// PixelMap is the set of opaque cells found on a surface.
// Each sample stands for a Resolution x Resolution cell.
type PixelMap struct {
	Samples    []Sample
	Resolution int

	// Width and Height are the extent of the surface the map was built from.
	Width, Height int
}

// Len returns the number of opaque cells
func (m *PixelMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Samples)
}

// Cell returns the absolute rect of sample i for a sprite placed at (originX, originY)
func (m *PixelMap) Cell(i int, originX, originY float64) geom.Rect {
	s := m.Samples[i]
	res := float64(m.Resolution)
	return geom.Rect{
		X:      float64(s.X) + originX,
		Y:      float64(s.Y) + originY,
		Width:  res,
		Height: res,
	}
}

// Contains reports whether a sample was recorded at offset (x, y)
func (m *PixelMap) Contains(x, y int) bool {
	if m == nil {
		return false
	}
	for _, s := range m.Samples {
		if s.X == x && s.Y == y {
			return true
		}
	}
	return false
}
