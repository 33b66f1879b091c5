// Package collision decides whether two positioned sprites overlap.
//
// Detection runs in two stages: a bounding-box test rejects distant pairs,
// then the opaque cells of both pixel maps are compared pairwise. Every
// function here is pure; callers own the objects and their pixel maps.
package collision

import (
	"github.com/younwookim/pixelhit/internal/domain/geom"
	"github.com/younwookim/pixelhit/internal/domain/pixelmap"
)

// Object is a sprite placed in the world.
// Map is only needed by the pixel stage. An object without a map is treated
// as solid over its whole bounding box.
type Object struct {
	X, Y          float64
	Width, Height float64
	Map           *pixelmap.PixelMap
}

// NewObject places a sprite whose extent is taken from its pixel map
func NewObject(x, y float64, m *pixelmap.PixelMap) Object {
	o := Object{X: x, Y: y, Map: m}
	if m != nil {
		o.Width = float64(m.Width)
		o.Height = float64(m.Height)
	}
	return o
}

// Bounds returns the object's bounding box
func (o Object) Bounds() geom.Rect {
	return geom.Rect{X: o.X, Y: o.Y, Width: o.Width, Height: o.Height}
}

// MoveTo returns a copy of o at (x, y), sharing the same pixel map
func (o Object) MoveTo(x, y float64) Object {
	o.X, o.Y = x, y
	return o
}

func (o Object) cellCount() int {
	if o.Map == nil {
		return 1
	}
	return len(o.Map.Samples)
}

func (o Object) cell(i int) geom.Rect {
	if o.Map == nil {
		return o.Bounds()
	}
	return o.Map.Cell(i, o.X, o.Y)
}

// BoxHitTest reports whether two rectangles overlap. Touching edges count.
func BoxHitTest(source, target geom.Rect) bool {
	return source.Overlaps(target)
}

// PixelHitTest compares every opaque cell of source against every opaque
// cell of target, each sized by its own map's resolution. It returns true on
// the first overlapping pair and false when no pair overlaps, including when
// either map is empty.
func PixelHitTest(source, target Object) bool {
	sn, tn := source.cellCount(), target.cellCount()
	for s := 0; s < sn; s++ {
		sourceCell := source.cell(s)
		for t := 0; t < tn; t++ {
			if BoxHitTest(sourceCell, target.cell(t)) {
				return true
			}
		}
	}
	return false
}

// pixelStage is the second stage behind the box gate; tests replace it
var pixelStage = PixelHitTest

// HitTest runs the box stage and, only when the boxes overlap, the pixel stage.
func HitTest(source, target Object) bool {
	hit, _ := gated(source, target, func(source, target Object) (bool, error) {
		return pixelStage(source, target), nil
	})
	return hit
}

// gated calls stage only for pairs whose bounding boxes overlap
func gated(source, target Object, stage func(source, target Object) (bool, error)) (bool, error) {
	if !BoxHitTest(source.Bounds(), target.Bounds()) {
		return false, nil
	}
	return stage(source, target)
}
