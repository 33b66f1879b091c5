package collision

import (
	"errors"
	"fmt"
	"time"
)

// ErrMissingPixelMap is returned by a strict Detector when the pixel stage
// runs on an object without a pixel map.
var ErrMissingPixelMap = errors.New("collision: missing pixel map")

// Detector is a configured HitTest. The zero value behaves like HitTest.
// A Detector holds no mutable state and may be shared between goroutines.
type Detector struct {
	// Strict rejects objects without a pixel map once the boxes overlap,
	// instead of treating them as solid rectangles.
	Strict bool

	// OnMeasure, if set, receives the duration and result of every HitTest call.
	OnMeasure func(elapsed time.Duration, hit bool)
}

// HitTest reports whether source and target collide.
// The only error is ErrMissingPixelMap, and only in strict mode.
func (d Detector) HitTest(source, target Object) (bool, error) {
	var start time.Time
	if d.OnMeasure != nil {
		start = time.Now()
	}

	hit, err := d.hitTest(source, target)
	if err != nil {
		return false, err
	}

	if d.OnMeasure != nil {
		d.OnMeasure(time.Since(start), hit)
	}
	return hit, nil
}

func (d Detector) hitTest(source, target Object) (bool, error) {
	return gated(source, target, d.runPixelStage)
}

func (d Detector) runPixelStage(source, target Object) (bool, error) {
	if d.Strict {
		if source.Map == nil {
			return false, fmt.Errorf("%w: source", ErrMissingPixelMap)
		}
		if target.Map == nil {
			return false, fmt.Errorf("%w: target", ErrMissingPixelMap)
		}
	}
	return pixelStage(source, target), nil
}

// HitAny returns the index of the first target that collides with source, or -1.
func (d Detector) HitAny(source Object, targets []Object) (int, error) {
	for i, target := range targets {
		hit, err := d.HitTest(source, target)
		if err != nil {
			return -1, fmt.Errorf("target %d: %w", i, err)
		}
		if hit {
			return i, nil
		}
	}
	return -1, nil
}
