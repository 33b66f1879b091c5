package collision

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/pixelhit/internal/domain/geom"
	"github.com/younwookim/pixelhit/internal/domain/pixelmap"
)

func sprite(x, y float64, w, h, res int, samples ...pixelmap.Sample) Object {
	return NewObject(x, y, &pixelmap.PixelMap{
		Samples:    samples,
		Resolution: res,
		Width:      w,
		Height:     h,
	})
}

func solid(w, h int) []pixelmap.Sample {
	var samples []pixelmap.Sample
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			samples = append(samples, pixelmap.Sample{X: x, Y: y})
		}
	}
	return samples
}

func TestBoxHitTest(t *testing.T) {
	tests := []struct {
		name   string
		source geom.Rect
		target geom.Rect
		want   bool
	}{
		{
			name:   "shared edge at x=10",
			source: geom.Rect{X: 0, Y: 0, Width: 10, Height: 10},
			target: geom.Rect{X: 10, Y: 0, Width: 10, Height: 10},
			want:   true,
		},
		{
			name:   "source bottom equals target top",
			source: geom.Rect{X: 0, Y: 0, Width: 10, Height: 10},
			target: geom.Rect{X: 3, Y: 10, Width: 2, Height: 2},
			want:   true,
		},
		{
			name:   "clear separation",
			source: geom.Rect{X: 0, Y: 0, Width: 5, Height: 5},
			target: geom.Rect{X: 10, Y: 10, Width: 5, Height: 5},
			want:   false,
		},
		{
			name:   "target left of source",
			source: geom.Rect{X: 20, Y: 0, Width: 5, Height: 5},
			target: geom.Rect{X: 0, Y: 0, Width: 5, Height: 5},
			want:   false,
		},
		{
			name:   "target above source",
			source: geom.Rect{X: 0, Y: 20, Width: 5, Height: 5},
			target: geom.Rect{X: 0, Y: 0, Width: 5, Height: 5},
			want:   false,
		},
		{
			name:   "overlap with fractional positions",
			source: geom.Rect{X: 0.5, Y: 0.5, Width: 1, Height: 1},
			target: geom.Rect{X: 1.25, Y: 1.25, Width: 1, Height: 1},
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BoxHitTest(tt.source, tt.target))
			assert.Equal(t, tt.want, BoxHitTest(tt.target, tt.source), "symmetry")
		})
	}
}

func TestPixelHitTest(t *testing.T) {
	tests := []struct {
		name   string
		source Object
		target Object
		want   bool
	}{
		{
			name:   "single overlapping pixel",
			source: sprite(0, 0, 4, 4, 1, pixelmap.Sample{X: 3, Y: 3}),
			target: sprite(2, 2, 4, 4, 1, pixelmap.Sample{X: 1, Y: 1}),
			want:   true,
		},
		{
			name:   "content apart inside overlapping boxes",
			source: sprite(0, 0, 4, 4, 1, pixelmap.Sample{X: 0, Y: 0}, pixelmap.Sample{X: 0, Y: 3}),
			target: sprite(2, 0, 4, 4, 1, pixelmap.Sample{X: 2, Y: 0}, pixelmap.Sample{X: 3, Y: 3}),
			want:   false,
		},
		{
			// Cells are closed like boxes, so neighbouring pixels touch.
			name:   "adjacent cells touch",
			source: sprite(0, 0, 2, 2, 1, pixelmap.Sample{X: 0, Y: 0}),
			target: sprite(1, 0, 2, 2, 1, pixelmap.Sample{X: 0, Y: 0}),
			want:   true,
		},
		{
			name:   "each side uses its own resolution",
			source: sprite(0, 0, 4, 4, 4, pixelmap.Sample{X: 0, Y: 0}),
			target: sprite(3, 3, 4, 4, 1, pixelmap.Sample{X: 0, Y: 0}),
			want:   true,
		},
		{
			name:   "coarse cell falls short",
			source: sprite(0, 0, 8, 8, 2, pixelmap.Sample{X: 0, Y: 0}),
			target: sprite(3, 3, 4, 4, 1, pixelmap.Sample{X: 0, Y: 0}),
			want:   false,
		},
		{
			name:   "empty source map",
			source: sprite(0, 0, 4, 4, 1),
			target: sprite(0, 0, 4, 4, 1, solid(4, 4)...),
			want:   false,
		},
		{
			name:   "both maps empty",
			source: sprite(0, 0, 4, 4, 1),
			target: sprite(0, 0, 4, 4, 1),
			want:   false,
		},
		{
			name:   "source without map is solid",
			source: Object{X: 0, Y: 0, Width: 10, Height: 10},
			target: sprite(8, 8, 10, 10, 1, pixelmap.Sample{X: 1, Y: 1}),
			want:   true,
		},
		{
			name:   "solid fallback still needs opaque target cells",
			source: Object{X: 0, Y: 0, Width: 10, Height: 10},
			target: sprite(8, 8, 10, 10, 1, pixelmap.Sample{X: 5, Y: 5}),
			want:   false,
		},
		{
			name:   "both without maps behave like boxes",
			source: Object{X: 0, Y: 0, Width: 10, Height: 10},
			target: Object{X: 10, Y: 10, Width: 10, Height: 10},
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PixelHitTest(tt.source, tt.target))
			assert.Equal(t, tt.want, PixelHitTest(tt.target, tt.source), "symmetry")
		})
	}
}

func TestHitTest(t *testing.T) {
	t.Run("disjoint boxes", func(t *testing.T) {
		a := sprite(0, 0, 4, 4, 1, solid(4, 4)...)
		b := sprite(10, 10, 4, 4, 1, solid(4, 4)...)
		assert.False(t, HitTest(a, b))
	})

	t.Run("overlapping boxes with separate content", func(t *testing.T) {
		a := sprite(0, 0, 4, 4, 1, pixelmap.Sample{X: 0, Y: 0})
		b := sprite(2, 2, 4, 4, 1, pixelmap.Sample{X: 3, Y: 3})
		assert.False(t, HitTest(a, b))
	})

	t.Run("overlapping content", func(t *testing.T) {
		a := sprite(0, 0, 4, 4, 1, pixelmap.Sample{X: 3, Y: 3})
		b := sprite(2, 2, 4, 4, 1, pixelmap.Sample{X: 1, Y: 1})
		assert.True(t, HitTest(a, b))
	})

	t.Run("mapless object with negative extent", func(t *testing.T) {
		a := Object{X: 10, Y: 10, Width: -10, Height: -10}
		assert.True(t, HitTest(a, sprite(2, 2, 4, 4, 1, pixelmap.Sample{X: 1, Y: 1})))
		assert.False(t, HitTest(a, sprite(12, 2, 4, 4, 1, solid(4, 4)...)))
	})

	t.Run("idempotent", func(t *testing.T) {
		a := sprite(0, 0, 4, 4, 1, pixelmap.Sample{X: 3, Y: 3})
		b := sprite(2, 2, 4, 4, 1, pixelmap.Sample{X: 1, Y: 1})
		first := HitTest(a, b)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, HitTest(a, b))
		}
	})
}

func TestObject(t *testing.T) {
	m := &pixelmap.PixelMap{Resolution: 1, Width: 16, Height: 24}

	o := NewObject(5, 7, m)
	assert.Equal(t, geom.Rect{X: 5, Y: 7, Width: 16, Height: 24}, o.Bounds())

	moved := o.MoveTo(1, 2)
	assert.Equal(t, geom.Rect{X: 1, Y: 2, Width: 16, Height: 24}, moved.Bounds())
	assert.Same(t, m, moved.Map)
	assert.Equal(t, 5.0, o.X, "MoveTo does not modify the receiver")

	bare := NewObject(1, 1, nil)
	assert.Equal(t, geom.Rect{X: 1, Y: 1}, bare.Bounds())
}

// countPixelStage swaps in a pixel stage that always hits and counts its calls
func countPixelStage(t *testing.T) *int {
	t.Helper()
	calls := 0
	saved := pixelStage
	pixelStage = func(_, _ Object) bool {
		calls++
		return true
	}
	t.Cleanup(func() { pixelStage = saved })
	return &calls
}

func TestSkipsPixelStageForDisjointBoxes(t *testing.T) {
	a := sprite(0, 0, 4, 4, 1, solid(4, 4)...)
	b := sprite(100, 100, 4, 4, 1, solid(4, 4)...)

	tests := []struct {
		name    string
		hitTest func(source, target Object) (bool, error)
	}{
		{
			name: "HitTest",
			hitTest: func(source, target Object) (bool, error) {
				return HitTest(source, target), nil
			},
		},
		{
			name:    "Detector",
			hitTest: Detector{}.HitTest,
		},
		{
			name:    "strict Detector",
			hitTest: Detector{Strict: true}.HitTest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := countPixelStage(t)

			hit, err := tt.hitTest(a, b)
			require.NoError(t, err)
			assert.False(t, hit)
			assert.Zero(t, *calls, "pixel stage must not run when boxes are disjoint")

			hit, err = tt.hitTest(a, b.MoveTo(2, 2))
			require.NoError(t, err)
			assert.True(t, hit)
			assert.Equal(t, 1, *calls)
		})
	}
}

func TestDetector_ZeroValueMatchesHitTest(t *testing.T) {
	pairs := [][2]Object{
		{sprite(0, 0, 4, 4, 1, solid(4, 4)...), sprite(3, 3, 4, 4, 1, solid(4, 4)...)},
		{sprite(0, 0, 4, 4, 1, pixelmap.Sample{}), sprite(2, 2, 4, 4, 1, pixelmap.Sample{X: 3, Y: 3})},
		{Object{Width: 5, Height: 5}, sprite(4, 4, 4, 4, 2, pixelmap.Sample{})},
	}

	var d Detector
	for i, p := range pairs {
		hit, err := d.HitTest(p[0], p[1])
		require.NoError(t, err, "pair %d", i)
		assert.Equal(t, HitTest(p[0], p[1]), hit, "pair %d", i)
	}
}

func TestDetector_Strict(t *testing.T) {
	d := Detector{Strict: true}
	withMap := sprite(0, 0, 4, 4, 1, solid(4, 4)...)
	bare := Object{X: 2, Y: 2, Width: 4, Height: 4}

	_, err := d.HitTest(withMap, bare)
	assert.ErrorIs(t, err, ErrMissingPixelMap)
	assert.Contains(t, err.Error(), "target")

	_, err = d.HitTest(bare, withMap)
	assert.ErrorIs(t, err, ErrMissingPixelMap)
	assert.Contains(t, err.Error(), "source")

	hit, err := d.HitTest(withMap, bare.MoveTo(50, 50))
	require.NoError(t, err, "box rejection does not need pixel maps")
	assert.False(t, hit)
}

func TestDetector_OnMeasure(t *testing.T) {
	var results []bool
	d := Detector{OnMeasure: func(elapsed time.Duration, hit bool) {
		assert.GreaterOrEqual(t, elapsed, time.Duration(0))
		results = append(results, hit)
	}}

	a := sprite(0, 0, 4, 4, 1, solid(4, 4)...)
	_, _ = d.HitTest(a, a.MoveTo(2, 2))
	_, _ = d.HitTest(a, a.MoveTo(20, 20))

	assert.Equal(t, []bool{true, false}, results)

	strict := Detector{Strict: true, OnMeasure: d.OnMeasure}
	_, err := strict.HitTest(a, Object{Width: 4, Height: 4})
	assert.Error(t, err)
	assert.Len(t, results, 2, "failed calls are not measured")
}

func TestDetector_HitAny(t *testing.T) {
	var d Detector
	player := sprite(10, 10, 4, 4, 1, solid(4, 4)...)
	targets := []Object{
		sprite(0, 0, 4, 4, 1, solid(4, 4)...),
		sprite(12, 12, 4, 4, 1, solid(4, 4)...),
		sprite(11, 11, 4, 4, 1, solid(4, 4)...),
	}

	idx, err := d.HitAny(player, targets)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	idx, err = d.HitAny(player, targets[:1])
	require.NoError(t, err)
	assert.Equal(t, -1, idx)

	strict := Detector{Strict: true}
	idx, err = strict.HitAny(player, []Object{{X: 10, Y: 10, Width: 1, Height: 1}})
	assert.ErrorIs(t, err, ErrMissingPixelMap)
	assert.Equal(t, -1, idx)
}
