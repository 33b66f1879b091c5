package pixelmap

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"
)

// SampleMode selects how a cell's opacity is decided.
type SampleMode int

const (
	// SampleCorner queries only the top-left pixel of each cell.
	SampleCorner SampleMode = iota
	// SampleAny marks a cell opaque if any pixel inside it is opaque.
	SampleAny
)

// String returns the string representation of the sample mode
func (m SampleMode) String() string {
	switch m {
	case SampleCorner:
		return "corner"
	case SampleAny:
		return "any"
	default:
		return "unknown"
	}
}

// ParseSampleMode converts a config value to a SampleMode.
// The empty string selects SampleCorner.
func ParseSampleMode(s string) (SampleMode, error) {
	switch s {
	case "", "corner":
		return SampleCorner, nil
	case "any":
		return SampleAny, nil
	default:
		return SampleCorner, fmt.Errorf("pixelmap: unknown sample mode %q", s)
	}
}

// BuildConfig controls pixel map construction. The zero value samples every
// pixel corner with correctly oriented loop bounds.
type BuildConfig struct {
	// Resolution is the sampling stride and cell edge length. 0 means DefaultResolution.
	Resolution int
	Mode       SampleMode

	// LegacyAxes bounds the row loop by the surface width and the column
	// loop by its height, reproducing maps built by older deployments.
	// Only differs from the default on non-square surfaces.
	LegacyAxes bool
}

func (c BuildConfig) resolution() (int, error) {
	switch {
	case c.Resolution == 0:
		return DefaultResolution, nil
	case c.Resolution < 0:
		return 0, fmt.Errorf("%w: %d", ErrInvalidResolution, c.Resolution)
	default:
		return c.Resolution, nil
	}
}

// Build samples s in Resolution-sized steps and records every opaque cell.
// Samples are ordered row by row. On error no map is returned.
func Build(s Surface, cfg BuildConfig) (*PixelMap, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil surface", ErrInvalidSurface)
	}
	res, err := cfg.resolution()
	if err != nil {
		return nil, err
	}

	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidSurface, w, h)
	}

	rows, cols := h, w
	if cfg.LegacyAxes {
		rows, cols = w, h
	}

	var samples []Sample
	for y := 0; y < rows; y += res {
		for x := 0; x < cols; x += res {
			if cellOpaque(s, cfg.Mode, x, y, res, w, h) {
				samples = append(samples, Sample{X: x, Y: y})
			}
		}
	}

	return &PixelMap{
		Samples:    slices.Clip(samples),
		Resolution: res,
		Width:      w,
		Height:     h,
	}, nil
}

func cellOpaque(s Surface, mode SampleMode, x, y, res, w, h int) bool {
	if mode != SampleAny {
		return s.Opaque(x, y, res, res)
	}

	maxX := min(x+res, w)
	maxY := min(y+res, h)
	for py := y; py < maxY; py++ {
		for px := x; px < maxX; px++ {
			if s.Opaque(px, py, 1, 1) {
				return true
			}
		}
	}
	return false
}

// BuildAll builds one map per surface in parallel. The first failure cancels
// the remaining builds and is returned wrapped with its key.
func BuildAll(ctx context.Context, surfaces map[string]Surface, cfg BuildConfig) (map[string]*PixelMap, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	var mu sync.Mutex
	maps := make(map[string]*PixelMap, len(surfaces))

	for key, s := range surfaces {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, err := Build(s, cfg)
			if err != nil {
				return fmt.Errorf("build %s: %w", key, err)
			}
			mu.Lock()
			maps[key] = m
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return maps, nil
}
