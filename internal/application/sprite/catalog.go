// Package sprite loads sprite images and keeps their pixel maps current.
//
// The collision core leaves caching to its callers; Catalog is that cache for
// the arena. Maps are built when sprites are loaded and rebuilt whenever the
// image or the build settings change.
package sprite

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"sync"

	"github.com/younwookim/pixelhit/internal/domain/collision"
	"github.com/younwookim/pixelhit/internal/domain/pixelmap"
	"github.com/younwookim/pixelhit/internal/infrastructure/config"
	"github.com/younwookim/pixelhit/internal/infrastructure/surface"
)

// ErrUnknownSprite is returned for IDs the catalog does not hold
var ErrUnknownSprite = errors.New("sprite: unknown sprite")

var defaultMaskColor = color.RGBA{255, 255, 255, 255}

// Sprite is a loaded image with the pixel map built from it.
// A Sprite is never modified after it is published by the catalog.
type Sprite struct {
	ID      string
	Surface *surface.Image
	Map     *pixelmap.PixelMap

	// Resolution overrides the catalog default when non-zero
	Resolution int
}

// Image returns the decoded sprite image
func (s *Sprite) Image() image.Image {
	return s.Surface.Source()
}

// Catalog holds sprites by ID. It is safe for concurrent use.
type Catalog struct {
	// buildMu serializes Rebuild and Replace so every map matches defaults
	buildMu sync.Mutex

	mu       sync.RWMutex
	sprites  map[string]*Sprite
	order    []string
	defaults pixelmap.BuildConfig
}

// NewCatalog creates an empty catalog using defaults for map construction
func NewCatalog(defaults pixelmap.BuildConfig) *Catalog {
	return &Catalog{
		sprites:  make(map[string]*Sprite),
		defaults: defaults,
	}
}

// BuildConfigFrom converts the collision section of an arena config
func BuildConfigFrom(cfg config.CollisionConfig) (pixelmap.BuildConfig, error) {
	mode, err := pixelmap.ParseSampleMode(cfg.SampleMode)
	if err != nil {
		return pixelmap.BuildConfig{}, err
	}
	return pixelmap.BuildConfig{
		Resolution: cfg.Resolution,
		Mode:       mode,
		LegacyAxes: cfg.LegacyAxes,
	}, nil
}

// Load decodes every sprite of cfg (images are read from fsys) and builds
// their pixel maps in parallel.
func Load(ctx context.Context, fsys fs.FS, cfg *config.ArenaConfig) (*Catalog, error) {
	defaults, err := BuildConfigFrom(cfg.Collision)
	if err != nil {
		return nil, err
	}

	c := NewCatalog(defaults)
	loaded := make([]*Sprite, 0, len(cfg.Sprites))
	for _, sc := range cfg.Sprites {
		s, err := decodeSprite(fsys, sc)
		if err != nil {
			return nil, fmt.Errorf("sprite %s: %w", sc.ID, err)
		}
		loaded = append(loaded, s)
	}

	built, err := c.buildMaps(ctx, loaded, defaults)
	if err != nil {
		return nil, err
	}
	for _, s := range built {
		c.sprites[s.ID] = s
		c.order = append(c.order, s.ID)
	}
	return c, nil
}

func decodeSprite(fsys fs.FS, sc config.SpriteConfig) (*Sprite, error) {
	var (
		surf *surface.Image
		err  error
	)
	if sc.Image != "" {
		surf, err = surface.LoadFS(fsys, sc.Image)
	} else {
		var c color.Color = defaultMaskColor
		if sc.Color != "" {
			if c, err = config.ParseColor(sc.Color); err != nil {
				return nil, err
			}
		}
		surf, err = surface.FromMask(sc.Mask, c)
	}
	if err != nil {
		return nil, err
	}
	return &Sprite{ID: sc.ID, Surface: surf, Resolution: sc.Resolution}, nil
}

// buildMaps returns new sprites carrying freshly built maps. Sprites sharing
// the same effective build config are built together.
func (c *Catalog) buildMaps(ctx context.Context, sprites []*Sprite, defaults pixelmap.BuildConfig) ([]*Sprite, error) {
	groups := make(map[pixelmap.BuildConfig]map[string]pixelmap.Surface)
	for _, s := range sprites {
		bc := effectiveConfig(defaults, s.Resolution)
		if groups[bc] == nil {
			groups[bc] = make(map[string]pixelmap.Surface)
		}
		groups[bc][s.ID] = s.Surface
	}

	maps := make(map[string]*pixelmap.PixelMap, len(sprites))
	for bc, surfaces := range groups {
		built, err := pixelmap.BuildAll(ctx, surfaces, bc)
		if err != nil {
			return nil, err
		}
		for id, m := range built {
			maps[id] = m
		}
	}

	out := make([]*Sprite, len(sprites))
	for i, s := range sprites {
		next := *s
		next.Map = maps[s.ID]
		out[i] = &next
	}
	return out, nil
}

func effectiveConfig(defaults pixelmap.BuildConfig, resolution int) pixelmap.BuildConfig {
	if resolution != 0 {
		defaults.Resolution = resolution
	}
	return defaults
}

// Get returns the sprite with the given ID
func (c *Catalog) Get(id string) (*Sprite, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, ok := c.sprites[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSprite, id)
	}
	return s, nil
}

// Object places sprite id at (x, y) for collision testing
func (c *Catalog) Object(id string, x, y float64) (collision.Object, error) {
	s, err := c.Get(id)
	if err != nil {
		return collision.Object{}, err
	}
	return collision.NewObject(x, y, s.Map), nil
}

// IDs returns sprite IDs in load order
func (c *Catalog) IDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return append([]string(nil), c.order...)
}

// Defaults returns the build config used for sprites without an override
func (c *Catalog) Defaults() pixelmap.BuildConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.defaults
}

// Rebuild replaces the default build config and rebuilds every map.
// On failure the catalog is left unchanged.
func (c *Catalog) Rebuild(ctx context.Context, defaults pixelmap.BuildConfig) error {
	c.buildMu.Lock()
	defer c.buildMu.Unlock()

	c.mu.RLock()
	current := make([]*Sprite, 0, len(c.order))
	for _, id := range c.order {
		current = append(current, c.sprites[id])
	}
	c.mu.RUnlock()

	built, err := c.buildMaps(ctx, current, defaults)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.defaults = defaults
	for _, s := range built {
		c.sprites[s.ID] = s
	}
	return nil
}

// Replace swaps the image of sprite id, or adds a new sprite, and builds its map.
func (c *Catalog) Replace(id string, img image.Image, resolution int) error {
	surf, err := surface.NewImage(img)
	if err != nil {
		return fmt.Errorf("sprite %s: %w", id, err)
	}

	c.buildMu.Lock()
	defer c.buildMu.Unlock()

	defaults := c.Defaults()
	m, err := pixelmap.Build(surf, effectiveConfig(defaults, resolution))
	if err != nil {
		return fmt.Errorf("sprite %s: %w", id, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.sprites[id]; !ok {
		c.order = append(c.order, id)
	}
	c.sprites[id] = &Sprite{ID: id, Surface: surf, Map: m, Resolution: resolution}
	return nil
}
