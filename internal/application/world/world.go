// Package world holds the arena's collision state independent of rendering.
package world

import (
	"context"
	"fmt"
	"io/fs"
	"time"

	"github.com/younwookim/pixelhit/internal/application/sprite"
	"github.com/younwookim/pixelhit/internal/domain/collision"
	"github.com/younwookim/pixelhit/internal/infrastructure/config"
)

// World is a player sprite moving among static placed sprites
type World struct {
	catalog    *sprite.Catalog
	player     string
	placements []config.PlacementConfig
	settings   config.CollisionConfig
	detector   collision.Detector
}

// New creates a world over an already loaded catalog.
// onMeasure may be nil.
func New(catalog *sprite.Catalog, cfg *config.ArenaConfig, onMeasure func(time.Duration, bool)) *World {
	return &World{
		catalog:    catalog,
		player:     cfg.Player.Sprite,
		placements: append([]config.PlacementConfig(nil), cfg.Placements...),
		settings:   cfg.Collision,
		detector: collision.Detector{
			Strict:    cfg.Collision.Strict,
			OnMeasure: onMeasure,
		},
	}
}

// Load builds the sprite catalog for cfg and creates a world over it
func Load(ctx context.Context, fsys fs.FS, cfg *config.ArenaConfig, onMeasure func(time.Duration, bool)) (*World, error) {
	catalog, err := sprite.Load(ctx, fsys, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load sprites: %w", err)
	}
	return New(catalog, cfg, onMeasure), nil
}

// Catalog returns the sprite catalog
func (w *World) Catalog() *sprite.Catalog {
	return w.catalog
}

// PlayerSprite returns the ID of the sprite controlled by the player
func (w *World) PlayerSprite() string {
	return w.player
}

// Settings returns the active collision settings
func (w *World) Settings() config.CollisionConfig {
	return w.settings
}

// Placements returns the static sprites
func (w *World) Placements() []config.PlacementConfig {
	return w.placements
}

// Configure applies new collision settings. Pixel maps are rebuilt only when
// a setting that affects them changed.
func (w *World) Configure(ctx context.Context, s config.CollisionConfig) error {
	if s.Resolution != w.settings.Resolution ||
		s.SampleMode != w.settings.SampleMode ||
		s.LegacyAxes != w.settings.LegacyAxes {
		bc, err := sprite.BuildConfigFrom(s)
		if err != nil {
			return err
		}
		if err := w.catalog.Rebuild(ctx, bc); err != nil {
			return fmt.Errorf("failed to rebuild pixel maps: %w", err)
		}
	}

	w.settings = s
	w.detector.Strict = s.Strict
	return nil
}

// Player returns the player sprite at (x, y)
func (w *World) Player(x, y float64) (collision.Object, error) {
	return w.catalog.Object(w.player, x, y)
}

// Targets returns the placed sprites in placement order
func (w *World) Targets() ([]collision.Object, error) {
	targets := make([]collision.Object, 0, len(w.placements))
	for _, p := range w.placements {
		o, err := w.catalog.Object(p.Sprite, p.X, p.Y)
		if err != nil {
			return nil, err
		}
		targets = append(targets, o)
	}
	return targets, nil
}

// Hits returns the indices of the placements the player touches at (x, y)
func (w *World) Hits(x, y float64) ([]int, error) {
	player, err := w.Player(x, y)
	if err != nil {
		return nil, err
	}
	targets, err := w.Targets()
	if err != nil {
		return nil, err
	}

	var hits []int
	for i, t := range targets {
		hit, err := w.detector.HitTest(player, t)
		if err != nil {
			return nil, fmt.Errorf("placement %d (%s): %w", i, w.placements[i].Sprite, err)
		}
		if hit {
			hits = append(hits, i)
		}
	}
	return hits, nil
}
