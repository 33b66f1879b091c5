package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"os"
	"path"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnsupportedFormat is returned for config files that are neither JSON nor YAML
	ErrUnsupportedFormat = errors.New("config: unsupported format")

	// ErrInvalidManifest is returned when an arena config fails validation
	ErrInvalidManifest = errors.New("config: invalid manifest")
)

// Loader loads arena configuration from JSON or YAML files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// FS returns the filesystem sprite images are resolved against
func (l *Loader) FS() fs.FS {
	return l.fsys
}

// LoadArena loads and validates an arena config. The format follows the
// file extension: .json, .yaml or .yml.
func (l *Loader) LoadArena(name string) (*ArenaConfig, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	var cfg ArenaConfig
	switch ext := path.Ext(name); ext {
	case ".json":
		err = json.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return &cfg, nil
}

func (c *ArenaConfig) applyDefaults() {
	if c.Display.ScreenWidth == 0 {
		c.Display.ScreenWidth = 320
	}
	if c.Display.ScreenHeight == 0 {
		c.Display.ScreenHeight = 240
	}
	if c.Display.Scale == 0 {
		c.Display.Scale = 2
	}
	if c.Display.Framerate == 0 {
		c.Display.Framerate = 60
	}
	if c.Player.Speed == 0 {
		c.Player.Speed = 60
	}
}

// Validate checks sprite definitions and that every reference resolves
func (c *ArenaConfig) Validate() error {
	ids := make(map[string]bool, len(c.Sprites))
	for i, s := range c.Sprites {
		switch {
		case s.ID == "":
			return fmt.Errorf("%w: sprite %d has no id", ErrInvalidManifest, i)
		case ids[s.ID]:
			return fmt.Errorf("%w: duplicate sprite %q", ErrInvalidManifest, s.ID)
		case (s.Image == "") == (len(s.Mask) == 0):
			return fmt.Errorf("%w: sprite %q needs exactly one of image or mask", ErrInvalidManifest, s.ID)
		case s.Resolution < 0:
			return fmt.Errorf("%w: sprite %q has negative resolution", ErrInvalidManifest, s.ID)
		}
		if s.Color != "" {
			if _, err := ParseColor(s.Color); err != nil {
				return fmt.Errorf("%w: sprite %q: %w", ErrInvalidManifest, s.ID, err)
			}
		}
		ids[s.ID] = true
	}

	if c.Collision.Resolution < 0 {
		return fmt.Errorf("%w: negative collision resolution", ErrInvalidManifest)
	}
	if c.Player.Sprite != "" && !ids[c.Player.Sprite] {
		return fmt.Errorf("%w: player sprite %q is not defined", ErrInvalidManifest, c.Player.Sprite)
	}
	for i, p := range c.Placements {
		if !ids[p.Sprite] {
			return fmt.Errorf("%w: placement %d uses unknown sprite %q", ErrInvalidManifest, i, p.Sprite)
		}
	}
	if c.Display.Background != "" {
		if _, err := ParseColor(c.Display.Background); err != nil {
			return fmt.Errorf("%w: background: %w", ErrInvalidManifest, err)
		}
	}
	return nil
}

// ParseColor parses a "#rrggbb" hex color
func ParseColor(s string) (color.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, fmt.Errorf("color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
