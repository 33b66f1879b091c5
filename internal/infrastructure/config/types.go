package config

// ArenaConfig is the root config for arena.json / arena.yaml
type ArenaConfig struct {
	Display    DisplayConfig     `json:"display" yaml:"display"`
	Collision  CollisionConfig   `json:"collision" yaml:"collision"`
	Sprites    []SpriteConfig    `json:"sprites" yaml:"sprites"`
	Player     PlayerConfig      `json:"player" yaml:"player"`
	Placements []PlacementConfig `json:"placements" yaml:"placements"`
}

type DisplayConfig struct {
	ScreenWidth  int    `json:"screenWidth" yaml:"screenWidth"`
	ScreenHeight int    `json:"screenHeight" yaml:"screenHeight"`
	Scale        int    `json:"scale" yaml:"scale"`
	Framerate    int    `json:"framerate" yaml:"framerate"`
	Background   string `json:"background" yaml:"background"` // Hex color, e.g. "#1a1a2e"
}

// CollisionConfig holds the defaults used when building pixel maps and testing hits
type CollisionConfig struct {
	Resolution int    `json:"resolution" yaml:"resolution"` // Sampling stride (0 = 1)
	SampleMode string `json:"sampleMode" yaml:"sampleMode"` // "corner" or "any"
	LegacyAxes bool   `json:"legacyAxes" yaml:"legacyAxes"` // Inverted loop bounds of older builds
	Strict     bool   `json:"strict" yaml:"strict"`         // Error on missing pixel maps
}

// SpriteConfig describes one sprite image. Exactly one of Image or Mask is set.
type SpriteConfig struct {
	ID         string   `json:"id" yaml:"id"`
	Image      string   `json:"image,omitempty" yaml:"image,omitempty"` // Path relative to the config root
	Mask       []string `json:"mask,omitempty" yaml:"mask,omitempty"`   // ASCII rows, '.' is transparent
	Color      string   `json:"color,omitempty" yaml:"color,omitempty"` // Mask paint color
	Resolution int      `json:"resolution,omitempty" yaml:"resolution,omitempty"`
}

// PlayerConfig is the sprite that follows the cursor
type PlayerConfig struct {
	Sprite string  `json:"sprite" yaml:"sprite"`
	Speed  float64 `json:"speed" yaml:"speed"` // Keyboard movement, pixels per second
}

// PlacementConfig puts a static sprite in the arena
type PlacementConfig struct {
	Sprite string  `json:"sprite" yaml:"sprite"`
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
}
