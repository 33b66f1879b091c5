// Package arena provides the collision playground scene.
//
// The player sprite follows the cursor (or WASD) among the placed sprites.
// Placements touched at pixel level are tinted; bounding boxes and sampled
// cells can be overlaid to compare the box and pixel stages.
package arena

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/younwookim/pixelhit/internal/application/replay"
	"github.com/younwookim/pixelhit/internal/application/scene"
	"github.com/younwookim/pixelhit/internal/application/state"
	"github.com/younwookim/pixelhit/internal/application/world"
	"github.com/younwookim/pixelhit/internal/domain/collision"
	"github.com/younwookim/pixelhit/internal/infrastructure/config"
	"github.com/younwookim/pixelhit/internal/infrastructure/surface"
)

// Colors for rendering
var (
	colorBG      = color.RGBA{26, 26, 46, 255}
	colorBox     = color.RGBA{200, 200, 200, 96}
	colorBoxHit  = color.RGBA{255, 200, 100, 200}
	colorCell    = color.RGBA{100, 200, 255, 80}
	colorOverlay = color.RGBA{0, 0, 0, 128}
)

// Arena is the collision playground scene
type Arena struct {
	world      *world.World
	stats      *Stats
	name       string
	state      state.ArenaState
	screenW    int
	screenH    int
	background color.Color
	speed      float64

	playerX, playerY float64
	lastMouseX       int
	lastMouseY       int
	hits             []int
	boxHits          []int
	err              error
	showCells        bool
	images           map[*surface.Image]*ebiten.Image
	input            func() InputState
	recorder         *replay.Recorder
	recordFilename   string
}

// New creates the arena scene. stats should be the collector passed as the
// world's OnMeasure callback; it may be nil. Recording is enabled when
// recordFilename is not empty.
func New(w *world.World, cfg *config.ArenaConfig, stats *Stats, name, recordFilename string) *Arena {
	var bg color.Color = colorBG
	if cfg.Display.Background != "" {
		if c, err := config.ParseColor(cfg.Display.Background); err == nil {
			bg = c
		}
	}
	if stats == nil {
		stats = &Stats{}
	}

	a := &Arena{
		world:          w,
		stats:          stats,
		name:           name,
		state:          state.StateRunning,
		screenW:        cfg.Display.ScreenWidth,
		screenH:        cfg.Display.ScreenHeight,
		background:     bg,
		speed:          cfg.Player.Speed,
		playerX:        float64(cfg.Display.ScreenWidth) / 2,
		playerY:        float64(cfg.Display.ScreenHeight) / 2,
		lastMouseX:     -1,
		lastMouseY:     -1,
		images:         make(map[*surface.Image]*ebiten.Image),
		input:          ReadInput,
		recordFilename: recordFilename,
	}

	if recordFilename != "" {
		a.recorder = replay.NewRecorder(name)
		log.Printf("Recording enabled: %s", recordFilename)
	}
	return a
}

// Name implements scene.Scene
func (a *Arena) Name() string {
	return "arena"
}

// Update implements scene.Scene
func (a *Arena) Update(dt float64) (scene.Scene, error) {
	a.step(a.input(), dt)
	return nil, nil
}

func (a *Arena) step(in InputState, dt float64) {
	if in.Pause {
		a.state = a.state.Toggle()
	}
	if in.Save && a.recorder != nil {
		a.saveRecording()
	}
	if a.state == state.StatePaused {
		return
	}

	a.movePlayer(in, dt)
	a.applySettings(in)
	if in.ToggleCells {
		a.showCells = !a.showCells
	}

	a.hits, a.err = a.world.Hits(a.playerX, a.playerY)
	a.boxHits = a.boxOverlaps()
	if a.err != nil {
		a.hits = nil
		return
	}

	if a.recorder != nil {
		a.recorder.RecordFrame(a.playerX, a.playerY, a.hits, a.world.Settings())
	}
}

// movePlayer follows the cursor when it moves, otherwise the movement keys
func (a *Arena) movePlayer(in InputState, dt float64) {
	if in.MouseX != a.lastMouseX || in.MouseY != a.lastMouseY {
		a.lastMouseX, a.lastMouseY = in.MouseX, in.MouseY
		a.playerX, a.playerY = float64(in.MouseX), float64(in.MouseY)
		return
	}

	step := a.speed * dt
	if in.Left {
		a.playerX -= step
	}
	if in.Right {
		a.playerX += step
	}
	if in.Up {
		a.playerY -= step
	}
	if in.Down {
		a.playerY += step
	}
}

func (a *Arena) applySettings(in InputState) {
	s := a.world.Settings()
	next := s

	res := max(s.Resolution, 1)
	if in.CoarserRes {
		next.Resolution = res + 1
	}
	if in.FinerRes && res > 1 {
		next.Resolution = res - 1
	}
	if in.ToggleMode {
		if s.SampleMode == "any" {
			next.SampleMode = "corner"
		} else {
			next.SampleMode = "any"
		}
	}
	if in.ToggleLegacy {
		next.LegacyAxes = !s.LegacyAxes
	}
	if in.ToggleStrict {
		next.Strict = !s.Strict
	}
	if next == s {
		return
	}

	if err := a.world.Configure(context.Background(), next); err != nil {
		log.Printf("Failed to apply collision settings: %v", err)
		return
	}
	a.stats.Reset()
	log.Printf("Collision settings: resolution=%d mode=%s legacy=%t strict=%t",
		max(next.Resolution, 1), next.SampleMode, next.LegacyAxes, next.Strict)
}

// boxOverlaps lists the placements whose bounding boxes overlap the player
func (a *Arena) boxOverlaps() []int {
	player, err := a.world.Player(a.playerX, a.playerY)
	if err != nil {
		return nil
	}
	targets, err := a.world.Targets()
	if err != nil {
		return nil
	}

	var overlaps []int
	for i, t := range targets {
		if collision.BoxHitTest(player.Bounds(), t.Bounds()) {
			overlaps = append(overlaps, i)
		}
	}
	return overlaps
}

func (a *Arena) saveRecording() {
	if err := a.recorder.Save(a.recordFilename); err != nil {
		log.Printf("Failed to save recording: %v", err)
	} else {
		log.Printf("Recording saved: %s (%d frames)", a.recordFilename, a.recorder.FrameCount())
	}
}

// Hits returns the placements the player touched in the last update
func (a *Arena) Hits() []int {
	return a.hits
}

// Draw implements scene.Scene
func (a *Arena) Draw(screen *ebiten.Image) {
	screen.Fill(a.background)

	for i, p := range a.world.Placements() {
		a.drawSprite(screen, p.Sprite, p.X, p.Y, slices.Contains(a.hits, i))
		a.drawBounds(screen, p.Sprite, p.X, p.Y, slices.Contains(a.boxHits, i))
	}
	player := a.world.PlayerSprite()
	a.drawSprite(screen, player, a.playerX, a.playerY, len(a.hits) > 0)
	a.drawBounds(screen, player, a.playerX, a.playerY, len(a.boxHits) > 0)

	a.drawUI(screen)
	if a.state == state.StatePaused {
		a.drawPauseOverlay(screen)
	}
}

func (a *Arena) drawSprite(screen *ebiten.Image, id string, x, y float64, hit bool) {
	s, err := a.world.Catalog().Get(id)
	if err != nil {
		return
	}

	img, ok := a.images[s.Surface]
	if !ok {
		img = ebiten.NewImageFromImage(s.Image())
		a.images[s.Surface] = img
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	if hit {
		op.ColorScale.Scale(1, 0.4, 0.4, 1)
	}
	screen.DrawImage(img, op)

	if !a.showCells {
		return
	}
	for i := range s.Map.Samples {
		c := s.Map.Cell(i, x, y)
		ebitenutil.DrawRect(screen, c.X, c.Y, c.Width, c.Height, colorCell)
	}
}

func (a *Arena) drawBounds(screen *ebiten.Image, id string, x, y float64, overlap bool) {
	o, err := a.world.Catalog().Object(id, x, y)
	if err != nil {
		return
	}
	c := colorBox
	if overlap {
		c = colorBoxHit
	}
	b := o.Bounds()
	ebitenutil.DrawLine(screen, b.X, b.Y, b.Right(), b.Y, c)
	ebitenutil.DrawLine(screen, b.Right(), b.Y, b.Right(), b.Bottom(), c)
	ebitenutil.DrawLine(screen, b.Right(), b.Bottom(), b.X, b.Bottom(), c)
	ebitenutil.DrawLine(screen, b.X, b.Bottom(), b.X, b.Y, c)
}

func (a *Arena) drawUI(screen *ebiten.Image) {
	s := a.world.Settings()
	calls, hits, mean, worst := a.stats.Snapshot()

	text := fmt.Sprintf("res=%d mode=%s legacy=%t strict=%t\nbox=%v pixel=%v\ntests=%d hits=%d mean=%v worst=%v",
		max(s.Resolution, 1), sampleModeLabel(s.SampleMode), s.LegacyAxes, s.Strict,
		a.boxHits, a.hits, calls, hits, mean, worst)
	if a.err != nil {
		text += "\nerror: " + a.err.Error()
	}
	if a.recorder != nil {
		text += fmt.Sprintf("\nREC %d", a.recorder.FrameCount())
	}
	ebitenutil.DebugPrint(screen, text)

	help := "-/= res  M mode  L legacy  T strict  C cells  ESC pause"
	ebitenutil.DebugPrintAt(screen, help, 4, a.screenH-16)
}

func (a *Arena) drawPauseOverlay(screen *ebiten.Image) {
	ebitenutil.DrawRect(screen, 0, 0, float64(a.screenW), float64(a.screenH), colorOverlay)
	ebitenutil.DebugPrintAt(screen, "PAUSED", a.screenW/2-20, a.screenH/2-8)
}

func sampleModeLabel(mode string) string {
	if mode == "" {
		return "corner"
	}
	return mode
}

// OnEnter implements scene.Scene
func (a *Arena) OnEnter() {
	log.Printf("Arena %s: %d sprites, %d placements", a.name, len(a.world.Catalog().IDs()), len(a.world.Placements()))
}

// OnExit implements scene.Scene
func (a *Arena) OnExit() {
	if a.recorder != nil && a.recorder.FrameCount() > 0 {
		a.saveRecording()
	}
}
