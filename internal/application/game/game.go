// Package game provides the main loop manager that handles Scene transitions.
package game

import (
	"errors"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/pixelhit/internal/application/scene"
	"github.com/younwookim/pixelhit/internal/infrastructure/config"
)

// Game implements ebiten.Game and manages Scene transitions.
type Game struct {
	current scene.Scene
	display config.DisplayConfig
	dt      float64
}

// New creates a Game showing initialScene with the given display settings.
// The initial scene's OnEnter is called immediately.
func New(initialScene scene.Scene, display config.DisplayConfig) *Game {
	dt := 1.0 / 60.0
	if display.Framerate > 0 {
		dt = 1.0 / float64(display.Framerate)
	}

	g := &Game{
		current: initialScene,
		display: display,
		dt:      dt,
	}
	g.current.OnEnter()
	return g
}

// Update updates the current scene and handles scene transitions.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	next, err := g.current.Update(g.dt)
	if err != nil {
		g.current.OnExit()
		return err
	}

	if next != nil {
		log.Printf("Scene: %s -> %s", g.current.Name(), next.Name())
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}

	return nil
}

// Draw renders the current scene.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.display.ScreenWidth, g.display.ScreenHeight
}

// Current returns the active scene
func (g *Game) Current() scene.Scene {
	return g.current
}

// DT returns the fixed delta time passed to scenes
func (g *Game) DT() float64 {
	return g.dt
}

// Run opens the window and blocks until the loop ends.
// ebiten.Termination is treated as a normal exit.
func (g *Game) Run(title string) error {
	scale := max(g.display.Scale, 1)
	ebiten.SetWindowSize(g.display.ScreenWidth*scale, g.display.ScreenHeight*scale)
	ebiten.SetWindowTitle(title)
	if g.display.Framerate > 0 {
		ebiten.SetTPS(g.display.Framerate)
	}

	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
