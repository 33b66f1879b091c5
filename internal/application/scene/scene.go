// Package scene defines the Scene interface for arena screens.
//
// The game loop delegates Update and Draw calls to the current scene.
// The arena is the only scene today; the interface keeps the loop
// independent of it so tests can drive the loop with stand-ins.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene represents one screen of the application.
type Scene interface {
	// Name identifies the scene in logs.
	Name() string

	// Update advances the scene by dt seconds.
	// Returns the next scene if a transition is needed, nil to stay on current scene.
	// Returns an error to terminate the loop.
	Update(dt float64) (next Scene, err error)

	// Draw renders the scene to the screen.
	Draw(screen *ebiten.Image)

	// OnEnter is called when entering this scene.
	OnEnter()

	// OnExit is called when leaving this scene, e.g. to flush recordings.
	OnExit()
}
