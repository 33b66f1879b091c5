package arena

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputState holds the input for one frame
type InputState struct {
	MouseX, MouseY int

	Left, Right, Up, Down bool

	Pause        bool
	FinerRes     bool
	CoarserRes   bool
	ToggleMode   bool
	ToggleLegacy bool
	ToggleStrict bool
	ToggleCells  bool
	Save         bool
}

// ReadInput reads the current input state from ebiten
func ReadInput() InputState {
	mx, my := ebiten.CursorPosition()
	return InputState{
		MouseX:       mx,
		MouseY:       my,
		Left:         ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right:        ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Up:           ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Down:         ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Pause:        inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		FinerRes:     inpututil.IsKeyJustPressed(ebiten.KeyMinus),
		CoarserRes:   inpututil.IsKeyJustPressed(ebiten.KeyEqual),
		ToggleMode:   inpututil.IsKeyJustPressed(ebiten.KeyM),
		ToggleLegacy: inpututil.IsKeyJustPressed(ebiten.KeyL),
		ToggleStrict: inpututil.IsKeyJustPressed(ebiten.KeyT),
		ToggleCells:  inpututil.IsKeyJustPressed(ebiten.KeyC),
		Save:         inpututil.IsKeyJustPressed(ebiten.KeyF5),
	}
}
