package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/stress/obj"
)

const (
	stickDeadzone = 0.2
	// right stick aim distance in world units when no mouse is used
	stickAimReach = 4.0
)

// Frame is one tick of polled input.
type Frame struct {
	obj.InputFrame
	// AnyPressed is set on the tick any key or button went down. It skips the
	// intro cinematic.
	AnyPressed bool
	Pause      bool
}

// Input polls keyboard, mouse and the first gamepad.
type Input struct {
	lastCursorX, lastCursorY int
	usingStick               bool
	keys                     []ebiten.Key
}

func NewInput() *Input {
	return &Input{}
}

// Poll reads this tick's input. The pointer is converted to world units
// through cam; a nil camera leaves HasPointer unset.
func (i *Input) Poll(cam *obj.Camera, player *obj.Player) Frame {
	var f Frame

	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		f.MoveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		f.MoveX += 1
	}
	f.JumpPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyW)
	f.FirePressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) || inpututil.IsKeyJustPressed(ebiten.KeyE)
	f.Pause = inpututil.IsKeyJustPressed(ebiten.KeyEscape)

	i.keys = inpututil.AppendJustPressedKeys(i.keys[:0])
	f.AnyPressed = len(i.keys) > 0 || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)

	var stick [2]float64
	if ids := ebiten.AppendGamepadIDs(nil); len(ids) > 0 {
		id := ids[0]
		leftX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if math.Abs(leftX) > stickDeadzone {
			f.MoveX = leftX
		}
		f.JumpPressed = f.JumpPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		f.FirePressed = f.FirePressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonFrontBottomRight)
		f.Pause = f.Pause || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight)
		f.AnyPressed = f.AnyPressed || len(inpututil.AppendJustPressedGamepadButtons(id, nil)) > 0

		stick[0] = ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
		stick[1] = ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)
	}

	if cam == nil {
		return f
	}

	cx, cy := ebiten.CursorPosition()
	if cx != i.lastCursorX || cy != i.lastCursorY {
		i.usingStick = false
	}
	i.lastCursorX, i.lastCursorY = cx, cy

	if math.Hypot(stick[0], stick[1]) > stickDeadzone && player != nil {
		i.usingStick = true
		// screen y grows downward
		f.Pointer = player.Body.Pos.Add(cp.Vector{X: stick[0], Y: -stick[1]}.Normalize().Mult(stickAimReach))
		f.HasPointer = true
		return f
	}
	if i.usingStick {
		return f
	}

	f.Pointer = cam.ScreenToWorld(float64(cx), float64(cy))
	f.HasPointer = true
	return f
}
