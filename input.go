package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/hellshooter/game"
)

const stickDeadzone = 0.2

// Input turns keyboard, gamepad, mouse and touch state into a game.Input.
// Dragging a finger (or the left mouse button) moves the ship by the same
// amount and keeps the guns firing.
type Input struct {
	touchID  ebiten.TouchID
	touching bool
	lastX    int
	lastY    int

	mouseDrag bool
}

func NewInput() *Input {
	return &Input{}
}

func (i *Input) Read() game.Input {
	var in game.Input

	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		in.MoveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		in.MoveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		in.MoveY -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		in.MoveY += 1
	}
	in.Shoot = ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsKeyPressed(ebiten.KeyJ)

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Abs(lx) > stickDeadzone {
			in.MoveX = lx
		}
		if math.Abs(ly) > stickDeadzone {
			in.MoveY = ly
		}
		in.Shoot = in.Shoot || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
	}

	if dx, dy, ok := i.touchDrag(); ok {
		in.DragDX, in.DragDY = dx, dy
		in.Shoot = true
	} else if dx, dy, ok := i.mouseDragDelta(); ok {
		in.DragDX, in.DragDY = dx, dy
		in.Shoot = true
	}
	return in
}

func (i *Input) touchDrag() (float64, float64, bool) {
	if !i.touching {
		ids := inpututil.AppendJustPressedTouchIDs(nil)
		if len(ids) == 0 {
			return 0, 0, false
		}
		i.touchID = ids[0]
		i.touching = true
		i.lastX, i.lastY = ebiten.TouchPosition(i.touchID)
		return 0, 0, true
	}
	if inpututil.IsTouchJustReleased(i.touchID) {
		i.touching = false
		return 0, 0, false
	}
	x, y := ebiten.TouchPosition(i.touchID)
	dx, dy := float64(x-i.lastX), float64(y-i.lastY)
	i.lastX, i.lastY = x, y
	return dx, dy, true
}

func (i *Input) mouseDragDelta() (float64, float64, bool) {
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		i.mouseDrag = false
		return 0, 0, false
	}
	x, y := ebiten.CursorPosition()
	if !i.mouseDrag || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		i.mouseDrag = true
		i.lastX, i.lastY = x, y
		return 0, 0, true
	}
	dx, dy := float64(x-i.lastX), float64(y-i.lastY)
	i.lastX, i.lastY = x, y
	return dx, dy, true
}

func pausePressed() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		return true
	}
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight) {
			return true
		}
	}
	return false
}

func restartPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyR) || inpututil.IsKeyJustPressed(ebiten.KeyEnter)
}
