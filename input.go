package main

import (
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/zombietown/sim"
)

// Input holds the keyboard, mouse and gamepad state of one frame.
type Input struct {
	MoveX float64
	MoveY float64

	// MouseX/Y are the cursor position in arena coordinates.
	MouseX float64
	MouseY float64

	FireHeld      bool
	ReloadPressed bool
	StartPressed  bool
	HirePressed   bool
	DebugPressed  bool

	// ShopSlot is the 1-based shop entry picked this frame, or 0.
	ShopSlot int
}

var shopKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4}

// Update polls devices. F12 quits.
func (i *Input) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		os.Exit(0)
	}

	mx, my := ebiten.CursorPosition()
	i.MouseX, i.MouseY = float64(mx), float64(my)

	var moveX, moveY float64
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		moveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		moveY -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		moveY += 1
	}

	var gpFire, gpReload, gpStart bool
	if ids := ebiten.GamepadIDs(); len(ids) > 0 {
		gid := ids[0]
		lx := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical)
		if lx*lx+ly*ly > 0.09 {
			moveX, moveY = lx, ly
		}
		gpFire = ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonFrontBottomRight)
		gpReload = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightLeft)
		gpStart = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonCenterRight)
	}

	i.MoveX, i.MoveY = moveX, moveY
	i.FireHeld = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) || gpFire
	i.ReloadPressed = inpututil.IsKeyJustPressed(ebiten.KeyR) || gpReload
	i.StartPressed = inpututil.IsKeyJustPressed(ebiten.KeyEnter) || gpStart
	i.HirePressed = inpututil.IsKeyJustPressed(ebiten.KeyH)
	i.DebugPressed = inpututil.IsKeyJustPressed(ebiten.KeyF3)

	i.ShopSlot = 0
	for n, key := range shopKeys {
		if inpututil.IsKeyJustPressed(key) {
			i.ShopSlot = n + 1
			break
		}
	}
}

// Intent converts the frame's input into a defender intent.
func (i *Input) Intent() sim.Intent {
	return sim.Intent{
		MoveX:  i.MoveX,
		MoveY:  i.MoveY,
		AimX:   i.MouseX,
		AimY:   i.MouseY,
		Aiming: true,
		Fire:   i.FireHeld,
		Reload: i.ReloadPressed,
	}
}
