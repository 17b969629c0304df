package main

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/zombietown/sim"
	"golang.org/x/image/colornames"
)

func drawArena(screen *ebiten.Image, snap sim.Snapshot) {
	screen.Fill(colornames.Burlywood)

	for _, d := range snap.Drawables {
		x, y := float32(d.X), float32(d.Y)
		switch d.Kind {
		case sim.DrawObstacle:
			c := colornames.Saddlebrown
			if d.Label == "cactus" {
				c = colornames.Darkgreen
			}
			vector.DrawFilledRect(screen, x-float32(d.Width)/2, y-float32(d.Height)/2, float32(d.Width), float32(d.Height), c, false)
		case sim.DrawPickup:
			c := colornames.Goldenrod
			if d.Label == "health" {
				c = colornames.Crimson
			}
			vector.DrawFilledRect(screen, x-float32(d.Width)/2, y-float32(d.Height)/2, float32(d.Width), float32(d.Height), c, false)
		case sim.DrawProjectile:
			vector.DrawFilledCircle(screen, x, y, 2, colornames.Black, true)
		case sim.DrawDefender:
			drawBody(screen, d, colornames.Steelblue)
		case sim.DrawAlly:
			drawBody(screen, d, colornames.Slategray)
			if d.Label != "" {
				ebitenutil.DebugPrintAt(screen, d.Label, int(d.X)-12, int(d.Y-d.Radius)-18)
			}
		case sim.DrawAgent:
			c := colornames.Olivedrab
			if d.Armored {
				c = colornames.Darkolivegreen
			}
			if d.Dead {
				c = colornames.Gray
			}
			drawBody(screen, d, c)
		}
	}
}

func drawBody(screen *ebiten.Image, d sim.Drawable, c color.Color) {
	x, y, r := float32(d.X), float32(d.Y), float32(d.Radius)
	vector.DrawFilledCircle(screen, x, y, r, c, true)
	nose := float32(d.Radius * 1.4)
	vector.StrokeLine(screen, x, y, x+nose*float32(math.Cos(d.Rotation)), y+nose*float32(math.Sin(d.Rotation)), 3, colornames.Black, true)
}

func drawHUD(screen *ebiten.Image, snap sim.Snapshot, message string, showMessage bool) {
	reload := ""
	if snap.Reloading {
		reload = " (reloading)"
	}
	lines := []string{
		fmt.Sprintf("HP %d/%d   Ammo %d/%d +%d%s   Tokens %d", snap.Health, snap.MaxHealth, snap.Ammo, snap.Magazine, snap.Reserve, reload, snap.Currency),
		fmt.Sprintf("Wave %d   Remaining %d   FPS %.0f", snap.Wave, snap.Remaining, ebiten.ActualFPS()),
	}
	if !snap.WaveActive && !snap.Defeated {
		lines = append(lines, "Enter: next wave   R: reload   H: hire   F3: physics")
		for n, item := range snap.Items {
			lines = append(lines, shopLine(n+1, item))
		}
	}
	if showMessage && message != "" {
		lines = append(lines, "", message)
	}
	ebitenutil.DebugPrint(screen, strings.Join(lines, "\n"))
}

func shopLine(slot int, item sim.ItemState) string {
	state := "locked"
	switch {
	case item.Hire && item.Leased:
		state = "hired this wave"
	case item.Hire && item.Purchased:
		state = fmt.Sprintf("hire %d", item.HirePrice)
		if !item.CanHire {
			state += " (can't afford)"
		}
	case item.OneTime && item.Purchased:
		state = "owned"
	case item.CanPurchase:
		state = "buy"
	}
	return fmt.Sprintf("%d: %-18s %3d  %s", slot, item.Name, item.Cost, state)
}
