package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/zombietown/ecs"
	"github.com/milk9111/zombietown/ecs/component"
	"golang.org/x/image/colornames"
)

// drawPhysics outlines every shape in the space, colored by faction. Sensors
// (dead agents, pickups) are drawn in yellow.
func drawPhysics(screen *ebiten.Image, pw *ecs.PhysicsWorld) {
	if pw == nil || pw.Space() == nil || screen == nil {
		return
	}
	cp.DrawSpace(pw.Space(), &shapeOverlay{screen: screen, pw: pw})
}

var factionOverlay = map[component.Faction]color.RGBA{
	component.FactionPlayer:      colornames.Deepskyblue,
	component.FactionAlly:        colornames.Lightskyblue,
	component.FactionHostile:     colornames.Orangered,
	component.FactionPickup:      colornames.Lime,
	component.FactionEnvironment: colornames.White,
}

// shapeOverlay implements cp.Drawer. Chipmunk hands colors back through
// ShapeColor, so the faction lookup happens there.
type shapeOverlay struct {
	screen *ebiten.Image
	pw     *ecs.PhysicsWorld
}

func (o *shapeOverlay) stroke(a, b cp.Vector, c cp.FColor) {
	vector.StrokeLine(o.screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 1, toRGBA(c), false)
}

func (o *shapeOverlay) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	vector.StrokeCircle(o.screen, float32(pos.X), float32(pos.Y), float32(radius), 1, toRGBA(fill), false)
	o.stroke(pos, pos.Add(cp.ForAngle(angle).Mult(radius)), fill)
}

func (o *shapeOverlay) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	o.stroke(a, b, fill)
}

func (o *shapeOverlay) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	o.stroke(a, b, fill)
}

func (o *shapeOverlay) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	for i := range count {
		o.stroke(verts[i], verts[(i+1)%count], fill)
	}
}

func (o *shapeOverlay) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	vector.DrawFilledCircle(o.screen, float32(pos.X), float32(pos.Y), float32(size/2), toRGBA(fill), false)
}

func (o *shapeOverlay) Flags() uint {
	return cp.DRAW_SHAPES | cp.DRAW_COLLISION_POINTS
}

func (o *shapeOverlay) OutlineColor() cp.FColor {
	return toFColor(colornames.White)
}

func (o *shapeOverlay) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape != nil && shape.Sensor() {
		return toFColor(colornames.Yellow)
	}
	if f, ok := o.pw.ShapeFaction(shape); ok {
		if c, ok := factionOverlay[f]; ok {
			return toFColor(c)
		}
	}
	return toFColor(colornames.Gray)
}

func (o *shapeOverlay) ConstraintColor() cp.FColor {
	return toFColor(colornames.Gray)
}

func (o *shapeOverlay) CollisionPointColor() cp.FColor {
	return toFColor(colornames.Red)
}

func (o *shapeOverlay) Data() interface{} {
	return nil
}

func toFColor(c color.RGBA) cp.FColor {
	return cp.FColor{R: float32(c.R) / 255, G: float32(c.G) / 255, B: float32(c.B) / 255, A: float32(c.A) / 255}
}

func toRGBA(c cp.FColor) color.RGBA {
	return color.RGBA{R: uint8(c.R * 255), G: uint8(c.G * 255), B: uint8(c.B * 255), A: uint8(c.A * 255)}
}
