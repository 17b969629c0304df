package ecs

import (
	"cmp"
	"log"
	"math"
	"slices"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/zombietown/ecs/component"
)

// Hit is one intersection reported by CastRay, ordered by Distance.
type Hit struct {
	Entity   Entity
	Faction  component.Faction
	Distance float64
	Point    cp.Vector
}

// Contact is a pair of entities whose shapes touched during the last Step.
type Contact struct {
	A Entity
	B Entity
}

type shapeRef struct {
	entity  Entity
	faction component.Faction
}

// PhysicsWorld owns the Chipmunk space used for movement, contacts and the
// spatial queries behind perception and placement.
type PhysicsWorld struct {
	space         *cp.Space
	handlersReady bool

	shapes   map[*cp.Shape]shapeRef
	entities map[Entity][]*cp.Shape
	bodies   map[Entity]*cp.Body

	contacts    []Contact
	contactSeen map[Contact]struct{}
}

// NewPhysicsWorld creates a top-down space without gravity.
func NewPhysicsWorld() *PhysicsWorld {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})

	pw := &PhysicsWorld{
		space:       space,
		shapes:      make(map[*cp.Shape]shapeRef),
		entities:    make(map[Entity][]*cp.Shape),
		bodies:      make(map[Entity]*cp.Body),
		contactSeen: make(map[Contact]struct{}),
	}
	pw.setupHandlers()
	return pw
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

func collisionTypeFor(f component.Faction) cp.CollisionType {
	return cp.CollisionType(f)
}

func filterFor(f component.Faction) cp.ShapeFilter {
	return cp.ShapeFilter{Group: cp.NO_GROUP, Categories: f.Category(), Mask: cp.ALL_CATEGORIES}
}

func (pw *PhysicsWorld) track(e Entity, f component.Faction, shape *cp.Shape) {
	shape.UserData = e
	shape.SetFilter(filterFor(f))
	shape.SetCollisionType(collisionTypeFor(f))
	pw.shapes[shape] = shapeRef{entity: e, faction: f}
	if e.Valid() {
		pw.entities[e] = append(pw.entities[e], shape)
	}
}

// AddCircleBody creates a dynamic, non-rotating circle for a moving entity.
func (pw *PhysicsWorld) AddCircleBody(e Entity, f component.Faction, pos cp.Vector, radius float64) *component.PhysicsBody {
	if pw == nil || pw.space == nil {
		return nil
	}
	body := cp.NewBody(1, math.Inf(1))
	body.SetPosition(pos)
	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetFriction(0)
	shape.SetElasticity(0)

	pw.space.AddBody(body)
	pw.space.AddShape(shape)
	pw.track(e, f, shape)
	pw.bodies[e] = body

	return &component.PhysicsBody{Body: body, Shape: shape, Radius: radius, Width: radius * 2, Height: radius * 2}
}

// AddStaticBox adds an axis-aligned box centered on center. Sensor boxes
// show up in queries but never push anything.
func (pw *PhysicsWorld) AddStaticBox(e Entity, f component.Faction, center cp.Vector, width, height float64, sensor bool) *component.PhysicsBody {
	if pw == nil || pw.space == nil {
		return nil
	}
	bb := cp.NewBBForExtents(center, width/2, height/2)
	shape := cp.NewBox2(pw.space.StaticBody, bb, 0)
	shape.SetFriction(0)
	shape.SetSensor(sensor)
	pw.space.AddShape(shape)
	pw.track(e, f, shape)

	return &component.PhysicsBody{Shape: shape, Width: width, Height: height, Static: true}
}

// AddBounds walls off the rectangle [0,width]x[0,height] on the left, top
// and right. The bottom stays open so agents can walk in from below.
func (pw *PhysicsWorld) AddBounds(width, height float64) {
	if pw == nil || pw.space == nil || width <= 0 || height <= 0 {
		return
	}
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: width, Y: 0}},
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: height}},
		{a: cp.Vector{X: width, Y: 0}, b: cp.Vector{X: width, Y: height}},
	}
	for _, seg := range segments {
		shape := cp.NewSegment(pw.space.StaticBody, seg.a, seg.b, 1)
		shape.SetFriction(0)
		pw.space.AddShape(shape)
		pw.track(0, component.FactionEnvironment, shape)
	}
}

// ShapeFaction reports the faction a tracked shape was registered with.
func (pw *PhysicsWorld) ShapeFaction(shape *cp.Shape) (component.Faction, bool) {
	if pw == nil || shape == nil {
		return 0, false
	}
	ref, ok := pw.shapes[shape]
	return ref.faction, ok
}

// SetSensor toggles collision response for every shape of e.
func (pw *PhysicsWorld) SetSensor(e Entity, sensor bool) {
	if pw == nil {
		return
	}
	for _, shape := range pw.entities[e] {
		shape.SetSensor(sensor)
	}
}

// RemoveEntity detaches every shape and the body of e from the space. It
// must not run while the space is locked.
func (pw *PhysicsWorld) RemoveEntity(e Entity) {
	if pw == nil || pw.space == nil {
		return
	}
	for _, shape := range pw.entities[e] {
		if pw.space.ContainsShape(shape) {
			pw.space.RemoveShape(shape)
		}
		delete(pw.shapes, shape)
	}
	delete(pw.entities, e)
	if body, ok := pw.bodies[e]; ok {
		if pw.space.ContainsBody(body) {
			pw.space.RemoveBody(body)
		}
		delete(pw.bodies, e)
	}
}

// Step advances the space and refreshes the contact list.
func (pw *PhysicsWorld) Step(dt float64) {
	if pw == nil || pw.space == nil || dt <= 0 {
		return
	}
	pw.contacts = pw.contacts[:0]
	clear(pw.contactSeen)
	pw.space.Step(dt)
}

// Contacts returns the hostile contacts recorded during the last Step. A is
// always the hostile entity.
func (pw *PhysicsWorld) Contacts() []Contact {
	if pw == nil {
		return nil
	}
	return pw.contacts
}

// CastRay returns every shape crossed by the segment from origin along dir
// for maxDistance, nearest first. Shapes whose faction is outside mask are
// ignored, as are hits for which exclude returns true.
func (pw *PhysicsWorld) CastRay(origin, dir cp.Vector, maxDistance float64, mask component.FactionMask, exclude func(Hit) bool) []Hit {
	if pw == nil || pw.space == nil || maxDistance <= 0 || dir.LengthSq() == 0 {
		return nil
	}
	end := origin.Add(dir.Normalize().Mult(maxDistance))
	filter := cp.ShapeFilter{Group: cp.NO_GROUP, Categories: cp.ALL_CATEGORIES, Mask: uint(mask)}

	var hits []Hit
	pw.space.SegmentQuery(origin, end, 0, filter, func(shape *cp.Shape, point, normal cp.Vector, alpha float64, data interface{}) {
		ref, ok := pw.shapes[shape]
		if !ok {
			return
		}
		hit := Hit{Entity: ref.entity, Faction: ref.faction, Distance: alpha * maxDistance, Point: point}
		if exclude != nil && exclude(hit) {
			return
		}
		hits = append(hits, hit)
	}, nil)

	slices.SortStableFunc(hits, func(a, b Hit) int {
		return cmp.Compare(a.Distance, b.Distance)
	})
	return hits
}

// Overlapping returns the entities whose shape bounds intersect bb. Wall
// segments are reported with the zero Entity.
func (pw *PhysicsWorld) Overlapping(bb cp.BB, mask component.FactionMask) []Hit {
	if pw == nil || pw.space == nil {
		return nil
	}
	filter := cp.ShapeFilter{Group: cp.NO_GROUP, Categories: cp.ALL_CATEGORIES, Mask: uint(mask)}
	var hits []Hit
	pw.space.BBQuery(bb, filter, func(shape *cp.Shape, data interface{}) {
		ref, ok := pw.shapes[shape]
		if !ok {
			return
		}
		hits = append(hits, Hit{Entity: ref.entity, Faction: ref.faction})
	}, nil)
	return hits
}

func (pw *PhysicsWorld) setupHandlers() {
	if pw == nil || pw.handlersReady || pw.space == nil {
		return
	}

	record := func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*PhysicsWorld)
		if !ok || world == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		refA, okA := world.shapes[shapeA]
		refB, okB := world.shapes[shapeB]
		if !okA || !okB {
			return true
		}
		if refB.faction == component.FactionHostile {
			refA, refB = refB, refA
		}
		c := Contact{A: refA.entity, B: refB.entity}
		if _, seen := world.contactSeen[c]; !seen {
			world.contactSeen[c] = struct{}{}
			world.contacts = append(world.contacts, c)
		}
		return true
	}

	for _, target := range []component.Faction{component.FactionPlayer, component.FactionAlly} {
		handler := pw.space.NewCollisionHandler(collisionTypeFor(component.FactionHostile), collisionTypeFor(target))
		handler.UserData = pw
		handler.PreSolveFunc = record
	}

	pickupHandler := pw.space.NewCollisionHandler(collisionTypeFor(component.FactionHostile), collisionTypeFor(component.FactionPickup))
	pickupHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		return false
	}

	pw.handlersReady = true
	log.Printf("physics: handlers ready")
}
