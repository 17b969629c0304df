package component

import "github.com/jakecoffman/cp"

// PhysicsBody links an entity to its Chipmunk body and shape. Static shapes
// hang off the space's static body and leave Body nil.
type PhysicsBody struct {
	Body   *cp.Body
	Shape  *cp.Shape
	Radius float64
	Width  float64
	Height float64
	Static bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
