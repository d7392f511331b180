package camera

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Offset is added to the focus target to place the camera.
var Offset = mgl64.Vec3{2, 2, 2}

// Controller follows a focus target with a spring-animated camera. It is
// driven by a single frame loop and is not safe for concurrent use.
type Controller struct {
	cam    Camera
	spring *Spring
	target *mgl64.Vec3
}

// NewController returns a controller resting at start. A nil camera is a
// wiring bug and panics.
func NewController(cam Camera, start mgl64.Vec3) *Controller {
	if cam == nil {
		panic("camera: NewController called with nil camera")
	}
	return &Controller{cam: cam, spring: NewSpring(start, DefaultSpringConfig())}
}

// SetFocus records the target the camera aims at. When focused and target is
// set, the spring retargets to target+Offset from wherever it currently is;
// an unchanged destination leaves the animation untouched.
func (c *Controller) SetFocus(target *mgl64.Vec3, focused bool) {
	if target == nil {
		c.target = nil
	} else {
		t := *target
		c.target = &t
	}
	if !focused || target == nil {
		return
	}
	dest := target.Add(Offset)
	if dest == c.spring.Destination {
		return
	}
	c.spring.SetDestination(dest)
}

// OnFrame advances the animation by dt, moves the camera, and aims it at the
// target, or the origin when there is none.
func (c *Controller) OnFrame(dt time.Duration) {
	c.spring.Step(dt)
	p := c.spring.Position
	c.cam.SetPosition(p.X(), p.Y(), p.Z())
	if c.target != nil {
		c.cam.LookAt(c.target.X(), c.target.Y(), c.target.Z())
		return
	}
	c.cam.LookAt(0, 0, 0)
}

// Position is the current interpolated camera position.
func (c *Controller) Position() mgl64.Vec3 { return c.spring.Position }

// Destination is where the spring is heading.
func (c *Controller) Destination() mgl64.Vec3 { return c.spring.Destination }

// Target returns the current look target, if any.
func (c *Controller) Target() (mgl64.Vec3, bool) {
	if c.target == nil {
		return mgl64.Vec3{}, false
	}
	return *c.target, true
}

// Settled reports whether the camera has reached its destination.
func (c *Controller) Settled() bool { return c.spring.Resting() }
