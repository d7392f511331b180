// Package camera drives the observatory's virtual camera: a spring animates
// the camera toward an offset from the focused satellite and the camera is
// re-aimed every frame.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera is the mutable scene camera the controller drives.
type Camera interface {
	SetPosition(x, y, z float64)
	LookAt(x, y, z float64)
}

var (
	worldUp = mgl64.Vec3{0, 1, 0}
	altUp   = mgl64.Vec3{0, 0, 1}
)

// parallel is the |cos| above which a view direction counts as vertical.
const parallel = 1 - 1e-9

// PerspectiveCamera keeps a world position and an orientation quaternion.
// Its local forward axis is -Z.
type PerspectiveCamera struct {
	position    mgl64.Vec3
	target      mgl64.Vec3
	orientation mgl64.Quat
}

// NewPerspectiveCamera returns a camera at position looking at the origin.
func NewPerspectiveCamera(position mgl64.Vec3) *PerspectiveCamera {
	c := &PerspectiveCamera{position: position, orientation: mgl64.QuatIdent()}
	c.LookAt(0, 0, 0)
	return c
}

func (c *PerspectiveCamera) SetPosition(x, y, z float64) {
	c.position = mgl64.Vec3{x, y, z}
}

// LookAt orients the camera toward the point. Looking at the camera's own
// position keeps the previous target and orientation.
func (c *PerspectiveCamera) LookAt(x, y, z float64) {
	target := mgl64.Vec3{x, y, z}
	if target.Sub(c.position).Len() < 1e-12 {
		return
	}
	c.target = target
	// The view matrix rotation is the inverse of the camera orientation.
	c.orientation = mgl64.Mat4ToQuat(c.View()).Conjugate().Normalize()
}

func (c *PerspectiveCamera) Position() mgl64.Vec3 { return c.position }

func (c *PerspectiveCamera) Target() mgl64.Vec3 { return c.target }

func (c *PerspectiveCamera) Orientation() mgl64.Quat { return c.orientation }

// Forward is the unit view direction.
func (c *PerspectiveCamera) Forward() mgl64.Vec3 {
	return c.orientation.Rotate(mgl64.Vec3{0, 0, -1})
}

// View returns the view matrix for the current position and target. When the
// camera sits on its target the stored orientation is used instead.
func (c *PerspectiveCamera) View() mgl64.Mat4 {
	direction := c.target.Sub(c.position)
	if direction.Len() < 1e-12 {
		p := c.position
		return c.orientation.Conjugate().Mat4().Mul4(mgl64.Translate3D(-p.X(), -p.Y(), -p.Z()))
	}
	up := worldUp
	if math.Abs(direction.Normalize().Dot(up)) > parallel {
		up = altUp
	}
	return mgl64.LookAtV(c.position, c.target, up)
}
