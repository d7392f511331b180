package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

type recordingCamera struct {
	positions []mgl64.Vec3
	looks     []mgl64.Vec3
}

func (c *recordingCamera) SetPosition(x, y, z float64) {
	c.positions = append(c.positions, mgl64.Vec3{x, y, z})
}

func (c *recordingCamera) LookAt(x, y, z float64) {
	c.looks = append(c.looks, mgl64.Vec3{x, y, z})
}

func TestNewControllerPanicsWithoutCamera(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	NewController(nil, mgl64.Vec3{})
}

func TestControllerConvergesToOffsetAndLooksAtTarget(t *testing.T) {
	t.Parallel()

	cam := &recordingCamera{}
	controller := NewController(cam, mgl64.Vec3{0, 5, 10})
	target := mgl64.Vec3{10, 0, 0}
	controller.SetFocus(&target, true)

	for i := 0; i < 300; i++ {
		controller.OnFrame(frame)
	}
	want := mgl64.Vec3{12, 2, 2}
	if got := controller.Position(); got.Sub(want).Len() > 1e-3 {
		t.Fatalf("position = %v, want ~%v", got, want)
	}
	if len(cam.looks) != 300 || len(cam.positions) != 300 {
		t.Fatalf("camera calls = %d positions, %d looks", len(cam.positions), len(cam.looks))
	}
	for i, look := range cam.looks {
		if look != target {
			t.Fatalf("frame %d looked at %v", i, look)
		}
	}
	if last := cam.positions[len(cam.positions)-1]; last != controller.Position() {
		t.Fatalf("camera position %v, controller %v", last, controller.Position())
	}
	if !controller.Settled() {
		t.Fatal("controller should settle")
	}
}

func TestControllerLooksAtOriginWithoutTarget(t *testing.T) {
	t.Parallel()

	cam := &recordingCamera{}
	controller := NewController(cam, mgl64.Vec3{3, 3, 3})
	controller.SetFocus(nil, true)
	for i := 0; i < 5; i++ {
		controller.OnFrame(frame)
	}
	for i, look := range cam.looks {
		if look != (mgl64.Vec3{}) {
			t.Fatalf("frame %d looked at %v", i, look)
		}
	}
	if controller.Position() != (mgl64.Vec3{3, 3, 3}) {
		t.Fatalf("camera moved without focus: %v", controller.Position())
	}
	if _, ok := controller.Target(); ok {
		t.Fatal("expected no target")
	}
}

func TestControllerUnfocusedKeepsDestinationButAimsAtTarget(t *testing.T) {
	t.Parallel()

	cam := &recordingCamera{}
	controller := NewController(cam, mgl64.Vec3{})
	first := mgl64.Vec3{4, 0, 0}
	controller.SetFocus(&first, true)
	controller.OnFrame(frame)

	second := mgl64.Vec3{-8, 1, 0}
	controller.SetFocus(&second, false)
	controller.OnFrame(frame)

	if controller.Destination() != first.Add(Offset) {
		t.Fatalf("destination = %v, want %v", controller.Destination(), first.Add(Offset))
	}
	if got := cam.looks[len(cam.looks)-1]; got != second {
		t.Fatalf("looked at %v, want %v", got, second)
	}
}

func TestControllerSameTargetDoesNotRestart(t *testing.T) {
	t.Parallel()

	target := mgl64.Vec3{10, 0, 0}
	once := NewController(&recordingCamera{}, mgl64.Vec3{})
	repeated := NewController(&recordingCamera{}, mgl64.Vec3{})
	once.SetFocus(&target, true)
	repeated.SetFocus(&target, true)

	for i := 0; i < 60; i++ {
		same := target
		repeated.SetFocus(&same, true)
		once.OnFrame(frame)
		repeated.OnFrame(frame)
		if once.Position() != repeated.Position() {
			t.Fatalf("frame %d: repeated focus diverged %v vs %v", i, repeated.Position(), once.Position())
		}
	}
}

func TestControllerRetargetIsContinuous(t *testing.T) {
	t.Parallel()

	controller := NewController(&recordingCamera{}, mgl64.Vec3{})
	target := mgl64.Vec3{10, 0, 0}
	controller.SetFocus(&target, true)
	for i := 0; i < 15; i++ {
		controller.OnFrame(frame)
	}
	before := controller.Position()

	moved := mgl64.Vec3{0, 0, 10}
	controller.SetFocus(&moved, true)
	if controller.Position() != before {
		t.Fatal("retarget moved the camera before the next frame")
	}
	controller.OnFrame(frame)
	if jump := controller.Position().Sub(before).Len(); jump > 1.5 {
		t.Fatalf("retarget jumped %f units", jump)
	}
	if controller.Destination() != moved.Add(Offset) {
		t.Fatalf("destination = %v", controller.Destination())
	}
}

func TestControllerCopiesTarget(t *testing.T) {
	t.Parallel()

	cam := &recordingCamera{}
	controller := NewController(cam, mgl64.Vec3{})
	target := mgl64.Vec3{1, 2, 3}
	controller.SetFocus(&target, true)
	target[0] = 99
	controller.OnFrame(frame)
	if got := cam.looks[0]; got != (mgl64.Vec3{1, 2, 3}) {
		t.Fatalf("looked at %v", got)
	}
}

func TestPerspectiveCameraFacesTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		position mgl64.Vec3
		target   mgl64.Vec3
	}{
		{name: "offset follow", position: mgl64.Vec3{12, 2, 2}, target: mgl64.Vec3{10, 0, 0}},
		{name: "origin", position: mgl64.Vec3{0, 0, 5}, target: mgl64.Vec3{}},
		{name: "straight down", position: mgl64.Vec3{0, 8, 0}, target: mgl64.Vec3{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cam := NewPerspectiveCamera(mgl64.Vec3{})
			cam.SetPosition(tc.position.X(), tc.position.Y(), tc.position.Z())
			cam.LookAt(tc.target.X(), tc.target.Y(), tc.target.Z())

			want := tc.target.Sub(tc.position).Normalize()
			got := cam.Forward()
			if got.Sub(want).Len() > 1e-6 {
				t.Fatalf("forward = %v, want %v", got, want)
			}
			if math.IsNaN(cam.Orientation().W) {
				t.Fatal("orientation is NaN")
			}
		})
	}
}

func TestPerspectiveCameraLookAtSelfKeepsOrientation(t *testing.T) {
	t.Parallel()

	cam := NewPerspectiveCamera(mgl64.Vec3{0, 0, 5})
	before := cam.Orientation()
	cam.LookAt(0, 0, 5)
	if cam.Orientation() != before {
		t.Fatal("orientation changed when looking at own position")
	}
	if cam.Target() != (mgl64.Vec3{}) {
		t.Fatalf("target = %v, want the previous target", cam.Target())
	}
	if forward := cam.Forward(); forward.Sub(mgl64.Vec3{0, 0, -1}).Len() > 1e-9 {
		t.Fatalf("forward = %v", forward)
	}
}

func TestPerspectiveCameraViewOnTargetIsFinite(t *testing.T) {
	t.Parallel()

	cam := NewPerspectiveCamera(mgl64.Vec3{0, 0, 5})
	cam.SetPosition(0, 0, 0)
	view := cam.View()
	for i, v := range view {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("view[%d] = %v", i, v)
		}
	}
	if got := view.Mul4x1(mgl64.Vec4{0, 0, 0, 1}); got.Vec3().Len() > 1e-9 {
		t.Fatalf("camera position maps to %v, want view origin", got)
	}
}
