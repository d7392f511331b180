package camera

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

const frame = 16 * time.Millisecond

func TestSpringConvergesWithoutOvershoot(t *testing.T) {
	t.Parallel()

	start := mgl64.Vec3{}
	dest := mgl64.Vec3{12, 2, 2}
	spring := NewSpring(start, DefaultSpringConfig())
	spring.SetDestination(dest)

	travel := dest.Sub(start)
	axis := travel.Normalize()
	maxProgress := 0.0
	for i := 0; i < 300; i++ {
		spring.Step(frame)
		progress := spring.Position.Sub(start).Dot(axis)
		if progress > maxProgress {
			maxProgress = progress
		}
	}
	if limit := travel.Len() * 1.01; maxProgress > limit {
		t.Fatalf("overshoot: progress %f exceeds %f", maxProgress, limit)
	}
	if !spring.Resting() {
		t.Fatalf("spring still moving after 4.8s: pos=%v vel=%v", spring.Position, spring.Velocity)
	}
	if spring.Position != dest {
		t.Fatalf("position = %v, want %v", spring.Position, dest)
	}
}

func TestSpringMovesContinuously(t *testing.T) {
	t.Parallel()

	spring := NewSpring(mgl64.Vec3{}, DefaultSpringConfig())
	spring.SetDestination(mgl64.Vec3{12, 2, 2})
	prev := spring.Position
	for i := 0; i < 120; i++ {
		spring.Step(frame)
		if jump := spring.Position.Sub(prev).Len(); jump > 1.5 {
			t.Fatalf("frame %d jumped %f units", i, jump)
		}
		prev = spring.Position
	}
}

func TestSpringRetargetKeepsPositionAndVelocity(t *testing.T) {
	t.Parallel()

	spring := NewSpring(mgl64.Vec3{}, DefaultSpringConfig())
	spring.SetDestination(mgl64.Vec3{12, 2, 2})
	for i := 0; i < 10; i++ {
		spring.Step(frame)
	}
	pos, vel := spring.Position, spring.Velocity
	if vel.Len() == 0 {
		t.Fatal("expected spring in flight")
	}

	spring.SetDestination(mgl64.Vec3{-4, 6, 0})
	if spring.Position != pos || spring.Velocity != vel {
		t.Fatal("retarget reset the spring state")
	}
	spring.Step(frame)
	if jump := spring.Position.Sub(pos).Len(); jump > vel.Len()*frame.Seconds()*1.5 {
		t.Fatalf("retarget jumped %f units", jump)
	}
}

func TestSpringIgnoresNonPositiveStep(t *testing.T) {
	t.Parallel()

	spring := NewSpring(mgl64.Vec3{1, 1, 1}, DefaultSpringConfig())
	spring.SetDestination(mgl64.Vec3{5, 5, 5})
	spring.Step(0)
	spring.Step(-time.Second)
	if spring.Position != (mgl64.Vec3{1, 1, 1}) {
		t.Fatalf("position moved: %v", spring.Position)
	}
}

func TestSpringClampsLongFrames(t *testing.T) {
	t.Parallel()

	long := NewSpring(mgl64.Vec3{}, DefaultSpringConfig())
	long.SetDestination(mgl64.Vec3{10, 0, 0})
	long.Step(10 * time.Second)

	clamped := NewSpring(mgl64.Vec3{}, DefaultSpringConfig())
	clamped.SetDestination(mgl64.Vec3{10, 0, 0})
	clamped.Step(maxFrameDelta)

	if long.Position != clamped.Position {
		t.Fatalf("long frame = %v, clamped = %v", long.Position, clamped.Position)
	}
}

func TestNewSpringDefaultsMassAndPrecision(t *testing.T) {
	t.Parallel()

	spring := NewSpring(mgl64.Vec3{}, SpringConfig{Tension: 170, Friction: 26})
	if spring.Config.Mass != 1 || spring.Config.Precision != DefaultSpringConfig().Precision {
		t.Fatalf("config = %+v", spring.Config)
	}
	if !spring.Resting() {
		t.Fatal("new spring should rest at its start")
	}
}
