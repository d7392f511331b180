package camera

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// maxSubstep bounds one integration step.
	maxSubstep = time.Millisecond
	// maxFrameDelta bounds the time a single Step will simulate, so a stalled
	// frame loop resumes from where it was instead of replaying seconds.
	maxFrameDelta = 250 * time.Millisecond
)

// SpringConfig holds the damped oscillator constants.
type SpringConfig struct {
	Mass     float64
	Tension  float64
	Friction float64
	// Precision is the displacement and speed under which the spring snaps
	// onto its destination and rests.
	Precision float64
}

// DefaultSpringConfig is the focus animation: near critically damped.
func DefaultSpringConfig() SpringConfig {
	return SpringConfig{Mass: 1, Tension: 170, Friction: 26, Precision: 1e-4}
}

// Spring animates a point toward a destination. The zero value is not
// usable; construct with NewSpring.
type Spring struct {
	Position    mgl64.Vec3
	Velocity    mgl64.Vec3
	Destination mgl64.Vec3
	Config      SpringConfig
}

// NewSpring returns a spring resting at start.
func NewSpring(start mgl64.Vec3, cfg SpringConfig) *Spring {
	if cfg.Mass <= 0 {
		cfg.Mass = 1
	}
	if cfg.Precision <= 0 {
		cfg.Precision = DefaultSpringConfig().Precision
	}
	return &Spring{Position: start, Destination: start, Config: cfg}
}

// SetDestination retargets the spring. Position and velocity carry over so
// the motion stays continuous.
func (s *Spring) SetDestination(dest mgl64.Vec3) {
	s.Destination = dest
}

// Resting reports whether the spring sits on its destination with no speed.
func (s *Spring) Resting() bool {
	return s.Position == s.Destination && s.Velocity == (mgl64.Vec3{})
}

// Step advances the simulation by dt using semi-implicit Euler sub-steps.
func (s *Spring) Step(dt time.Duration) {
	if dt <= 0 || s.Resting() {
		return
	}
	if dt > maxFrameDelta {
		dt = maxFrameDelta
	}
	for dt > 0 {
		h := min(dt, maxSubstep)
		dt -= h
		s.integrate(h.Seconds())
		if s.settled() {
			s.Position = s.Destination
			s.Velocity = mgl64.Vec3{}
			return
		}
	}
}

func (s *Spring) integrate(h float64) {
	displacement := s.Position.Sub(s.Destination)
	force := displacement.Mul(-s.Config.Tension).Sub(s.Velocity.Mul(s.Config.Friction))
	accel := force.Mul(1 / s.Config.Mass)
	s.Velocity = s.Velocity.Add(accel.Mul(h))
	s.Position = s.Position.Add(s.Velocity.Mul(h))
}

func (s *Spring) settled() bool {
	p := s.Config.Precision
	return s.Position.Sub(s.Destination).Len() < p && s.Velocity.Len() < p
}
