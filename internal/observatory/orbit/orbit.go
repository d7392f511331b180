// Package orbit propagates catalog satellites along circular orbits centered
// on the scene origin.
package orbit

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/orbitwatch/missioncontrol/internal/observatory/catalog"
)

// Body is one propagated satellite position.
type Body struct {
	ID       string
	Name     string
	Color    string
	Position mgl64.Vec3
}

// Angle returns the orbital angle in radians at t. The phase offset is applied
// before wrapping so the result is always in [0, 2π).
func Angle(sat catalog.Satellite, t time.Time) float64 {
	if sat.Period <= 0 {
		return normalize(mgl64.DegToRad(sat.Phase))
	}
	elapsed := t.UnixNano() % int64(sat.Period)
	fraction := float64(elapsed) / float64(sat.Period)
	return normalize(mgl64.DegToRad(sat.Phase) + 2*math.Pi*fraction)
}

// Position returns the satellite's position at t. The orbit lies in the XZ
// plane, tilted about the X axis by the inclination.
func Position(sat catalog.Satellite, t time.Time) mgl64.Vec3 {
	angle := Angle(sat, t)
	flat := mgl64.Vec3{sat.Radius * math.Cos(angle), 0, sat.Radius * math.Sin(angle)}
	tilt := mgl64.Rotate3DX(mgl64.DegToRad(sat.Inclination))
	return tilt.Mul3x1(flat)
}

// Snapshot propagates every satellite in the catalog at t, in catalog order.
func Snapshot(cat *catalog.Catalog, t time.Time) []Body {
	if cat == nil {
		return nil
	}
	bodies := make([]Body, 0, len(cat.Satellites))
	for _, sat := range cat.Satellites {
		bodies = append(bodies, Body{
			ID:       sat.ID,
			Name:     sat.Name,
			Color:    sat.Color,
			Position: Position(sat, t),
		})
	}
	return bodies
}

func normalize(angle float64) float64 {
	angle = math.Mod(angle, 2*math.Pi)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle
}
