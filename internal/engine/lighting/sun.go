// Package lighting provides the directional sun used to shade the terrain.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/isoterrain/pkg/math"
)

// Sun is a directional light.
type Sun struct {
	Longitude float32 // degrees around the Y axis
	Latitude  float32 // degrees above the horizon
	Ambient   float32 // light reaching faces turned away, [0, 1]
}

// DefaultSun returns a low afternoon sun that brings out ridges.
func DefaultSun() Sun {
	return Sun{Longitude: 135, Latitude: 40, Ambient: 0.35}
}

// SunDirection converts longitude/latitude angles in degrees to a light
// direction vector. Longitude is rotation around Y axis (0-360), latitude is
// elevation from horizon (0-90). The result points towards the sun.
func SunDirection(longitude, latitude float32) math.Vec3 {
	lonRad := longitude * math32.Pi / 180
	latRad := latitude * math32.Pi / 180

	return math.Vec3{
		X: math32.Cos(latRad) * math32.Sin(lonRad),
		Y: math32.Sin(latRad),
		Z: math32.Cos(latRad) * math32.Cos(lonRad),
	}
}

// Direction returns the unit vector towards the sun.
func (s Sun) Direction() math.Vec3 {
	return SunDirection(s.Longitude, s.Latitude)
}

// Lambert returns the diffuse intensity for a surface normal, never below
// the ambient term.
func (s Sun) Lambert(normal math.Vec3) float32 {
	d := normal.Normalize().Dot(s.Direction())
	if d < 0 {
		d = 0
	}
	return s.Ambient + (1-s.Ambient)*d
}
