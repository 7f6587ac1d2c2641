package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/isoterrain/internal/engine/terrain"
	"github.com/Faultbox/isoterrain/pkg/math"
)

// Volume is the bounding sphere the sun's orthographic frustum must cover.
type Volume struct {
	Center math.Vec3
	Radius float32
}

// VolumeOf returns the sphere enclosing terrain bounds.
func VolumeOf(b terrain.Bounds) Volume {
	half := b.Max.Sub(b.Min).Scale(0.5)
	return Volume{
		Center: b.Center(),
		Radius: half.Length(),
	}
}

// ShadowMatrix computes the view-projection used to render and sample the
// shadow map. sunDir points towards the sun and must be normalized.
func ShadowMatrix(sunDir math.Vec3, vol Volume) math.Mat4 {
	radius := vol.Radius
	if radius <= 0 {
		radius = 1
	}

	// Far enough out that the near plane clears the whole volume
	distance := radius * 2
	eye := vol.Center.Add(sunDir.Scale(distance))

	up := math.Vec3{Y: 1}
	if math32.Abs(sunDir.Y) > 0.99 {
		up = math.Vec3{Z: 1}
	}
	view := math.LookAt(eye, vol.Center, up)

	halfSize := radius * 1.1
	near := float32(0.1)
	far := distance + halfSize

	proj := math.Ortho(-halfSize, halfSize, -halfSize, halfSize, near, far)
	return proj.Mul(view)
}

// ShadowMatrix returns the shadow view-projection for this sun over bounds.
func (s Sun) ShadowMatrix(b terrain.Bounds) math.Mat4 {
	return ShadowMatrix(s.Direction(), VolumeOf(b))
}
