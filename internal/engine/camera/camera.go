// Package camera provides the orbit camera used by the terrain viewer.
package camera

import (
	gomath "math"

	"github.com/Faultbox/isoterrain/pkg/math"
)

// HeightFunc returns the ground elevation at (x, z), or false when the point
// is off the terrain.
type HeightFunc func(x, z float32) (float32, bool)

// Constraints bound the orbit. Pitch is the elevation angle above the
// horizon in radians.
type Constraints struct {
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32
}

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	// Center point to orbit around
	CenterX, CenterY, CenterZ float32

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        250.0,
		RotationX:       0.6,
		RotationY:       0.0,
		MinDistance:     20.0,
		MaxDistance:     1000.0,
		MinPitch:        0.05,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Center returns the orbit target.
func (c *OrbitCamera) Center() math.Vec3 {
	return math.Vec3{X: c.CenterX, Y: c.CenterY, Z: c.CenterZ}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	x := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Sin(float64(c.RotationY)))
	y := c.Distance * float32(gomath.Sin(float64(c.RotationX)))
	z := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Cos(float64(c.RotationY)))

	return math.Vec3{
		X: c.CenterX + x,
		Y: c.CenterY + y,
		Z: c.CenterZ + z,
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(c.Position(), c.Center(), up)
}

// SetConstraints replaces the orbit limits and pulls the current state back
// inside them. Inverted ranges are swapped.
func (c *OrbitCamera) SetConstraints(k Constraints) {
	if k.MaxDistance < k.MinDistance {
		k.MinDistance, k.MaxDistance = k.MaxDistance, k.MinDistance
	}
	if k.MaxPitch < k.MinPitch {
		k.MinPitch, k.MaxPitch = k.MaxPitch, k.MinPitch
	}
	c.MinDistance = k.MinDistance
	c.MaxDistance = k.MaxDistance
	c.MinPitch = k.MinPitch
	c.MaxPitch = k.MaxPitch
	c.clampPitch()
	c.clampDistance()
}

// Constraints returns the current orbit limits.
func (c *OrbitCamera) Constraints() Constraints {
	return Constraints{
		MinDistance: c.MinDistance,
		MaxDistance: c.MaxDistance,
		MinPitch:    c.MinPitch,
		MaxPitch:    c.MaxPitch,
	}
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity
	c.clampPitch()
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.clampDistance()
}

// HandleMovement pans the camera center point based on keyboard input.
func (c *OrbitCamera) HandleMovement(forward, right, up float32) {
	// Speed scales with distance for consistent feel
	speed := c.Distance * 0.01

	dirX := float32(gomath.Sin(float64(c.RotationY)))
	dirZ := float32(gomath.Cos(float64(c.RotationY)))

	rightX := float32(gomath.Cos(float64(c.RotationY)))
	rightZ := float32(-gomath.Sin(float64(c.RotationY)))

	// Negate forward so W moves "into" the scene
	c.CenterX += (-dirX*forward + rightX*right) * speed
	c.CenterZ += (-dirZ*forward + rightZ*right) * speed
	c.CenterY += up * speed
}

// SetCenter sets the camera's center point.
func (c *OrbitCamera) SetCenter(x, y, z float32) {
	c.CenterX = x
	c.CenterY = y
	c.CenterZ = z
}

// FitToBounds adjusts camera to view the given bounding box.
func (c *OrbitCamera) FitToBounds(minX, minY, minZ, maxX, maxY, maxZ float32) {
	c.CenterX = (minX + maxX) / 2
	c.CenterY = (minY + maxY) / 2
	c.CenterZ = (minZ + maxZ) / 2

	sizeX := maxX - minX
	sizeZ := maxZ - minZ
	maxSize := sizeX
	if sizeZ > maxSize {
		maxSize = sizeZ
	}

	c.Distance = maxSize * 1.2
	c.RotationX = 0.6 // Look down at ~35 degrees
	c.RotationY = 0.0
	c.clampDistance()
	c.clampPitch()
}

// ClampToGround raises the pitch until the camera sits at least clearance
// above the ground under it. It reports whether the camera moved. Pitch
// never exceeds MaxPitch.
func (c *OrbitCamera) ClampToGround(ground HeightFunc, clearance float32) bool {
	if ground == nil || c.Distance <= 0 {
		return false
	}

	moved := false
	// The ground height depends on where the camera ends up, so re-sample a
	// few times.
	for range 4 {
		pos := c.Position()
		h, ok := ground(pos.X, pos.Z)
		if !ok || pos.Y >= h+clearance {
			break
		}

		s := float64((h + clearance - c.CenterY) / c.Distance)
		if s > 1 {
			s = 1
		}
		pitch := float32(gomath.Asin(s))
		if pitch <= c.RotationX {
			pitch = c.RotationX + 0.01
		}
		if pitch > c.MaxPitch {
			pitch = c.MaxPitch
		}
		if pitch == c.RotationX {
			break
		}
		c.RotationX = pitch
		moved = true
	}
	return moved
}

func (c *OrbitCamera) clampPitch() {
	if c.RotationX < c.MinPitch {
		c.RotationX = c.MinPitch
	}
	if c.RotationX > c.MaxPitch {
		c.RotationX = c.MaxPitch
	}
}

func (c *OrbitCamera) clampDistance() {
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}
