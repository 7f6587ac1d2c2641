// Package debug provides debug visualization and capture utilities.
package debug

import (
	"github.com/Faultbox/isoterrain/internal/engine/terrain"
)

// GenerateBBoxWireframeVertices creates line vertices for a wireframe bounding box.
// Returns 24 vertices (12 edges × 2 endpoints), format: [x, y, z] per vertex.
// minX, minY, minZ, maxX, maxY, maxZ define the box corners in world space.
func GenerateBBoxWireframeVertices(minX, minY, minZ, maxX, maxY, maxZ float32) []float32 {
	return []float32{
		// Bottom face (4 edges)
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, minY, maxZ, minX, minY, maxZ,
		minX, minY, maxZ, minX, minY, minZ,
		// Top face (4 edges)
		minX, maxY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, maxY, minZ,
		// Vertical edges (4 edges)
		minX, minY, minZ, minX, maxY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		minX, minY, maxZ, minX, maxY, maxZ,
	}
}

// BoundsWireframe creates wireframe vertices around terrain bounds, expanded
// by padding on all sides.
func BoundsWireframe(b terrain.Bounds, padding float32) []float32 {
	lo := b.Min.Min(b.Max)
	hi := b.Min.Max(b.Max)

	return GenerateBBoxWireframeVertices(
		lo.X-padding, lo.Y-padding, lo.Z-padding,
		hi.X+padding, hi.Y+padding, hi.Z+padding,
	)
}

// BBoxWireframeVertexCount is the number of vertices for a bbox wireframe (12 edges × 2).
const BBoxWireframeVertexCount = 24

// DefaultBBoxPadding is the default padding for the bounds box.
const DefaultBBoxPadding = 1.0
