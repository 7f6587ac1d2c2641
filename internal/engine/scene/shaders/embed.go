// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// TerrainVertexShader is the vertex shader for the filled terrain surface.
//
//go:embed terrain.vert
var TerrainVertexShader string

// TerrainFragmentShader is the fragment shader for the filled terrain surface.
//
//go:embed terrain.frag
var TerrainFragmentShader string

// ContourVertexShader is the vertex shader for contour lines.
//
//go:embed contour.vert
var ContourVertexShader string

// ContourFragmentShader is the fragment shader for contour lines.
//
//go:embed contour.frag
var ContourFragmentShader string

// OverlayVertexShader is the vertex shader for debug overlays.
//
//go:embed overlay.vert
var OverlayVertexShader string

// OverlayFragmentShader is the fragment shader for debug overlays.
//
//go:embed overlay.frag
var OverlayFragmentShader string

// ShadowVertexShader is the vertex shader for the sun depth pass.
//
//go:embed shadow.vert
var ShadowVertexShader string

// ShadowFragmentShader is the fragment shader for the sun depth pass.
//
//go:embed shadow.frag
var ShadowFragmentShader string
