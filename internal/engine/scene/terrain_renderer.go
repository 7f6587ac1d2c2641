package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/isoterrain/internal/engine/contour"
	"github.com/Faultbox/isoterrain/internal/engine/scene/shaders"
	"github.com/Faultbox/isoterrain/internal/engine/shader"
	"github.com/Faultbox/isoterrain/internal/engine/shadow"
	"github.com/Faultbox/isoterrain/internal/engine/terrain"
	"github.com/Faultbox/isoterrain/pkg/math"
)

// Hypsometric tint endpoints for the filled surface.
var (
	LowlandColor  = contour.RGB{0.24, 0.36, 0.22}
	HighlandColor = contour.RGB{0.86, 0.82, 0.74}
)

// TerrainRenderer draws the synthesized grid as a lit, shadowed surface.
type TerrainRenderer struct {
	program *shader.Program
	depth   *shader.Program

	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32

	minY float32
	maxY float32
}

// TerrainUniforms holds per-frame surface state.
type TerrainUniforms struct {
	ViewProj      math.Mat4
	LightViewProj math.Mat4
	LightDir      math.Vec3
	Ambient       float32
	CameraPos     math.Vec3
	FogNear       float32
	FogFar        float32
	FogColor      contour.RGB
	ShadowMap     *shadow.Map
}

// NewTerrainRenderer creates a new terrain renderer.
func NewTerrainRenderer() (*TerrainRenderer, error) {
	program, err := shader.NewProgram(shaders.TerrainVertexShader, shaders.TerrainFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("terrain shader: %w", err)
	}
	depth, err := shader.NewProgram(shaders.ShadowVertexShader, shaders.ShadowFragmentShader)
	if err != nil {
		program.Delete()
		return nil, fmt.Errorf("shadow shader: %w", err)
	}
	return &TerrainRenderer{program: program, depth: depth}, nil
}

// Upload replaces the GPU mesh with grid.
func (tr *TerrainRenderer) Upload(grid *terrain.Grid) {
	tr.release()

	vertices := interleave(grid.Positions(), grid.PackedNormals())

	gl.GenVertexArrays(1, &tr.vao)
	gl.BindVertexArray(tr.vao)

	gl.GenBuffers(1, &tr.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, tr.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &tr.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, tr.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(grid.Indices)*4, gl.Ptr(grid.Indices), gl.STATIC_DRAW)

	// Position (3) + Normal (3)
	vertexSize := int32(6 * 4)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexSize, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, vertexSize, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)

	tr.indexCount = int32(len(grid.Indices))
	tr.minY = grid.Bounds.Min.Y
	tr.maxY = grid.Bounds.Max.Y
}

// RenderDepth draws the surface into the currently bound depth target.
// It serves both the sun shadow pass and hidden-line occlusion.
func (tr *TerrainRenderer) RenderDepth(viewProj math.Mat4) {
	if tr.indexCount == 0 {
		return
	}
	tr.depth.Use()
	tr.depth.SetMat4("uLightViewProj", viewProj)
	gl.BindVertexArray(tr.vao)
	gl.DrawElements(gl.TRIANGLES, tr.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// Render draws the filled surface.
func (tr *TerrainRenderer) Render(u TerrainUniforms) {
	if tr.indexCount == 0 {
		return
	}

	p := tr.program
	p.Use()
	p.SetMat4("uViewProj", u.ViewProj)
	p.SetMat4("uLightViewProj", u.LightViewProj)
	p.SetVec3("uLightDir", u.LightDir)
	p.SetFloat("uAmbient", u.Ambient)
	p.SetColor("uLowColor", LowlandColor)
	p.SetColor("uHighColor", HighlandColor)
	p.SetFloat("uMinY", tr.minY)
	p.SetFloat("uMaxY", tr.maxY)
	p.SetVec3("uCameraPos", u.CameraPos)
	p.SetFloat("uFogNear", u.FogNear)
	p.SetFloat("uFogFar", u.FogFar)
	p.SetColor("uFogColor", u.FogColor)

	if u.ShadowMap.IsValid() {
		u.ShadowMap.BindTexture(gl.TEXTURE0)
		p.SetInt("uShadowMap", 0)
		p.SetBool("uShadowsEnabled", true)
	} else {
		p.SetBool("uShadowsEnabled", false)
	}

	gl.BindVertexArray(tr.vao)
	gl.DrawElements(gl.TRIANGLES, tr.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

func (tr *TerrainRenderer) release() {
	if tr.vao != 0 {
		gl.DeleteVertexArrays(1, &tr.vao)
		tr.vao = 0
	}
	if tr.vbo != 0 {
		gl.DeleteBuffers(1, &tr.vbo)
		tr.vbo = 0
	}
	if tr.ebo != 0 {
		gl.DeleteBuffers(1, &tr.ebo)
		tr.ebo = 0
	}
	tr.indexCount = 0
}

// Destroy releases all GPU resources.
func (tr *TerrainRenderer) Destroy() {
	tr.release()
	tr.program.Delete()
	tr.depth.Delete()
}

// interleave zips two xyz arrays into xyz,xyz records.
func interleave(a, b []float32) []float32 {
	out := make([]float32, 0, len(a)+len(b))
	for i := 0; i+2 < len(a); i += 3 {
		out = append(out, a[i], a[i+1], a[i+2], b[i], b[i+1], b[i+2])
	}
	return out
}
