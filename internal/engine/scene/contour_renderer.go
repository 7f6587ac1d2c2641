package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/isoterrain/internal/engine/contour"
	"github.com/Faultbox/isoterrain/internal/engine/scene/shaders"
	"github.com/Faultbox/isoterrain/internal/engine/shader"
	"github.com/Faultbox/isoterrain/internal/engine/style"
	"github.com/Faultbox/isoterrain/pkg/math"
)

// ContourLift raises lines off the surface so they win the depth test.
const ContourLift = 0.05

// ContourRenderer draws every contour level as GL_LINES from one static
// position buffer and one dynamic colour buffer.
type ContourRenderer struct {
	program *shader.Program

	vao         uint32
	positionVBO uint32
	colorVBO    uint32
	vertexCount int32

	batch *style.Batch
	faded bool
}

// ContourUniforms holds per-frame line state.
type ContourUniforms struct {
	ViewProj  math.Mat4
	CameraPos math.Vec3
	Style     style.Style
	Fade      style.FadeParams
	Fog       bool // distance fog towards Fade.FadeColor, applied in the shader
}

// NewContourRenderer creates a new contour renderer.
func NewContourRenderer() (*ContourRenderer, error) {
	program, err := shader.NewProgram(shaders.ContourVertexShader, shaders.ContourFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("contour shader: %w", err)
	}
	return &ContourRenderer{program: program}, nil
}

// Upload replaces the GPU line set with levels.
func (cr *ContourRenderer) Upload(levels contour.Levels) {
	cr.release()

	cr.batch = style.NewBatch(levels)
	cr.faded = false
	cr.vertexCount = int32(cr.batch.VertexCount())
	if cr.vertexCount == 0 {
		return
	}

	positions := cr.batch.Positions()
	colors := cr.batch.Colors()

	gl.GenVertexArrays(1, &cr.vao)
	gl.BindVertexArray(cr.vao)

	gl.GenBuffers(1, &cr.positionVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, cr.positionVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(positions)*4, gl.Ptr(positions), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)

	gl.GenBuffers(1, &cr.colorVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, cr.colorVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(colors)*4, gl.Ptr(colors), gl.DYNAMIC_DRAW)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
}

// Update refreshes the colour buffer for the style. Fading lines are
// re-lerped every frame; other styles restore the base colours once.
func (cr *ContourRenderer) Update(camera math.Vec3, st style.Style, fade style.FadeParams) {
	if cr.vertexCount == 0 {
		return
	}

	switch {
	case st.FadesLines():
		cr.batch.Update(camera, fade)
		cr.faded = true
	case cr.faded:
		cr.batch.Reset()
		cr.faded = false
	default:
		return
	}

	colors := cr.batch.Colors()
	gl.BindBuffer(gl.ARRAY_BUFFER, cr.colorVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(colors)*4, gl.Ptr(colors))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Render draws all levels.
func (cr *ContourRenderer) Render(u ContourUniforms) {
	if cr.vertexCount == 0 {
		return
	}

	p := cr.program
	p.Use()
	p.SetMat4("uViewProj", u.ViewProj)
	p.SetFloat("uLift", ContourLift)
	p.SetBool("uFogUse", u.Fog)
	p.SetVec3("uCameraPos", u.CameraPos)
	p.SetFloat("uFogNear", u.Fade.Near)
	p.SetFloat("uFogFar", u.Fade.Far)
	p.SetColor("uFogColor", u.Fade.FadeColor)

	gl.BindVertexArray(cr.vao)
	gl.DrawArrays(gl.LINES, 0, cr.vertexCount)
	gl.BindVertexArray(0)
}

// LevelCount returns the number of uploaded levels.
func (cr *ContourRenderer) LevelCount() int {
	if cr.batch == nil {
		return 0
	}
	return len(cr.batch.Heights())
}

func (cr *ContourRenderer) release() {
	if cr.vao != 0 {
		gl.DeleteVertexArrays(1, &cr.vao)
		cr.vao = 0
	}
	if cr.positionVBO != 0 {
		gl.DeleteBuffers(1, &cr.positionVBO)
		cr.positionVBO = 0
	}
	if cr.colorVBO != 0 {
		gl.DeleteBuffers(1, &cr.colorVBO)
		cr.colorVBO = 0
	}
	cr.vertexCount = 0
	cr.batch = nil
}

// Destroy releases all GPU resources.
func (cr *ContourRenderer) Destroy() {
	cr.release()
	cr.program.Delete()
}
