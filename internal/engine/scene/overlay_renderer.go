package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/isoterrain/internal/engine/scene/shaders"
	"github.com/Faultbox/isoterrain/internal/engine/shader"
	"github.com/Faultbox/isoterrain/pkg/math"
)

// Layer identifies one overlay vertex set.
type Layer int

const (
	LayerBounds Layer = iota // terrain bounding box
	LayerGrid                // draped cell grid
	LayerFloor               // cells resting on the height floor
	LayerMarker              // hover marker
	layerCount
)

// overlayLayer is one dynamic xyz+rgb vertex set.
type overlayLayer struct {
	vao     uint32
	vbo     uint32
	count   int32
	mode    uint32
	visible bool
}

// OverlayRenderer draws debug geometry over the scene.
type OverlayRenderer struct {
	program *shader.Program
	layers  [layerCount]overlayLayer
}

// NewOverlayRenderer creates a new overlay renderer.
func NewOverlayRenderer() (*OverlayRenderer, error) {
	program, err := shader.NewProgram(shaders.OverlayVertexShader, shaders.OverlayFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("overlay shader: %w", err)
	}
	or := &OverlayRenderer{program: program}
	for i := range or.layers {
		or.layers[i].mode = gl.LINES
	}
	or.layers[LayerFloor].mode = gl.TRIANGLES
	or.layers[LayerMarker].mode = gl.TRIANGLES
	return or, nil
}

// Set replaces a layer's vertices, packed as x,y,z,r,g,b.
func (or *OverlayRenderer) Set(layer Layer, vertices []float32) {
	l := &or.layers[layer]
	l.count = int32(len(vertices) / 6)
	if l.count == 0 {
		return
	}

	if l.vao == 0 {
		gl.GenVertexArrays(1, &l.vao)
		gl.GenBuffers(1, &l.vbo)
		gl.BindVertexArray(l.vao)
		gl.BindBuffer(gl.ARRAY_BUFFER, l.vbo)
		gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 6*4, 0)
		gl.EnableVertexAttribArray(0)
		gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, 6*4, 3*4)
		gl.EnableVertexAttribArray(1)
	} else {
		gl.BindVertexArray(l.vao)
		gl.BindBuffer(gl.ARRAY_BUFFER, l.vbo)
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.DYNAMIC_DRAW)
	gl.BindVertexArray(0)
}

// SetVisible shows or hides a layer.
func (or *OverlayRenderer) SetVisible(layer Layer, visible bool) {
	or.layers[layer].visible = visible
}

// Visible reports whether a layer is shown.
func (or *OverlayRenderer) Visible(layer Layer) bool {
	return or.layers[layer].visible
}

// Clear empties a layer without releasing its buffers.
func (or *OverlayRenderer) Clear(layer Layer) {
	or.layers[layer].count = 0
}

// Render draws every visible, non-empty layer.
func (or *OverlayRenderer) Render(viewProj math.Mat4) {
	or.program.Use()
	or.program.SetMat4("uViewProj", viewProj)

	for i := range or.layers {
		l := &or.layers[i]
		if !l.visible || l.count == 0 {
			continue
		}
		gl.BindVertexArray(l.vao)
		gl.DrawArrays(l.mode, 0, l.count)
	}
	gl.BindVertexArray(0)
}

// Destroy releases all GPU resources.
func (or *OverlayRenderer) Destroy() {
	for i := range or.layers {
		l := &or.layers[i]
		if l.vao != 0 {
			gl.DeleteVertexArrays(1, &l.vao)
			l.vao = 0
		}
		if l.vbo != 0 {
			gl.DeleteBuffers(1, &l.vbo)
			l.vbo = 0
		}
		l.count = 0
	}
	or.program.Delete()
}

// colorize appends an rgb triple to every xyz vertex.
func colorize(positions []float32, c [3]float32) []float32 {
	out := make([]float32, 0, len(positions)*2)
	for i := 0; i+2 < len(positions); i += 3 {
		out = append(out, positions[i], positions[i+1], positions[i+2], c[0], c[1], c[2])
	}
	return out
}
