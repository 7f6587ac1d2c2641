// Package scene renders a synthesized terrain and its contour lines with
// OpenGL. It handles the filled surface, sun shadows, contour lines and
// debug overlays, drawn into an offscreen framebuffer.
package scene

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/isoterrain/internal/engine/camera"
	"github.com/Faultbox/isoterrain/internal/engine/contour"
	"github.com/Faultbox/isoterrain/internal/engine/debug"
	"github.com/Faultbox/isoterrain/internal/engine/framebuffer"
	"github.com/Faultbox/isoterrain/internal/engine/lighting"
	"github.com/Faultbox/isoterrain/internal/engine/shadow"
	"github.com/Faultbox/isoterrain/internal/engine/style"
	"github.com/Faultbox/isoterrain/internal/engine/terrain"
	"github.com/Faultbox/isoterrain/internal/logger"
	"github.com/Faultbox/isoterrain/pkg/math"
)

// Overlay colours.
var (
	boundsColor = [3]float32{1.0, 0.8, 0.2}
	markerSize  = float32(2)
)

// Config contains scene configuration options.
type Config struct {
	Width            int32
	Height           int32
	ShadowResolution int32
	ShadowsEnabled   bool
	FOV              float32 // vertical field of view in radians
	Near             float32
	Far              float32
	GridEvery        int // cell grid overlay spacing in cells
}

// DefaultConfig returns a default scene configuration.
func DefaultConfig() Config {
	return Config{
		Width:            1280,
		Height:           720,
		ShadowResolution: shadow.DefaultResolution,
		ShadowsEnabled:   true,
		FOV:              0.785398, // 45 degrees
		Near:             0.5,
		Far:              10000,
		GridEvery:        10,
	}
}

// Scene manages the GPU side of one terrain: surface, lines and overlays.
type Scene struct {
	config Config

	framebuffer *framebuffer.Framebuffer
	shadowMap   *shadow.Map

	terrainRenderer *TerrainRenderer
	contourRenderer *ContourRenderer
	overlayRenderer *OverlayRenderer

	// Presentation state, set by the viewer each frame
	Sun            lighting.Sun
	Style          style.Style
	Fade           style.FadeParams
	Background     contour.RGB
	ShadowsEnabled bool

	grid          *terrain.Grid
	cells         *debug.CellGridRenderer
	lightViewProj math.Mat4
}

// New creates a new scene with the given configuration.
// Must be called with a current GL context.
func New(cfg Config) (*Scene, error) {
	s := &Scene{
		config:         cfg,
		Sun:            lighting.DefaultSun(),
		ShadowsEnabled: cfg.ShadowsEnabled,
		lightViewProj:  math.Identity(),
	}

	var err error
	s.framebuffer, err = framebuffer.New(cfg.Width, cfg.Height)
	if err != nil {
		return nil, fmt.Errorf("creating framebuffer: %w", err)
	}

	if cfg.ShadowsEnabled {
		s.shadowMap, err = shadow.NewMap(cfg.ShadowResolution)
		if err != nil {
			logger.Warn("shadows disabled", zap.Error(err))
			s.ShadowsEnabled = false
		}
	}

	s.terrainRenderer, err = NewTerrainRenderer()
	if err != nil {
		s.Destroy()
		return nil, fmt.Errorf("creating terrain renderer: %w", err)
	}

	s.contourRenderer, err = NewContourRenderer()
	if err != nil {
		s.Destroy()
		return nil, fmt.Errorf("creating contour renderer: %w", err)
	}

	s.overlayRenderer, err = NewOverlayRenderer()
	if err != nil {
		s.Destroy()
		return nil, fmt.Errorf("creating overlay renderer: %w", err)
	}

	return s, nil
}

// Load replaces the scene contents. Previous GPU buffers are released
// before the new ones are uploaded. floor is the height floor used by the
// floor overlay.
func (s *Scene) Load(grid *terrain.Grid, levels contour.Levels, floor float32) {
	s.grid = grid
	s.terrainRenderer.Upload(grid)
	s.contourRenderer.Upload(levels)

	s.overlayRenderer.Set(LayerBounds, colorize(debug.BoundsWireframe(grid.Bounds, debug.DefaultBBoxPadding), boundsColor))

	s.cells = debug.NewCellGridRenderer(grid, s.config.GridEvery, ContourLift)
	s.overlayRenderer.Set(LayerGrid, debug.Flatten(s.cells.GenerateGridLines()))
	s.overlayRenderer.Set(LayerFloor, debug.Flatten(s.cells.GenerateFloorOverlay(floor)))
	s.overlayRenderer.Clear(LayerMarker)

	logger.Debug("scene loaded",
		zap.Int("vertices", len(grid.Vertices)),
		zap.Int("triangles", grid.TriangleCount()),
		zap.Int("levels", s.contourRenderer.LevelCount()),
	)
}

// Unload releases the terrain and line buffers, leaving an empty scene.
func (s *Scene) Unload() {
	s.grid = nil
	s.cells = nil
	s.terrainRenderer.release()
	s.contourRenderer.release()
	for layer := range layerCount {
		s.overlayRenderer.Clear(layer)
	}
}

// Projection returns the perspective projection for the current size.
func (s *Scene) Projection() math.Mat4 {
	aspect := float32(s.config.Width) / float32(max(s.config.Height, 1))
	return math.Perspective(s.config.FOV, aspect, s.config.Near, s.config.Far)
}

// ViewProj returns the camera's view-projection matrix.
func (s *Scene) ViewProj(cam *camera.OrbitCamera) math.Mat4 {
	return s.Projection().Mul(cam.ViewMatrix())
}

// SetOverlayVisible shows or hides an overlay layer.
func (s *Scene) SetOverlayVisible(layer Layer, visible bool) {
	s.overlayRenderer.SetVisible(layer, visible)
}

// OverlayVisible reports whether an overlay layer is shown.
func (s *Scene) OverlayVisible(layer Layer) bool {
	return s.overlayRenderer.Visible(layer)
}

// SetMarker places the hover marker at p, or hides it when ok is false.
func (s *Scene) SetMarker(p math.Vec3, ok bool) {
	if !ok || s.cells == nil {
		s.overlayRenderer.SetVisible(LayerMarker, false)
		return
	}
	s.overlayRenderer.Set(LayerMarker, debug.Flatten(s.cells.GenerateMarker(p, markerSize)))
	s.overlayRenderer.SetVisible(LayerMarker, true)
}

// CellInfo returns debug information for the cell under (x, z).
func (s *Scene) CellInfo(x, z float32) *debug.CellInfo {
	return s.cells.GetCellInfo(x, z)
}

// Render draws one frame into the offscreen framebuffer.
func (s *Scene) Render(cam *camera.OrbitCamera) {
	viewProj := s.ViewProj(cam)
	eye := cam.Position()
	fills := s.Style.FillsSurface()

	s.contourRenderer.Update(eye, s.Style, s.Fade)

	shadows := fills && s.ShadowsEnabled && s.shadowMap.IsValid() && s.grid != nil
	if shadows {
		s.lightViewProj = s.Sun.ShadowMatrix(s.grid.Bounds)
		s.shadowMap.Begin()
		s.terrainRenderer.RenderDepth(s.lightViewProj)
		s.shadowMap.End()
	}

	restore := s.framebuffer.BindWithViewport()
	defer restore()

	s.framebuffer.Clear(s.Background)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)

	if fills {
		var shadowMap *shadow.Map
		if shadows {
			shadowMap = s.shadowMap
		}
		s.terrainRenderer.Render(TerrainUniforms{
			ViewProj:      viewProj,
			LightViewProj: s.lightViewProj,
			LightDir:      s.Sun.Direction(),
			Ambient:       s.Sun.Ambient,
			CameraPos:     eye,
			FogNear:       s.Fade.Near,
			FogFar:        s.Fade.Far,
			FogColor:      s.Background,
			ShadowMap:     shadowMap,
		})
	} else {
		// Depth only, so lines behind ridges stay hidden
		gl.ColorMask(false, false, false, false)
		s.terrainRenderer.RenderDepth(viewProj)
		gl.ColorMask(true, true, true, true)
	}

	s.contourRenderer.Render(ContourUniforms{
		ViewProj:  viewProj,
		CameraPos: eye,
		Style:     s.Style,
		Fade:      style.FadeParams{Near: s.Fade.Near, Far: s.Fade.Far, FadeColor: s.Background},
		Fog:       fills,
	})

	s.overlayRenderer.Render(viewProj)
}

// Present blits the last frame to the window's default framebuffer.
func (s *Scene) Present(width, height int32) {
	s.framebuffer.BlitToScreen(width, height)
}

// Resize resizes the offscreen target.
func (s *Scene) Resize(width, height int32) {
	s.config.Width = max(width, 1)
	s.config.Height = max(height, 1)
	s.framebuffer.Resize(s.config.Width, s.config.Height)
}

// CaptureImage reads the last rendered frame.
func (s *Scene) CaptureImage() (*image.RGBA, error) {
	return s.framebuffer.Image()
}

// Destroy releases all GPU resources.
func (s *Scene) Destroy() {
	if s.overlayRenderer != nil {
		s.overlayRenderer.Destroy()
	}
	if s.contourRenderer != nil {
		s.contourRenderer.Destroy()
	}
	if s.terrainRenderer != nil {
		s.terrainRenderer.Destroy()
	}
	if s.shadowMap != nil {
		s.shadowMap.Destroy()
	}
	if s.framebuffer != nil {
		s.framebuffer.Destroy()
	}
}
