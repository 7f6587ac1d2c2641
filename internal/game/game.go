// Package game runs the interactive viewer: window, input, camera and the
// GL scene around an app.Viewer.
package game

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/isoterrain/internal/app"
	"github.com/Faultbox/isoterrain/internal/config"
	"github.com/Faultbox/isoterrain/internal/engine/camera"
	"github.com/Faultbox/isoterrain/internal/engine/debug"
	"github.com/Faultbox/isoterrain/internal/engine/input"
	"github.com/Faultbox/isoterrain/internal/engine/picking"
	"github.com/Faultbox/isoterrain/internal/engine/renderer"
	"github.com/Faultbox/isoterrain/internal/engine/scene"
	"github.com/Faultbox/isoterrain/internal/engine/terrain"
	"github.com/Faultbox/isoterrain/internal/engine/window"
	"github.com/Faultbox/isoterrain/internal/logger"
)

// panSpeed is the pan rate in HandleMovement steps per second. One step is
// a hundredth of the orbit distance.
const panSpeed = 80

// Game is the main viewer instance.
type Game struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	scene    *scene.Scene
	camera   *camera.OrbitCamera

	viewer      *app.Viewer
	screenshots *debug.ScreenshotCapture

	dragging bool
	mouseX   int
	mouseY   int
	title    string
}

// New creates the window, GL state and viewer.
func New(cfg *config.Config) (*Game, error) {
	logger.Info("initializing viewer",
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.Stringer("style", cfg.Render.Style),
	)

	g := &Game{
		cfg:         cfg,
		input:       input.New(),
		camera:      camera.NewOrbitCamera(),
		screenshots: debug.NewScreenshotCapture(cfg.Render.ScreenshotDir, "isoterrain"),
	}

	// Window first: it owns the GL context
	var err error
	g.window, err = window.New(window.Config{
		Title:      "isoterrain",
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
		Samples:    4,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	width, height := g.window.GetDrawableSize()
	g.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		Background: cfg.Render.Background,
		LineWidth:  cfg.Render.LineWidth,
	})
	if err != nil {
		g.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	sceneCfg := scene.DefaultConfig()
	sceneCfg.Width = int32(width)
	sceneCfg.Height = int32(height)
	g.scene, err = scene.New(sceneCfg)
	if err != nil {
		g.Close()
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}
	g.scene.Background = cfg.Render.Background

	g.viewer = app.New(app.NewState(cfg), rand.New(rand.NewSource(time.Now().UnixNano())))

	logger.Info("viewer initialized")
	return g, nil
}

// Run starts the main loop. It returns an error only for failures the
// viewer cannot recover from.
func (g *Game) Run() error {
	g.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting main loop")

	for g.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		// 1. Input
		if g.input.Update() {
			break
		}
		g.handleEvents()
		if g.viewer.Quit() {
			break
		}

		// 2. State
		if err := g.update(dt); err != nil {
			return err
		}

		// 3. Draw and present
		g.render()
		g.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount), zap.Float32("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	g.running = false
	return nil
}

// Close cleans up viewer resources.
func (g *Game) Close() {
	logger.Info("closing viewer")

	if g.scene != nil {
		g.scene.Destroy()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}

func (g *Game) handleEvents() {
	for _, e := range g.input.Events() {
		switch e.Type {
		case input.EventWindowResize:
			g.resize()

		case input.EventKeyDown:
			action, ok := keyActions[e.Key]
			if !ok || (e.Repeat && action != app.ActionIntervalDown && action != app.ActionIntervalUp) {
				continue
			}
			if err := g.viewer.Apply(action); err != nil {
				logger.Warn("control rejected", zap.Stringer("action", action), zap.Error(err))
			}

		case input.EventMouseDown:
			if e.Button == sdl.BUTTON_LEFT {
				g.dragging = true
			}

		case input.EventMouseUp:
			if e.Button == sdl.BUTTON_LEFT {
				g.dragging = false
			}

		case input.EventMouseMove:
			g.mouseX, g.mouseY = e.MouseX, e.MouseY
			if g.dragging {
				g.camera.HandleDrag(float32(e.DeltaX), float32(e.DeltaY))
			}

		case input.EventMouseWheel:
			g.camera.HandleZoom(e.Wheel)
		}
	}
}

func (g *Game) resize() {
	width, height := g.window.GetDrawableSize()
	g.renderer.Resize(width, height)
	g.scene.Resize(int32(width), int32(height))
}

func (g *Game) update(dt float32) error {
	if g.viewer.Dirty() {
		if err := g.regenerate(); err != nil {
			return err
		}
	}

	if k, changed := g.viewer.TakeCameraChange(); changed {
		g.camera.SetConstraints(k)
	}
	if g.viewer.TakeCameraReset() {
		g.fitCamera()
	}

	var forward, right float32
	for key, dir := range panKeys {
		if g.input.IsKeyDown(key) {
			forward += dir[0]
			right += dir[1]
		}
	}
	if forward != 0 || right != 0 {
		step := panSpeed * dt
		g.camera.HandleMovement(forward*step, right*step, 0)
	}

	state := g.viewer.State()
	if t := g.viewer.Terrain(); !t.Empty() {
		g.camera.ClampToGround(t.Grid.HeightAt, g.cfg.Camera.GroundClearance)
	}

	g.scene.Style = state.Style
	g.scene.Fade = g.cfg.FadeParams()
	g.scene.ShadowsEnabled = state.Shadows
	g.scene.SetOverlayVisible(scene.LayerBounds, state.ShowBounds)
	g.scene.SetOverlayVisible(scene.LayerGrid, state.ShowGrid)
	g.scene.SetOverlayVisible(scene.LayerFloor, state.ShowGrid)

	g.updateHover()
	return nil
}

// regenerate rebuilds the terrain and uploads it. Noise failures are fatal;
// other failures keep the previous terrain on screen.
func (g *Game) regenerate() error {
	first := g.viewer.Terrain() == nil
	t, err := g.viewer.Regenerate()
	switch {
	case errors.Is(err, terrain.ErrNoiseFailure):
		return fmt.Errorf("regenerate terrain: %w", err)
	case err != nil:
		logger.Error("regeneration failed, keeping previous terrain", zap.Error(err))
		return nil
	}

	if t.Empty() {
		g.scene.Unload()
		return nil
	}
	g.scene.Load(t.Grid, t.Levels, t.Floor)
	if first {
		g.fitCamera()
	}
	return nil
}

func (g *Game) fitCamera() {
	t := g.viewer.Terrain()
	if t.Empty() {
		return
	}
	b := t.Grid.Bounds
	g.camera.FitToBounds(b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
}

func (g *Game) updateHover() {
	width, height := g.window.GetSize()
	inv := g.scene.ViewProj(g.camera).Inverse()
	ray := picking.ScreenToRay(float32(g.mouseX), float32(g.mouseY), float32(width), float32(height), inv)

	var hover *app.Hover
	if h, ok := g.viewer.Hover(ray); ok {
		hover = &h
		g.scene.SetMarker(h.Point, true)
	} else {
		g.scene.SetMarker(h.Point, false)
	}

	if title := g.viewer.Title(hover); title != g.title {
		g.title = title
		g.window.SetTitle(title)
	}
}

func (g *Game) render() {
	g.scene.Render(g.camera)

	if g.viewer.TakeScreenshot() {
		g.saveScreenshot()
	}

	g.renderer.Begin()
	width, height := g.renderer.Size()
	g.scene.Present(int32(width), int32(height))
	g.renderer.End()
}

func (g *Game) saveScreenshot() {
	img, err := g.scene.CaptureImage()
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	path, err := g.screenshots.CaptureFromImage(img)
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}
