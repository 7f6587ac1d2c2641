// Package app holds the viewer's state machine: parameters, controls,
// regeneration and hover probing. It has no window or GL dependencies.
package app

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/isoterrain/internal/config"
	"github.com/Faultbox/isoterrain/internal/engine/camera"
	"github.com/Faultbox/isoterrain/internal/engine/contour"
	"github.com/Faultbox/isoterrain/internal/engine/picking"
	"github.com/Faultbox/isoterrain/internal/engine/style"
	"github.com/Faultbox/isoterrain/internal/engine/terrain"
	"github.com/Faultbox/isoterrain/internal/logger"
	"github.com/Faultbox/isoterrain/pkg/math"
	"github.com/Faultbox/isoterrain/pkg/noise"
)

// ErrOutOfRange is returned when a camera control would leave its range.
var ErrOutOfRange = errors.New("control out of range")

// Palette is the contour colour cycle.
var Palette = []contour.RGB{
	{0.9, 0.95, 1.0},
	{1.0, 0.85, 0.4},
	{0.35, 0.9, 0.55},
	{1.0, 0.45, 0.4},
}

// State is everything the user can change.
type State struct {
	Params     terrain.Parameters
	Noise      noise.Kind
	Interval   float32
	Color      contour.RGB
	Style      style.Style
	Camera     camera.Constraints
	ShowBounds bool
	ShowGrid   bool
	Shadows    bool
}

// NewState returns the initial state described by cfg.
func NewState(cfg *config.Config) State {
	return State{
		Params:     cfg.Terrain.Parameters,
		Noise:      cfg.Terrain.Noise,
		Interval:   cfg.Contours.Interval,
		Color:      cfg.Contours.Color,
		Style:      cfg.Render.Style,
		Camera:     cfg.CameraConstraints(),
		ShowBounds: cfg.Render.ShowBounds,
		Shadows:    true,
	}
}

// Terrain is one generated heightfield and its contour map. A Terrain with
// a nil Grid has nothing to draw.
type Terrain struct {
	Grid       *terrain.Grid
	Levels     contour.Levels
	Params     terrain.Parameters
	Interval   float32
	Floor      float32
	Generation int
	Took       time.Duration
}

// Empty reports whether there is nothing to draw.
func (t *Terrain) Empty() bool {
	return t == nil || t.Grid == nil
}

// ConfigFor returns the extractor settings for a parameter set.
func ConfigFor(params terrain.Parameters, interval float32, base contour.RGB) contour.Config {
	return contour.Config{
		Interval:        interval,
		MaxHeight:       float32(params.MaxHeight),
		MinHeightFactor: float32(params.MinHeightFactor),
		BaseColor:       base,
	}
}

// Viewer applies controls to State and rebuilds the terrain when needed.
// Regeneration is synchronous; the previous Terrain is dropped once a new
// one is built.
type Viewer struct {
	state    State
	lastGood State
	rng      *rand.Rand

	current    *Terrain
	generation int

	resynth       bool // parameters or noise changed
	reextract     bool // only interval or colour changed
	cameraChanged bool
	resetCamera   bool
	screenshot    bool
	quit          bool

	newSampler func(noise.Kind, int64) (noise.Sampler, error)
	synthesize func(terrain.Parameters, noise.Sampler) (*terrain.Grid, error)
	now        func() time.Time
}

// New creates a viewer that will build its first terrain on the next
// Regenerate. rng drives terrain rolls.
func New(state State, rng *rand.Rand) *Viewer {
	return &Viewer{
		state:         state,
		lastGood:      state,
		rng:           rng,
		resynth:       true,
		cameraChanged: true,
		resetCamera:   true,
		newSampler:    noise.New,
		synthesize:    terrain.Synthesize,
		now:           time.Now,
	}
}

// State returns the current state.
func (v *Viewer) State() State {
	return v.state
}

// Terrain returns the last generated terrain, or nil before the first.
func (v *Viewer) Terrain() *Terrain {
	return v.current
}

// Dirty reports whether Regenerate has work to do.
func (v *Viewer) Dirty() bool {
	return v.resynth || v.reextract
}

// Quit reports whether the user asked to leave.
func (v *Viewer) Quit() bool {
	return v.quit
}

// TakeScreenshot reports and clears a pending screenshot request.
func (v *Viewer) TakeScreenshot() bool {
	taken := v.screenshot
	v.screenshot = false
	return taken
}

// TakeCameraChange returns the camera constraints when they changed since
// the last call.
func (v *Viewer) TakeCameraChange() (camera.Constraints, bool) {
	changed := v.cameraChanged
	v.cameraChanged = false
	return v.state.Camera, changed
}

// TakeCameraReset reports and clears a pending request to refit the camera.
func (v *Viewer) TakeCameraReset() bool {
	reset := v.resetCamera
	v.resetCamera = false
	return reset
}

// Apply performs one control. A change that would produce invalid
// parameters is rejected, leaving the state unchanged, and the error is
// returned for the caller to report.
func (v *Viewer) Apply(a Action) error {
	s := &v.state
	switch a {
	case ActionNone:
	case ActionQuit:
		v.quit = true
	case ActionStyleFilled:
		s.Style = style.FilledMountain
	case ActionStyleLines:
		s.Style = style.LinesOnly
	case ActionStyleFading:
		s.Style = style.FadingLines
	case ActionCycleStyle:
		s.Style = s.Style.Next()
	case ActionRoll:
		return v.setParams(terrain.Roll(s.Params, v.rng))
	case ActionNoiseScaleDown:
		p := s.Params
		p.NoiseScale /= NoiseScaleFactor
		return v.setParams(p)
	case ActionNoiseScaleUp:
		p := s.Params
		p.NoiseScale *= NoiseScaleFactor
		return v.setParams(p)
	case ActionIntervalDown:
		return v.setInterval(s.Interval - IntervalStep)
	case ActionIntervalUp:
		return v.setInterval(s.Interval + IntervalStep)
	case ActionMaxHeightDown:
		p := s.Params
		p.MaxHeight -= MaxHeightStep
		return v.setParams(p)
	case ActionMaxHeightUp:
		p := s.Params
		p.MaxHeight += MaxHeightStep
		return v.setParams(p)
	case ActionPitchLimitDown:
		return v.setMaxPitch(s.Camera.MaxPitch - PitchLimitStep*math32.Pi/180)
	case ActionPitchLimitUp:
		return v.setMaxPitch(s.Camera.MaxPitch + PitchLimitStep*math32.Pi/180)
	case ActionCycleNoise:
		s.Noise = s.Noise.Next()
		v.resynth = true
	case ActionCycleColor:
		s.Color = nextColor(s.Color)
		v.reextract = true
	case ActionToggleBounds:
		s.ShowBounds = !s.ShowBounds
	case ActionToggleGrid:
		s.ShowGrid = !s.ShowGrid
	case ActionToggleShadows:
		s.Shadows = !s.Shadows
	case ActionResetCamera:
		v.resetCamera = true
	case ActionScreenshot:
		v.screenshot = true
	default:
		return fmt.Errorf("unknown action %d", int(a))
	}
	return nil
}

func (v *Viewer) setParams(p terrain.Parameters) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := ConfigFor(p, v.state.Interval, v.state.Color).Validate(); err != nil {
		return err
	}
	v.state.Params = p
	v.resynth = true
	return nil
}

func (v *Viewer) setInterval(interval float32) error {
	if err := ConfigFor(v.state.Params, interval, v.state.Color).Validate(); err != nil {
		return err
	}
	v.state.Interval = interval
	v.reextract = true
	return nil
}

func (v *Viewer) setMaxPitch(pitch float32) error {
	c := v.state.Camera
	if pitch < c.MinPitch || pitch > math32.Pi/2 {
		return fmt.Errorf("%w: max pitch %.1f degrees", ErrOutOfRange, pitch*180/math32.Pi)
	}
	c.MaxPitch = pitch
	v.state.Camera = c
	v.cameraChanged = true
	return nil
}

func nextColor(c contour.RGB) contour.RGB {
	for i, p := range Palette {
		if p == c {
			return Palette[(i+1)%len(Palette)]
		}
	}
	return Palette[0]
}

// Regenerate rebuilds whatever the last controls invalidated: the full
// heightfield for parameter or noise changes, only the contour map for
// interval or colour changes. A malformed mesh yields an empty Terrain.
// On any other error the generating state is reverted to the last good one.
func (v *Viewer) Regenerate() (*Terrain, error) {
	if !v.Dirty() && v.current != nil {
		return v.current, nil
	}
	start := v.now()

	t, err := v.build()
	v.resynth, v.reextract = false, false
	if err != nil {
		v.revert()
		return nil, err
	}

	v.generation++
	t.Generation = v.generation
	t.Took = v.now().Sub(start)
	v.current = t
	v.lastGood = v.state

	logger.Info("terrain regenerated",
		zap.Int("generation", t.Generation),
		zap.Float64("seed", t.Params.Seed),
		zap.String("noise", string(v.state.Noise)),
		zap.Int("levels", len(t.Levels)),
		zap.Int("segments", t.Levels.SegmentCount()),
		zap.Duration("took", t.Took),
	)
	return t, nil
}

func (v *Viewer) build() (*Terrain, error) {
	s := v.state

	var grid *terrain.Grid
	if !v.resynth && !v.current.Empty() {
		grid = v.current.Grid
	} else {
		sampler, err := v.newSampler(s.Noise, int64(s.Params.Seed))
		if err != nil {
			return nil, fmt.Errorf("noise backend: %w", err)
		}
		grid, err = v.synthesize(s.Params, sampler)
		if err != nil {
			return nil, fmt.Errorf("synthesize: %w", err)
		}
	}

	cfg := ConfigFor(s.Params, s.Interval, s.Color)
	levels, err := contour.Extract(grid, cfg)
	switch {
	case errors.Is(err, contour.ErrMalformedMesh):
		logger.Warn("nothing to draw", zap.Error(err))
		grid, levels = nil, contour.Levels{}
	case err != nil:
		return nil, fmt.Errorf("extract: %w", err)
	}

	return &Terrain{
		Grid:     grid,
		Levels:   levels,
		Params:   s.Params,
		Interval: s.Interval,
		Floor:    cfg.Floor(),
	}, nil
}

// revert restores the generating fields, keeping presentation toggles.
func (v *Viewer) revert() {
	v.state.Params = v.lastGood.Params
	v.state.Noise = v.lastGood.Noise
	v.state.Interval = v.lastGood.Interval
	v.state.Color = v.lastGood.Color
}

// Hover is the heightfield point under the cursor.
type Hover struct {
	Point math.Vec3
	Level float32 // highest contour level at or below Point, 0 when none
	Floor bool    // Point rests on the height floor
}

// Hover intersects ray with the current terrain.
func (v *Viewer) Hover(ray picking.Ray) (Hover, bool) {
	t := v.current
	if t.Empty() {
		return Hover{}, false
	}

	g := t.Grid
	step := g.Size / float32(g.Segments) / 2
	p, ok := picking.IntersectHeightfield(ray, g, g.Size*10, step)
	if !ok {
		return Hover{}, false
	}

	h := Hover{Point: p, Floor: t.Floor > 0 && p.Y <= t.Floor}
	level := math32.Floor(p.Y/t.Interval) * t.Interval
	if level > 0 && level > t.Floor && level < float32(t.Params.MaxHeight) {
		h.Level = level
	}
	return h, true
}

// Title formats the window title for the current state and hover.
func (v *Viewer) Title(h *Hover) string {
	var b strings.Builder
	b.WriteString("isoterrain")
	fmt.Fprintf(&b, " | %s | %s | seed %g", v.state.Style, v.state.Noise, v.state.Params.Seed)

	if t := v.current; t != nil {
		fmt.Fprintf(&b, " | %d levels @ %g", len(t.Levels), t.Interval)
	}
	if h != nil {
		fmt.Fprintf(&b, " | x %.1f z %.1f h %.2f", h.Point.X, h.Point.Z, h.Point.Y)
		switch {
		case h.Floor:
			b.WriteString(" (floor)")
		case h.Level > 0:
			fmt.Fprintf(&b, " (above %g)", h.Level)
		}
	}
	return b.String()
}
