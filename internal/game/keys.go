package game

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/isoterrain/internal/app"
)

// keyActions maps key presses to viewer controls.
var keyActions = map[sdl.Scancode]app.Action{
	sdl.SCANCODE_ESCAPE:       app.ActionQuit,
	sdl.SCANCODE_1:            app.ActionStyleFilled,
	sdl.SCANCODE_2:            app.ActionStyleLines,
	sdl.SCANCODE_3:            app.ActionStyleFading,
	sdl.SCANCODE_TAB:          app.ActionCycleStyle,
	sdl.SCANCODE_R:            app.ActionRoll,
	sdl.SCANCODE_LEFTBRACKET:  app.ActionNoiseScaleDown,
	sdl.SCANCODE_RIGHTBRACKET: app.ActionNoiseScaleUp,
	sdl.SCANCODE_MINUS:        app.ActionIntervalDown,
	sdl.SCANCODE_EQUALS:       app.ActionIntervalUp,
	sdl.SCANCODE_DOWN:         app.ActionMaxHeightDown,
	sdl.SCANCODE_UP:           app.ActionMaxHeightUp,
	sdl.SCANCODE_PAGEDOWN:     app.ActionPitchLimitDown,
	sdl.SCANCODE_PAGEUP:       app.ActionPitchLimitUp,
	sdl.SCANCODE_N:            app.ActionCycleNoise,
	sdl.SCANCODE_C:            app.ActionCycleColor,
	sdl.SCANCODE_B:            app.ActionToggleBounds,
	sdl.SCANCODE_G:            app.ActionToggleGrid,
	sdl.SCANCODE_L:            app.ActionToggleShadows,
	sdl.SCANCODE_HOME:         app.ActionResetCamera,
	sdl.SCANCODE_P:            app.ActionScreenshot,
}

// Held keys that pan the orbit centre: forward, right.
var panKeys = map[sdl.Scancode][2]float32{
	sdl.SCANCODE_W: {1, 0},
	sdl.SCANCODE_S: {-1, 0},
	sdl.SCANCODE_D: {0, 1},
	sdl.SCANCODE_A: {0, -1},
}
