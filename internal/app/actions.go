package app

// Action is one discrete viewer control, decoupled from the keys that
// trigger it.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionStyleFilled
	ActionStyleLines
	ActionStyleFading
	ActionCycleStyle
	ActionRoll
	ActionNoiseScaleDown
	ActionNoiseScaleUp
	ActionIntervalDown
	ActionIntervalUp
	ActionMaxHeightDown
	ActionMaxHeightUp
	ActionPitchLimitDown
	ActionPitchLimitUp
	ActionCycleNoise
	ActionCycleColor
	ActionToggleBounds
	ActionToggleGrid
	ActionToggleShadows
	ActionResetCamera
	ActionScreenshot
	actionCount
)

var actionNames = [actionCount]string{
	ActionNone:           "none",
	ActionQuit:           "quit",
	ActionStyleFilled:    "style-filled",
	ActionStyleLines:     "style-lines",
	ActionStyleFading:    "style-fading",
	ActionCycleStyle:     "cycle-style",
	ActionRoll:           "roll",
	ActionNoiseScaleDown: "noise-scale-down",
	ActionNoiseScaleUp:   "noise-scale-up",
	ActionIntervalDown:   "interval-down",
	ActionIntervalUp:     "interval-up",
	ActionMaxHeightDown:  "max-height-down",
	ActionMaxHeightUp:    "max-height-up",
	ActionPitchLimitDown: "pitch-limit-down",
	ActionPitchLimitUp:   "pitch-limit-up",
	ActionCycleNoise:     "cycle-noise",
	ActionCycleColor:     "cycle-color",
	ActionToggleBounds:   "toggle-bounds",
	ActionToggleGrid:     "toggle-grid",
	ActionToggleShadows:  "toggle-shadows",
	ActionResetCamera:    "reset-camera",
	ActionScreenshot:     "screenshot",
}

// String returns the action's name.
func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return "unknown"
	}
	return actionNames[a]
}

// Control step sizes.
const (
	NoiseScaleFactor = 1.25
	IntervalStep     = 0.5
	MaxHeightStep    = 5
	PitchLimitStep   = 5 // degrees
)
