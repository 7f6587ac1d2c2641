package style

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/isoterrain/internal/engine/contour"
	"github.com/Faultbox/isoterrain/pkg/math"
)

// FadeParams configures the distance fade.
type FadeParams struct {
	Near      float32
	Far       float32
	FadeColor contour.RGB
}

// Fade returns base blended towards fade by the distance from camera to
// point: base up to near, fade beyond far, linear in between. When far is not
// beyond near the blend is a hard step at near.
func Fade(point, camera math.Vec3, near, far float32, base, fade contour.RGB) contour.RGB {
	d := point.Distance(camera)
	if far <= near {
		if d > near {
			return fade
		}
		return base
	}
	t := clamp01((d - near) / (far - near))
	return base.Lerp(fade, t)
}

// HeightFade tints base towards low as y approaches minY.
func HeightFade(y, minY, maxY float32, base, low contour.RGB) contour.RGB {
	if maxY <= minY {
		return base
	}
	t := clamp01((y - minY) / (maxY - minY))
	return low.Lerp(base, t)
}

func clamp01(v float32) float32 {
	if math32.IsNaN(v) {
		return 0
	}
	return math32.Max(0, math32.Min(1, v))
}
