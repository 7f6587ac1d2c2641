package raster

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/Faultbox/isoterrain/internal/engine/contour"
)

const legendMargin = 8

// legendText summarizes the render in one line.
func legendText(levels contour.Levels, opts Options) string {
	hs := levels.Heights()
	if len(hs) == 0 {
		return fmt.Sprintf("%s  no contours", opts.Style)
	}
	return fmt.Sprintf("%s  %d levels  %.1f..%.1f  %d segments",
		opts.Style, len(hs), hs[0], hs[len(hs)-1], levels.SegmentCount())
}

// drawLegend writes the legend in the top-left corner, in black or white
// depending on the background brightness.
func drawLegend(dst *image.RGBA, levels contour.Levels, opts Options) {
	bg := opts.Background
	ink := color.RGBA{255, 255, 255, 255}
	if 0.299*bg[0]+0.587*bg[1]+0.114*bg[2] > 0.5 {
		ink = color.RGBA{0, 0, 0, 255}
	}

	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(ink),
		Face: face,
		Dot:  fixed.P(legendMargin, legendMargin+face.Ascent),
	}
	d.DrawString(legendText(levels, opts))
}
