// Package raster draws a plan view of a terrain and its contours into an
// image without a GPU.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sort"

	"github.com/chewxy/math32"
	"go.uber.org/zap"
	"golang.org/x/image/vector"

	"github.com/Faultbox/isoterrain/internal/engine/contour"
	"github.com/Faultbox/isoterrain/internal/engine/lighting"
	"github.com/Faultbox/isoterrain/internal/engine/style"
	"github.com/Faultbox/isoterrain/internal/engine/terrain"
	"github.com/Faultbox/isoterrain/internal/logger"
	"github.com/Faultbox/isoterrain/pkg/math"
)

// ErrInvalidOptions reports options that cannot produce an image.
var ErrInvalidOptions = errors.New("invalid raster options")

// Hypsometric tint endpoints for the filled style.
var (
	lowland  = contour.RGB{0.20, 0.35, 0.18}
	highland = contour.RGB{0.86, 0.83, 0.76}
)

// colorSteps is the per-channel quantization used to bucket shapes that
// share a colour.
const colorSteps = 64

// Options controls a render.
type Options struct {
	Width, Height int
	Style         style.Style
	Background    contour.RGB
	LineWidth     float32 // pixels
	Camera        math.Vec3
	Fade          style.FadeParams
	Sun           lighting.Sun // zero value means lighting.DefaultSun
	Legend        bool
}

// DefaultOptions returns a 1024x1024 filled render.
func DefaultOptions() Options {
	return Options{
		Width:      1024,
		Height:     1024,
		Style:      style.FilledMountain,
		Background: contour.RGB{0.05, 0.06, 0.08},
		LineWidth:  1.5,
		Fade:       style.FadeParams{Near: 100, Far: 400, FadeColor: contour.RGB{0.05, 0.06, 0.08}},
		Sun:        lighting.DefaultSun(),
	}
}

func (o Options) validate() error {
	switch {
	case o.Width <= 0 || o.Height <= 0:
		return fmt.Errorf("%w: size %dx%d", ErrInvalidOptions, o.Width, o.Height)
	case !(o.LineWidth > 0):
		return fmt.Errorf("%w: line width %v", ErrInvalidOptions, o.LineWidth)
	}
	return nil
}

// Render draws grid seen from above, with +Z pointing down the image, and
// the given contour levels on top. The grid is scaled uniformly to fit.
func Render(grid *terrain.Grid, levels contour.Levels, opts Options) (*image.RGBA, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if grid == nil || len(grid.Vertices) == 0 {
		return nil, fmt.Errorf("%w: empty grid", ErrInvalidOptions)
	}

	dst := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(toRGBA(opts.Background)), image.Point{}, draw.Src)

	proj := newProjection(grid.Bounds, opts.Width, opts.Height)
	shapes := newBuckets()

	if opts.Style.FillsSurface() {
		sun := opts.Sun
		if sun == (lighting.Sun{}) {
			sun = lighting.DefaultSun()
		}
		addSurface(shapes, grid, proj, sun)
	}
	shapes.paint(dst)

	lines := newBuckets()
	addLines(lines, levels, proj, opts)
	lines.paint(dst)

	if opts.Legend {
		drawLegend(dst, levels, opts)
	}

	logger.Debug("raster rendered",
		zap.Int("width", opts.Width),
		zap.Int("height", opts.Height),
		zap.Stringer("style", opts.Style),
		zap.Int("fill_buckets", len(shapes.polys)),
		zap.Int("line_buckets", len(lines.polys)),
	)
	return dst, nil
}

func addSurface(b *buckets, grid *terrain.Grid, proj projection, sun lighting.Sun) {
	minY, maxY := grid.Bounds.Min.Y, grid.Bounds.Max.Y
	vs := grid.Vertices
	for i := 0; i+2 < len(grid.Indices); i += 3 {
		p0, p1, p2 := vs[grid.Indices[i]], vs[grid.Indices[i+1]], vs[grid.Indices[i+2]]

		y := (p0.Y + p1.Y + p2.Y) / 3
		tint := style.HeightFade(y, minY, maxY, highland, lowland)
		normal := p1.Sub(p0).Cross(p2.Sub(p0))
		if normal.Y < 0 {
			normal = normal.Scale(-1)
		}
		shade := sun.Lambert(normal)
		c := contour.RGB{tint[0] * shade, tint[1] * shade, tint[2] * shade}

		b.add(c, []math.Vec2{proj.point(p0), proj.point(p1), proj.point(p2)})
	}
}

func addLines(b *buckets, levels contour.Levels, proj projection, opts Options) {
	half := opts.LineWidth / 2
	for _, h := range levels.Heights() {
		l := levels[h]
		for i := 0; i+1 < len(l.Points); i += 2 {
			c := l.Colors[i]
			if opts.Style.FadesLines() {
				mid := l.Points[i].Lerp(l.Points[i+1], 0.5)
				c = style.Fade(mid, opts.Camera, opts.Fade.Near, opts.Fade.Far, c, opts.Fade.FadeColor)
			}
			b.add(c, strokeQuad(proj.point(l.Points[i]), proj.point(l.Points[i+1]), half))
		}
	}
}

// strokeQuad returns the rectangle covering segment a-b widened by half on
// each side and extended by half past each end. Zero-length segments become
// squares.
func strokeQuad(a, b math.Vec2, half float32) []math.Vec2 {
	dir := b.Sub(a).Normalize()
	if dir.Length() == 0 {
		dir = math.Vec2{X: 1}
	}
	along := dir.Scale(half)
	side := dir.Perp().Scale(half)

	a = a.Sub(along)
	b = b.Add(along)
	return []math.Vec2{a.Add(side), b.Add(side), b.Sub(side), a.Sub(side)}
}

// projection maps world XZ onto pixels.
type projection struct {
	scale   float32
	originX float32
	originZ float32
	offsetX float32
	offsetY float32
}

func newProjection(b terrain.Bounds, w, h int) projection {
	dx := math32.Max(b.Max.X-b.Min.X, 1e-6)
	dz := math32.Max(b.Max.Z-b.Min.Z, 1e-6)
	scale := math32.Min(float32(w)/dx, float32(h)/dz)
	return projection{
		scale:   scale,
		originX: b.Min.X,
		originZ: b.Min.Z,
		offsetX: (float32(w) - dx*scale) / 2,
		offsetY: (float32(h) - dz*scale) / 2,
	}
}

func (p projection) point(v math.Vec3) math.Vec2 {
	return math.Vec2{
		X: p.offsetX + (v.X-p.originX)*p.scale,
		Y: p.offsetY + (v.Z-p.originZ)*p.scale,
	}
}

// buckets groups polygons by quantized colour so each colour is rasterized
// in one pass.
type buckets struct {
	polys map[color.RGBA][][]math.Vec2
}

func newBuckets() *buckets {
	return &buckets{polys: make(map[color.RGBA][][]math.Vec2)}
}

func (b *buckets) add(c contour.RGB, poly []math.Vec2) {
	k := quantize(c)
	b.polys[k] = append(b.polys[k], poly)
}

// paint draws every bucket into dst, reusing one rasterizer. Buckets are
// painted in a fixed order so output is reproducible.
func (b *buckets) paint(dst *image.RGBA) {
	if len(b.polys) == 0 {
		return
	}

	keys := make([]color.RGBA, 0, len(b.polys))
	for k := range b.polys {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return rgbaKey(keys[i]) < rgbaKey(keys[j])
	})

	size := dst.Bounds().Size()
	z := vector.NewRasterizer(size.X, size.Y)
	for _, k := range keys {
		z.Reset(size.X, size.Y)
		for _, poly := range b.polys[k] {
			z.MoveTo(poly[0].X, poly[0].Y)
			for _, p := range poly[1:] {
				z.LineTo(p.X, p.Y)
			}
			z.ClosePath()
		}
		z.Draw(dst, dst.Bounds(), image.NewUniform(k), image.Point{})
	}
}

func rgbaKey(c color.RGBA) uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

func quantize(c contour.RGB) color.RGBA {
	q := func(v float32) uint8 {
		v = round(clamp01(v)*(colorSteps-1)) / (colorSteps - 1)
		return uint8(round(v * 255))
	}
	return color.RGBA{q(c[0]), q(c[1]), q(c[2]), 255}
}

func toRGBA(c contour.RGB) color.RGBA {
	q := func(v float32) uint8 { return uint8(round(clamp01(v) * 255)) }
	return color.RGBA{q(c[0]), q(c[1]), q(c[2]), 255}
}

func round(v float32) float32 {
	return math32.Floor(v + 0.5)
}

func clamp01(v float32) float32 {
	if math32.IsNaN(v) {
		return 0
	}
	return math32.Max(0, math32.Min(1, v))
}
