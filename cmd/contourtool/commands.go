package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/Faultbox/isoterrain/internal/config"
	"github.com/Faultbox/isoterrain/internal/engine/debug"
	"github.com/Faultbox/isoterrain/internal/engine/raster"
	"github.com/Faultbox/isoterrain/internal/engine/style"
	"github.com/Faultbox/isoterrain/pkg/math"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// levelReport summarizes one contour level.
type levelReport struct {
	Height   float32 `json:"height"`
	Segments int     `json:"segments"`
}

// report is the stats summary. It describes the terrain, it does not
// serialize it.
type report struct {
	Seed         float64       `json:"seed"`
	Noise        string        `json:"noise"`
	Size         float64       `json:"size"`
	Segments     int           `json:"segments"`
	Vertices     int           `json:"vertices"`
	Triangles    int           `json:"triangles"`
	MinY         float32       `json:"min_y"`
	MaxY         float32       `json:"max_y"`
	Floor        float32       `json:"floor"`
	Interval     float32       `json:"interval"`
	SegmentCount int           `json:"segment_count"`
	Levels       []levelReport `json:"levels"`
	SynthMS      float64       `json:"synth_ms"`
	ExtractMS    float64       `json:"extract_ms"`
}

func newReport(r *result) report {
	p := r.cfg.Terrain.Parameters
	rep := report{
		Seed:         p.Seed,
		Noise:        string(r.cfg.Terrain.Noise),
		Size:         p.Size,
		Segments:     p.Segments,
		Vertices:     len(r.grid.Vertices),
		Triangles:    r.grid.TriangleCount(),
		MinY:         r.grid.Bounds.Min.Y,
		MaxY:         r.grid.Bounds.Max.Y,
		Floor:        r.floor,
		Interval:     r.cfg.Contours.Interval,
		SegmentCount: r.levels.SegmentCount(),
		Levels:       []levelReport{},
		SynthMS:      float64(r.synthTook.Microseconds()) / 1000,
		ExtractMS:    float64(r.extractTook.Microseconds()) / 1000,
	}
	for _, h := range r.levels.Heights() {
		rep.Levels = append(rep.Levels, levelReport{Height: h, Segments: r.levels[h].SegmentCount()})
	}
	return rep
}

func cmdStats(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	asJSON := fs.Bool("json", false, "Print the summary as JSON")
	o := addCommonFlags(fs)

	r, err := parse(fs, o, args)
	if err != nil {
		return err
	}
	rep := newReport(r)

	if *asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	fmt.Fprintf(w, "Seed:      %g (%s)\n", rep.Seed, rep.Noise)
	fmt.Fprintf(w, "Grid:      %gx%g, %d segments\n", rep.Size, rep.Size, rep.Segments)
	fmt.Fprintf(w, "Vertices:  %d\n", rep.Vertices)
	fmt.Fprintf(w, "Triangles: %d\n", rep.Triangles)
	fmt.Fprintf(w, "Height:    %.2f .. %.2f (floor %.2f)\n", rep.MinY, rep.MaxY, rep.Floor)
	fmt.Fprintf(w, "Contours:  %d levels every %g, %d segments\n", len(rep.Levels), rep.Interval, rep.SegmentCount)
	fmt.Fprintf(w, "Timing:    synth %.2fms, extract %.2fms\n", rep.SynthMS, rep.ExtractMS)
	return nil
}

func cmdLevels(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("levels", flag.ContinueOnError)
	o := addCommonFlags(fs)

	r, err := parse(fs, o, args)
	if err != nil {
		return err
	}

	for _, h := range r.levels.Heights() {
		fmt.Fprintf(w, "%10.3f  %d\n", h, r.levels[h].SegmentCount())
	}
	fmt.Fprintf(w, "\nTotal: %d levels, %d segments\n", len(r.levels), r.levels.SegmentCount())
	return nil
}

func cmdRender(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	output := fs.String("o", "", "Output PNG path (default: timestamped file in the screenshot dir)")
	width := fs.Int("width", 1024, "Image width")
	height := fs.Int("height", 1024, "Image height")
	styleName := fs.String("style", "", "Render style: filled, lines, fading")
	legend := fs.Bool("legend", false, "Draw a legend")
	camX := fs.Float64("cam-x", 0, "Fade camera x")
	camY := fs.Float64("cam-y", 0, "Fade camera y (default: above the peak)")
	camZ := fs.Float64("cam-z", 0, "Fade camera z")
	o := addCommonFlags(fs)

	r, err := parse(fs, o, args)
	if err != nil {
		return err
	}

	opts := raster.DefaultOptions()
	opts.Width, opts.Height = *width, *height
	opts.Style = r.cfg.Render.Style
	if *styleName != "" {
		if opts.Style, err = style.ParseStyle(*styleName); err != nil {
			return err
		}
	}
	opts.Background = r.cfg.Render.Background
	opts.LineWidth = r.cfg.Render.LineWidth
	opts.Fade = r.cfg.FadeParams()
	opts.Legend = *legend
	opts.Camera = math.Vec3{X: float32(*camX), Y: float32(*camY), Z: float32(*camZ)}
	if *camY == 0 {
		opts.Camera.Y = r.grid.Bounds.Max.Y + float32(r.cfg.Terrain.Size)/2
	}

	img, err := raster.Render(r.grid, r.levels, opts)
	if err != nil {
		return err
	}

	path := *output
	if path == "" {
		path, err = debug.NewScreenshotCapture(r.cfg.Render.ScreenshotDir, "contour").CaptureFromImage(img)
	} else {
		err = debug.SavePNG(img, path)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Wrote %s (%dx%d, %s, %d levels)\n", path, opts.Width, opts.Height, opts.Style, len(r.levels))
	return nil
}

var errNoPoint = errors.New("probe: -x and -z are required")

func cmdProbe(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("probe", flag.ContinueOnError)
	var x, z float64
	var haveX, haveZ bool
	fs.Func("x", "World x", func(s string) (err error) {
		_, err = fmt.Sscan(s, &x)
		haveX = err == nil
		return err
	})
	fs.Func("z", "World z", func(s string) (err error) {
		_, err = fmt.Sscan(s, &z)
		haveZ = err == nil
		return err
	})
	o := addCommonFlags(fs)

	r, err := parse(fs, o, args)
	if err != nil {
		return err
	}
	if !haveX || !haveZ {
		return errNoPoint
	}

	h, ok := r.grid.HeightAt(float32(x), float32(z))
	if !ok {
		return fmt.Errorf("probe: (%g, %g) is outside the grid", x, z)
	}

	fmt.Fprintf(w, "Height at (%g, %g): %.3f\n", x, z, h)
	if h <= r.floor {
		fmt.Fprintln(w, "On the height floor")
	}
	return nil
}

func cmdConfig(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	out := fs.String("o", "", "Output path (defaults to the user config directory)")
	o := addCommonFlags(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := o.load()
	if err != nil {
		return err
	}

	path := *out
	if path == "" {
		path = config.DefaultPath()
	}
	if err := cfg.SaveTo(path); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	fmt.Fprintf(w, "Wrote %s\n", path)
	return nil
}
