package main

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/isoterrain/pkg/noise"
)

var small = []string{"-segments", "12", "-size", "60", "-max-height", "30", "-interval", "3", "-seed", "4.5"}

func args(extra ...string) []string {
	return append(append([]string{}, small...), extra...)
}

func TestStatsJSON(t *testing.T) {
	var out bytes.Buffer
	if err := cmdStats(args("-json"), &out); err != nil {
		t.Fatalf("stats: %v", err)
	}

	var rep report
	if err := json.Unmarshal(out.Bytes(), &rep); err != nil {
		t.Fatalf("decode report: %v\n%s", err, out.String())
	}

	if rep.Vertices != 13*13 || rep.Triangles != 2*12*12 {
		t.Errorf("vertices/triangles = %d/%d, want 169/288", rep.Vertices, rep.Triangles)
	}
	if rep.Seed != 4.5 || rep.Interval != 3 || rep.Noise != string(noise.KindImproved) {
		t.Errorf("report header = %+v", rep)
	}

	total := 0
	for _, l := range rep.Levels {
		if k := l.Height / 3; k != float32(int(k)) {
			t.Errorf("level %v is not a multiple of 3", l.Height)
		}
		if l.Height <= rep.Floor {
			t.Errorf("level %v at or below floor %v", l.Height, rep.Floor)
		}
		total += l.Segments
	}
	if total != rep.SegmentCount {
		t.Errorf("level segments sum to %d, report says %d", total, rep.SegmentCount)
	}
}

func TestStatsText(t *testing.T) {
	var out bytes.Buffer
	if err := cmdStats(args(), &out); err != nil {
		t.Fatalf("stats: %v", err)
	}
	for _, want := range []string{"Vertices:  169", "Triangles: 288", "Contours:"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output lacks %q:\n%s", want, out.String())
		}
	}
}

func TestLevels(t *testing.T) {
	var out bytes.Buffer
	if err := cmdLevels(args(), &out); err != nil {
		t.Fatalf("levels: %v", err)
	}
	if !strings.Contains(out.String(), "Total:") {
		t.Errorf("output lacks total:\n%s", out.String())
	}
}

func TestRender(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	var out bytes.Buffer
	if err := cmdRender(args("-o", path, "-width", "64", "-height", "48", "-style", "fading", "-legend"), &out); err != nil {
		t.Fatalf("render: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("image size %dx%d, want 64x48", b.Dx(), b.Dy())
	}
	if !strings.Contains(out.String(), "fading") {
		t.Errorf("output %q lacks style", out.String())
	}
}

func TestRenderBadStyle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	if err := cmdRender(args("-o", path, "-style", "watercolour"), &bytes.Buffer{}); err == nil {
		t.Fatal("expected an error for an unknown style")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("output written despite the error")
	}
}

func TestProbe(t *testing.T) {
	var out bytes.Buffer
	if err := cmdProbe(args("-x", "0", "-z", "-10"), &out); err != nil {
		t.Fatalf("probe: %v", err)
	}
	if !strings.Contains(out.String(), "Height at (0, -10)") {
		t.Errorf("output %q", out.String())
	}

	if err := cmdProbe(args("-x", "0"), &bytes.Buffer{}); !errors.Is(err, errNoPoint) {
		t.Errorf("missing -z: err = %v, want errNoPoint", err)
	}
	if err := cmdProbe(args("-x", "500", "-z", "0"), &bytes.Buffer{}); err == nil {
		t.Error("probe outside the grid should fail")
	}
}

func TestUnknownNoise(t *testing.T) {
	err := cmdStats(args("-noise", "fractal"), &bytes.Buffer{})
	if !errors.Is(err, noise.ErrUnknownKind) {
		t.Fatalf("err = %v, want ErrUnknownKind", err)
	}
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "isoterrain.yaml")
	yaml := "terrain:\n  segments: 8\n  size: 40\ncontours:\n  interval: 4\n"
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := cmdStats([]string{"-config", path, "-json"}, &out); err != nil {
		t.Fatalf("stats: %v", err)
	}
	var rep report
	if err := json.Unmarshal(out.Bytes(), &rep); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rep.Vertices != 81 || rep.Interval != 4 {
		t.Errorf("vertices = %d, interval = %v, want 81, 4", rep.Vertices, rep.Interval)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "isoterrain.yaml")
	var out bytes.Buffer
	if err := cmdConfig(args("-o", path, "-noise", "simplex"), &out); err != nil {
		t.Fatalf("config: %v", err)
	}
	if !strings.Contains(out.String(), path) {
		t.Errorf("output %q does not name %s", out.String(), path)
	}

	out.Reset()
	if err := cmdStats([]string{"-config", path, "-json"}, &out); err != nil {
		t.Fatalf("stats: %v", err)
	}
	var rep report
	if err := json.Unmarshal(out.Bytes(), &rep); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rep.Segments != 12 || rep.Seed != 4.5 || rep.Noise != "simplex" || rep.Interval != 3 {
		t.Errorf("report = %+v, want the written settings back", rep)
	}
}
