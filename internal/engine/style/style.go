// Package style holds the render style variant and the colour fades the
// presentation layer applies to contour lines.
package style

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownStyle is returned when a style name cannot be parsed.
var ErrUnknownStyle = errors.New("unknown style")

// Style selects how terrain and contours are drawn.
type Style int

const (
	// FilledMountain draws the shaded surface with contour lines on top.
	FilledMountain Style = iota
	// LinesOnly draws contour lines in their base colour.
	LinesOnly
	// FadingLines draws contour lines faded by distance to the camera.
	FadingLines

	styleCount
)

var styleNames = [styleCount]string{
	FilledMountain: "filled",
	LinesOnly:      "lines",
	FadingLines:    "fading",
}

// Aliases accepted by ParseStyle in addition to the canonical names.
var styleAliases = map[string]Style{
	"filled-mountain": FilledMountain,
	"mountain":        FilledMountain,
	"lines-only":      LinesOnly,
	"fading-lines":    FadingLines,
	"fade":            FadingLines,
}

// ParseStyle parses a style name, case-insensitively.
func ParseStyle(s string) (Style, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range styleNames {
		if n == name {
			return Style(i), nil
		}
	}
	if st, ok := styleAliases[name]; ok {
		return st, nil
	}
	return FilledMountain, fmt.Errorf("%w: %q", ErrUnknownStyle, s)
}

func (s Style) String() string {
	if s < 0 || s >= styleCount {
		return fmt.Sprintf("Style(%d)", int(s))
	}
	return styleNames[s]
}

// Next returns the following style, wrapping around.
func (s Style) Next() Style {
	return (s + 1) % styleCount
}

// FillsSurface reports whether the terrain surface is drawn.
func (s Style) FillsSurface() bool {
	return s == FilledMountain
}

// FadesLines reports whether line colours are faded per frame.
func (s Style) FadesLines() bool {
	return s == FadingLines
}

// MarshalText implements encoding.TextMarshaler.
func (s Style) MarshalText() ([]byte, error) {
	if s < 0 || s >= styleCount {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStyle, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Style) UnmarshalText(text []byte) error {
	st, err := ParseStyle(string(text))
	if err != nil {
		return err
	}
	*s = st
	return nil
}
