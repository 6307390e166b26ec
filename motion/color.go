package motion

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/odvcencio/furry-motion/state"
)

// RGBA is a colour with straight alpha.
type RGBA struct {
	colorful.Color
	A float64
}

// ParseColor accepts "#rrggbb", "#rgb", "rgb(r, g, b)" and "rgba(r, g, b, a)".
func ParseColor(s string) (RGBA, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case strings.HasPrefix(s, "#"):
		c, err := colorful.Hex(expandShortHex(s))
		if err != nil {
			return RGBA{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		return RGBA{Color: c, A: 1}, nil
	case strings.HasPrefix(s, "rgba("):
		var r, g, b, a float64
		if _, err := fmt.Sscanf(compact(s), "rgba(%g,%g,%g,%g)", &r, &g, &b, &a); err != nil {
			return RGBA{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		return RGBA{Color: colorful.Color{R: r / 255, G: g / 255, B: b / 255}, A: a}, nil
	case strings.HasPrefix(s, "rgb("):
		var r, g, b float64
		if _, err := fmt.Sscanf(compact(s), "rgb(%g,%g,%g)", &r, &g, &b); err != nil {
			return RGBA{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		return RGBA{Color: colorful.Color{R: r / 255, G: g / 255, B: b / 255}, A: 1}, nil
	}
	return RGBA{}, fmt.Errorf("parse color %q: unsupported format", s)
}

// MustParseColor is ParseColor that panics on malformed input.
func MustParseColor(s string) RGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// String formats the colour as an rgba() expression.
func (c RGBA) String() string {
	r, g, b := c.Clamped().RGB255()
	return fmt.Sprintf("rgba(%d, %d, %d, %g)", r, g, b, c.A)
}

// Over composites c over an opaque background and returns the visible colour.
func (c RGBA) Over(bg colorful.Color) colorful.Color {
	return bg.BlendRgb(c.Color, clamp01(c.A)).Clamped()
}

// MixColor blends colours in Lab space and alpha linearly.
func MixColor(a, b RGBA, t float64) RGBA {
	return RGBA{
		Color: a.Color.BlendLab(b.Color, t).Clamped(),
		A:     a.A + t*(b.A-a.A),
	}
}

// InterpolateColor derives a colour from src using colour strings as outputs.
func InterpolateColor(src state.Readable[float64], in []float64, out []string) (*Derived[RGBA], error) {
	colors := make([]RGBA, len(out))
	for i, s := range out {
		c, err := ParseColor(s)
		if err != nil {
			return nil, fmt.Errorf("interpolate color: %w", err)
		}
		colors[i] = c
	}
	return InterpolateWith(src, in, colors, MixColor)
}

func expandShortHex(s string) string {
	if len(s) != 4 {
		return s
	}
	return string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
}

func compact(s string) string {
	return strings.ReplaceAll(s, " ", "")
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
