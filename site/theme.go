package site

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/odvcencio/furry-motion/backend"
)

var (
	colorBlack = colorful.Color{R: 10.0 / 255, G: 10.0 / 255, B: 10.0 / 255}
	colorWhite = colorful.Color{R: 1, G: 1, B: 1}
	colorBlue  = mustHex("#A2D2FF")
	colorGray  = mustHex("#9CA3AF")
	colorCream = mustHex("#F4F1EA")
	colorSlate = mustHex("#6B7280")
	colorInk   = mustHex("#2563EB")
)

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Theme holds the page styles. Ink and Canvas are the foreground and
// background colours the styles are built from.
type Theme struct {
	Base    backend.Style
	Muted   backend.Style
	Accent  backend.Style
	Heading backend.Style
	Select  backend.Style
	Border  backend.Style

	Ink    colorful.Color
	Canvas colorful.Color
	Dark   bool
}

// DefaultTheme is white on near black with the studio blue accent.
func DefaultTheme() Theme {
	t := newTheme(colorWhite, colorBlack, colorGray, colorBlue)
	t.Dark = true
	return t
}

// LightTheme is near black on cream with a deeper blue accent, so links
// stay legible on the pale background.
func LightTheme() Theme {
	t := newTheme(colorBlack, colorCream, colorSlate, colorInk)
	t.Select = t.Base.Foreground(backend.FromColorful(colorBlack)).Background(backend.FromColorful(colorBlue))
	return t
}

func newTheme(ink, canvas, muted, accent colorful.Color) Theme {
	base := backend.DefaultStyle().
		Foreground(backend.FromColorful(ink)).
		Background(backend.FromColorful(canvas))
	t := Theme{
		Base:    base,
		Muted:   base.Foreground(backend.FromColorful(muted)),
		Accent:  base.Foreground(backend.FromColorful(accent)),
		Heading: base.With(backend.AttrBold),
		Select:  base.Foreground(backend.FromColorful(canvas)).Background(backend.FromColorful(accent)),
		Ink:     ink,
		Canvas:  canvas,
	}
	t.Border = base.Foreground(backend.FromColorful(t.fade(ink, 0.2)))
	return t
}

// fade composites c at opacity over the page background.
func (t Theme) fade(c colorful.Color, opacity float64) colorful.Color {
	return t.Canvas.BlendRgb(c, clampUnit(opacity)).Clamped()
}

// desaturate moves c toward grey; amount 1 removes all chroma.
func desaturate(c colorful.Color, amount float64) colorful.Color {
	h, chroma, l := c.Hcl()
	return colorful.Hcl(h, chroma*(1-clampUnit(amount)), l).Clamped()
}

func clampUnit(v float64) float64 {
	switch {
	case v != v, v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
