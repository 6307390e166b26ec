// Package pencil computes the sinusoidal guide line drawn alongside the page
// and the pose of the pencil tip travelling down it.
package pencil

import (
	"math"
	"strconv"
	"strings"
)

// Shape of the guide line, in document pixels.
const (
	// StartX is the line's horizontal centre; the path begins there at y 0.
	StartX = 40.0
	// Amplitude is how far the line swings either side of StartX.
	Amplitude = 15.0
	// Frequency is the sine frequency per pixel of height.
	Frequency = 0.01
	// Step is the vertical distance between sampled points.
	Step = 40.0
	// MaxPathHeight caps how far down Path samples.
	MaxPathHeight = 1 << 20
)

// Point is a position in document coordinates.
type Point struct {
	X, Y float64
}

// TipX returns the horizontal position of the line at height y.
func TipX(y float64) float64 {
	return StartX + math.Sin(y*Frequency)*Amplitude
}

// Rotation returns the tangent angle of the line at height y, in degrees.
func Rotation(y float64) float64 {
	slope := Amplitude * Frequency * math.Cos(y*Frequency)
	return math.Atan(slope) * 180 / math.Pi
}

// Path samples the line every Step units from the top of the document to
// one step past its end. Heights above MaxPathHeight are sampled only to
// MaxPathHeight. A zero, negative, NaN or infinite height yields no path.
func Path(docHeight float64) []Point {
	if !(docHeight > 0) || math.IsInf(docHeight, 1) {
		return nil
	}
	docHeight = min(docHeight, MaxPathHeight)
	points := make([]Point, 0, int(docHeight/Step)+2)
	points = append(points, Point{X: StartX, Y: 0})
	for y := Step; y <= docHeight+Step; y += Step {
		points = append(points, Point{X: TipX(y), Y: y})
	}
	return points
}

// SVG renders points as path data: a move to the first point followed by
// line segments.
func SVG(points []Point) string {
	if len(points) == 0 {
		return ""
	}
	var b strings.Builder
	for i, p := range points {
		if i == 0 {
			b.WriteString("M ")
		} else {
			b.WriteString(" L ")
		}
		b.WriteString(formatNumber(p.X))
		b.WriteByte(' ')
		b.WriteString(formatNumber(p.Y))
	}
	return b.String()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Length returns the total length of the polyline.
func Length(points []Point) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += distance(points[i-1], points[i])
	}
	return total
}

// Visible returns the prefix of points covering fraction of the total
// length, ending on an interpolated point inside the last segment.
func Visible(points []Point, fraction float64) []Point {
	if len(points) == 0 || !(fraction > 0) {
		return nil
	}
	if fraction >= 1 {
		return append([]Point(nil), points...)
	}
	remaining := Length(points) * fraction
	out := []Point{points[0]}
	for i := 1; i < len(points); i++ {
		seg := distance(points[i-1], points[i])
		if seg >= remaining {
			if seg > 0 {
				t := remaining / seg
				out = append(out, Point{
					X: points[i-1].X + (points[i].X-points[i-1].X)*t,
					Y: points[i-1].Y + (points[i].Y-points[i-1].Y)*t,
				})
			}
			return out
		}
		remaining -= seg
		out = append(out, points[i])
	}
	return out
}

func distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}
