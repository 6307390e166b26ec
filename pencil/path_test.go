package pencil

import (
	"math"
	"strings"
	"testing"
)

func TestPath_Empty(t *testing.T) {
	if got := Path(0); got != nil {
		t.Fatalf("expected no path for zero height, got %v", got)
	}
	if got := SVG(Path(0)); got != "" {
		t.Fatalf("expected empty path data, got %q", got)
	}
}

func TestPath_RejectsUnboundedHeights(t *testing.T) {
	for _, h := range []float64{math.Inf(1), math.Inf(-1), math.NaN(), -5} {
		if got := Path(h); got != nil {
			t.Fatalf("expected no path for height %v, got %d points", h, len(got))
		}
	}

	points := Path(1e12)
	if want := int(MaxPathHeight/Step) + 2; len(points) != want {
		t.Fatalf("expected the path capped at %d points, got %d", want, len(points))
	}
	if last := points[len(points)-1].Y; last <= MaxPathHeight || last > MaxPathHeight+Step {
		t.Fatalf("expected the last sample within a step past the cap, got %v", last)
	}
}

func TestPath_SamplesPastEnd(t *testing.T) {
	points := Path(100)
	// 0, 40, 80, 120, 140 exceeds 100+40.
	if len(points) != 4 {
		t.Fatalf("expected 4 points, got %d", len(points))
	}
	if points[0] != (Point{X: StartX, Y: 0}) {
		t.Fatalf("expected path to start at (40, 0), got %+v", points[0])
	}
	last := points[len(points)-1]
	if last.Y != 120 {
		t.Fatalf("expected last sample at 120, got %v", last.Y)
	}
	if math.Abs(last.X-(40+math.Sin(1.2)*15)) > 1e-12 {
		t.Fatalf("unexpected x %v", last.X)
	}
}

func TestSVG(t *testing.T) {
	d := SVG([]Point{{X: 40, Y: 0}, {X: 45.5, Y: 40}})
	if d != "M 40 0 L 45.5 40" {
		t.Fatalf("unexpected path data %q", d)
	}
	if !strings.HasPrefix(SVG(Path(400)), "M 40 0 L ") {
		t.Fatalf("expected move then line commands")
	}
}

func TestRotation(t *testing.T) {
	want := math.Atan(0.15) * 180 / math.Pi
	if got := Rotation(0); math.Abs(got-want) > 1e-12 {
		t.Fatalf("Rotation(0) = %v, want %v", got, want)
	}
	// The slope vanishes at a quarter period.
	if got := Rotation(math.Pi / 2 / Frequency); math.Abs(got) > 1e-9 {
		t.Fatalf("expected flat tangent, got %v", got)
	}
}

func TestVisible(t *testing.T) {
	points := []Point{{0, 0}, {0, 10}, {0, 30}}
	if got := Visible(points, 0); got != nil {
		t.Fatalf("expected nothing drawn at 0, got %v", got)
	}
	half := Visible(points, 0.5)
	if len(half) != 3 || half[2] != (Point{0, 15}) {
		t.Fatalf("unexpected half path %v", half)
	}
	full := Visible(points, 1)
	if len(full) != 3 || full[2] != points[2] {
		t.Fatalf("unexpected full path %v", full)
	}
	full[0].X = 99
	if points[0].X != 0 {
		t.Fatalf("expected full path to be a copy")
	}
	if got := Length(points); got != 30 {
		t.Fatalf("expected length 30, got %v", got)
	}
}
