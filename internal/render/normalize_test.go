package render

import (
	"math"
	"testing"

	"github.com/ironsheep/sketch-tools-mcp/internal/sketch"
)

func TestNormalize_FitsViewport(t *testing.T) {
	strokes := []sketch.Stroke{
		testStroke([]sketch.Point{{X: 1000, Y: 1000}, {X: 3000, Y: 2000}}, "#000000", 4),
	}

	out := Normalize(strokes, 800, 600, 40)

	for _, s := range out {
		for _, p := range s.Points {
			if p.X < 40 || p.X > 760 || p.Y < 40 || p.Y > 560 {
				t.Errorf("point (%.1f,%.1f) outside padded viewport", p.X, p.Y)
			}
		}
	}
}

func TestNormalize_PreservesAspectRatio(t *testing.T) {
	// A 200x100 drawing: scaling must be uniform in both axes.
	strokes := []sketch.Stroke{
		testStroke([]sketch.Point{{X: 0, Y: 0}, {X: 200, Y: 100}}, "#000000", 2),
	}

	out := Normalize(strokes, 800, 800, 0)

	p0, p1 := out[0].Points[0], out[0].Points[1]
	w := p1.X - p0.X
	h := p1.Y - p0.Y
	if math.Abs(w/h-2) > 1e-6 {
		t.Errorf("aspect ratio: got %.3f, want 2", w/h)
	}
}

func TestNormalize_ScalesPenWidth(t *testing.T) {
	strokes := []sketch.Stroke{
		testStroke([]sketch.Point{{X: 0, Y: 0}, {X: 100, Y: 100}}, "#000000", 2),
	}

	out := Normalize(strokes, 440, 440, 20)

	// 100-unit drawing into a 400-unit padded viewport: scale factor 4.
	if math.Abs(out[0].Width-8) > 1e-6 {
		t.Errorf("Width: got %.2f, want 8", out[0].Width)
	}
}

func TestNormalize_DegenerateInput(t *testing.T) {
	if out := Normalize(nil, 800, 600, 40); len(out) != 0 {
		t.Errorf("empty input: got %d strokes", len(out))
	}

	// Zero spatial extent: returned unchanged.
	dot := []sketch.Stroke{
		testStroke([]sketch.Point{{X: 5, Y: 5}, {X: 5, Y: 5}}, "#000000", 2),
	}
	out := Normalize(dot, 800, 600, 40)
	if out[0].Points[0].X != 5 {
		t.Error("degenerate stroke should be returned unchanged")
	}
}

func TestSimplify_CollinearCollapse(t *testing.T) {
	pts := []sketch.Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 20, Y: 0}, {X: 30, Y: 0}, {X: 40, Y: 0},
	}

	out := Simplify(pts, 1)

	if len(out) != 2 {
		t.Fatalf("collinear points: got %d, want 2", len(out))
	}
	if out[0] != pts[0] || out[1] != pts[4] {
		t.Error("endpoints must survive simplification")
	}
}

func TestSimplify_KeepsCorners(t *testing.T) {
	pts := []sketch.Point{
		{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 100, Y: 0},
		{X: 100, Y: 50}, {X: 100, Y: 100},
	}

	out := Simplify(pts, 1)

	if len(out) != 3 {
		t.Fatalf("got %d points, want 3 (two endpoints and the corner)", len(out))
	}
	if out[1] != (sketch.Point{X: 100, Y: 0}) {
		t.Errorf("corner: got %+v, want (100,0)", out[1])
	}
}

func TestSimplify_ShortInputUnchanged(t *testing.T) {
	pts := []sketch.Point{{X: 0, Y: 0}, {X: 10, Y: 10}}
	if out := Simplify(pts, 1); len(out) != 2 {
		t.Errorf("got %d points, want 2", len(out))
	}
}
