package render

import (
	"github.com/ironsheep/sketch-tools-mcp/internal/sketch"
)

// Normalize scales and centers the strokes to fit a target viewport with the
// given padding on every side, preserving aspect ratio. Pen widths scale with
// the geometry. Strokes that have no spatial extent (or an empty input) are
// returned unchanged.
func Normalize(strokes []sketch.Stroke, targetWidth, targetHeight, padding float64) []sketch.Stroke {
	if len(strokes) == 0 {
		return strokes
	}

	var all []sketch.Point
	for _, s := range strokes {
		all = append(all, s.Points...)
	}
	box := sketch.BoundsOf(all)
	if box.Width == 0 || box.Height == 0 {
		return strokes
	}

	scaleX := (targetWidth - 2*padding) / box.Width
	scaleY := (targetHeight - 2*padding) / box.Height
	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}
	offsetX := padding + (targetWidth-2*padding-box.Width*scale)/2
	offsetY := padding + (targetHeight-2*padding-box.Height*scale)/2

	out := make([]sketch.Stroke, len(strokes))
	for i, s := range strokes {
		points := make([]sketch.Point, len(s.Points))
		for j, p := range s.Points {
			points[j] = sketch.Point{
				X:         (p.X-box.X)*scale + offsetX,
				Y:         (p.Y-box.Y)*scale + offsetY,
				Pressure:  p.Pressure,
				Timestamp: p.Timestamp,
			}
		}
		out[i] = sketch.Stroke{
			ID:     s.ID,
			Points: points,
			Color:  s.Color,
			Width:  s.Width * scale,
			Tool:   s.Tool,
		}
	}
	return out
}

// Simplify reduces a point path with the Douglas-Peucker algorithm, keeping
// every vertex farther than epsilon from the simplified line. The first and
// last points always survive.
func Simplify(points []sketch.Point, epsilon float64) []sketch.Point {
	if len(points) < 3 {
		return points
	}
	result := douglasPeucker(points, epsilon)
	if len(result) < 2 {
		result = []sketch.Point{points[0], points[len(points)-1]}
	}
	return result
}

func douglasPeucker(points []sketch.Point, epsilon float64) []sketch.Point {
	if len(points) < 3 {
		return points
	}

	start := points[0]
	end := points[len(points)-1]

	maxDist := 0.0
	maxIndex := 0
	for i := 1; i < len(points)-1; i++ {
		if d := perpendicularDistance(points[i], start, end); d > maxDist {
			maxDist = d
			maxIndex = i
		}
	}

	if maxDist <= epsilon {
		return []sketch.Point{start, end}
	}

	left := douglasPeucker(points[:maxIndex+1], epsilon)
	right := douglasPeucker(points[maxIndex:], epsilon)
	return append(left[:len(left)-1], right...)
}

// perpendicularDistance returns the distance from p to the segment a-b,
// clamped to the segment's extent.
func perpendicularDistance(p, a, b sketch.Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return p.DistanceTo(a)
	}

	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	nearest := sketch.Point{X: a.X + t*dx, Y: a.Y + t*dy}
	return p.DistanceTo(nearest)
}
