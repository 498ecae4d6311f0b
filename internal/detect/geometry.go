package detect

import (
	"math"
	"sort"

	"github.com/ironsheep/sketch-tools-mcp/internal/sketch"
)

// Descriptors are the per-group metric values the classifier decides on.
// They are derived data: recomputed on every analysis call, never persisted.
type Descriptors struct {
	// Bounds is the axis-aligned bounding box over all points.
	Bounds sketch.BoundingBox

	// Perimeter is the total path length (sum of consecutive distances).
	Perimeter float64

	// Area is the enclosed polygon area by the shoelace formula, treating
	// the polyline as closed. It is defined as 0 when the path does not
	// return near its start, where the shoelace value is meaningless.
	Area float64

	// Circularity is the isoperimetric ratio 4*pi*area/perimeter^2: 1 for a
	// perfect circle, lower for elongated or angular shapes, 0 when the
	// perimeter is 0.
	Circularity float64

	// Straightness is the ratio of the first-to-last-point distance to the
	// total path length: 1 for a perfectly straight stroke, near 0 for a
	// closed loop.
	Straightness float64

	// Closedness is the ratio of the first-to-last-point distance to the
	// perimeter. Near 0 means the path returns close to its start.
	Closedness float64

	// Corners is the ordered list of detected corner points.
	Corners []sketch.Point

	// Centroid is the mean of all points.
	Centroid sketch.Point

	// MeanRadius is the average point distance from the centroid.
	MeanRadius float64

	// PointCount is the number of consolidated points.
	PointCount int

	path []sketch.Point
}

// Path returns the consolidated polyline the descriptors were computed from.
func (d Descriptors) Path() []sketch.Point {
	return d.path
}

// IsClosed reports whether the path returns near its start, judged against
// the configured closedness threshold.
func (d Descriptors) IsClosed(params sketch.DetectionParams) bool {
	return d.PointCount >= 3 && d.Closedness <= params.ClosednessThreshold
}

// AnalyzeGroup consolidates a group's strokes into one ordered polyline and
// computes its descriptors.
//
// Strokes are ordered by their first timestamp; points within a stroke keep
// their original order. A degenerate group (fewer than 2 points total) yields
// zero-valued descriptors: every ratio is defined as 0 rather than an error,
// and such groups classify as Unknown downstream.
func AnalyzeGroup(g StrokeGroup, params sketch.DetectionParams) Descriptors {
	path := consolidate(g)
	d := Descriptors{path: path, PointCount: len(path)}
	if len(path) < 2 {
		return d
	}

	d.Bounds = sketch.BoundsOf(path)
	for i := 1; i < len(path); i++ {
		d.Perimeter += path[i-1].DistanceTo(path[i])
	}

	var sumX, sumY float64
	for _, p := range path {
		sumX += p.X
		sumY += p.Y
	}
	n := float64(len(path))
	d.Centroid = sketch.Point{X: sumX / n, Y: sumY / n}
	for _, p := range path {
		d.MeanRadius += p.DistanceTo(d.Centroid)
	}
	d.MeanRadius /= n

	endGap := path[0].DistanceTo(path[len(path)-1])
	if d.Perimeter > 0 {
		d.Straightness = math.Min(1, endGap/d.Perimeter)
		d.Closedness = math.Min(1, endGap/d.Perimeter)
	}

	// Shoelace area and circularity only mean anything once the path loops
	// back on itself.
	if d.Closedness <= params.ClosednessThreshold && len(path) >= 3 {
		d.Area = shoelaceArea(path)
		if d.Perimeter > 0 {
			d.Circularity = math.Min(1, 4*math.Pi*d.Area/(d.Perimeter*d.Perimeter))
		}
	}

	d.Corners = detectCorners(path, d.IsClosed(params), params.CornerAngleThreshold)
	return d
}

// consolidate merges a group's strokes into one polyline, strokes ordered by
// start timestamp and points kept in original order within each stroke.
func consolidate(g StrokeGroup) []sketch.Point {
	strokes := make([]sketch.Stroke, len(g.Strokes))
	copy(strokes, g.Strokes)
	sort.SliceStable(strokes, func(i, j int) bool {
		return strokes[i].StartTime() < strokes[j].StartTime()
	})

	var path []sketch.Point
	for _, s := range strokes {
		path = append(path, s.Points...)
	}
	return path
}

// shoelaceArea computes the absolute polygon area of the polyline treated as
// closed.
func shoelaceArea(path []sketch.Point) float64 {
	var sum float64
	for i := range path {
		j := (i + 1) % len(path)
		sum += path[i].X*path[j].Y - path[j].X*path[i].Y
	}
	return math.Abs(sum / 2)
}

// detectCorners walks the polyline and returns the vertices whose local
// turning angle exceeds angleThreshold degrees.
//
// The turning angle at vertex i is measured between the chords p[i-w]->p[i]
// and p[i]->p[i+w], where the look-ahead w scales with the point count; the
// chords suppress per-sample jitter that a single-segment angle would amplify.
// Closed paths wrap around so the corner where the path end meets its start is
// found too. Runs of neighboring candidates belonging to the same physical
// corner are collapsed to the candidate with the sharpest angle.
func detectCorners(path []sketch.Point, closed bool, angleThreshold float64) []sketch.Point {
	n := len(path)
	if n < 5 {
		return nil
	}

	w := n / 16
	if w < 2 {
		w = 2
	}
	if w > 8 {
		w = 8
	}
	if 2*w >= n {
		return nil
	}

	type candidate struct {
		index int
		angle float64
	}
	var cands []candidate

	lo, hi := w, n-w
	if closed {
		lo, hi = 0, n
	}
	for i := lo; i < hi; i++ {
		prev := path[(i-w+n)%n]
		next := path[(i+w)%n]
		cur := path[i]

		angle := turningAngle(prev, cur, next)
		if angle >= angleThreshold {
			cands = append(cands, candidate{index: i, angle: angle})
		}
	}
	if len(cands) == 0 {
		return nil
	}

	// Collapse runs of candidates within one look-ahead span (or nearly
	// coincident spatially) into the single sharpest vertex.
	collapseTol := 0.05 * sketch.BoundsOf(path).Diagonal()
	var corners []candidate
	best := cands[0]
	for _, c := range cands[1:] {
		sameCorner := c.index-best.index <= w ||
			path[c.index].DistanceTo(path[best.index]) <= collapseTol
		if sameCorner {
			if c.angle > best.angle {
				best = c
			}
			continue
		}
		corners = append(corners, best)
		best = c
	}
	corners = append(corners, best)

	// On a closed path the first and last runs can straddle the wrap point.
	if closed && len(corners) > 1 {
		first, last := corners[0], corners[len(corners)-1]
		wraps := first.index+(n-last.index) <= w ||
			path[first.index].DistanceTo(path[last.index]) <= collapseTol
		if wraps {
			if last.angle > first.angle {
				corners[0] = last
			}
			corners = corners[:len(corners)-1]
		}
	}

	points := make([]sketch.Point, len(corners))
	for i, c := range corners {
		points[i] = path[c.index]
	}
	return points
}

// turningAngle returns the absolute direction change at cur, in degrees.
func turningAngle(prev, cur, next sketch.Point) float64 {
	v1x, v1y := cur.X-prev.X, cur.Y-prev.Y
	v2x, v2y := next.X-cur.X, next.Y-cur.Y
	n1 := math.Hypot(v1x, v1y)
	n2 := math.Hypot(v2x, v2y)
	if n1 == 0 || n2 == 0 {
		return 0
	}
	cos := (v1x*v2x + v1y*v2y) / (n1 * n2)
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi
}
