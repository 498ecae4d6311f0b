package detect

import (
	"math"

	"github.com/ironsheep/sketch-tools-mcp/internal/sketch"
)

// unknownConfidenceCap bounds the confidence of Unknown classifications: a
// near-miss keeps its best rule score, but always strictly below every
// acceptance threshold so it can never outrank an accepted shape of the same
// kind.
const unknownConfidenceCap = 0.5

// arrowStraightnessFactor relaxes the line straightness threshold when an
// arrow head was found: the head's barbs add path length that the shaft alone
// would not have.
const arrowStraightnessFactor = 0.75

// Classification is the classifier's verdict for one stroke group.
type Classification struct {
	Type       ShapeType
	Confidence float64
	Attributes ShapeAttributes
}

// Classify maps geometry descriptors to a shape type and confidence.
//
// Rules are applied in a fixed order; open paths are resolved before the
// closed-path polygon and ellipse rules, which only mean anything once the
// path loops back on itself:
//
//  1. straight open path        -> Line, or Arrow when one end carries barbs
//  2. closed path, 3 corners    -> Triangle
//  3. closed path, 4 corners    -> Rectangle or Diamond by edge orientation
//  4. circular closed path      -> Circle (ellipses included)
//  5. curved open path          -> Connector candidate
//  6. anything else             -> Unknown, best near-miss score capped low
//
// Confidence combines the distance of the observed descriptors from the
// matched rule's ideal values with fixed weights; every value is in [0, 1].
func Classify(d Descriptors, params sketch.DetectionParams) Classification {
	if d.PointCount < 2 || d.Perimeter == 0 {
		return Classification{Type: ShapeUnknown, Confidence: 0}
	}

	closed := d.IsClosed(params)

	// Rule 1: open, straight -> line or arrow.
	if !closed {
		headAtEnd, hasHead := detectArrowHead(d.Path())
		switch {
		case d.Straightness >= params.StraightnessThreshold && hasHead:
			return arrowClassification(d, headAtEnd)
		case d.Straightness >= params.StraightnessThreshold:
			return Classification{
				Type:       ShapeLine,
				Confidence: clamp01(d.Straightness),
				Attributes: openPathAttributes(d, true),
			}
		case hasHead && d.Straightness >= params.StraightnessThreshold*arrowStraightnessFactor:
			return arrowClassification(d, headAtEnd)
		}
	}

	closedScore := 0.0
	if closed {
		closedScore = 1 - clamp01(d.Closedness/params.ClosednessThreshold)
	}

	// Rule 2: closed with exactly 3 corners -> triangle.
	if closed && len(d.Corners) == 3 {
		return Classification{
			Type:       ShapeTriangle,
			Confidence: clamp01(0.6 + 0.4*closedScore),
			Attributes: ShapeAttributes{Corners: d.Corners},
		}
	}

	// Rule 3: closed with exactly 4 corners -> rectangle or diamond,
	// separated by how the corner-to-corner edges sit relative to the axes.
	if closed && len(d.Corners) == 4 {
		return classifyQuadrilateral(d, params, closedScore)
	}

	// Rule 4: circular closed path with no real corners -> circle. The
	// aspect ratio strengthens the score but is not required; ellipses
	// still classify as circle with distinct semi-axes.
	if d.Circularity >= params.CircularityThreshold && len(d.Corners) <= 2 {
		aspect := 0.0
		if max := math.Max(d.Bounds.Width, d.Bounds.Height); max > 0 {
			aspect = math.Min(d.Bounds.Width, d.Bounds.Height) / max
		}
		return Classification{
			Type:       ShapeCircle,
			Confidence: clamp01(0.8*d.Circularity + 0.2*aspect),
			Attributes: ShapeAttributes{
				Radius:  d.MeanRadius,
				RadiusX: d.Bounds.Width / 2,
				RadiusY: d.Bounds.Height / 2,
			},
		}
	}

	// Rule 5: open but curved, a freehand connector candidate. Endpoint
	// matching decides later whether it actually links two shapes.
	if !closed {
		return Classification{
			Type:       ShapeConnector,
			Confidence: 0.6,
			Attributes: openPathAttributes(d, true),
		}
	}

	// No rule cleared its threshold: keep the best near-miss score so an
	// almost-shape is distinguishable from noise, capped below every pass
	// value.
	best := math.Max(d.Straightness, d.Circularity)
	if closed && len(d.Corners) >= 3 {
		best = math.Max(best, 1-math.Abs(float64(len(d.Corners))-4)/4)
	}
	return Classification{
		Type:       ShapeUnknown,
		Confidence: clamp01(math.Min(best, unknownConfidenceCap)),
	}
}

// classifyQuadrilateral separates rectangles from diamonds by the mean
// deviation of the corner-to-corner edges from the coordinate axes, folded
// into [0, 45] degrees: near 0 means axis-aligned edges (rectangle), near 45
// means a 45-degree rotated square (diamond). When neither ideal lies within
// the configured tolerance the closer one wins with a discounted confidence.
func classifyQuadrilateral(d Descriptors, params sketch.DetectionParams, closedScore float64) Classification {
	dev := meanAxisDeviation(d.Corners)
	rectDev := dev
	diamondDev := 45 - dev

	attrs := ShapeAttributes{Corners: d.Corners}
	score := func(ownDev float64) float64 {
		return clamp01(0.4 + 0.3*closedScore + 0.3*(1-ownDev/45))
	}

	switch {
	case rectDev <= params.AxisAlignTolerance:
		return Classification{Type: ShapeRectangle, Confidence: score(rectDev), Attributes: attrs}
	case diamondDev <= params.AxisAlignTolerance:
		return Classification{Type: ShapeDiamond, Confidence: score(diamondDev), Attributes: attrs}
	case rectDev < diamondDev:
		return Classification{Type: ShapeRectangle, Confidence: 0.8 * score(rectDev), Attributes: attrs}
	default:
		return Classification{Type: ShapeDiamond, Confidence: 0.8 * score(diamondDev), Attributes: attrs}
	}
}

// meanAxisDeviation returns the mean angular deviation of the polygon's edges
// from the nearest coordinate axis, folded into [0, 45] degrees.
func meanAxisDeviation(corners []sketch.Point) float64 {
	if len(corners) < 2 {
		return 0
	}
	var sum float64
	for i := range corners {
		a := corners[i]
		b := corners[(i+1)%len(corners)]
		angle := math.Atan2(b.Y-a.Y, b.X-a.X) * 180 / math.Pi
		m := math.Mod(math.Abs(angle), 90)
		sum += math.Min(m, 90-m)
	}
	return sum / float64(len(corners))
}

func arrowClassification(d Descriptors, headAtEnd bool) Classification {
	attrs := openPathAttributes(d, headAtEnd)
	attrs.HeadAtEnd = headAtEnd
	return Classification{
		Type:       ShapeArrow,
		Confidence: clamp01(d.Straightness * 0.95),
		Attributes: attrs,
	}
}

// openPathAttributes fills the endpoint and direction attributes of an open
// shape. The direction vector points from tail to head; toEnd selects whether
// the head is the path's last point.
func openPathAttributes(d Descriptors, toEnd bool) ShapeAttributes {
	path := d.Path()
	start := path[0]
	end := path[len(path)-1]

	tail, head := start, end
	if !toEnd {
		tail, head = end, start
	}
	dx, dy := head.X-tail.X, head.Y-tail.Y
	if n := math.Hypot(dx, dy); n > 0 {
		dx /= n
		dy /= n
	}
	return ShapeAttributes{
		Start:      &start,
		End:        &end,
		DirectionX: dx,
		DirectionY: dy,
	}
}

// detectArrowHead scans both path ends for an arrow-head pattern: segments
// near the tip that swing 30-150 degrees away from the path's main direction
// (the barbs of a drawn head). It returns whether the head sits at the path's
// last point and whether a head was found at all. When both ends look like
// heads the drawing-time order decides: the point recorded first is the tail.
func detectArrowHead(path []sketch.Point) (headAtEnd, found bool) {
	endBarb := hasBarb(path)
	startBarb := hasBarb(reversePath(path))

	switch {
	case endBarb && !startBarb:
		return true, true
	case startBarb && !endBarb:
		return false, true
	case endBarb && startBarb:
		return true, true
	default:
		return true, false
	}
}

// hasBarb checks the last few segments of the path for a direction swing of
// 30-150 degrees relative to the approach direction at the tip.
func hasBarb(path []sketch.Point) bool {
	n := len(path)
	if n < 5 {
		return false
	}

	tip := path[n-1]
	anchor := path[0]
	if n > 10 {
		anchor = path[n-10]
	}
	mainDir := math.Atan2(tip.Y-anchor.Y, tip.X-anchor.X)

	for i := n - 5; i < n-1; i++ {
		seg := math.Atan2(path[i+1].Y-path[i].Y, path[i+1].X-path[i].X)
		diff := math.Mod(math.Abs(seg-mainDir)*180/math.Pi, 180)
		if diff > 30 && diff < 150 {
			return true
		}
	}
	return false
}

func reversePath(path []sketch.Point) []sketch.Point {
	out := make([]sketch.Point, len(path))
	for i, p := range path {
		out[len(path)-1-i] = p
	}
	return out
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
