package sketch

import "math"

// Point is a single sampled pen position within a stroke.
//
// Pressure is optional (nil when the input device reports none) and lies in
// [0, 1] when present. Timestamp is milliseconds since an arbitrary epoch and
// increases monotonically within one stroke. Points are never mutated after
// recording.
type Point struct {
	X         float64  `json:"x"`
	Y         float64  `json:"y"`
	Pressure  *float64 `json:"pressure,omitempty"`
	Timestamp uint64   `json:"timestamp"`
}

// DistanceTo returns the Euclidean distance to another point.
func (p Point) DistanceTo(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Stroke is one continuous pen-down-to-pen-up input path as produced by the
// drawing surface. The engine treats strokes as read-only values.
type Stroke struct {
	ID     string  `json:"id"`
	Points []Point `json:"points"`
	Color  string  `json:"color"`
	Width  float64 `json:"width"`
	Tool   string  `json:"tool"`
}

// StartTime returns the timestamp of the stroke's first point, 0 for an empty
// stroke.
func (s Stroke) StartTime() uint64 {
	if len(s.Points) == 0 {
		return 0
	}
	return s.Points[0].Timestamp
}

// EndTime returns the timestamp of the stroke's last point, 0 for an empty
// stroke.
func (s Stroke) EndTime() uint64 {
	if len(s.Points) == 0 {
		return 0
	}
	return s.Points[len(s.Points)-1].Timestamp
}

// BoundingBox is an axis-aligned rectangle in canvas coordinates with an
// optional rotation angle in degrees (0 for all axis-aligned shapes).
type BoundingBox struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation"`
}

// BoundsOf computes the bounding box of a point slice. The zero BoundingBox is
// returned for an empty slice.
func BoundsOf(points []Point) BoundingBox {
	if len(points) == 0 {
		return BoundingBox{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := points[0].X, points[0].Y
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return BoundingBox{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Center returns the center point of the box.
func (b BoundingBox) Center() Point {
	return Point{X: b.X + b.Width/2, Y: b.Y + b.Height/2}
}

// Expanded returns the box grown by margin on every side. A negative margin
// shrinks the box; width/height never go below zero.
func (b BoundingBox) Expanded(margin float64) BoundingBox {
	w := math.Max(0, b.Width+2*margin)
	h := math.Max(0, b.Height+2*margin)
	return BoundingBox{X: b.X - margin, Y: b.Y - margin, Width: w, Height: h, Rotation: b.Rotation}
}

// Intersects reports whether two boxes overlap (touching edges count).
func (b BoundingBox) Intersects(o BoundingBox) bool {
	return b.X <= o.X+o.Width && o.X <= b.X+b.Width &&
		b.Y <= o.Y+o.Height && o.Y <= b.Y+b.Height
}

// Contains reports whether the point lies inside the box (edges inclusive).
func (b BoundingBox) Contains(p Point) bool {
	return p.X >= b.X && p.X <= b.X+b.Width &&
		p.Y >= b.Y && p.Y <= b.Y+b.Height
}

// Union returns the smallest box covering both boxes.
func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	minX := math.Min(b.X, o.X)
	minY := math.Min(b.Y, o.Y)
	maxX := math.Max(b.X+b.Width, o.X+o.Width)
	maxY := math.Max(b.Y+b.Height, o.Y+o.Height)
	return BoundingBox{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Diagonal returns the length of the box diagonal.
func (b BoundingBox) Diagonal() float64 {
	return math.Sqrt(b.Width*b.Width + b.Height*b.Height)
}

// TextRegion is a block of recognized text with its location. Text regions are
// produced by the OCR collaborator; the detection engine never inspects them,
// it only carries them into the ProcessingResult so the export layer can
// attach labels.
type TextRegion struct {
	ID         string      `json:"id"`
	Text       string      `json:"text"`
	Bounds     BoundingBox `json:"bounds"`
	Confidence float64     `json:"confidence"`
}
