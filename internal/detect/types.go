package detect

import (
	"encoding/json"
	"fmt"

	"github.com/ironsheep/sketch-tools-mcp/internal/sketch"
)

// ShapeType is the closed set of geometric primitives the classifier can
// produce. Downstream consumers switch over it exhaustively; there are no
// free-form string comparisons anywhere in the pipeline.
type ShapeType int

const (
	ShapeUnknown ShapeType = iota
	ShapeRectangle
	ShapeCircle
	ShapeDiamond
	ShapeTriangle
	ShapeLine
	ShapeArrow
	ShapeConnector
)

var shapeTypeNames = map[ShapeType]string{
	ShapeUnknown:   "unknown",
	ShapeRectangle: "rectangle",
	ShapeCircle:    "circle",
	ShapeDiamond:   "diamond",
	ShapeTriangle:  "triangle",
	ShapeLine:      "line",
	ShapeArrow:     "arrow",
	ShapeConnector: "connector",
}

// String returns the lowercase wire name of the shape type.
func (t ShapeType) String() string {
	if name, ok := shapeTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// IsEdge reports whether the type represents a stroke that can act as a
// diagram edge rather than a node.
func (t ShapeType) IsEdge() bool {
	return t == ShapeLine || t == ShapeArrow || t == ShapeConnector
}

// MarshalJSON encodes the type as its lowercase name, matching the wire
// format the drawing surface and exporter speak.
func (t ShapeType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes a lowercase shape type name.
func (t *ShapeType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for typ, n := range shapeTypeNames {
		if n == name {
			*t = typ
			return nil
		}
	}
	return fmt.Errorf("unknown shape type %q", name)
}

// ShapeAttributes carries the type-specific measurements of a detected shape.
// Fields are populated only where meaningful: Radius/RadiusX/RadiusY for
// circles, Corners for polygonal types, Start/End/Direction for open paths.
type ShapeAttributes struct {
	// Radius is the mean radius for circles (average of the two semi-axes).
	Radius float64 `json:"radius,omitempty"`

	// RadiusX and RadiusY are the bounding-box semi-axes; they differ for
	// ellipses, which still classify as circle.
	RadiusX float64 `json:"radius_x,omitempty"`
	RadiusY float64 `json:"radius_y,omitempty"`

	// Corners is the ordered corner point list for polygonal types.
	Corners []sketch.Point `json:"corners,omitempty"`

	// Start and End are the path endpoints of open shapes, in drawing order.
	Start *sketch.Point `json:"start,omitempty"`
	End   *sketch.Point `json:"end,omitempty"`

	// DirectionX/DirectionY is the unit direction vector of a line or
	// arrow, pointing from tail to head.
	DirectionX float64 `json:"direction_x,omitempty"`
	DirectionY float64 `json:"direction_y,omitempty"`

	// HeadAtEnd reports, for arrows, whether the arrow head sits at the
	// path's last point (true) or first point (false).
	HeadAtEnd bool `json:"head_at_end,omitempty"`
}

// DetectedShape is one classified stroke group.
type DetectedShape struct {
	ID         string             `json:"id"`
	Type       ShapeType          `json:"shape_type"`
	Bounds     sketch.BoundingBox `json:"bounds"`
	Confidence float64            `json:"confidence"`
	StrokeIDs  []string           `json:"stroke_ids"`
	Attributes ShapeAttributes    `json:"properties"`
}

// Connector is an inferred edge between two shapes, backed by a line- or
// arrow-classified group. SourceID or TargetID is empty when that endpoint
// matched no shape (a free floating end).
type Connector struct {
	ID       string `json:"id"`
	ShapeID  string `json:"shape_id"`
	SourceID string `json:"source_id,omitempty"`
	TargetID string `json:"target_id,omitempty"`
	Directed bool   `json:"directed"`
}

// Diagram type labels suggested by the result assembler.
const (
	DiagramFlowchart  = "flowchart"
	DiagramConceptMap = "concept_map"
	DiagramGeneric    = "diagram"
)

// ProcessingResult is the complete output of one analysis call.
type ProcessingResult struct {
	// Shapes lists every detected shape, including lines and arrows that
	// also back a connector, in group order.
	Shapes []DetectedShape `json:"shapes"`

	// Connectors lists the inferred edges between shapes.
	Connectors []Connector `json:"connectors"`

	// TextRegions is carried through from the OCR collaborator untouched.
	TextRegions []sketch.TextRegion `json:"text_regions"`

	// SuggestedDiagramType is a heuristic label derived from the shape and
	// connector mix.
	SuggestedDiagramType string `json:"suggested_diagram_type"`

	// Confidence is the arithmetic mean of the shape confidences, 0 when no
	// shapes were detected.
	Confidence float64 `json:"confidence"`
}
