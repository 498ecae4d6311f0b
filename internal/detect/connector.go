package detect

import (
	"math"

	"github.com/google/uuid"
	"github.com/ironsheep/sketch-tools-mcp/internal/sketch"
)

// DetectConnectors matches the endpoints of line-, arrow- and freehand
// connector-classified shapes against the other shapes' boundaries and builds
// the connector graph.
//
// An endpoint matches a shape when it falls inside that shape's bounding box
// expanded by the connector margin. An endpoint matching several shapes picks
// the one whose bounding-box center is nearest; an endpoint matching none
// leaves that side of the connector unset. A line whose endpoints both match
// nothing stays a standalone shape and produces no connector at all.
//
// For arrows the connector is directed: the end carrying the detected head is
// the target. Tapering ambiguity was already resolved during classification
// by drawing order (the point recorded first is the tail).
func DetectConnectors(shapes []DetectedShape, params sketch.DetectionParams) []Connector {
	var connectors []Connector

	for _, shape := range shapes {
		if !shape.Type.IsEdge() {
			continue
		}
		start := shape.Attributes.Start
		end := shape.Attributes.End
		if start == nil || end == nil {
			continue
		}

		tail, head := *start, *end
		if shape.Type == ShapeArrow && !shape.Attributes.HeadAtEnd {
			tail, head = head, tail
		}

		sourceID := matchEndpoint(tail, shape.ID, shapes, params.ConnectorMargin)
		targetID := matchEndpoint(head, shape.ID, shapes, params.ConnectorMargin)
		if sourceID == "" && targetID == "" {
			continue
		}

		connectors = append(connectors, Connector{
			ID:       uuid.NewString(),
			ShapeID:  shape.ID,
			SourceID: sourceID,
			TargetID: targetID,
			Directed: shape.Type == ShapeArrow,
		})
	}
	return connectors
}

// matchEndpoint returns the id of the shape whose expanded bounding box
// contains the point, preferring the nearest box center when several match.
// Edge-like shapes never match; they cannot be connector targets.
func matchEndpoint(p sketch.Point, ownID string, shapes []DetectedShape, margin float64) string {
	bestID := ""
	bestDist := math.MaxFloat64

	for _, s := range shapes {
		if s.ID == ownID || s.Type.IsEdge() {
			continue
		}
		if !s.Bounds.Expanded(margin).Contains(p) {
			continue
		}
		if dist := p.DistanceTo(s.Bounds.Center()); dist < bestDist {
			bestDist = dist
			bestID = s.ID
		}
	}
	return bestID
}
