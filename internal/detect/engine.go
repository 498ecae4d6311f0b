package detect

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/ironsheep/sketch-tools-mcp/internal/sketch"
)

// ErrBusy is returned by Analyze when another analysis is already in flight.
// The computation is CPU-bound and deterministic, so overlapping runs buy
// nothing; callers retry once the current run finishes.
var ErrBusy = errors.New("analysis already in progress")

// Engine runs the detection pipeline with a fixed parameter set.
//
// Parameters are validated once, in NewEngine, and never change afterwards;
// the analysis path itself is pure. At most one analysis runs at a time.
type Engine struct {
	params sketch.DetectionParams

	mu   sync.Mutex
	busy bool
}

// NewEngine creates an engine with the given parameters. Invalid parameters
// are rejected here, never mid-analysis.
func NewEngine(params sketch.DetectionParams) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid detection params: %w", err)
	}
	return &Engine{params: params}, nil
}

// Params returns the engine's parameter set.
func (e *Engine) Params() sketch.DetectionParams {
	return e.params
}

// Analyze runs the full pipeline over a stroke snapshot and returns the
// assembled result.
//
// The strokes are treated as immutable input; the engine never mutates them.
// Text regions from the OCR collaborator are carried into the result
// untouched and may be nil. Degenerate input is never an error: zero usable
// strokes yield an empty result with confidence 0, and one bad group
// classifies as Unknown without aborting the rest.
//
// A second call while an analysis is in flight returns ErrBusy.
func (e *Engine) Analyze(strokes []sketch.Stroke, text []sketch.TextRegion) (*ProcessingResult, error) {
	if err := e.begin(); err != nil {
		return nil, err
	}
	defer e.end()

	groups := GroupStrokes(strokes, e.params)

	shapes := make([]DetectedShape, 0, len(groups))
	for _, g := range groups {
		desc := AnalyzeGroup(g, e.params)
		cls := Classify(desc, e.params)
		shapes = append(shapes, DetectedShape{
			ID:         uuid.NewString(),
			Type:       cls.Type,
			Bounds:     desc.Bounds,
			Confidence: cls.Confidence,
			StrokeIDs:  g.StrokeIDs(),
			Attributes: cls.Attributes,
		})
	}

	connectors := DetectConnectors(shapes, e.params)
	return assembleResult(shapes, connectors, text), nil
}

func (e *Engine) begin() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.busy {
		return ErrBusy
	}
	e.busy = true
	return nil
}

func (e *Engine) end() {
	e.mu.Lock()
	e.busy = false
	e.mu.Unlock()
}

// assembleResult aggregates shapes and connectors into the final result,
// attaching the diagram-type suggestion and the overall confidence.
func assembleResult(shapes []DetectedShape, connectors []Connector, text []sketch.TextRegion) *ProcessingResult {
	var confSum float64
	for _, s := range shapes {
		confSum += s.Confidence
	}
	confidence := 0.0
	if len(shapes) > 0 {
		confidence = confSum / float64(len(shapes))
	}

	return &ProcessingResult{
		Shapes:               shapes,
		Connectors:           connectors,
		TextRegions:          text,
		SuggestedDiagramType: suggestDiagramType(shapes, connectors),
		Confidence:           confidence,
	}
}

// suggestDiagramType derives a diagram label from the shape and connector
// mix: connector-heavy sketches read as flowcharts, ellipse-heavy sketches
// with few connectors as concept maps, everything else as a generic diagram.
func suggestDiagramType(shapes []DetectedShape, connectors []Connector) string {
	var nodes, circles int
	for _, s := range shapes {
		if s.Type.IsEdge() {
			continue
		}
		nodes++
		if s.Type == ShapeCircle {
			circles++
		}
	}
	if nodes == 0 {
		return DiagramGeneric
	}

	switch {
	case len(connectors) > 0 && 2*len(connectors) >= nodes:
		return DiagramFlowchart
	case 2*circles > nodes && len(connectors) < circles:
		return DiagramConceptMap
	default:
		return DiagramGeneric
	}
}
