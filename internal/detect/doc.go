// Package detect turns freehand pen strokes into typed geometric shapes and a
// connector graph.
//
// This is the analytical core of the system: it consumes an immutable stroke
// snapshot and produces the ProcessingResult consumed by the preview and
// export layers.
//
// # Pipeline
//
// Data flows strictly forward through five stages:
//
//  1. Grouping: strokes are partitioned into candidate shape groups by
//     spatial proximity (expanded bounding-box overlap) and temporal
//     proximity (drawn within the merge window), combined transitively via
//     union-find.
//  2. Geometry: each group's strokes are consolidated into one polyline and
//     metric descriptors are computed: bounding box, perimeter, enclosed
//     area, circularity, straightness, closedness, corner list.
//  3. Classification: descriptors map to a shape type and confidence through
//     a fixed-order rule list (open paths are resolved before closed-path
//     polygon/ellipse distinctions).
//  4. Connectors: endpoints of line- and arrow-classified groups are matched
//     against other shapes' expanded bounding boxes to infer directed edges.
//  5. Assembly: shapes, connectors, carried-through text regions, a diagram
//     type heuristic, and an overall confidence form the result.
//
// # Confidence Scores
//
// Every classification carries a confidence in [0, 1]:
//   - 1.0 = descriptors match the rule's ideal values exactly
//   - Values below a rule's acceptance threshold never classify as that type
//   - Unknown shapes keep the best near-miss score, capped at 0.5, so an
//     almost-rectangle is distinguishable from pure scribble
//
// # Determinism and Error Handling
//
// Analysis is pure and deterministic: the same strokes and parameters always
// yield the same shapes in the same order with the same confidences.
// Degenerate input never aborts an analysis: under-sized strokes are dropped
// before grouping, degenerate groups classify as Unknown with confidence 0,
// and every ratio whose denominator would be zero is defined as 0.
//
// # Concurrency
//
// An Engine runs at most one analysis at a time; a second Analyze call while
// one is in flight fails with ErrBusy. The computation is CPU-bound and
// bounded, so there is no cancellation support.
package detect
