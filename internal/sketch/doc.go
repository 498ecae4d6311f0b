// Package sketch defines the shared data model for freehand pen input and the
// canvas that collects it.
//
// The types here form the input boundary of the whole system: the drawing
// surface produces Stroke values (ordered Points with optional pressure and a
// per-point timestamp), the Canvas accumulates them behind a lock, and the
// detection engine consumes an immutable snapshot.
//
// # Coordinate System
//
// All coordinates are float64 canvas units with the standard convention:
//   - Origin (0, 0) at top-left
//   - X increases rightward
//   - Y increases downward
//
// Timestamps are milliseconds and increase monotonically within a stroke.
//
// # Thread Safety
//
// Canvas is safe for concurrent use. Its lock is held only long enough to
// append a stroke or copy a snapshot; analysis work always runs on the copy,
// never under the lock, so drawing is never blocked by an in-flight analysis.
//
// # Configuration
//
// DetectionParams carries every threshold the engine uses. Parameters are
// validated once, at construction (Validate or engine construction),
// never per call. LoadParamsFile merges YAML overrides onto the defaults.
package sketch
