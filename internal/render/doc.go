// Package render rasterizes pen strokes for previews and exports.
//
// The renderer draws strokes onto an RGBA canvas with thick Bresenham lines,
// honoring each stroke's hex color and pen width. It also provides the two
// geometric preprocessing helpers the preview layer needs: normalization of a
// sketch into a target viewport and Douglas-Peucker path simplification.
//
// Rendering here is functional, not a drawing surface: it exists so the
// analysis result can be eyeballed next to the ink that produced it, and so
// exports can embed a raster snapshot. Anti-aliasing and stroke beautification
// are out of scope.
package render
