// Package export generates draw.io (mxGraph XML) documents from detection
// results.
//
// The exporter converts detected shapes into diagram nodes, detected
// connectors into diagram edges, and attaches recognized text regions as node
// labels. The output is compatible with draw.io / diagrams.net and can be
// opened or imported there directly.
//
// # Document Structure
//
// A generated document follows the standard mxGraph layout:
//
//	mxfile > diagram > mxGraphModel > root > mxCell*
//
// The root always contains the two mandatory parent cells with ids "0" and
// "1"; every node and edge cell is parented to "1". Shape cells carry an
// mxGeometry child with absolute coordinates, edge cells carry a relative
// geometry and reference their endpoint cells by id.
//
// # Node Sizing
//
// Hand-drawn shapes can be arbitrarily small. Exported nodes are clamped to a
// minimum of 80x40 so labels stay legible in the editor.
//
// # Labels
//
// A text region labels a shape when its center falls inside the shape's
// bounds expanded by a fixed margin. Multiple matching regions are joined
// with newlines.
package export
