package sketch

import (
	"sync"
)

// Canvas is the live stroke collection shared between the drawing surface and
// the analysis pipeline.
//
// All methods are safe for concurrent use. The internal lock is scoped to the
// mutation or copy itself; callers run detection on the snapshot returned by
// Snapshot, never on the live slice, so stroke input is never blocked by
// analysis work.
type Canvas struct {
	mu      sync.Mutex
	strokes []Stroke
}

// NewCanvas creates an empty canvas.
func NewCanvas() *Canvas {
	return &Canvas{}
}

// Add appends a stroke to the canvas.
func (c *Canvas) Add(s Stroke) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.strokes = append(c.strokes, s)
}

// AddAll appends several strokes in order.
func (c *Canvas) AddAll(strokes []Stroke) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.strokes = append(c.strokes, strokes...)
}

// Clear removes every stroke.
func (c *Canvas) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.strokes = nil
}

// Len returns the current stroke count.
func (c *Canvas) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.strokes)
}

// Snapshot returns a copy of the current strokes in insertion order. The copy
// shares point slices with the canvas; points are immutable once recorded, so
// this is safe and avoids duplicating every coordinate.
func (c *Canvas) Snapshot() []Stroke {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Stroke, len(c.strokes))
	copy(out, c.strokes)
	return out
}

// Replace swaps the canvas content for the given strokes, used when restoring
// a backup.
func (c *Canvas) Replace(strokes []Stroke) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.strokes = make([]Stroke, len(strokes))
	copy(c.strokes, strokes)
}
