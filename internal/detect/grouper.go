package detect

import (
	"sort"

	"github.com/ironsheep/sketch-tools-mcp/internal/sketch"
)

// StrokeGroup is a set of strokes judged to form one visual shape. Groups
// partition the (filtered) input: every surviving stroke belongs to exactly
// one group per analysis run.
type StrokeGroup struct {
	Strokes []sketch.Stroke
}

// StrokeIDs returns the ids of the grouped strokes in drawing order.
func (g StrokeGroup) StrokeIDs() []string {
	ids := make([]string, len(g.Strokes))
	for i, s := range g.Strokes {
		ids[i] = s.ID
	}
	return ids
}

// startTime returns the earliest stroke start timestamp in the group.
func (g StrokeGroup) startTime() uint64 {
	var min uint64
	for i, s := range g.Strokes {
		if t := s.StartTime(); i == 0 || t < min {
			min = t
		}
	}
	return min
}

// GroupStrokes partitions strokes into candidate shape groups.
//
// Two strokes land in the same group when their bounding boxes, each expanded
// by the proximity threshold, intersect, or when they were drawn within the
// temporal merge window of each other; the latter captures multi-stroke
// glyphs drawn quickly but far apart. Membership is transitive: the pairwise
// predicates feed a union-find, so A and C group together whenever both merge
// with B.
//
// Strokes with fewer than MinStrokePoints points cannot contribute geometry
// and are dropped silently before grouping. Groups are ordered by the
// timestamp of their earliest stroke, ties broken by input order, so output
// order is deterministic. Empty input yields an empty partition.
func GroupStrokes(strokes []sketch.Stroke, params sketch.DetectionParams) []StrokeGroup {
	kept := make([]sketch.Stroke, 0, len(strokes))
	for _, s := range strokes {
		if len(s.Points) >= params.MinStrokePoints {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return nil
	}

	bounds := make([]sketch.BoundingBox, len(kept))
	for i, s := range kept {
		bounds[i] = sketch.BoundsOf(s.Points).Expanded(params.ProximityThreshold)
	}

	uf := newUnionFind(len(kept))
	for i := 0; i < len(kept); i++ {
		for j := i + 1; j < len(kept); j++ {
			if bounds[i].Intersects(bounds[j]) || withinMergeWindow(kept[i], kept[j], params.MergeWindowMillis) {
				uf.union(i, j)
			}
		}
	}

	// Collect groups in first-seen root order so the stable sort below has a
	// deterministic input: groups tying on start timestamp keep input order.
	members := make(map[int][]sketch.Stroke)
	var roots []int
	for i, s := range kept {
		root := uf.find(i)
		if _, seen := members[root]; !seen {
			roots = append(roots, root)
		}
		members[root] = append(members[root], s)
	}

	groups := make([]StrokeGroup, 0, len(roots))
	for _, root := range roots {
		groups = append(groups, StrokeGroup{Strokes: members[root]})
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].startTime() < groups[j].startTime()
	})
	return groups
}

// withinMergeWindow reports whether the gap between the two strokes' drawing
// intervals is below the merge window.
func withinMergeWindow(a, b sketch.Stroke, window uint64) bool {
	if window == 0 {
		return false
	}
	var gap uint64
	switch {
	case a.EndTime() < b.StartTime():
		gap = b.StartTime() - a.EndTime()
	case b.EndTime() < a.StartTime():
		gap = a.StartTime() - b.EndTime()
	default:
		// Overlapping intervals.
		return true
	}
	return gap < window
}

// unionFind is a plain disjoint-set with path compression and union by rank.
type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n), rank: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (uf *unionFind) find(i int) int {
	for uf.parent[i] != i {
		uf.parent[i] = uf.parent[uf.parent[i]]
		i = uf.parent[i]
	}
	return i
}

func (uf *unionFind) union(i, j int) {
	ri, rj := uf.find(i), uf.find(j)
	if ri == rj {
		return
	}
	if uf.rank[ri] < uf.rank[rj] {
		ri, rj = rj, ri
	}
	uf.parent[rj] = ri
	if uf.rank[ri] == uf.rank[rj] {
		uf.rank[ri]++
	}
}
