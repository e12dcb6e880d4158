package zedit

import (
	"cmp"
	"slices"

	"github.com/rdleal/intervalst/interval"
	"go.uber.org/zap"
)

// rangeIndex is an interval tree over the live highlight ranges. Edits move
// range bounds in place, so the tree is dropped on every change and rebuilt
// on the next query. pos maps each live range to its place in the
// insertion order as of the rebuild.
type rangeIndex struct {
	tree *interval.MultiValueSearchTree[RangeID, int]
	pos  map[RangeID]int
}

func (x *rangeIndex) invalidate() {
	x.tree = nil
	x.pos = nil
}

func (h *HighlightRanges) searchTree() *interval.MultiValueSearchTree[RangeID, int] {
	if h.index.tree != nil {
		return h.index.tree
	}
	tree := interval.NewMultiValueSearchTreeWithOptions[RangeID, int](cmp.Compare[int], interval.TreeWithIntervalPoint())
	pos := make(map[RangeID]int, len(h.order))
	for i, id := range h.order {
		pos[id] = i
		r := h.slots[id.slot()].r
		if err := tree.Insert(r.Start, r.End, id); err != nil {
			h.doc.log.Error("indexing highlight range", zap.Stringer("id", id), zap.Error(err))
		}
	}
	h.index.tree = tree
	h.index.pos = pos
	return tree
}

// candidates returns live ranges whose bounds may satisfy keep, in insertion order.
func (h *HighlightRanges) candidates(from, to int, keep func(HighlightRange) bool) []RangeID {
	if len(h.order) == 0 {
		return nil
	}
	found, ok := h.searchTree().AllIntersections(from-1, to+1)
	if !ok {
		return nil
	}
	ids := make([]RangeID, 0, len(found))
	for _, id := range found {
		s := h.lookup(id)
		if s == nil || !keep(s.r) || slices.Contains(ids, id) {
			continue
		}
		ids = append(ids, id)
	}
	pos := h.index.pos
	slices.SortFunc(ids, func(a, b RangeID) int {
		return cmp.Compare(pos[a], pos[b])
	})
	return ids
}

// Intersecting returns the ranges that overlap or touch the closed span
// [start, end], in the order they were added.
func (h *HighlightRanges) Intersecting(start, end int) []RangeID {
	if start > end {
		start, end = end, start
	}
	return h.candidates(start, end, func(r HighlightRange) bool {
		return r.Start <= end && r.End >= start
	})
}

// At returns the ranges covering offset, that is Start <= offset < End.
func (h *HighlightRanges) At(offset int) []RangeID {
	return h.candidates(offset, offset, func(r HighlightRange) bool {
		return r.Start <= offset && offset < r.End
	})
}
