package zedit

import (
	"fmt"

	"go.uber.org/zap"
)

// adjustForInsert moves range bounds for n runes inserted at position.
// Insertion at a range's start, end, or anywhere inside it is absorbed by the
// range; ranges after the position shift; ranges before it are untouched.
func (h *HighlightRanges) adjustForInsert(position, n int) {
	for _, id := range h.order {
		r := &h.slots[id.slot()].r
		switch {
		case r.Start == position:
			r.End += n
		case r.Start > position:
			r.Start += n
			r.End += n
		case r.End >= position:
			r.End += n
		}
	}
	h.index.invalidate()
}

// deleteCase is the relationship between a range and a deletion [start, end).
type deleteCase uint8

const (
	deleteInconsistent deleteCase = iota
	deleteExact                   // same span as the deletion
	deleteBefore                  // ends at or before start
	deleteAfter                   // starts at or after end
	deleteSuperset                // contains the deletion
	deleteSubset                  // contained in the deletion
	deleteStraddleEnd             // starts inside, ends after
	deleteStraddleStart           // starts before, ends inside
)

func classifyDelete(r HighlightRange, start, end int) deleteCase {
	switch {
	case r.Start > r.End:
		return deleteInconsistent
	case r.Start == start && r.End == end:
		return deleteExact
	case r.End <= start:
		return deleteBefore
	case r.Start >= end:
		return deleteAfter
	case r.Start <= start && r.End >= end:
		return deleteSuperset
	case r.Start >= start && r.End <= end:
		return deleteSubset
	case r.Start < end && r.End > end:
		return deleteStraddleEnd
	case r.Start < start && r.End > start:
		return deleteStraddleStart
	}
	return deleteInconsistent
}

// adjustForDelete moves range bounds for the deletion of [start, end) and
// returns the ranges that must be removed. All ranges are classified before
// any is changed, so an ErrInconsistent leaves the collection untouched.
func (h *HighlightRanges) adjustForDelete(start, end int) ([]RangeID, error) {
	cases := make([]deleteCase, len(h.order))
	for i, id := range h.order {
		r := h.slots[id.slot()].r
		cases[i] = classifyDelete(r, start, end)
		if cases[i] == deleteInconsistent {
			err := fmt.Errorf("range %v against deletion [%d,%d): %w", r, start, end, ErrInconsistent)
			h.doc.log.Error("highlight adjustment failed", zap.Error(err))
			if h.doc.config.PanicOnInconsistency {
				panic(err)
			}
			return nil, err
		}
	}

	diff := end - start
	var removed []RangeID
	for i, id := range h.order {
		r := &h.slots[id.slot()].r
		switch cases[i] {
		case deleteExact:
			if r.Stretchy {
				r.End = r.Start
			} else {
				removed = append(removed, id)
			}
		case deleteBefore:
		case deleteAfter:
			r.Start -= diff
			r.End -= diff
		case deleteSuperset:
			r.End -= diff
		case deleteSubset:
			removed = append(removed, id)
		case deleteStraddleEnd:
			surviving := r.End - end
			r.Start = start
			r.End = start + surviving
		case deleteStraddleStart:
			r.End = start
		}
	}
	h.index.invalidate()
	return removed, nil
}
