package zedit

import "fmt"

// Fragment is the part of a HighlightRange that falls on a single paragraph.
// Columns are relative to the paragraph. Fragments are derived data: the
// document recomputes them from the live range whenever the paragraph changes.
type Fragment struct {
	StartColumn int
	EndColumn   int
	Range       RangeID
}

// Intersects reports whether the column span [from, to) lies inside the fragment.
// This is a containment test, not an overlap test: it is meant for deciding
// which fragments style a run produced by Paragraph.Runs.
func (f Fragment) Intersects(from, to int) bool {
	return from >= f.StartColumn && to <= f.EndColumn
}

func (f Fragment) String() string {
	return fmt.Sprintf("%d..%d from %v", f.StartColumn, f.EndColumn, f.Range)
}
