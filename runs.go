package zedit

import (
	"fmt"
	"slices"
)

// Run is a maximal column span [From, To) of a paragraph over which the set
// of covering highlight ranges does not change.
type Run struct {
	From   int
	To     int
	Ranges []RangeID
}

func (r Run) String() string {
	return fmt.Sprintf("%d..%d %v", r.From, r.To, r.Ranges)
}

// Runs splits the paragraph at every fragment boundary. The runs cover the
// whole paragraph in order; an empty paragraph yields a single empty run.
func (p *Paragraph) Runs() []Run {
	points := []int{0, p.Len()}
	for _, f := range p.fragments {
		points = append(points, f.StartColumn, f.EndColumn)
	}
	slices.Sort(points)
	points = slices.Compact(points)

	if len(points) == 1 {
		return []Run{{From: 0, To: 0, Ranges: p.covering(0, 0)}}
	}
	runs := make([]Run, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		from, to := points[i-1], points[i]
		runs = append(runs, Run{From: from, To: to, Ranges: p.covering(from, to)})
	}
	return runs
}

func (p *Paragraph) covering(from, to int) []RangeID {
	var ids []RangeID
	for _, f := range p.fragments {
		if f.Intersects(from, to) {
			ids = append(ids, f.Range)
		}
	}
	return ids
}
