package zedit

// CharPos is a (line, column) position in a document. Line is a paragraph
// index and Column a rune offset into that paragraph, both 0-based.
type CharPos struct {
	Line   int
	Column int
}

// CmpPos lexicographically compares to char positions and
// returns -1 if a is before b, 0 if a and b are equal positions,
// and 1 if a is after b.
func CmpPos(a, b CharPos) int {
	if a.Line < b.Line {
		return -1
	}
	if a.Line > b.Line {
		return 1
	}
	if a.Column < b.Column {
		return -1
	}
	if a.Column > b.Column {
		return 1
	}
	return 0
}

func MaxPos(a, b CharPos) CharPos {
	if CmpPos(a, b) < 0 {
		return b
	}
	return a
}

func MinPos(a, b CharPos) CharPos {
	if CmpPos(a, b) <= 0 {
		return a
	}
	return b
}

// CharInterval is a half-open [Start, End) span in line/column coordinates.
type CharInterval struct {
	Start CharPos
	End   CharPos
}

// OutsideOf returns true if c1 is outside of c2.
func (c1 CharInterval) OutsideOf(c2 CharInterval) bool {
	return CmpPos(c1.End, c2.Start) < 0 || CmpPos(c1.Start, c2.End) > 0
}

// Contains returns true if pos lies in [Start, End).
func (c CharInterval) Contains(pos CharPos) bool {
	return CmpPos(pos, c.Start) >= 0 && CmpPos(pos, c.End) < 0
}

// Overlapping returns true if the intervals share at least one position or touch.
// c1.Overlapping(c2) and c2.Overlapping(c1) are equivalent.
func (c1 CharInterval) Overlapping(c2 CharInterval) bool {
	return !c1.OutsideOf(c2)
}

// Lines returns the number of lines this interval spans, including start and end line.
func (c CharInterval) Lines() int {
	return c.End.Line - c.Start.Line + 1
}

// MaybeSwap returns the interval with Start and End exchanged if End is before Start.
func (c CharInterval) MaybeSwap() CharInterval {
	if CmpPos(c.Start, c.End) > 0 {
		return CharInterval{Start: c.End, End: c.Start}
	}
	return c
}

// Sanitize computes a new interval that is strictly between [(0,0)...lastPos]. This can be used
// as a helper when intervals might have invalid values (e.g. due to user input). Sanitize calls
// MaybeSwap.
func (c CharInterval) Sanitize(lastPos CharPos) CharInterval {
	r := c.MaybeSwap()
	r.Start = CharPos{Line: max(r.Start.Line, 0), Column: max(r.Start.Column, 0)}
	if CmpPos(r.End, lastPos) > 0 {
		r.End = lastPos
	}
	if CmpPos(r.Start, r.End) > 0 {
		r.Start = r.End
	}
	return r
}
