package zedit

import "fmt"

// Sequence is a read-through view of a span of a Document. It is backed by
// the document, so after an edit it reads whatever text now occupies its
// offsets; indexes past the document's new end fail with ErrRange.
type Sequence struct {
	doc   *Document
	start int
	end   int
}

// Len returns the length of the span the view was created with.
func (s *Sequence) Len() int {
	return s.end - s.start
}

// RuneAt returns the rune at index i of the view. Paragraph separators read as '\n'.
func (s *Sequence) RuneAt(i int) (rune, error) {
	if i < 0 || i >= s.Len() {
		return 0, fmt.Errorf("sequence index %d of %d: %w", i, s.Len(), ErrRange)
	}
	offset := s.start + i
	if offset >= s.doc.length {
		return 0, fmt.Errorf("sequence offset %d beyond length %d: %w", offset, s.doc.length, ErrRange)
	}
	pos := s.doc.lineColumn(offset)
	p := s.doc.paragraphs[pos.Line]
	if pos.Column == p.Len() {
		return '\n', nil
	}
	return p.text[pos.Column], nil
}

// Slice returns the sub-view [from, to) of this view.
func (s *Sequence) Slice(from, to int) (*Sequence, error) {
	if from < 0 || from > to || to > s.Len() {
		return nil, fmt.Errorf("sequence slice [%d,%d) of %d: %w", from, to, s.Len(), ErrRange)
	}
	return &Sequence{doc: s.doc, start: s.start + from, end: s.start + to}, nil
}

// String materializes the view, clipped to the document's current length.
func (s *Sequence) String() string {
	end := min(s.end, s.doc.length)
	if s.start >= end {
		return ""
	}
	return s.doc.get(s.start, end)
}
