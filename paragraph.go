package zedit

import (
	"fmt"
	"slices"
)

// deletedStart marks a paragraph that has been removed from its document.
const deletedStart = -1

// Paragraph is one line of a document, stored without its trailing line separator.
// Paragraphs are owned by their Document and must be treated as read-only by callers.
type Paragraph struct {
	text      []rune
	start     int // absolute offset of text[0]; trustworthy only up to the cache watermark
	fragments []Fragment
}

func newParagraph(text []rune) *Paragraph {
	return &Paragraph{text: text}
}

// Len returns the number of runes in the paragraph.
func (p *Paragraph) Len() int {
	return len(p.text)
}

// Text returns the paragraph's text.
func (p *Paragraph) Text() string {
	return string(p.text)
}

// Runes returns a copy of the paragraph's text.
func (p *Paragraph) Runes() []rune {
	return slices.Clone(p.text)
}

// Fragments returns a copy of the highlight fragments intersecting this paragraph.
func (p *Paragraph) Fragments() []Fragment {
	return slices.Clone(p.fragments)
}

// Deleted reports whether the paragraph has been removed from its document,
// e.g. when it is carried by a ChangeRemove event.
func (p *Paragraph) Deleted() bool {
	return p.start == deletedStart
}

func (p *Paragraph) String() string {
	return fmt.Sprintf("(%d) : %s", p.start, string(p.text))
}

func (p *Paragraph) insert(column int, r []rune) {
	p.text = slices.Insert(p.text, column, r...)
}

func (p *Paragraph) delete(from, to int) {
	p.text = slices.Delete(p.text, from, to)
}

func (p *Paragraph) truncate(column int) []rune {
	tail := slices.Clone(p.text[column:])
	p.text = p.text[:column]
	return tail
}

// rangeIDs returns the ranges currently sliced into this paragraph.
func (p *Paragraph) rangeIDs() []RangeID {
	ids := make([]RangeID, 0, len(p.fragments))
	for _, f := range p.fragments {
		ids = append(ids, f.Range)
	}
	return ids
}

// removeFragments drops the fragments of the given range and reports whether any existed.
func (p *Paragraph) removeFragments(id RangeID) bool {
	n := len(p.fragments)
	p.fragments = slices.DeleteFunc(p.fragments, func(f Fragment) bool {
		return f.Range == id
	})
	return len(p.fragments) != n
}

// sliceRange computes the fragment of [from, to) that falls on this paragraph,
// given the paragraph's absolute start. ok is false when the range lies
// entirely outside the paragraph's span [start, start+Len()].
func (p *Paragraph) sliceRange(start, from, to int) (f Fragment, ok bool) {
	startColumn := from - start
	endColumn := to - start
	if endColumn < 0 || startColumn > p.Len() {
		return Fragment{}, false
	}
	return Fragment{
		StartColumn: clamp(0, startColumn, p.Len()),
		EndColumn:   clamp(0, endColumn, p.Len()),
	}, true
}
