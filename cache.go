package zedit

import (
	"fmt"
	"sort"
)

// positionCache tracks which paragraphs have a trustworthy cached start offset.
// Paragraphs [0, validUpTo] are valid; -1 means none is.
type positionCache struct {
	validUpTo int
	guess     int // average paragraph length heuristic for lineFor, never < 1
}

func (c *positionCache) invalidateFrom(line int) {
	c.validUpTo = min(c.validUpTo, line-1)
}

// nudge adapts the average line length after lineFor guessed guessed but the
// answer was actual.
func (c *positionCache) nudge(guessed, actual int) {
	switch {
	case guessed < actual:
		c.guess = max(1, c.guess-1)
	case guessed > actual:
		c.guess++
	}
}

// lineStart returns the start offset of paragraph line, revalidating cached
// starts forward from the watermark. line must be a valid index.
func (d *Document) lineStart(line int) int {
	c := &d.cache
	if c.validUpTo < line {
		if c.validUpTo < 0 {
			c.validUpTo = 0
			d.paragraphs[0].start = 0
		}
		p := d.paragraphs[c.validUpTo]
		total := p.start + p.Len() + 1
		last := min(line, len(d.paragraphs)-1)
		for i := c.validUpTo + 1; i <= last; i++ {
			q := d.paragraphs[i]
			q.start = total
			total += q.Len() + 1
		}
		c.validUpTo = last
	}
	return d.paragraphs[line].start
}

// lineFor returns the paragraph containing offset, which must lie in [0, length].
// An offset at a paragraph's end (on its separator) belongs to that paragraph.
func (d *Document) lineFor(offset int) int {
	last := len(d.paragraphs) - 1
	guessed := clamp(0, offset/d.cache.guess, last)
	count := d.lineStart(guessed)
	if count == offset {
		return guessed
	}
	if count < offset {
		for i := guessed; i <= last; i++ {
			n := d.paragraphs[i].Len()
			if count+n >= offset {
				d.cache.nudge(guessed, i)
				return i
			}
			count += n + 1
		}
		d.cache.nudge(guessed, last)
		return last
	}
	for i := guessed - 1; i >= 0; i-- {
		count -= d.paragraphs[i].Len() + 1
		if offset >= count {
			d.cache.nudge(guessed, i)
			return i
		}
	}
	return 0
}

func (d *Document) lineColumn(offset int) CharPos {
	line := d.lineFor(offset)
	return CharPos{Line: line, Column: clamp(0, offset-d.lineStart(line), d.paragraphs[line].Len())}
}

// indexOf returns the index of p, or -1. All cached starts must be valid.
func (d *Document) indexOf(p *Paragraph) int {
	i := sort.Search(len(d.paragraphs), func(i int) bool {
		return d.paragraphs[i].start >= p.start
	})
	if i < len(d.paragraphs) && d.paragraphs[i] == p {
		return i
	}
	return -1
}

func (d *Document) checkLine(line int) error {
	if line < 0 || line >= len(d.paragraphs) {
		return fmt.Errorf("line %d of %d: %w", line, len(d.paragraphs), ErrRange)
	}
	return nil
}

func (d *Document) checkOffset(offset int) error {
	if offset < 0 || offset > d.length {
		return fmt.Errorf("offset %d of %d: %w", offset, d.length, ErrRange)
	}
	return nil
}

// LineStartOffset returns the offset of the first rune of paragraph line.
// Sequential forward access is amortized O(1); after an edit near the start
// of the document the next call walks forward from the edit.
func (d *Document) LineStartOffset(line int) (int, error) {
	if err := d.checkLine(line); err != nil {
		return 0, err
	}
	return d.lineStart(line), nil
}

// LineEndOffset returns the offset just past the last rune of paragraph line,
// i.e. the position of its separator.
func (d *Document) LineEndOffset(line int) (int, error) {
	if err := d.checkLine(line); err != nil {
		return 0, err
	}
	return d.lineStart(line) + d.paragraphs[line].Len(), nil
}

// LineFor returns the index of the paragraph containing offset.
func (d *Document) LineFor(offset int) (int, error) {
	if err := d.checkOffset(offset); err != nil {
		return 0, err
	}
	return d.lineFor(offset), nil
}

// LineColumnFor converts an offset into a line/column position.
func (d *Document) LineColumnFor(offset int) (CharPos, error) {
	if err := d.checkOffset(offset); err != nil {
		return CharPos{}, err
	}
	return d.lineColumn(offset), nil
}

// OffsetFor converts a line/column position into an offset. The column is
// clamped to the paragraph.
func (d *Document) OffsetFor(line, column int) (int, error) {
	if err := d.checkLine(line); err != nil {
		return 0, err
	}
	return d.lineStart(line) + clamp(0, column, d.paragraphs[line].Len()), nil
}

// OffsetsOf converts a line/column interval into offsets after sanitizing it
// against the document bounds.
func (d *Document) OffsetsOf(c CharInterval) (start, end int) {
	last := len(d.paragraphs) - 1
	c = c.Sanitize(CharPos{Line: last, Column: d.paragraphs[last].Len()})
	start, _ = d.OffsetFor(c.Start.Line, c.Start.Column)
	end, _ = d.OffsetFor(c.End.Line, c.End.Column)
	return start, end
}
