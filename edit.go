package zedit

import (
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// Insert inserts text at position. Control characters other than '\n' and
// '\t' are dropped first; inserting nothing is a no-op that emits no events.
//
// Highlight ranges absorb text inserted at their start, their end, or inside
// them, and shift when the text lands before them.
func (d *Document) Insert(position int, text string) error {
	if err := d.insert(position, text); err != nil {
		return err
	}
	d.flush()
	return nil
}

// Delete removes the text in [start, end). Ranges fully inside the deletion
// are removed from the highlight collection; the others shrink or shift.
func (d *Document) Delete(start, end int) error {
	if err := d.delete(start, end); err != nil {
		return err
	}
	d.flush()
	return nil
}

// Replace deletes [start, end) and inserts text at start. Listeners see the
// events of both steps after the replacement has completed.
func (d *Document) Replace(start, end int, text string) error {
	if err := d.delete(start, end); err != nil {
		return err
	}
	if err := d.insert(start, text); err != nil {
		d.flush()
		return err
	}
	d.flush()
	return nil
}

func (d *Document) insert(position int, text string) error {
	if position < 0 {
		return fmt.Errorf("insert at %d: %w", position, ErrArgument)
	}
	if err := d.checkOffset(position); err != nil {
		return fmt.Errorf("insert: %w", err)
	}
	runes := filterInput(text, d.config.StripTabs)
	n := len(runes)
	if n == 0 {
		return nil
	}

	d.ranges.adjustForInsert(position, n)

	segments := splitLines(runes)
	pos := d.lineColumn(position)
	line := pos.Line
	target := d.paragraphs[line]

	if len(segments) == 1 {
		target.insert(pos.Column, segments[0])
		d.cache.invalidateFrom(line + 1)
		d.refragment(line, target, nil, nil)
		d.queueUpdate(line, line+1)
	} else {
		carried := target.rangeIDs()
		tail := target.truncate(pos.Column)
		target.insert(pos.Column, segments[0])
		d.cache.invalidateFrom(line + 1)
		d.refragment(line, target, nil, nil)
		d.queueUpdate(line, line+1)

		added := make([]*Paragraph, 0, len(segments)-1)
		for _, seg := range segments[1:] {
			added = append(added, newParagraph(slices.Clone(seg)))
		}
		d.paragraphs = slices.Insert(d.paragraphs, line+1, added...)
		last := line + len(added)
		d.queueAdd(line+1, last+1)

		d.paragraphs[last].insert(d.paragraphs[last].Len(), tail)
		for i := line + 1; i <= last; i++ {
			d.refragment(i, d.paragraphs[i], carried, nil)
		}
		if len(tail) > 0 {
			d.queueUpdate(last, last+1)
		}
	}

	d.length += n
	d.ranges.index.invalidate()
	d.queueEdit(Edit{Kind: EditInsert, Start: position, End: position + n, Text: string(runes)})
	return nil
}

func (d *Document) delete(start, end int) error {
	if err := d.checkSpan(start, end); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	if start == end {
		return nil
	}
	deleted := d.get(start, end)
	lead := d.lineColumn(start)
	trail := d.lineColumn(end)

	removed, err := d.ranges.adjustForDelete(start, end)
	if err != nil {
		return err
	}

	leading := d.paragraphs[lead.Line]
	if lead.Line == trail.Line {
		leading.delete(lead.Column, trail.Column)
		d.cache.invalidateFrom(lead.Line + 1)
		d.refragment(lead.Line, leading, nil, removed)
		d.queueUpdate(lead.Line, lead.Line+1)
	} else {
		trailing := d.paragraphs[trail.Line]
		carried := trailing.rangeIDs()
		spliced := lead.Column != leading.Len() || trail.Column != trailing.Len()
		if spliced {
			leading.truncate(lead.Column)
			leading.insert(lead.Column, trailing.text[trail.Column:])
		}

		gone := slices.Clone(d.paragraphs[lead.Line+1 : trail.Line+1])
		for _, p := range gone {
			p.start = deletedStart
		}
		d.paragraphs = slices.Delete(d.paragraphs, lead.Line+1, trail.Line+1)
		d.cache.invalidateFrom(lead.Line + 1)
		dropped := d.refragment(lead.Line, leading, carried, removed)

		if spliced || dropped {
			d.queueUpdate(lead.Line, lead.Line+1)
		}
		d.queueRemove(lead.Line+1, gone)
	}

	// Removed ranges no longer have fragments on surviving paragraphs, so
	// this only releases them and reports the collection change.
	if len(removed) > 0 {
		d.ranges.detach(removed)
	}

	d.length -= end - start
	d.ranges.index.invalidate()
	d.queueEdit(Edit{Kind: EditDelete, Start: start, End: end, Text: deleted})
	d.log.Debug("deleted", zap.Int("start", start), zap.Int("end", end), zap.Int("lines", trail.Line-lead.Line+1))
	return nil
}

// refragment recomputes the fragments of paragraph p at index line from the
// live bounds of the ranges it already carries plus carried. Ranges in skip
// are about to be removed and lose their fragments; the result reports
// whether p had any.
func (d *Document) refragment(line int, p *Paragraph, carried, skip []RangeID) (dropped bool) {
	ids := p.rangeIDs()
	own := len(ids)
	for _, id := range carried {
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return false
	}
	p.fragments = p.fragments[:0]
	start := d.lineStart(line)
	for i, id := range ids {
		if slices.Contains(skip, id) {
			dropped = dropped || i < own
			continue
		}
		s := d.ranges.lookup(id)
		if s == nil {
			continue
		}
		f, ok := p.sliceRange(start, s.r.Start, s.r.End)
		if !ok {
			continue
		}
		f.Range = id
		p.fragments = append(p.fragments, f)
		s.recordAffected(p)
	}
	return dropped
}
