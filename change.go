package zedit

import (
	"fmt"
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// ChangeKind discriminates the paragraph change events of a Document.
type ChangeKind uint8

const (
	ChangeUpdate ChangeKind = iota + 1 // paragraphs [From, To) changed text or highlights
	ChangeAdd                          // paragraphs [From, To) were inserted
	ChangeRemove                       // Removed paragraphs were taken out at index From
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeUpdate:
		return "update"
	case ChangeAdd:
		return "add"
	case ChangeRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Change describes which paragraphs a rendering layer has to rebuild.
// For ChangeRemove, To equals From and Removed holds the removed paragraphs.
type Change struct {
	Kind    ChangeKind
	From    int
	To      int
	Removed []*Paragraph
}

func (c Change) String() string {
	if c.Kind == ChangeRemove {
		return fmt.Sprintf("%v[%d, %d paragraphs]", c.Kind, c.From, len(c.Removed))
	}
	return fmt.Sprintf("%v[%d,%d)", c.Kind, c.From, c.To)
}

// EditKind discriminates the text edits reported by Document.OnEdit.
type EditKind uint8

const (
	EditInsert EditKind = iota + 1
	EditDelete
)

// Edit describes one effective insert or delete. Text is the inserted text
// (after filtering) or the deleted text, so an undo stack can build inverses.
type Edit struct {
	Kind  EditKind
	Start int
	End   int
	Text  string
}

type changeListener struct {
	id int
	fn func(Change)
}

type editListener struct {
	id int
	fn func(Edit)
}

// OnChange registers fn to receive every paragraph change event.
// Events are delivered synchronously, after the operation that caused them
// has completed. The returned function unregisters fn.
func (d *Document) OnChange(fn func(Change)) (cancel func()) {
	d.nextListener++
	id := d.nextListener
	d.changeListeners = append(d.changeListeners, changeListener{id: id, fn: fn})
	return func() {
		d.changeListeners = slices.DeleteFunc(d.changeListeners, func(l changeListener) bool {
			return l.id == id
		})
	}
}

// OnEdit registers fn to receive every effective insert and delete.
func (d *Document) OnEdit(fn func(Edit)) (cancel func()) {
	d.nextListener++
	id := d.nextListener
	d.editListeners = append(d.editListeners, editListener{id: id, fn: fn})
	return func() {
		d.editListeners = slices.DeleteFunc(d.editListeners, func(l editListener) bool {
			return l.id == id
		})
	}
}

func (d *Document) queueUpdate(from, to int) {
	d.pending = append(d.pending, Change{Kind: ChangeUpdate, From: from, To: to})
}

func (d *Document) queueAdd(from, to int) {
	d.pending = append(d.pending, Change{Kind: ChangeAdd, From: from, To: to})
}

func (d *Document) queueRemove(from int, removed []*Paragraph) {
	d.pending = append(d.pending, Change{Kind: ChangeRemove, From: from, To: from, Removed: removed})
}

// queueUpdates queues one update per set bit, in ascending paragraph order.
func (d *Document) queueUpdates(lines *bitset.BitSet) {
	for i, ok := lines.NextSet(0); ok; i, ok = lines.NextSet(i + 1) {
		d.queueUpdate(int(i), int(i)+1)
	}
}

func (d *Document) queueEdit(e Edit) {
	d.pendingEdits = append(d.pendingEdits, e)
}

// flush delivers queued events: paragraph changes first, then edits, then
// highlight collection changes.
func (d *Document) flush() {
	changes := d.pending
	edits := d.pendingEdits
	d.pending = nil
	d.pendingEdits = nil
	for _, c := range changes {
		for _, l := range slices.Clone(d.changeListeners) {
			l.fn(c)
		}
	}
	for _, e := range edits {
		for _, l := range slices.Clone(d.editListeners) {
			l.fn(e)
		}
	}
	d.ranges.flush()
}

// ChangeQueue collects the change events of a document so that a consumer can
// pull them one at a time. Each event is handed out exactly once.
type ChangeQueue struct {
	events []Change
	cancel func()
}

// NewChangeQueue starts recording the change events of doc.
func NewChangeQueue(doc *Document) *ChangeQueue {
	q := &ChangeQueue{}
	q.cancel = doc.OnChange(func(c Change) {
		q.events = append(q.events, c)
	})
	return q
}

// Next returns the oldest unconsumed event.
func (q *ChangeQueue) Next() (Change, bool) {
	if len(q.events) == 0 {
		return Change{}, false
	}
	c := q.events[0]
	q.events = q.events[1:]
	return c, true
}

// Len returns the number of unconsumed events.
func (q *ChangeQueue) Len() int {
	return len(q.events)
}

// Drain consumes and returns all pending events.
func (q *ChangeQueue) Drain() []Change {
	events := q.events
	q.events = nil
	return events
}

// Close stops recording. Pending events can still be consumed.
func (q *ChangeQueue) Close() {
	q.cancel()
}
