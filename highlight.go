package zedit

import (
	"fmt"
	"slices"

	"github.com/bits-and-blooms/bitset"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OwnerID tags highlight ranges with the component that created them, so that
// a producer such as a syntax highlighter can remove all of its ranges at once.
// The zero value means "no owner".
type OwnerID uuid.UUID

// NoOwner is the owner of ranges added without one.
var NoOwner OwnerID

// NewOwnerID returns a fresh, unique owner.
func NewOwnerID() OwnerID {
	return OwnerID(uuid.New())
}

func (o OwnerID) String() string {
	return uuid.UUID(o).String()
}

// HighlightRange is a styled span [Start, End) over document offsets,
// independent of paragraph boundaries.
//
// A stretchy range survives a deletion of exactly its own span as a zero-length
// range, whereas a non-stretchy range is removed. Inserts treat both alike.
type HighlightRange struct {
	Start    int
	End      int
	Style    Highlight
	Owner    OwnerID
	Stretchy bool
}

// Len returns the number of runes covered by the range.
func (r HighlightRange) Len() int {
	return r.End - r.Start
}

func (r HighlightRange) String() string {
	name := "<nil>"
	if r.Style != nil {
		name = r.Style.Name()
	}
	return fmt.Sprintf("[%d,%d) %s", r.Start, r.End, name)
}

// RangeID is a stable handle to a range stored in a HighlightRanges collection.
// Handles of removed ranges go stale and are never handed out again.
type RangeID uint64

func makeRangeID(slot int, gen uint32) RangeID {
	return RangeID(uint64(gen)<<32 | uint64(uint32(slot)))
}

func (id RangeID) slot() int {
	return int(uint32(id))
}

func (id RangeID) gen() uint32 {
	return uint32(id >> 32)
}

func (id RangeID) String() string {
	return fmt.Sprintf("range#%d.%d", id.slot(), id.gen())
}

// RangeChangeKind distinguishes membership changes of a HighlightRanges collection.
type RangeChangeKind uint8

const (
	RangesAdded RangeChangeKind = iota + 1
	RangesRemoved
)

func (k RangeChangeKind) String() string {
	switch k {
	case RangesAdded:
		return "added"
	case RangesRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// RangeChange reports one batch of ranges added to or removed from the collection.
// For removals, Ranges holds the final bounds since the IDs are already stale.
type RangeChange struct {
	Kind   RangeChangeKind
	IDs    []RangeID
	Ranges []HighlightRange
}

type rangeSlot struct {
	r        HighlightRange
	gen      uint32
	live     bool
	affected []*Paragraph // paragraphs that received a fragment of r
}

type rangeListener struct {
	id int
	fn func(RangeChange)
}

// HighlightRanges is the ordered collection of highlight ranges of a Document.
// Ranges live in an arena and are addressed by RangeID; paragraphs refer to
// them only through those handles.
type HighlightRanges struct {
	doc          *Document
	slots        []rangeSlot
	free         []int
	order        []RangeID
	index        rangeIndex
	listeners    []rangeListener
	nextListener int
	pending      []RangeChange
}

func newHighlightRanges(doc *Document) *HighlightRanges {
	return &HighlightRanges{doc: doc}
}

// Len returns the number of live ranges.
func (h *HighlightRanges) Len() int {
	return len(h.order)
}

// IDs returns the handles of all live ranges in the order they were added.
func (h *HighlightRanges) IDs() []RangeID {
	return slices.Clone(h.order)
}

// All returns the current bounds of all live ranges in the order they were added.
func (h *HighlightRanges) All() []HighlightRange {
	out := make([]HighlightRange, 0, len(h.order))
	for _, id := range h.order {
		out = append(out, h.slots[id.slot()].r)
	}
	return out
}

// Range returns the live bounds of the range with the given handle.
func (h *HighlightRanges) Range(id RangeID) (HighlightRange, bool) {
	s := h.lookup(id)
	if s == nil {
		return HighlightRange{}, false
	}
	return s.r, true
}

// Owned returns the handles of all ranges carrying the given owner.
func (h *HighlightRanges) Owned(owner OwnerID) []RangeID {
	var ids []RangeID
	for _, id := range h.order {
		if h.slots[id.slot()].r.Owner == owner {
			ids = append(ids, id)
		}
	}
	return ids
}

// Interval returns the range's bounds in line/column coordinates.
func (h *HighlightRanges) Interval(id RangeID) (CharInterval, bool) {
	s := h.lookup(id)
	if s == nil {
		return CharInterval{}, false
	}
	return CharInterval{
		Start: h.doc.lineColumn(s.r.Start),
		End:   h.doc.lineColumn(s.r.End),
	}, true
}

// OnChange registers fn to be called after every batch of additions or removals.
// The returned function unregisters it.
func (h *HighlightRanges) OnChange(fn func(RangeChange)) (cancel func()) {
	h.nextListener++
	id := h.nextListener
	h.listeners = append(h.listeners, rangeListener{id: id, fn: fn})
	return func() {
		h.listeners = slices.DeleteFunc(h.listeners, func(l rangeListener) bool {
			return l.id == id
		})
	}
}

// Add adds a single range. See AddAll.
func (h *HighlightRanges) Add(r HighlightRange) (RangeID, error) {
	ids, err := h.AddAll(r)
	if err != nil {
		return 0, err
	}
	return ids[0], nil
}

// AddAll adds ranges as one batch: every paragraph touched by any of them
// receives exactly one ChangeUpdate event. Either all ranges are added or,
// if one is out of bounds, none is.
func (h *HighlightRanges) AddAll(rs ...HighlightRange) ([]RangeID, error) {
	for _, r := range rs {
		if r.Start < 0 || r.Start > r.End {
			return nil, fmt.Errorf("highlight range %v: %w", r, ErrArgument)
		}
		if r.End > h.doc.length {
			return nil, fmt.Errorf("highlight range %v beyond length %d: %w", r, h.doc.length, ErrRange)
		}
	}
	if len(rs) == 0 {
		return nil, nil
	}
	ids := make([]RangeID, 0, len(rs))
	for _, r := range rs {
		ids = append(ids, h.alloc(r))
	}
	h.attach(ids)
	h.doc.flush()
	return ids, nil
}

// Remove removes a single range and reports whether it was live.
func (h *HighlightRanges) Remove(id RangeID) bool {
	return h.RemoveAll(id) == 1
}

// RemoveAll removes ranges as one batch and returns how many were live.
// Stale or unknown handles are ignored.
func (h *HighlightRanges) RemoveAll(ids ...RangeID) int {
	live := make([]RangeID, 0, len(ids))
	for _, id := range ids {
		if h.lookup(id) == nil {
			h.doc.log.Warn("removing unknown highlight range", zap.Stringer("id", id))
			continue
		}
		if !slices.Contains(live, id) {
			live = append(live, id)
		}
	}
	if len(live) == 0 {
		return 0
	}
	h.detach(live)
	h.doc.flush()
	return len(live)
}

// RemoveOwner removes every range carrying the given owner.
func (h *HighlightRanges) RemoveOwner(owner OwnerID) int {
	return h.RemoveAll(h.Owned(owner)...)
}

// Clear removes all ranges.
func (h *HighlightRanges) Clear() int {
	return h.RemoveAll(h.IDs()...)
}

// Update always fails: ranges are removed and re-added, never changed through
// the collection. Their bounds still move with document edits.
func (h *HighlightRanges) Update(id RangeID, r HighlightRange) error {
	return fmt.Errorf("update %v: remove and re-add the range instead: %w", id, ErrUnsupported)
}

// Permute always fails: the collection keeps insertion order.
func (h *HighlightRanges) Permute(order []RangeID) error {
	return fmt.Errorf("permuting highlight ranges: %w", ErrUnsupported)
}

func (h *HighlightRanges) lookup(id RangeID) *rangeSlot {
	i := id.slot()
	if id == 0 || i >= len(h.slots) {
		return nil
	}
	s := &h.slots[i]
	if !s.live || s.gen != id.gen() {
		return nil
	}
	return s
}

func (h *HighlightRanges) alloc(r HighlightRange) RangeID {
	var i int
	if n := len(h.free); n > 0 {
		i = h.free[n-1]
		h.free = h.free[:n-1]
	} else {
		h.slots = append(h.slots, rangeSlot{})
		i = len(h.slots) - 1
	}
	s := &h.slots[i]
	s.gen++
	s.r = r
	s.live = true
	s.affected = nil
	id := makeRangeID(i, s.gen)
	h.order = append(h.order, id)
	h.index.invalidate()
	return id
}

// release frees the slots of ids and drops them from the ordered list.
func (h *HighlightRanges) release(ids []RangeID) {
	gone := make(map[RangeID]struct{}, len(ids))
	for _, id := range ids {
		gone[id] = struct{}{}
		s := &h.slots[id.slot()]
		s.live = false
		s.affected = nil
		h.free = append(h.free, id.slot())
	}
	h.order = slices.DeleteFunc(h.order, func(id RangeID) bool {
		_, ok := gone[id]
		return ok
	})
	h.index.invalidate()
}

// recordAffected remembers that p carries a fragment of s, pruning paragraphs
// that have since been removed from the document.
func (s *rangeSlot) recordAffected(p *Paragraph) {
	s.affected = slices.DeleteFunc(s.affected, (*Paragraph).Deleted)
	if !slices.Contains(s.affected, p) {
		s.affected = append(s.affected, p)
	}
}

// attach slices newly added ranges into the paragraphs they intersect and
// queues one update per affected paragraph.
func (h *HighlightRanges) attach(ids []RangeID) {
	d := h.doc
	affected := bitset.New(uint(len(d.paragraphs)))
	for _, id := range ids {
		s := &h.slots[id.slot()]
		from := d.lineFor(s.r.Start)
		to := d.lineFor(s.r.End)
		for i := from; i <= to; i++ {
			p := d.paragraphs[i]
			f, ok := p.sliceRange(d.lineStart(i), s.r.Start, s.r.End)
			if !ok {
				continue
			}
			f.Range = id
			p.fragments = append(p.fragments, f)
			s.recordAffected(p)
			affected.Set(uint(i))
		}
	}
	d.log.Debug("highlight ranges added", zap.Int("count", len(ids)), zap.Uint("paragraphs", affected.Count()))
	d.queueUpdates(affected)
	h.pending = append(h.pending, RangeChange{Kind: RangesAdded, IDs: slices.Clone(ids)})
}

// detach removes the fragments of ids from every paragraph they touched,
// queues one update per affected paragraph, and frees the ranges.
func (h *HighlightRanges) detach(ids []RangeID) {
	d := h.doc
	// Every live paragraph's cached start must be valid for indexOf.
	d.lineStart(len(d.paragraphs) - 1)

	affected := bitset.New(uint(len(d.paragraphs)))
	removed := make([]HighlightRange, 0, len(ids))
	for _, id := range ids {
		s := &h.slots[id.slot()]
		removed = append(removed, s.r)
		for _, p := range s.affected {
			if p.Deleted() {
				continue
			}
			i := d.indexOf(p)
			if i < 0 {
				continue
			}
			if p.removeFragments(id) {
				affected.Set(uint(i))
			}
		}
	}
	h.release(ids)
	d.log.Debug("highlight ranges removed", zap.Int("count", len(ids)), zap.Uint("paragraphs", affected.Count()))
	d.queueUpdates(affected)
	h.pending = append(h.pending, RangeChange{Kind: RangesRemoved, IDs: slices.Clone(ids), Ranges: removed})
}

func (h *HighlightRanges) flush() {
	pending := h.pending
	h.pending = nil
	for _, c := range pending {
		for _, l := range slices.Clone(h.listeners) {
			l.fn(c)
		}
	}
}
