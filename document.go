// Package zedit implements the document model of the zedit text widget: a list
// of paragraphs with a lazily validated position cache, a collection of
// highlight ranges that follows edits, and a paragraph change event stream
// precise enough to drive incremental redraws.
//
// A Document is not safe for concurrent use. Call it from one goroutine (the
// widget's event loop); background work should take a Snapshot, compute on
// another goroutine and hand its results back to the owning goroutine.
package zedit

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/dimchansky/utfbom"
	"go.uber.org/zap"
)

// Document is the text buffer behind an editor. Offsets, columns and lengths
// are counted in runes; paragraphs are separated by implied '\n' characters.
type Document struct {
	paragraphs []*Paragraph // never empty
	length     int          // runes including separators
	ranges     *HighlightRanges
	cache      positionCache
	config     *Config
	log        *zap.Logger

	changeListeners []changeListener
	editListeners   []editListener
	nextListener    int
	pending         []Change
	pendingEdits    []Edit
}

// New returns an empty document holding a single empty paragraph.
// A nil config means NewConfig().
func New(config *Config) *Document {
	if config == nil {
		config = NewConfig()
	}
	config.sanitize()
	d := &Document{
		paragraphs: []*Paragraph{newParagraph(nil)},
		config:     config,
		log:        config.Logger,
		cache:      positionCache{validUpTo: 0, guess: config.LineLengthGuess},
	}
	d.ranges = newHighlightRanges(d)
	return d
}

// NewFromString returns a document holding text (filtered like Insert).
func NewFromString(text string, config *Config) *Document {
	d := New(config)
	// Inserting at 0 into an empty document cannot fail.
	_ = d.Insert(0, text)
	return d
}

// NewFromReader reads a document, skipping a UTF byte order mark and
// normalizing CRLF and CR line endings to '\n'.
func NewFromReader(r io.Reader, config *Config) (*Document, error) {
	sr, enc := utfbom.Skip(r)
	data, err := io.ReadAll(sr)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	d := New(config)
	d.log.Debug("document loaded", zap.Bool("bom", enc != utfbom.Unknown), zap.Int("bytes", len(data)))
	_ = d.Insert(0, normalizeLineEndings(string(data)))
	return d, nil
}

// Config returns the document's configuration.
func (d *Document) Config() *Config {
	return d.config
}

// Ranges returns the document's highlight range collection.
func (d *Document) Ranges() *HighlightRanges {
	return d.ranges
}

// Length returns the number of runes in the document, separators included.
func (d *Document) Length() int {
	return d.length
}

// LineCount returns the number of paragraphs, which is at least 1.
func (d *Document) LineCount() int {
	return len(d.paragraphs)
}

// Paragraph returns the paragraph at index i.
func (d *Document) Paragraph(i int) (*Paragraph, error) {
	if err := d.checkLine(i); err != nil {
		return nil, err
	}
	return d.paragraphs[i], nil
}

// Paragraphs returns a read-only view of the paragraph list.
func (d *Document) Paragraphs() ParagraphList {
	return ParagraphList{doc: d}
}

func (d *Document) checkSpan(start, end int) error {
	if start < 0 || start > end {
		return fmt.Errorf("span [%d,%d): %w", start, end, ErrArgument)
	}
	if end > d.length {
		return fmt.Errorf("span [%d,%d) beyond length %d: %w", start, end, d.length, ErrRange)
	}
	return nil
}

// Get returns the text in [start, end).
func (d *Document) Get(start, end int) (string, error) {
	if err := d.checkSpan(start, end); err != nil {
		return "", err
	}
	return d.get(start, end), nil
}

func (d *Document) get(start, end int) string {
	if start == end {
		return ""
	}
	var sb strings.Builder
	sb.Grow(end - start)
	pos := d.lineColumn(start)
	line, column := pos.Line, pos.Column
	for remaining := end - start; remaining > 0; {
		p := d.paragraphs[line]
		if column == p.Len() {
			sb.WriteByte('\n')
			line++
			column = 0
			remaining--
			continue
		}
		n := min(p.Len()-column, remaining)
		sb.WriteString(string(p.text[column : column+n]))
		column += n
		remaining -= n
	}
	return sb.String()
}

// Text returns the whole document.
func (d *Document) Text() string {
	return d.get(0, d.length)
}

func (d *Document) String() string {
	return d.Text()
}

// Sequence returns a view of [start, end) that reads through to the document.
// It is not a snapshot: after an edit it may observe shifted text.
func (d *Document) Sequence(start, end int) (*Sequence, error) {
	if err := d.checkSpan(start, end); err != nil {
		return nil, err
	}
	return &Sequence{doc: d, start: start, end: end}, nil
}

// Snapshot returns a detached copy of the document's lines, safe to hand to
// another goroutine.
func (d *Document) Snapshot() *MemBuffer {
	b := NewMemBuffer()
	for _, p := range d.paragraphs {
		b.AppendLine(p.Runes())
	}
	return b
}

// SetText replaces the whole content, as Replace(0, Length(), text).
func (d *Document) SetText(text string) error {
	return d.Replace(0, d.length, text)
}

// ParagraphList is a read-only view of a document's paragraphs. Structural
// changes only happen through Insert and Delete.
type ParagraphList struct {
	doc *Document
}

// Len returns the number of paragraphs.
func (l ParagraphList) Len() int {
	return len(l.doc.paragraphs)
}

// At returns paragraph i. It panics if i is out of range, like a slice index.
func (l ParagraphList) At(i int) *Paragraph {
	return l.doc.paragraphs[i]
}

// Slice returns a copy of paragraphs [from, to).
func (l ParagraphList) Slice(from, to int) ([]*Paragraph, error) {
	if from < 0 || from > to || to > len(l.doc.paragraphs) {
		return nil, fmt.Errorf("paragraphs [%d,%d) of %d: %w", from, to, len(l.doc.paragraphs), ErrRange)
	}
	return slices.Clone(l.doc.paragraphs[from:to]), nil
}

// SetAll always fails; replace text with Document.SetText instead.
func (l ParagraphList) SetAll(paragraphs ...*Paragraph) error {
	return fmt.Errorf("setting paragraphs: %w", ErrUnsupported)
}

// RemoveRange always fails; delete text with Document.Delete instead.
func (l ParagraphList) RemoveRange(from, to int) error {
	return fmt.Errorf("removing paragraphs [%d,%d): %w", from, to, ErrUnsupported)
}
