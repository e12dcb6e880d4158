package zedit

import (
	"slices"
	"strings"
)

// Buffer is read access to text organized in lines. Both Document and its
// detached MemBuffer snapshots implement it, so that code such as a
// highlighter can run against either.
type Buffer interface {
	Line(n int) []rune
	Len() int
	LineLen(n int) int
	Rune(line, column int) rune
}

var (
	_ Buffer = (*Document)(nil)
	_ Buffer = (*MemBuffer)(nil)
)

// MemBuffer is a plain slice of lines, disconnected from any document.
type MemBuffer struct {
	rows [][]rune
}

func NewMemBuffer() *MemBuffer {
	lines := make([][]rune, 0)
	return &MemBuffer{rows: lines}
}

func (b *MemBuffer) Line(n int) []rune {
	return b.rows[n]
}

func (b *MemBuffer) Len() int {
	return len(b.rows)
}

func (b *MemBuffer) AppendLine(line []rune) {
	b.rows = append(b.rows, line)
}

func (b *MemBuffer) LineLen(n int) int {
	return len(b.rows[n])
}

func (b *MemBuffer) Rune(line, column int) rune {
	return b.rows[line][column]
}

// Length returns the number of runes including one separator between lines.
func (b *MemBuffer) Length() int {
	n := max(0, len(b.rows)-1)
	for _, row := range b.rows {
		n += len(row)
	}
	return n
}

// String joins the lines with '\n'.
func (b *MemBuffer) String() string {
	var sb strings.Builder
	for i, row := range b.rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(row))
	}
	return sb.String()
}

// Line returns a copy of paragraph n. It panics if n is out of range.
func (d *Document) Line(n int) []rune {
	return slices.Clone(d.paragraphs[n].text)
}

// Len returns the number of lines, which makes a Document a Buffer.
// Use Length for the number of runes.
func (d *Document) Len() int {
	return len(d.paragraphs)
}

// LineLen returns the length of paragraph n in runes.
func (d *Document) LineLen(n int) int {
	return d.paragraphs[n].Len()
}

// Rune returns the rune at the given line and column.
func (d *Document) Rune(line, column int) rune {
	return d.paragraphs[line].text[column]
}
