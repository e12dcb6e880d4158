package syntax

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	zedit "github.com/rasteric/zedit-buffer"
)

const goSource = "package main\n\nfunc main() {\n\tprintln(\"hi\")\n}\n"

func TestCompute(t *testing.T) {
	h := New("go", "monokai")
	ranges, err := h.Compute(context.Background(), goSource)
	require.NoError(t, err)
	require.NotEmpty(t, ranges)

	assert.Equal(t, 0, ranges[0].Start)
	assert.Equal(t, 7, ranges[0].End)
	total := len([]rune(goSource))
	for _, r := range ranges {
		assert.Equal(t, h.Owner(), r.Owner)
		assert.Less(t, r.Start, r.End)
		assert.LessOrEqual(t, r.End, total)
		assert.NotNil(t, r.Style)
	}
}

func TestComputeCancelled(t *testing.T) {
	h := New("go", "monokai")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := h.Compute(ctx, goSource)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUnknownLanguage(t *testing.T) {
	h := New("no-such-language", "no-such-theme")
	_, err := h.Compute(context.Background(), "just text")
	assert.NoError(t, err)
}

func TestApply(t *testing.T) {
	doc := zedit.NewFromString(goSource, nil)
	other, err := doc.Ranges().Add(zedit.HighlightRange{Start: 0, End: 3})
	require.NoError(t, err)

	h := New("go", "monokai")
	ranges, err := h.Compute(context.Background(), goSource)
	require.NoError(t, err)
	require.NoError(t, h.Apply(doc, ranges))
	assert.Len(t, doc.Ranges().Owned(h.Owner()), len(ranges))

	var changes []zedit.RangeChange
	doc.Ranges().OnChange(func(c zedit.RangeChange) { changes = append(changes, c) })
	require.NoError(t, h.Apply(doc, ranges))
	assert.Empty(t, changes)

	require.NoError(t, h.Apply(doc, ranges[:1]))
	assert.Len(t, doc.Ranges().Owned(h.Owner()), 1)
	_, ok := doc.Ranges().Range(other)
	assert.True(t, ok)

	stale := append(ranges[:1:1], zedit.HighlightRange{Start: 0, End: 1000})
	require.NoError(t, h.Apply(doc, stale))
	assert.Len(t, doc.Ranges().Owned(h.Owner()), 1)
}

func TestAttach(t *testing.T) {
	doc := zedit.NewFromString(goSource, nil)
	h := New("go", "monokai")
	posted := make(chan func(), 16)
	post := func(fn func()) { posted <- fn }

	detach := h.Attach(doc, post, time.Millisecond)
	defer detach()

	pump := func() {
		t.Helper()
		deadline := time.After(5 * time.Second)
		for len(doc.Ranges().Owned(h.Owner())) == 0 {
			select {
			case fn := <-posted:
				fn()
			case <-deadline:
				t.Fatal("no syntax ranges applied")
			}
		}
	}
	pump()

	h2 := New("go", "monokai")
	assert.Empty(t, doc.Ranges().Owned(h2.Owner()))

	require.NoError(t, doc.SetText("package other\n"))
	assert.Empty(t, doc.Ranges().Owned(h.Owner()))
	pump()
	for _, id := range doc.Ranges().Owned(h.Owner()) {
		r, _ := doc.Ranges().Range(id)
		assert.LessOrEqual(t, r.End, doc.Length())
	}
}
