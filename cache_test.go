package zedit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineLookups(t *testing.T) {
	for _, guess := range []int{1, 2, 40} {
		config := NewConfig()
		config.LineLengthGuess = guess
		d := NewFromString("ab\ncde\n\nf", config)
		require.Equal(t, 9, d.Length())

		tests := []struct {
			offset int
			line   int
			column int
		}{
			{0, 0, 0},
			{2, 0, 2},
			{3, 1, 0},
			{6, 1, 3},
			{7, 2, 0},
			{8, 3, 0},
			{9, 3, 1},
		}
		for _, tt := range tests {
			line, err := d.LineFor(tt.offset)
			require.NoError(t, err)
			assert.Equal(t, tt.line, line, "guess %d offset %d", guess, tt.offset)
			pos, err := d.LineColumnFor(tt.offset)
			require.NoError(t, err)
			assert.Equal(t, CharPos{Line: tt.line, Column: tt.column}, pos, "guess %d offset %d", guess, tt.offset)
		}
		assert.GreaterOrEqual(t, d.cache.guess, 1)
	}
}

func TestLineOffsets(t *testing.T) {
	d := newDoc(t, "ab\ncde\n\nf")
	starts := []int{0, 3, 7, 8}
	ends := []int{2, 6, 7, 9}
	for line := range starts {
		start, err := d.LineStartOffset(line)
		require.NoError(t, err)
		assert.Equal(t, starts[line], start)
		end, err := d.LineEndOffset(line)
		require.NoError(t, err)
		assert.Equal(t, ends[line], end)
	}

	_, err := d.LineStartOffset(4)
	assert.ErrorIs(t, err, ErrRange)
	_, err = d.LineEndOffset(-1)
	assert.ErrorIs(t, err, ErrRange)
	_, err = d.LineFor(10)
	assert.ErrorIs(t, err, ErrRange)
	_, err = d.LineColumnFor(-1)
	assert.ErrorIs(t, err, ErrRange)
}

func TestOffsetFor(t *testing.T) {
	d := newDoc(t, "ab\ncde\n\nf")
	off, err := d.OffsetFor(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, off)
	off, err = d.OffsetFor(1, 99)
	require.NoError(t, err)
	assert.Equal(t, 6, off)
	_, err = d.OffsetFor(7, 0)
	assert.ErrorIs(t, err, ErrRange)

	start, end := d.OffsetsOf(CharInterval{Start: CharPos{1, 1}, End: CharPos{3, 1}})
	assert.Equal(t, 4, start)
	assert.Equal(t, 9, end)
	start, end = d.OffsetsOf(CharInterval{Start: CharPos{9, 0}, End: CharPos{0, 1}})
	assert.Equal(t, 1, start)
	assert.Equal(t, 9, end)
}

func TestCacheWatermark(t *testing.T) {
	d := newDoc(t, "a\nb\nc\nd\ne")
	_, err := d.LineStartOffset(4)
	require.NoError(t, err)
	assert.Equal(t, 4, d.cache.validUpTo)

	require.NoError(t, d.Insert(2, "xx"))
	assert.Equal(t, 1, d.cache.validUpTo)

	start, err := d.LineStartOffset(3)
	require.NoError(t, err)
	assert.Equal(t, 8, start)
	assert.Equal(t, 3, d.cache.validUpTo)

	require.NoError(t, d.Delete(0, 2))
	assert.Equal(t, 0, d.cache.validUpTo)
	start, err = d.LineStartOffset(3)
	require.NoError(t, err)
	assert.Equal(t, 8, start)
	assert.Equal(t, "xxb\nc\nd\ne", d.Text())
}

func TestGuessAdapts(t *testing.T) {
	config := NewConfig()
	config.LineLengthGuess = 1
	d := NewFromString("aaaaaaaaa\nbbbbbbbbb\nccccccccc\nddddddddd", config)
	for o := 0; o <= d.Length(); o++ {
		_, err := d.LineFor(o)
		require.NoError(t, err)
	}
	assert.Greater(t, d.cache.guess, 1)
}
