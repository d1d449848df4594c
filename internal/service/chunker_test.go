package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkText_Empty(t *testing.T) {
	assert.Nil(t, ChunkText("", 150, 25))
}

func TestChunkText_ShorterThanWindow(t *testing.T) {
	windows := ChunkText("short text", 150, 25)
	require.Len(t, windows, 1)
	assert.Equal(t, "short text", windows[0])
}

func TestChunkText_ExactOverlap(t *testing.T) {
	text := strings.Repeat("a", 100) + strings.Repeat("b", 100) + strings.Repeat("c", 100)
	windows := ChunkText(text, 150, 25)

	require.GreaterOrEqual(t, len(windows), 2)
	for i := 1; i < len(windows); i++ {
		prev := []rune(windows[i-1])
		curr := []rune(windows[i])
		// Consecutive windows share the trailing 25 runes of the previous one.
		tail := string(prev[len(prev)-25:])
		head := string(curr[:25])
		assert.Equal(t, tail, head, "windows %d and %d", i-1, i)
	}
}

func TestChunkText_FullCoverage(t *testing.T) {
	text := strings.Repeat("x", 500)
	windows := ChunkText(text, 150, 25)

	step := 150 - 25
	covered := 0
	for i, w := range windows {
		if i == len(windows)-1 {
			covered = i*step + len([]rune(w))
		}
	}
	assert.Equal(t, len([]rune(text)), covered)
}

func TestChunkText_FinalWindowShorter(t *testing.T) {
	// 150 + 125 runes: second window starts at 125 and runs to 275.
	// A 300-rune text leaves a final window of 50 runes starting at 250.
	text := strings.Repeat("y", 300)
	windows := ChunkText(text, 150, 25)

	require.Len(t, windows, 3)
	assert.Len(t, []rune(windows[0]), 150)
	assert.Len(t, []rune(windows[1]), 150)
	assert.Len(t, []rune(windows[2]), 50)
}

func TestChunkText_UnicodeRunes(t *testing.T) {
	text := strings.Repeat("ж", 200)
	windows := ChunkText(text, 150, 25)

	require.Len(t, windows, 2)
	assert.Len(t, []rune(windows[0]), 150)
	assert.Len(t, []rune(windows[1]), 75)
}

func TestChunkText_InvalidParamsFallBack(t *testing.T) {
	text := strings.Repeat("z", 400)

	// Non-positive size falls back to the default window.
	windows := ChunkText(text, 0, 25)
	require.NotEmpty(t, windows)
	assert.Len(t, []rune(windows[0]), DefaultChunkSize)

	// Overlap >= size falls back to a quarter of the window.
	windows = ChunkText(text, 100, 100)
	require.GreaterOrEqual(t, len(windows), 2)
	first := []rune(windows[0])
	second := []rune(windows[1])
	assert.Equal(t, string(first[75:]), string(second[:25]))
}
