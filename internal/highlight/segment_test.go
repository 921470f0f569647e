package highlight

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSegments_NoPositions(t *testing.T) {
	got := Segments("hello world", nil, nil)

	require.Equal(t, []Segment{{Text: "hello world", TokenIndex: -1}}, got)
}

func TestSegments_EmptyText(t *testing.T) {
	require.Empty(t, Segments("", nil, nil))
	require.Empty(t, Segments("", []Position{{Start: 0, End: 0}}, nil))
}

func TestSegments_HelloWorld(t *testing.T) {
	tokens := []Token{tok("hello", 0.9), tok("world", 0.2)}
	positions := Resolve("hello world", tokens, DefaultPolicy())

	got := Segments("hello world", positions, tokens)

	require.Equal(t, []Segment{
		{Text: "hello", IsToken: true, TokenIndex: 0, Token: tokens[0]},
		{Text: " world", TokenIndex: -1},
	}, got)
}

func TestSegments_GapsAndTrailing(t *testing.T) {
	tokens := []Token{tok("b", 0.9), tok("d", 0.9)}
	positions := []Position{{Start: 1, End: 2, TokenIndex: 0}, {Start: 3, End: 4, TokenIndex: 1}}

	got := Segments("abcde", positions, tokens)

	require.Equal(t, []Segment{
		{Text: "a", TokenIndex: -1},
		{Text: "b", IsToken: true, TokenIndex: 0, Token: tokens[0]},
		{Text: "c", TokenIndex: -1},
		{Text: "d", IsToken: true, TokenIndex: 1, Token: tokens[1]},
		{Text: "e", TokenIndex: -1},
	}, got)
}

func TestSegments_AdjacentTokensHaveNoEmptyGap(t *testing.T) {
	tokens := []Token{tok("walk", 0.9), tok("##ing", 0.9)}
	positions := Resolve("walking", tokens, DefaultPolicy())

	got := Segments("walking", positions, tokens)

	require.Len(t, got, 2)
	require.Equal(t, "walk", got[0].Text)
	require.Equal(t, "ing", got[1].Text)
}

func TestSegments_IgnoresInvalidPositions(t *testing.T) {
	positions := []Position{
		{Start: 2, End: 4, TokenIndex: 0},
		{Start: 3, End: 5, TokenIndex: 1}, // overlaps
		{Start: 5, End: 5, TokenIndex: 2}, // empty
		{Start: 5, End: 99, TokenIndex: 3}, // out of range
	}

	got := Segments("abcdefg", positions, nil)

	require.Equal(t, []Segment{
		{Text: "ab", TokenIndex: -1},
		{Text: "cd", IsToken: true, TokenIndex: 0},
		{Text: "efg", TokenIndex: -1},
	}, got)
}
