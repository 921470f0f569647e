package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/tokenlens/internal/highlight"
)

func TestVerdictFor(t *testing.T) {
	tests := []struct {
		score float64
		want  Verdict
		label string
	}{
		{math.NaN(), VerdictUnknown, "Not analyzed"},
		{0.0, VerdictAI, "Likely AI-generated"},
		{0.29, VerdictAI, "Likely AI-generated"},
		{0.3, VerdictUncertain, "Uncertain"},
		{0.69, VerdictUncertain, "Uncertain"},
		{0.7, VerdictHuman, "Likely human-written"},
		{1.0, VerdictHuman, "Likely human-written"},
	}
	for _, tt := range tests {
		got := VerdictFor(tt.score)
		assert.Equal(t, tt.want, got, "score %v", tt.score)
		assert.Equal(t, tt.label, got.String())
	}
}

func TestResult_Validate(t *testing.T) {
	require.NoError(t, Result{Text: "ok", Score: 0.5}.Validate())
	require.NoError(t, Result{Text: "ok", Score: math.NaN()}.Validate())

	err := Result{Text: strings.Repeat("a", MaxChars+1), Score: 0.5}.Validate()
	require.ErrorIs(t, err, ErrTextTooLong)

	err = Result{Text: "ok", Score: 1.5}.Validate()
	require.ErrorIs(t, err, ErrScoreRange)

	err = Result{Text: strings.Repeat("a", MaxChars+1), Score: -1}.Validate()
	require.ErrorIs(t, err, ErrTextTooLong)
	require.ErrorIs(t, err, ErrScoreRange)
}

func TestCharCount_Graphemes(t *testing.T) {
	require.Equal(t, 5, CharCount("hello"))
	require.Equal(t, 6, CharCount("Привет"))
	// Flag emoji is two runes but one character.
	require.Equal(t, 1, CharCount("🇩🇪"))
}

func TestResult_ContentKey(t *testing.T) {
	a := Result{Text: "x", Score: 0.1, Tokens: []highlight.Token{{Text: "x", AIProbability: 0.9}}}
	b := a
	b.Score = 0.9
	b.Explanation = "different"
	c := a
	c.Text = "y"

	require.Equal(t, a.ContentKey(), b.ContentKey())
	require.NotEqual(t, a.ContentKey(), c.ContentKey())
}

func TestTextList_String(t *testing.T) {
	require.Equal(t, "a\nb", TextList{"a", "b"}.String())
	require.Equal(t, "", TextList(nil).String())
}

func TestResult_AdviceFallsBackToExamples(t *testing.T) {
	res := Result{Examples: TextList{"Add a personal anecdote"}}
	assert.Equal(t, TextList{"Add a personal anecdote"}, res.Advice())

	res.Recommendations = TextList{"Vary sentence length"}
	assert.Equal(t, TextList{"Vary sentence length"}, res.Advice())

	assert.Empty(t, Result{}.Advice())
}
