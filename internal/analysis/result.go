// Package analysis models the payload returned by the AI-text classification
// service and loads it from disk.
package analysis

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/zjrosen/tokenlens/internal/highlight"
)

// MaxChars is the input limit of the classification service, in characters.
const MaxChars = 10000

var (
	// ErrTextTooLong is returned when the text exceeds MaxChars.
	ErrTextTooLong = errors.New("text exceeds character limit")
	// ErrScoreRange is returned when the overall score is outside [0, 1].
	ErrScoreRange = errors.New("score out of range")
)

// Result is one classification of a text.
type Result struct {
	Text            string
	Score           float64 // human likelihood in [0, 1]; NaN when absent
	Explanation     string
	Examples        TextList
	Recommendations TextList
	Tokens          []highlight.Token
}

// Scored reports whether the service returned an overall score.
func (r Result) Scored() bool {
	return !math.IsNaN(r.Score)
}

// Verdict classifies the overall score.
func (r Result) Verdict() Verdict {
	return VerdictFor(r.Score)
}

// ContentKey identifies the text and token list, ignoring score and
// explanation. Two results with the same key align identically.
func (r Result) ContentKey() string {
	return highlight.Fingerprint(r.Text, r.Tokens, highlight.Policy{})
}

// Advice returns the lines shown under Recommendations. The service usually
// sends its suggestions as examples, so Examples is used when Recommendations
// is empty.
func (r Result) Advice() TextList {
	if len(r.Recommendations) > 0 {
		return r.Recommendations
	}
	return r.Examples
}

// Empty reports whether there is no text to show.
func (r Result) Empty() bool {
	return r.Text == ""
}

// Validate checks the limits the service enforces on its input and output.
// Token-level problems are tolerated; the highlight core handles them.
func (r Result) Validate() error {
	var errs []error
	if n := CharCount(r.Text); n > MaxChars {
		errs = append(errs, fmt.Errorf("%w: %d characters (max %d)", ErrTextTooLong, n, MaxChars))
	}
	if r.Scored() && (r.Score < 0 || r.Score > 1) {
		errs = append(errs, fmt.Errorf("%w: %v", ErrScoreRange, r.Score))
	}
	return errors.Join(errs...)
}

// CharCount counts user-perceived characters (grapheme clusters).
func CharCount(text string) int {
	return uniseg.GraphemeClusterCount(text)
}

// TextList is a list of human-readable lines. The service sends it either as
// a single string or as a list of strings.
type TextList []string

// String joins the list with newlines.
func (l TextList) String() string {
	return strings.Join(l, "\n")
}

// Verdict is the coarse reading of the overall score.
type Verdict int

const (
	VerdictUnknown Verdict = iota
	VerdictAI
	VerdictUncertain
	VerdictHuman
)

// VerdictFor buckets a human-likelihood score.
func VerdictFor(score float64) Verdict {
	switch {
	case math.IsNaN(score):
		return VerdictUnknown
	case score < 0.3:
		return VerdictAI
	case score < 0.7:
		return VerdictUncertain
	default:
		return VerdictHuman
	}
}

func (v Verdict) String() string {
	switch v {
	case VerdictAI:
		return "Likely AI-generated"
	case VerdictUncertain:
		return "Uncertain"
	case VerdictHuman:
		return "Likely human-written"
	default:
		return "Not analyzed"
	}
}
