// Package highlight aligns scored sub-word tokens with the text they were
// produced from and turns that alignment into renderable segments.
//
// The pipeline has three stages:
//
//	text + tokens -> Resolve -> []Position -> Segments -> []Segment
//
// followed by the Policy, which decides how each token segment is colored.
// Every stage is a pure function; Deriver memoizes the first two so that
// interaction changes (hover, selection) never re-run the alignment pass.
package highlight

import "math"

// Token is a sub-word unit emitted by the external tokenizer together with
// the classifier's AI probability for it. A token is identified by its index
// in the sequence the service returned.
type Token struct {
	Text            string
	AIProbability   float64
	IsSpecial       bool
	Examples        []string
	Recommendations []string
}

// DisplayText returns the token text with tokenizer artifacts removed.
func (t Token) DisplayText() string {
	return CleanTokenText(t.Text)
}

// validProbability reports whether p is usable for coloring. NaN and
// infinities come from malformed payloads and are treated as "no signal".
func validProbability(p float64) bool {
	return !math.IsNaN(p) && !math.IsInf(p, 0)
}
