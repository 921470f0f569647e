package highlight

import (
	"fmt"
	"strconv"
)

// Mode selects how token probabilities map to highlights.
type Mode string

const (
	// ModeThresholded highlights only tokens at or above the threshold and
	// ramps intensity from BaseOpacity to MaxOpacity above it.
	ModeThresholded Mode = "thresholded"
	// ModeProportional colors every token proportionally to its probability.
	// Superseded by ModeThresholded; kept for comparison.
	ModeProportional Mode = "proportional"
)

// ParseMode converts a config value into a Mode. Empty means thresholded.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeThresholded:
		return ModeThresholded, nil
	case ModeProportional:
		return ModeProportional, nil
	default:
		return "", fmt.Errorf("unknown highlight policy %q (must be %q or %q)", s, ModeThresholded, ModeProportional)
	}
}

// Default policy values.
const (
	DefaultThreshold   = 0.6
	DefaultBaseOpacity = 0.1
	DefaultMaxOpacity  = 0.6
)

// Contrast is the text weight used on top of a highlight background.
type Contrast int

const (
	ContrastNormal Contrast = iota
	ContrastStrong
)

// Policy decides which tokens are highlighted and how strongly.
type Policy struct {
	Mode        Mode
	Threshold   float64
	BaseOpacity float64
	MaxOpacity  float64
}

// DefaultPolicy returns the thresholded policy with a 0.6 cutoff.
func DefaultPolicy() Policy {
	return Policy{
		Mode:        ModeThresholded,
		Threshold:   DefaultThreshold,
		BaseOpacity: DefaultBaseOpacity,
		MaxOpacity:  DefaultMaxOpacity,
	}
}

// Validate checks the policy parameters.
func (p Policy) Validate() error {
	if _, err := ParseMode(string(p.Mode)); err != nil {
		return err
	}
	if !validProbability(p.Threshold) || p.Threshold < 0 || p.Threshold > 1 {
		return fmt.Errorf("threshold must be between 0 and 1, got %v", p.Threshold)
	}
	if p.BaseOpacity < 0 || p.MaxOpacity > 1 || p.BaseOpacity > p.MaxOpacity {
		return fmt.Errorf("opacity range must satisfy 0 <= base <= max <= 1, got base=%v max=%v", p.BaseOpacity, p.MaxOpacity)
	}
	return nil
}

// Eligible reports whether a token with probability prob takes part in
// alignment at all. The thresholded policy filters before resolution; the
// proportional policy aligns every token.
func (p Policy) Eligible(prob float64) bool {
	if p.Mode == ModeProportional {
		return true
	}
	return p.Highlighted(prob)
}

// Highlighted reports whether a token with probability prob is visually
// flagged. Invalid probabilities are never highlighted.
func (p Policy) Highlighted(prob float64) bool {
	if !validProbability(prob) {
		return false
	}
	if p.Mode == ModeProportional {
		return prob > 0
	}
	return prob >= p.Threshold
}

// Intensity returns the highlight opacity for prob, in [0, MaxOpacity].
// It is non-decreasing in prob.
func (p Policy) Intensity(prob float64) float64 {
	if !p.Highlighted(prob) {
		return 0
	}
	prob = min(prob, 1)

	if p.Mode == ModeProportional {
		return prob * p.MaxOpacity
	}

	span := 1 - p.Threshold
	if span <= 0 {
		return p.MaxOpacity
	}
	t := (prob - p.Threshold) / span
	return p.BaseOpacity + t*(p.MaxOpacity-p.BaseOpacity)
}

// Contrast returns the text weight for prob.
func (p Policy) Contrast(prob float64) Contrast {
	if p.Highlighted(prob) {
		return ContrastStrong
	}
	return ContrastNormal
}

// Tooltip returns the hover text for a highlighted token.
func (p Policy) Tooltip(tok Token) (string, bool) {
	if tok.IsSpecial || !p.Highlighted(tok.AIProbability) {
		return "", false
	}
	return tok.DisplayText() + ": " + FormatPercent(tok.AIProbability) + " AI probability", true
}

// FormatPercent renders a probability as a percentage with one decimal.
func FormatPercent(prob float64) string {
	return strconv.FormatFloat(prob*100, 'f', 1, 64) + "%"
}
