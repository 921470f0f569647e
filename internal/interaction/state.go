// Package interaction holds the transient hover and selection state of the
// highlighted text view. State is a value owned by the top-level controller;
// every transition returns a new State.
package interaction

import "github.com/zjrosen/tokenlens/internal/highlight"

// State is the hover/selection state for one viewing session.
type State struct {
	hovered    int
	hasHovered bool
	selected   highlight.Token
	hasSelect  bool
}

// Hover marks the token at index as hovered.
func (s State) Hover(index int) State {
	s.hovered = index
	s.hasHovered = true
	return s
}

// Leave clears the hover if index is the hovered token. A late leave event
// for a token that is no longer hovered is ignored.
func (s State) Leave(index int) State {
	if s.hasHovered && s.hovered == index {
		s.hovered = 0
		s.hasHovered = false
	}
	return s
}

// ClearHover clears the hover unconditionally.
func (s State) ClearHover() State {
	s.hovered = 0
	s.hasHovered = false
	return s
}

// Select records tok as the selected token, replacing any previous one.
func (s State) Select(tok highlight.Token) State {
	s.selected = tok
	s.hasSelect = true
	return s
}

// Reset clears hover and selection. Called whenever the text or token list
// is cleared or replaced.
func (s State) Reset() State {
	return State{}
}

// Hovered returns the hovered token index.
func (s State) Hovered() (int, bool) {
	return s.hovered, s.hasHovered
}

// IsHovered reports whether index is the hovered token.
func (s State) IsHovered(index int) bool {
	return s.hasHovered && s.hovered == index
}

// Selected returns the selected token.
func (s State) Selected() (highlight.Token, bool) {
	return s.selected, s.hasSelect
}

// Empty reports whether nothing is hovered or selected.
func (s State) Empty() bool {
	return !s.hasHovered && !s.hasSelect
}
