package highlight

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ContinuationMarker is the WordPiece prefix marking a token that attaches to
// the end of the previous token instead of starting a new word.
const ContinuationMarker = "##"

// CleanTokenText strips the continuation marker from a token's text so it can
// be located in the source text.
func CleanTokenText(s string) string {
	return strings.TrimPrefix(s, ContinuationMarker)
}

// IndexFold finds the first case-insensitive occurrence of substr in s at or
// after byte offset from. It returns the byte range [start, end) of the match
// in s. Folding is rune-wise, so end-start may differ from len(substr) when
// the two spellings encode to different lengths.
func IndexFold(s, substr string, from int) (start, end int, ok bool) {
	if from < 0 {
		from = 0
	}
	if substr == "" || from >= len(s) {
		return 0, 0, false
	}

	for i := from; i < len(s); {
		if e, matched := matchFoldAt(s, i, substr); matched {
			return i, e, true
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return 0, 0, false
}

// matchFoldAt reports whether substr matches s starting at byte i and returns
// the end offset of the match.
func matchFoldAt(s string, i int, substr string) (int, bool) {
	j := i
	for k := 0; k < len(substr); {
		if j >= len(s) {
			return 0, false
		}
		want, wsize := utf8.DecodeRuneInString(substr[k:])
		got, gsize := utf8.DecodeRuneInString(s[j:])
		if got == utf8.RuneError || want == utf8.RuneError {
			// Invalid bytes only match themselves.
			if s[j:j+gsize] != substr[k:k+wsize] {
				return 0, false
			}
		} else if !equalFoldRune(got, want) {
			return 0, false
		}
		j += gsize
		k += wsize
	}
	return j, true
}

// equalFoldRune reports whether a and b are equal under simple Unicode case
// folding, walking the fold orbit the same way strings.EqualFold does.
func equalFoldRune(a, b rune) bool {
	if a == b {
		return true
	}
	for r := unicode.SimpleFold(a); r != a; r = unicode.SimpleFold(r) {
		if r == b {
			return true
		}
	}
	return false
}
