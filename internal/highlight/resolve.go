package highlight

// Position is the byte range [Start, End) of the source text that a token
// was aligned to.
type Position struct {
	Start      int
	End        int
	TokenIndex int
}

// Len returns the length of the range in bytes.
func (p Position) Len() int {
	return p.End - p.Start
}

// Resolve aligns tokens with text in a single left-to-right pass.
//
// Special tokens, tokens the policy does not consider (see Policy.Eligible)
// and tokens whose cleaned text is empty are skipped. Each remaining token is
// searched case-insensitively from a cursor that starts at 0 and moves to the
// end of the last match, so positions come out ordered and non-overlapping and
// an earlier repeat of a substring is never matched again. Tokens that cannot
// be found are dropped without moving the cursor.
func Resolve(text string, tokens []Token, policy Policy) []Position {
	positions, _ := resolve(text, tokens, policy)
	return positions
}

// resolve is Resolve that also reports how many eligible tokens were not found.
func resolve(text string, tokens []Token, policy Policy) ([]Position, int) {
	var (
		positions []Position
		misses    int
		cursor    int
	)

	for i, tok := range tokens {
		if tok.IsSpecial || !policy.Eligible(tok.AIProbability) {
			continue
		}
		needle := CleanTokenText(tok.Text)
		if needle == "" {
			continue
		}

		start, end, ok := IndexFold(text, needle, cursor)
		if !ok {
			misses++
			continue
		}

		positions = append(positions, Position{Start: start, End: end, TokenIndex: i})
		cursor = end
	}

	return positions, misses
}
