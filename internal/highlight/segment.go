package highlight

// Segment is a contiguous slice of the source text. Token segments carry the
// index and a copy of the token they were resolved from.
type Segment struct {
	Text       string
	IsToken    bool
	TokenIndex int
	Token      Token
}

// Segments partitions text into plain and token segments using positions.
// Concatenating the Text of the result always yields text. No segment is
// empty, so an empty text produces no segments at all.
//
// Positions that start before the previous one ended, are empty, or fall
// outside text are ignored.
func Segments(text string, positions []Position, tokens []Token) []Segment {
	if text == "" {
		return nil
	}
	if len(positions) == 0 {
		return []Segment{{Text: text, TokenIndex: -1}}
	}

	segments := make([]Segment, 0, 2*len(positions)+1)
	last := 0

	for _, pos := range positions {
		if pos.Start < last || pos.End <= pos.Start || pos.End > len(text) {
			continue
		}

		if pos.Start > last {
			segments = append(segments, Segment{Text: text[last:pos.Start], TokenIndex: -1})
		}

		seg := Segment{
			Text:       text[pos.Start:pos.End],
			IsToken:    true,
			TokenIndex: pos.TokenIndex,
		}
		if pos.TokenIndex >= 0 && pos.TokenIndex < len(tokens) {
			seg.Token = tokens[pos.TokenIndex]
		}
		segments = append(segments, seg)

		last = pos.End
	}

	if last < len(text) {
		segments = append(segments, Segment{Text: text[last:], TokenIndex: -1})
	}

	return segments
}
