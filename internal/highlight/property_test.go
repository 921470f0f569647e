package highlight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// genText draws text from a small alphabet so tokens actually match.
func genText() *rapid.Generator[string] {
	return rapid.StringOfN(rapid.RuneFrom([]rune("abcAB #é\n")), 0, 40, -1)
}

func genTokens(text string) *rapid.Generator[[]Token] {
	return rapid.Custom(func(t *rapid.T) []Token {
		n := rapid.IntRange(0, 12).Draw(t, "n")
		tokens := make([]Token, n)
		for i := range tokens {
			var s string
			if len(text) > 0 && rapid.Bool().Draw(t, "fromText") {
				start := rapid.IntRange(0, len(text)-1).Draw(t, "start")
				end := rapid.IntRange(start, min(start+4, len(text))).Draw(t, "end")
				s = strings.ToUpper(text[start:end])
			} else {
				s = rapid.StringOfN(rapid.RuneFrom([]rune("abcxyz")), 0, 3, -1).Draw(t, "s")
			}
			if rapid.Bool().Draw(t, "marker") {
				s = ContinuationMarker + s
			}
			tokens[i] = Token{
				Text:          s,
				AIProbability: rapid.Float64Range(0, 1).Draw(t, "prob"),
				IsSpecial:     rapid.IntRange(0, 9).Draw(t, "special") == 0,
			}
		}
		return tokens
	})
}

func genPolicy() *rapid.Generator[Policy] {
	return rapid.Custom(func(t *rapid.T) Policy {
		p := DefaultPolicy()
		if rapid.Bool().Draw(t, "proportional") {
			p.Mode = ModeProportional
		}
		p.Threshold = rapid.Float64Range(0, 1).Draw(t, "threshold")
		return p
	})
}

func TestProperty_LosslessPartition(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := genText().Draw(rt, "text")
		tokens := genTokens(text).Draw(rt, "tokens")
		policy := genPolicy().Draw(rt, "policy")

		segments := Segments(text, Resolve(text, tokens, policy), tokens)

		var b strings.Builder
		for _, s := range segments {
			if s.Text == "" {
				rt.Fatalf("empty segment in %+v", segments)
			}
			b.WriteString(s.Text)
		}
		if b.String() != text {
			rt.Fatalf("partition %q does not rebuild %q", b.String(), text)
		}
	})
}

func TestProperty_OrderedNonOverlapping(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := genText().Draw(rt, "text")
		tokens := genTokens(text).Draw(rt, "tokens")
		policy := genPolicy().Draw(rt, "policy")

		positions := Resolve(text, tokens, policy)
		for i, p := range positions {
			if p.Start < 0 || p.End > len(text) || p.Start >= p.End {
				rt.Fatalf("position %d out of range: %+v", i, p)
			}
			if i > 0 {
				prev := positions[i-1]
				if p.Start < prev.End {
					rt.Fatalf("positions overlap: %+v then %+v", prev, p)
				}
				if p.TokenIndex <= prev.TokenIndex {
					rt.Fatalf("token order not preserved: %+v then %+v", prev, p)
				}
			}
		}
	})
}

func TestProperty_Deterministic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := genText().Draw(rt, "text")
		tokens := genTokens(text).Draw(rt, "tokens")
		policy := genPolicy().Draw(rt, "policy")

		a := Segments(text, Resolve(text, tokens, policy), tokens)
		b := Segments(text, Resolve(text, tokens, policy), tokens)
		require.Equal(rt, a, b)
		require.Equal(rt, Fingerprint(text, tokens, policy), Fingerprint(text, tokens, policy))
	})
}

func TestProperty_SpecialTokensNeverResolved(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := genText().Draw(rt, "text")
		tokens := genTokens(text).Draw(rt, "tokens")
		policy := genPolicy().Draw(rt, "policy")

		for _, p := range Resolve(text, tokens, policy) {
			if tokens[p.TokenIndex].IsSpecial {
				rt.Fatalf("special token %d resolved", p.TokenIndex)
			}
		}
	})
}

func TestProperty_ResolvedTextMatchesToken(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := genText().Draw(rt, "text")
		tokens := genTokens(text).Draw(rt, "tokens")

		for _, p := range Resolve(text, tokens, DefaultPolicy()) {
			want := CleanTokenText(tokens[p.TokenIndex].Text)
			if !strings.EqualFold(text[p.Start:p.End], want) {
				rt.Fatalf("resolved %q for token %q", text[p.Start:p.End], want)
			}
		}
	})
}

func TestProperty_IntensityMonotonic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		policy := genPolicy().Draw(rt, "policy")
		p1 := rapid.Float64Range(0, 1).Draw(rt, "p1")
		p2 := rapid.Float64Range(p1, 1).Draw(rt, "p2")

		i1, i2 := policy.Intensity(p1), policy.Intensity(p2)
		if i2 < i1 {
			rt.Fatalf("intensity(%v)=%v < intensity(%v)=%v", p2, i2, p1, i1)
		}
		if i2 < 0 || i2 > policy.MaxOpacity+1e-12 {
			rt.Fatalf("intensity %v outside [0, %v]", i2, policy.MaxOpacity)
		}
	})
}
