package highlight

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCleanTokenText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"##ing", "ing"},
		{"hello", "hello"},
		{"##", ""},
		{"####x", "##x"},
		{"a##b", "a##b"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, CleanTokenText(tt.in))
		})
	}
}

func TestIndexFold(t *testing.T) {
	tests := []struct {
		name      string
		s, substr string
		from      int
		start     int
		end       int
		ok        bool
	}{
		{"exact", "hello world", "world", 0, 6, 11, true},
		{"case insensitive", "Hello World", "world", 0, 6, 11, true},
		{"needle upper", "hello world", "HELLO", 0, 0, 5, true},
		{"from skips earlier", "the the cat", "the", 1, 4, 7, true},
		{"not found", "hello", "xyz", 0, 0, 0, false},
		{"not found after cursor", "abc abc", "abc", 5, 0, 0, false},
		{"empty needle", "hello", "", 0, 0, 0, false},
		{"cursor at end", "hello", "o", 5, 0, 0, false},
		{"negative from", "hello", "h", -3, 0, 1, true},
		{"cyrillic", "Привет мир", "МИР", 0, 13, 19, true},
		{"needle longer than rest", "ab", "abc", 0, 0, 0, false},
		{"long s folds to s", "is this", "THIſ", 0, 3, 7, true},
		{"kelvin sign folds to k", "ok", "\u212a", 0, 1, 2, true},
		{"invalid byte only matches itself", "ab\xffc", "\xfe", 0, 0, 0, false},
		{"invalid byte matches same byte", "ab\xffc", "\xffc", 0, 2, 4, true},
		{"invalid byte is not replacement char", "a\xffb", "\ufffd", 0, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, ok := IndexFold(tt.s, tt.substr, tt.from)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				require.Equal(t, tt.start, start)
				require.Equal(t, tt.end, end)
			}
		})
	}
}

func TestIndexFold_DifferentByteLengths(t *testing.T) {
	// U+212A KELVIN SIGN lowercases to ASCII 'k' but is three bytes long.
	s := "o\u212Ay"
	start, end, ok := IndexFold(s, "ok", 0)
	require.True(t, ok)
	require.Equal(t, 0, start)
	require.Equal(t, 4, end)
	require.Equal(t, "o\u212A", s[start:end])
}
