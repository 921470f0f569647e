package highlight

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint returns a structural hash of everything a Derivation depends
// on. Two calls with equal inputs always return the same key.
func Fingerprint(text string, tokens []Token, policy Policy) string {
	h := fingerprinter{d: xxhash.New()}

	h.str(text)
	h.u64(uint64(len(tokens)))
	for _, tok := range tokens {
		h.str(tok.Text)
		h.f64(tok.AIProbability)
		h.flag(tok.IsSpecial)
		h.list(tok.Examples)
		h.list(tok.Recommendations)
	}

	h.str(string(policy.Mode))
	h.f64(policy.Threshold)
	h.f64(policy.BaseOpacity)
	h.f64(policy.MaxOpacity)

	return strconv.FormatUint(h.d.Sum64(), 16)
}

// fingerprinter length-prefixes every field so adjacent fields cannot collide.
type fingerprinter struct {
	d   *xxhash.Digest
	buf [8]byte
}

func (f *fingerprinter) u64(n uint64) {
	binary.LittleEndian.PutUint64(f.buf[:], n)
	_, _ = f.d.Write(f.buf[:])
}

func (f *fingerprinter) str(s string) {
	f.u64(uint64(len(s)))
	_, _ = f.d.WriteString(s)
}

func (f *fingerprinter) f64(v float64) {
	f.u64(math.Float64bits(v))
}

func (f *fingerprinter) flag(b bool) {
	if b {
		f.u64(1)
		return
	}
	f.u64(0)
}

func (f *fingerprinter) list(items []string) {
	f.u64(uint64(len(items)))
	for _, s := range items {
		f.str(s)
	}
}
