package tracing

// Span names.
const (
	SpanDerive = "highlight.derive"
	SpanLoad   = "analysis.load"
)

// Span attribute keys.
const (
	AttrTextBytes    = "text.bytes"
	AttrTokenCount   = "tokens.count"
	AttrPositions    = "positions.count"
	AttrSegments     = "segments.count"
	AttrMisses       = "alignment.misses"
	AttrPolicyMode   = "policy.mode"
	AttrFingerprint  = "derivation.key"
	AttrSourcePath   = "source.path"
	AttrSourceFormat = "source.format"
)
