package highlight

import (
	"context"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/tokenlens/internal/cachemanager"
	"github.com/zjrosen/tokenlens/internal/log"
	"github.com/zjrosen/tokenlens/internal/tracing"
)

// Derivation is the cached result of aligning one (text, tokens) pair.
// Its slices are shared between callers and must not be modified.
type Derivation struct {
	Key       string
	Positions []Position
	Segments  []Segment
	Misses    int
}

type deriveInput struct {
	key    string
	text   string
	tokens []Token
}

// Deriver memoizes Resolve and Segments keyed on Fingerprint.
type Deriver struct {
	policy   Policy
	store    cachemanager.CacheManager[string, Derivation]
	cache    *cachemanager.ReadThroughCache[string, Derivation, deriveInput]
	ttl      time.Duration
	tracer   trace.Tracer
	computed atomic.Int64
}

// DeriverOption customizes a Deriver.
type DeriverOption func(*deriverOptions)

type deriverOptions struct {
	cache  cachemanager.CacheManager[string, Derivation]
	ttl    time.Duration
	tracer trace.Tracer
}

// WithCache replaces the default in-memory cache.
func WithCache(cache cachemanager.CacheManager[string, Derivation]) DeriverOption {
	return func(o *deriverOptions) { o.cache = cache }
}

// WithTTL sets how long an unused derivation stays cached.
func WithTTL(ttl time.Duration) DeriverOption {
	return func(o *deriverOptions) { o.ttl = ttl }
}

// WithTracer sets the tracer used for derivation spans. The global
// OpenTelemetry tracer is used otherwise.
func WithTracer(tracer trace.Tracer) DeriverOption {
	return func(o *deriverOptions) { o.tracer = tracer }
}

// NewDeriver creates a Deriver for policy.
func NewDeriver(policy Policy, opts ...DeriverOption) *Deriver {
	o := deriverOptions{ttl: cachemanager.DefaultExpiration}
	for _, opt := range opts {
		opt(&o)
	}
	if o.cache == nil {
		o.cache = cachemanager.NewInMemoryCacheManager[string, Derivation](
			"derivations", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval)
	}
	if o.tracer == nil {
		o.tracer = otel.Tracer("github.com/zjrosen/tokenlens/internal/highlight")
	}

	d := &Deriver{
		policy: policy,
		store:  o.cache,
		ttl:    o.ttl,
		tracer: o.tracer,
	}
	d.cache = cachemanager.NewReadThroughCache[string, Derivation, deriveInput](o.cache, d.compute)
	return d
}

// Policy returns the policy the Deriver was created with.
func (d *Deriver) Policy() Policy {
	return d.policy
}

// WithPolicy returns a Deriver for policy that shares d's cache and tracer.
// Cached derivations never collide because the policy is part of the key.
func (d *Deriver) WithPolicy(policy Policy) *Deriver {
	return NewDeriver(policy, WithCache(d.store), WithTTL(d.ttl), WithTracer(d.tracer))
}

// Derive returns positions and segments for text and tokens, computing them
// only when this exact input has not been seen recently.
func (d *Deriver) Derive(ctx context.Context, text string, tokens []Token) Derivation {
	key := Fingerprint(text, tokens, d.policy)
	// compute never fails, so neither does the cache.
	derivation, _ := d.cache.GetWithRefresh(ctx, key, deriveInput{key: key, text: text, tokens: tokens}, d.ttl)
	return derivation
}

// Computations returns how many times the alignment pass actually ran.
func (d *Deriver) Computations() int64 {
	return d.computed.Load()
}

func (d *Deriver) compute(ctx context.Context, in deriveInput) (Derivation, error) {
	_, span := d.tracer.Start(ctx, tracing.SpanDerive)
	defer span.End()

	d.computed.Add(1)

	positions, misses := resolve(in.text, in.tokens, d.policy)
	segments := Segments(in.text, positions, in.tokens)
	key := in.key

	span.SetAttributes(
		attribute.Int(tracing.AttrTextBytes, len(in.text)),
		attribute.Int(tracing.AttrTokenCount, len(in.tokens)),
		attribute.Int(tracing.AttrPositions, len(positions)),
		attribute.Int(tracing.AttrSegments, len(segments)),
		attribute.Int(tracing.AttrMisses, misses),
		attribute.String(tracing.AttrPolicyMode, string(d.policy.Mode)),
		attribute.String(tracing.AttrFingerprint, key),
	)

	if misses > 0 {
		log.Debug(log.CatAlign, "tokens not found in text", "misses", misses, "tokens", len(in.tokens))
	}
	log.Debug(log.CatAlign, "derived segments",
		"key", key, "positions", len(positions), "segments", len(segments))

	return Derivation{
		Key:       key,
		Positions: positions,
		Segments:  segments,
		Misses:    misses,
	}, nil
}
