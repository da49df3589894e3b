// Package domain contains the core anti-forgery token registry: a bounded,
// in-memory collection of single-use tokens generated from a cryptographically
// secure random source and verified by exact match.
package domain

import (
	"crypto/rand"
	"encoding/base64"
	"io"
	"sync"

	apperrors "github.com/allisson/antiforgery/internal/errors"
)

// Default configuration applied by NewRegistry when no options override them.
const (
	// DefaultEntropy is the default number of random bytes per token.
	DefaultEntropy = 32

	// DefaultMaximum is the default capacity bound on live tokens.
	DefaultMaximum = 10
)

// Registry is a bounded FIFO registry of single-use anti-forgery tokens.
//
// Tokens are opaque URL-safe strings. The newest token sits at the tail of
// the collection; when generating at capacity, the oldest token is evicted
// first. Verification scans for an exact string match and, by default,
// consumes the matched token so it cannot be verified twice.
//
// Registry is safe for concurrent use by multiple goroutines.
type Registry struct {
	entropy int
	maximum int
	rand    io.Reader

	mu     sync.Mutex
	tokens []string
}

// Option configures a Registry during construction.
type Option func(*Registry)

// WithEntropy sets the default number of random bytes per generated token.
func WithEntropy(entropy int) Option {
	return func(r *Registry) {
		r.entropy = entropy
	}
}

// WithMaximum sets the capacity bound on concurrently live tokens.
func WithMaximum(maximum int) Option {
	return func(r *Registry) {
		r.maximum = maximum
	}
}

// WithRandSource sets the random byte source used when generating tokens.
// The source must be cryptographically secure in production; tests may
// substitute a deterministic reader. Defaults to crypto/rand.Reader.
func WithRandSource(source io.Reader) Option {
	return func(r *Registry) {
		r.rand = source
	}
}

// NewRegistry creates a new Registry with entropy of 32 bytes and a maximum
// of 10 live tokens unless overridden by options.
//
// Returns ErrInvalidInput if the configured entropy or maximum is not
// positive, or if the random source is nil. A zero maximum would make every
// generated token evict itself and zero entropy would produce empty tokens,
// so both are rejected at construction.
func NewRegistry(opts ...Option) (*Registry, error) {
	registry := &Registry{
		entropy: DefaultEntropy,
		maximum: DefaultMaximum,
		rand:    rand.Reader,
	}

	for _, opt := range opts {
		opt(registry)
	}

	if registry.entropy <= 0 {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidInput, "entropy must be positive, got %d", registry.entropy)
	}
	if registry.maximum <= 0 {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidInput, "maximum must be positive, got %d", registry.maximum)
	}
	if registry.rand == nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "random source must not be nil")
	}

	registry.tokens = make([]string, 0, registry.maximum)

	return registry, nil
}

// Generate creates and registers a new token using the configured entropy.
func (r *Registry) Generate() (string, error) {
	return r.GenerateWithEntropy(r.entropy)
}

// GenerateWithEntropy creates and registers a new token from the given number
// of random bytes, encoded as URL-safe base64 without padding. When the
// registry is at capacity the oldest token is evicted before insertion, so
// the live token count never exceeds the configured maximum.
//
// Returns ErrInvalidInput if entropy is not positive, or ErrEntropySource if
// the random source cannot supply the requested bytes. A starved random
// source is an environment failure and is propagated rather than silently
// substituted with a weaker source.
func (r *Registry) GenerateWithEntropy(entropy int) (string, error) {
	if entropy <= 0 {
		return "", apperrors.Wrapf(apperrors.ErrInvalidInput, "entropy must be positive, got %d", entropy)
	}

	buf := make([]byte, entropy)
	if _, err := io.ReadFull(r.rand, buf); err != nil {
		return "", apperrors.Wrap(apperrors.ErrEntropySource, err.Error())
	}

	token := base64.RawURLEncoding.EncodeToString(buf)

	r.mu.Lock()
	defer r.mu.Unlock()

	// Evict the oldest token first when at capacity. The copy keeps the
	// backing array bounded instead of leaking evicted entries behind a
	// re-sliced head.
	if len(r.tokens) == r.maximum {
		copy(r.tokens, r.tokens[1:])
		r.tokens = r.tokens[:len(r.tokens)-1]
	}
	r.tokens = append(r.tokens, token)

	return token, nil
}

// Verify reports whether token is currently registered, using exact string
// equality with no normalization. When remove is true and a match is found,
// that single occurrence is consumed so a subsequent Verify of the same
// token returns false. Absence is a normal false result, not an error.
func (r *Registry) Verify(token string, remove bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, candidate := range r.tokens {
		if candidate == token {
			if remove {
				r.tokens = append(r.tokens[:i], r.tokens[i+1:]...)
			}
			return true
		}
	}

	return false
}

// Size returns the current number of live tokens.
func (r *Registry) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tokens)
}

// Clear removes all live tokens. The configuration is untouched.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens = r.tokens[:0]
}

// IsEmpty reports whether no tokens are currently registered.
func (r *Registry) IsEmpty() bool {
	return r.Size() == 0
}

// Entropy returns the configured default number of random bytes per token.
func (r *Registry) Entropy() int {
	return r.entropy
}

// Maximum returns the configured capacity bound on live tokens.
func (r *Registry) Maximum() int {
	return r.maximum
}
