package domain

import (
	"bytes"
	"encoding/base64"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/antiforgery/internal/errors"
)

// failingReader always fails, simulating a starved entropy source.
type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) {
	return 0, assert.AnError
}

func TestNewRegistry(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		registry, err := NewRegistry()
		require.NoError(t, err)

		assert.Equal(t, DefaultEntropy, registry.Entropy())
		assert.Equal(t, DefaultMaximum, registry.Maximum())
		assert.True(t, registry.IsEmpty())
		assert.Equal(t, 0, registry.Size())
	})

	t.Run("WithOptions", func(t *testing.T) {
		registry, err := NewRegistry(WithEntropy(16), WithMaximum(3))
		require.NoError(t, err)

		assert.Equal(t, 16, registry.Entropy())
		assert.Equal(t, 3, registry.Maximum())
	})

	t.Run("InvalidEntropy", func(t *testing.T) {
		for _, entropy := range []int{0, -1} {
			_, err := NewRegistry(WithEntropy(entropy))
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		}
	})

	t.Run("InvalidMaximum", func(t *testing.T) {
		for _, maximum := range []int{0, -5} {
			_, err := NewRegistry(WithMaximum(maximum))
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		}
	})

	t.Run("NilRandSource", func(t *testing.T) {
		_, err := NewRegistry(WithRandSource(nil))
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestRegistry_Generate(t *testing.T) {
	t.Run("TokenDecodesToConfiguredEntropy", func(t *testing.T) {
		for _, entropy := range []int{1, 16, 32, 64} {
			registry, err := NewRegistry(WithEntropy(entropy))
			require.NoError(t, err)

			token, err := registry.Generate()
			require.NoError(t, err)

			raw, err := base64.RawURLEncoding.DecodeString(token)
			require.NoError(t, err, "token must be valid URL-safe base64 without padding")
			assert.Len(t, raw, entropy)
		}
	})

	t.Run("EntropyOverride", func(t *testing.T) {
		registry, err := NewRegistry()
		require.NoError(t, err)

		token, err := registry.GenerateWithEntropy(48)
		require.NoError(t, err)

		raw, err := base64.RawURLEncoding.DecodeString(token)
		require.NoError(t, err)
		assert.Len(t, raw, 48)
	})

	t.Run("NonPositiveEntropyOverride", func(t *testing.T) {
		registry, err := NewRegistry()
		require.NoError(t, err)

		_, err = registry.GenerateWithEntropy(0)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		assert.True(t, registry.IsEmpty(), "failed generate must not register a token")
	})

	t.Run("DeterministicSource", func(t *testing.T) {
		raw := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
		registry, err := NewRegistry(WithEntropy(8), WithRandSource(bytes.NewReader(raw)))
		require.NoError(t, err)

		token, err := registry.Generate()
		require.NoError(t, err)
		assert.Equal(t, base64.RawURLEncoding.EncodeToString(raw), token)
	})

	t.Run("EntropySourceFailure", func(t *testing.T) {
		registry, err := NewRegistry(WithRandSource(failingReader{}))
		require.NoError(t, err)

		_, err = registry.Generate()
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrEntropySource)
		assert.True(t, registry.IsEmpty(), "failed generate must not register a token")
	})

	t.Run("DistinctTokens", func(t *testing.T) {
		registry, err := NewRegistry(WithEntropy(16))
		require.NoError(t, err)

		first, err := registry.Generate()
		require.NoError(t, err)
		second, err := registry.Generate()
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})
}

func TestRegistry_Eviction(t *testing.T) {
	t.Run("SizeNeverExceedsMaximum", func(t *testing.T) {
		registry, err := NewRegistry(WithMaximum(5))
		require.NoError(t, err)

		for i := 0; i < 50; i++ {
			_, err := registry.Generate()
			require.NoError(t, err)
			assert.LessOrEqual(t, registry.Size(), 5)
		}
		assert.Equal(t, 5, registry.Size())
	})

	t.Run("OldestEvictedFirst", func(t *testing.T) {
		registry, err := NewRegistry()
		require.NoError(t, err)

		tokens := make([]string, 0, 11)
		for i := 0; i < 11; i++ {
			token, err := registry.Generate()
			require.NoError(t, err)
			tokens = append(tokens, token)
		}

		assert.Equal(t, 10, registry.Size())
		assert.False(t, registry.Verify(tokens[0], false), "oldest token must be evicted")
		for _, token := range tokens[1:] {
			assert.True(t, registry.Verify(token, false))
		}
	})

	t.Run("BoundedScenario", func(t *testing.T) {
		registry, err := NewRegistry(WithMaximum(3))
		require.NoError(t, err)

		t1, err := registry.Generate()
		require.NoError(t, err)
		t2, err := registry.Generate()
		require.NoError(t, err)
		t3, err := registry.Generate()
		require.NoError(t, err)
		assert.Equal(t, 3, registry.Size())

		t4, err := registry.Generate()
		require.NoError(t, err)
		assert.Equal(t, 3, registry.Size())

		assert.False(t, registry.Verify(t1, true))
		assert.True(t, registry.Verify(t4, true))
		assert.Equal(t, 2, registry.Size())
		assert.True(t, registry.Verify(t2, false))
		assert.True(t, registry.Verify(t3, false))
	})
}

func TestRegistry_Verify(t *testing.T) {
	t.Run("SingleUseConsumption", func(t *testing.T) {
		registry, err := NewRegistry()
		require.NoError(t, err)

		token, err := registry.Generate()
		require.NoError(t, err)

		assert.True(t, registry.Verify(token, true))
		assert.False(t, registry.Verify(token, true), "consumed token must not verify twice")
	})

	t.Run("KeepOnVerify", func(t *testing.T) {
		registry, err := NewRegistry()
		require.NoError(t, err)

		token, err := registry.Generate()
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			assert.True(t, registry.Verify(token, false))
		}
		assert.Equal(t, 1, registry.Size())
	})

	t.Run("UnknownToken", func(t *testing.T) {
		registry, err := NewRegistry()
		require.NoError(t, err)

		assert.False(t, registry.Verify("never-issued", true))
	})

	t.Run("ExactMatchOnly", func(t *testing.T) {
		registry, err := NewRegistry()
		require.NoError(t, err)

		token, err := registry.Generate()
		require.NoError(t, err)

		assert.False(t, registry.Verify(token+" ", true))
		assert.False(t, registry.Verify(" "+token, true))
		assert.True(t, registry.Verify(token, true))
	})
}

func TestRegistry_Clear(t *testing.T) {
	registry, err := NewRegistry()
	require.NoError(t, err)

	token, err := registry.Generate()
	require.NoError(t, err)
	require.False(t, registry.IsEmpty())

	registry.Clear()

	assert.True(t, registry.IsEmpty())
	assert.Equal(t, 0, registry.Size())
	assert.False(t, registry.Verify(token, true))

	// Configuration survives a clear.
	assert.Equal(t, DefaultEntropy, registry.Entropy())
	assert.Equal(t, DefaultMaximum, registry.Maximum())
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	registry, err := NewRegistry(WithMaximum(5))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				token, err := registry.Generate()
				assert.NoError(t, err)
				registry.Verify(token, true)
			}
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, registry.Size(), 5)
}
