package commands

import (
	"fmt"

	"github.com/allisson/antiforgery/internal/antiforgery/domain"
	"github.com/allisson/antiforgery/internal/config"
)

// RunGenerateToken generates one or more anti-forgery tokens and writes them
// to the configured output, one per line. An entropy of zero uses the value
// from configuration.
func RunGenerateToken(entropy, count int, io IOTuple) error {
	if count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", count)
	}
	if entropy < 0 {
		return fmt.Errorf("entropy must not be negative, got %d", entropy)
	}

	cfg := config.Load()

	registry, err := domain.NewRegistry(
		domain.WithEntropy(cfg.TokenEntropyBytes),
		domain.WithMaximum(cfg.TokenMaximum),
	)
	if err != nil {
		return fmt.Errorf("failed to create token registry: %w", err)
	}

	for i := 0; i < count; i++ {
		var token string
		if entropy > 0 {
			token, err = registry.GenerateWithEntropy(entropy)
		} else {
			token, err = registry.Generate()
		}
		if err != nil {
			return fmt.Errorf("failed to generate token: %w", err)
		}

		if _, err := fmt.Fprintln(io.Writer, token); err != nil {
			return fmt.Errorf("failed to write token: %w", err)
		}
	}

	return nil
}
