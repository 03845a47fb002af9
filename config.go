package gourdianauth

import (
	"fmt"
	"time"
)

// TokenType represents the type of token (access or refresh).
type TokenType string

const (
	AccessToken  TokenType = "access"  // Access token type
	RefreshToken TokenType = "refresh" // Refresh token type
)

// GourdianAuthConfig holds the configuration for token generation and
// verification.
//
// Fields:
//   - SigningSecret: Base64-encoded HMAC signing secret (decodes to >= 32 bytes)
//   - Algorithm: Signing algorithm ("HS256", "HS384" or "HS512")
//   - AccessExpiryDuration: Access token validity duration
//   - RefreshExpiryDuration: Refresh token validity duration
type GourdianAuthConfig struct {
	SigningSecret         string
	Algorithm             string
	AccessExpiryDuration  time.Duration
	RefreshExpiryDuration time.Duration
}

// DefaultGourdianAuthConfig returns a configuration with HS256 signing, a
// 30 minute access token lifetime and a 7 day refresh token lifetime.
func DefaultGourdianAuthConfig(signingSecret string) GourdianAuthConfig {
	return GourdianAuthConfig{
		SigningSecret:         signingSecret,
		Algorithm:             "HS256",
		AccessExpiryDuration:  30 * time.Minute,
		RefreshExpiryDuration: 7 * 24 * time.Hour,
	}
}

// validateConfig validates the configuration.
func validateConfig(config *GourdianAuthConfig) error {
	if config.SigningSecret == "" {
		return fmt.Errorf("%w: signing secret is required", ErrInvalidConfig)
	}
	switch config.Algorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("%w: unsupported algorithm: %s", ErrInvalidConfig, config.Algorithm)
	}
	// Wire timestamps carry second precision, so sub-second lifetimes would
	// produce tokens that expire the moment they are issued.
	if config.AccessExpiryDuration < time.Second {
		return fmt.Errorf("%w: access expiry duration must be at least one second", ErrInvalidConfig)
	}
	if config.RefreshExpiryDuration < config.AccessExpiryDuration {
		return fmt.Errorf("%w: refresh expiry duration must not be shorter than access expiry duration", ErrInvalidConfig)
	}
	return nil
}
