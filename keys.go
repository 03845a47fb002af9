package gourdianauth

import (
	"encoding/base64"
	"fmt"
)

// minKeyBytes is the minimum decoded key length for HMAC-SHA2 signing.
const minKeyBytes = 32

// decodeSigningKey decodes the base64-encoded signing secret into raw key
// bytes. The key is decoded once at construction time and treated as
// immutable for the process lifetime.
func decodeSigningKey(secret string) ([]byte, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: signing secret is required", ErrInvalidConfig)
	}

	key, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		return nil, fmt.Errorf("%w: signing secret is not valid base64: %v", ErrInvalidConfig, err)
	}

	if len(key) < minKeyBytes {
		return nil, fmt.Errorf("%w: signing key must be at least %d bytes, got %d", ErrInvalidConfig, minKeyBytes, len(key))
	}

	return key, nil
}
