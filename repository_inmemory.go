package gourdianauth

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// refreshEntry represents a stored refresh token with its expiration time.
type refreshEntry struct {
	token     string
	expiresAt time.Time
}

// MemoryRefreshTokenRepository is an in-memory implementation of
// RefreshTokenRepository. Suitable for development, testing, or
// single-instance deployments.
type MemoryRefreshTokenRepository struct {
	mu              sync.RWMutex
	tokens          map[string]refreshEntry
	cleanupInterval time.Duration
	stopCleanup     chan struct{}
	cleanupOnce     sync.Once
}

// NewMemoryRefreshTokenRepository creates a new in-memory refresh token
// repository. cleanupInterval determines how often expired entries are
// removed (default: 5 minutes).
func NewMemoryRefreshTokenRepository(cleanupInterval time.Duration) *MemoryRefreshTokenRepository {
	if cleanupInterval <= 0 {
		cleanupInterval = 5 * time.Minute
	}

	repo := &MemoryRefreshTokenRepository{
		tokens:          make(map[string]refreshEntry),
		cleanupInterval: cleanupInterval,
		stopCleanup:     make(chan struct{}),
	}

	// Start background cleanup
	go repo.periodicCleanup()

	return repo
}

// Save stores the refresh token for a subject, replacing any previous one.
func (m *MemoryRefreshTokenRepository) Save(ctx context.Context, subject, token string, ttl time.Duration) error {
	if subject == "" {
		return fmt.Errorf("subject cannot be empty")
	}
	if token == "" {
		return fmt.Errorf("token cannot be empty")
	}
	if ttl <= 0 {
		return fmt.Errorf("ttl must be positive")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.tokens[subject] = refreshEntry{
		token:     token,
		expiresAt: time.Now().Add(ttl),
	}

	return nil
}

// Find returns the stored refresh token for a subject. Expired entries are
// treated as absent.
func (m *MemoryRefreshTokenRepository) Find(ctx context.Context, subject string) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("subject cannot be empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, exists := m.tokens[subject]
	if !exists {
		return "", ErrTokenNotFound
	}

	if time.Now().After(entry.expiresAt) {
		return "", ErrTokenNotFound
	}

	return entry.token, nil
}

// Delete removes the stored refresh token for a subject. Deleting an absent
// entry is not an error.
func (m *MemoryRefreshTokenRepository) Delete(ctx context.Context, subject string) error {
	if subject == "" {
		return fmt.Errorf("subject cannot be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.tokens, subject)

	return nil
}

// periodicCleanup runs background cleanup of expired entries.
func (m *MemoryRefreshTokenRepository) periodicCleanup() {
	ticker := time.NewTicker(m.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stopCleanup:
			return
		case <-ticker.C:
			m.mu.Lock()
			now := time.Now()
			for subject, entry := range m.tokens {
				if now.After(entry.expiresAt) {
					delete(m.tokens, subject)
				}
			}
			m.mu.Unlock()
		}
	}
}

// Close stops the background cleanup goroutine. Call this when shutting down
// the application.
func (m *MemoryRefreshTokenRepository) Close() error {
	m.cleanupOnce.Do(func() {
		close(m.stopCleanup)
	})
	return nil
}

// Len returns the number of stored entries, expired ones included. Useful
// for monitoring and tests.
func (m *MemoryRefreshTokenRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tokens)
}
