package memory

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"

	"school-portal/internal/domain"
)

// sessionEntry holds the user ID and expiration time for a session token.
type sessionEntry struct {
	userID    int64
	expiresAt time.Time
}

// SessionStore is the in-process auth.SessionStore. It is the fallback when
// Redis is not configured; sessions do not survive a restart.
type SessionStore struct {
	mu sync.RWMutex
	// token -> sessionEntry (userID + expiresAt)
	tokenToEntry map[string]sessionEntry
	// userID -> set(token)
	userTokens map[int64]map[string]struct{}
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		tokenToEntry: make(map[string]sessionEntry),
		userTokens:   make(map[int64]map[string]struct{}),
	}
}

func (s *SessionStore) Create(ctx context.Context, userID int64, ttl time.Duration) (string, error) {
	if userID <= 0 {
		return "", domain.ErrMissingField("user_id")
	}

	tok, err := newOpaqueToken(32)
	if err != nil {
		return "", domain.ErrRandomFailed(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokenToEntry[tok] = sessionEntry{
		userID:    userID,
		expiresAt: time.Now().Add(ttl),
	}
	if s.userTokens[userID] == nil {
		s.userTokens[userID] = make(map[string]struct{})
	}
	s.userTokens[userID][tok] = struct{}{}

	return tok, nil
}

func (s *SessionStore) Resolve(ctx context.Context, token string) (int64, error) {
	s.mu.RLock()
	entry, ok := s.tokenToEntry[token]
	s.mu.RUnlock()

	if !ok {
		return 0, domain.ErrSessionInvalid()
	}

	if time.Now().After(entry.expiresAt) {
		// Expired: drop it and behave like any other invalid token.
		_ = s.Revoke(ctx, token)
		return 0, domain.ErrSessionInvalid()
	}

	return entry.userID, nil
}

func (s *SessionStore) Revoke(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.tokenToEntry[token]
	if !ok {
		return nil // idempotent
	}
	delete(s.tokenToEntry, token)
	if set := s.userTokens[entry.userID]; set != nil {
		delete(set, token)
		if len(set) == 0 {
			delete(s.userTokens, entry.userID)
		}
	}
	return nil
}

func (s *SessionStore) RevokeAll(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.userTokens[userID]
	for tok := range set {
		delete(s.tokenToEntry, tok)
	}
	delete(s.userTokens, userID)
	return nil
}

// newOpaqueToken returns a URL-safe opaque token.
func newOpaqueToken(bytesLen int) (string, error) {
	b := make([]byte, bytesLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
