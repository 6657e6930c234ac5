package redis

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"school-portal/internal/domain"
)

// SessionStore implements auth.SessionStore on Redis:
// - the session token is opaque (random)
// - sess:<token>  -> <uid> with TTL
// - usersess:<uid> -> set(token), used by RevokeAll
// Expiry is enforced by Redis itself; a token that has expired simply stops
// resolving, which callers treat as "no identity".
type SessionStore struct {
	rdb *goredis.Client

	sessPrefix string
	userPrefix string

	tokenBytes int // entropy bytes for opaque token
}

func NewSessionStore(c *Client) *SessionStore {
	var rdb *goredis.Client
	if c != nil {
		rdb = c.rdb
	}
	return &SessionStore{
		rdb:        rdb,
		sessPrefix: "sess:",
		userPrefix: "usersess:",
		tokenBytes: 32, // 256-bit
	}
}

func (s *SessionStore) Create(ctx context.Context, userID int64, ttl time.Duration) (string, error) {
	if userID <= 0 {
		return "", domain.ErrMissingField("user_id")
	}
	if s.rdb == nil {
		return "", errors.New("redis session store not configured")
	}

	token, err := s.newOpaqueToken()
	if err != nil {
		return "", domain.ErrRandomFailed(err)
	}

	uid := strconv.FormatInt(userID, 10)
	if err := s.rdb.Set(ctx, s.sessPrefix+token, uid, ttl).Err(); err != nil {
		return "", domain.ErrSessionStoreUnavailable(err)
	}

	// Index for RevokeAll. Keep the index alive at least as long as the
	// longest outstanding session.
	userKey := s.userPrefix + uid
	if err := s.rdb.SAdd(ctx, userKey, token).Err(); err != nil {
		return "", domain.ErrSessionStoreUnavailable(err)
	}
	_ = s.rdb.Expire(ctx, userKey, ttl).Err()

	return token, nil
}

func (s *SessionStore) Resolve(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, domain.ErrSessionInvalid()
	}
	if s.rdb == nil {
		return 0, errors.New("redis session store not configured")
	}

	val, err := s.rdb.Get(ctx, s.sessPrefix+token).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return 0, domain.ErrSessionInvalid()
		}
		return 0, domain.ErrSessionStoreUnavailable(err)
	}

	uid, err := strconv.ParseInt(val, 10, 64)
	if err != nil || uid <= 0 {
		return 0, domain.ErrSessionInvalid()
	}
	return uid, nil
}

func (s *SessionStore) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if s.rdb == nil {
		return errors.New("redis session store not configured")
	}

	val, err := s.rdb.Get(ctx, s.sessPrefix+token).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil // idempotent
		}
		return domain.ErrSessionStoreUnavailable(err)
	}

	if err := s.rdb.Del(ctx, s.sessPrefix+token).Err(); err != nil {
		return domain.ErrSessionStoreUnavailable(err)
	}
	_ = s.rdb.SRem(ctx, s.userPrefix+val, token).Err()
	return nil
}

func (s *SessionStore) RevokeAll(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return domain.ErrMissingField("user_id")
	}
	if s.rdb == nil {
		return errors.New("redis session store not configured")
	}

	userKey := s.userPrefix + strconv.FormatInt(userID, 10)
	tokens, err := s.rdb.SMembers(ctx, userKey).Result()
	if err != nil {
		return domain.ErrSessionStoreUnavailable(err)
	}

	for _, tok := range tokens {
		if err := s.rdb.Del(ctx, s.sessPrefix+tok).Err(); err != nil {
			return domain.ErrSessionStoreUnavailable(err)
		}
	}
	if err := s.rdb.Del(ctx, userKey).Err(); err != nil {
		return domain.ErrSessionStoreUnavailable(err)
	}
	return nil
}

func (s *SessionStore) newOpaqueToken() (string, error) {
	b := make([]byte, s.tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
