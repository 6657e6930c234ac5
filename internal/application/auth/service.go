package auth

import "time"

type Service struct {
	users    UserRepo
	hasher   PasswordHasher
	sessions SessionStore

	sessionTTL time.Duration
}

type Config struct {
	SessionTTL time.Duration
}

func NewService(users UserRepo, hasher PasswordHasher, sessions SessionStore, cfg Config) *Service {
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Service{
		users:      users,
		hasher:     hasher,
		sessions:   sessions,
		sessionTTL: ttl,
	}
}

// SessionTTL reports the configured session lifetime so the transport layer
// can align the cookie Max-Age with the server-side expiry.
func (s *Service) SessionTTL() time.Duration { return s.sessionTTL }
