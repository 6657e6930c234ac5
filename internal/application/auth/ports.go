package auth

import (
	"context"
	"time"

	"school-portal/internal/domain"
)

/*
UserRepo
--------
Persistence port for users.
Only describes WHAT the portal needs, not HOW it's stored.
*/
type UserRepo interface {
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	GetByID(ctx context.Context, id int64) (domain.User, error)
	// Create persists a new user and returns it with the store-assigned ID.
	// A username collision is reported as domain.ErrUsernameTaken, resolved
	// by the store's own uniqueness constraint rather than a prior lookup.
	Create(ctx context.Context, u domain.User) (domain.User, error)
}

/*
PasswordHasher
--------------
Abstracts bcrypt.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error // nil if match
}

/*
SessionStore
------------
Server-side session state keyed by an opaque client-held token.
Backed by Redis or process memory.
*/
type SessionStore interface {
	Create(ctx context.Context, userID int64, ttl time.Duration) (token string, err error)
	// Resolve returns the user ID bound to the token. Unknown and expired
	// tokens both yield domain.ErrSessionInvalid.
	Resolve(ctx context.Context, token string) (int64, error)
	Revoke(ctx context.Context, token string) error
	RevokeAll(ctx context.Context, userID int64) error
}
