package auth

import (
	"context"
	"strings"

	"school-portal/internal/domain"
)

// Register creates a new user. The role string is persisted as submitted;
// the store does not constrain it to the recognized enumeration.
// A duplicate username surfaces as domain.ErrUsernameTaken from the store's
// uniqueness constraint, so two concurrent registrations cannot both win.
func (s *Service) Register(ctx context.Context, username, password, role string) (domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.User{}, domain.ErrMissingField("username")
	}
	if password == "" {
		return domain.User{}, domain.ErrMissingField("password")
	}
	if strings.TrimSpace(role) == "" {
		return domain.User{}, domain.ErrMissingField("role")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return domain.User{}, domain.ErrHashFailed(err)
	}

	u := domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}

	created, err := s.users.Create(ctx, u)
	if err != nil {
		return domain.User{}, err
	}
	return created, nil
}
