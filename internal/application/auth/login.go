package auth

import (
	"context"
	"strings"

	"school-portal/internal/domain"
)

type LoginResult struct {
	User  domain.User
	Token string
}

// Login authenticates a user and binds a new session to them.
// IMPORTANT: must not leak whether the username exists (avoid user enumeration).
func (s *Service) Login(ctx context.Context, username, password string) (LoginResult, error) {
	username = strings.TrimSpace(username)

	if username == "" || password == "" {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		// Hide not-found behind invalid credentials
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	tok, err := s.sessions.Create(ctx, u.ID, s.sessionTTL)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{User: u, Token: tok}, nil
}
