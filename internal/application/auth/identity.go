package auth

import (
	"context"

	"school-portal/internal/domain"
)

// CurrentIdentity resolves a session token to the user it was bound to.
// Missing, expired, and unknown tokens all come back as ErrSessionInvalid;
// callers treat every failure as "no identity".
func (s *Service) CurrentIdentity(ctx context.Context, token string) (domain.User, error) {
	if token == "" {
		return domain.User{}, domain.ErrSessionInvalid()
	}

	uid, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return domain.User{}, err
	}

	u, err := s.users.GetByID(ctx, uid)
	if err != nil {
		// The session outlived the user record; behave as unauthenticated.
		return domain.User{}, domain.ErrSessionInvalid()
	}
	return u, nil
}
