package auth

import "context"

// Logout revokes the session bound to the given token.
// A missing or already-revoked token is a no-op.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Revoke(ctx, token)
}
