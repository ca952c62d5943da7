package auth

import (
	"context"

	"cleanhome/internal/domain"
)

// Session identifies the authenticated caller of a request.
type Session struct {
	UserID string
	Email  string
	Role   domain.Role
}

// IsAuthenticated reports whether the session carries a user.
func (s Session) IsAuthenticated() bool {
	return s.UserID != ""
}

type sessionKey struct{}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFrom extracts the session injected by the middleware.
func SessionFrom(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	if !ok || !s.IsAuthenticated() {
		return Session{}, false
	}
	return s, true
}
