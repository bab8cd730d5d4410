package cms

import (
	"context"
	"fmt"
)

// The admin credential is a hardcoded placeholder compared as plain strings.
// It is not a credential-verification design; a deployment with real users
// must replace Login with a proper identity check.
const (
	placeholderEmail    = "admin@renonx.com"
	placeholderPassword = "password123"
)

var placeholderUser = User{ID: "admin-1", Email: placeholderEmail, Name: "Zidan Mahmud"}

// Login checks email and password against the placeholder credential. On a
// match it stores and returns the session record. On a mismatch it returns
// nil and leaves any existing session untouched.
func (s *ContentStore) Login(ctx context.Context, email, password string) (*User, error) {
	if email != placeholderEmail || password != placeholderPassword {
		s.logger.Warn("login rejected", "email", email)
		s.state.AppendLog(ctx, "Access denied: failed login attempt for "+email, LevelError)
		return nil, nil
	}

	user := placeholderUser
	if err := s.state.setUser(ctx, &user); err != nil {
		return nil, fmt.Errorf("establishing session: %w", err)
	}
	s.logger.Info("session established", "user", user.ID)
	s.state.AppendLog(ctx, "Identity verified: admin session established", LevelSuccess)
	return &user, nil
}

// Logout clears the session record.
func (s *ContentStore) Logout(ctx context.Context) error {
	if err := s.state.setUser(ctx, nil); err != nil {
		return fmt.Errorf("terminating session: %w", err)
	}
	s.logger.Info("session terminated")
	s.state.AppendLog(ctx, "Session terminated", LevelInfo)
	return nil
}

// GetUser returns the current session record, or nil when signed out.
func (s *ContentStore) GetUser() *User {
	return s.state.User()
}
