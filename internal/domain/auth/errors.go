package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrEmailTaken          = errors.New("email is already registered")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrTokenExpired        = errors.New("token has expired")
	ErrRefreshTokenRevoked = errors.New("refresh token has been revoked")
	ErrIdentityNotFound    = errors.New("identity not found")

	// ErrActorNotFound means a valid identity has no linked employee row.
	// This is a legitimate state, not an attack; handlers treat it as a
	// signal to end the session.
	ErrActorNotFound = errors.New("no employee linked to this identity")

	ErrOAuthStateMismatch = errors.New("oauth state mismatch")
)
