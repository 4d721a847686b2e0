package token

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service issues and verifies the JWTs that carry the opaque identity id.
// Tokens carry no tenant or role claims: the actor is resolved from the
// database on every request so revoked or reassigned employees are never
// trusted from a stale token.
type Service interface {
	GenerateAccessToken(identityID string, email string) (token string, expiresAt int64, err error)
	GenerateRefreshToken(identityID string) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
	RefreshTokenCookie(token string, expiresAt int64) *http.Cookie
	RevokeToken(token string)
	IsTokenRevoked(token string) bool
}

type tokenService struct {
	secretKey         string
	accessExpiration  string
	refreshExpiration string
	tokenAuth         *jwtauth.JWTAuth
	revokedTokens     map[string]time.Time
	mu                sync.RWMutex
}

func NewService(secretKey string, accessExpiration string, refreshExpiration string) Service {
	return &tokenService{
		secretKey:         secretKey,
		accessExpiration:  accessExpiration,
		refreshExpiration: refreshExpiration,
		tokenAuth:         jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:     make(map[string]time.Time),
	}
}

func (s *tokenService) JWTAuth() *jwtauth.JWTAuth {
	return s.tokenAuth
}

func (s *tokenService) GenerateAccessToken(identityID string, email string) (string, int64, error) {
	expDuration, err := time.ParseDuration(s.accessExpiration)
	if err != nil {
		return "", 0, err
	}
	expiresAt := time.Now().Add(expDuration).Unix()

	_, tokenString, err := s.tokenAuth.Encode(map[string]interface{}{
		"identity_id": identityID,
		"email":       email,
		"type":        "access",
		"exp":         expiresAt,
	})
	return tokenString, expiresAt, err
}

func (s *tokenService) GenerateRefreshToken(identityID string) (string, int64, error) {
	expDuration, err := time.ParseDuration(s.refreshExpiration)
	if err != nil {
		return "", 0, err
	}
	expiresAt := time.Now().Add(expDuration).Unix()

	_, tokenString, err := s.tokenAuth.Encode(map[string]interface{}{
		"identity_id": identityID,
		"type":        "refresh",
		"exp":         expiresAt,
	})
	return tokenString, expiresAt, err
}

func (s *tokenService) RefreshTokenCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Path:     "/api/v1/auth",
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteStrictMode,
	}
}

// RevokeToken records the token until its own expiry, after which the
// signature check rejects it anyway. Each call sweeps entries whose expiry
// has passed so the map stays bounded by the number of live revocations.
func (s *tokenService) RevokeToken(token string) {
	now := time.Now()

	// The expiry is read without signature verification; it only bounds
	// how long the entry is kept, never whether the token is trusted.
	expiry := now
	if parsed, err := jwt.ParseInsecure([]byte(token)); err == nil && !parsed.Expiration().IsZero() {
		expiry = parsed.Expiration()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for t, exp := range s.revokedTokens {
		if exp.Before(now) {
			delete(s.revokedTokens, t)
		}
	}
	if expiry.After(now) {
		s.revokedTokens[token] = expiry
	}
}

func (s *tokenService) IsTokenRevoked(token string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, revoked := s.revokedTokens[token]
	return revoked
}
