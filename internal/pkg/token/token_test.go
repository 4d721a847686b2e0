package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevokeToken_LiveTokenStaysRevoked(t *testing.T) {
	svc := NewService("test-secret-key", "1h", "24h")

	tok, _, err := svc.GenerateAccessToken("identity-1", "one@test.local")
	require.NoError(t, err)

	assert.False(t, svc.IsTokenRevoked(tok))
	svc.RevokeToken(tok)
	assert.True(t, svc.IsTokenRevoked(tok))
}

func TestRevokeToken_ExpiredTokenNotRetained(t *testing.T) {
	svc := NewService("test-secret-key", "1h", "24h")
	expiredIssuer := NewService("test-secret-key", "-1h", "24h")

	expired, _, err := expiredIssuer.GenerateAccessToken("identity-1", "one@test.local")
	require.NoError(t, err)

	// Past its exp the signature check rejects it regardless, so keeping
	// it in the revocation map would only leak memory.
	svc.RevokeToken(expired)
	assert.False(t, svc.IsTokenRevoked(expired))
}

func TestRevokeToken_SweepsExpiredEntriesOnInsert(t *testing.T) {
	svc := NewService("test-secret-key", "1h", "24h").(*tokenService)

	svc.revokedTokens["stale-entry"] = time.Now().Add(-time.Minute)

	live, _, err := svc.GenerateAccessToken("identity-2", "two@test.local")
	require.NoError(t, err)
	svc.RevokeToken(live)

	assert.True(t, svc.IsTokenRevoked(live))
	assert.NotContains(t, svc.revokedTokens, "stale-entry")
}
