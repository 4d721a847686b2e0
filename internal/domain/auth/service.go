package auth

import (
	"context"

	"github.com/kerjahub/hris-backend/internal/domain/authz"
	"github.com/kerjahub/hris-backend/internal/domain/employee"
)

// AuthService owns the identity lifecycle and session resolution.
type AuthService interface {
	// Register creates organization, default settings, owner employee and
	// identity as one unit. Either everything commits or nothing does.
	Register(ctx context.Context, req RegisterRequest) (TokenResponse, error)

	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)

	// LoginWithGoogle returns the Google consent URL and the state value
	// the callback must echo back.
	LoginWithGoogle(ctx context.Context) (url string, state string, err error)

	// OAuthCallbackGoogle exchanges the authorization code. The identity
	// must already exist or be linkable by verified email.
	OAuthCallbackGoogle(ctx context.Context, code string) (TokenResponse, error)

	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)

	Logout(ctx context.Context, accessToken string, refreshToken string) error

	UpdatePassword(ctx context.Context, identityID string, req UpdatePasswordRequest) error

	// AcceptInvitation creates an identity for an invited employee and
	// links it to the pre-provisioned employee row exactly once.
	AcceptInvitation(ctx context.Context, req AcceptInvitationRequest) (TokenResponse, error)

	// LinkIdentity attaches the authenticated identity to the unlinked
	// employee row carrying the same email. Linking happens at most once
	// per employee row.
	LinkIdentity(ctx context.Context, identityID string) (employee.Employee, error)

	// ResolveActor maps an authenticated identity to its employee agent.
	// Returns ErrActorNotFound when the identity has no linked employee;
	// that is a real state (fresh invite, removed employee), not an error
	// in the token.
	ResolveActor(ctx context.Context, identityID string) (authz.Actor, error)
}
