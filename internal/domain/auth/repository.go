package auth

import "context"

// IdentityRepository defines data access for login identities. Identities
// are global, not tenant rows.
type IdentityRepository interface {
	Create(ctx context.Context, identity Identity) (Identity, error)

	GetByID(ctx context.Context, id string) (Identity, error)

	GetByEmail(ctx context.Context, email string) (Identity, error)

	GetByGoogleID(ctx context.Context, googleID string) (Identity, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)

	UpdatePassword(ctx context.Context, id string, passwordHash string) error

	// SetGoogleID attaches a Google subject to an existing identity so a
	// password account can later sign in with Google.
	SetGoogleID(ctx context.Context, id string, googleID string) error
}
