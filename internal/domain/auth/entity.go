package auth

import "time"

// Identity is a login credential. It is tenant-free; membership comes from
// the employee row that links back via auth_id. An identity with no linked
// employee can authenticate but cannot act.
type Identity struct {
	ID            string
	Email         string
	PasswordHash  *string // nil for OAuth-only identities
	GoogleID      *string
	EmailVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
