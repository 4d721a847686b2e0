package invitation

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusExpired  Status = "expired"
)

// Invitation lets a pre-provisioned employee claim a login identity. The
// token is single-use; acceptance and identity linking happen in the same
// transaction.
type Invitation struct {
	ID             string
	OrganizationID string
	EmployeeID     string
	Email          string
	Token          string
	Status         Status
	ExpiresAt      time.Time
	AcceptedAt     *time.Time
	CreatedAt      time.Time
}

func (i Invitation) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// NewToken returns an unguessable single-use invitation token.
func NewToken() string {
	return uuid.NewString()
}
