package invitation

import "context"

type InvitationRepository interface {
	Create(ctx context.Context, inv Invitation) (Invitation, error)

	GetByToken(ctx context.Context, token string) (Invitation, error)

	// MarkAccepted flips status pending -> accepted. The UPDATE carries a
	// status guard so a token can only be consumed once.
	MarkAccepted(ctx context.Context, id string) error

	// DeletePendingByEmployee removes unconsumed invitations when an
	// employee is re-invited or deleted.
	DeletePendingByEmployee(ctx context.Context, employeeID string, organizationID string) error
}
