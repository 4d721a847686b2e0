package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/kerjahub/hris-backend/internal/domain/invitation"
	"github.com/kerjahub/hris-backend/internal/pkg/database"
)

type invitationRepositoryImpl struct {
	db *database.DB
}

func NewInvitationRepository(db *database.DB) invitation.InvitationRepository {
	return &invitationRepositoryImpl{db: db}
}

const invitationColumns = `id, organization_id, employee_id, email, token, status, expires_at, accepted_at, created_at`

func scanInvitation(row pgx.Row) (invitation.Invitation, error) {
	var inv invitation.Invitation
	err := row.Scan(
		&inv.ID,
		&inv.OrganizationID,
		&inv.EmployeeID,
		&inv.Email,
		&inv.Token,
		&inv.Status,
		&inv.ExpiresAt,
		&inv.AcceptedAt,
		&inv.CreatedAt,
	)
	return inv, err
}

// Create implements invitation.InvitationRepository.
func (r *invitationRepositoryImpl) Create(ctx context.Context, inv invitation.Invitation) (invitation.Invitation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO invitations (organization_id, employee_id, email, token, status, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + invitationColumns

	created, err := scanInvitation(q.QueryRow(ctx, query,
		inv.OrganizationID,
		inv.EmployeeID,
		inv.Email,
		inv.Token,
		inv.Status,
		inv.ExpiresAt,
	))
	if err != nil {
		return invitation.Invitation{}, err
	}

	return created, nil
}

// GetByToken implements invitation.InvitationRepository.
func (r *invitationRepositoryImpl) GetByToken(ctx context.Context, token string) (invitation.Invitation, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + invitationColumns + ` FROM invitations WHERE token = $1`

	inv, err := scanInvitation(q.QueryRow(ctx, query, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return invitation.Invitation{}, invitation.ErrInvitationNotFound
		}
		return invitation.Invitation{}, err
	}

	return inv, nil
}

// MarkAccepted implements invitation.InvitationRepository.
func (r *invitationRepositoryImpl) MarkAccepted(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE invitations
		SET status = 'accepted', accepted_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return invitation.ErrAlreadyAccepted
	}

	return nil
}

// DeletePendingByEmployee implements invitation.InvitationRepository.
func (r *invitationRepositoryImpl) DeletePendingByEmployee(ctx context.Context, employeeID string, organizationID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx,
		`DELETE FROM invitations WHERE employee_id = $1 AND organization_id = $2 AND status = 'pending'`,
		employeeID, organizationID,
	)
	return err
}
