package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/kerjahub/hris-backend/internal/domain/auth"
	"github.com/kerjahub/hris-backend/internal/pkg/database"
)

type identityRepositoryImpl struct {
	db *database.DB
}

func NewIdentityRepository(db *database.DB) auth.IdentityRepository {
	return &identityRepositoryImpl{db: db}
}

const identityColumns = `id, email, password_hash, google_id, email_verified, created_at, updated_at`

func scanIdentity(row pgx.Row) (auth.Identity, error) {
	var id auth.Identity
	err := row.Scan(
		&id.ID,
		&id.Email,
		&id.PasswordHash,
		&id.GoogleID,
		&id.EmailVerified,
		&id.CreatedAt,
		&id.UpdatedAt,
	)
	return id, err
}

// Create implements auth.IdentityRepository.
func (r *identityRepositoryImpl) Create(ctx context.Context, identity auth.Identity) (auth.Identity, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO identities (email, password_hash, google_id, email_verified)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + identityColumns

	created, err := scanIdentity(q.QueryRow(ctx, query,
		identity.Email,
		identity.PasswordHash,
		identity.GoogleID,
		identity.EmailVerified,
	))
	if err != nil {
		if isUniqueViolation(err, "identities_email_key") {
			return auth.Identity{}, auth.ErrEmailTaken
		}
		return auth.Identity{}, err
	}

	return created, nil
}

// GetByID implements auth.IdentityRepository.
func (r *identityRepositoryImpl) GetByID(ctx context.Context, id string) (auth.Identity, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + identityColumns + ` FROM identities WHERE id = $1`

	identity, err := scanIdentity(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.Identity{}, auth.ErrIdentityNotFound
		}
		return auth.Identity{}, err
	}

	return identity, nil
}

// GetByEmail implements auth.IdentityRepository.
func (r *identityRepositoryImpl) GetByEmail(ctx context.Context, email string) (auth.Identity, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + identityColumns + ` FROM identities WHERE email = $1`

	identity, err := scanIdentity(q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.Identity{}, auth.ErrIdentityNotFound
		}
		return auth.Identity{}, err
	}

	return identity, nil
}

// GetByGoogleID implements auth.IdentityRepository.
func (r *identityRepositoryImpl) GetByGoogleID(ctx context.Context, googleID string) (auth.Identity, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + identityColumns + ` FROM identities WHERE google_id = $1`

	identity, err := scanIdentity(q.QueryRow(ctx, query, googleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.Identity{}, auth.ErrIdentityNotFound
		}
		return auth.Identity{}, err
	}

	return identity, nil
}

// ExistsByEmail implements auth.IdentityRepository.
func (r *identityRepositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM identities WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// UpdatePassword implements auth.IdentityRepository.
func (r *identityRepositoryImpl) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE identities
		SET password_hash = $1, updated_at = NOW()
		WHERE id = $2
	`

	tag, err := q.Exec(ctx, query, passwordHash, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrIdentityNotFound
	}

	return nil
}

// SetGoogleID implements auth.IdentityRepository.
func (r *identityRepositoryImpl) SetGoogleID(ctx context.Context, id string, googleID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE identities
		SET google_id = $1, email_verified = TRUE, updated_at = NOW()
		WHERE id = $2
	`

	tag, err := q.Exec(ctx, query, googleID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrIdentityNotFound
	}

	return nil
}
