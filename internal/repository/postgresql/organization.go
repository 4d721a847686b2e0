package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/kerjahub/hris-backend/internal/domain/organization"
	"github.com/kerjahub/hris-backend/internal/pkg/database"
)

type organizationRepositoryImpl struct {
	db *database.DB
}

func NewOrganizationRepository(db *database.DB) organization.OrganizationRepository {
	return &organizationRepositoryImpl{db: db}
}

const organizationColumns = `id, name, slug, plan_type, subscription_status, employee_limit, created_at, updated_at`

func scanOrganization(row pgx.Row) (organization.Organization, error) {
	var org organization.Organization
	err := row.Scan(
		&org.ID,
		&org.Name,
		&org.Slug,
		&org.PlanType,
		&org.SubscriptionStatus,
		&org.EmployeeLimit,
		&org.CreatedAt,
		&org.UpdatedAt,
	)
	return org, err
}

// Create implements organization.OrganizationRepository.
func (r *organizationRepositoryImpl) Create(ctx context.Context, org organization.Organization) (organization.Organization, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO organizations (name, slug, plan_type, subscription_status, employee_limit)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + organizationColumns

	created, err := scanOrganization(q.QueryRow(ctx, query,
		org.Name,
		org.Slug,
		org.PlanType,
		org.SubscriptionStatus,
		org.EmployeeLimit,
	))
	if err != nil {
		if isUniqueViolation(err, "organizations_slug_key") {
			return organization.Organization{}, organization.ErrSlugTaken
		}
		return organization.Organization{}, err
	}

	return created, nil
}

// GetByID implements organization.OrganizationRepository.
func (r *organizationRepositoryImpl) GetByID(ctx context.Context, id string) (organization.Organization, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE id = $1`

	org, err := scanOrganization(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return organization.Organization{}, organization.ErrOrganizationNotFound
		}
		return organization.Organization{}, err
	}

	return org, nil
}

// GetBySlug implements organization.OrganizationRepository.
func (r *organizationRepositoryImpl) GetBySlug(ctx context.Context, slug string) (organization.Organization, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE slug = $1`

	org, err := scanOrganization(q.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return organization.Organization{}, organization.ErrOrganizationNotFound
		}
		return organization.Organization{}, err
	}

	return org, nil
}
