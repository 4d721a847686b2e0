package organization

import "context"

type OrganizationRepository interface {
	// Create inserts a new organization. The slug is globally unique and
	// immutable; a conflict surfaces as ErrSlugTaken.
	Create(ctx context.Context, org Organization) (Organization, error)

	GetByID(ctx context.Context, id string) (Organization, error)

	GetBySlug(ctx context.Context, slug string) (Organization, error)
}
