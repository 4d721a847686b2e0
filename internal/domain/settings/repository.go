package settings

import "context"

// SettingsRepository defines data access for organization settings.
type SettingsRepository interface {
	Create(ctx context.Context, s OrganizationSettings) (OrganizationSettings, error)

	// GetByOrganizationID returns ErrSettingsNotFound when no row exists;
	// lazy creation is the service's job so it happens outside read paths
	// that run inside transactions.
	GetByOrganizationID(ctx context.Context, organizationID string) (OrganizationSettings, error)

	Update(ctx context.Context, s OrganizationSettings) error
}
