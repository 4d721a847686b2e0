package settings

import (
	"context"

	"github.com/kerjahub/hris-backend/internal/domain/authz"
)

// SettingsService reads and writes an organization's working rules.
type SettingsService interface {
	// Get returns the organization settings, creating the row with
	// defaults when none exists yet.
	Get(ctx context.Context, actor authz.Actor) (OrganizationSettings, error)

	// ForOrganization is the ungated read used by attendance and leave
	// rules. Lazy creation applies here too.
	ForOrganization(ctx context.Context, organizationID string) (OrganizationSettings, error)

	// Update patches settings. Owner and admin only.
	Update(ctx context.Context, actor authz.Actor, req UpdateSettingsRequest) (OrganizationSettings, error)
}
