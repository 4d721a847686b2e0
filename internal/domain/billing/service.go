package billing

import (
	"context"

	"github.com/kerjahub/hris-backend/internal/domain/authz"
)

// BillingService exposes the plan catalog and per-tenant usage.
type BillingService interface {
	// ListPlans returns the static plan catalog. No authorization; the
	// catalog is public marketing data.
	ListPlans(ctx context.Context) []Plan

	// GetUsage reports the actor's organization usage, live counts plus
	// the recorded history. Owner only.
	GetUsage(ctx context.Context, actor authz.Actor) (UsageSnapshot, error)

	// RecordUsage persists a usage measurement for the actor's
	// organization. Owner only.
	RecordUsage(ctx context.Context, actor authz.Actor) (UsageLog, error)
}
