package billing

import (
	"context"
	"time"
)

// UsageLog is a recorded point-in-time usage measurement for an
// organization.
type UsageLog struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	EmployeeCount  int64     `json:"employee_count"`
	StorageUsedMB  int64     `json:"storage_used_mb"`
	RecordedAt     time.Time `json:"recorded_at"`
}

type UsageLogRepository interface {
	Create(ctx context.Context, log UsageLog) (UsageLog, error)
	// ListRecent returns logs recorded at or after since, newest first,
	// capped at limit.
	ListRecent(ctx context.Context, organizationID string, since time.Time, limit int) ([]UsageLog, error)
}

// UsageSnapshot reports an organization's consumption against its plan.
type UsageSnapshot struct {
	PlanType       string `json:"plan_type"`
	PlanName       string `json:"plan_name"`
	EmployeeCount  int64  `json:"employee_count"`
	EmployeeLimit  int    `json:"employee_limit"` // 0 means unlimited
	StorageUsedMB  int64  `json:"storage_used_mb"`
	SeatsRemaining *int64 `json:"seats_remaining,omitempty"` // nil when unlimited

	// History holds the organization's recorded usage over the last 30
	// days, newest first.
	History []UsageLog `json:"history"`
}
