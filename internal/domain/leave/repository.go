package leave

import (
	"context"
	"time"
)

type LeaveRequestRepository interface {
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)

	GetByID(ctx context.Context, id string, organizationID string) (LeaveRequest, error)

	// LockEmployee serializes leave submissions for one employee within
	// the calling transaction. The overlap and quota predicates have no
	// natural unique key, so without this two concurrent submissions can
	// both read state that omits the other's insert. The lock is released
	// at commit or rollback. Must be called inside a transaction.
	LockEmployee(ctx context.Context, employeeID string) error

	// HasOverlap checks the employee's pending and approved requests for an
	// inclusive-bounds intersection with [startDate, endDate].
	HasOverlap(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error)

	// SumApprovedDays totals total_days of approved requests of the given
	// type starting on or after `since` (January 1 of the current year for
	// quota checks).
	SumApprovedDays(ctx context.Context, employeeID string, leaveType LeaveType, since time.Time) (int, error)

	// SetReview transitions the request out of pending, writing status and
	// review fields in one statement. The UPDATE carries a
	// `status = 'pending'` guard so concurrent reviews cannot both win.
	SetReview(ctx context.Context, id string, organizationID string, status Status, reviewedBy string, reviewedAt time.Time, notes string) (int64, error)

	List(ctx context.Context, filter ListFilter, organizationID string) ([]LeaveRequest, int64, error)

	ListByEmployee(ctx context.Context, employeeID string, filter ListFilter, organizationID string) ([]LeaveRequest, int64, error)
}
