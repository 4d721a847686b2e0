package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records. All
// lookups carry the organization id to keep tenants isolated at the query
// level; the (employee_id, date) unique index is the backstop for the
// one-record-per-day invariant under concurrent check-ins.
type AttendanceRepository interface {
	Create(ctx context.Context, att Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string, organizationID string) (Attendance, error)

	// GetByEmployeeAndDate returns nil when no record exists for the pair;
	// used as the fast-path duplicate check-in guard.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, organizationID string) (*Attendance, error)

	// SetCheckOut writes the check-out instant. The UPDATE carries a
	// `check_out IS NULL` guard so a double check-out loses cleanly.
	SetCheckOut(ctx context.Context, id string, organizationID string, checkOut time.Time) error

	List(ctx context.Context, filter ListFilter, organizationID string) ([]Attendance, int64, error)

	ListByEmployee(ctx context.Context, employeeID string, filter ListFilter, organizationID string) ([]Attendance, int64, error)
}
