package attendance

import (
	"context"

	"github.com/kerjahub/hris-backend/internal/domain/authz"
)

// AttendanceService defines the business operations on attendance.
type AttendanceService interface {
	// CheckIn records today's attendance for the actor's own employee
	// record, deriving present/late from the organization work start.
	CheckIn(ctx context.Context, actor authz.Actor, req CheckInRequest) (Attendance, error)

	// CheckOut closes today's open attendance record.
	CheckOut(ctx context.Context, actor authz.Actor, req CheckOutRequest) (CheckOutResponse, error)

	// List returns organization-wide attendance for privileged roles.
	List(ctx context.Context, actor authz.Actor, filter ListFilter) ([]Attendance, int64, error)

	// ListMine returns the actor's own attendance history.
	ListMine(ctx context.Context, actor authz.Actor, filter ListFilter) ([]Attendance, int64, error)
}
