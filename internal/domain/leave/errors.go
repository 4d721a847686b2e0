package leave

import (
	"errors"
	"fmt"
)

var (
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrOverlappingLeave     = errors.New("an existing leave request overlaps this period")
	ErrInvalidDateRange     = errors.New("end date must be on or after start date")
	ErrNoWorkingDays        = errors.New("the requested period contains no working days")
)

// QuotaExceededError carries the remaining balance so the caller can show
// it; the remaining count is decision-relevant to the user, not sensitive.
type QuotaExceededError struct {
	LeaveType LeaveType
	Remaining int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("insufficient %s leave balance: %d days remaining", e.LeaveType, e.Remaining)
}

// AlreadyReviewedError reports the terminal status a pending-only
// transition ran into.
type AlreadyReviewedError struct {
	Status Status
}

func (e *AlreadyReviewedError) Error() string {
	return fmt.Sprintf("leave request is already %s", e.Status)
}
