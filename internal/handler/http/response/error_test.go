package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kerjahub/hris-backend/internal/domain/attendance"
	"github.com/kerjahub/hris-backend/internal/domain/department"
	"github.com/kerjahub/hris-backend/internal/domain/employee"
	"github.com/kerjahub/hris-backend/internal/domain/leave"
)

// Invariant-guard rejections are benign, user-actionable outcomes and sit
// in the 400 bucket with validation errors, not 409.
func TestHandleError_GuardRejectionsAreBadRequests(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"already checked in", attendance.ErrAlreadyCheckedIn},
		{"already checked out", attendance.ErrAlreadyCheckedOut},
		{"already linked", employee.ErrAlreadyLinked},
		{"overlapping leave", leave.ErrOverlappingLeave},
		{"duplicate department name", department.ErrDuplicateName},
		{"duplicate employee email", employee.ErrDuplicateEmail},
		{"already reviewed", &leave.AlreadyReviewedError{Status: leave.StatusApproved}},
		{"quota exceeded", &leave.QuotaExceededError{LeaveType: leave.TypeAnnual, Remaining: 2}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tc.err)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandleError_NotFoundForMissingResource(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, leave.ErrLeaveRequestNotFound)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
