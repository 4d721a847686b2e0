package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/kerjahub/hris-backend/internal/domain/attendance"
	"github.com/kerjahub/hris-backend/internal/domain/auth"
	"github.com/kerjahub/hris-backend/internal/domain/authz"
	"github.com/kerjahub/hris-backend/internal/domain/department"
	"github.com/kerjahub/hris-backend/internal/domain/employee"
	"github.com/kerjahub/hris-backend/internal/domain/invitation"
	"github.com/kerjahub/hris-backend/internal/domain/leave"
	"github.com/kerjahub/hris-backend/internal/domain/organization"
	"github.com/kerjahub/hris-backend/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Denials share one generic message. The response must not reveal
	// whether the resource exists in another tenant, so cross-tenant
	// access and a plain role shortfall are indistinguishable to the
	// caller.
	var quotaErr *leave.QuotaExceededError
	var reviewedErr *leave.AlreadyReviewedError

	switch {
	case errors.Is(err, authz.ErrCrossTenantAccess),
		errors.Is(err, authz.ErrInsufficientPermissions),
		errors.Is(err, authz.ErrNotSelf):
		Forbidden(w, "Insufficient permissions")

	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrEmailTaken):
		BadRequest(w, "Email is already registered", nil)
	case errors.Is(err, auth.ErrActorNotFound):
		NotFound(w, "No employee profile linked to this account")
	case errors.Is(err, auth.ErrIdentityNotFound):
		NotFound(w, "Account not found")
	case errors.Is(err, auth.ErrOAuthStateMismatch):
		BadRequest(w, "OAuth state mismatch", nil)

	// Organization domain errors
	case errors.Is(err, organization.ErrSlugTaken):
		BadRequest(w, "Organization name already taken", nil)
	case errors.Is(err, organization.ErrOrganizationNotFound):
		NotFound(w, "Organization not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrDuplicateEmail):
		BadRequest(w, "Email already registered in this organization", nil)
	case errors.Is(err, employee.ErrEmployeeLimitReached):
		Forbidden(w, "Employee limit reached. Please upgrade your plan to add more employees")
	case errors.Is(err, employee.ErrCannotDeleteSelf):
		BadRequest(w, "You cannot delete your own employee record", nil)
	case errors.Is(err, employee.ErrAlreadyLinked):
		BadRequest(w, "Employee is already linked to an account", nil)
	case errors.Is(err, employee.ErrInvalidRole):
		BadRequest(w, "Invalid role", nil)

	// Department domain errors
	case errors.Is(err, department.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, department.ErrDuplicateName):
		BadRequest(w, "Department with this name already exists", nil)
	case errors.Is(err, department.ErrManagerNotFound):
		BadRequest(w, "Manager does not belong to this organization", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		BadRequest(w, "Already checked in today", nil)
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		BadRequest(w, "Already checked out", nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrOverlappingLeave):
		BadRequest(w, "An existing leave request overlaps this period", nil)
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "End date must be on or after start date", nil)
	case errors.Is(err, leave.ErrNoWorkingDays):
		BadRequest(w, "The requested period contains no working days", nil)
	case errors.As(err, &quotaErr):
		BadRequest(w, "Insufficient leave balance", map[string]string{
			"leave_type": string(quotaErr.LeaveType),
			"remaining":  fmt.Sprintf("%d", quotaErr.Remaining),
		})
	case errors.As(err, &reviewedErr):
		BadRequest(w, fmt.Sprintf("Leave request is already %s", reviewedErr.Status), nil)

	// Invitation domain errors
	case errors.Is(err, invitation.ErrInvitationNotFound):
		NotFound(w, "Invitation not found")
	case errors.Is(err, invitation.ErrInvitationExpired):
		BadRequest(w, "Invitation has expired", nil)
	case errors.Is(err, invitation.ErrAlreadyAccepted):
		BadRequest(w, "Invitation has already been accepted", nil)

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
