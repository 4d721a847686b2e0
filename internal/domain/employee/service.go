package employee

import (
	"context"

	"github.com/kerjahub/hris-backend/internal/domain/authz"
)

// EmployeeService defines the business operations on employee records.
type EmployeeService interface {
	// Create adds an employee with a NULL identity link, subject to the
	// organization's plan seat limit and per-org email uniqueness.
	Create(ctx context.Context, actor authz.Actor, req CreateEmployeeRequest) (Employee, error)

	GetByID(ctx context.Context, actor authz.Actor, id string) (Employee, error)

	List(ctx context.Context, actor authz.Actor, filter ListFilter) ([]Employee, int64, error)

	Update(ctx context.Context, actor authz.Actor, id string, req UpdateEmployeeRequest) (Employee, error)

	// Delete removes an employee. Actors cannot delete their own record.
	Delete(ctx context.Context, actor authz.Actor, id string) error

	// UpdateOwnProfile edits the self-service subset of fields on the
	// actor's own record, any role.
	UpdateOwnProfile(ctx context.Context, actor authz.Actor, req UpdateProfileRequest) (Employee, error)

	// Invite emails an invitation link so the employee can claim a login
	// identity. Re-inviting replaces any pending invitation.
	Invite(ctx context.Context, actor authz.Actor, employeeID string) error
}
