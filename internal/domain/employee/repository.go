package employee

import "context"

// EmployeeRepository defines data access for employees. Every method that
// touches an existing row takes the organization id so a tenant can never
// read or write another tenant's employees.
type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)

	GetByID(ctx context.Context, id string, organizationID string) (Employee, error)

	// GetByAuthID looks an employee up by linked identity id, across all
	// organizations. This is the session resolver's query.
	GetByAuthID(ctx context.Context, authID string) (Employee, error)

	// GetUnlinkedByEmail finds an employee by email whose identity link is
	// still NULL, used when accepting an invitation.
	GetUnlinkedByEmail(ctx context.Context, email string) (Employee, error)

	ExistsByEmail(ctx context.Context, organizationID string, email string, excludeID string) (bool, error)

	List(ctx context.Context, filter ListFilter, organizationID string) ([]Employee, int64, error)

	Count(ctx context.Context, organizationID string) (int64, error)

	CountActive(ctx context.Context, organizationID string) (int64, error)

	Update(ctx context.Context, emp Employee) error

	Delete(ctx context.Context, id string, organizationID string) error

	// LinkAuthID sets auth_id exactly once. The UPDATE carries a
	// `auth_id IS NULL` guard so a concurrent link loses cleanly; a row
	// already linked surfaces as ErrAlreadyLinked.
	LinkAuthID(ctx context.Context, id string, authID string) error

	// ClearDepartment nulls department_id for every employee assigned to
	// the department. Runs inside the department deletion transaction.
	ClearDepartment(ctx context.Context, departmentID string, organizationID string) error
}
