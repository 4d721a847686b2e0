package department

import "context"

type DepartmentRepository interface {
	Create(ctx context.Context, dept Department) (Department, error)

	GetByID(ctx context.Context, id string, organizationID string) (Department, error)

	List(ctx context.Context, organizationID string) ([]Department, error)

	// ExistsByName reports whether another department in the organization
	// already uses the name. excludeID skips the department itself when
	// updating.
	ExistsByName(ctx context.Context, organizationID string, name string, excludeID string) (bool, error)

	Update(ctx context.Context, dept Department) error

	// Delete removes the department row. Callers must clear employee
	// references first, inside the same transaction.
	Delete(ctx context.Context, id string, organizationID string) error
}
