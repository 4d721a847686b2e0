package department

import (
	"context"

	"github.com/kerjahub/hris-backend/internal/domain/authz"
)

// DepartmentService defines the business operations on departments.
type DepartmentService interface {
	Create(ctx context.Context, actor authz.Actor, req CreateDepartmentRequest) (Department, error)

	GetByID(ctx context.Context, actor authz.Actor, id string) (Department, error)

	List(ctx context.Context, actor authz.Actor) ([]Department, error)

	Update(ctx context.Context, actor authz.Actor, id string, req UpdateDepartmentRequest) (Department, error)

	// Delete removes a department and unassigns its employees in a single
	// transaction, so no employee ever points at a missing department.
	Delete(ctx context.Context, actor authz.Actor, id string) error
}
