package department

import (
	"context"
	"errors"
	"fmt"

	"github.com/kerjahub/hris-backend/internal/domain/authz"
	"github.com/kerjahub/hris-backend/internal/domain/department"
	"github.com/kerjahub/hris-backend/internal/domain/employee"
	"github.com/kerjahub/hris-backend/internal/pkg/database"
	"github.com/kerjahub/hris-backend/internal/repository/postgresql"
)

type DepartmentServiceImpl struct {
	db             *database.DB
	departmentRepo department.DepartmentRepository
	employeeRepo   employee.EmployeeRepository
}

func NewDepartmentService(
	db *database.DB,
	departmentRepo department.DepartmentRepository,
	employeeRepo employee.EmployeeRepository,
) department.DepartmentService {
	return &DepartmentServiceImpl{
		db:             db,
		departmentRepo: departmentRepo,
		employeeRepo:   employeeRepo,
	}
}

// checkManager verifies the manager candidate belongs to the organization.
func (s *DepartmentServiceImpl) checkManager(ctx context.Context, organizationID string, managerID string) error {
	_, err := s.employeeRepo.GetByID(ctx, managerID, organizationID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return department.ErrManagerNotFound
		}
		return fmt.Errorf("check manager: %w", err)
	}
	return nil
}

// Create implements department.DepartmentService.
func (s *DepartmentServiceImpl) Create(ctx context.Context, actor authz.Actor, req department.CreateDepartmentRequest) (department.Department, error) {
	if err := authz.Authorize(actor, authz.ActionDepartmentManage, actor.OrganizationID); err != nil {
		return department.Department{}, err
	}
	if err := req.Validate(); err != nil {
		return department.Department{}, err
	}

	exists, err := s.departmentRepo.ExistsByName(ctx, actor.OrganizationID, req.Name, "")
	if err != nil {
		return department.Department{}, fmt.Errorf("check name: %w", err)
	}
	if exists {
		return department.Department{}, department.ErrDuplicateName
	}

	if req.ManagerID != nil && *req.ManagerID != "" {
		if err := s.checkManager(ctx, actor.OrganizationID, *req.ManagerID); err != nil {
			return department.Department{}, err
		}
	}

	return s.departmentRepo.Create(ctx, department.Department{
		OrganizationID: actor.OrganizationID,
		Name:           req.Name,
		Description:    req.Description,
		ManagerID:      req.ManagerID,
	})
}

// GetByID implements department.DepartmentService.
func (s *DepartmentServiceImpl) GetByID(ctx context.Context, actor authz.Actor, id string) (department.Department, error) {
	if err := authz.Authorize(actor, authz.ActionDepartmentView, actor.OrganizationID); err != nil {
		return department.Department{}, err
	}

	return s.departmentRepo.GetByID(ctx, id, actor.OrganizationID)
}

// List implements department.DepartmentService.
func (s *DepartmentServiceImpl) List(ctx context.Context, actor authz.Actor) ([]department.Department, error) {
	if err := authz.Authorize(actor, authz.ActionDepartmentView, actor.OrganizationID); err != nil {
		return nil, err
	}

	return s.departmentRepo.List(ctx, actor.OrganizationID)
}

// Update implements department.DepartmentService.
func (s *DepartmentServiceImpl) Update(ctx context.Context, actor authz.Actor, id string, req department.UpdateDepartmentRequest) (department.Department, error) {
	if err := authz.Authorize(actor, authz.ActionDepartmentManage, actor.OrganizationID); err != nil {
		return department.Department{}, err
	}
	if err := req.Validate(); err != nil {
		return department.Department{}, err
	}

	dept, err := s.departmentRepo.GetByID(ctx, id, actor.OrganizationID)
	if err != nil {
		return department.Department{}, err
	}

	if req.Name != nil && *req.Name != dept.Name {
		exists, err := s.departmentRepo.ExistsByName(ctx, actor.OrganizationID, *req.Name, id)
		if err != nil {
			return department.Department{}, fmt.Errorf("check name: %w", err)
		}
		if exists {
			return department.Department{}, department.ErrDuplicateName
		}
		dept.Name = *req.Name
	}
	if req.Description != nil {
		dept.Description = req.Description
	}
	if req.ManagerID != nil {
		if *req.ManagerID == "" {
			dept.ManagerID = nil
		} else {
			if err := s.checkManager(ctx, actor.OrganizationID, *req.ManagerID); err != nil {
				return department.Department{}, err
			}
			dept.ManagerID = req.ManagerID
		}
	}

	if err := s.departmentRepo.Update(ctx, dept); err != nil {
		return department.Department{}, err
	}

	return s.departmentRepo.GetByID(ctx, id, actor.OrganizationID)
}

// Delete implements department.DepartmentService. Unassigning employees and
// removing the department are one transaction; there is no window where an
// employee references a deleted department.
func (s *DepartmentServiceImpl) Delete(ctx context.Context, actor authz.Actor, id string) error {
	if err := authz.Authorize(actor, authz.ActionDepartmentManage, actor.OrganizationID); err != nil {
		return err
	}

	if _, err := s.departmentRepo.GetByID(ctx, id, actor.OrganizationID); err != nil {
		return err
	}

	return postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if err := s.employeeRepo.ClearDepartment(txCtx, id, actor.OrganizationID); err != nil {
			return fmt.Errorf("clear department references: %w", err)
		}
		return s.departmentRepo.Delete(txCtx, id, actor.OrganizationID)
	})
}
