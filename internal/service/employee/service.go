package employee

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kerjahub/hris-backend/internal/config"
	"github.com/kerjahub/hris-backend/internal/domain/authz"
	"github.com/kerjahub/hris-backend/internal/domain/department"
	"github.com/kerjahub/hris-backend/internal/domain/employee"
	"github.com/kerjahub/hris-backend/internal/domain/invitation"
	"github.com/kerjahub/hris-backend/internal/domain/organization"
	"github.com/kerjahub/hris-backend/internal/pkg/database"
	"github.com/kerjahub/hris-backend/internal/pkg/email"
	"github.com/kerjahub/hris-backend/internal/repository/postgresql"
)

type EmployeeServiceImpl struct {
	db               *database.DB
	employeeRepo     employee.EmployeeRepository
	organizationRepo organization.OrganizationRepository
	departmentRepo   department.DepartmentRepository
	invitationRepo   invitation.InvitationRepository
	emailService     email.Service
	frontendURL      string
	inviteExpiry     time.Duration
}

func NewEmployeeService(
	db *database.DB,
	employeeRepo employee.EmployeeRepository,
	organizationRepo organization.OrganizationRepository,
	departmentRepo department.DepartmentRepository,
	invitationRepo invitation.InvitationRepository,
	emailService email.Service,
	cfg *config.Config,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		db:               db,
		employeeRepo:     employeeRepo,
		organizationRepo: organizationRepo,
		departmentRepo:   departmentRepo,
		invitationRepo:   invitationRepo,
		emailService:     emailService,
		frontendURL:      cfg.App.FrontendURL,
		inviteExpiry:     cfg.Invitation.Expiration,
	}
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, actor authz.Actor, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	if err := authz.Authorize(actor, authz.ActionEmployeeManage, actor.OrganizationID); err != nil {
		return employee.Employee{}, err
	}
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	org, err := s.organizationRepo.GetByID(ctx, actor.OrganizationID)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("get organization: %w", err)
	}

	count, err := s.employeeRepo.Count(ctx, actor.OrganizationID)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("count employees: %w", err)
	}
	// EmployeeLimit 0 means unlimited seats (enterprise).
	if org.EmployeeLimit > 0 && count >= int64(org.EmployeeLimit) {
		return employee.Employee{}, employee.ErrEmployeeLimitReached
	}

	taken, err := s.employeeRepo.ExistsByEmail(ctx, actor.OrganizationID, req.Email, "")
	if err != nil {
		return employee.Employee{}, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return employee.Employee{}, employee.ErrDuplicateEmail
	}

	if req.DepartmentID != nil && *req.DepartmentID != "" {
		if _, err := s.departmentRepo.GetByID(ctx, *req.DepartmentID, actor.OrganizationID); err != nil {
			return employee.Employee{}, err
		}
	}

	baseSalary, err := decimal.NewFromString(req.BaseSalary)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("parse base salary: %w", err)
	}

	emp := employee.Employee{
		OrganizationID: actor.OrganizationID,
		EmployeeCode:   employee.Code(org.Slug, count),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		Position:       req.Position,
		DepartmentID:   req.DepartmentID,
		Role:           authz.RoleEmployee,
		Status:         employee.StatusActive,
		EmploymentType: employee.EmploymentFullTime,
		BaseSalary:     baseSalary,
		Currency:       "IDR",
		JoinDate:       time.Now(),
	}
	if req.Status != "" {
		emp.Status = employee.Status(req.Status)
	}
	if req.EmploymentType != "" {
		emp.EmploymentType = employee.EmploymentType(req.EmploymentType)
	}
	if req.JoinDate != "" {
		joinDate, _ := time.Parse("2006-01-02", req.JoinDate)
		emp.JoinDate = joinDate
	}

	created, err := s.employeeRepo.Create(ctx, emp)
	if err != nil {
		return employee.Employee{}, err
	}

	return created, nil
}

// GetByID implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetByID(ctx context.Context, actor authz.Actor, id string) (employee.Employee, error) {
	if err := authz.Authorize(actor, authz.ActionEmployeeView, actor.OrganizationID); err != nil {
		return employee.Employee{}, err
	}

	return s.employeeRepo.GetByID(ctx, id, actor.OrganizationID)
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, actor authz.Actor, filter employee.ListFilter) ([]employee.Employee, int64, error) {
	if err := authz.Authorize(actor, authz.ActionEmployeeView, actor.OrganizationID); err != nil {
		return nil, 0, err
	}

	return s.employeeRepo.List(ctx, filter, actor.OrganizationID)
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, actor authz.Actor, id string, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	if err := authz.Authorize(actor, authz.ActionEmployeeManage, actor.OrganizationID); err != nil {
		return employee.Employee{}, err
	}
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, id, actor.OrganizationID)
	if err != nil {
		return employee.Employee{}, err
	}

	if req.Email != nil && *req.Email != emp.Email {
		taken, err := s.employeeRepo.ExistsByEmail(ctx, actor.OrganizationID, *req.Email, id)
		if err != nil {
			return employee.Employee{}, fmt.Errorf("check email: %w", err)
		}
		if taken {
			return employee.Employee{}, employee.ErrDuplicateEmail
		}
		emp.Email = *req.Email
	}
	if req.FirstName != nil {
		emp.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		emp.LastName = *req.LastName
	}
	if req.PhoneNumber != nil {
		emp.PhoneNumber = req.PhoneNumber
	}
	if req.Position != nil {
		emp.Position = *req.Position
	}
	if req.DepartmentID != nil {
		if *req.DepartmentID == "" {
			emp.DepartmentID = nil
		} else {
			if _, err := s.departmentRepo.GetByID(ctx, *req.DepartmentID, actor.OrganizationID); err != nil {
				return employee.Employee{}, err
			}
			emp.DepartmentID = req.DepartmentID
		}
	}
	if req.EmploymentType != nil {
		emp.EmploymentType = employee.EmploymentType(*req.EmploymentType)
	}
	if req.BaseSalary != nil {
		baseSalary, err := decimal.NewFromString(*req.BaseSalary)
		if err != nil {
			return employee.Employee{}, fmt.Errorf("parse base salary: %w", err)
		}
		emp.BaseSalary = baseSalary
	}
	if req.Status != nil {
		emp.Status = employee.Status(*req.Status)
	}
	if req.Role != nil {
		role, ok := authz.ParseRole(*req.Role)
		if !ok {
			return employee.Employee{}, employee.ErrInvalidRole
		}
		emp.Role = role
	}

	if err := s.employeeRepo.Update(ctx, emp); err != nil {
		return employee.Employee{}, err
	}

	return s.employeeRepo.GetByID(ctx, id, actor.OrganizationID)
}

// Delete implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, actor authz.Actor, id string) error {
	if err := authz.Authorize(actor, authz.ActionEmployeeManage, actor.OrganizationID); err != nil {
		return err
	}
	if id == actor.EmployeeID {
		return employee.ErrCannotDeleteSelf
	}

	return postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if err := s.invitationRepo.DeletePendingByEmployee(txCtx, id, actor.OrganizationID); err != nil {
			return fmt.Errorf("delete pending invitations: %w", err)
		}
		return s.employeeRepo.Delete(txCtx, id, actor.OrganizationID)
	})
}

// UpdateOwnProfile implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateOwnProfile(ctx context.Context, actor authz.Actor, req employee.UpdateProfileRequest) (employee.Employee, error) {
	if err := authz.AuthorizeSelf(actor, authz.ActionProfileEditOwn, actor.OrganizationID, actor.EmployeeID); err != nil {
		return employee.Employee{}, err
	}
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, actor.EmployeeID, actor.OrganizationID)
	if err != nil {
		return employee.Employee{}, err
	}

	if req.FirstName != nil {
		emp.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		emp.LastName = *req.LastName
	}
	if req.PhoneNumber != nil {
		emp.PhoneNumber = req.PhoneNumber
	}

	if err := s.employeeRepo.Update(ctx, emp); err != nil {
		return employee.Employee{}, err
	}

	return s.employeeRepo.GetByID(ctx, actor.EmployeeID, actor.OrganizationID)
}

// Invite implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Invite(ctx context.Context, actor authz.Actor, employeeID string) error {
	if err := authz.Authorize(actor, authz.ActionEmployeeManage, actor.OrganizationID); err != nil {
		return err
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID, actor.OrganizationID)
	if err != nil {
		return err
	}
	if emp.IsLinked() {
		return employee.ErrAlreadyLinked
	}

	inviter, err := s.employeeRepo.GetByID(ctx, actor.EmployeeID, actor.OrganizationID)
	if err != nil {
		return fmt.Errorf("get inviter: %w", err)
	}
	org, err := s.organizationRepo.GetByID(ctx, actor.OrganizationID)
	if err != nil {
		return fmt.Errorf("get organization: %w", err)
	}

	inv := invitation.Invitation{
		OrganizationID: actor.OrganizationID,
		EmployeeID:     emp.ID,
		Email:          emp.Email,
		Token:          invitation.NewToken(),
		Status:         invitation.StatusPending,
		ExpiresAt:      time.Now().Add(s.inviteExpiry),
	}

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		// Re-inviting replaces the previous pending token.
		if err := s.invitationRepo.DeletePendingByEmployee(txCtx, emp.ID, actor.OrganizationID); err != nil {
			return err
		}
		created, err := s.invitationRepo.Create(txCtx, inv)
		if err != nil {
			return err
		}
		inv = created
		return nil
	})
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/invitations/accept?token=%s", s.frontendURL, inv.Token)
	return s.emailService.SendInvitation(
		emp.Email,
		emp.FullName(),
		inviter.FullName(),
		org.Name,
		link,
		inv.ExpiresAt.Format("2 January 2006 15:04 MST"),
	)
}
