package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/kerjahub/hris-backend/internal/domain/authz"
	"github.com/kerjahub/hris-backend/internal/domain/employee"
	"github.com/kerjahub/hris-backend/internal/domain/leave"
	"github.com/kerjahub/hris-backend/internal/domain/settings"
	"github.com/kerjahub/hris-backend/internal/pkg/database"
	"github.com/kerjahub/hris-backend/internal/repository/postgresql"
)

type LeaveServiceImpl struct {
	db              *database.DB
	leaveRepo       leave.LeaveRequestRepository
	employeeRepo    employee.EmployeeRepository
	settingsService settings.SettingsService
}

func NewLeaveService(
	db *database.DB,
	leaveRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
	settingsService settings.SettingsService,
) leave.LeaveService {
	return &LeaveServiceImpl{
		db:              db,
		leaveRepo:       leaveRepo,
		employeeRepo:    employeeRepo,
		settingsService: settingsService,
	}
}

// Submit implements leave.LeaveService. The transaction takes a
// per-employee advisory lock before the overlap and quota reads: under
// read committed alone, two racing submissions would each miss the
// other's uncommitted insert and both pass, and no unique constraint
// backstops these predicates. The lock serializes submissions per
// employee so the second one sees the first's committed row.
func (s *LeaveServiceImpl) Submit(ctx context.Context, actor authz.Actor, req leave.SubmitLeaveRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}
	if err := authz.AuthorizeSelf(actor, authz.ActionLeaveSubmit, actor.OrganizationID, req.EmployeeID); err != nil {
		return leave.LeaveRequest{}, err
	}

	leaveType, _ := leave.ParseLeaveType(req.LeaveType)
	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)

	if endDate.Before(startDate) {
		return leave.LeaveRequest{}, leave.ErrInvalidDateRange
	}

	totalDays := leave.WorkingDays(startDate, endDate)
	if totalDays == 0 {
		return leave.LeaveRequest{}, leave.ErrNoWorkingDays
	}

	var created leave.LeaveRequest
	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if err := s.leaveRepo.LockEmployee(txCtx, actor.EmployeeID); err != nil {
			return fmt.Errorf("lock employee: %w", err)
		}

		overlap, err := s.leaveRepo.HasOverlap(txCtx, actor.EmployeeID, startDate, endDate)
		if err != nil {
			return fmt.Errorf("check overlap: %w", err)
		}
		if overlap {
			return leave.ErrOverlappingLeave
		}

		if leaveType.HasQuota() {
			orgSettings, err := s.settingsService.ForOrganization(txCtx, actor.OrganizationID)
			if err != nil {
				return err
			}
			quota := orgSettings.QuotaFor(string(leaveType))

			// Quota year is the calendar year of the request date.
			yearStart := time.Date(time.Now().Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
			used, err := s.leaveRepo.SumApprovedDays(txCtx, actor.EmployeeID, leaveType, yearStart)
			if err != nil {
				return fmt.Errorf("sum approved days: %w", err)
			}

			if used+totalDays > quota {
				remaining := quota - used
				if remaining < 0 {
					remaining = 0
				}
				return &leave.QuotaExceededError{LeaveType: leaveType, Remaining: remaining}
			}
		}

		created, err = s.leaveRepo.Create(txCtx, leave.LeaveRequest{
			OrganizationID: actor.OrganizationID,
			EmployeeID:     actor.EmployeeID,
			LeaveType:      leaveType,
			StartDate:      startDate,
			EndDate:        endDate,
			TotalDays:      totalDays,
			Reason:         req.Reason,
			Status:         leave.StatusPending,
		})
		return err
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return created, nil
}

// Approve implements leave.LeaveService.
func (s *LeaveServiceImpl) Approve(ctx context.Context, actor authz.Actor, requestID string, notes string) (leave.LeaveRequest, error) {
	return s.review(ctx, actor, requestID, leave.StatusApproved, notes)
}

// Reject implements leave.LeaveService.
func (s *LeaveServiceImpl) Reject(ctx context.Context, actor authz.Actor, requestID string, notes string) (leave.LeaveRequest, error) {
	return s.review(ctx, actor, requestID, leave.StatusRejected, notes)
}

func (s *LeaveServiceImpl) review(ctx context.Context, actor authz.Actor, requestID string, status leave.Status, notes string) (leave.LeaveRequest, error) {
	request, err := s.leaveRepo.GetByID(ctx, requestID, actor.OrganizationID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	if err := authz.Authorize(actor, authz.ActionLeaveReview, request.OrganizationID); err != nil {
		return leave.LeaveRequest{}, err
	}

	if request.Status != leave.StatusPending {
		return leave.LeaveRequest{}, &leave.AlreadyReviewedError{Status: request.Status}
	}

	reviewer, err := s.employeeRepo.GetByID(ctx, actor.EmployeeID, actor.OrganizationID)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("get reviewer: %w", err)
	}

	affected, err := s.leaveRepo.SetReview(ctx, requestID, actor.OrganizationID, status, reviewer.FullName(), time.Now(), notes)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if affected == 0 {
		// Lost a race against another reviewer; report the status that won.
		current, err := s.leaveRepo.GetByID(ctx, requestID, actor.OrganizationID)
		if err != nil {
			return leave.LeaveRequest{}, err
		}
		return leave.LeaveRequest{}, &leave.AlreadyReviewedError{Status: current.Status}
	}

	return s.leaveRepo.GetByID(ctx, requestID, actor.OrganizationID)
}

// List implements leave.LeaveService.
func (s *LeaveServiceImpl) List(ctx context.Context, actor authz.Actor, filter leave.ListFilter) ([]leave.LeaveRequest, int64, error) {
	if err := authz.Authorize(actor, authz.ActionLeaveView, actor.OrganizationID); err != nil {
		return nil, 0, err
	}

	return s.leaveRepo.List(ctx, filter, actor.OrganizationID)
}

// ListMine implements leave.LeaveService.
func (s *LeaveServiceImpl) ListMine(ctx context.Context, actor authz.Actor, filter leave.ListFilter) ([]leave.LeaveRequest, int64, error) {
	return s.leaveRepo.ListByEmployee(ctx, actor.EmployeeID, filter, actor.OrganizationID)
}
