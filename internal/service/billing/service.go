package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/kerjahub/hris-backend/internal/domain/authz"
	"github.com/kerjahub/hris-backend/internal/domain/billing"
	"github.com/kerjahub/hris-backend/internal/domain/employee"
	"github.com/kerjahub/hris-backend/internal/domain/organization"
)

type BillingServiceImpl struct {
	organizationRepo organization.OrganizationRepository
	employeeRepo     employee.EmployeeRepository
	usageLogRepo     billing.UsageLogRepository
}

func NewBillingService(
	organizationRepo organization.OrganizationRepository,
	employeeRepo employee.EmployeeRepository,
	usageLogRepo billing.UsageLogRepository,
) billing.BillingService {
	return &BillingServiceImpl{
		organizationRepo: organizationRepo,
		employeeRepo:     employeeRepo,
		usageLogRepo:     usageLogRepo,
	}
}

// ListPlans implements billing.BillingService.
func (s *BillingServiceImpl) ListPlans(ctx context.Context) []billing.Plan {
	return billing.Plans()
}

// GetUsage implements billing.BillingService.
func (s *BillingServiceImpl) GetUsage(ctx context.Context, actor authz.Actor) (billing.UsageSnapshot, error) {
	if err := authz.Authorize(actor, authz.ActionBillingManage, actor.OrganizationID); err != nil {
		return billing.UsageSnapshot{}, err
	}

	org, err := s.organizationRepo.GetByID(ctx, actor.OrganizationID)
	if err != nil {
		return billing.UsageSnapshot{}, fmt.Errorf("get organization: %w", err)
	}

	count, err := s.employeeRepo.CountActive(ctx, actor.OrganizationID)
	if err != nil {
		return billing.UsageSnapshot{}, fmt.Errorf("count employees: %w", err)
	}

	snapshot := billing.UsageSnapshot{
		PlanType:      string(org.PlanType),
		PlanName:      string(org.PlanType),
		EmployeeCount: count,
		EmployeeLimit: org.EmployeeLimit,
		// File storage is not metered yet; reported as zero so the
		// response shape is stable when it is.
		StorageUsedMB: 0,
	}
	if plan, ok := billing.PlanByType(org.PlanType); ok {
		snapshot.PlanName = plan.Name
	}
	if org.EmployeeLimit > 0 {
		remaining := int64(org.EmployeeLimit) - count
		if remaining < 0 {
			remaining = 0
		}
		snapshot.SeatsRemaining = &remaining
	}

	since := time.Now().AddDate(0, 0, -30)
	history, err := s.usageLogRepo.ListRecent(ctx, actor.OrganizationID, since, 30)
	if err != nil {
		return billing.UsageSnapshot{}, fmt.Errorf("list usage history: %w", err)
	}
	snapshot.History = history

	return snapshot, nil
}

// RecordUsage implements billing.BillingService.
func (s *BillingServiceImpl) RecordUsage(ctx context.Context, actor authz.Actor) (billing.UsageLog, error) {
	if err := authz.Authorize(actor, authz.ActionBillingManage, actor.OrganizationID); err != nil {
		return billing.UsageLog{}, err
	}

	count, err := s.employeeRepo.CountActive(ctx, actor.OrganizationID)
	if err != nil {
		return billing.UsageLog{}, fmt.Errorf("count employees: %w", err)
	}

	// File storage is not metered yet; logged as zero.
	log, err := s.usageLogRepo.Create(ctx, billing.UsageLog{
		OrganizationID: actor.OrganizationID,
		EmployeeCount:  count,
		StorageUsedMB:  0,
	})
	if err != nil {
		return billing.UsageLog{}, fmt.Errorf("record usage: %w", err)
	}

	return log, nil
}
