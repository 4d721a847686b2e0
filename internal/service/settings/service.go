package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/kerjahub/hris-backend/internal/domain/authz"
	"github.com/kerjahub/hris-backend/internal/domain/settings"
)

type SettingsServiceImpl struct {
	settingsRepo settings.SettingsRepository
}

func NewSettingsService(settingsRepo settings.SettingsRepository) settings.SettingsService {
	return &SettingsServiceImpl{settingsRepo: settingsRepo}
}

// Get implements settings.SettingsService.
func (s *SettingsServiceImpl) Get(ctx context.Context, actor authz.Actor) (settings.OrganizationSettings, error) {
	if err := authz.Authorize(actor, authz.ActionSettingsView, actor.OrganizationID); err != nil {
		return settings.OrganizationSettings{}, err
	}

	return s.ForOrganization(ctx, actor.OrganizationID)
}

// ForOrganization implements settings.SettingsService. Missing rows are
// created with defaults so organizations provisioned before the settings
// table existed still behave.
func (s *SettingsServiceImpl) ForOrganization(ctx context.Context, organizationID string) (settings.OrganizationSettings, error) {
	orgSettings, err := s.settingsRepo.GetByOrganizationID(ctx, organizationID)
	if err == nil {
		return orgSettings, nil
	}
	if !errors.Is(err, settings.ErrSettingsNotFound) {
		return settings.OrganizationSettings{}, fmt.Errorf("get settings: %w", err)
	}

	created, err := s.settingsRepo.Create(ctx, settings.Defaults(organizationID))
	if err != nil {
		return settings.OrganizationSettings{}, fmt.Errorf("create default settings: %w", err)
	}
	return created, nil
}

// Update implements settings.SettingsService.
func (s *SettingsServiceImpl) Update(ctx context.Context, actor authz.Actor, req settings.UpdateSettingsRequest) (settings.OrganizationSettings, error) {
	if err := authz.Authorize(actor, authz.ActionSettingsManage, actor.OrganizationID); err != nil {
		return settings.OrganizationSettings{}, err
	}
	if err := req.Validate(); err != nil {
		return settings.OrganizationSettings{}, err
	}

	orgSettings, err := s.ForOrganization(ctx, actor.OrganizationID)
	if err != nil {
		return settings.OrganizationSettings{}, err
	}

	if req.WorkStartTime != nil {
		orgSettings.WorkStartTime = *req.WorkStartTime
	}
	if req.WorkEndTime != nil {
		orgSettings.WorkEndTime = *req.WorkEndTime
	}
	if req.WorkingDaysPerWeek != nil {
		orgSettings.WorkingDaysPerWeek = *req.WorkingDaysPerWeek
	}
	if req.AnnualLeaveQuota != nil {
		orgSettings.AnnualLeaveQuota = *req.AnnualLeaveQuota
	}
	if req.SickLeaveQuota != nil {
		orgSettings.SickLeaveQuota = *req.SickLeaveQuota
	}
	if req.Timezone != nil {
		orgSettings.Timezone = *req.Timezone
	}

	if err := s.settingsRepo.Update(ctx, orgSettings); err != nil {
		return settings.OrganizationSettings{}, err
	}

	return s.settingsRepo.GetByOrganizationID(ctx, actor.OrganizationID)
}
