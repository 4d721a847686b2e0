package settings

import (
	"time"

	"github.com/kerjahub/hris-backend/internal/pkg/validator"
)

// UpdateSettingsRequest patches organization settings. Nil fields keep the
// current value.
type UpdateSettingsRequest struct {
	WorkStartTime      *string `json:"work_start_time,omitempty"`
	WorkEndTime        *string `json:"work_end_time,omitempty"`
	WorkingDaysPerWeek *int    `json:"working_days_per_week,omitempty"`
	AnnualLeaveQuota   *int    `json:"annual_leave_quota,omitempty"`
	SickLeaveQuota     *int    `json:"sick_leave_quota,omitempty"`
	Timezone           *string `json:"timezone,omitempty"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.WorkStartTime != nil && !validator.IsValidTimeOfDay(*r.WorkStartTime) {
		errs = append(errs, validator.ValidationError{Field: "work_start_time", Message: "work_start_time must be in HH:MM format"})
	}
	if r.WorkEndTime != nil && !validator.IsValidTimeOfDay(*r.WorkEndTime) {
		errs = append(errs, validator.ValidationError{Field: "work_end_time", Message: "work_end_time must be in HH:MM format"})
	}
	if r.WorkingDaysPerWeek != nil && (*r.WorkingDaysPerWeek < 1 || *r.WorkingDaysPerWeek > 7) {
		errs = append(errs, validator.ValidationError{Field: "working_days_per_week", Message: "working_days_per_week must be between 1 and 7"})
	}
	if r.AnnualLeaveQuota != nil && (*r.AnnualLeaveQuota < 0 || *r.AnnualLeaveQuota > 365) {
		errs = append(errs, validator.ValidationError{Field: "annual_leave_quota", Message: "annual_leave_quota must be between 0 and 365"})
	}
	if r.SickLeaveQuota != nil && (*r.SickLeaveQuota < 0 || *r.SickLeaveQuota > 365) {
		errs = append(errs, validator.ValidationError{Field: "sick_leave_quota", Message: "sick_leave_quota must be between 0 and 365"})
	}
	if r.Timezone != nil {
		if _, err := time.LoadLocation(*r.Timezone); err != nil {
			errs = append(errs, validator.ValidationError{Field: "timezone", Message: "timezone must be a valid IANA timezone name"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
