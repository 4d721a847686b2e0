package settings

import "time"

// OrganizationSettings holds per-tenant working rules. Exactly one row per
// organization; reads lazily create the row with defaults when missing.
type OrganizationSettings struct {
	ID                 string
	OrganizationID     string
	WorkStartTime      string // HH:MM
	WorkEndTime        string // HH:MM
	WorkingDaysPerWeek int
	AnnualLeaveQuota   int
	SickLeaveQuota     int
	Timezone           string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

const (
	DefaultWorkStartTime      = "09:00"
	DefaultWorkEndTime        = "17:00"
	DefaultWorkingDaysPerWeek = 5
	DefaultAnnualLeaveQuota   = 12
	DefaultSickLeaveQuota     = 12
	DefaultTimezone           = "Asia/Jakarta"
)

// Defaults returns the settings a fresh organization starts with.
func Defaults(organizationID string) OrganizationSettings {
	return OrganizationSettings{
		OrganizationID:     organizationID,
		WorkStartTime:      DefaultWorkStartTime,
		WorkEndTime:        DefaultWorkEndTime,
		WorkingDaysPerWeek: DefaultWorkingDaysPerWeek,
		AnnualLeaveQuota:   DefaultAnnualLeaveQuota,
		SickLeaveQuota:     DefaultSickLeaveQuota,
		Timezone:           DefaultTimezone,
	}
}

// QuotaFor maps a quota-constrained leave type name to its configured quota.
func (s OrganizationSettings) QuotaFor(leaveType string) int {
	switch leaveType {
	case "annual":
		return s.AnnualLeaveQuota
	case "sick":
		return s.SickLeaveQuota
	}
	return 0
}
