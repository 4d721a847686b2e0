package leave

import "time"

type LeaveType string

const (
	TypeAnnual    LeaveType = "annual"
	TypeSick      LeaveType = "sick"
	TypeUnpaid    LeaveType = "unpaid"
	TypeEmergency LeaveType = "emergency"
	TypeMaternity LeaveType = "maternity"
	TypePaternity LeaveType = "paternity"
)

func ParseLeaveType(s string) (LeaveType, bool) {
	switch LeaveType(s) {
	case TypeAnnual, TypeSick, TypeUnpaid, TypeEmergency, TypeMaternity, TypePaternity:
		return LeaveType(s), true
	}
	return "", false
}

// HasQuota reports whether the type is constrained by a yearly quota.
// Only annual and sick leave are; the rest are unconstrained.
func (t LeaveType) HasQuota() bool {
	return t == TypeAnnual || t == TypeSick
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// LeaveRequest is an inclusive date range of requested leave. Status moves
// pending -> approved|rejected exactly once; the review fields are written
// atomically with that transition and never change again.
type LeaveRequest struct {
	ID             string
	OrganizationID string
	EmployeeID     string
	LeaveType      LeaveType
	StartDate      time.Time
	EndDate        time.Time
	TotalDays      int
	Reason         string
	Status         Status
	ReviewedBy     *string
	ReviewedAt     *time.Time
	ReviewNotes    *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Joined for display
	EmployeeName *string
}

// WorkingDays counts the days in the inclusive range that are not Saturday
// or Sunday.
func WorkingDays(startDate, endDate time.Time) int {
	days := 0
	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		days++
	}
	return days
}
