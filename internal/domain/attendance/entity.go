package attendance

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
)

// Attendance is keyed by (EmployeeID, Date): at most one record per
// employee per calendar day, enforced by a unique index. CheckOut stays
// nil until the employee checks out and is terminal for the day.
type Attendance struct {
	ID             string
	OrganizationID string
	EmployeeID     string
	Date           time.Time
	CheckIn        time.Time
	CheckOut       *time.Time
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Joined for display
	EmployeeName *string
}

// WorkDuration returns the elapsed time between check-in and check-out.
// Derived for display only, never persisted.
func (a *Attendance) WorkDuration() time.Duration {
	if a.CheckOut == nil {
		return 0
	}
	return a.CheckOut.Sub(a.CheckIn)
}

// DeriveStatus compares the check-in instant against the organization's
// configured work start ("HH:MM") on the same calendar day. On or before
// the threshold is present, anything after is late. The comparison uses
// the server clock; the stored timezone setting is deliberately not
// applied, matching the behavior this replaces.
func DeriveStatus(checkIn time.Time, workStartTime string) (Status, error) {
	parsed, err := time.Parse("15:04", workStartTime)
	if err != nil {
		return "", fmt.Errorf("invalid work start time %q: %w", workStartTime, err)
	}

	threshold := time.Date(
		checkIn.Year(), checkIn.Month(), checkIn.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0,
		checkIn.Location(),
	)

	if checkIn.After(threshold) {
		return StatusLate, nil
	}
	return StatusPresent, nil
}

// DateOf truncates an instant to its calendar day.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
