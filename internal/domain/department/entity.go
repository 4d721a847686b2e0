package department

import "time"

type Department struct {
	ID             string
	OrganizationID string
	Name           string
	Description    *string
	ManagerID      *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Joined for display
	EmployeeCount int64
	ManagerName   *string
}
