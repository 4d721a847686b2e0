package employee

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kerjahub/hris-backend/internal/domain/authz"
)

type Status string

const (
	StatusActive     Status = "active"
	StatusInactive   Status = "inactive"
	StatusTerminated Status = "terminated"
)

type EmploymentType string

const (
	EmploymentFullTime EmploymentType = "full-time"
	EmploymentPartTime EmploymentType = "part-time"
	EmploymentContract EmploymentType = "contract"
	EmploymentIntern   EmploymentType = "intern"
)

// Employee belongs to exactly one organization. AuthID is the back-reference
// to the identity record; it is nil until the employee accepts an invitation
// and is set exactly once, never reassigned.
type Employee struct {
	ID             string
	OrganizationID string
	AuthID         *string
	EmployeeCode   string
	FirstName      string
	LastName       string
	Email          string
	PhoneNumber    *string
	Position       string
	DepartmentID   *string
	Role           authz.Role
	Status         Status
	EmploymentType EmploymentType
	BaseSalary     decimal.Decimal
	Currency       string
	JoinDate       time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Joined for display
	DepartmentName *string
}

func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

func (e *Employee) IsLinked() bool {
	return e.AuthID != nil && *e.AuthID != ""
}

func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusActive, StatusInactive, StatusTerminated:
		return true
	}
	return false
}

// Code builds employee codes like ACM0001 from the organization slug and
// the zero-based count of existing employees.
func Code(slug string, count int64) string {
	prefix := slug
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	return fmt.Sprintf("%s%04d", strings.ToUpper(prefix), count+1)
}

func ValidEmploymentType(s string) bool {
	switch EmploymentType(s) {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentIntern:
		return true
	}
	return false
}
