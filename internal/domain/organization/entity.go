package organization

import "time"

// PlanType identifies the billing plan an organization subscribes to.
type PlanType string

const (
	PlanFree         PlanType = "free"
	PlanStarter      PlanType = "starter"
	PlanProfessional PlanType = "professional"
	PlanEnterprise   PlanType = "enterprise"
)

type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionPastDue  SubscriptionStatus = "past_due"
	SubscriptionCanceled SubscriptionStatus = "canceled"
)

// Organization is the tenant isolation root. Every other entity carries an
// OrganizationID that must match its parent chain.
type Organization struct {
	ID                 string
	Name               string
	Slug               string
	PlanType           PlanType
	SubscriptionStatus SubscriptionStatus
	EmployeeLimit      int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
