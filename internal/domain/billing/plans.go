package billing

import (
	"github.com/shopspring/decimal"

	"github.com/kerjahub/hris-backend/internal/domain/organization"
)

// Plan describes a subscription tier. The catalog is static; organizations
// reference plans by type, never by a mutable plan row.
type Plan struct {
	Type          organization.PlanType
	Name          string
	EmployeeLimit int              // 0 means unlimited
	MonthlyPrice  *decimal.Decimal // nil means contact sales
	Features      []string
}

// Unlimited reports whether the plan has no employee seat cap.
func (p Plan) Unlimited() bool {
	return p.EmployeeLimit == 0
}

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

var planCatalog = []Plan{
	{
		Type:          organization.PlanFree,
		Name:          "Free",
		EmployeeLimit: 5,
		MonthlyPrice:  price("0"),
		Features:      []string{"attendance", "leave", "basic reports"},
	},
	{
		Type:          organization.PlanStarter,
		Name:          "Starter",
		EmployeeLimit: 20,
		MonthlyPrice:  price("49"),
		Features:      []string{"attendance", "leave", "departments", "email support"},
	},
	{
		Type:          organization.PlanProfessional,
		Name:          "Professional",
		EmployeeLimit: 50,
		MonthlyPrice:  price("99"),
		Features:      []string{"attendance", "leave", "departments", "priority support"},
	},
	{
		Type:          organization.PlanEnterprise,
		Name:          "Enterprise",
		EmployeeLimit: 0,
		MonthlyPrice:  nil,
		Features:      []string{"everything in Professional", "unlimited employees", "dedicated support"},
	},
}

// Plans returns the full catalog in display order.
func Plans() []Plan {
	out := make([]Plan, len(planCatalog))
	copy(out, planCatalog)
	return out
}

// PlanByType looks a plan up by its type.
func PlanByType(t organization.PlanType) (Plan, bool) {
	for _, p := range planCatalog {
		if p.Type == t {
			return p, true
		}
	}
	return Plan{}, false
}
