package authz

// Package authz is the tenant-scoped authorization guard. Every mutating
// handler resolves an Actor first, then calls Authorize (or AuthorizeSelf
// for self-service actions) before touching the target resource.

// Role is the closed set of employee roles, ordered here from highest to
// lowest privilege. Allow-sets below are explicit per action because the
// observed permissions are not strictly nested (billing excludes admin,
// leave review includes manager).
type Role string

const (
	RoleOwner    Role = "owner"
	RoleAdmin    Role = "admin"
	RoleHR       Role = "hr"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// ParseRole converts an untrusted string into a Role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleOwner, RoleAdmin, RoleHR, RoleManager, RoleEmployee:
		return Role(s), true
	}
	return "", false
}

// Action is the closed set of guarded operations.
type Action string

const (
	ActionEmployeeManage   Action = "employee.manage"
	ActionEmployeeView     Action = "employee.view"
	ActionDepartmentManage Action = "department.manage"
	ActionDepartmentView   Action = "department.view"
	ActionLeaveReview      Action = "leave.review"
	ActionLeaveView        Action = "leave.view"
	ActionAttendanceView   Action = "attendance.view"
	ActionSettingsView     Action = "settings.view"
	ActionSettingsManage   Action = "settings.manage"
	ActionBillingManage    Action = "billing.manage"

	// Self-service actions: permitted for any role, but only on the
	// actor's own records. Checked via AuthorizeSelf.
	ActionCheckIn        Action = "attendance.check_in"
	ActionCheckOut       Action = "attendance.check_out"
	ActionLeaveSubmit    Action = "leave.submit"
	ActionProfileEditOwn Action = "profile.edit_own"
)

// Actor is a resolved, tenant-scoped identity performing a request.
type Actor struct {
	EmployeeID     string
	OrganizationID string
	Role           Role
	Status         string
}

var allRoles = []Role{RoleOwner, RoleAdmin, RoleHR, RoleManager, RoleEmployee}

// allowedRoles maps each action to the exact set of roles permitted to
// perform it. Self-service actions allow every role; the self constraint
// is enforced separately.
var allowedRoles = map[Action][]Role{
	ActionEmployeeManage:   {RoleOwner, RoleAdmin, RoleHR},
	ActionEmployeeView:     allRoles,
	ActionDepartmentManage: {RoleOwner, RoleAdmin, RoleHR},
	ActionDepartmentView:   allRoles,
	ActionLeaveReview:      {RoleOwner, RoleAdmin, RoleHR, RoleManager},
	ActionLeaveView:        {RoleOwner, RoleAdmin, RoleHR, RoleManager},
	ActionAttendanceView:   {RoleOwner, RoleAdmin, RoleHR, RoleManager},
	ActionSettingsView:     {RoleOwner, RoleAdmin},
	ActionSettingsManage:   {RoleOwner, RoleAdmin},
	ActionBillingManage:    {RoleOwner},
	ActionCheckIn:          allRoles,
	ActionCheckOut:         allRoles,
	ActionLeaveSubmit:      allRoles,
	ActionProfileEditOwn:   allRoles,
}

// Authorize decides whether actor may perform action on a resource owned
// by resourceOrgID. Tenant isolation is absolute: a cross-tenant access is
// denied before the role is even considered, owner included.
func Authorize(actor Actor, action Action, resourceOrgID string) error {
	if resourceOrgID != actor.OrganizationID {
		return ErrCrossTenantAccess
	}

	roles, ok := allowedRoles[action]
	if !ok {
		return ErrInsufficientPermissions
	}
	for _, r := range roles {
		if r == actor.Role {
			return nil
		}
	}
	return ErrInsufficientPermissions
}

// AuthorizeSelf guards self-service actions: on top of the tenant and role
// checks, the target resource must belong to the actor. This applies to
// privileged roles too: an admin cannot check in on behalf of another
// employee.
func AuthorizeSelf(actor Actor, action Action, resourceOrgID string, ownerEmployeeID string) error {
	if err := Authorize(actor, action, resourceOrgID); err != nil {
		return err
	}
	if ownerEmployeeID != actor.EmployeeID {
		return ErrNotSelf
	}
	return nil
}
