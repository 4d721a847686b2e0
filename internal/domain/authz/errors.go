package authz

import "errors"

var (
	ErrCrossTenantAccess       = errors.New("resource belongs to a different organization")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrNotSelf                 = errors.New("action is only allowed on your own records")
)
