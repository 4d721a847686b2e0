package employee

import "errors"

var (
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrDuplicateEmail       = errors.New("employee with this email already exists in this organization")
	ErrEmployeeLimitReached = errors.New("employee limit for the current plan has been reached")
	ErrInvalidRole          = errors.New("invalid role")
	ErrInvalidStatus        = errors.New("invalid employee status")
	ErrCannotDeleteSelf     = errors.New("cannot delete your own employee record")
	ErrAlreadyLinked        = errors.New("employee is already linked to an identity")
)
