package department

import "errors"

var (
	ErrDepartmentNotFound = errors.New("department not found")
	ErrDuplicateName      = errors.New("department with this name already exists")
	ErrManagerNotFound    = errors.New("manager does not belong to this organization")
)
