package attendance

import "errors"

var (
	ErrAlreadyCheckedIn   = errors.New("already checked in today")
	ErrAlreadyCheckedOut  = errors.New("already checked out")
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
