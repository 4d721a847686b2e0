package attendance

import "github.com/kerjahub/hris-backend/internal/pkg/validator"

type CheckInRequest struct {
	EmployeeID string `json:"employee_id"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckOutRequest struct {
	AttendanceID string `json:"attendance_id"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AttendanceID) {
		errs = append(errs, validator.ValidationError{Field: "attendance_id", Message: "attendance_id is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckOutResponse struct {
	Attendance   Attendance `json:"attendance"`
	WorkDuration string     `json:"work_duration"`
}

type ListFilter struct {
	EmployeeID *string
	Date       *string
	StartDate  *string
	EndDate    *string
	Status     *string
	Page       int
	Limit      int
}
