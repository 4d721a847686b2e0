package employee

import (
	"github.com/kerjahub/hris-backend/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Email          string  `json:"email"`
	PhoneNumber    *string `json:"phone_number,omitempty"`
	Position       string  `json:"position"`
	DepartmentID   *string `json:"department_id,omitempty"`
	EmploymentType string  `json:"employment_type,omitempty"`
	BaseSalary     string  `json:"base_salary"`
	Status         string  `json:"status,omitempty"`
	JoinDate       string  `json:"join_date,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "first_name is required"})
	}
	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{Field: "last_name", Message: "last_name is required"})
	}
	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email is required"})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email is not a valid address"})
	}
	if len(r.Email) > 255 {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email must not exceed 255 characters"})
	}
	if validator.IsEmpty(r.Position) {
		errs = append(errs, validator.ValidationError{Field: "position", Message: "position is required"})
	}
	if validator.IsEmpty(r.BaseSalary) {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "base_salary is required"})
	}
	if r.EmploymentType != "" && !ValidEmploymentType(r.EmploymentType) {
		errs = append(errs, validator.ValidationError{Field: "employment_type", Message: "employment_type must be one of full-time, part-time, contract, intern"})
	}
	if r.Status != "" && !ValidStatus(r.Status) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be one of active, inactive, terminated"})
	}
	if r.JoinDate != "" {
		if _, ok := validator.IsValidDate(r.JoinDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "join_date", Message: "join_date must be in YYYY-MM-DD format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	FirstName      *string `json:"first_name,omitempty"`
	LastName       *string `json:"last_name,omitempty"`
	Email          *string `json:"email,omitempty"`
	PhoneNumber    *string `json:"phone_number,omitempty"`
	Position       *string `json:"position,omitempty"`
	DepartmentID   *string `json:"department_id,omitempty"`
	EmploymentType *string `json:"employment_type,omitempty"`
	BaseSalary     *string `json:"base_salary,omitempty"`
	Status         *string `json:"status,omitempty"`
	Role           *string `json:"role,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email is not a valid address"})
	}
	if r.EmploymentType != nil && !ValidEmploymentType(*r.EmploymentType) {
		errs = append(errs, validator.ValidationError{Field: "employment_type", Message: "employment_type must be one of full-time, part-time, contract, intern"})
	}
	if r.Status != nil && !ValidStatus(*r.Status) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be one of active, inactive, terminated"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateProfileRequest is the self-service subset an employee may edit on
// their own record.
type UpdateProfileRequest struct {
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FirstName != nil && validator.IsEmpty(*r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "first_name must not be empty"})
	}
	if r.LastName != nil && validator.IsEmpty(*r.LastName) {
		errs = append(errs, validator.ValidationError{Field: "last_name", Message: "last_name must not be empty"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListFilter struct {
	Search       *string
	DepartmentID *string
	Status       *string
	Page         int
	Limit        int
}
