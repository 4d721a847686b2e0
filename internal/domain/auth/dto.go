package auth

import "github.com/kerjahub/hris-backend/internal/pkg/validator"

type RegisterRequest struct {
	OrganizationName string `json:"organization_name"`
	OrganizationSlug string `json:"organization_slug"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	ConfirmPassword  string `json:"confirm_password"`
}

func (r *RegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.OrganizationName) {
		errs = append(errs, validator.ValidationError{
			Field:   "organization_name",
			Message: "organization_name is required",
		})
	}
	if len(r.OrganizationName) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "organization_name",
			Message: "organization_name must not exceed 255 characters",
		})
	}
	if !validator.IsValidSlug(r.OrganizationSlug) {
		errs = append(errs, validator.ValidationError{
			Field:   "organization_slug",
			Message: "organization_slug must be 3-50 lowercase letters, digits or hyphens, starting and ending with a letter or digit",
		})
	}

	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{
			Field:   "first_name",
			Message: "first_name is required",
		})
	}
	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{
			Field:   "last_name",
			Message: "last_name is required",
		})
	}

	errs = append(errs, validateEmail(r.Email)...)
	errs = append(errs, validatePassword(r.Password)...)
	if validator.IsEmpty(r.ConfirmPassword) {
		errs = append(errs, validator.ValidationError{
			Field:   "confirm_password",
			Message: "confirm_password is required",
		})
	} else if r.ConfirmPassword != r.Password {
		errs = append(errs, validator.ValidationError{
			Field:   "confirm_password",
			Message: "password and confirm_password do not match",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validateEmail(r.Email)...)
	errs = append(errs, validatePassword(r.Password)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r *RefreshTokenRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RefreshToken) {
		errs = append(errs, validator.ValidationError{
			Field:   "refresh_token",
			Message: "refresh_token is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AcceptInvitationRequest completes an invited employee's onboarding. The
// token identifies the invitation; the password becomes the new identity's
// credential.
type AcceptInvitationRequest struct {
	Token           string `json:"token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (r *AcceptInvitationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Token) {
		errs = append(errs, validator.ValidationError{
			Field:   "token",
			Message: "token is required",
		})
	}
	errs = append(errs, validatePassword(r.Password)...)
	if r.ConfirmPassword != r.Password {
		errs = append(errs, validator.ValidationError{
			Field:   "confirm_password",
			Message: "password and confirm_password do not match",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (r *UpdatePasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CurrentPassword) {
		errs = append(errs, validator.ValidationError{
			Field:   "current_password",
			Message: "current_password is required",
		})
	}
	errs = append(errs, validatePasswordField("new_password", r.NewPassword)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateEmail(email string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if validator.IsEmpty(email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
		return errs
	}
	if len(email) > 254 {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must not exceed 254 characters",
		})
	}
	if !validator.IsValidEmail(email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}
	return errs
}

func validatePassword(password string) validator.ValidationErrors {
	return validatePasswordField("password", password)
}

func validatePasswordField(field string, password string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if validator.IsEmpty(password) {
		errs = append(errs, validator.ValidationError{
			Field:   field,
			Message: field + " is required",
		})
		return errs
	}
	if len(password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   field,
			Message: field + " must be at least 8 characters long",
		})
	}
	if len(password) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   field,
			Message: field + " must not exceed 255 characters",
		})
	}
	return errs
}

type TokenResponse struct {
	AccessToken           string `json:"access_token"`
	AccessTokenExpiresIn  int64  `json:"access_token_expires_in"`
	RefreshToken          string `json:"refresh_token"`
	RefreshTokenExpiresIn int64  `json:"refresh_token_expires_in"`
}

type AccessTokenResponse struct {
	AccessToken          string `json:"access_token"`
	AccessTokenExpiresIn int64  `json:"access_token_expires_in"`
}
