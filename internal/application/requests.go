package application

import (
	"strings"

	"github.com/oksasatya/go-member-account/pkg/validation"
)

// RegistrationRequest is the transient value submitted on the registration
// form. It is never persisted directly.
type RegistrationRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	Name            string `json:"name" validate:"required"`
}

// PasswordChangeRequest identifies a member by email and carries the
// current and replacement credentials.
type PasswordChangeRequest struct {
	Email       string `json:"email" validate:"required,email"`
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,max=72"`
}

// NewRegistrationRequest builds a normalized RegistrationRequest from raw
// form values, or returns a *ValidationError.
func NewRegistrationRequest(email, password, confirmPassword, name string) (RegistrationRequest, error) {
	req := RegistrationRequest{
		Email:           email,
		Password:        password,
		ConfirmPassword: confirmPassword,
		Name:            name,
	}.normalize()
	if err := req.Validate(); err != nil {
		return RegistrationRequest{}, err
	}
	return req, nil
}

// NewPasswordChangeRequest builds a normalized PasswordChangeRequest from raw
// values, or returns a *ValidationError.
func NewPasswordChangeRequest(email, oldPassword, newPassword string) (PasswordChangeRequest, error) {
	req := PasswordChangeRequest{
		Email:       email,
		OldPassword: oldPassword,
		NewPassword: newPassword,
	}.normalize()
	if err := req.Validate(); err != nil {
		return PasswordChangeRequest{}, err
	}
	return req, nil
}

func (r RegistrationRequest) normalize() RegistrationRequest {
	r.Email = strings.TrimSpace(r.Email)
	r.Name = strings.TrimSpace(r.Name)
	return r
}

func (r PasswordChangeRequest) normalize() PasswordChangeRequest {
	r.Email = strings.TrimSpace(r.Email)
	return r
}

// Validate checks presence, email shape and password confirmation.
func (r RegistrationRequest) Validate() error {
	return validate(r)
}

func (r PasswordChangeRequest) Validate() error {
	return validate(r)
}

func validate(v any) error {
	if err := validation.Struct(v); err != nil {
		return &ValidationError{Fields: validation.ToDetails(err)}
	}
	return nil
}
