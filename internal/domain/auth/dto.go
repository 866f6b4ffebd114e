package auth

import (
	"strings"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/validator"
)

type RegisterAdminRequest struct {
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (r *RegisterAdminRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	validateFullName(&errs, r.FullName)
	validateEmail(&errs, r.Email)
	validatePassword(&errs, r.Password, r.ConfirmPassword)

	return errs.Err()
}

type RegisterEmployeeRequest struct {
	InviteCode      string  `json:"invite_code"`
	FullName        string  `json:"full_name"`
	Email           string  `json:"email"`
	Password        string  `json:"password"`
	ConfirmPassword string  `json:"confirm_password"`
	Position        *string `json:"position,omitempty"`
	PhoneNumber     *string `json:"phone_number,omitempty"`
}

func (r *RegisterEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.InviteCode = strings.TrimSpace(r.InviteCode)
	if len(r.InviteCode) != 6 || !validator.IsNumeric(r.InviteCode) {
		errs.Add("invite_code", "invite_code must be 6 digits")
	}

	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	validateFullName(&errs, r.FullName)
	validateEmail(&errs, r.Email)
	validatePassword(&errs, r.Password, r.ConfirmPassword)

	if r.PhoneNumber != nil && !validator.IsEmpty(*r.PhoneNumber) && !validator.IsValidPhoneNumber(*r.PhoneNumber) {
		errs.Add("phone_number", "phone_number must be a valid Indonesian phone number")
	}

	return errs.Err()
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	validateEmail(&errs, r.Email)
	if validator.IsEmpty(r.Password) {
		errs.Add("password", "password is required")
	}

	return errs.Err()
}

func validateFullName(errs *validator.ValidationErrors, name string) {
	if validator.IsEmpty(name) {
		errs.Add("full_name", "full_name is required")
	} else if len(name) > 255 {
		errs.Add("full_name", "full_name must not exceed 255 characters")
	}
}

func validateEmail(errs *validator.ValidationErrors, email string) {
	if validator.IsEmpty(email) {
		errs.Add("email", "email is required")
	} else if len(email) > 254 {
		errs.Add("email", "email must not exceed 254 characters")
	} else if !validator.IsValidEmail(email) {
		errs.Add("email", "email must be a valid email address, e.g. user@example.com")
	}
}

func validatePassword(errs *validator.ValidationErrors, password, confirm string) {
	if validator.IsEmpty(password) {
		errs.Add("password", "password is required")
	} else if len(password) < 8 {
		errs.Add("password", "password must be at least 8 characters long")
	} else if len(password) > 72 {
		errs.Add("password", "password must not exceed 72 characters")
	}
	if validator.IsEmpty(confirm) {
		errs.Add("confirm_password", "confirm_password is required")
	} else if confirm != password {
		errs.Add("confirm_password", "password and confirm_password do not match")
	}
}

type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int64        `json:"expires_in"`
	User        UserResponse `json:"user"`
}

type UserResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	AdminID  string `json:"admin_id"`
}

type SSETokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}
