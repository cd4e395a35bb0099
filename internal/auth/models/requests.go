package models

import (
	"strings"

	"github.com/asaskevich/govalidator"

	dErrors "screenboard/pkg/domain-errors"
)

const (
	maxEmailLength    = 255
	maxUsernameLength = 64
	maxPasswordLength = 256
)

// NormalizeEmail trims and lowercases an email so lookups and uniqueness are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *RegisterRequest) Normalize() {
	if r == nil {
		return
	}
	r.Email = NormalizeEmail(r.Email)
	r.Username = strings.TrimSpace(r.Username)
}

func (r *RegisterRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if r.Email == "" || r.Username == "" || r.Password == "" {
		return dErrors.New(dErrors.CodeBadRequest, "email, username and password are required")
	}
	if len(r.Email) > maxEmailLength || !govalidator.IsEmail(r.Email) {
		return dErrors.New(dErrors.CodeValidation, "email must be a valid email address")
	}
	if len(r.Username) > maxUsernameLength {
		return dErrors.New(dErrors.CodeValidation, "username is too long")
	}
	if len(r.Password) > maxPasswordLength {
		return dErrors.New(dErrors.CodeValidation, "password is too long")
	}
	return nil
}

// LoginRequest carries the presented credentials. Shape validation only checks
// presence; everything else is the service's decision.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Normalize() {
	if r == nil {
		return
	}
	r.Email = NormalizeEmail(r.Email)
}

func (r *LoginRequest) Validate() error {
	if r == nil || r.Email == "" || r.Password == "" {
		return dErrors.New(dErrors.CodeBadRequest, "email and password are required")
	}
	return nil
}

type UpdateUserRequest struct {
	Username string `json:"username"`
}

func (r *UpdateUserRequest) Normalize() {
	if r == nil {
		return
	}
	r.Username = strings.TrimSpace(r.Username)
}

func (r *UpdateUserRequest) Validate() error {
	if r == nil || r.Username == "" {
		return dErrors.New(dErrors.CodeBadRequest, "username is required")
	}
	if len(r.Username) > maxUsernameLength {
		return dErrors.New(dErrors.CodeValidation, "username is too long")
	}
	return nil
}
