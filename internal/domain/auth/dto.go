package auth

import (
	"strings"
	"unicode/utf8"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/validator"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (r *RegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	r.Name = strings.TrimSpace(r.Name)

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email",
		})
	}

	errs = append(errs, validatePassword("password", r.Password)...)

	nameLen := utf8.RuneCountInString(r.Name)
	if nameLen == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if nameLen < 3 || nameLen > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must be between 3 and 255 characters",
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

	r.Email = strings.TrimSpace(strings.ToLower(r.Email))

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email",
		})
	}
	if r.Password == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func (r *ChangePasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.OldPassword == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "oldPassword",
			Message: "oldPassword is required",
		})
	}
	errs = append(errs, validatePassword("newPassword", r.NewPassword)...)
	if r.OldPassword != "" && r.OldPassword == r.NewPassword {
		errs = append(errs, validator.ValidationError{
			Field:   "newPassword",
			Message: "newPassword must differ from oldPassword",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validatePassword(field, password string) validator.ValidationErrors {
	switch {
	case password == "":
		return validator.ValidationErrors{{Field: field, Message: field + " is required"}}
	case len(password) < 6:
		return validator.ValidationErrors{{Field: field, Message: field + " must be at least 6 characters long"}}
	case len(password) > 72:
		// bcrypt ignores anything past 72 bytes
		return validator.ValidationErrors{{Field: field, Message: field + " must not exceed 72 characters"}}
	case !validator.IsStrongPassword(password):
		return validator.ValidationErrors{{Field: field, Message: field + " must contain at least one lowercase letter, one uppercase letter, and one number"}}
	}
	return nil
}

type TokenResponse struct {
	User      user.Profile `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt int64        `json:"expires_at"`
}
