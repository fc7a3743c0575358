package user

import (
	"regexp"
	"strings"

	"github.com/frahmantamala/allowance-management/internal"
	"github.com/frahmantamala/allowance-management/internal/auth"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type CreateUserDTO struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	GroupID  *int64 `json:"employee_allowance_group_id,omitempty"`
}

func (dto *CreateUserDTO) Normalize() {
	dto.FullName = strings.TrimSpace(dto.FullName)
	dto.Email = strings.ToLower(strings.TrimSpace(dto.Email))
	dto.Role = strings.ToUpper(strings.TrimSpace(dto.Role))
}

func (dto *CreateUserDTO) Validate() error {
	if dto.FullName == "" {
		return internal.NewValidationError("full_name is required", internal.ErrCodeValidationFailed)
	}
	if !emailPattern.MatchString(dto.Email) {
		return internal.NewValidationError("invalid email address", internal.ErrCodeValidationFailed)
	}
	if len(dto.Password) < 8 {
		return internal.NewValidationError("password must be at least 8 characters", internal.ErrCodeValidationFailed)
	}
	if !auth.ValidRole(auth.Role(dto.Role)) {
		return internal.NewValidationError("unknown role", internal.ErrCodeValidationFailed)
	}
	return nil
}

// UpdateUserDTO leaves the password alone unless one is supplied.
type UpdateUserDTO struct {
	FullName string  `json:"full_name"`
	Email    string  `json:"email"`
	Password *string `json:"password,omitempty"`
	Role     string  `json:"role"`
	Verified *bool   `json:"verified,omitempty"`
	GroupID  *int64  `json:"employee_allowance_group_id,omitempty"`
}

func (dto *UpdateUserDTO) Normalize() {
	dto.FullName = strings.TrimSpace(dto.FullName)
	dto.Email = strings.ToLower(strings.TrimSpace(dto.Email))
	dto.Role = strings.ToUpper(strings.TrimSpace(dto.Role))
}

func (dto *UpdateUserDTO) Validate() error {
	if dto.FullName == "" {
		return internal.NewValidationError("full_name is required", internal.ErrCodeValidationFailed)
	}
	if !emailPattern.MatchString(dto.Email) {
		return internal.NewValidationError("invalid email address", internal.ErrCodeValidationFailed)
	}
	if dto.Password != nil && len(*dto.Password) < 8 {
		return internal.NewValidationError("password must be at least 8 characters", internal.ErrCodeValidationFailed)
	}
	if !auth.ValidRole(auth.Role(dto.Role)) {
		return internal.NewValidationError("unknown role", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UsersResponse struct {
	Users []*User `json:"users"`
}
