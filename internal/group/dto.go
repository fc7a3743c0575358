package group

import (
	"strings"

	"github.com/frahmantamala/allowance-management/internal"
)

type GroupDTO struct {
	ID                    *int64 `json:"id,omitempty"`
	Name                  string `json:"name"`
	MonthlyAllowanceCents int64  `json:"monthly_allowance_cents"`
}

func (dto *GroupDTO) Validate() error {
	if strings.TrimSpace(dto.Name) == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeValidationFailed)
	}
	if dto.MonthlyAllowanceCents <= 0 {
		return internal.NewValidationError("monthly allowance must be positive", internal.ErrCodeInvalidAmount)
	}
	return nil
}

func (dto *GroupDTO) Normalize() {
	dto.Name = strings.TrimSpace(dto.Name)
}

type AssignDTO struct {
	UserID  int64 `json:"user_id"`
	GroupID int64 `json:"group_id"`
}

func (dto *AssignDTO) Validate() error {
	if dto.UserID <= 0 {
		return internal.NewValidationError("user_id is required", internal.ErrCodeValidationFailed)
	}
	if dto.GroupID <= 0 {
		return internal.NewValidationError("group_id is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type GroupsResponse struct {
	Groups []*AllowanceGroup `json:"groups"`
}
