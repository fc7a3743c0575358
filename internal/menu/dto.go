package menu

import (
	"strings"

	"github.com/frahmantamala/allowance-management/internal"
)

type MenuDTO struct {
	ID          *int64 `json:"id,omitempty"`
	BranchID    int64  `json:"branch_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (dto *MenuDTO) Validate() error {
	if strings.TrimSpace(dto.Name) == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeValidationFailed)
	}
	if dto.BranchID <= 0 {
		return internal.NewValidationError("branch_id is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

func (dto *MenuDTO) Normalize() {
	dto.Name = strings.TrimSpace(dto.Name)
	dto.Description = strings.TrimSpace(dto.Description)
}

type MenuItemDTO struct {
	ID         *int64 `json:"id,omitempty"`
	MenuID     int64  `json:"menu_id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
}

func (dto *MenuItemDTO) Validate() error {
	if strings.TrimSpace(dto.Name) == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeValidationFailed)
	}
	if dto.MenuID <= 0 {
		return internal.NewValidationError("menu_id is required", internal.ErrCodeValidationFailed)
	}
	if dto.PriceCents <= 0 {
		return internal.NewValidationError("price must be positive", internal.ErrCodeInvalidAmount)
	}
	return nil
}

func (dto *MenuItemDTO) Normalize() {
	dto.Name = strings.TrimSpace(dto.Name)
}

type MenusResponse struct {
	Menus []*Menu `json:"menus"`
}

type MenuItemsResponse struct {
	Items []*MenuItem `json:"items"`
}
