package order

import (
	"time"

	"github.com/frahmantamala/allowance-management/internal"
)

type OrderItemDTO struct {
	MenuItemID int64 `json:"menu_item_id"`
	Quantity   int   `json:"quantity"`
}

type CreateOrderDTO struct {
	EmployeeID int64          `json:"employee_id"`
	BranchID   int64          `json:"branch_id"`
	OrderType  OrderType      `json:"order_type"`
	GuestNote  string         `json:"guest_note,omitempty"`
	TotalCents int64          `json:"total_cents"`
	OrderedAt  *time.Time     `json:"ordered_at,omitempty"`
	Items      []OrderItemDTO `json:"items"`
}

func (dto *CreateOrderDTO) Validate() error {
	if dto.EmployeeID <= 0 {
		return internal.NewValidationError("employee_id is required", internal.ErrCodeValidationFailed)
	}
	if dto.BranchID <= 0 {
		return internal.NewValidationError("branch_id is required", internal.ErrCodeValidationFailed)
	}
	if !ValidOrderType(dto.OrderType) {
		return internal.NewValidationError("order_type must be SELF or GUEST", internal.ErrCodeValidationFailed)
	}
	if len(dto.Items) == 0 {
		return internal.NewValidationError("at least one item is required", internal.ErrCodeValidationFailed)
	}
	for _, item := range dto.Items {
		if item.MenuItemID <= 0 {
			return internal.NewValidationError("menu_item_id is required", internal.ErrCodeValidationFailed)
		}
		if item.Quantity <= 0 {
			return internal.NewValidationError("quantity must be positive", internal.ErrCodeValidationFailed)
		}
	}
	return nil
}

// ListFilter narrows the order listing. Zero values mean "no filter".
type ListFilter struct {
	EmployeeID int64
	BranchID   int64
	OrderType  OrderType
	StartDate  *time.Time
	EndDate    *time.Time
	Page       int
	Limit      int
}

func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
}

func (f *ListFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type OrdersResponse struct {
	Orders []*Order `json:"orders"`
	Page   int      `json:"page"`
	Limit  int      `json:"limit"`
	Total  int64    `json:"total"`
}
