package order

import (
	"time"

	"github.com/frahmantamala/allowance-management/internal"
)

// OrderType says whose meal this was. Guest meals are still charged
// against the hosting employee's allowance.
type OrderType string

const (
	TypeSelf  OrderType = "SELF"
	TypeGuest OrderType = "GUEST"
)

func ValidOrderType(t OrderType) bool {
	return t == TypeSelf || t == TypeGuest
}

type Order struct {
	ID         int64       `json:"id" gorm:"primaryKey"`
	EmployeeID int64       `json:"employee_id" gorm:"not null;index"`
	BranchID   int64       `json:"branch_id" gorm:"not null;index"`
	OrderType  OrderType   `json:"order_type" gorm:"not null"`
	GuestNote  string      `json:"guest_note,omitempty" gorm:"column:guest_note"`
	TotalCents int64       `json:"total_cents" gorm:"not null"`
	OrderedAt  time.Time   `json:"ordered_at" gorm:"not null;index"`
	Items      []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	CreatedAt  time.Time   `json:"created_at" gorm:"column:created_at;default:now()"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID         int64  `json:"id" gorm:"primaryKey"`
	OrderID    int64  `json:"order_id" gorm:"not null;index"`
	MenuItemID int64  `json:"menu_item_id" gorm:"not null"`
	Name       string `json:"name" gorm:"not null"`
	PriceCents int64  `json:"price_cents" gorm:"not null"`
	Quantity   int    `json:"quantity" gorm:"not null"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

func (i OrderItem) SubtotalCents() int64 {
	return i.PriceCents * int64(i.Quantity)
}

var ErrNotFound = internal.NewNotFoundError("order not found", internal.ErrCodeOrderNotFound)
