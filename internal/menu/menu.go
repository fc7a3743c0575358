package menu

import (
	"time"

	"github.com/frahmantamala/allowance-management/internal"
)

// Menu belongs to a branch; items belong to a menu. Prices are cents.
type Menu struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	BranchID    int64     `json:"branch_id" gorm:"not null;index"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Menu) TableName() string {
	return "menus"
}

func (m Menu) SearchFields() []string {
	return []string{m.Name, m.Description}
}

type MenuItem struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	MenuID     int64     `json:"menu_id" gorm:"not null;index"`
	Name       string    `json:"name" gorm:"not null"`
	PriceCents int64     `json:"price_cents" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (MenuItem) TableName() string {
	return "menu_items"
}

func (i MenuItem) SearchFields() []string {
	return []string{i.Name}
}

var (
	ErrMenuNotFound = internal.NewNotFoundError("menu not found", internal.ErrCodeMenuNotFound)
	ErrItemNotFound = internal.NewNotFoundError("menu item not found", internal.ErrCodeMenuItemNotFound)
)
