package branch

import (
	"time"

	"github.com/frahmantamala/allowance-management/internal"
)

// Branch is a restaurant location. Menus hang off branches; orders are
// placed against them.
type Branch struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Branch) TableName() string {
	return "branches"
}

// SearchFields designates which fields participate in free-text
// filtering.
func (b Branch) SearchFields() []string {
	return []string{b.Name, b.Location}
}

var ErrNotFound = internal.NewNotFoundError("branch not found", internal.ErrCodeBranchNotFound)
