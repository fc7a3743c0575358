package group

import (
	"time"

	"github.com/frahmantamala/allowance-management/internal"
)

// AllowanceGroup buckets employees under one monthly allowance amount.
// Amounts are stored in cents to keep arithmetic exact.
type AllowanceGroup struct {
	ID                    int64     `json:"id" gorm:"primaryKey"`
	Name                  string    `json:"name" gorm:"not null;uniqueIndex"`
	MonthlyAllowanceCents int64     `json:"monthly_allowance_cents" gorm:"not null"`
	CreatedAt             time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt             time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (AllowanceGroup) TableName() string {
	return "allowance_groups"
}

func (g AllowanceGroup) SearchFields() []string {
	return []string{g.Name}
}

var (
	ErrNotFound = internal.NewNotFoundError("allowance group not found", internal.ErrCodeGroupNotFound)

	// ErrAlreadyAssigned fires when a user is assigned the group they
	// already belong to.
	ErrAlreadyAssigned = internal.NewConflictError("user already belongs to this group", internal.ErrCodeGroupAlreadySet)

	// ErrGroupInUse blocks deleting a group that still has members.
	ErrGroupInUse = internal.NewConflictError("group still has assigned users", internal.ErrCodeGroupInUse)
)
