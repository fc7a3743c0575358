package user

import (
	"time"

	"github.com/frahmantamala/allowance-management/internal"
	"github.com/frahmantamala/allowance-management/internal/auth"
)

// User is the stored account row. PasswordHash never leaves the
// server; the json tag keeps it out of every response.
type User struct {
	ID                       int64     `json:"id" gorm:"primaryKey"`
	FullName                 string    `json:"full_name" gorm:"column:full_name;not null"`
	Email                    string    `json:"email" gorm:"not null;uniqueIndex"`
	PasswordHash             string    `json:"-" gorm:"column:password_hash;not null"`
	Role                     auth.Role `json:"role" gorm:"not null"`
	Verified                 bool      `json:"verified" gorm:"not null;default:false"`
	EmployeeAllowanceGroupID *int64    `json:"employee_allowance_group_id" gorm:"column:employee_allowance_group_id"`
	CreatedAt                time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt                time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (User) TableName() string {
	return "users"
}

func (u User) SearchFields() []string {
	return []string{u.FullName, u.Email}
}

var (
	ErrNotFound       = internal.NewNotFoundError("user not found", internal.ErrCodeUserNotFound)
	ErrDuplicateEmail = internal.NewConflictError("email already registered", internal.ErrCodeDuplicateEmail)
)
