package allowance

import (
	"time"

	"github.com/frahmantamala/allowance-management/internal"
)

// EmployeeAllowance is one employee's budget for one month. Issued is
// the amount granted at issuance; Balance drains as orders land and
// may go negative, which is what the over-usage reports count.
type EmployeeAllowance struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	UserID       int64     `json:"user_id" gorm:"not null;uniqueIndex:idx_allowance_period"`
	GroupID      int64     `json:"group_id" gorm:"not null"`
	Month        int       `json:"month" gorm:"not null;uniqueIndex:idx_allowance_period"`
	Year         int       `json:"year" gorm:"not null;uniqueIndex:idx_allowance_period"`
	IssuedCents  int64     `json:"issued_cents" gorm:"not null"`
	BalanceCents int64     `json:"balance_cents" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (EmployeeAllowance) TableName() string {
	return "employee_allowances"
}

// UsedCents is how much of the issued amount has been spent.
func (a EmployeeAllowance) UsedCents() int64 {
	return a.IssuedCents - a.BalanceCents
}

// OverCents is the portion spent beyond the issued amount, zero when
// the employee stayed within budget.
func (a EmployeeAllowance) OverCents() int64 {
	if a.BalanceCents >= 0 {
		return 0
	}
	return -a.BalanceCents
}

var (
	ErrNotFound  = internal.NewNotFoundError("allowance not found", internal.ErrCodeAllowanceNotFound)
	ErrDuplicate = internal.NewConflictError("allowance already issued for this period", internal.ErrCodeDuplicateAllowance)
)

// ValidPeriod bounds month and year to something the reports can
// aggregate over.
func ValidPeriod(month, year int) error {
	if month < 1 || month > 12 {
		return internal.NewValidationError("month must be between 1 and 12", internal.ErrCodeInvalidPeriod)
	}
	if year < 2000 || year > 2100 {
		return internal.NewValidationError("year out of range", internal.ErrCodeInvalidPeriod)
	}
	return nil
}
