package postgres

import (
	"github.com/frahmantamala/allowance-management/internal/allowance"
	"gorm.io/gorm"
)

type AllowanceRepository struct {
	db *gorm.DB
}

func NewAllowanceRepository(db *gorm.DB) allowance.RepositoryAPI {
	return &AllowanceRepository{db: db}
}

func (r *AllowanceRepository) GetByPeriod(month, year int) ([]*allowance.EmployeeAllowance, error) {
	var rows []*allowance.EmployeeAllowance
	err := r.db.Where("month = ? AND year = ?", month, year).
		Order("user_id ASC").Find(&rows).Error
	return rows, err
}

func (r *AllowanceRepository) GetByUser(userID int64) ([]*allowance.EmployeeAllowance, error) {
	var rows []*allowance.EmployeeAllowance
	err := r.db.Where("user_id = ?", userID).
		Order("year DESC, month DESC").Find(&rows).Error
	return rows, err
}

func (r *AllowanceRepository) GetByUserAndPeriod(userID int64, month, year int) (*allowance.EmployeeAllowance, error) {
	var a allowance.EmployeeAllowance
	err := r.db.Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		First(&a).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *AllowanceRepository) GetByID(id int64) (*allowance.EmployeeAllowance, error) {
	var a allowance.EmployeeAllowance
	err := r.db.Where("id = ?", id).First(&a).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *AllowanceRepository) Create(a *allowance.EmployeeAllowance) error {
	return r.db.Create(a).Error
}

// AdjustBalance moves the balance by deltaCents in a single relative
// UPDATE so concurrent debits cannot lose each other's writes.
func (r *AllowanceRepository) AdjustBalance(id int64, deltaCents int64) error {
	res := r.db.Model(&allowance.EmployeeAllowance{}).
		Where("id = ?", id).
		Update("balance_cents", gorm.Expr("balance_cents + ?", deltaCents))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MembershipRepository resolves grouped employees for issuance.
type MembershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) allowance.MembershipAPI {
	return &MembershipRepository{db: db}
}

func (r *MembershipRepository) EligibleMembers() ([]allowance.GroupMember, error) {
	var members []allowance.GroupMember
	err := r.db.Table("users").
		Select("users.id AS user_id, users.employee_allowance_group_id AS group_id, allowance_groups.monthly_allowance_cents AS amount_cents").
		Joins("JOIN allowance_groups ON allowance_groups.id = users.employee_allowance_group_id").
		Where("users.role = ? AND users.verified = ?", "EMPLOYEE", true).
		Scan(&members).Error
	return members, err
}
