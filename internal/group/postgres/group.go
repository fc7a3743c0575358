package postgres

import (
	"github.com/frahmantamala/allowance-management/internal"
	"github.com/frahmantamala/allowance-management/internal/group"
	"gorm.io/gorm"
)

type GroupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) group.RepositoryAPI {
	return &GroupRepository{db: db}
}

func (r *GroupRepository) GetAll() ([]*group.AllowanceGroup, error) {
	var groups []*group.AllowanceGroup
	err := r.db.Order("name ASC").Find(&groups).Error
	return groups, err
}

func (r *GroupRepository) GetByID(id int64) (*group.AllowanceGroup, error) {
	var g group.AllowanceGroup
	err := r.db.Where("id = ?", id).First(&g).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

func (r *GroupRepository) Create(g *group.AllowanceGroup) error {
	return r.db.Create(g).Error
}

func (r *GroupRepository) Update(g *group.AllowanceGroup) error {
	return r.db.Save(g).Error
}

func (r *GroupRepository) Delete(id int64) error {
	return r.db.Delete(&group.AllowanceGroup{}, id).Error
}

func (r *GroupRepository) MemberCount(groupID int64) (int64, error) {
	var count int64
	err := r.db.Table("users").
		Where("employee_allowance_group_id = ?", groupID).
		Count(&count).Error
	return count, err
}

func (r *GroupRepository) GroupIDForUser(userID int64) (*int64, error) {
	var row struct {
		EmployeeAllowanceGroupID *int64
	}
	err := r.db.Table("users").
		Select("employee_allowance_group_id").
		Where("id = ?", userID).
		Take(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.NewNotFoundError("user not found", internal.ErrCodeUserNotFound)
		}
		return nil, err
	}
	return row.EmployeeAllowanceGroupID, nil
}

func (r *GroupRepository) SetGroupForUser(userID, groupID int64) error {
	res := r.db.Table("users").
		Where("id = ?", userID).
		Update("employee_allowance_group_id", groupID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.NewNotFoundError("user not found", internal.ErrCodeUserNotFound)
	}
	return nil
}
