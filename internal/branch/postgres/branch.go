package postgres

import (
	"github.com/frahmantamala/allowance-management/internal/branch"
	"gorm.io/gorm"
)

type BranchRepository struct {
	db *gorm.DB
}

func NewBranchRepository(db *gorm.DB) branch.RepositoryAPI {
	return &BranchRepository{db: db}
}

func (r *BranchRepository) GetAll() ([]*branch.Branch, error) {
	var branches []*branch.Branch
	err := r.db.Order("name ASC").Find(&branches).Error
	return branches, err
}

func (r *BranchRepository) GetByID(id int64) (*branch.Branch, error) {
	var b branch.Branch
	err := r.db.Where("id = ?", id).First(&b).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *BranchRepository) Create(b *branch.Branch) error {
	return r.db.Create(b).Error
}

func (r *BranchRepository) Update(b *branch.Branch) error {
	return r.db.Save(b).Error
}

func (r *BranchRepository) Delete(id int64) error {
	return r.db.Delete(&branch.Branch{}, id).Error
}
