package postgres

import (
	"github.com/frahmantamala/allowance-management/internal/menu"
	"gorm.io/gorm"
)

type MenuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) menu.RepositoryAPI {
	return &MenuRepository{db: db}
}

func (r *MenuRepository) GetMenus(branchID int64) ([]*menu.Menu, error) {
	q := r.db.Order("name ASC")
	if branchID > 0 {
		q = q.Where("branch_id = ?", branchID)
	}

	var menus []*menu.Menu
	err := q.Find(&menus).Error
	return menus, err
}

func (r *MenuRepository) GetMenuByID(id int64) (*menu.Menu, error) {
	var m menu.Menu
	err := r.db.Where("id = ?", id).First(&m).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *MenuRepository) CreateMenu(m *menu.Menu) error {
	return r.db.Create(m).Error
}

func (r *MenuRepository) UpdateMenu(m *menu.Menu) error {
	return r.db.Save(m).Error
}

func (r *MenuRepository) DeleteMenu(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("menu_id = ?", id).Delete(&menu.MenuItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&menu.Menu{}, id).Error
	})
}

func (r *MenuRepository) GetItems(menuID int64) ([]*menu.MenuItem, error) {
	q := r.db.Order("name ASC")
	if menuID > 0 {
		q = q.Where("menu_id = ?", menuID)
	}

	var items []*menu.MenuItem
	err := q.Find(&items).Error
	return items, err
}

func (r *MenuRepository) GetItemByID(id int64) (*menu.MenuItem, error) {
	var item menu.MenuItem
	err := r.db.Where("id = ?", id).First(&item).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *MenuRepository) CreateItem(item *menu.MenuItem) error {
	return r.db.Create(item).Error
}

func (r *MenuRepository) UpdateItem(item *menu.MenuItem) error {
	return r.db.Save(item).Error
}

func (r *MenuRepository) DeleteItem(id int64) error {
	return r.db.Delete(&menu.MenuItem{}, id).Error
}
