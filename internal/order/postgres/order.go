package postgres

import (
	"github.com/frahmantamala/allowance-management/internal/order"
	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) order.RepositoryAPI {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) List(filter *order.ListFilter) ([]*order.Order, int64, error) {
	q := r.db.Model(&order.Order{})

	if filter.EmployeeID > 0 {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.BranchID > 0 {
		q = q.Where("branch_id = ?", filter.BranchID)
	}
	if filter.OrderType != "" {
		q = q.Where("order_type = ?", string(filter.OrderType))
	}
	if filter.StartDate != nil {
		q = q.Where("ordered_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		q = q.Where("ordered_at <= ?", *filter.EndDate)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []*order.Order
	err := q.Preload("Items").
		Order("ordered_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Find(&orders).Error
	return orders, total, err
}

func (r *OrderRepository) GetByID(id int64) (*order.Order, error) {
	var o order.Order
	err := r.db.Preload("Items").Where("id = ?", id).First(&o).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) Create(o *order.Order) error {
	return r.db.Create(o).Error
}

// PricingRepository reads current menu item prices.
type PricingRepository struct {
	db *gorm.DB
}

func NewPricingRepository(db *gorm.DB) order.PricingAPI {
	return &PricingRepository{db: db}
}

func (r *PricingRepository) GetItem(menuItemID int64) (*order.PricedItem, error) {
	var item order.PricedItem
	err := r.db.Table("menu_items").
		Select("id, name, price_cents").
		Where("id = ?", menuItemID).
		Take(&item).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}
