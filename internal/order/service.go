package order

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/allowance-management/internal"
	"github.com/frahmantamala/allowance-management/internal/allowance"
	"github.com/frahmantamala/allowance-management/internal/core/events"
)

type RepositoryAPI interface {
	List(filter *ListFilter) ([]*Order, int64, error)
	GetByID(id int64) (*Order, error)
	Create(o *Order) error
}

// PricedItem is a menu item as the kitchen currently sells it.
type PricedItem struct {
	ID         int64
	Name       string
	PriceCents int64
}

// PricingAPI resolves menu item prices at order time so the client
// cannot invent its own.
type PricingAPI interface {
	GetItem(menuItemID int64) (*PricedItem, error)
}

// AllowanceAPI is the slice of the allowance service an order needs.
type AllowanceAPI interface {
	Debit(userID int64, month, year int, amountCents int64, actorID int64) (*allowance.EmployeeAllowance, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}

type Service struct {
	repo       RepositoryAPI
	pricing    PricingAPI
	allowances AllowanceAPI
	bus        EventPublisher
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, pricing PricingAPI, allowances AllowanceAPI, bus EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		pricing:    pricing,
		allowances: allowances,
		bus:        bus,
		logger:     logger,
	}
}

func (s *Service) List(filter *ListFilter) ([]*Order, int64, error) {
	filter.Normalize()

	orders, total, err := s.repo.List(filter)
	if err != nil {
		s.logger.Error("failed to list orders", "error", err)
		return nil, 0, err
	}
	return orders, total, nil
}

func (s *Service) GetByID(id int64) (*Order, error) {
	o, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get order", "order_id", id, "error", err)
		return nil, err
	}
	if o == nil {
		return nil, ErrNotFound
	}
	return o, nil
}

// Create prices the requested items from the menu, checks the claimed
// total against the server-side sum, persists the order and debits the
// employee's allowance for the order's month.
func (s *Service) Create(dto *CreateOrderDTO, actorID int64) (*Order, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	orderedAt := time.Now()
	if dto.OrderedAt != nil {
		orderedAt = *dto.OrderedAt
	}

	var items []OrderItem
	var total int64
	for _, itemDTO := range dto.Items {
		priced, err := s.pricing.GetItem(itemDTO.MenuItemID)
		if err != nil {
			s.logger.Error("failed to price order item", "menu_item_id", itemDTO.MenuItemID, "error", err)
			return nil, err
		}
		if priced == nil {
			return nil, internal.NewNotFoundError("menu item not found", internal.ErrCodeMenuItemNotFound)
		}

		item := OrderItem{
			MenuItemID: priced.ID,
			Name:       priced.Name,
			PriceCents: priced.PriceCents,
			Quantity:   itemDTO.Quantity,
		}
		items = append(items, item)
		total += item.SubtotalCents()
	}

	if dto.TotalCents != total {
		s.logger.Warn("order total mismatch",
			"claimed_cents", dto.TotalCents, "computed_cents", total)
		return nil, internal.NewValidationError("total does not match item prices", internal.ErrCodeInvalidAmount)
	}

	// the note only means something on a guest meal
	guestNote := ""
	if dto.OrderType == TypeGuest {
		guestNote = dto.GuestNote
	}

	o := &Order{
		EmployeeID: dto.EmployeeID,
		BranchID:   dto.BranchID,
		OrderType:  dto.OrderType,
		GuestNote:  guestNote,
		TotalCents: total,
		OrderedAt:  orderedAt,
		Items:      items,
	}

	// the employee needs an allowance for the order's period; the
	// debit is attempted first so an uncovered order never persists
	month, year := int(orderedAt.Month()), orderedAt.Year()
	_, err := s.allowances.Debit(o.EmployeeID, month, year, total, actorID)
	if err != nil {
		s.logger.Error("failed to debit allowance for order",
			"employee_id", o.EmployeeID, "total_cents", total, "error", err)
		return nil, err
	}

	if err := s.repo.Create(o); err != nil {
		s.logger.Error("failed to create order", "employee_id", o.EmployeeID, "error", err)
		// compensate the debit so the ledger never charges for an
		// order that was never stored
		if _, cErr := s.allowances.Debit(o.EmployeeID, month, year, -total, actorID); cErr != nil {
			s.logger.Error("failed to refund allowance after order insert failure",
				"employee_id", o.EmployeeID, "total_cents", total, "error", cErr)
		}
		return nil, err
	}

	s.bus.Publish(context.Background(),
		events.NewOrderCreated(actorID, o.ID, o.EmployeeID, o.TotalCents, string(o.OrderType)))
	s.logger.Info("order created",
		"order_id", o.ID, "employee_id", o.EmployeeID,
		"total_cents", o.TotalCents, "order_type", o.OrderType)
	return o, nil
}
