package menu

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/allowance-management/internal/core/events"
	"github.com/frahmantamala/allowance-management/internal/search"
)

type RepositoryAPI interface {
	GetMenus(branchID int64) ([]*Menu, error)
	GetMenuByID(id int64) (*Menu, error)
	CreateMenu(m *Menu) error
	UpdateMenu(m *Menu) error
	DeleteMenu(id int64) error

	GetItems(menuID int64) ([]*MenuItem, error)
	GetItemByID(id int64) (*MenuItem, error)
	CreateItem(item *MenuItem) error
	UpdateItem(item *MenuItem) error
	DeleteItem(id int64) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}

type Service struct {
	repo   RepositoryAPI
	bus    EventPublisher
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, bus EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		bus:    bus,
		logger: logger,
	}
}

// ListMenus returns menus, scoped to a branch when branchID > 0.
func (s *Service) ListMenus(branchID int64, query string) ([]*Menu, error) {
	menus, err := s.repo.GetMenus(branchID)
	if err != nil {
		s.logger.Error("failed to get menus", "branch_id", branchID, "error", err)
		return nil, err
	}

	return search.Filter(menus, query, func(m *Menu) []string {
		return m.SearchFields()
	}), nil
}

func (s *Service) GetMenu(id int64) (*Menu, error) {
	m, err := s.repo.GetMenuByID(id)
	if err != nil {
		s.logger.Error("failed to get menu", "menu_id", id, "error", err)
		return nil, err
	}
	if m == nil {
		return nil, ErrMenuNotFound
	}
	return m, nil
}

func (s *Service) CreateMenu(dto *MenuDTO, actorID int64) (*Menu, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	m := &Menu{
		BranchID:    dto.BranchID,
		Name:        dto.Name,
		Description: dto.Description,
	}
	if err := s.repo.CreateMenu(m); err != nil {
		s.logger.Error("failed to create menu", "name", dto.Name, "error", err)
		return nil, err
	}

	s.bus.Publish(context.Background(), events.NewResourceMutated(actorID, "menu", m.ID, "create"))
	return m, nil
}

func (s *Service) UpdateMenu(id int64, dto *MenuDTO, actorID int64) (*Menu, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	m, err := s.repo.GetMenuByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrMenuNotFound
	}

	m.BranchID = dto.BranchID
	m.Name = dto.Name
	m.Description = dto.Description
	if err := s.repo.UpdateMenu(m); err != nil {
		s.logger.Error("failed to update menu", "menu_id", id, "error", err)
		return nil, err
	}

	s.bus.Publish(context.Background(), events.NewResourceMutated(actorID, "menu", m.ID, "update"))
	return m, nil
}

func (s *Service) DeleteMenu(id int64, actorID int64) error {
	m, err := s.repo.GetMenuByID(id)
	if err != nil {
		return err
	}
	if m == nil {
		return ErrMenuNotFound
	}

	if err := s.repo.DeleteMenu(id); err != nil {
		s.logger.Error("failed to delete menu", "menu_id", id, "error", err)
		return err
	}

	s.bus.Publish(context.Background(), events.NewResourceMutated(actorID, "menu", id, "delete"))
	return nil
}

// ListItems returns items, scoped to a menu when menuID > 0.
func (s *Service) ListItems(menuID int64, query string) ([]*MenuItem, error) {
	items, err := s.repo.GetItems(menuID)
	if err != nil {
		s.logger.Error("failed to get menu items", "menu_id", menuID, "error", err)
		return nil, err
	}

	return search.Filter(items, query, func(i *MenuItem) []string {
		return i.SearchFields()
	}), nil
}

func (s *Service) GetItem(id int64) (*MenuItem, error) {
	item, err := s.repo.GetItemByID(id)
	if err != nil {
		s.logger.Error("failed to get menu item", "item_id", id, "error", err)
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	return item, nil
}

func (s *Service) CreateItem(dto *MenuItemDTO, actorID int64) (*MenuItem, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	// the parent menu must exist before an item can hang off it
	parent, err := s.repo.GetMenuByID(dto.MenuID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, ErrMenuNotFound
	}

	item := &MenuItem{
		MenuID:     dto.MenuID,
		Name:       dto.Name,
		PriceCents: dto.PriceCents,
	}
	if err := s.repo.CreateItem(item); err != nil {
		s.logger.Error("failed to create menu item", "name", dto.Name, "error", err)
		return nil, err
	}

	s.bus.Publish(context.Background(), events.NewResourceMutated(actorID, "menu_item", item.ID, "create"))
	return item, nil
}

func (s *Service) UpdateItem(id int64, dto *MenuItemDTO, actorID int64) (*MenuItem, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	item, err := s.repo.GetItemByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	item.MenuID = dto.MenuID
	item.Name = dto.Name
	item.PriceCents = dto.PriceCents
	if err := s.repo.UpdateItem(item); err != nil {
		s.logger.Error("failed to update menu item", "item_id", id, "error", err)
		return nil, err
	}

	s.bus.Publish(context.Background(), events.NewResourceMutated(actorID, "menu_item", item.ID, "update"))
	return item, nil
}

func (s *Service) DeleteItem(id int64, actorID int64) error {
	item, err := s.repo.GetItemByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrItemNotFound
	}

	if err := s.repo.DeleteItem(id); err != nil {
		s.logger.Error("failed to delete menu item", "item_id", id, "error", err)
		return err
	}

	s.bus.Publish(context.Background(), events.NewResourceMutated(actorID, "menu_item", id, "delete"))
	return nil
}
