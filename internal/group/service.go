package group

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/allowance-management/internal/core/events"
	"github.com/frahmantamala/allowance-management/internal/search"
)

type RepositoryAPI interface {
	GetAll() ([]*AllowanceGroup, error)
	GetByID(id int64) (*AllowanceGroup, error)
	Create(group *AllowanceGroup) error
	Update(group *AllowanceGroup) error
	Delete(id int64) error
	// MemberCount counts users currently assigned to the group.
	MemberCount(groupID int64) (int64, error)
	// GroupIDForUser returns nil when the user has no group yet.
	GroupIDForUser(userID int64) (*int64, error)
	SetGroupForUser(userID, groupID int64) error
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

func (s *Service) List(query string) ([]*AllowanceGroup, error) {
	groups, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get allowance groups", "error", err)
		return nil, err
	}

	filtered := search.Filter(groups, query, func(g *AllowanceGroup) []string {
		return g.SearchFields()
	})
	return filtered, nil
}

func (s *Service) GetByID(id int64) (*AllowanceGroup, error) {
	g, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get allowance group", "group_id", id, "error", err)
		return nil, err
	}
	if g == nil {
		return nil, ErrNotFound
	}
	return g, nil
}

func (s *Service) Create(dto *GroupDTO, actorID int64) (*AllowanceGroup, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	g := &AllowanceGroup{
		Name:                  dto.Name,
		MonthlyAllowanceCents: dto.MonthlyAllowanceCents,
	}
	if err := s.repo.Create(g); err != nil {
		s.logger.Error("failed to create allowance group", "name", dto.Name, "error", err)
		return nil, err
	}

	s.bus.Publish(context.Background(), events.NewResourceMutated(actorID, "allowance_group", g.ID, "create"))
	s.logger.Info("allowance group created", "group_id", g.ID, "name", g.Name)
	return g, nil
}

func (s *Service) Update(id int64, dto *GroupDTO, actorID int64) (*AllowanceGroup, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	g, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to load allowance group for update", "group_id", id, "error", err)
		return nil, err
	}
	if g == nil {
		return nil, ErrNotFound
	}

	g.Name = dto.Name
	g.MonthlyAllowanceCents = dto.MonthlyAllowanceCents
	if err := s.repo.Update(g); err != nil {
		s.logger.Error("failed to update allowance group", "group_id", id, "error", err)
		return nil, err
	}

	s.bus.Publish(context.Background(), events.NewResourceMutated(actorID, "allowance_group", g.ID, "update"))
	return g, nil
}

// Delete refuses to remove a group that still has members so existing
// allowance assignments never dangle.
func (s *Service) Delete(id int64, actorID int64) error {
	g, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to load allowance group for delete", "group_id", id, "error", err)
		return err
	}
	if g == nil {
		return ErrNotFound
	}

	members, err := s.repo.MemberCount(id)
	if err != nil {
		s.logger.Error("failed to count group members", "group_id", id, "error", err)
		return err
	}
	if members > 0 {
		return ErrGroupInUse
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete allowance group", "group_id", id, "error", err)
		return err
	}

	s.bus.Publish(context.Background(), events.NewResourceMutated(actorID, "allowance_group", id, "delete"))
	return nil
}

// AssignToUser moves a user into a group. Re-assigning the user's
// current group is rejected so the caller learns nothing changed.
func (s *Service) AssignToUser(dto *AssignDTO, actorID int64) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	g, err := s.repo.GetByID(dto.GroupID)
	if err != nil {
		s.logger.Error("failed to load group for assignment", "group_id", dto.GroupID, "error", err)
		return err
	}
	if g == nil {
		return ErrNotFound
	}

	current, err := s.repo.GroupIDForUser(dto.UserID)
	if err != nil {
		s.logger.Error("failed to look up user's current group", "user_id", dto.UserID, "error", err)
		return err
	}
	if current != nil && *current == dto.GroupID {
		return ErrAlreadyAssigned
	}

	if err := s.repo.SetGroupForUser(dto.UserID, dto.GroupID); err != nil {
		s.logger.Error("failed to assign group", "user_id", dto.UserID, "group_id", dto.GroupID, "error", err)
		return err
	}

	s.bus.Publish(context.Background(), events.NewGroupAssigned(actorID, dto.UserID, dto.GroupID))
	s.logger.Info("group assigned", "user_id", dto.UserID, "group_id", dto.GroupID)
	return nil
}
