package branch

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/allowance-management/internal/core/events"
	"github.com/frahmantamala/allowance-management/internal/search"
)

type RepositoryAPI interface {
	GetAll() ([]*Branch, error)
	GetByID(id int64) (*Branch, error)
	Create(branch *Branch) error
	Update(branch *Branch) error
	Delete(id int64) error
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

// List returns branches, narrowed by the free-text query when one is
// given. Filtering never touches the stored rows.
func (s *Service) List(query string) ([]*Branch, error) {
	branches, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get branches from repository", "error", err)
		return nil, err
	}

	filtered := search.Filter(branches, query, func(b *Branch) []string {
		return b.SearchFields()
	})

	s.logger.Info("retrieved branches", "count", len(filtered), "query", query)
	return filtered, nil
}

func (s *Service) GetByID(id int64) (*Branch, error) {
	b, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get branch", "branch_id", id, "error", err)
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}
	return b, nil
}

func (s *Service) Create(dto *BranchDTO, actorID int64) (*Branch, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	b := &Branch{
		Name:     dto.Name,
		Location: dto.Location,
	}
	if err := s.repo.Create(b); err != nil {
		s.logger.Error("failed to create branch", "name", dto.Name, "error", err)
		return nil, err
	}

	s.bus.Publish(context.Background(), events.NewResourceMutated(actorID, "branch", b.ID, "create"))
	s.logger.Info("branch created", "branch_id", b.ID, "name", b.Name)
	return b, nil
}

func (s *Service) Update(id int64, dto *BranchDTO, actorID int64) (*Branch, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to load branch for update", "branch_id", id, "error", err)
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}

	b.Name = dto.Name
	b.Location = dto.Location
	if err := s.repo.Update(b); err != nil {
		s.logger.Error("failed to update branch", "branch_id", id, "error", err)
		return nil, err
	}

	s.bus.Publish(context.Background(), events.NewResourceMutated(actorID, "branch", b.ID, "update"))
	return b, nil
}

func (s *Service) Delete(id int64, actorID int64) error {
	b, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to load branch for delete", "branch_id", id, "error", err)
		return err
	}
	if b == nil {
		return ErrNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete branch", "branch_id", id, "error", err)
		return err
	}

	s.bus.Publish(context.Background(), events.NewResourceMutated(actorID, "branch", id, "delete"))
	s.logger.Info("branch deleted", "branch_id", id)
	return nil
}
