package user

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/allowance-management/internal/auth"
	"github.com/frahmantamala/allowance-management/internal/core/events"
	"github.com/frahmantamala/allowance-management/internal/search"
	"golang.org/x/crypto/bcrypt"
)

type RepositoryAPI interface {
	GetAll() ([]*User, error)
	GetByID(id int64) (*User, error)
	GetByEmail(email string) (*User, error)
	GetByRole(role auth.Role) ([]*User, error)
	Create(u *User) error
	Update(u *User) error
	Delete(id int64) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}

type Service struct {
	repo       RepositoryAPI
	bus        EventPublisher
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, bus EventPublisher, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		bus:        bus,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *Service) List(query string) ([]*User, error) {
	users, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get users", "error", err)
		return nil, err
	}

	return search.Filter(users, query, func(u *User) []string {
		return u.SearchFields()
	}), nil
}

// Employees returns only EMPLOYEE accounts, used when picking who an
// order or allowance belongs to.
func (s *Service) Employees() ([]*User, error) {
	users, err := s.repo.GetByRole(auth.RoleEmployee)
	if err != nil {
		s.logger.Error("failed to get employee users", "error", err)
		return nil, err
	}
	return users, nil
}

func (s *Service) GetByID(id int64) (*User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get user", "user_id", id, "error", err)
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

func (s *Service) Create(dto *CreateUserDTO, actorID int64) (*User, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByEmail(dto.Email)
	if err != nil {
		s.logger.Error("failed to check email uniqueness", "email", dto.Email, "error", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	hash, err := auth.HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, err
	}

	u := &User{
		FullName:                 dto.FullName,
		Email:                    dto.Email,
		PasswordHash:             hash,
		Role:                     auth.Role(dto.Role),
		Verified:                 true,
		EmployeeAllowanceGroupID: dto.GroupID,
	}
	if err := s.repo.Create(u); err != nil {
		s.logger.Error("failed to create user", "email", dto.Email, "error", err)
		return nil, err
	}

	s.bus.Publish(context.Background(), events.NewResourceMutated(actorID, "user", u.ID, "create"))
	s.logger.Info("user created", "user_id", u.ID, "email", u.Email, "role", u.Role)
	return u, nil
}

func (s *Service) Update(id int64, dto *UpdateUserDTO, actorID int64) (*User, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to load user for update", "user_id", id, "error", err)
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}

	if dto.Email != u.Email {
		other, err := s.repo.GetByEmail(dto.Email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, ErrDuplicateEmail
		}
	}

	u.FullName = dto.FullName
	u.Email = dto.Email
	u.Role = auth.Role(dto.Role)
	if dto.Verified != nil {
		u.Verified = *dto.Verified
	}
	if dto.GroupID != nil {
		u.EmployeeAllowanceGroupID = dto.GroupID
	}
	if dto.Password != nil {
		hash, err := auth.HashPassword(*dto.Password, s.bcryptCost)
		if err != nil {
			s.logger.Error("failed to hash password", "error", err)
			return nil, err
		}
		u.PasswordHash = hash
	}

	if err := s.repo.Update(u); err != nil {
		s.logger.Error("failed to update user", "user_id", id, "error", err)
		return nil, err
	}

	s.bus.Publish(context.Background(), events.NewResourceMutated(actorID, "user", u.ID, "update"))
	return u, nil
}

func (s *Service) Delete(id int64, actorID int64) error {
	u, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to load user for delete", "user_id", id, "error", err)
		return err
	}
	if u == nil {
		return ErrNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete user", "user_id", id, "error", err)
		return err
	}

	s.bus.Publish(context.Background(), events.NewResourceMutated(actorID, "user", id, "delete"))
	s.logger.Info("user deleted", "user_id", id)
	return nil
}
