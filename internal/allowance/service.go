package allowance

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/allowance-management/internal/core/events"
)

type RepositoryAPI interface {
	GetByPeriod(month, year int) ([]*EmployeeAllowance, error)
	GetByUser(userID int64) ([]*EmployeeAllowance, error)
	GetByUserAndPeriod(userID int64, month, year int) (*EmployeeAllowance, error)
	GetByID(id int64) (*EmployeeAllowance, error)
	Create(a *EmployeeAllowance) error
	AdjustBalance(id int64, deltaCents int64) error
}

// GroupMember is an employee eligible for issuance together with the
// group amount they are entitled to.
type GroupMember struct {
	UserID      int64
	GroupID     int64
	AmountCents int64
}

// MembershipAPI supplies who gets an allowance. Implemented against
// the users and allowance_groups tables.
type MembershipAPI interface {
	EligibleMembers() ([]GroupMember, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}

type Service struct {
	repo    RepositoryAPI
	members MembershipAPI
	bus     EventPublisher
	logger  *slog.Logger
}

func NewService(repo RepositoryAPI, members MembershipAPI, bus EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		members: members,
		bus:     bus,
		logger:  logger,
	}
}

// IssueMonthly grants every grouped employee their group's amount for
// the period. Employees who already have a row for the period are
// skipped, so the operation is safe to re-run.
func (s *Service) IssueMonthly(dto *IssueMonthlyDTO, actorID int64) (*IssueResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	members, err := s.members.EligibleMembers()
	if err != nil {
		s.logger.Error("failed to load eligible members", "error", err)
		return nil, err
	}

	result := &IssueResult{Month: dto.Month, Year: dto.Year}
	for _, m := range members {
		existing, err := s.repo.GetByUserAndPeriod(m.UserID, dto.Month, dto.Year)
		if err != nil {
			s.logger.Error("failed to check existing allowance",
				"user_id", m.UserID, "month", dto.Month, "year", dto.Year, "error", err)
			return nil, err
		}
		if existing != nil {
			result.Skipped++
			continue
		}

		a := &EmployeeAllowance{
			UserID:       m.UserID,
			GroupID:      m.GroupID,
			Month:        dto.Month,
			Year:         dto.Year,
			IssuedCents:  m.AmountCents,
			BalanceCents: m.AmountCents,
		}
		if err := s.repo.Create(a); err != nil {
			s.logger.Error("failed to issue allowance", "user_id", m.UserID, "error", err)
			return nil, err
		}

		result.Issued++
		result.UserIDs = append(result.UserIDs, m.UserID)
		s.bus.Publish(context.Background(),
			events.NewAllowanceIssued(actorID, a.ID, a.UserID, a.IssuedCents, dto.Month, dto.Year))
	}

	s.logger.Info("monthly issuance finished",
		"month", dto.Month, "year", dto.Year,
		"issued", result.Issued, "skipped", result.Skipped)
	return result, nil
}

func (s *Service) ListByPeriod(month, year int) ([]*EmployeeAllowance, error) {
	if err := ValidPeriod(month, year); err != nil {
		return nil, err
	}

	allowances, err := s.repo.GetByPeriod(month, year)
	if err != nil {
		s.logger.Error("failed to list allowances", "month", month, "year", year, "error", err)
		return nil, err
	}
	return allowances, nil
}

func (s *Service) ListByUser(userID int64) ([]*EmployeeAllowance, error) {
	allowances, err := s.repo.GetByUser(userID)
	if err != nil {
		s.logger.Error("failed to list user allowances", "user_id", userID, "error", err)
		return nil, err
	}
	return allowances, nil
}

func (s *Service) GetByID(id int64) (*EmployeeAllowance, error) {
	a, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get allowance", "allowance_id", id, "error", err)
		return nil, err
	}
	if a == nil {
		return nil, ErrNotFound
	}
	return a, nil
}

// AdjustBalance applies a manual correction, positive or negative.
func (s *Service) AdjustBalance(id int64, dto *AdjustBalanceDTO, actorID int64) (*EmployeeAllowance, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.GetByID(id); err != nil {
		return nil, err
	}

	if err := s.repo.AdjustBalance(id, dto.DeltaCents); err != nil {
		s.logger.Error("failed to adjust balance", "allowance_id", id, "error", err)
		return nil, err
	}
	a, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(context.Background(),
		events.NewBalanceAdjusted(actorID, id, dto.DeltaCents, a.BalanceCents))
	s.logger.Info("balance adjusted",
		"allowance_id", id, "delta_cents", dto.DeltaCents,
		"balance_cents", a.BalanceCents, "reason", dto.Reason)
	return a, nil
}

// Debit charges an order total against the employee's allowance for
// the order's period. The balance may go negative; crossing zero
// raises an over-usage event for the reports to pick up.
func (s *Service) Debit(userID int64, month, year int, amountCents int64, actorID int64) (*EmployeeAllowance, error) {
	if err := ValidPeriod(month, year); err != nil {
		return nil, err
	}

	a, err := s.repo.GetByUserAndPeriod(userID, month, year)
	if err != nil {
		s.logger.Error("failed to load allowance for debit",
			"user_id", userID, "month", month, "year", year, "error", err)
		return nil, err
	}
	if a == nil {
		return nil, ErrNotFound
	}

	// relative update; the balance is moved in the database so two
	// concurrent debits both land, then re-read for the fresh value
	if err := s.repo.AdjustBalance(a.ID, -amountCents); err != nil {
		s.logger.Error("failed to debit allowance", "allowance_id", a.ID, "error", err)
		return nil, err
	}
	a, err = s.repo.GetByID(a.ID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrNotFound
	}

	s.bus.Publish(context.Background(),
		events.NewBalanceAdjusted(actorID, a.ID, -amountCents, a.BalanceCents))
	if a.BalanceCents < 0 {
		s.bus.Publish(context.Background(),
			events.NewOverUsageDetected(userID, a.ID, -a.BalanceCents))
	}
	return a, nil
}
