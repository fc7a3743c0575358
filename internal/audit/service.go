package audit

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/frahmantamala/allowance-management/internal/core/events"
)

type RepositoryAPI interface {
	Insert(entry *AuditEntry) error
	List(eventType string, actorID int64, page, limit int) ([]*AuditEntry, int64, error)
}

type Subscriber interface {
	Subscribe(eventType string, handler events.Handler)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// WatchAll records every domain event type the system publishes.
func (s *Service) WatchAll(bus Subscriber) {
	for _, eventType := range []string{
		events.TypeOrderCreated,
		events.TypeAllowanceIssued,
		events.TypeBalanceAdjusted,
		events.TypeGroupAssigned,
		events.TypeResourceMutated,
		events.TypeOverUsageDetected,
	} {
		bus.Subscribe(eventType, s.record)
	}
}

func (s *Service) record(_ context.Context, event events.Event) error {
	entry := &AuditEntry{
		EventID:   event.EventID(),
		EventType: event.EventType(),
		CreatedAt: event.OccurredAt(),
	}

	if de, ok := event.(events.DomainEvent); ok {
		entry.ActorID = de.ActorID
		entry.Entity = de.Entity
		entry.EntityID = de.EntityID
	}

	if payload := event.Payload(); payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			s.logger.Warn("audit payload not serializable",
				"event_type", event.EventType(), "error", err)
		} else {
			entry.Detail = string(raw)
		}
	}

	if err := s.repo.Insert(entry); err != nil {
		s.logger.Error("failed to record audit entry",
			"event_type", event.EventType(), "event_id", event.EventID(), "error", err)
		return err
	}
	return nil
}

func (s *Service) List(eventType string, actorID int64, page, limit int) ([]*AuditEntry, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}

	entries, total, err := s.repo.List(eventType, actorID, page, limit)
	if err != nil {
		s.logger.Error("failed to list audit entries", "error", err)
		return nil, 0, err
	}
	return entries, total, nil
}
