package report

import (
	"context"
	"log/slog"
	"sort"

	"github.com/frahmantamala/allowance-management/internal/core/events"
)

type RepositoryAPI interface {
	Summary(month, year int) (*Summary, error)
	OverUsageCases(month, year int) ([]*OverUsageCase, error)
	GroupOverUsage(month, year int) ([]*GroupOverUsage, error)
	UsageTrend(month, year, months int) ([]*TrendPoint, error)
}

type Subscriber interface {
	Subscribe(eventType string, handler events.Handler)
}

type Service struct {
	repo   RepositoryAPI
	cache  *Cache
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, cache *Cache, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// WatchMutations flushes cached reports whenever allowance balances
// or orders change underneath them.
func (s *Service) WatchMutations(bus Subscriber) {
	flush := func(ctx context.Context, _ events.Event) error {
		s.cache.Invalidate(ctx)
		return nil
	}
	bus.Subscribe(events.TypeOrderCreated, flush)
	bus.Subscribe(events.TypeAllowanceIssued, flush)
	bus.Subscribe(events.TypeBalanceAdjusted, flush)
}

func (s *Service) Summary(ctx context.Context, month, year int) (*Summary, error) {
	key := cacheKey("summary", month, year, 0)

	var cached Summary
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	summary, err := s.repo.Summary(month, year)
	if err != nil {
		s.logger.Error("failed to build summary", "month", month, "year", year, "error", err)
		return nil, err
	}

	summary.UsagePercent = UsagePercentage(summary.UsedCents, summary.IssuedCents)
	summary.IssuedFormatted = FormatETB(summary.IssuedCents, 0)
	summary.UsedFormatted = FormatETB(summary.UsedCents, 0)
	summary.OverFormatted = FormatETB(summary.OverCents, 0)

	s.cache.Set(ctx, key, summary)
	return summary, nil
}

// OverUsage lists employees who overshot, worst offender first. Rows
// with no overshoot never appear even if the store returns them.
func (s *Service) OverUsage(ctx context.Context, month, year int) ([]*OverUsageCase, error) {
	key := cacheKey("overusage", month, year, 0)

	var cached []*OverUsageCase
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	cases, err := s.repo.OverUsageCases(month, year)
	if err != nil {
		s.logger.Error("failed to build over-usage report", "month", month, "year", year, "error", err)
		return nil, err
	}

	filtered := cases[:0]
	for _, c := range cases {
		if c.OverCents <= 0 {
			continue
		}
		c.BarWidth = BarWidth(c.OverCents, c.IssuedCents)
		filtered = append(filtered, c)
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].OverCents > filtered[j].OverCents
	})

	s.cache.Set(ctx, key, filtered)
	return filtered, nil
}

func (s *Service) OverUsageByGroup(ctx context.Context, month, year int) ([]*GroupOverUsage, error) {
	key := cacheKey("overusage-group", month, year, 0)

	var cached []*GroupOverUsage
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	groups, err := s.repo.GroupOverUsage(month, year)
	if err != nil {
		s.logger.Error("failed to build group over-usage report", "month", month, "year", year, "error", err)
		return nil, err
	}

	for _, g := range groups {
		g.BarWidth = BarWidth(g.OverCents, g.IssuedCents)
	}

	s.cache.Set(ctx, key, groups)
	return groups, nil
}

// UsageTrend returns up to `months` points ending at month/year,
// oldest first. Months with no orders are absent rather than
// zero-filled.
func (s *Service) UsageTrend(ctx context.Context, month, year, months int) ([]*TrendPoint, error) {
	if months < 1 || months > 24 {
		months = 6
	}

	key := cacheKey("trend", month, year, months)

	var cached []*TrendPoint
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	points, err := s.repo.UsageTrend(month, year, months)
	if err != nil {
		s.logger.Error("failed to build usage trend", "month", month, "year", year, "error", err)
		return nil, err
	}

	s.cache.Set(ctx, key, points)
	return points, nil
}
