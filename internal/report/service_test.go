package report_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/frahmantamala/allowance-management/internal/report"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type MockRepository struct {
	summary *report.Summary
	cases   []*report.OverUsageCase
	groups  []*report.GroupOverUsage
	points  []*report.TrendPoint
}

func (m *MockRepository) Summary(month, year int) (*report.Summary, error) {
	return m.summary, nil
}

func (m *MockRepository) OverUsageCases(month, year int) ([]*report.OverUsageCase, error) {
	return m.cases, nil
}

func (m *MockRepository) GroupOverUsage(month, year int) ([]*report.GroupOverUsage, error) {
	return m.groups, nil
}

func (m *MockRepository) UsageTrend(month, year, months int) ([]*report.TrendPoint, error) {
	return m.points, nil
}

var _ = Describe("Report Service", func() {
	var (
		repo    *MockRepository
		service *report.Service
		ctx     context.Context
	)

	BeforeEach(func() {
		repo = &MockRepository{}
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		cache := report.NewCache(nil, 0, slogger)
		service = report.NewService(repo, cache, slogger)
		ctx = context.Background()
	})

	Describe("Summary", func() {
		It("derives percentage and formatted amounts", func() {
			repo.summary = &report.Summary{
				Month: 3, Year: 2026,
				IssuedCents: 45000000, UsedCents: 36000000, OverCents: 1200000,
				EmployeeCount: 300, OverUsageCount: 12,
			}

			s, err := service.Summary(ctx, 3, 2026)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.UsagePercent).To(BeNumerically("~", 80.0))
			Expect(s.IssuedFormatted).To(Equal("ETB 450,000"))
			Expect(s.UsedFormatted).To(Equal("ETB 360,000"))
			Expect(s.OverFormatted).To(Equal("ETB 12,000"))
		})

		It("survives an empty month", func() {
			repo.summary = &report.Summary{Month: 1, Year: 2026}

			s, err := service.Summary(ctx, 1, 2026)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.UsagePercent).To(BeZero())
			Expect(s.IssuedFormatted).To(Equal("ETB 0"))
		})
	})

	Describe("OverUsage", func() {
		It("orders cases worst offender first and sets bar widths", func() {
			repo.cases = []*report.OverUsageCase{
				{UserID: 1, FullName: "Small Over", IssuedCents: 100000, OverCents: 5000},
				{UserID: 2, FullName: "Big Over", IssuedCents: 100000, OverCents: 60000},
				{UserID: 3, FullName: "Huge Over", IssuedCents: 50000, OverCents: 120000},
			}

			cases, err := service.OverUsage(ctx, 3, 2026)
			Expect(err).NotTo(HaveOccurred())
			Expect(cases).To(HaveLen(3))
			Expect(cases[0].FullName).To(Equal("Huge Over"))
			Expect(cases[1].FullName).To(Equal("Big Over"))
			Expect(cases[2].FullName).To(Equal("Small Over"))

			Expect(cases[0].BarWidth).To(Equal(100.0))
			Expect(cases[1].BarWidth).To(BeNumerically("~", 60.0))
			Expect(cases[2].BarWidth).To(BeNumerically("~", 5.0))
		})

		It("drops rows without overshoot", func() {
			repo.cases = []*report.OverUsageCase{
				{UserID: 1, IssuedCents: 100000, OverCents: 0},
				{UserID: 2, IssuedCents: 100000, OverCents: 5000},
			}

			cases, err := service.OverUsage(ctx, 3, 2026)
			Expect(err).NotTo(HaveOccurred())
			Expect(cases).To(HaveLen(1))
			Expect(cases[0].UserID).To(Equal(int64(2)))
		})

		It("gives a zero bar to a case with nothing issued", func() {
			repo.cases = []*report.OverUsageCase{
				{UserID: 1, IssuedCents: 0, OverCents: 5000},
			}

			cases, err := service.OverUsage(ctx, 3, 2026)
			Expect(err).NotTo(HaveOccurred())
			Expect(cases).To(HaveLen(1))
			Expect(cases[0].BarWidth).To(BeZero())
		})
	})

	Describe("UsageTrend", func() {
		It("passes points through oldest first with the self/guest split intact", func() {
			repo.points = []*report.TrendPoint{
				{Month: 10, Year: 2025, SelfUsageCents: 80000, GuestUsageCents: 20000, TotalCents: 100000},
				{Month: 11, Year: 2025, SelfUsageCents: 150000, GuestUsageCents: 50000, TotalCents: 200000},
				{Month: 12, Year: 2025, SelfUsageCents: 300000, GuestUsageCents: 0, TotalCents: 300000},
			}

			points, err := service.UsageTrend(ctx, 12, 2025, 3)
			Expect(err).NotTo(HaveOccurred())
			Expect(points).To(HaveLen(3))
			Expect(points[0].Month).To(Equal(10))
			Expect(points[0].SelfUsageCents).To(Equal(int64(80000)))
			Expect(points[0].GuestUsageCents).To(Equal(int64(20000)))
			Expect(points[2].Month).To(Equal(12))
			Expect(points[2].GuestUsageCents).To(BeZero())
		})

		It("falls back to a sane window for absurd month counts", func() {
			repo.points = nil

			_, err := service.UsageTrend(ctx, 3, 2026, 500)
			Expect(err).NotTo(HaveOccurred())
		})
	})
})
