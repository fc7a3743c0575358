package allowance_test

import (
	"log/slog"
	"os"
	"testing"

	"github.com/frahmantamala/allowance-management/internal"
	"github.com/frahmantamala/allowance-management/internal/allowance"
	"github.com/frahmantamala/allowance-management/internal/core/events"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAllowanceService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Allowance Service Suite")
}

type MockRepository struct {
	rows         map[int64]*allowance.EmployeeAllowance
	nextID       int64
	beforeAdjust func()
}

func NewMockRepository() *MockRepository {
	return &MockRepository{rows: make(map[int64]*allowance.EmployeeAllowance), nextID: 1}
}

func (m *MockRepository) GetByPeriod(month, year int) ([]*allowance.EmployeeAllowance, error) {
	var out []*allowance.EmployeeAllowance
	for _, a := range m.rows {
		if a.Month == month && a.Year == year {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *MockRepository) GetByUser(userID int64) ([]*allowance.EmployeeAllowance, error) {
	var out []*allowance.EmployeeAllowance
	for _, a := range m.rows {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *MockRepository) GetByUserAndPeriod(userID int64, month, year int) (*allowance.EmployeeAllowance, error) {
	for _, a := range m.rows {
		if a.UserID == userID && a.Month == month && a.Year == year {
			return a, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) GetByID(id int64) (*allowance.EmployeeAllowance, error) {
	return m.rows[id], nil
}

func (m *MockRepository) Create(a *allowance.EmployeeAllowance) error {
	a.ID = m.nextID
	m.nextID++
	m.rows[a.ID] = a
	return nil
}

func (m *MockRepository) AdjustBalance(id int64, deltaCents int64) error {
	if m.beforeAdjust != nil {
		m.beforeAdjust()
	}
	m.rows[id].BalanceCents += deltaCents
	return nil
}

type MockMembership struct {
	members []allowance.GroupMember
}

func (m *MockMembership) EligibleMembers() ([]allowance.GroupMember, error) {
	return m.members, nil
}

var _ = Describe("Allowance Service", func() {
	var (
		repo    *MockRepository
		members *MockMembership
		service *allowance.Service
	)

	BeforeEach(func() {
		repo = NewMockRepository()
		members = &MockMembership{members: []allowance.GroupMember{
			{UserID: 10, GroupID: 1, AmountCents: 150000},
			{UserID: 11, GroupID: 1, AmountCents: 150000},
			{UserID: 12, GroupID: 2, AmountCents: 300000},
		}}
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = allowance.NewService(repo, members, events.NewEventBus(slogger), slogger)
	})

	Describe("IssueMonthly", func() {
		It("grants every grouped employee their group amount", func() {
			result, err := service.IssueMonthly(&allowance.IssueMonthlyDTO{Month: 3, Year: 2026}, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Issued).To(Equal(3))
			Expect(result.Skipped).To(BeZero())

			a, err := repo.GetByUserAndPeriod(12, 3, 2026)
			Expect(err).NotTo(HaveOccurred())
			Expect(a.IssuedCents).To(Equal(int64(300000)))
			Expect(a.BalanceCents).To(Equal(int64(300000)))
		})

		It("skips employees already issued for the period", func() {
			_, err := service.IssueMonthly(&allowance.IssueMonthlyDTO{Month: 3, Year: 2026}, 1)
			Expect(err).NotTo(HaveOccurred())

			result, err := service.IssueMonthly(&allowance.IssueMonthlyDTO{Month: 3, Year: 2026}, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Issued).To(BeZero())
			Expect(result.Skipped).To(Equal(3))
		})

		It("rejects an out-of-range month", func() {
			_, err := service.IssueMonthly(&allowance.IssueMonthlyDTO{Month: 13, Year: 2026}, 1)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidPeriod))
		})
	})

	Describe("Debit", func() {
		BeforeEach(func() {
			_, err := service.IssueMonthly(&allowance.IssueMonthlyDTO{Month: 3, Year: 2026}, 1)
			Expect(err).NotTo(HaveOccurred())
		})

		It("drains the balance", func() {
			a, err := service.Debit(10, 3, 2026, 40000, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(a.BalanceCents).To(Equal(int64(110000)))
			Expect(a.UsedCents()).To(Equal(int64(40000)))
			Expect(a.OverCents()).To(BeZero())
		})

		It("lets the balance go negative and reports the overshoot", func() {
			_, err := service.Debit(10, 3, 2026, 140000, 1)
			Expect(err).NotTo(HaveOccurred())

			a, err := service.Debit(10, 3, 2026, 30000, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(a.BalanceCents).To(Equal(int64(-20000)))
			Expect(a.OverCents()).To(Equal(int64(20000)))
		})

		It("does not lose a debit that lands in between", func() {
			a, err := repo.GetByUserAndPeriod(10, 3, 2026)
			Expect(err).NotTo(HaveOccurred())

			repo.beforeAdjust = func() {
				repo.beforeAdjust = nil
				repo.rows[a.ID].BalanceCents -= 30000
			}

			got, err := service.Debit(10, 3, 2026, 40000, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.BalanceCents).To(Equal(int64(80000)))
		})

		It("fails when no allowance exists for the period", func() {
			_, err := service.Debit(99, 3, 2026, 1000, 1)
			Expect(err).To(MatchError(allowance.ErrNotFound))
		})
	})

	Describe("AdjustBalance", func() {
		It("applies a manual correction", func() {
			_, err := service.IssueMonthly(&allowance.IssueMonthlyDTO{Month: 3, Year: 2026}, 1)
			Expect(err).NotTo(HaveOccurred())

			a, err := repo.GetByUserAndPeriod(10, 3, 2026)
			Expect(err).NotTo(HaveOccurred())

			adjusted, err := service.AdjustBalance(a.ID, &allowance.AdjustBalanceDTO{DeltaCents: -5000, Reason: "billing fix"}, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(adjusted.BalanceCents).To(Equal(int64(145000)))
		})

		It("rejects a zero delta", func() {
			_, err := service.AdjustBalance(1, &allowance.AdjustBalanceDTO{DeltaCents: 0}, 1)
			Expect(err).To(HaveOccurred())
		})
	})
})
