package order_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/frahmantamala/allowance-management/internal"
	"github.com/frahmantamala/allowance-management/internal/allowance"
	"github.com/frahmantamala/allowance-management/internal/core/events"
	"github.com/frahmantamala/allowance-management/internal/order"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestOrderService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Order Service Suite")
}

type MockRepository struct {
	orders    []*order.Order
	nextID    int64
	createErr error
}

func (m *MockRepository) List(filter *order.ListFilter) ([]*order.Order, int64, error) {
	return m.orders, int64(len(m.orders)), nil
}

func (m *MockRepository) GetByID(id int64) (*order.Order, error) {
	for _, o := range m.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) Create(o *order.Order) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	o.ID = m.nextID
	m.orders = append(m.orders, o)
	return nil
}

type MockPricing struct {
	items map[int64]*order.PricedItem
}

func (m *MockPricing) GetItem(menuItemID int64) (*order.PricedItem, error) {
	return m.items[menuItemID], nil
}

type MockAllowances struct {
	debits  []int64
	balance int64
	missing bool
}

func (m *MockAllowances) Debit(userID int64, month, year int, amountCents int64, actorID int64) (*allowance.EmployeeAllowance, error) {
	if m.missing {
		return nil, allowance.ErrNotFound
	}
	m.debits = append(m.debits, amountCents)
	m.balance -= amountCents
	return &allowance.EmployeeAllowance{UserID: userID, BalanceCents: m.balance}, nil
}

var _ = Describe("Order Service", func() {
	var (
		repo       *MockRepository
		pricing    *MockPricing
		allowances *MockAllowances
		service    *order.Service
	)

	BeforeEach(func() {
		repo = &MockRepository{}
		pricing = &MockPricing{items: map[int64]*order.PricedItem{
			1: {ID: 1, Name: "Doro Wat", PriceCents: 25000},
			2: {ID: 2, Name: "Tibs", PriceCents: 22000},
		}}
		allowances = &MockAllowances{balance: 150000}
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = order.NewService(repo, pricing, allowances, events.NewEventBus(slogger), slogger)
	})

	Describe("Create", func() {
		It("prices items server-side and debits the allowance", func() {
			o, err := service.Create(&order.CreateOrderDTO{
				EmployeeID: 10,
				BranchID:   1,
				OrderType:  order.TypeSelf,
				TotalCents: 72000,
				Items: []order.OrderItemDTO{
					{MenuItemID: 1, Quantity: 2},
					{MenuItemID: 2, Quantity: 1},
				},
			}, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(o.TotalCents).To(Equal(int64(72000)))
			Expect(o.Items).To(HaveLen(2))
			Expect(o.Items[0].Name).To(Equal("Doro Wat"))
			Expect(allowances.debits).To(ConsistOf(int64(72000)))
		})

		It("rejects a total that disagrees with the menu prices", func() {
			_, err := service.Create(&order.CreateOrderDTO{
				EmployeeID: 10,
				BranchID:   1,
				OrderType:  order.TypeSelf,
				TotalCents: 100,
				Items:      []order.OrderItemDTO{{MenuItemID: 1, Quantity: 1}},
			}, 10)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidAmount))
			Expect(repo.orders).To(BeEmpty())
		})

		It("rejects unknown menu items", func() {
			_, err := service.Create(&order.CreateOrderDTO{
				EmployeeID: 10,
				BranchID:   1,
				OrderType:  order.TypeSelf,
				TotalCents: 100,
				Items:      []order.OrderItemDTO{{MenuItemID: 99, Quantity: 1}},
			}, 10)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeMenuItemNotFound))
		})

		It("does not persist when the employee has no allowance", func() {
			allowances.missing = true

			_, err := service.Create(&order.CreateOrderDTO{
				EmployeeID: 10,
				BranchID:   1,
				OrderType:  order.TypeSelf,
				TotalCents: 25000,
				Items:      []order.OrderItemDTO{{MenuItemID: 1, Quantity: 1}},
			}, 10)
			Expect(err).To(MatchError(allowance.ErrNotFound))
			Expect(repo.orders).To(BeEmpty())
		})

		It("refunds the debit when storing the order fails", func() {
			repo.createErr = errors.New("insert failed")

			_, err := service.Create(&order.CreateOrderDTO{
				EmployeeID: 10,
				BranchID:   1,
				OrderType:  order.TypeSelf,
				TotalCents: 25000,
				Items:      []order.OrderItemDTO{{MenuItemID: 1, Quantity: 1}},
			}, 10)
			Expect(err).To(MatchError(repo.createErr))
			Expect(repo.orders).To(BeEmpty())
			Expect(allowances.debits).To(Equal([]int64{25000, -25000}))
			Expect(allowances.balance).To(Equal(int64(150000)))
		})

		It("charges guest meals to the hosting employee", func() {
			o, err := service.Create(&order.CreateOrderDTO{
				EmployeeID: 10,
				BranchID:   1,
				OrderType:  order.TypeGuest,
				GuestNote:  "client lunch, ministry visit",
				TotalCents: 25000,
				OrderedAt:  timePtr(time.Date(2026, 3, 12, 12, 30, 0, 0, time.UTC)),
				Items:      []order.OrderItemDTO{{MenuItemID: 1, Quantity: 1}},
			}, 3)
			Expect(err).NotTo(HaveOccurred())
			Expect(o.OrderType).To(Equal(order.TypeGuest))
			Expect(o.GuestNote).To(Equal("client lunch, ministry visit"))
			Expect(allowances.debits).To(ConsistOf(int64(25000)))
		})

		It("drops the guest note on a self order", func() {
			o, err := service.Create(&order.CreateOrderDTO{
				EmployeeID: 10,
				BranchID:   1,
				OrderType:  order.TypeSelf,
				GuestNote:  "should not stick",
				TotalCents: 25000,
				Items:      []order.OrderItemDTO{{MenuItemID: 1, Quantity: 1}},
			}, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(o.GuestNote).To(BeEmpty())
		})

		It("rejects an empty item list", func() {
			_, err := service.Create(&order.CreateOrderDTO{
				EmployeeID: 10, BranchID: 1, OrderType: order.TypeSelf,
			}, 10)
			Expect(err).To(HaveOccurred())
		})
	})
})

func timePtr(t time.Time) *time.Time { return &t }
