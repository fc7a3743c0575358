package audit_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/frahmantamala/allowance-management/internal/audit"
	"github.com/frahmantamala/allowance-management/internal/core/events"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAuditService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Audit Service Suite")
}

type MockRepository struct {
	entries []*audit.AuditEntry
}

func (m *MockRepository) Insert(entry *audit.AuditEntry) error {
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MockRepository) List(eventType string, actorID int64, page, limit int) ([]*audit.AuditEntry, int64, error) {
	var out []*audit.AuditEntry
	for _, e := range m.entries {
		if eventType != "" && e.EventType != eventType {
			continue
		}
		if actorID > 0 && e.ActorID != actorID {
			continue
		}
		out = append(out, e)
	}
	return out, int64(len(out)), nil
}

var _ = Describe("Audit Service", func() {
	var (
		repo    *MockRepository
		service *audit.Service
		bus     *events.EventBus
		slogger *slog.Logger
	)

	BeforeEach(func() {
		repo = &MockRepository{}
		slogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = audit.NewService(repo, slogger)
		bus = events.NewEventBus(slogger)
		service.WatchAll(bus)
	})

	It("records published domain events with their payload", func() {
		event := events.NewOrderCreated(3, 41, 10, 72000, "SELF")
		Expect(bus.PublishSync(context.Background(), event)).To(Succeed())

		Expect(repo.entries).To(HaveLen(1))
		entry := repo.entries[0]
		Expect(entry.EventType).To(Equal(events.TypeOrderCreated))
		Expect(entry.ActorID).To(Equal(int64(3)))
		Expect(entry.Entity).To(Equal("order"))
		Expect(entry.EntityID).To(Equal(int64(41)))
		Expect(entry.Detail).To(ContainSubstring("72000"))
		Expect(entry.EventID).NotTo(BeEmpty())
	})

	It("records every event type it watches", func() {
		ctx := context.Background()
		Expect(bus.PublishSync(ctx, events.NewAllowanceIssued(1, 5, 10, 150000, 3, 2026))).To(Succeed())
		Expect(bus.PublishSync(ctx, events.NewBalanceAdjusted(1, 5, -5000, 145000))).To(Succeed())
		Expect(bus.PublishSync(ctx, events.NewGroupAssigned(1, 10, 2))).To(Succeed())
		Expect(bus.PublishSync(ctx, events.NewOverUsageDetected(10, 5, 20000))).To(Succeed())

		Expect(repo.entries).To(HaveLen(4))
	})

	It("filters the trail by event type", func() {
		ctx := context.Background()
		Expect(bus.PublishSync(ctx, events.NewOrderCreated(3, 41, 10, 72000, "SELF"))).To(Succeed())
		Expect(bus.PublishSync(ctx, events.NewGroupAssigned(1, 10, 2))).To(Succeed())

		entries, total, err := service.List(events.TypeGroupAssigned, 0, 1, 50)
		Expect(err).NotTo(HaveOccurred())
		Expect(total).To(Equal(int64(1)))
		Expect(entries[0].EventType).To(Equal(events.TypeGroupAssigned))
	})

	It("stamps entries with the event's occurrence time", func() {
		event := events.NewGroupAssigned(1, 10, 2)
		Expect(bus.PublishSync(context.Background(), event)).To(Succeed())

		Expect(repo.entries[0].CreatedAt).To(BeTemporally("~", time.Now(), time.Second))
	})
})
