package audit_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/leave-management/internal/audit"
	"github.com/frahmantamala/leave-management/internal/core/events"
)

func TestAudit(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Audit Suite")
}

// Mock repository capturing written rows
type mockAuditRepository struct {
	rows        []*audit.AuditLog
	createError error
}

func (m *mockAuditRepository) Create(row *audit.AuditLog) error {
	if m.createError != nil {
		return m.createError
	}
	m.rows = append(m.rows, row)
	return nil
}

func (m *mockAuditRepository) List(filter audit.ListFilter) ([]audit.AuditLog, int64, error) {
	logs := make([]audit.AuditLog, 0, len(m.rows))
	for _, row := range m.rows {
		logs = append(logs, *row)
	}
	return logs, int64(len(logs)), nil
}

var _ = Describe("AuditSubscriber", func() {
	var (
		subscriber *audit.Subscriber
		mockRepo   *mockAuditRepository
		bus        *events.EventBus
		logger     *slog.Logger
	)

	BeforeEach(func() {
		mockRepo = &mockAuditRepository{}
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		subscriber = audit.NewSubscriber(mockRepo, logger)
		bus = events.NewEventBus(logger)
		subscriber.Register(bus)
	})

	It("persists a login event as an audit row", func() {
		event := events.NewUserLoggedInEvent(7, "203.0.113.9", "curl/8.0")

		Expect(bus.PublishSync(context.Background(), event)).To(Succeed())

		Expect(mockRepo.rows).To(HaveLen(1))
		row := mockRepo.rows[0]
		Expect(row.UserID).To(Equal(int64(7)))
		Expect(row.Action).To(Equal("LOGIN"))
		Expect(row.EntityType).To(Equal("users"))
		Expect(row.IPAddress).To(Equal("203.0.113.9"))
		Expect(row.UserAgent).To(Equal("curl/8.0"))
	})

	It("serialises before and after snapshots as JSON", func() {
		event := events.NewLeaveApprovedEvent(9, 42,
			map[string]interface{}{"status": "pending"},
			map[string]interface{}{"status": "approved"},
			"", "")

		Expect(bus.PublishSync(context.Background(), event)).To(Succeed())

		Expect(mockRepo.rows).To(HaveLen(1))
		row := mockRepo.rows[0]
		Expect(row.EntityID).To(Equal(int64(42)))
		Expect(row.OldValues).To(MatchJSON(`{"status": "pending"}`))
		Expect(row.NewValues).To(MatchJSON(`{"status": "approved"}`))
	})

	It("leaves snapshots empty when the event carries none", func() {
		event := events.NewUserLoggedOutEvent(7, "", "")

		Expect(bus.PublishSync(context.Background(), event)).To(Succeed())

		Expect(mockRepo.rows[0].OldValues).To(BeEmpty())
		Expect(mockRepo.rows[0].NewValues).To(BeEmpty())
	})

	It("covers every audited event type", func() {
		published := []events.Event{
			events.NewUserLoggedInEvent(1, "", ""),
			events.NewUserLoggedOutEvent(1, "", ""),
			events.NewLeaveSubmittedEvent(1, 10, nil, "", ""),
			events.NewLeaveApprovedEvent(2, 10, nil, nil, "", ""),
			events.NewLeaveRejectedEvent(2, 10, nil, nil, "", ""),
		}
		for _, event := range published {
			Expect(bus.PublishSync(context.Background(), event)).To(Succeed())
		}

		Expect(mockRepo.rows).To(HaveLen(5))
		actions := make([]string, 0, len(mockRepo.rows))
		for _, row := range mockRepo.rows {
			actions = append(actions, row.Action)
		}
		Expect(actions).To(Equal([]string{
			"LOGIN", "LOGOUT", "LEAVE_SUBMITTED", "LEAVE_APPROVED", "LEAVE_REJECTED",
		}))
	})

	It("surfaces repository failures so the bus can log them", func() {
		mockRepo.createError = context.DeadlineExceeded

		err := bus.PublishSync(context.Background(), events.NewUserLoggedInEvent(1, "", ""))

		Expect(err).To(HaveOccurred())
	})
})
