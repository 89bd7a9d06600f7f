package leave_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/leave-management/internal/core/events"
	"github.com/frahmantamala/leave-management/internal/leave"
)

func TestLeave(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Leave Suite")
}

// Mock repository for testing
type mockLeaveRepository struct {
	leaveTypes  map[int64]*leave.TypeInfo
	balances    map[string]*leave.LeaveBalance
	requests    map[int64]*leave.LeaveRequest
	overlapping bool
	createError error
	getError    error
	rejectYear  int
	nextID      int64
	nextBalance int64
}

func balanceKey(userID, leaveTypeID int64, year int) string {
	return fmt.Sprintf("%d/%d/%d", userID, leaveTypeID, year)
}

func newMockLeaveRepository() *mockLeaveRepository {
	return &mockLeaveRepository{
		leaveTypes:  make(map[int64]*leave.TypeInfo),
		balances:    make(map[string]*leave.LeaveBalance),
		requests:    make(map[int64]*leave.LeaveRequest),
		nextID:      1,
		nextBalance: 1,
	}
}

func (m *mockLeaveRepository) GetActiveLeaveType(id int64) (*leave.TypeInfo, error) {
	lt, ok := m.leaveTypes[id]
	if !ok {
		return nil, leave.ErrLeaveTypeNotFound
	}
	return lt, nil
}

func (m *mockLeaveRepository) ActiveLeaveTypes() ([]*leave.TypeInfo, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	types := make([]*leave.TypeInfo, 0, len(m.leaveTypes))
	for _, lt := range m.leaveTypes {
		types = append(types, lt)
	}
	return types, nil
}

func (m *mockLeaveRepository) GetBalance(userID, leaveTypeID int64, year int) (*leave.LeaveBalance, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	balance, ok := m.balances[balanceKey(userID, leaveTypeID, year)]
	if !ok {
		return nil, nil
	}
	return balance, nil
}

func (m *mockLeaveRepository) CreateBalance(balance *leave.LeaveBalance) error {
	if m.createError != nil {
		return m.createError
	}
	balance.ID = m.nextBalance
	m.nextBalance++
	m.balances[balanceKey(balance.UserID, balance.LeaveTypeID, balance.Year)] = balance
	return nil
}

func (m *mockLeaveRepository) BalancesForUser(userID int64, year int) ([]leave.BalanceView, error) {
	views := make([]leave.BalanceView, 0)
	for _, b := range m.balances {
		if b.UserID == userID && b.Year == year {
			views = append(views, leave.BalanceView{
				LeaveTypeID:   b.LeaveTypeID,
				Year:          b.Year,
				TotalDays:     b.TotalDays,
				UsedDays:      b.UsedDays,
				RemainingDays: b.Remaining(),
			})
		}
	}
	return views, nil
}

func (m *mockLeaveRepository) HasOverlapping(userID int64, start, end time.Time) (bool, error) {
	return m.overlapping, nil
}

func (m *mockLeaveRepository) CreateRequestWithReservation(req *leave.LeaveRequest, year int) error {
	if m.createError != nil {
		return m.createError
	}
	req.ID = m.nextID
	m.nextID++
	req.CreatedAt = time.Now()
	req.UpdatedAt = time.Now()
	m.requests[req.ID] = req

	balance := m.balances[balanceKey(req.UserID, req.LeaveTypeID, year)]
	if balance != nil {
		balance.UsedDays += req.NumberOfDays
	}
	return nil
}

func (m *mockLeaveRepository) GetRequestByID(id int64) (*leave.LeaveRequest, error) {
	req, ok := m.requests[id]
	if !ok {
		return nil, leave.ErrRequestNotFound
	}
	return req, nil
}

func (m *mockLeaveRepository) ApproveRequest(id, approverID int64, comments string, at time.Time) error {
	req := m.requests[id]
	req.Status = leave.StatusApproved
	req.ApproverID = &approverID
	req.ApprovalDate = &at
	req.ApprovalComments = comments
	return nil
}

func (m *mockLeaveRepository) RejectRequestWithRelease(req *leave.LeaveRequest, approverID int64, comments string, at time.Time, year int) error {
	m.rejectYear = year
	stored := m.requests[req.ID]
	stored.Status = leave.StatusRejected
	stored.ApproverID = &approverID
	stored.ApprovalDate = &at
	stored.ApprovalComments = comments

	balance := m.balances[balanceKey(req.UserID, req.LeaveTypeID, year)]
	if balance != nil {
		balance.UsedDays -= req.NumberOfDays
		if balance.UsedDays < 0 {
			balance.UsedDays = 0
		}
	}
	return nil
}

func (m *mockLeaveRepository) ListByUser(userID int64, limit, offset int) ([]*leave.LeaveRequest, error) {
	requests := make([]*leave.LeaveRequest, 0)
	for _, req := range m.requests {
		if req.UserID == userID {
			requests = append(requests, req)
		}
	}
	return requests, nil
}

func (m *mockLeaveRepository) List(filter leave.ListFilter) ([]*leave.LeaveRequest, int64, error) {
	requests := make([]*leave.LeaveRequest, 0)
	for _, req := range m.requests {
		if filter.Status == "" || req.Status == filter.Status {
			requests = append(requests, req)
		}
	}
	return requests, int64(len(requests)), nil
}

// Mock event publisher capturing published events
type mockPublisher struct {
	events []events.Event
}

func (m *mockPublisher) Publish(ctx context.Context, event events.Event) error {
	m.events = append(m.events, event)
	return nil
}

// nextMonday returns the first Monday at least seven days out, so that
// submission dates are always safely in the future.
func nextMonday() time.Time {
	now := time.Now()
	d := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 7)
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

const dateLayout = "2006-01-02"

var _ = Describe("LeaveService", func() {
	var (
		service  *leave.Service
		mockRepo *mockLeaveRepository
		bus      *mockPublisher
		settings leave.Settings
		logger   *slog.Logger
	)

	BeforeEach(func() {
		mockRepo = newMockLeaveRepository()
		bus = &mockPublisher{}
		settings = leave.DefaultSettings()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = leave.NewService(mockRepo, bus, settings, logger)

		mockRepo.leaveTypes[1] = &leave.TypeInfo{ID: 1, Name: "Annual Leave", MaxDaysPerYear: 20}
	})

	seedBalance := func(userID int64, total, used int) {
		year := settings.CurrentFinancialYear()
		Expect(mockRepo.CreateBalance(&leave.LeaveBalance{
			UserID:      userID,
			LeaveTypeID: 1,
			Year:        year,
			TotalDays:   total,
			UsedDays:    used,
		})).To(Succeed())
	}

	Describe("Submit", func() {
		Context("with a valid request and sufficient balance", func() {
			It("creates a pending request and reserves the working days", func() {
				userID := int64(10)
				seedBalance(userID, 20, 0)
				start := nextMonday()
				dto := leave.SubmitLeaveDTO{
					LeaveTypeID: 1,
					StartDate:   start.Format(dateLayout),
					EndDate:     start.AddDate(0, 0, 4).Format(dateLayout), // Monday to Friday
					Reason:      "family holiday",
				}

				req, err := service.Submit(context.Background(), userID, dto)

				Expect(err).ToNot(HaveOccurred())
				Expect(req.Status).To(Equal(leave.StatusPending))
				Expect(req.NumberOfDays).To(Equal(5))
				Expect(req.ID).To(BeNumerically(">", 0))

				year := settings.CurrentFinancialYear()
				balance, _ := mockRepo.GetBalance(userID, 1, year)
				Expect(balance.UsedDays).To(Equal(5))
			})

			It("publishes a submission event", func() {
				userID := int64(10)
				seedBalance(userID, 20, 0)
				start := nextMonday()
				dto := leave.SubmitLeaveDTO{
					LeaveTypeID: 1,
					StartDate:   start.Format(dateLayout),
					EndDate:     start.AddDate(0, 0, 1).Format(dateLayout),
					Reason:      "appointment",
				}

				_, err := service.Submit(context.Background(), userID, dto)

				Expect(err).ToNot(HaveOccurred())
				Expect(bus.events).To(HaveLen(1))
				Expect(bus.events[0].EventType()).To(Equal(events.EventTypeLeaveSubmitted))
			})

			It("excludes weekend days from the reserved count", func() {
				userID := int64(10)
				seedBalance(userID, 20, 0)
				start := nextMonday()
				dto := leave.SubmitLeaveDTO{
					LeaveTypeID: 1,
					StartDate:   start.Format(dateLayout),
					EndDate:     start.AddDate(0, 0, 6).Format(dateLayout), // Monday to Sunday
					Reason:      "long break",
				}

				req, err := service.Submit(context.Background(), userID, dto)

				Expect(err).ToNot(HaveOccurred())
				Expect(req.NumberOfDays).To(Equal(5))
			})
		})

		Context("when the range contains no working days", func() {
			It("rejects the submission", func() {
				userID := int64(10)
				seedBalance(userID, 20, 0)
				saturday := nextMonday().AddDate(0, 0, 5)
				dto := leave.SubmitLeaveDTO{
					LeaveTypeID: 1,
					StartDate:   saturday.Format(dateLayout),
					EndDate:     saturday.AddDate(0, 0, 1).Format(dateLayout), // Saturday to Sunday
					Reason:      "weekend trip",
				}

				req, err := service.Submit(context.Background(), userID, dto)

				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("no working days"))
				Expect(req).To(BeNil())
			})
		})

		Context("when the start date is in the past", func() {
			It("rejects the submission", func() {
				userID := int64(10)
				seedBalance(userID, 20, 0)
				dto := leave.SubmitLeaveDTO{
					LeaveTypeID: 1,
					StartDate:   time.Now().AddDate(0, 0, -7).Format(dateLayout),
					EndDate:     time.Now().AddDate(0, 0, 7).Format(dateLayout),
					Reason:      "backdated",
				}

				_, err := service.Submit(context.Background(), userID, dto)

				Expect(err).To(HaveOccurred())
			})
		})

		Context("when the start date is not before the end date", func() {
			It("rejects the submission", func() {
				userID := int64(10)
				seedBalance(userID, 20, 0)
				day := nextMonday()
				dto := leave.SubmitLeaveDTO{
					LeaveTypeID: 1,
					StartDate:   day.Format(dateLayout),
					EndDate:     day.Format(dateLayout),
					Reason:      "single day",
				}

				_, err := service.Submit(context.Background(), userID, dto)

				Expect(err).To(HaveOccurred())
			})
		})

		Context("when a date is malformed", func() {
			It("rejects the submission", func() {
				dto := leave.SubmitLeaveDTO{
					LeaveTypeID: 1,
					StartDate:   "03/05/2026",
					EndDate:     "2026-05-10",
					Reason:      "bad format",
				}

				_, err := service.Submit(context.Background(), int64(10), dto)

				Expect(err).To(HaveOccurred())
			})
		})

		Context("when the leave type is unknown or inactive", func() {
			It("returns a leave type not found error", func() {
				start := nextMonday()
				dto := leave.SubmitLeaveDTO{
					LeaveTypeID: 99,
					StartDate:   start.Format(dateLayout),
					EndDate:     start.AddDate(0, 0, 2).Format(dateLayout),
					Reason:      "unknown type",
				}

				_, err := service.Submit(context.Background(), int64(10), dto)

				Expect(err).To(Equal(leave.ErrLeaveTypeNotFound))
			})
		})

		Context("when an overlapping request exists", func() {
			It("returns an overlap error", func() {
				userID := int64(10)
				seedBalance(userID, 20, 0)
				mockRepo.overlapping = true
				start := nextMonday()
				dto := leave.SubmitLeaveDTO{
					LeaveTypeID: 1,
					StartDate:   start.Format(dateLayout),
					EndDate:     start.AddDate(0, 0, 2).Format(dateLayout),
					Reason:      "double booking",
				}

				_, err := service.Submit(context.Background(), userID, dto)

				Expect(err).To(Equal(leave.ErrOverlappingRequest))
			})
		})

		Context("when the balance is insufficient", func() {
			It("returns an insufficient balance error", func() {
				userID := int64(10)
				seedBalance(userID, 20, 18) // only 2 remaining
				start := nextMonday()
				dto := leave.SubmitLeaveDTO{
					LeaveTypeID: 1,
					StartDate:   start.Format(dateLayout),
					EndDate:     start.AddDate(0, 0, 4).Format(dateLayout), // 5 working days
					Reason:      "too long",
				}

				_, err := service.Submit(context.Background(), userID, dto)

				Expect(err).To(Equal(leave.ErrInsufficientBalance))
			})

			It("treats a missing balance row as zero available days", func() {
				userID := int64(77) // no balance seeded
				start := nextMonday()
				dto := leave.SubmitLeaveDTO{
					LeaveTypeID: 1,
					StartDate:   start.Format(dateLayout),
					EndDate:     start.AddDate(0, 0, 1).Format(dateLayout),
					Reason:      "no allocation",
				}

				_, err := service.Submit(context.Background(), userID, dto)

				Expect(err).To(Equal(leave.ErrInsufficientBalance))
			})
		})
	})

	Describe("Approve", func() {
		Context("with a pending request", func() {
			It("marks it approved without touching the balance", func() {
				userID := int64(10)
				seedBalance(userID, 20, 5)
				mockRepo.requests[1] = &leave.LeaveRequest{
					ID: 1, UserID: userID, LeaveTypeID: 1,
					NumberOfDays: 5, Status: leave.StatusPending,
				}

				err := service.Approve(context.Background(), 1, int64(99), "enjoy")

				Expect(err).ToNot(HaveOccurred())
				Expect(mockRepo.requests[1].Status).To(Equal(leave.StatusApproved))
				Expect(*mockRepo.requests[1].ApproverID).To(Equal(int64(99)))

				year := settings.CurrentFinancialYear()
				balance, _ := mockRepo.GetBalance(userID, 1, year)
				Expect(balance.UsedDays).To(Equal(5))
			})

			It("publishes an approval event", func() {
				mockRepo.requests[1] = &leave.LeaveRequest{
					ID: 1, UserID: 10, LeaveTypeID: 1, Status: leave.StatusPending,
				}

				Expect(service.Approve(context.Background(), 1, 99, "")).To(Succeed())
				Expect(bus.events).To(HaveLen(1))
				Expect(bus.events[0].EventType()).To(Equal(events.EventTypeLeaveApproved))
			})
		})

		Context("with a request that is not pending", func() {
			It("returns an invalid status error", func() {
				mockRepo.requests[1] = &leave.LeaveRequest{
					ID: 1, UserID: 10, Status: leave.StatusRejected,
				}

				err := service.Approve(context.Background(), 1, 99, "")

				Expect(err).To(Equal(leave.ErrInvalidRequestStatus))
			})
		})

		Context("with an unknown request", func() {
			It("returns a not found error", func() {
				err := service.Approve(context.Background(), 404, 99, "")
				Expect(err).To(Equal(leave.ErrRequestNotFound))
			})
		})
	})

	Describe("Reject", func() {
		Context("with a pending request", func() {
			It("marks it rejected and releases the reserved days", func() {
				userID := int64(10)
				seedBalance(userID, 20, 5)
				start := nextMonday()
				mockRepo.requests[1] = &leave.LeaveRequest{
					ID: 1, UserID: userID, LeaveTypeID: 1,
					StartDate: start, EndDate: start.AddDate(0, 0, 4),
					NumberOfDays: 5, Status: leave.StatusPending,
				}

				err := service.Reject(context.Background(), 1, int64(99), "staffing")

				Expect(err).ToNot(HaveOccurred())
				Expect(mockRepo.requests[1].Status).To(Equal(leave.StatusRejected))

				year := settings.CurrentFinancialYear()
				balance, _ := mockRepo.GetBalance(userID, 1, year)
				Expect(balance.UsedDays).To(Equal(0))
			})

			It("derives the affected year from the request's start date", func() {
				farFuture := time.Date(time.Now().Year()+2, time.June, 1, 0, 0, 0, 0, time.Local)
				mockRepo.requests[1] = &leave.LeaveRequest{
					ID: 1, UserID: 10, LeaveTypeID: 1,
					StartDate: farFuture, EndDate: farFuture.AddDate(0, 0, 3),
					NumberOfDays: 4, Status: leave.StatusPending,
				}

				Expect(service.Reject(context.Background(), 1, 99, "")).To(Succeed())
				Expect(mockRepo.rejectYear).To(Equal(time.Now().Year() + 2))
			})

			It("publishes a rejection event", func() {
				mockRepo.requests[1] = &leave.LeaveRequest{
					ID: 1, UserID: 10, LeaveTypeID: 1, Status: leave.StatusPending,
				}

				Expect(service.Reject(context.Background(), 1, 99, "")).To(Succeed())
				Expect(bus.events).To(HaveLen(1))
				Expect(bus.events[0].EventType()).To(Equal(events.EventTypeLeaveRejected))
			})
		})

		Context("with an already rejected request", func() {
			It("returns an invalid status error", func() {
				mockRepo.requests[1] = &leave.LeaveRequest{
					ID: 1, UserID: 10, Status: leave.StatusRejected,
				}

				err := service.Reject(context.Background(), 1, 99, "")

				Expect(err).To(Equal(leave.ErrInvalidRequestStatus))
			})
		})
	})

	Describe("GetBalance", func() {
		Context("when no balance row exists", func() {
			It("returns a zero-valued default without persisting it", func() {
				balance, err := service.GetBalance(10, 1, 2026)

				Expect(err).ToNot(HaveOccurred())
				Expect(balance.TotalDays).To(Equal(0))
				Expect(balance.UsedDays).To(Equal(0))
				Expect(balance.Remaining()).To(Equal(0))

				stored, _ := mockRepo.GetBalance(10, 1, 2026)
				Expect(stored).To(BeNil())
			})
		})

		Context("when a balance row exists", func() {
			It("returns the stored row", func() {
				seedBalance(10, 20, 3)
				year := settings.CurrentFinancialYear()

				balance, err := service.GetBalance(10, 1, year)

				Expect(err).ToNot(HaveOccurred())
				Expect(balance.TotalDays).To(Equal(20))
				Expect(balance.Remaining()).To(Equal(17))
			})
		})
	})

	Describe("InitializeBalances", func() {
		BeforeEach(func() {
			mockRepo.leaveTypes[2] = &leave.TypeInfo{ID: 2, Name: "Sick Leave", MaxDaysPerYear: 14}
		})

		It("creates one balance row per active leave type", func() {
			err := service.InitializeBalances(10, 2026)

			Expect(err).ToNot(HaveOccurred())
			annual, _ := mockRepo.GetBalance(10, 1, 2026)
			sick, _ := mockRepo.GetBalance(10, 2, 2026)
			Expect(annual.TotalDays).To(Equal(20))
			Expect(sick.TotalDays).To(Equal(14))
		})

		It("leaves existing rows untouched when run again", func() {
			Expect(service.InitializeBalances(10, 2026)).To(Succeed())

			annual, _ := mockRepo.GetBalance(10, 1, 2026)
			annual.UsedDays = 7

			Expect(service.InitializeBalances(10, 2026)).To(Succeed())

			after, _ := mockRepo.GetBalance(10, 1, 2026)
			Expect(after.UsedDays).To(Equal(7))
			Expect(mockRepo.nextBalance).To(Equal(int64(3)))
		})
	})

	Describe("RequestByID", func() {
		BeforeEach(func() {
			mockRepo.requests[1] = &leave.LeaveRequest{ID: 1, UserID: 10, Status: leave.StatusPending}
		})

		It("returns the owner's own request", func() {
			req, err := service.RequestByID(1, 10, false)
			Expect(err).ToNot(HaveOccurred())
			Expect(req.ID).To(Equal(int64(1)))
		})

		It("denies access to another user's request", func() {
			_, err := service.RequestByID(1, 55, false)
			Expect(err).To(Equal(leave.ErrUnauthorizedAccess))
		})

		It("allows admins to read any request", func() {
			req, err := service.RequestByID(1, 55, true)
			Expect(err).ToNot(HaveOccurred())
			Expect(req.UserID).To(Equal(int64(10)))
		})
	})

	Describe("ListRequests", func() {
		It("rejects an unknown status filter", func() {
			_, err := service.ListRequests(leave.ListFilter{Status: "archived"})
			Expect(err).To(HaveOccurred())
		})

		It("filters by status", func() {
			mockRepo.requests[1] = &leave.LeaveRequest{ID: 1, UserID: 10, Status: leave.StatusPending}
			mockRepo.requests[2] = &leave.LeaveRequest{ID: 2, UserID: 11, Status: leave.StatusApproved}

			resp, err := service.ListRequests(leave.ListFilter{Status: leave.StatusPending, Limit: 10})

			Expect(err).ToNot(HaveOccurred())
			Expect(resp.Requests).To(HaveLen(1))
			Expect(resp.Requests[0].Status).To(Equal(leave.StatusPending))
		})
	})

	Describe("Dashboard", func() {
		It("returns current-year balances and recent requests", func() {
			seedBalance(10, 20, 4)
			mockRepo.requests[1] = &leave.LeaveRequest{ID: 1, UserID: 10, Status: leave.StatusApproved}

			resp, err := service.Dashboard(10)

			Expect(err).ToNot(HaveOccurred())
			Expect(resp.Year).To(Equal(settings.CurrentFinancialYear()))
			Expect(resp.Balances).To(HaveLen(1))
			Expect(resp.Balances[0].RemainingDays).To(Equal(16))
			Expect(resp.Recent).To(HaveLen(1))
		})
	})

	Describe("repository failures", func() {
		It("surfaces creation errors on submit", func() {
			userID := int64(10)
			seedBalance(userID, 20, 0)
			mockRepo.createError = errors.New("database error")
			start := nextMonday()
			dto := leave.SubmitLeaveDTO{
				LeaveTypeID: 1,
				StartDate:   start.Format(dateLayout),
				EndDate:     start.AddDate(0, 0, 1).Format(dateLayout),
				Reason:      "db down",
			}

			_, err := service.Submit(context.Background(), userID, dto)

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("database error"))
		})
	})
})
