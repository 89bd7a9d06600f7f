package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/leave-management/internal"
	"github.com/frahmantamala/leave-management/internal/core/events"
)

// TypeInfo is the slice of a leave type the workflow needs: allocation
// size and display fields.
type TypeInfo struct {
	ID              int64
	Name            string
	ColorCode       string
	MaxDaysPerYear  int
	RequireDocument bool
}

// Repository defines the data access methods for leave requests and
// balances. The mutating request operations are transactional: request
// insert/update and the matching balance change commit or roll back
// together.
type Repository interface {
	GetActiveLeaveType(id int64) (*TypeInfo, error)
	ActiveLeaveTypes() ([]*TypeInfo, error)

	GetBalance(userID, leaveTypeID int64, year int) (*LeaveBalance, error)
	CreateBalance(balance *LeaveBalance) error
	BalancesForUser(userID int64, year int) ([]BalanceView, error)

	HasOverlapping(userID int64, start, end time.Time) (bool, error)
	CreateRequestWithReservation(req *LeaveRequest, year int) error
	GetRequestByID(id int64) (*LeaveRequest, error)
	ApproveRequest(id, approverID int64, comments string, at time.Time) error
	RejectRequestWithRelease(req *LeaveRequest, approverID int64, comments string, at time.Time, year int) error
	ListByUser(userID int64, limit, offset int) ([]*LeaveRequest, error)
	List(filter ListFilter) ([]*LeaveRequest, int64, error)
}

// EventPublisher is the slice of the event bus the workflow uses.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Service handles leave balance bookkeeping and the request workflow.
type Service struct {
	repo     Repository
	bus      EventPublisher
	settings Settings
	logger   *slog.Logger
}

func NewService(repo Repository, bus EventPublisher, settings Settings, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		bus:      bus,
		settings: settings,
		logger:   logger,
	}
}

func (s *Service) Settings() Settings {
	return s.settings
}

func (s *Service) CurrentFinancialYear() int {
	return s.settings.CurrentFinancialYear()
}

// GetBalance returns the stored balance row, or a zero-valued default
// that is not persisted.
func (s *Service) GetBalance(userID, leaveTypeID int64, year int) (*LeaveBalance, error) {
	balance, err := s.repo.GetBalance(userID, leaveTypeID, year)
	if err != nil {
		s.logger.Error("failed to get balance", "error", err, "user_id", userID, "leave_type_id", leaveTypeID, "year", year)
		return nil, err
	}
	if balance == nil {
		return &LeaveBalance{UserID: userID, LeaveTypeID: leaveTypeID, Year: year}, nil
	}
	return balance, nil
}

// InitializeBalances creates one balance row per active leave type for
// the given user and year, skipping rows that already exist. Safe to
// run repeatedly.
func (s *Service) InitializeBalances(userID int64, year int) error {
	types, err := s.repo.ActiveLeaveTypes()
	if err != nil {
		s.logger.Error("failed to list leave types for balance init", "error", err, "user_id", userID)
		return err
	}

	for _, lt := range types {
		existing, err := s.repo.GetBalance(userID, lt.ID, year)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		balance := &LeaveBalance{
			UserID:      userID,
			LeaveTypeID: lt.ID,
			Year:        year,
			TotalDays:   lt.MaxDaysPerYear,
			UsedDays:    0,
		}
		if err := s.repo.CreateBalance(balance); err != nil {
			s.logger.Error("failed to create balance", "error", err, "user_id", userID, "leave_type_id", lt.ID)
			return err
		}
	}

	s.logger.Info("balances initialized", "user_id", userID, "year", year, "leave_types", len(types))
	return nil
}

// Submit validates and stores a new pending leave request, reserving
// the working days against the user's balance in the same transaction.
//
// The balance check and the reservation are not guarded by row-level
// locking, so two simultaneous submissions by the same user can both
// pass the check before either commits. Preserved as-is; see DESIGN.md.
func (s *Service) Submit(ctx context.Context, userID int64, dto SubmitLeaveDTO) (*LeaveRequest, error) {
	start, end, err := dto.Parse()
	if err != nil {
		s.logger.Warn("leave submission validation failed", "error", err, "user_id", userID)
		return nil, err
	}

	leaveType, err := s.repo.GetActiveLeaveType(dto.LeaveTypeID)
	if err != nil {
		s.logger.Warn("leave type lookup failed", "error", err, "leave_type_id", dto.LeaveTypeID)
		return nil, ErrLeaveTypeNotFound
	}

	overlapping, err := s.repo.HasOverlapping(userID, start, end)
	if err != nil {
		s.logger.Error("overlap check failed", "error", err, "user_id", userID)
		return nil, err
	}
	if overlapping {
		return nil, ErrOverlappingRequest
	}

	days := s.settings.WorkingDays(start, end)
	if days == 0 {
		return nil, internal.NewValidationFieldError("start_date", "date range contains no working days", internal.ErrCodeInvalidDateRange)
	}
	year := s.settings.CurrentFinancialYear()

	balance, err := s.GetBalance(userID, leaveType.ID, year)
	if err != nil {
		return nil, err
	}
	if days > balance.Remaining() {
		s.logger.Warn("insufficient balance",
			"user_id", userID,
			"leave_type_id", leaveType.ID,
			"requested_days", days,
			"remaining_days", balance.Remaining())
		return nil, ErrInsufficientBalance
	}

	req := &LeaveRequest{
		UserID:       userID,
		LeaveTypeID:  leaveType.ID,
		StartDate:    start,
		EndDate:      end,
		NumberOfDays: days,
		Reason:       dto.Reason,
		Status:       StatusPending,
	}

	if err := s.repo.CreateRequestWithReservation(req, year); err != nil {
		s.logger.Error("failed to create leave request", "error", err, "user_id", userID)
		return nil, err
	}

	s.publish(ctx, events.NewLeaveSubmittedEvent(userID, req.ID, map[string]interface{}{
		"leave_type_id":  req.LeaveTypeID,
		"start_date":     req.StartDate.Format(dateLayout),
		"end_date":       req.EndDate.Format(dateLayout),
		"number_of_days": req.NumberOfDays,
		"status":         string(req.Status),
	}, internal.ClientIPFromContext(ctx), internal.UserAgentFromContext(ctx)))

	s.logger.Info("leave request submitted",
		"request_id", req.ID,
		"user_id", userID,
		"leave_type_id", leaveType.ID,
		"days", days,
		"year", year)

	return req, nil
}

// Approve transitions a pending request to approved. The days were
// already reserved at submission, so the balance is untouched.
func (s *Service) Approve(ctx context.Context, requestID, approverID int64, comments string) error {
	req, err := s.repo.GetRequestByID(requestID)
	if err != nil {
		s.logger.Error("request not found for approval", "error", err, "request_id", requestID)
		return ErrRequestNotFound
	}

	if !req.CanBeApproved() {
		s.logger.Warn("cannot approve request in current status",
			"request_id", requestID,
			"current_status", req.Status)
		return ErrInvalidRequestStatus
	}

	now := time.Now()
	if err := s.repo.ApproveRequest(requestID, approverID, comments, now); err != nil {
		s.logger.Error("failed to approve request", "error", err, "request_id", requestID)
		return err
	}

	s.publish(ctx, events.NewLeaveApprovedEvent(approverID, requestID,
		map[string]interface{}{"status": string(StatusPending)},
		map[string]interface{}{"status": string(StatusApproved), "approver_id": approverID},
		internal.ClientIPFromContext(ctx), internal.UserAgentFromContext(ctx)))

	s.logger.Info("leave request approved", "request_id", requestID, "approver_id", approverID)
	return nil
}

// Reject transitions a pending request to rejected and releases the
// reserved days, in one transaction. The affected year is derived from
// the request's start date; if the financial year boundary moved
// between submission and review the release can land in a different
// year than the reservation.
func (s *Service) Reject(ctx context.Context, requestID, approverID int64, comments string) error {
	req, err := s.repo.GetRequestByID(requestID)
	if err != nil {
		s.logger.Error("request not found for rejection", "error", err, "request_id", requestID)
		return ErrRequestNotFound
	}

	if !req.CanBeRejected() {
		s.logger.Warn("cannot reject request in current status",
			"request_id", requestID,
			"current_status", req.Status)
		return ErrInvalidRequestStatus
	}

	year := s.settings.FinancialYear(req.StartDate)
	now := time.Now()
	if err := s.repo.RejectRequestWithRelease(req, approverID, comments, now, year); err != nil {
		s.logger.Error("failed to reject request", "error", err, "request_id", requestID)
		return err
	}

	s.publish(ctx, events.NewLeaveRejectedEvent(approverID, requestID,
		map[string]interface{}{"status": string(StatusPending)},
		map[string]interface{}{"status": string(StatusRejected), "approver_id": approverID},
		internal.ClientIPFromContext(ctx), internal.UserAgentFromContext(ctx)))

	s.logger.Info("leave request rejected",
		"request_id", requestID,
		"approver_id", approverID,
		"released_days", req.NumberOfDays,
		"year", year)
	return nil
}

// RequestByID retrieves a request, limiting employees to their own.
func (s *Service) RequestByID(requestID, userID int64, isAdmin bool) (*LeaveRequest, error) {
	req, err := s.repo.GetRequestByID(requestID)
	if err != nil {
		return nil, ErrRequestNotFound
	}
	if !isAdmin && req.UserID != userID {
		s.logger.Warn("unauthorized access to leave request", "request_id", requestID, "user_id", userID)
		return nil, ErrUnauthorizedAccess
	}
	return req, nil
}

func (s *Service) RequestsForUser(userID int64, limit, offset int) ([]*LeaveRequest, error) {
	requests, err := s.repo.ListByUser(userID, limit, offset)
	if err != nil {
		s.logger.Error("failed to list user requests", "error", err, "user_id", userID)
		return nil, err
	}
	return requests, nil
}

// ListRequests is the admin-wide listing with optional status filter.
func (s *Service) ListRequests(filter ListFilter) (*RequestListResponse, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("invalid status filter %q", filter.Status)
	}

	requests, total, err := s.repo.List(filter)
	if err != nil {
		s.logger.Error("failed to list requests", "error", err, "status", filter.Status)
		return nil, err
	}

	return &RequestListResponse{
		Requests: requests,
		Total:    total,
		Limit:    filter.Limit,
		Offset:   filter.Offset,
	}, nil
}

// Dashboard assembles the employee's current-year balances and their
// most recent requests.
func (s *Service) Dashboard(userID int64) (*DashboardResponse, error) {
	year := s.settings.CurrentFinancialYear()

	balances, err := s.repo.BalancesForUser(userID, year)
	if err != nil {
		s.logger.Error("failed to load balances for dashboard", "error", err, "user_id", userID)
		return nil, err
	}

	recent, err := s.repo.ListByUser(userID, 5, 0)
	if err != nil {
		s.logger.Error("failed to load recent requests for dashboard", "error", err, "user_id", userID)
		return nil, err
	}

	return &DashboardResponse{
		Year:     year,
		Balances: balances,
		Recent:   recent,
	}, nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish event", "error", err, "event_type", event.EventType())
	}
}
