package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/leave-management/internal/core/events"
)

// Repository persists audit rows.
type Repository interface {
	Create(log *AuditLog) error
	List(filter ListFilter) ([]AuditLog, int64, error)
}

type ListFilter struct {
	UserID     int64
	Action     string
	EntityType string
	Limit      int
	Offset     int
}

// Subscriber turns bus events into audit_logs rows.
type Subscriber struct {
	repo   Repository
	logger *slog.Logger
}

func NewSubscriber(repo Repository, logger *slog.Logger) *Subscriber {
	return &Subscriber{
		repo:   repo,
		logger: logger,
	}
}

// Register attaches the subscriber to every audited event type.
func (s *Subscriber) Register(bus *events.EventBus) {
	for _, eventType := range []string{
		events.EventTypeUserLoggedIn,
		events.EventTypeUserLoggedOut,
		events.EventTypeLeaveSubmitted,
		events.EventTypeLeaveApproved,
		events.EventTypeLeaveRejected,
	} {
		bus.Subscribe(eventType, s.Handle)
	}
}

func (s *Subscriber) Handle(ctx context.Context, event events.Event) error {
	auditEvent, ok := event.(*events.AuditEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}

	row := &AuditLog{
		UserID:     auditEvent.UserID,
		Action:     auditEvent.Action,
		EntityType: auditEvent.EntityType,
		EntityID:   auditEvent.EntityID,
		OldValues:  marshalValues(auditEvent.OldValues),
		NewValues:  marshalValues(auditEvent.NewValues),
		IPAddress:  auditEvent.IPAddress,
		UserAgent:  auditEvent.UserAgent,
		CreatedAt:  event.OccurredAt(),
	}

	if err := s.repo.Create(row); err != nil {
		s.logger.Error("failed to write audit log",
			"error", err,
			"action", auditEvent.Action,
			"entity_id", auditEvent.EntityID)
		return err
	}

	s.logger.Debug("audit log written",
		"action", auditEvent.Action,
		"entity_type", auditEvent.EntityType,
		"entity_id", auditEvent.EntityID)
	return nil
}

func marshalValues(values map[string]interface{}) string {
	if len(values) == 0 {
		return ""
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return ""
	}
	return string(raw)
}

// Service exposes the audit trail for the admin listing.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

type ListResponse struct {
	Logs   []AuditLog `json:"logs"`
	Total  int64      `json:"total"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
}

func (s *Service) List(filter ListFilter) (*ListResponse, error) {
	logs, total, err := s.repo.List(filter)
	if err != nil {
		s.logger.Error("failed to list audit logs", "error", err)
		return nil, err
	}
	return &ListResponse{
		Logs:   logs,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, nil
}
