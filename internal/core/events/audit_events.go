package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeUserLoggedIn   = "auth.login"
	EventTypeUserLoggedOut  = "auth.logout"
	EventTypeLeaveSubmitted = "leave.submitted"
	EventTypeLeaveApproved  = "leave.approved"
	EventTypeLeaveRejected  = "leave.rejected"
)

// AuditEvent is the single event shape the audit subscriber consumes.
// Action mirrors the audit_logs.action column; OldValues/NewValues are
// the before/after snapshots persisted as JSON.
type AuditEvent struct {
	BaseEvent
	UserID     int64                  `json:"user_id"`
	Action     string                 `json:"action"`
	EntityType string                 `json:"entity_type"`
	EntityID   int64                  `json:"entity_id"`
	OldValues  map[string]interface{} `json:"old_values,omitempty"`
	NewValues  map[string]interface{} `json:"new_values,omitempty"`
	IPAddress  string                 `json:"ip_address"`
	UserAgent  string                 `json:"user_agent"`
}

func newAuditEvent(eventType, action string, userID int64, entityType string, entityID int64) *AuditEvent {
	return &AuditEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_id":     userID,
				"action":      action,
				"entity_type": entityType,
				"entity_id":   entityID,
			},
		},
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
	}
}

func NewUserLoggedInEvent(userID int64, ip, userAgent string) *AuditEvent {
	e := newAuditEvent(EventTypeUserLoggedIn, "LOGIN", userID, "users", userID)
	e.IPAddress = ip
	e.UserAgent = userAgent
	return e
}

func NewUserLoggedOutEvent(userID int64, ip, userAgent string) *AuditEvent {
	e := newAuditEvent(EventTypeUserLoggedOut, "LOGOUT", userID, "users", userID)
	e.IPAddress = ip
	e.UserAgent = userAgent
	return e
}

func NewLeaveSubmittedEvent(userID, requestID int64, newValues map[string]interface{}, ip, userAgent string) *AuditEvent {
	e := newAuditEvent(EventTypeLeaveSubmitted, "LEAVE_SUBMITTED", userID, "leave_requests", requestID)
	e.NewValues = newValues
	e.IPAddress = ip
	e.UserAgent = userAgent
	return e
}

func NewLeaveApprovedEvent(approverID, requestID int64, oldValues, newValues map[string]interface{}, ip, userAgent string) *AuditEvent {
	e := newAuditEvent(EventTypeLeaveApproved, "LEAVE_APPROVED", approverID, "leave_requests", requestID)
	e.OldValues = oldValues
	e.NewValues = newValues
	e.IPAddress = ip
	e.UserAgent = userAgent
	return e
}

func NewLeaveRejectedEvent(approverID, requestID int64, oldValues, newValues map[string]interface{}, ip, userAgent string) *AuditEvent {
	e := newAuditEvent(EventTypeLeaveRejected, "LEAVE_REJECTED", approverID, "leave_requests", requestID)
	e.OldValues = oldValues
	e.NewValues = newValues
	e.IPAddress = ip
	e.UserAgent = userAgent
	return e
}
