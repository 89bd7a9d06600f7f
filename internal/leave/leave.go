package leave

import (
	"errors"
	"time"
)

// Status is the closed set of leave request states. Cancelled exists in
// the vocabulary and the schema, but no operation currently transitions
// a request into it.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed from s.
func (s Status) Terminal() bool {
	return s != StatusPending
}

// LeaveRequest is a single submission covering an inclusive date range.
// NumberOfDays is the working-day count computed at submission time.
type LeaveRequest struct {
	ID               int64      `json:"id" gorm:"primaryKey"`
	UserID           int64      `json:"user_id" gorm:"column:user_id;not null;index"`
	LeaveTypeID      int64      `json:"leave_type_id" gorm:"column:leave_type_id;not null"`
	StartDate        time.Time  `json:"start_date" gorm:"column:start_date;type:date;not null"`
	EndDate          time.Time  `json:"end_date" gorm:"column:end_date;type:date;not null"`
	NumberOfDays     int        `json:"number_of_days" gorm:"column:number_of_days;not null"`
	Reason           string     `json:"reason" gorm:"column:reason;not null"`
	Status           Status     `json:"status" gorm:"column:status;default:pending"`
	ApproverID       *int64     `json:"approver_id,omitempty" gorm:"column:approver_id"`
	ApprovalDate     *time.Time `json:"approval_date,omitempty" gorm:"column:approval_date"`
	ApprovalComments string     `json:"approval_comments,omitempty" gorm:"column:approval_comments"`
	CreatedAt        time.Time  `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time  `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

func (r *LeaveRequest) CanBeApproved() bool {
	return r.Status == StatusPending
}

func (r *LeaveRequest) CanBeRejected() bool {
	return r.Status == StatusPending
}

// LeaveBalance tracks allocated vs consumed days per user, leave type
// and financial year. Remaining is derived, never stored.
type LeaveBalance struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	UserID      int64     `json:"user_id" gorm:"column:user_id;not null;uniqueIndex:idx_balance_owner"`
	LeaveTypeID int64     `json:"leave_type_id" gorm:"column:leave_type_id;not null;uniqueIndex:idx_balance_owner"`
	Year        int       `json:"year" gorm:"column:year;not null;uniqueIndex:idx_balance_owner"`
	TotalDays   int       `json:"total_days" gorm:"column:total_days;not null"`
	UsedDays    int       `json:"used_days" gorm:"column:used_days;not null;default:0"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (LeaveBalance) TableName() string {
	return "leave_balances"
}

func (b *LeaveBalance) Remaining() int {
	return b.TotalDays - b.UsedDays
}

// Domain errors
var (
	ErrRequestNotFound      = errors.New("leave request not found")
	ErrLeaveTypeNotFound    = errors.New("leave type not found")
	ErrInsufficientBalance  = errors.New("insufficient leave balance")
	ErrOverlappingRequest   = errors.New("overlapping leave request exists")
	ErrInvalidRequestStatus = errors.New("invalid leave request status for this operation")
	ErrUnauthorizedAccess   = errors.New("unauthorized access to leave request")
)
