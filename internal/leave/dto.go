package leave

import (
	"time"

	"github.com/frahmantamala/leave-management/internal"
	"github.com/frahmantamala/leave-management/internal/core/common/validation"
)

// SubmitLeaveDTO is the request payload for submitting a leave request.
// Dates arrive as YYYY-MM-DD form values.
type SubmitLeaveDTO struct {
	LeaveTypeID int64  `json:"leave_type_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Reason      string `json:"reason"`
}

const dateLayout = "2006-01-02"

// Parse validates the payload and returns the parsed date range.
func (dto SubmitLeaveDTO) Parse() (start, end time.Time, err error) {
	if dto.LeaveTypeID <= 0 {
		return time.Time{}, time.Time{}, internal.NewValidationFieldError("leave_type_id", "please select a leave type", internal.ErrCodeValidationFailed)
	}
	start, perr := time.Parse(dateLayout, dto.StartDate)
	if perr != nil {
		return time.Time{}, time.Time{}, internal.NewValidationFieldError("start_date", "start date must be in YYYY-MM-DD format", internal.ErrCodeInvalidDateRange)
	}
	end, perr = time.Parse(dateLayout, dto.EndDate)
	if perr != nil {
		return time.Time{}, time.Time{}, internal.NewValidationFieldError("end_date", "end date must be in YYYY-MM-DD format", internal.ErrCodeInvalidDateRange)
	}
	if verr := validation.ValidateDateRange(start, end); verr != nil {
		return time.Time{}, time.Time{}, verr
	}
	if verr := validation.ValidateReason(dto.Reason); verr != nil {
		return time.Time{}, time.Time{}, verr
	}
	return start, end, nil
}

// DecisionDTO carries an admin's approval or rejection comments.
type DecisionDTO struct {
	Comments string `json:"comments"`
}

// ListFilter narrows admin request listings.
type ListFilter struct {
	Status Status
	Limit  int
	Offset int
}

type RequestListResponse struct {
	Requests []*LeaveRequest `json:"requests"`
	Total    int64           `json:"total"`
	Limit    int             `json:"limit"`
	Offset   int             `json:"offset"`
}

// BalanceView is a balance row with its derived remaining days, joined
// with the leave type's display fields.
type BalanceView struct {
	LeaveTypeID   int64  `json:"leave_type_id"`
	LeaveName     string `json:"leave_name"`
	ColorCode     string `json:"color_code"`
	Year          int    `json:"year"`
	TotalDays     int    `json:"total_days"`
	UsedDays      int    `json:"used_days"`
	RemainingDays int    `json:"remaining_days"`
}

// DashboardResponse is the employee dashboard payload: current-year
// balances plus the most recent requests.
type DashboardResponse struct {
	Year     int             `json:"year"`
	Balances []BalanceView   `json:"balances"`
	Recent   []*LeaveRequest `json:"recent_requests"`
}
