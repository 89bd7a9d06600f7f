package report

// LeaveTypeUsage aggregates approved leave per type for a financial
// year.
type LeaveTypeUsage struct {
	LeaveTypeID   int64  `json:"leave_type_id"`
	LeaveName     string `json:"leave_name"`
	ColorCode     string `json:"color_code"`
	RequestCount  int64  `json:"request_count"`
	TotalDays     int64  `json:"total_days"`
	EmployeeCount int64  `json:"employee_count"`
}

// DepartmentUsage aggregates approved leave per department.
type DepartmentUsage struct {
	DepartmentID   int64  `json:"department_id"`
	DepartmentName string `json:"department_name"`
	RequestCount   int64  `json:"request_count"`
	TotalDays      int64  `json:"total_days"`
	EmployeeCount  int64  `json:"employee_count"`
}

// StatusCount is the number of requests in each workflow status.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// AdminDashboard is the summary block on the admin landing page.
type AdminDashboard struct {
	TotalEmployees  int64          `json:"total_employees"`
	ActiveEmployees int64          `json:"active_employees"`
	PendingRequests int64          `json:"pending_requests"`
	ApprovedToday   int64          `json:"approved_today"`
	OnLeaveToday    int64          `json:"on_leave_today"`
	StatusCounts    []StatusCount  `json:"status_counts"`
	RecentRequests  []RecentDetail `json:"recent_requests"`
}

// RecentDetail is a request row joined with the requester and leave
// type names for display.
type RecentDetail struct {
	RequestID    int64  `json:"request_id"`
	EmployeeName string `json:"employee_name"`
	LeaveName    string `json:"leave_name"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	NumberOfDays int    `json:"number_of_days"`
	Status       string `json:"status"`
}
