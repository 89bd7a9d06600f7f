package report

import (
	"log/slog"
	"time"
)

// Repository runs the aggregate queries behind the reports.
type Repository interface {
	LeaveTypeUsage(yearStart, yearEnd time.Time) ([]LeaveTypeUsage, error)
	DepartmentUsage(yearStart, yearEnd time.Time) ([]DepartmentUsage, error)
	StatusCounts(yearStart, yearEnd time.Time) ([]StatusCount, error)
	EmployeeCounts() (total, active int64, err error)
	PendingRequestCount() (int64, error)
	ApprovedOnDay(day time.Time) (int64, error)
	OnLeaveOn(day time.Time) (int64, error)
	RecentRequests(limit int) ([]RecentDetail, error)
}

// YearRange resolves a financial year number to its date span.
type YearRange interface {
	FinancialYearRange(year int) (start, end time.Time)
	CurrentFinancialYear() int
}

type Service struct {
	repo   Repository
	years  YearRange
	logger *slog.Logger
}

func NewService(repo Repository, years YearRange, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		years:  years,
		logger: logger,
	}
}

func (s *Service) resolveYear(year int) (time.Time, time.Time, int) {
	if year == 0 {
		year = s.years.CurrentFinancialYear()
	}
	start, end := s.years.FinancialYearRange(year)
	return start, end, year
}

type UsageReport struct {
	Year         int               `json:"year"`
	ByLeaveType  []LeaveTypeUsage  `json:"by_leave_type"`
	ByDepartment []DepartmentUsage `json:"by_department"`
	ByStatus     []StatusCount     `json:"by_status"`
}

// Usage builds the combined usage report for a financial year. A zero
// year means the current one.
func (s *Service) Usage(year int) (*UsageReport, error) {
	start, end, resolved := s.resolveYear(year)

	byType, err := s.repo.LeaveTypeUsage(start, end)
	if err != nil {
		s.logger.Error("failed to build leave type usage", "error", err, "year", resolved)
		return nil, err
	}

	byDepartment, err := s.repo.DepartmentUsage(start, end)
	if err != nil {
		s.logger.Error("failed to build department usage", "error", err, "year", resolved)
		return nil, err
	}

	byStatus, err := s.repo.StatusCounts(start, end)
	if err != nil {
		s.logger.Error("failed to build status counts", "error", err, "year", resolved)
		return nil, err
	}

	return &UsageReport{
		Year:         resolved,
		ByLeaveType:  byType,
		ByDepartment: byDepartment,
		ByStatus:     byStatus,
	}, nil
}

// Dashboard assembles the admin landing-page summary.
func (s *Service) Dashboard() (*AdminDashboard, error) {
	start, end, _ := s.resolveYear(0)

	total, active, err := s.repo.EmployeeCounts()
	if err != nil {
		s.logger.Error("failed to count employees", "error", err)
		return nil, err
	}

	pending, err := s.repo.PendingRequestCount()
	if err != nil {
		s.logger.Error("failed to count pending requests", "error", err)
		return nil, err
	}

	today := time.Now()
	approvedToday, err := s.repo.ApprovedOnDay(today)
	if err != nil {
		s.logger.Error("failed to count approvals today", "error", err)
		return nil, err
	}

	onLeave, err := s.repo.OnLeaveOn(today)
	if err != nil {
		s.logger.Error("failed to count employees on leave", "error", err)
		return nil, err
	}

	statusCounts, err := s.repo.StatusCounts(start, end)
	if err != nil {
		s.logger.Error("failed to build status counts", "error", err)
		return nil, err
	}

	recent, err := s.repo.RecentRequests(10)
	if err != nil {
		s.logger.Error("failed to load recent requests", "error", err)
		return nil, err
	}

	return &AdminDashboard{
		TotalEmployees:  total,
		ActiveEmployees: active,
		PendingRequests: pending,
		ApprovedToday:   approvedToday,
		OnLeaveToday:    onLeave,
		StatusCounts:    statusCounts,
		RecentRequests:  recent,
	}, nil
}
