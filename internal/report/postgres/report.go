package postgres

import (
	"time"

	"github.com/frahmantamala/leave-management/internal/report"
	"gorm.io/gorm"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) report.Repository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) LeaveTypeUsage(yearStart, yearEnd time.Time) ([]report.LeaveTypeUsage, error) {
	var rows []report.LeaveTypeUsage
	err := r.db.Raw(`
		SELECT lt.id AS leave_type_id,
		       lt.leave_name,
		       lt.color_code,
		       COUNT(lr.id) AS request_count,
		       COALESCE(SUM(lr.number_of_days), 0) AS total_days,
		       COUNT(DISTINCT lr.user_id) AS employee_count
		FROM leave_types lt
		LEFT JOIN leave_requests lr
		       ON lr.leave_type_id = lt.id
		      AND lr.status = 'approved'
		      AND lr.start_date >= ? AND lr.start_date < ?
		GROUP BY lt.id, lt.leave_name, lt.color_code
		ORDER BY total_days DESC`,
		yearStart, yearEnd).Scan(&rows).Error
	return rows, err
}

func (r *ReportRepository) DepartmentUsage(yearStart, yearEnd time.Time) ([]report.DepartmentUsage, error) {
	var rows []report.DepartmentUsage
	err := r.db.Raw(`
		SELECT d.id AS department_id,
		       d.department_name,
		       COUNT(lr.id) AS request_count,
		       COALESCE(SUM(lr.number_of_days), 0) AS total_days,
		       COUNT(DISTINCT lr.user_id) AS employee_count
		FROM departments d
		JOIN users u ON u.department_id = d.id
		LEFT JOIN leave_requests lr
		       ON lr.user_id = u.id
		      AND lr.status = 'approved'
		      AND lr.start_date >= ? AND lr.start_date < ?
		GROUP BY d.id, d.department_name
		ORDER BY total_days DESC`,
		yearStart, yearEnd).Scan(&rows).Error
	return rows, err
}

func (r *ReportRepository) StatusCounts(yearStart, yearEnd time.Time) ([]report.StatusCount, error) {
	var rows []report.StatusCount
	err := r.db.Raw(`
		SELECT status, COUNT(*) AS count
		FROM leave_requests
		WHERE start_date >= ? AND start_date < ?
		GROUP BY status`,
		yearStart, yearEnd).Scan(&rows).Error
	return rows, err
}

func (r *ReportRepository) EmployeeCounts() (int64, int64, error) {
	var total, active int64
	if err := r.db.Table("users").Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.Table("users").Where("status = ?", "active").Count(&active).Error; err != nil {
		return 0, 0, err
	}
	return total, active, nil
}

func (r *ReportRepository) PendingRequestCount() (int64, error) {
	var count int64
	err := r.db.Table("leave_requests").Where("status = ?", "pending").Count(&count).Error
	return count, err
}

func (r *ReportRepository) ApprovedOnDay(day time.Time) (int64, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var count int64
	err := r.db.Table("leave_requests").
		Where("status = ? AND approval_date >= ? AND approval_date < ?", "approved", start, end).
		Count(&count).Error
	return count, err
}

func (r *ReportRepository) OnLeaveOn(day time.Time) (int64, error) {
	target := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	var count int64
	err := r.db.Table("leave_requests").
		Where("status = ? AND start_date <= ? AND end_date >= ?", "approved", target, target).
		Distinct("user_id").
		Count(&count).Error
	return count, err
}

func (r *ReportRepository) RecentRequests(limit int) ([]report.RecentDetail, error) {
	var rows []report.RecentDetail
	err := r.db.Raw(`
		SELECT lr.id AS request_id,
		       u.first_name || ' ' || u.last_name AS employee_name,
		       lt.leave_name,
		       lr.start_date,
		       lr.end_date,
		       lr.number_of_days,
		       lr.status
		FROM leave_requests lr
		JOIN users u ON u.id = lr.user_id
		JOIN leave_types lt ON lt.id = lr.leave_type_id
		ORDER BY lr.created_at DESC
		LIMIT ?`, limit).Scan(&rows).Error
	return rows, err
}
