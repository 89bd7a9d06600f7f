package postgres

import (
	"time"

	leavetypeDatamodel "github.com/frahmantamala/leave-management/internal/core/datamodel/leavetype"
	"github.com/frahmantamala/leave-management/internal/leave"
	"gorm.io/gorm"
)

// LeaveRepository implements the leave.Repository interface using GORM.
type LeaveRepository struct {
	db *gorm.DB
}

func NewLeaveRepository(db *gorm.DB) leave.Repository {
	return &LeaveRepository{db: db}
}

func (r *LeaveRepository) GetActiveLeaveType(id int64) (*leave.TypeInfo, error) {
	var lt leavetypeDatamodel.LeaveType
	err := r.db.Where("id = ? AND status = ?", id, "active").First(&lt).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, leave.ErrLeaveTypeNotFound
		}
		return nil, err
	}
	return toTypeInfo(&lt), nil
}

func (r *LeaveRepository) ActiveLeaveTypes() ([]*leave.TypeInfo, error) {
	var types []leavetypeDatamodel.LeaveType
	err := r.db.Where("status = ?", "active").Order("leave_name ASC").Find(&types).Error
	if err != nil {
		return nil, err
	}
	infos := make([]*leave.TypeInfo, len(types))
	for i := range types {
		infos[i] = toTypeInfo(&types[i])
	}
	return infos, nil
}

func (r *LeaveRepository) GetBalance(userID, leaveTypeID int64, year int) (*leave.LeaveBalance, error) {
	var balance leave.LeaveBalance
	err := r.db.Where("user_id = ? AND leave_type_id = ? AND year = ?", userID, leaveTypeID, year).
		First(&balance).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &balance, nil
}

func (r *LeaveRepository) CreateBalance(balance *leave.LeaveBalance) error {
	return r.db.Create(balance).Error
}

func (r *LeaveRepository) BalancesForUser(userID int64, year int) ([]leave.BalanceView, error) {
	var views []leave.BalanceView
	err := r.db.Model(&leave.LeaveBalance{}).
		Select(`leave_balances.leave_type_id,
			leave_types.leave_name,
			leave_types.color_code,
			leave_balances.year,
			leave_balances.total_days,
			leave_balances.used_days,
			leave_balances.total_days - leave_balances.used_days AS remaining_days`).
		Joins("JOIN leave_types ON leave_types.id = leave_balances.leave_type_id").
		Where("leave_balances.user_id = ? AND leave_balances.year = ?", userID, year).
		Order("leave_types.leave_name ASC").
		Scan(&views).Error
	return views, err
}

func (r *LeaveRepository) HasOverlapping(userID int64, start, end time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&leave.LeaveRequest{}).
		Where("user_id = ? AND status IN ? AND start_date <= ? AND end_date >= ?",
			userID, []leave.Status{leave.StatusPending, leave.StatusApproved}, end, start).
		Count(&count).Error
	return count > 0, err
}

// CreateRequestWithReservation inserts the pending request and adds its
// days to used_days in one transaction.
func (r *LeaveRepository) CreateRequestWithReservation(req *leave.LeaveRequest, year int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(req).Error; err != nil {
			return err
		}
		return reserveDays(tx, req.UserID, req.LeaveTypeID, year, req.NumberOfDays)
	})
}

func (r *LeaveRepository) GetRequestByID(id int64) (*leave.LeaveRequest, error) {
	var req leave.LeaveRequest
	err := r.db.Where("id = ?", id).First(&req).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, leave.ErrRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *LeaveRepository) ApproveRequest(id, approverID int64, comments string, at time.Time) error {
	return r.db.Model(&leave.LeaveRequest{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":            leave.StatusApproved,
			"approver_id":       approverID,
			"approval_date":     at,
			"approval_comments": comments,
			"updated_at":        time.Now(),
		}).Error
}

// RejectRequestWithRelease flips the request to rejected and restores
// the reserved days, floored at zero, in one transaction.
func (r *LeaveRepository) RejectRequestWithRelease(req *leave.LeaveRequest, approverID int64, comments string, at time.Time, year int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&leave.LeaveRequest{}).
			Where("id = ?", req.ID).
			Updates(map[string]interface{}{
				"status":            leave.StatusRejected,
				"approver_id":       approverID,
				"approval_date":     at,
				"approval_comments": comments,
				"updated_at":        time.Now(),
			}).Error
		if err != nil {
			return err
		}
		return releaseDays(tx, req.UserID, req.LeaveTypeID, year, req.NumberOfDays)
	})
}

func (r *LeaveRepository) ListByUser(userID int64, limit, offset int) ([]*leave.LeaveRequest, error) {
	var requests []*leave.LeaveRequest
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&requests).Error
	return requests, err
}

func (r *LeaveRepository) List(filter leave.ListFilter) ([]*leave.LeaveRequest, int64, error) {
	query := r.db.Model(&leave.LeaveRequest{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var requests []*leave.LeaveRequest
	err := query.
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&requests).Error
	return requests, total, err
}

func reserveDays(tx *gorm.DB, userID, leaveTypeID int64, year, days int) error {
	var balance leave.LeaveBalance
	if err := tx.Where("user_id = ? AND leave_type_id = ? AND year = ?", userID, leaveTypeID, year).
		First(&balance).Error; err != nil {
		return err
	}
	return tx.Model(&leave.LeaveBalance{}).
		Where("id = ?", balance.ID).
		Updates(map[string]interface{}{
			"used_days":  balance.UsedDays + days,
			"updated_at": time.Now(),
		}).Error
}

// releaseDays requires the balance row for the given year to exist.
// A missing row fails the lookup and rolls back the enclosing
// rejection, leaving the request pending until the balance is
// initialized for that year.
func releaseDays(tx *gorm.DB, userID, leaveTypeID int64, year, days int) error {
	var balance leave.LeaveBalance
	if err := tx.Where("user_id = ? AND leave_type_id = ? AND year = ?", userID, leaveTypeID, year).
		First(&balance).Error; err != nil {
		return err
	}
	used := balance.UsedDays - days
	if used < 0 {
		used = 0
	}
	return tx.Model(&leave.LeaveBalance{}).
		Where("id = ?", balance.ID).
		Updates(map[string]interface{}{
			"used_days":  used,
			"updated_at": time.Now(),
		}).Error
}

func toTypeInfo(lt *leavetypeDatamodel.LeaveType) *leave.TypeInfo {
	return &leave.TypeInfo{
		ID:              lt.ID,
		Name:            lt.LeaveName,
		ColorCode:       lt.ColorCode,
		MaxDaysPerYear:  lt.MaxDaysPerYear,
		RequireDocument: lt.RequireDocument,
	}
}
