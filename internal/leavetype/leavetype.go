package leavetype

import (
	"errors"
	"time"

	leavetypeDatamodel "github.com/frahmantamala/leave-management/internal/core/datamodel/leavetype"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"

	defaultColorCode = "#1E88E5"
)

type LeaveType struct {
	ID               int64     `json:"id"`
	LeaveName        string    `json:"leave_name"`
	Description      string    `json:"description"`
	MaxDaysPerYear   int       `json:"max_days_per_year"`
	CarryForward     bool      `json:"carry_forward"`
	CarryForwardDays int       `json:"carry_forward_days"`
	RequireDocument  bool      `json:"require_document"`
	ColorCode        string    `json:"color_code"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (lt *LeaveType) IsActive() bool {
	return lt.Status == StatusActive
}

func (lt *LeaveType) Deactivate() {
	lt.Status = StatusInactive
	lt.UpdatedAt = time.Now()
}

var (
	ErrNotFound      = errors.New("leave type not found")
	ErrDuplicateName = errors.New("leave type name already in use")
)

func ToDataModel(lt *LeaveType) *leavetypeDatamodel.LeaveType {
	return &leavetypeDatamodel.LeaveType{
		ID:               lt.ID,
		LeaveName:        lt.LeaveName,
		Description:      lt.Description,
		MaxDaysPerYear:   lt.MaxDaysPerYear,
		CarryForward:     lt.CarryForward,
		CarryForwardDays: lt.CarryForwardDays,
		RequireDocument:  lt.RequireDocument,
		ColorCode:        lt.ColorCode,
		Status:           lt.Status,
		CreatedAt:        lt.CreatedAt,
		UpdatedAt:        lt.UpdatedAt,
	}
}

func FromDataModel(lt *leavetypeDatamodel.LeaveType) *LeaveType {
	return &LeaveType{
		ID:               lt.ID,
		LeaveName:        lt.LeaveName,
		Description:      lt.Description,
		MaxDaysPerYear:   lt.MaxDaysPerYear,
		CarryForward:     lt.CarryForward,
		CarryForwardDays: lt.CarryForwardDays,
		RequireDocument:  lt.RequireDocument,
		ColorCode:        lt.ColorCode,
		Status:           lt.Status,
		CreatedAt:        lt.CreatedAt,
		UpdatedAt:        lt.UpdatedAt,
	}
}
