package leavetype

import "time"

type LeaveType struct {
	ID               int64     `gorm:"primaryKey"`
	LeaveName        string    `gorm:"column:leave_name;uniqueIndex;not null"`
	Description      string    `gorm:"column:description"`
	MaxDaysPerYear   int       `gorm:"column:max_days_per_year;not null"`
	CarryForward     bool      `gorm:"column:carry_forward;default:false"`
	CarryForwardDays int       `gorm:"column:carry_forward_days;default:0"`
	RequireDocument  bool      `gorm:"column:require_document;default:false"`
	ColorCode        string    `gorm:"column:color_code;default:'#1E88E5'"`
	Status           string    `gorm:"column:status;default:'active'"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (LeaveType) TableName() string {
	return "leave_types"
}
