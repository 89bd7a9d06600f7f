package leavetype

import (
	"regexp"
	"strings"

	errors "github.com/frahmantamala/leave-management/internal"
	"github.com/frahmantamala/leave-management/internal/core/common/validation"
)

var colorCodePattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type CreateLeaveTypeDTO struct {
	LeaveName        string `json:"leave_name"`
	Description      string `json:"description"`
	MaxDaysPerYear   int    `json:"max_days_per_year"`
	CarryForward     bool   `json:"carry_forward"`
	CarryForwardDays int    `json:"carry_forward_days"`
	RequireDocument  bool   `json:"require_document"`
	ColorCode        string `json:"color_code"`
}

func (d *CreateLeaveTypeDTO) Validate() error {
	d.LeaveName = strings.TrimSpace(d.LeaveName)

	v := validation.NewValidator()
	v.Field("leave_name", d.LeaveName).Required().MinLength(2).MaxLength(100)
	v.Field("max_days_per_year", int64(d.MaxDaysPerYear)).Required().MinInt(1, errors.ErrCodeValidationFailed)
	if d.ColorCode != "" {
		code := d.ColorCode
		v.Field("color_code", code).Custom(func(interface{}) *errors.AppError {
			if !colorCodePattern.MatchString(code) {
				return errors.NewValidationFieldError("color_code", "color code must be a hex value like #1E88E5", errors.ErrCodeValidationFailed)
			}
			return nil
		})
	}
	if d.CarryForward {
		v.Field("carry_forward_days", int64(d.CarryForwardDays)).MinInt(1, errors.ErrCodeValidationFailed)
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type UpdateLeaveTypeDTO struct {
	LeaveName        *string `json:"leave_name"`
	Description      *string `json:"description"`
	MaxDaysPerYear   *int    `json:"max_days_per_year"`
	CarryForward     *bool   `json:"carry_forward"`
	CarryForwardDays *int    `json:"carry_forward_days"`
	RequireDocument  *bool   `json:"require_document"`
	ColorCode        *string `json:"color_code"`
	Status           *string `json:"status"`
}

func (d *UpdateLeaveTypeDTO) Validate() error {
	v := validation.NewValidator()
	if d.LeaveName != nil {
		*d.LeaveName = strings.TrimSpace(*d.LeaveName)
		v.Field("leave_name", *d.LeaveName).Required().MinLength(2).MaxLength(100)
	}
	if d.MaxDaysPerYear != nil {
		v.Field("max_days_per_year", int64(*d.MaxDaysPerYear)).MinInt(1, errors.ErrCodeValidationFailed)
	}
	if d.ColorCode != nil {
		code := *d.ColorCode
		v.Field("color_code", code).Custom(func(interface{}) *errors.AppError {
			if !colorCodePattern.MatchString(code) {
				return errors.NewValidationFieldError("color_code", "color code must be a hex value like #1E88E5", errors.ErrCodeValidationFailed)
			}
			return nil
		})
	}
	if d.Status != nil {
		status := *d.Status
		v.Field("status", status).Custom(func(interface{}) *errors.AppError {
			if status != StatusActive && status != StatusInactive {
				return errors.NewValidationFieldError("status", "status must be active or inactive", errors.ErrCodeValidationFailed)
			}
			return nil
		})
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type LeaveTypesResponse struct {
	LeaveTypes []LeaveType `json:"leave_types"`
}
