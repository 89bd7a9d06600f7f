package user

import (
	"strings"

	errors "github.com/frahmantamala/leave-management/internal"
	"github.com/frahmantamala/leave-management/internal/core/common/validation"
)

type CreateEmployeeDTO struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	EmployeeCode string `json:"employee_code"`
	RoleID       int64  `json:"role_id"`
	DepartmentID *int64 `json:"department_id"`
}

func (d *CreateEmployeeDTO) Validate() error {
	d.Username = strings.TrimSpace(d.Username)
	d.Email = strings.TrimSpace(strings.ToLower(d.Email))
	d.FirstName = strings.TrimSpace(d.FirstName)
	d.LastName = strings.TrimSpace(d.LastName)

	v := validation.NewValidator()
	v.Field("username", d.Username).Required().MinLength(3).MaxLength(50)
	v.Field("email", d.Email).Required().Custom(emailFormat("email", d.Email))
	v.Field("first_name", d.FirstName).Required()
	v.Field("last_name", d.LastName).Required()
	v.Field("role_id", d.RoleID).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type UpdateEmployeeDTO struct {
	Email        *string `json:"email"`
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	EmployeeCode *string `json:"employee_code"`
	RoleID       *int64  `json:"role_id"`
	DepartmentID *int64  `json:"department_id"`
	Status       *string `json:"status"`
}

func (d *UpdateEmployeeDTO) Validate() error {
	v := validation.NewValidator()
	if d.Email != nil {
		*d.Email = strings.TrimSpace(strings.ToLower(*d.Email))
		v.Field("email", *d.Email).Required().Custom(emailFormat("email", *d.Email))
	}
	if d.FirstName != nil {
		*d.FirstName = strings.TrimSpace(*d.FirstName)
		v.Field("first_name", *d.FirstName).Required()
	}
	if d.LastName != nil {
		*d.LastName = strings.TrimSpace(*d.LastName)
		v.Field("last_name", *d.LastName).Required()
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

type UpdateProfileDTO struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

func (d *UpdateProfileDTO) Validate() error {
	v := validation.NewValidator()
	if d.Email != nil {
		*d.Email = strings.TrimSpace(strings.ToLower(*d.Email))
		v.Field("email", *d.Email).Required().Custom(emailFormat("email", *d.Email))
	}
	if d.FirstName != nil {
		*d.FirstName = strings.TrimSpace(*d.FirstName)
		v.Field("first_name", *d.FirstName).Required()
	}
	if d.LastName != nil {
		*d.LastName = strings.TrimSpace(*d.LastName)
		v.Field("last_name", *d.LastName).Required()
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func emailFormat(field, value string) func(interface{}) *errors.AppError {
	return func(interface{}) *errors.AppError {
		if value != "" && (!strings.Contains(value, "@") || strings.HasPrefix(value, "@") || strings.HasSuffix(value, "@")) {
			return errors.NewValidationFieldError(field, "must be a valid email address", errors.ErrCodeValidationFailed)
		}
		return nil
	}
}

type ListFilter struct {
	Search string
	Status string
	Limit  int
	Offset int
}

type EmployeeListResponse struct {
	Employees []Employee `json:"employees"`
	Total     int64      `json:"total"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
}
