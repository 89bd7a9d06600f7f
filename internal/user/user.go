package user

import (
	"errors"
	"time"

	userDatamodel "github.com/frahmantamala/leave-management/internal/core/datamodel/user"
)

// Employee is the domain view of a user row joined with its role and
// department names.
type Employee struct {
	ID             int64      `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	PasswordHash   string     `json:"-"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	EmployeeCode   string     `json:"employee_code,omitempty"`
	RoleID         int64      `json:"role_id"`
	RoleName       string     `json:"role_name,omitempty"`
	DepartmentID   *int64     `json:"department_id,omitempty"`
	DepartmentName string     `json:"department_name,omitempty"`
	Status         string     `json:"status"`
	LastLogin      *time.Time `json:"last_login,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

func (e *Employee) IsActive() bool {
	return e.Status == StatusActive
}

var (
	ErrNotFound      = errors.New("user not found")
	ErrDuplicateUser = errors.New("username or email already in use")
)

func ToDataModel(e *Employee) *userDatamodel.User {
	return &userDatamodel.User{
		ID:           e.ID,
		Username:     e.Username,
		Email:        e.Email,
		PasswordHash: e.PasswordHash,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		EmployeeCode: e.EmployeeCode,
		RoleID:       e.RoleID,
		DepartmentID: e.DepartmentID,
		Status:       e.Status,
		LastLogin:    e.LastLogin,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func FromDataModel(u *userDatamodel.User) *Employee {
	return &Employee{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		EmployeeCode: u.EmployeeCode,
		RoleID:       u.RoleID,
		DepartmentID: u.DepartmentID,
		Status:       u.Status,
		LastLogin:    u.LastLogin,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
