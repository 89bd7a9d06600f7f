package department

import (
	"errors"
	"time"

	userDatamodel "github.com/frahmantamala/leave-management/internal/core/datamodel/user"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Department struct {
	ID             int64     `json:"id"`
	DepartmentName string    `json:"department_name"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

func (d *Department) IsActive() bool {
	return d.Status == StatusActive
}

var ErrNotFound = errors.New("department not found")

func FromDataModel(d *userDatamodel.Department) *Department {
	return &Department{
		ID:             d.ID,
		DepartmentName: d.DepartmentName,
		Status:         d.Status,
		CreatedAt:      d.CreatedAt,
	}
}
