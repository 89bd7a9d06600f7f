package department

import (
	"log/slog"

	userDatamodel "github.com/frahmantamala/leave-management/internal/core/datamodel/user"
)

type RepositoryAPI interface {
	GetAll() ([]*userDatamodel.Department, error)
	GetByID(id int64) (*userDatamodel.Department, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ActiveDepartments lists the departments available when assigning an
// employee.
func (s *Service) ActiveDepartments() ([]Department, error) {
	rows, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get departments from repository", "error", err)
		return nil, err
	}

	var departments []Department
	for _, row := range rows {
		d := FromDataModel(row)
		if d.IsActive() {
			departments = append(departments, *d)
		}
	}
	return departments, nil
}

func (s *Service) GetByID(id int64) (*Department, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}
	return FromDataModel(row), nil
}
