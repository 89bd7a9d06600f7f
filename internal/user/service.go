package user

import (
	"log/slog"
	"time"

	errors "github.com/frahmantamala/leave-management/internal"
)

// Repository is the persistence surface for employee records.
type Repository interface {
	Create(employee *Employee) error
	GetByID(userID int64) (*Employee, error)
	List(filter ListFilter) ([]Employee, int64, error)
	Update(employee *Employee) error
	ExistsByUsernameOrEmail(username, email string, excludeID int64) (bool, error)
}

// PasswordHasher applies the password policy and hashes. The auth
// service provides this so the policy lives in one place.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

// BalanceInitializer seeds leave balances for a new employee. Provided
// by the leave service.
type BalanceInitializer interface {
	InitializeBalances(userID int64, year int) error
	CurrentFinancialYear() int
}

type Service struct {
	repo     Repository
	hasher   PasswordHasher
	balances BalanceInitializer
	logger   *slog.Logger
}

func NewService(repo Repository, hasher PasswordHasher, balances BalanceInitializer, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		hasher:   hasher,
		balances: balances,
		logger:   logger,
	}
}

// Create registers a new employee and seeds their balances for the
// current financial year.
func (s *Service) Create(dto CreateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByUsernameOrEmail(dto.Username, dto.Email, 0)
	if err != nil {
		s.logger.Error("failed to check employee uniqueness", "error", err)
		return nil, err
	}
	if exists {
		return nil, errors.NewConflictError("username or email already in use", errors.ErrCodeDuplicateUser)
	}

	hash, err := s.hasher.HashPassword(dto.Password)
	if err != nil {
		return nil, err
	}

	employee := &Employee{
		Username:     dto.Username,
		Email:        dto.Email,
		PasswordHash: hash,
		FirstName:    dto.FirstName,
		LastName:     dto.LastName,
		EmployeeCode: dto.EmployeeCode,
		RoleID:       dto.RoleID,
		DepartmentID: dto.DepartmentID,
		Status:       StatusActive,
	}

	if err := s.repo.Create(employee); err != nil {
		s.logger.Error("failed to create employee", "error", err, "username", dto.Username)
		return nil, err
	}

	if s.balances != nil {
		year := s.balances.CurrentFinancialYear()
		if err := s.balances.InitializeBalances(employee.ID, year); err != nil {
			s.logger.Error("failed to initialize balances for new employee",
				"error", err, "user_id", employee.ID, "year", year)
		}
	}

	s.logger.Info("employee created", "user_id", employee.ID, "username", employee.Username)
	return employee, nil
}

func (s *Service) GetByID(userID int64) (*Employee, error) {
	employee, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	return employee, nil
}

func (s *Service) List(filter ListFilter) (*EmployeeListResponse, error) {
	employees, total, err := s.repo.List(filter)
	if err != nil {
		s.logger.Error("failed to list employees", "error", err)
		return nil, err
	}
	return &EmployeeListResponse{
		Employees: employees,
		Total:     total,
		Limit:     filter.Limit,
		Offset:    filter.Offset,
	}, nil
}

// Update applies the admin-editable fields of an employee record.
func (s *Service) Update(userID int64, dto UpdateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	employee, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if dto.Email != nil && *dto.Email != employee.Email {
		exists, err := s.repo.ExistsByUsernameOrEmail("", *dto.Email, userID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, errors.NewConflictError("username or email already in use", errors.ErrCodeDuplicateUser)
		}
		employee.Email = *dto.Email
	}
	if dto.FirstName != nil {
		employee.FirstName = *dto.FirstName
	}
	if dto.LastName != nil {
		employee.LastName = *dto.LastName
	}
	if dto.EmployeeCode != nil {
		employee.EmployeeCode = *dto.EmployeeCode
	}
	if dto.RoleID != nil {
		employee.RoleID = *dto.RoleID
	}
	if dto.DepartmentID != nil {
		employee.DepartmentID = dto.DepartmentID
	}
	if dto.Status != nil {
		employee.Status = *dto.Status
	}
	employee.UpdatedAt = time.Now()

	if err := s.repo.Update(employee); err != nil {
		s.logger.Error("failed to update employee", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("employee updated", "user_id", userID)
	return employee, nil
}

// Deactivate marks an employee inactive. Their sessions stop validating
// and they can no longer log in; history is preserved.
func (s *Service) Deactivate(userID int64) error {
	employee, err := s.repo.GetByID(userID)
	if err != nil {
		return err
	}
	if employee.Status == StatusInactive {
		return nil
	}
	employee.Status = StatusInactive
	employee.UpdatedAt = time.Now()
	if err := s.repo.Update(employee); err != nil {
		s.logger.Error("failed to deactivate employee", "error", err, "user_id", userID)
		return err
	}
	s.logger.Info("employee deactivated", "user_id", userID)
	return nil
}

// UpdateProfile lets an employee edit their own contact details.
func (s *Service) UpdateProfile(userID int64, dto UpdateProfileDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	update := UpdateEmployeeDTO{
		Email:     dto.Email,
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
	}
	return s.Update(userID, update)
}
