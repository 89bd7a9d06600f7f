package leavetype

import (
	"log/slog"
	"time"

	errors "github.com/frahmantamala/leave-management/internal"
	leavetypeDatamodel "github.com/frahmantamala/leave-management/internal/core/datamodel/leavetype"
)

type RepositoryAPI interface {
	GetAll() ([]*leavetypeDatamodel.LeaveType, error)
	GetByID(id int64) (*leavetypeDatamodel.LeaveType, error)
	GetByName(name string) (*leavetypeDatamodel.LeaveType, error)
	Create(leaveType *leavetypeDatamodel.LeaveType) error
	Update(leaveType *leavetypeDatamodel.LeaveType) error
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

// ActiveLeaveTypes lists the types employees can pick when submitting a
// request.
func (s *Service) ActiveLeaveTypes() ([]LeaveType, error) {
	rows, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get leave types from repository", "error", err)
		return nil, err
	}

	var types []LeaveType
	for _, row := range rows {
		lt := FromDataModel(row)
		if lt.IsActive() {
			types = append(types, *lt)
		}
	}
	return types, nil
}

// AllLeaveTypes is the admin listing including inactive types.
func (s *Service) AllLeaveTypes() ([]LeaveType, error) {
	rows, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get leave types from repository", "error", err)
		return nil, err
	}

	types := make([]LeaveType, 0, len(rows))
	for _, row := range rows {
		types = append(types, *FromDataModel(row))
	}
	return types, nil
}

func (s *Service) GetByID(id int64) (*LeaveType, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}
	return FromDataModel(row), nil
}

func (s *Service) Create(dto CreateLeaveTypeDTO) (*LeaveType, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByName(dto.LeaveName)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.NewConflictError("leave type name already in use", errors.ErrCodeDuplicateLeaveType)
	}

	colorCode := dto.ColorCode
	if colorCode == "" {
		colorCode = defaultColorCode
	}

	now := time.Now()
	lt := &LeaveType{
		LeaveName:        dto.LeaveName,
		Description:      dto.Description,
		MaxDaysPerYear:   dto.MaxDaysPerYear,
		CarryForward:     dto.CarryForward,
		CarryForwardDays: dto.CarryForwardDays,
		RequireDocument:  dto.RequireDocument,
		ColorCode:        colorCode,
		Status:           StatusActive,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	model := ToDataModel(lt)
	if err := s.repo.Create(model); err != nil {
		s.logger.Error("failed to create leave type", "error", err, "leave_name", dto.LeaveName)
		return nil, err
	}
	lt.ID = model.ID

	s.logger.Info("leave type created", "leave_type_id", lt.ID, "leave_name", lt.LeaveName)
	return lt, nil
}

func (s *Service) Update(id int64, dto UpdateLeaveTypeDTO) (*LeaveType, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	lt, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.LeaveName != nil && *dto.LeaveName != lt.LeaveName {
		existing, err := s.repo.GetByName(*dto.LeaveName)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, errors.NewConflictError("leave type name already in use", errors.ErrCodeDuplicateLeaveType)
		}
		lt.LeaveName = *dto.LeaveName
	}
	if dto.Description != nil {
		lt.Description = *dto.Description
	}
	if dto.MaxDaysPerYear != nil {
		lt.MaxDaysPerYear = *dto.MaxDaysPerYear
	}
	if dto.CarryForward != nil {
		lt.CarryForward = *dto.CarryForward
	}
	if dto.CarryForwardDays != nil {
		lt.CarryForwardDays = *dto.CarryForwardDays
	}
	if dto.RequireDocument != nil {
		lt.RequireDocument = *dto.RequireDocument
	}
	if dto.ColorCode != nil {
		lt.ColorCode = *dto.ColorCode
	}
	if dto.Status != nil {
		lt.Status = *dto.Status
	}
	lt.UpdatedAt = time.Now()

	if err := s.repo.Update(ToDataModel(lt)); err != nil {
		s.logger.Error("failed to update leave type", "error", err, "leave_type_id", id)
		return nil, err
	}

	s.logger.Info("leave type updated", "leave_type_id", id)
	return lt, nil
}

// Deactivate retires a leave type from pickers. Existing balances and
// requests referencing it are untouched.
func (s *Service) Deactivate(id int64) error {
	lt, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if !lt.IsActive() {
		return nil
	}
	lt.Deactivate()
	if err := s.repo.Update(ToDataModel(lt)); err != nil {
		s.logger.Error("failed to deactivate leave type", "error", err, "leave_type_id", id)
		return err
	}
	s.logger.Info("leave type deactivated", "leave_type_id", id)
	return nil
}
