package postgres

import (
	leavetypeDatamodel "github.com/frahmantamala/leave-management/internal/core/datamodel/leavetype"
	"github.com/frahmantamala/leave-management/internal/leavetype"
	"gorm.io/gorm"
)

type LeaveTypeRepository struct {
	db *gorm.DB
}

func NewLeaveTypeRepository(db *gorm.DB) leavetype.RepositoryAPI {
	return &LeaveTypeRepository{db: db}
}

func (r *LeaveTypeRepository) GetAll() ([]*leavetypeDatamodel.LeaveType, error) {
	var types []*leavetypeDatamodel.LeaveType
	err := r.db.Order("leave_name ASC").Find(&types).Error
	return types, err
}

func (r *LeaveTypeRepository) GetByID(id int64) (*leavetypeDatamodel.LeaveType, error) {
	var lt leavetypeDatamodel.LeaveType
	err := r.db.Where("id = ?", id).First(&lt).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &lt, nil
}

func (r *LeaveTypeRepository) GetByName(name string) (*leavetypeDatamodel.LeaveType, error) {
	var lt leavetypeDatamodel.LeaveType
	err := r.db.Where("leave_name = ?", name).First(&lt).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &lt, nil
}

func (r *LeaveTypeRepository) Create(lt *leavetypeDatamodel.LeaveType) error {
	return r.db.Create(lt).Error
}

func (r *LeaveTypeRepository) Update(lt *leavetypeDatamodel.LeaveType) error {
	return r.db.Save(lt).Error
}
