package postgres

import (
	"errors"

	userDatamodel "github.com/frahmantamala/leave-management/internal/core/datamodel/user"
	"github.com/frahmantamala/leave-management/internal/user"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(employee *user.Employee) error {
	model := user.ToDataModel(employee)
	if err := r.db.Create(model).Error; err != nil {
		return err
	}
	employee.ID = model.ID
	employee.CreatedAt = model.CreatedAt
	employee.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *UserRepository) GetByID(userID int64) (*user.Employee, error) {
	var row employeeRow
	err := r.db.Table("users").
		Select(employeeSelect).
		Joins("JOIN roles ON roles.id = users.role_id").
		Joins("LEFT JOIN departments ON departments.id = users.department_id").
		Where("users.id = ?", userID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, user.ErrNotFound
	}
	return row.toDomain(), nil
}

func (r *UserRepository) List(filter user.ListFilter) ([]user.Employee, int64, error) {
	base := r.db.Table("users").
		Joins("JOIN roles ON roles.id = users.role_id").
		Joins("LEFT JOIN departments ON departments.id = users.department_id")

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		base = base.Where(
			"users.username LIKE ? OR users.email LIKE ? OR users.first_name LIKE ? OR users.last_name LIKE ? OR users.employee_code LIKE ?",
			pattern, pattern, pattern, pattern, pattern)
	}
	if filter.Status != "" {
		base = base.Where("users.status = ?", filter.Status)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []employeeRow
	err := base.Select(employeeSelect).
		Order("users.first_name ASC, users.last_name ASC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	employees := make([]user.Employee, 0, len(rows))
	for i := range rows {
		employees = append(employees, *rows[i].toDomain())
	}
	return employees, total, nil
}

func (r *UserRepository) Update(employee *user.Employee) error {
	result := r.db.Model(&userDatamodel.User{}).
		Where("id = ?", employee.ID).
		Updates(map[string]interface{}{
			"email":         employee.Email,
			"first_name":    employee.FirstName,
			"last_name":     employee.LastName,
			"employee_code": employee.EmployeeCode,
			"role_id":       employee.RoleID,
			"department_id": employee.DepartmentID,
			"status":        employee.Status,
			"updated_at":    employee.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *UserRepository) ExistsByUsernameOrEmail(username, email string, excludeID int64) (bool, error) {
	query := r.db.Model(&userDatamodel.User{})
	switch {
	case username != "" && email != "":
		query = query.Where("username = ? OR email = ?", username, email)
	case username != "":
		query = query.Where("username = ?", username)
	case email != "":
		query = query.Where("email = ?", email)
	default:
		return false, errors.New("username or email required")
	}
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

const employeeSelect = "users.id, users.username, users.email, users.password_hash, users.first_name, users.last_name, " +
	"users.employee_code, users.role_id, roles.role_name, users.department_id, departments.department_name, " +
	"users.status, users.last_login, users.created_at, users.updated_at"

type employeeRow struct {
	userDatamodel.User
	RoleName       string
	DepartmentName *string
}

func (row *employeeRow) toDomain() *user.Employee {
	employee := user.FromDataModel(&row.User)
	employee.RoleName = row.RoleName
	if row.DepartmentName != nil {
		employee.DepartmentName = *row.DepartmentName
	}
	return employee
}
