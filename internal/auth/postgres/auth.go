package postgres

import (
	"errors"
	"time"

	"github.com/frahmantamala/leave-management/internal/auth"
	userdm "github.com/frahmantamala/leave-management/internal/core/datamodel/user"
	"gorm.io/gorm"
)

type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) *AuthRepository {
	return &AuthRepository{db: db}
}

// GetCredentials looks up an active user by username or email and
// returns the stored password hash alongside the user profile.
func (r *AuthRepository) GetCredentials(identifier string) (*auth.Credentials, error) {
	var row struct {
		ID           int64
		Username     string
		Email        string
		PasswordHash string
		FirstName    string
		LastName     string
		RoleName     string
		DepartmentID *int64
	}

	err := r.db.Table("users").
		Select("users.id, users.username, users.email, users.password_hash, users.first_name, users.last_name, roles.role_name, users.department_id").
		Joins("JOIN roles ON roles.id = users.role_id").
		Where("(users.username = ? OR users.email = ?) AND users.status = ?", identifier, identifier, "active").
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, auth.ErrInvalidCredentials
	}

	return &auth.Credentials{
		UserID:       row.ID,
		PasswordHash: row.PasswordHash,
		User: auth.User{
			ID:           row.ID,
			Username:     row.Username,
			Email:        row.Email,
			FirstName:    row.FirstName,
			LastName:     row.LastName,
			Role:         auth.Role(row.RoleName),
			DepartmentID: row.DepartmentID,
		},
	}, nil
}

// GetUserByID returns an active user; inactive or missing users are an
// error so stale sessions stop working when an account is deactivated.
func (r *AuthRepository) GetUserByID(userID int64) (*auth.User, error) {
	var row struct {
		ID           int64
		Username     string
		Email        string
		FirstName    string
		LastName     string
		RoleName     string
		DepartmentID *int64
	}

	err := r.db.Table("users").
		Select("users.id, users.username, users.email, users.first_name, users.last_name, roles.role_name, users.department_id").
		Joins("JOIN roles ON roles.id = users.role_id").
		Where("users.id = ? AND users.status = ?", userID, "active").
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, auth.ErrUserInactive
	}

	return &auth.User{
		ID:           row.ID,
		Username:     row.Username,
		Email:        row.Email,
		FirstName:    row.FirstName,
		LastName:     row.LastName,
		Role:         auth.Role(row.RoleName),
		DepartmentID: row.DepartmentID,
	}, nil
}

func (r *AuthRepository) UpdateLastLogin(userID int64, at time.Time) error {
	return r.db.Model(&userdm.User{}).
		Where("id = ?", userID).
		Update("last_login", at).Error
}

func (r *AuthRepository) UpdatePassword(userID int64, passwordHash string) error {
	return r.db.Model(&userdm.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"password_hash": passwordHash,
			"updated_at":    time.Now(),
		}).Error
}

func (r *AuthRepository) CreateSession(session *auth.Session) error {
	model := userdm.Session{
		ID:           session.ID,
		UserID:       session.UserID,
		IPAddress:    session.IPAddress,
		UserAgent:    session.UserAgent,
		LastActivity: session.LastActivity,
		ExpiresAt:    session.ExpiresAt,
	}
	return r.db.Create(&model).Error
}

func (r *AuthRepository) GetSession(token string) (*auth.Session, error) {
	var model userdm.Session
	err := r.db.Where("id = ?", token).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrSessionInvalid
		}
		return nil, err
	}

	return &auth.Session{
		ID:           model.ID,
		UserID:       model.UserID,
		IPAddress:    model.IPAddress,
		UserAgent:    model.UserAgent,
		LastActivity: model.LastActivity,
		ExpiresAt:    model.ExpiresAt,
	}, nil
}

func (r *AuthRepository) TouchSession(token string, at time.Time) error {
	return r.db.Model(&userdm.Session{}).
		Where("id = ?", token).
		Update("last_activity", at).Error
}

// DeleteSession removes a session row. A token that does not exist is
// not an error, so logout stays idempotent.
func (r *AuthRepository) DeleteSession(token string) error {
	return r.db.Where("id = ?", token).Delete(&userdm.Session{}).Error
}
