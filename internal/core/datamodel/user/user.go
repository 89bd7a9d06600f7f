package user

import "time"

type User struct {
	ID           int64      `gorm:"primaryKey"`
	Username     string     `gorm:"column:username;uniqueIndex;not null"`
	Email        string     `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	FirstName    string     `gorm:"column:first_name;not null"`
	LastName     string     `gorm:"column:last_name;not null"`
	EmployeeCode string     `gorm:"column:employee_code"`
	RoleID       int64      `gorm:"column:role_id;not null"`
	DepartmentID *int64     `gorm:"column:department_id"`
	Status       string     `gorm:"column:status;default:'active'"`
	LastLogin    *time.Time `gorm:"column:last_login"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

type Role struct {
	ID        int64     `gorm:"primaryKey"`
	RoleName  string    `gorm:"column:role_name;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Role) TableName() string {
	return "roles"
}

type Department struct {
	ID             int64     `gorm:"primaryKey"`
	DepartmentName string    `gorm:"column:department_name;uniqueIndex;not null"`
	Status         string    `gorm:"column:status;default:'active'"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Department) TableName() string {
	return "departments"
}

type Session struct {
	ID           string    `gorm:"primaryKey;column:id"`
	UserID       int64     `gorm:"column:user_id;not null;index"`
	IPAddress    string    `gorm:"column:ip_address"`
	UserAgent    string    `gorm:"column:user_agent"`
	LastActivity time.Time `gorm:"column:last_activity;not null"`
	ExpiresAt    time.Time `gorm:"column:expires_at;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Session) TableName() string {
	return "sessions"
}
