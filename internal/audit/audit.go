package audit

import "time"

// AuditLog is one row of the audit trail. Old and new values are JSON
// snapshots of the mutated entity.
type AuditLog struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	UserID     int64     `gorm:"column:user_id;index" json:"user_id"`
	Action     string    `gorm:"column:action;not null" json:"action"`
	EntityType string    `gorm:"column:entity_type" json:"entity_type"`
	EntityID   int64     `gorm:"column:entity_id" json:"entity_id"`
	OldValues  string    `gorm:"column:old_values" json:"old_values,omitempty"`
	NewValues  string    `gorm:"column:new_values" json:"new_values,omitempty"`
	IPAddress  string    `gorm:"column:ip_address" json:"ip_address"`
	UserAgent  string    `gorm:"column:user_agent" json:"user_agent"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
