package models

import "time"

// AuditLog represents the audit_logs table.
// UserID carries no foreign key so that accounts stay deletable.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    *string   `gorm:"size:36;index" json:"userId"`
	Action    string    `gorm:"size:100;not null;index" json:"action"`
	Details   string    `gorm:"type:text" json:"details"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name for AuditLog model
func (AuditLog) TableName() string {
	return "audit_logs"
}
