package repository

import (
	"context"

	"healthcare-admin-api/internal/models"

	"gorm.io/gorm"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// CreateAuditLog creates a new audit log entry
func (r *AuditRepository) CreateAuditLog(ctx context.Context, userID *string, action string, details string) error {
	log := &models.AuditLog{
		UserID:  userID,
		Action:  action,
		Details: details,
	}
	return r.db.WithContext(ctx).Create(log).Error
}

// ListAuditLogs returns the most recent entries, newest first.
func (r *AuditRepository) ListAuditLogs(ctx context.Context, action string, limit int) ([]models.AuditLog, error) {
	q := r.db.WithContext(ctx).Order("id DESC")
	if action != "" {
		q = q.Where("action = ?", action)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var logs []models.AuditLog
	err := q.Find(&logs).Error
	return logs, err
}
