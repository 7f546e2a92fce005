package service

import (
	"context"

	"healthcare-admin-api/internal/models"
	"healthcare-admin-api/internal/repository"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 500
)

type AuditService struct {
	auditRepo *repository.AuditRepository
}

func NewAuditService(auditRepo *repository.AuditRepository) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

// ListAuditLogs returns the newest entries, optionally for one action.
func (s *AuditService) ListAuditLogs(ctx context.Context, actor Actor, action string, limit int) ([]models.AuditLog, error) {
	if !actor.IsAdmin() {
		return nil, newError(ErrForbidden, "Admin access required")
	}
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	if limit > maxAuditLimit {
		limit = maxAuditLimit
	}

	logs, err := s.auditRepo.ListAuditLogs(ctx, action, limit)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}
	return logs, nil
}
