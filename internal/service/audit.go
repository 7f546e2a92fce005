package service

import (
	"context"

	"healthcare-admin-api/internal/repository"

	"github.com/rs/zerolog"
)

// auditor writes audit entries best-effort: a failed write is logged and
// never fails the caller.
type auditor struct {
	repo *repository.AuditRepository
	log  zerolog.Logger
}

func (a auditor) record(ctx context.Context, userID *string, action, details string) {
	if a.repo == nil {
		return
	}
	if err := a.repo.CreateAuditLog(ctx, userID, action, details); err != nil {
		a.log.Warn().Err(err).Str("action", action).Msg("failed to write audit log")
	}
}
