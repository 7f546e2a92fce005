package service

import (
	"context"
	"errors"
	"time"

	"healthcare-admin-api/internal/metrics"
	"healthcare-admin-api/internal/repository"

	"github.com/rs/zerolog"
)

// StatsWorker periodically copies store counts into the Prometheus gauges,
// so they stay correct across restarts and writes made outside the API.
type StatsWorker struct {
	userRepo       *repository.UserRepository
	hospitalRepo   *repository.HospitalRepository
	blockchainRepo *repository.BlockchainRepository
	interval       time.Duration
	log            zerolog.Logger
}

func NewStatsWorker(
	userRepo *repository.UserRepository,
	hospitalRepo *repository.HospitalRepository,
	blockchainRepo *repository.BlockchainRepository,
	interval time.Duration,
	log zerolog.Logger,
) *StatsWorker {
	return &StatsWorker{
		userRepo:       userRepo,
		hospitalRepo:   hospitalRepo,
		blockchainRepo: blockchainRepo,
		interval:       interval,
		log:            log.With().Str("component", "stats_worker").Logger(),
	}
}

// Start refreshes once, then on every tick until ctx is done.
func (w *StatsWorker) Start(ctx context.Context) {
	if w.interval <= 0 {
		return
	}
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info().Dur("interval", w.interval).Msg("stats worker started")
	w.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("stats worker stopped")
			return
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *StatsWorker) refresh(ctx context.Context) {
	if err := w.Refresh(ctx); err != nil && ctx.Err() == nil {
		w.log.Warn().Err(err).Msg("failed to refresh stats")
	}
}

// Refresh runs one collection pass.
func (w *StatsWorker) Refresh(ctx context.Context) error {
	users, err := w.userRepo.GetUserStats(ctx)
	if err != nil {
		return err
	}
	metrics.AccountsTotal.WithLabelValues("active").Set(float64(users.Active))
	metrics.AccountsTotal.WithLabelValues("inactive").Set(float64(users.Inactive))

	hospitals, err := w.hospitalRepo.GetHospitalStats(ctx)
	if err != nil {
		return err
	}
	metrics.HospitalsTotal.WithLabelValues("active").Set(float64(hospitals.Active))
	metrics.HospitalsTotal.WithLabelValues("inactive").Set(float64(hospitals.Inactive))

	_, err = w.blockchainRepo.GetActiveConnection(ctx)
	switch {
	case err == nil:
		metrics.BlockchainConnected.Set(1)
	case errors.Is(err, repository.ErrNotFound):
		metrics.BlockchainConnected.Set(0)
	default:
		return err
	}
	return nil
}
