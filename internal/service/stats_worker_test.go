package service

import (
	"context"
	"testing"
	"time"

	"healthcare-admin-api/internal/metrics"
	"healthcare-admin-api/internal/models"
	"healthcare-admin-api/internal/repository"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsWorker_Refresh(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.account(t, "off@example.com", models.RoleNurse, false, nil)
	f.hospital(t, "General", "general@example.com")

	w := NewStatsWorker(
		repository.NewUserRepo(f.db),
		repository.NewHospitalRepo(f.db),
		repository.NewBlockchainRepo(f.db),
		time.Minute,
		zerolog.Nop(),
	)

	require.NoError(t, w.Refresh(ctx))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.AccountsTotal.WithLabelValues("active")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.AccountsTotal.WithLabelValues("inactive")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.HospitalsTotal.WithLabelValues("active")))
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.BlockchainConnected))

	_, err := f.blockchain.Connect(ctx, f.adminActor(), testWallet, "http://localhost:8545")
	require.NoError(t, err)
	metrics.BlockchainConnected.Set(0)

	require.NoError(t, w.Refresh(ctx))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.BlockchainConnected))
}

func TestStatsWorker_StopsWithContext(t *testing.T) {
	f := newFixture(t)
	w := NewStatsWorker(
		repository.NewUserRepo(f.db),
		repository.NewHospitalRepo(f.db),
		repository.NewBlockchainRepo(f.db),
		10*time.Millisecond,
		zerolog.Nop(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}
