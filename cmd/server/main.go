package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"healthcare-admin-api/internal/config"
	"healthcare-admin-api/internal/database"
	"healthcare-admin-api/internal/handler"
	"healthcare-admin-api/internal/repository"
	"healthcare-admin-api/internal/service"
	"healthcare-admin-api/pkg/logger"
	"healthcare-admin-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Init(logger.Options{}).Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.Server.LogLevel,
		Pretty: !cfg.IsRelease(),
	})
	log.Info().Str("driver", cfg.Database.Driver).Msg("configuration loaded")

	// 2. Initialize database connection
	db, err := database.Connect(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	// 3. Credentials
	hasher := utils.NewPasswordHasher(cfg.Security.BcryptCost)
	tokens := utils.NewTokenManager(cfg.JWT.Secret, utils.DefaultTokenTTL)

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 30*time.Second)
	if _, err := database.SeedDefaultAdmin(seedCtx, db, hasher, cfg.Seed, log); err != nil {
		log.Fatal().Err(err).Msg("failed to seed default admin")
	}
	cancelSeed()

	// 4. Start background stats worker
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	statsWorker := service.NewStatsWorker(
		repository.NewUserRepo(db),
		repository.NewHospitalRepo(db),
		repository.NewBlockchainRepo(db),
		cfg.Server.StatsInterval,
		log,
	)
	go statsWorker.Start(workerCtx)

	// 5. Setup Gin router
	gin.SetMode(cfg.Server.GinMode)
	r := handler.NewRouter(handler.Dependencies{
		Config: cfg,
		DB:     db,
		Hasher: hasher,
		Tokens: tokens,
		Log:    log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")
	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("server exited")
}
