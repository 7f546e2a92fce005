package handler

import (
	"healthcare-admin-api/internal/config"
	"healthcare-admin-api/internal/middleware"
	"healthcare-admin-api/internal/repository"
	"healthcare-admin-api/internal/service"
	"healthcare-admin-api/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Dependencies are the collaborators NewRouter wires into handlers.
type Dependencies struct {
	Config *config.Config
	DB     *gorm.DB
	Hasher *utils.PasswordHasher
	Tokens *utils.TokenManager
	Log    zerolog.Logger
}

// NewRouter builds the repositories, services and handlers for deps and
// returns the routed engine.
func NewRouter(deps Dependencies) *gin.Engine {
	RegisterValidators()

	cfg, log := deps.Config, deps.Log

	// Repositories
	userRepo := repository.NewUserRepo(deps.DB)
	hospitalRepo := repository.NewHospitalRepo(deps.DB)
	blockchainRepo := repository.NewBlockchainRepo(deps.DB)
	auditRepo := repository.NewAuditRepo(deps.DB)

	// Services
	authService := service.NewAuthService(userRepo, auditRepo, deps.Hasher, deps.Tokens, log)
	userService := service.NewUserService(userRepo, hospitalRepo, auditRepo, deps.Hasher, log)
	hospitalService := service.NewHospitalService(hospitalRepo, auditRepo, log)
	blockchainService := service.NewBlockchainService(blockchainRepo, auditRepo, cfg.Blockchain, log)
	auditService := service.NewAuditService(auditRepo)

	// Handlers
	authHandler := NewAuthHandler(authService, log)
	userHandler := NewUserHandler(userService, log)
	hospitalHandler := NewHospitalHandler(hospitalService, log)
	blockchainHandler := NewBlockchainHandler(blockchainService, log)
	auditHandler := NewAuditHandler(auditService, log)
	healthHandler := NewHealthHandler(deps.DB, log)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.RequestTimeout(cfg.Database.Timeout))

	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authenticated := middleware.AuthMiddleware(deps.Tokens, log)
	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authenticated, authHandler.Logout)
		auth.GET("/verify", authenticated, authHandler.Verify)
	}

	hospitals := api.Group("/hospitals")
	hospitals.Use(authenticated)
	{
		hospitals.GET("", hospitalHandler.ListHospitals)
		hospitals.GET("/stats", middleware.RequireAdmin(), hospitalHandler.GetHospitalStats)
		hospitals.GET("/:id", hospitalHandler.GetHospital)
		hospitals.POST("", middleware.RequireAdmin(), hospitalHandler.CreateHospital)
		hospitals.PUT("/:id", middleware.RequireAdmin(), hospitalHandler.UpdateHospital)
		hospitals.PATCH("/:id/status", middleware.RequireAdmin(), hospitalHandler.SetHospitalStatus)
		hospitals.DELETE("/:id", middleware.RequireAdmin(), hospitalHandler.DeleteHospital)
	}

	users := api.Group("/users")
	users.Use(authenticated)
	{
		users.GET("", userHandler.ListUsers)
		users.GET("/stats", middleware.RequireAdmin(), userHandler.GetUserStats)
		users.GET("/:id", userHandler.GetUser)
		users.POST("", middleware.RequireAdminOrHospital(), userHandler.CreateUser)
		users.PUT("/:id", userHandler.UpdateUser)
		users.PATCH("/:id/status", middleware.RequireAdmin(), userHandler.SetUserStatus)
		users.DELETE("/:id", userHandler.DeleteUser)
	}

	blockchain := api.Group("/blockchain")
	blockchain.Use(authenticated)
	{
		blockchain.GET("/status", blockchainHandler.Status)
		blockchain.POST("/connect", middleware.RequireAdmin(), blockchainHandler.Connect)
		blockchain.POST("/disconnect", middleware.RequireAdmin(), blockchainHandler.Disconnect)
	}

	api.GET("/audit-logs", authenticated, middleware.RequireAdmin(), auditHandler.ListAuditLogs)

	return r
}
