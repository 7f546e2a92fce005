package service

import (
	"context"
	"errors"

	"healthcare-admin-api/internal/metrics"
	"healthcare-admin-api/internal/models"
	"healthcare-admin-api/internal/repository"
	"healthcare-admin-api/pkg/utils"

	"github.com/rs/zerolog"
)

const invalidCredentialsMessage = "Invalid credentials"

type AuthService struct {
	userRepo *repository.UserRepository
	hasher   *utils.PasswordHasher
	tokens   *utils.TokenManager
	audit    auditor
	log      zerolog.Logger
}

func NewAuthService(
	userRepo *repository.UserRepository,
	auditRepo *repository.AuditRepository,
	hasher *utils.PasswordHasher,
	tokens *utils.TokenManager,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		audit:    auditor{repo: auditRepo, log: log},
		log:      log,
	}
}

// LoginResult is returned on successful login
type LoginResult struct {
	Token string          `json:"token"`
	User  models.UserView `json:"user"`
}

// Login authenticates an account and issues a token.
//
// Unknown email and wrong password yield the same error. The active flag is
// checked before the password.
func (s *AuthService) Login(ctx context.Context, email, password, role string) (*LoginResult, error) {
	email = normalizeEmail(email)
	if !isEmail(email) || password == "" {
		metrics.LoginAttemptsTotal.WithLabelValues(metrics.LoginInvalidInput).Inc()
		return nil, newError(ErrValidation, "Email and password are required")
	}
	if !isLoginRoleFilter(role) {
		metrics.LoginAttemptsTotal.WithLabelValues(metrics.LoginInvalidInput).Inc()
		return nil, newError(ErrValidation, "Invalid role")
	}

	user, err := s.userRepo.FindUserForLogin(ctx, email, role)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			metrics.LoginAttemptsTotal.WithLabelValues(metrics.LoginInvalidCredentials).Inc()
			return nil, newError(ErrInvalidCredentials, invalidCredentialsMessage)
		}
		metrics.LoginAttemptsTotal.WithLabelValues(metrics.LoginError).Inc()
		return nil, err
	}

	if !user.IsActive {
		metrics.LoginAttemptsTotal.WithLabelValues(metrics.LoginInactive).Inc()
		return nil, newError(ErrAccountInactive, "Account is inactive")
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		if errors.Is(err, utils.ErrMalformedHash) {
			s.log.Warn().Str("user_id", user.ID).Msg("stored password hash is malformed")
		}
		metrics.LoginAttemptsTotal.WithLabelValues(metrics.LoginInvalidCredentials).Inc()
		return nil, newError(ErrInvalidCredentials, invalidCredentialsMessage)
	}

	token, err := s.tokens.Issue(utils.Identity{
		Subject: user.ID,
		Email:   user.Email,
		Role:    user.Role,
	})
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues(metrics.LoginError).Inc()
		return nil, err
	}

	metrics.LoginAttemptsTotal.WithLabelValues(metrics.LoginSuccess).Inc()
	s.audit.record(ctx, &user.ID, "user_login", "User "+user.Email+" logged in")

	return &LoginResult{
		Token: token,
		User:  user.View(),
	}, nil
}

// VerifyToken checks a bearer token and returns its claims.
func (s *AuthService) VerifyToken(token string) (*utils.Claims, error) {
	return s.tokens.Verify(token)
}

// Logout acknowledges a logout. Tokens are stateless, so nothing changes.
func (s *AuthService) Logout() string {
	return "Logged out successfully"
}

func isLoginRoleFilter(role string) bool {
	switch role {
	case "", models.RoleAdmin, models.RoleHospital, models.RoleUser:
		return true
	default:
		return false
	}
}
