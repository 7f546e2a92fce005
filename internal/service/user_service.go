package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"healthcare-admin-api/internal/models"
	"healthcare-admin-api/internal/repository"
	"healthcare-admin-api/pkg/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const minPasswordLength = 6

type UserService struct {
	userRepo     *repository.UserRepository
	hospitalRepo *repository.HospitalRepository
	hasher       *utils.PasswordHasher
	audit        auditor
}

func NewUserService(
	userRepo *repository.UserRepository,
	hospitalRepo *repository.HospitalRepository,
	auditRepo *repository.AuditRepository,
	hasher *utils.PasswordHasher,
	log zerolog.Logger,
) *UserService {
	return &UserService{
		userRepo:     userRepo,
		hospitalRepo: hospitalRepo,
		hasher:       hasher,
		audit:        auditor{repo: auditRepo, log: log},
	}
}

// CreateUserInput is an administrative registration.
type CreateUserInput struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      *string
	Role       string
	HospitalID *string
	Password   string
	IsActive   *bool
}

// UpdateUserInput is a partial update. Nil fields are left untouched.
type UpdateUserInput struct {
	FirstName  *string
	LastName   *string
	Email      *string
	Phone      *string
	Role       *string
	HospitalID *string
	Password   *string
	IsActive   *bool
}

func (in UpdateUserInput) empty() bool {
	return in.FirstName == nil && in.LastName == nil && in.Email == nil && in.Phone == nil &&
		in.Role == nil && in.HospitalID == nil && in.Password == nil && in.IsActive == nil
}

// UserListResult is one page of users.
type UserListResult struct {
	Users      []models.UserView `json:"users"`
	Pagination models.Pagination `json:"pagination"`
}

// CreateUser registers an account. Hospital actors may only register
// non-privileged accounts, always inside their own hospital.
func (s *UserService) CreateUser(ctx context.Context, actor Actor, in CreateUserInput) (*models.UserView, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = normalizeEmail(in.Email)
	in.HospitalID = trimmedOrNil(in.HospitalID)

	if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Password == "" || in.Role == "" {
		return nil, newError(ErrValidation, "Required fields missing")
	}
	if !isEmail(in.Email) {
		return nil, newError(ErrValidation, "Invalid email format")
	}
	if !models.IsValidRole(in.Role) {
		return nil, newError(ErrValidation, "Invalid role")
	}
	if len(in.Password) < minPasswordLength {
		return nil, newError(ErrValidation, "Password must be at least %d characters", minPasswordLength)
	}

	switch {
	case actor.IsAdmin():
	case actor.IsHospital():
		if models.IsPrivilegedRole(in.Role) {
			return nil, newError(ErrForbidden, "Insufficient permissions to create this role")
		}
		hospitalID, err := s.actorHospitalID(ctx, actor)
		if err != nil {
			return nil, err
		}
		in.HospitalID = &hospitalID
	default:
		return nil, newError(ErrForbidden, "Insufficient permissions")
	}

	if err := s.ensureHospital(ctx, in.HospitalID); err != nil {
		return nil, err
	}

	taken, err := s.userRepo.EmailTaken(ctx, in.Email, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, newError(ErrConflict, "A user with this email already exists")
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	user := &models.User{
		ID:           uuid.NewString(),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Phone:        trimmedOrNil(in.Phone),
		PasswordHash: hash,
		Role:         in.Role,
		HospitalID:   in.HospitalID,
		IsActive:     active,
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, mapRepoError(err, "User")
	}

	s.audit.record(ctx, actor.idPtr(), "user_create", fmt.Sprintf("Created user %s (role: %s)", user.Email, user.Role))

	return s.view(ctx, user.ID)
}

// ListUsers returns a page of users visible to actor. Hospital actors only
// see their own hospital's accounts.
func (s *UserService) ListUsers(ctx context.Context, actor Actor, f repository.UserFilter, page models.Page) (*UserListResult, error) {
	if f.Role != "" && !models.IsValidRole(f.Role) {
		return nil, newError(ErrValidation, "Invalid role")
	}
	if f.Status != "" && f.Status != "active" && f.Status != "inactive" {
		return nil, newError(ErrValidation, "Status must be active or inactive")
	}

	switch {
	case actor.IsAdmin():
	case actor.IsHospital():
		hospitalID, err := s.actorHospitalID(ctx, actor)
		if err != nil {
			return nil, err
		}
		f.HospitalID = hospitalID
	default:
		return nil, newError(ErrForbidden, "Insufficient permissions")
	}

	page = page.Normalize()
	users, total, err := s.userRepo.ListUsers(ctx, f, page)
	if err != nil {
		return nil, err
	}

	return &UserListResult{
		Users:      models.Views(users),
		Pagination: models.NewPagination(page, total),
	}, nil
}

// GetUserStats counts accounts by status and role.
func (s *UserService) GetUserStats(ctx context.Context) (*repository.UserStats, error) {
	return s.userRepo.GetUserStats(ctx)
}

// GetUser returns an account the actor may see.
func (s *UserService) GetUser(ctx context.Context, actor Actor, id string) (*models.UserView, error) {
	user, err := s.userRepo.FindUserByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "User")
	}
	if err := s.authorizeAccess(ctx, actor, user, "Unauthorized access to user data"); err != nil {
		return nil, err
	}
	v := user.View()
	return &v, nil
}

// UpdateUser applies a partial update. Only admins may change role, active
// flag or hospital affiliation.
func (s *UserService) UpdateUser(ctx context.Context, actor Actor, id string, in UpdateUserInput) (*models.UserView, error) {
	user, err := s.userRepo.FindUserByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "User")
	}
	if err := s.authorizeAccess(ctx, actor, user, "Unauthorized to update this user"); err != nil {
		return nil, err
	}
	if actor.IsHospital() && actor.ID != user.ID && models.IsPrivilegedRole(user.Role) {
		return nil, newError(ErrForbidden, "Unauthorized to update this user")
	}
	if !actor.IsAdmin() && (in.Role != nil || in.IsActive != nil || in.HospitalID != nil) {
		return nil, newError(ErrForbidden, "Unauthorized to update role, hospital or activation status")
	}
	if in.empty() {
		return nil, newError(ErrValidation, "No update data provided")
	}

	fields := map[string]interface{}{}

	if in.FirstName != nil {
		v := strings.TrimSpace(*in.FirstName)
		if v == "" {
			return nil, newError(ErrValidation, "First name cannot be empty")
		}
		fields["first_name"] = v
	}
	if in.LastName != nil {
		v := strings.TrimSpace(*in.LastName)
		if v == "" {
			return nil, newError(ErrValidation, "Last name cannot be empty")
		}
		fields["last_name"] = v
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if !isEmail(email) {
			return nil, newError(ErrValidation, "Invalid email format")
		}
		taken, err := s.userRepo.EmailTaken(ctx, email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, newError(ErrConflict, "A user with this email already exists")
		}
		fields["email"] = email
	}
	if in.Phone != nil {
		fields["phone"] = trimmedOrNil(in.Phone)
	}
	if in.Role != nil {
		if !models.IsValidRole(*in.Role) {
			return nil, newError(ErrValidation, "Invalid role")
		}
		fields["role"] = *in.Role
	}
	if in.HospitalID != nil {
		hospitalID := trimmedOrNil(in.HospitalID)
		if err := s.ensureHospital(ctx, hospitalID); err != nil {
			return nil, err
		}
		fields["hospital_id"] = hospitalID
	}
	if in.Password != nil {
		if len(*in.Password) < minPasswordLength {
			return nil, newError(ErrValidation, "Password must be at least %d characters", minPasswordLength)
		}
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, err
		}
		fields["password"] = hash
	}
	if in.IsActive != nil {
		fields["is_active"] = *in.IsActive
	}

	if err := s.userRepo.UpdateUser(ctx, id, fields); err != nil {
		return nil, mapRepoError(err, "User")
	}

	s.audit.record(ctx, actor.idPtr(), "user_update", fmt.Sprintf("Updated user %s", id))

	return s.view(ctx, id)
}

// SetUserStatus activates or deactivates an account. Admin only.
func (s *UserService) SetUserStatus(ctx context.Context, actor Actor, id string, active bool) error {
	if !actor.IsAdmin() {
		return newError(ErrForbidden, "Admin access required")
	}
	if err := s.userRepo.UpdateUser(ctx, id, map[string]interface{}{"is_active": active}); err != nil {
		return mapRepoError(err, "User")
	}

	action := "user_deactivate"
	if active {
		action = "user_activate"
	}
	s.audit.record(ctx, actor.idPtr(), action, fmt.Sprintf("Set user %s active=%t", id, active))
	return nil
}

// DeleteUser hard deletes an account. Admins may delete anyone but the last
// admin; hospital actors may delete non-privileged accounts of their hospital.
func (s *UserService) DeleteUser(ctx context.Context, actor Actor, id string) error {
	user, err := s.userRepo.FindUserByID(ctx, id)
	if err != nil {
		return mapRepoError(err, "User")
	}

	switch {
	case actor.IsAdmin():
	case actor.IsHospital():
		hospitalID, err := s.actorHospitalID(ctx, actor)
		if err != nil {
			return err
		}
		if user.HospitalID == nil || *user.HospitalID != hospitalID || models.IsPrivilegedRole(user.Role) {
			return newError(ErrForbidden, "Unauthorized to delete this user")
		}
	default:
		return newError(ErrForbidden, "Unauthorized to delete users")
	}

	if err := s.userRepo.DeleteUser(ctx, id); err != nil {
		return mapRepoError(err, "User")
	}

	s.audit.record(ctx, actor.idPtr(), "user_delete", fmt.Sprintf("Deleted user %s (%s)", user.Email, id))
	return nil
}

// authorizeAccess lets admins see everyone, hospital actors their hospital's
// accounts, and everyone else only themselves.
func (s *UserService) authorizeAccess(ctx context.Context, actor Actor, target *models.User, message string) error {
	if actor.IsAdmin() || actor.ID == target.ID {
		return nil
	}
	if actor.IsHospital() {
		hospitalID, err := s.actorHospitalID(ctx, actor)
		if err != nil {
			return err
		}
		if target.HospitalID != nil && *target.HospitalID == hospitalID {
			return nil
		}
	}
	return newError(ErrForbidden, "%s", message)
}

// actorHospitalID resolves the hospital a hospital-role caller administers.
// Tokens only carry id, email and role, so the account is read back.
func (s *UserService) actorHospitalID(ctx context.Context, actor Actor) (string, error) {
	account, err := s.userRepo.FindUserByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", newError(ErrForbidden, "Account no longer exists")
		}
		return "", err
	}
	if account.HospitalID == nil {
		return "", newError(ErrForbidden, "Account is not affiliated with a hospital")
	}
	return *account.HospitalID, nil
}

func (s *UserService) ensureHospital(ctx context.Context, hospitalID *string) error {
	if hospitalID == nil {
		return nil
	}
	exists, err := s.hospitalRepo.HospitalExists(ctx, *hospitalID)
	if err != nil {
		return err
	}
	if !exists {
		return newError(ErrNotFound, "Hospital not found")
	}
	return nil
}

func (s *UserService) view(ctx context.Context, id string) (*models.UserView, error) {
	user, err := s.userRepo.FindUserByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "User")
	}
	v := user.View()
	return &v, nil
}

// mapRepoError turns repository sentinels into service errors.
func mapRepoError(err error, entity string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return newError(ErrNotFound, "%s not found", entity)
	case errors.Is(err, repository.ErrDuplicate):
		return newError(ErrConflict, "A %s with this email already exists", strings.ToLower(entity))
	case errors.Is(err, repository.ErrLastAdmin):
		return newError(ErrConflict, "Cannot remove the last admin user")
	case errors.Is(err, repository.ErrForeignKey):
		return newError(ErrNotFound, "Hospital not found")
	default:
		return err
	}
}
