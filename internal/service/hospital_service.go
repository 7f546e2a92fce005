package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"healthcare-admin-api/internal/models"
	"healthcare-admin-api/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type HospitalService struct {
	hospitalRepo *repository.HospitalRepository
	audit        auditor
}

func NewHospitalService(
	hospitalRepo *repository.HospitalRepository,
	auditRepo *repository.AuditRepository,
	log zerolog.Logger,
) *HospitalService {
	return &HospitalService{
		hospitalRepo: hospitalRepo,
		audit:        auditor{repo: auditRepo, log: log},
	}
}

// HospitalInput carries hospital fields for create and update. On update,
// nil fields are left untouched.
type HospitalInput struct {
	Name          *string
	Address       *string
	City          *string
	State         *string
	ZipCode       *string
	ContactPerson *string
	Email         *string
	Phone         *string
	IsActive      *bool
}

func (in HospitalInput) empty() bool {
	return in.Name == nil && in.Address == nil && in.City == nil && in.State == nil &&
		in.ZipCode == nil && in.ContactPerson == nil && in.Email == nil && in.Phone == nil &&
		in.IsActive == nil
}

// HospitalListResult is one page of hospitals.
type HospitalListResult struct {
	Hospitals  []models.Hospital `json:"hospitals"`
	Pagination models.Pagination `json:"pagination"`
}

// CreateHospital registers a hospital (admin only)
func (s *HospitalService) CreateHospital(ctx context.Context, actor Actor, in HospitalInput) (*models.Hospital, error) {
	if !actor.IsAdmin() {
		return nil, newError(ErrForbidden, "Admin access required")
	}

	name := ""
	if in.Name != nil {
		name = strings.TrimSpace(*in.Name)
	}
	email := ""
	if in.Email != nil {
		email = normalizeEmail(*in.Email)
	}
	if name == "" || email == "" {
		return nil, newError(ErrValidation, "Name and email are required")
	}
	if !isEmail(email) {
		return nil, newError(ErrValidation, "Invalid email format")
	}

	taken, err := s.hospitalRepo.EmailTaken(ctx, email, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, newError(ErrConflict, "A hospital with this email already exists")
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	hospital := &models.Hospital{
		ID:            uuid.NewString(),
		Name:          name,
		Address:       trimmedOrNil(in.Address),
		City:          trimmedOrNil(in.City),
		State:         trimmedOrNil(in.State),
		ZipCode:       trimmedOrNil(in.ZipCode),
		ContactPerson: trimmedOrNil(in.ContactPerson),
		Email:         email,
		Phone:         trimmedOrNil(in.Phone),
		IsActive:      active,
	}
	if err := s.hospitalRepo.CreateHospital(ctx, hospital); err != nil {
		return nil, mapRepoError(err, "Hospital")
	}

	s.audit.record(ctx, actor.idPtr(), "hospital_create", fmt.Sprintf("Created hospital: %s (%s)", hospital.Name, hospital.ID))

	return hospital, nil
}

// ListHospitals returns a page of hospitals ordered by name
func (s *HospitalService) ListHospitals(ctx context.Context, f repository.HospitalFilter, page models.Page) (*HospitalListResult, error) {
	if f.Status != "" && f.Status != "active" && f.Status != "inactive" {
		return nil, newError(ErrValidation, "Status must be active or inactive")
	}

	page = page.Normalize()
	hospitals, total, err := s.hospitalRepo.ListHospitals(ctx, f, page)
	if err != nil {
		return nil, err
	}
	if hospitals == nil {
		hospitals = []models.Hospital{}
	}

	return &HospitalListResult{
		Hospitals:  hospitals,
		Pagination: models.NewPagination(page, total),
	}, nil
}

// GetHospitalStats counts hospitals by active flag
func (s *HospitalService) GetHospitalStats(ctx context.Context) (*repository.HospitalStats, error) {
	return s.hospitalRepo.GetHospitalStats(ctx)
}

// GetHospital retrieves a hospital by ID
func (s *HospitalService) GetHospital(ctx context.Context, id string) (*models.Hospital, error) {
	hospital, err := s.hospitalRepo.GetHospitalByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "Hospital")
	}
	return hospital, nil
}

// UpdateHospital applies a partial update (admin only)
func (s *HospitalService) UpdateHospital(ctx context.Context, actor Actor, id string, in HospitalInput) (*models.Hospital, error) {
	if !actor.IsAdmin() {
		return nil, newError(ErrForbidden, "Admin access required")
	}
	if in.empty() {
		return nil, newError(ErrValidation, "No update data provided")
	}

	existing, err := s.hospitalRepo.GetHospitalByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "Hospital")
	}

	fields := map[string]interface{}{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, newError(ErrValidation, "Name cannot be empty")
		}
		fields["name"] = name
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if !isEmail(email) {
			return nil, newError(ErrValidation, "Invalid email format")
		}
		taken, err := s.hospitalRepo.EmailTaken(ctx, email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, newError(ErrConflict, "A hospital with this email already exists")
		}
		fields["email"] = email
	}
	optional := map[string]*string{
		"address":        in.Address,
		"city":           in.City,
		"state":          in.State,
		"zip_code":       in.ZipCode,
		"contact_person": in.ContactPerson,
		"phone":          in.Phone,
	}
	for column, value := range optional {
		if value != nil {
			fields[column] = trimmedOrNil(value)
		}
	}
	if in.IsActive != nil {
		fields["is_active"] = *in.IsActive
	}

	if err := s.hospitalRepo.UpdateHospital(ctx, id, fields); err != nil {
		return nil, mapRepoError(err, "Hospital")
	}

	s.audit.record(ctx, actor.idPtr(), "hospital_update", fmt.Sprintf("Updated hospital: %s (%s)", existing.Name, id))

	return s.GetHospital(ctx, id)
}

// DeleteHospital removes a hospital no account references (admin only)
func (s *HospitalService) DeleteHospital(ctx context.Context, actor Actor, id string) error {
	if !actor.IsAdmin() {
		return newError(ErrForbidden, "Admin access required")
	}

	dependents, err := s.hospitalRepo.DeleteHospital(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrHasDependents) {
			return newError(ErrConflict, "Cannot delete hospital with associated users").with("count", dependents)
		}
		return mapRepoError(err, "Hospital")
	}

	s.audit.record(ctx, actor.idPtr(), "hospital_delete", fmt.Sprintf("Deleted hospital %s", id))
	return nil
}

// SetHospitalStatus activates or deactivates a hospital (admin only)
func (s *HospitalService) SetHospitalStatus(ctx context.Context, actor Actor, id string, active bool) error {
	if !actor.IsAdmin() {
		return newError(ErrForbidden, "Admin access required")
	}
	if err := s.hospitalRepo.SetHospitalActive(ctx, id, active); err != nil {
		return mapRepoError(err, "Hospital")
	}

	action := "hospital_deactivate"
	if active {
		action = "hospital_activate"
	}
	s.audit.record(ctx, actor.idPtr(), action, fmt.Sprintf("Set hospital %s active=%t", id, active))
	return nil
}
