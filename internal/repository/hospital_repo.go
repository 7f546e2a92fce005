package repository

import (
	"context"

	"healthcare-admin-api/internal/models"

	"gorm.io/gorm"
)

// HospitalFilter narrows ListHospitals. Empty fields are ignored.
type HospitalFilter struct {
	Search string
	Status string
}

// HospitalStats summarizes the hospitals table.
type HospitalStats struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
}

type HospitalRepository struct {
	db *gorm.DB
}

func NewHospitalRepo(db *gorm.DB) *HospitalRepository {
	return &HospitalRepository{db: db}
}

// ListHospitals returns one page of hospitals ordered by name.
func (r *HospitalRepository) ListHospitals(ctx context.Context, f HospitalFilter, page models.Page) ([]models.Hospital, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Hospital{}).Scopes(hospitalFilter(f)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var hospitals []models.Hospital
	err := r.db.WithContext(ctx).
		Scopes(hospitalFilter(f)).
		Order("name ASC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&hospitals).Error
	if err != nil {
		return nil, 0, err
	}
	return hospitals, total, nil
}

// GetHospitalByID retrieves a hospital by ID regardless of its active flag
func (r *HospitalRepository) GetHospitalByID(ctx context.Context, id string) (*models.Hospital, error) {
	var hospital models.Hospital
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&hospital).Error; err != nil {
		return nil, translate(err)
	}
	return &hospital, nil
}

// HospitalExists reports whether a hospital row with id exists.
func (r *HospitalRepository) HospitalExists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Hospital{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// EmailTaken reports whether another hospital already uses email.
func (r *HospitalRepository) EmailTaken(ctx context.Context, email, exceptID string) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Hospital{}).Where("email = ?", email)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateHospital creates a new hospital
func (r *HospitalRepository) CreateHospital(ctx context.Context, hospital *models.Hospital) error {
	return translate(r.db.WithContext(ctx).Create(hospital).Error)
}

// UpdateHospital applies column updates to one hospital
func (r *HospitalRepository) UpdateHospital(ctx context.Context, id string, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&models.Hospital{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetHospitalActive toggles the is_active flag
func (r *HospitalRepository) SetHospitalActive(ctx context.Context, id string, active bool) error {
	return r.UpdateHospital(ctx, id, map[string]interface{}{"is_active": active})
}

// DeleteHospital removes a hospital that no account references. When
// accounts still reference it, the count is returned with ErrHasDependents.
func (r *HospitalRepository) DeleteHospital(ctx context.Context, id string) (int64, error) {
	var dependents int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("hospital_id = ?", id).Count(&dependents).Error; err != nil {
			return err
		}
		if dependents > 0 {
			return ErrHasDependents
		}

		res := tx.Where("id = ?", id).Delete(&models.Hospital{})
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	return dependents, err
}

// GetHospitalStats counts hospitals by active flag.
func (r *HospitalRepository) GetHospitalStats(ctx context.Context) (*HospitalStats, error) {
	stats := &HospitalStats{}
	db := r.db.WithContext(ctx)

	if err := db.Model(&models.Hospital{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Hospital{}).Where("is_active = ?", true).Count(&stats.Active).Error; err != nil {
		return nil, err
	}
	stats.Inactive = stats.Total - stats.Active
	return stats, nil
}

func hospitalFilter(f HospitalFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Search != "" {
			like := likePattern(f.Search)
			db = db.Where("(name LIKE ? ESCAPE '!' OR email LIKE ? ESCAPE '!' OR contact_person LIKE ? ESCAPE '!')", like, like, like)
		}
		switch f.Status {
		case "active":
			db = db.Where("is_active = ?", true)
		case "inactive":
			db = db.Where("is_active = ?", false)
		}
		return db
	}
}
