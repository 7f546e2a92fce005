package repository

import (
	"context"

	"healthcare-admin-api/internal/models"

	"gorm.io/gorm"
)

// UserFilter narrows ListUsers. Empty fields are ignored.
type UserFilter struct {
	Search     string
	Role       string
	HospitalID string
	Status     string
}

// UserStats summarizes the users table.
type UserStats struct {
	Total    int64            `json:"total"`
	Active   int64            `json:"active"`
	Inactive int64            `json:"inactive"`
	ByRole   map[string]int64 `json:"byRole"`
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindUserByEmail finds a user by email
func (r *UserRepository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// FindUserForLogin finds a user by email restricted by a login role filter.
// An empty filter matches any role, "user" matches the generic roles and any
// other value must equal the stored role.
func (r *UserRepository) FindUserForLogin(ctx context.Context, email, roleFilter string) (*models.User, error) {
	q := r.db.WithContext(ctx).Where("email = ?", email)
	switch roleFilter {
	case "":
	case models.RoleUser:
		q = q.Where("role IN ?", models.GenericUserRoles)
	default:
		q = q.Where("role = ?", roleFilter)
	}

	var user models.User
	if err := q.First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// FindUserByID finds a user by id with its hospital loaded
func (r *UserRepository) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("Hospital").Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// EmailTaken reports whether another user already owns email.
func (r *UserRepository) EmailTaken(ctx context.Context, email, exceptID string) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateUser creates a new user
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error)
}

// UpdateUser applies column updates to one user. Demoting or deactivating the
// last active admin is refused with ErrLastAdmin.
func (r *UserRepository) UpdateUser(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("id = ?", id).First(&user).Error; err != nil {
			return translate(err)
		}

		if removesAdmin(&user, fields) {
			if err := ensureAnotherActiveAdmin(tx, id); err != nil {
				return err
			}
		}

		res := tx.Model(&models.User{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// DeleteUser hard deletes a user. The last active admin cannot be deleted.
func (r *UserRepository) DeleteUser(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("id = ?", id).First(&user).Error; err != nil {
			return translate(err)
		}

		if user.Role == models.RoleAdmin && user.IsActive {
			if err := ensureAnotherActiveAdmin(tx, id); err != nil {
				return err
			}
		}

		res := tx.Where("id = ?", id).Delete(&models.User{})
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// ListUsers returns one page of users matching f and the total match count.
func (r *UserRepository) ListUsers(ctx context.Context, f UserFilter, page models.Page) ([]models.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Scopes(userFilter(f)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := r.db.WithContext(ctx).
		Scopes(userFilter(f)).
		Preload("Hospital").
		Order("first_name ASC, last_name ASC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// CountUsersByHospital counts accounts affiliated with a hospital.
func (r *UserRepository) CountUsersByHospital(ctx context.Context, hospitalID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("hospital_id = ?", hospitalID).Count(&count).Error
	return count, err
}

// GetUserStats counts users by activity and role.
func (r *UserRepository) GetUserStats(ctx context.Context) (*UserStats, error) {
	stats := &UserStats{ByRole: map[string]int64{}}
	db := r.db.WithContext(ctx)

	if err := db.Model(&models.User{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.User{}).Where("is_active = ?", true).Count(&stats.Active).Error; err != nil {
		return nil, err
	}
	stats.Inactive = stats.Total - stats.Active

	var rows []struct {
		Role  string
		Count int64
	}
	if err := db.Model(&models.User{}).Select("role, COUNT(*) AS count").Group("role").Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		stats.ByRole[row.Role] = row.Count
	}
	return stats, nil
}

func userFilter(f UserFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Search != "" {
			like := likePattern(f.Search)
			db = db.Where("(first_name LIKE ? ESCAPE '!' OR last_name LIKE ? ESCAPE '!' OR email LIKE ? ESCAPE '!')", like, like, like)
		}
		if f.Role != "" {
			db = db.Where("role = ?", f.Role)
		}
		if f.HospitalID != "" {
			db = db.Where("hospital_id = ?", f.HospitalID)
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

func removesAdmin(user *models.User, fields map[string]interface{}) bool {
	if user.Role != models.RoleAdmin || !user.IsActive {
		return false
	}
	if role, ok := fields["role"]; ok && role != models.RoleAdmin {
		return true
	}
	if active, ok := fields["is_active"]; ok && active == false {
		return true
	}
	return false
}

func ensureAnotherActiveAdmin(tx *gorm.DB, exceptID string) error {
	var others int64
	err := tx.Model(&models.User{}).
		Where("role = ? AND is_active = ? AND id <> ?", models.RoleAdmin, true, exceptID).
		Count(&others).Error
	if err != nil {
		return err
	}
	if others == 0 {
		return ErrLastAdmin
	}
	return nil
}
