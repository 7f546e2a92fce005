package models

import "time"

const (
	RoleAdmin    = "admin"
	RoleDoctor   = "doctor"
	RoleNurse    = "nurse"
	RolePatient  = "patient"
	RoleStaff    = "staff"
	RoleHospital = "hospital"

	// RoleUser is the generic login filter, not a stored role.
	RoleUser = "user"
)

// Roles is the full set of roles an account may hold.
var Roles = []string{RoleAdmin, RoleDoctor, RoleNurse, RolePatient, RoleStaff, RoleHospital}

// GenericUserRoles are the stored roles matched by the "user" login filter.
// Admin and hospital never belong here.
var GenericUserRoles = []string{RolePatient, RoleStaff, RoleUser}

// IsValidRole reports whether role is one of Roles.
func IsValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsPrivilegedRole reports whether role is admin or hospital.
func IsPrivilegedRole(role string) bool {
	return role == RoleAdmin || role == RoleHospital
}

// User represents the users table
type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	FirstName    string    `gorm:"size:50;not null" json:"firstName"`
	LastName     string    `gorm:"size:50;not null" json:"lastName"`
	Email        string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Phone        *string   `gorm:"size:32" json:"phone"`
	PasswordHash string    `gorm:"column:password;size:255;not null" json:"-"`
	Role         string    `gorm:"size:20;not null;index" json:"role"`
	HospitalID   *string   `gorm:"size:36;index" json:"hospitalId"`
	IsActive     bool      `gorm:"not null" json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Hospital *Hospital `gorm:"foreignKey:HospitalID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// UserView is the serialized form of an account. It has no password field.
type UserView struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	Phone        *string   `json:"phone"`
	Role         string    `json:"role"`
	HospitalID   *string   `json:"hospitalId"`
	HospitalName *string   `json:"hospitalName,omitempty"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// View strips the password hash. The hospital name is filled in when the
// Hospital association was loaded.
func (u *User) View() UserView {
	v := UserView{
		ID:         u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Email:      u.Email,
		Phone:      u.Phone,
		Role:       u.Role,
		HospitalID: u.HospitalID,
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
	if u.Hospital != nil {
		name := u.Hospital.Name
		v.HospitalName = &name
	}
	return v
}

// Views converts a slice of users.
func Views(users []User) []UserView {
	out := make([]UserView, 0, len(users))
	for i := range users {
		out = append(out, users[i].View())
	}
	return out
}
