package service

import "healthcare-admin-api/internal/models"

// Actor is the authenticated caller of a service method.
type Actor struct {
	ID    string
	Email string
	Role  string
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

func (a Actor) IsHospital() bool {
	return a.Role == models.RoleHospital
}

func (a Actor) idPtr() *string {
	if a.ID == "" {
		return nil
	}
	id := a.ID
	return &id
}
