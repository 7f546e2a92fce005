package models

import "time"

// Hospital represents a hospital/medical facility in the system
type Hospital struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	Name          string    `gorm:"size:100;not null;index" json:"name"`
	Address       *string   `gorm:"size:255" json:"address"`
	City          *string   `gorm:"size:100" json:"city"`
	State         *string   `gorm:"size:100" json:"state"`
	ZipCode       *string   `gorm:"size:20" json:"zipCode"`
	ContactPerson *string   `gorm:"size:100" json:"contactPerson"`
	Email         string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Phone         *string   `gorm:"size:32" json:"phone"`
	IsActive      bool      `gorm:"not null" json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// TableName specifies the table name for Hospital model
func (Hospital) TableName() string {
	return "hospitals"
}
