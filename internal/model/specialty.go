package model

import (
	"time"

	"github.com/google/uuid"
)

// Specialty is a medical specialty doctors can be assigned to.
type Specialty struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:varchar(500)" json:"description"`
	Enabled     bool      `gorm:"not null;default:true" json:"enabled"`
	Doctors     []User    `gorm:"many2many:doctor_specialties;" json:"-"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
