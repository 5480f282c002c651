package model

import (
	"time"

	"github.com/google/uuid"
)

// Role names form a closed set; exactly one row exists per name, seeded at
// startup.
const (
	RoleSuperAdmin   = "SUPERADMIN"
	RoleAdmin        = "ADMIN"
	RoleReceptionist = "RECEPTIONIST"
	RoleDoctor       = "DOCTOR"
	RoleNurse        = "NURSE"
	RolePatient      = "PATIENT"
)

// AllRoleNames returns the closed role enumeration in seeding order.
func AllRoleNames() []string {
	return []string{
		RoleSuperAdmin,
		RoleAdmin,
		RoleReceptionist,
		RoleDoctor,
		RoleNurse,
		RolePatient,
	}
}

// IsValidRoleName reports whether name belongs to the closed enumeration.
func IsValidRoleName(name string) bool {
	switch name {
	case RoleSuperAdmin, RoleAdmin, RoleReceptionist, RoleDoctor, RoleNurse, RolePatient:
		return true
	}
	return false
}

// Role is one persisted row of the closed enumeration.
type Role struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
