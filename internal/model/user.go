package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the clinic's central identity record. Roles are a many-to-many
// set; a doctor may additionally be linked to one or more specialties.
type User struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username    string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	Email       string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password    string         `gorm:"type:varchar(255);not null" json:"-"` // bcrypt hash, never serialized
	FullName    string         `gorm:"type:varchar(100)" json:"full_name"`
	Phone       string         `gorm:"type:varchar(20)" json:"phone"`
	Enabled     bool           `gorm:"not null;default:true" json:"enabled"`
	Roles       []Role         `gorm:"many2many:user_roles;" json:"roles"`
	Specialties []Specialty    `gorm:"many2many:doctor_specialties;" json:"-"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// RoleNames returns the user's role set as plain names.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

// RefreshToken is one active session: one row per device login. The row is
// rewritten in place on rotation and deleted on logout, expiry or mass
// revocation.
type RefreshToken struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Token      string     `gorm:"type:varchar(512);uniqueIndex;not null" json:"token"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User       User       `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	DeviceID   string     `gorm:"type:varchar(100)" json:"device_id"`
	DeviceName string     `gorm:"type:varchar(100)" json:"device_name"`
	IPAddress  string     `gorm:"type:varchar(45)" json:"ip_address"`
	UserAgent  string     `gorm:"type:varchar(512)" json:"user_agent"`
	ExpiryDate time.Time  `gorm:"not null" json:"expiry_date"`
	LastUsedAt *time.Time `json:"last_used_at"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
}
