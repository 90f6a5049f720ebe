package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Email          string    `gorm:"uniqueIndex;not null"`
	HashedPassword string    `gorm:"not null"`
	Name           string    `gorm:"not null"`
	// ActiveOrganizationID is the organization the user explicitly selected.
	// Nil means no organization is active.
	ActiveOrganizationID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt            time.Time  `gorm:"autoCreateTime"`
}

// DisplayName is what other members see next to things this user created.
func (u *User) DisplayName() string {
	if u == nil {
		return "Unknown"
	}
	if u.Name != "" {
		return u.Name
	}
	if u.Email != "" {
		return u.Email
	}
	return "Unknown"
}
