package model

import (
	"time"

	"github.com/google/uuid"
)

// Display is a physical or virtual screen showing at most one board.
type Display struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	OrganizationID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Name           string     `gorm:"not null"`
	Location       *string
	CurrentBoardID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type PairingStatus string

const (
	PairingPending   PairingStatus = "pending"
	PairingCompleted PairingStatus = "completed"
	// PairingExpired is only ever derived at read time, it is never stored.
	PairingExpired PairingStatus = "expired"
)

// DisplayPairing is the short-lived handshake a kiosk shows as a QR code so
// a signed-in operator can attach it to a display.
type DisplayPairing struct {
	ID        uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Status    PairingStatus `gorm:"not null;index;check:status IN ('pending', 'completed')"`
	DisplayID *uuid.UUID    `gorm:"type:uuid"`
	CreatedAt time.Time     `gorm:"index"`
	ExpiresAt time.Time     `gorm:"not null"`
}

// StatusAt is the externally visible status at the given instant. A pending
// pairing reads as expired from ExpiresAt onwards.
func (p DisplayPairing) StatusAt(now time.Time) PairingStatus {
	if p.Status == PairingPending && !now.Before(p.ExpiresAt) {
		return PairingExpired
	}
	return p.Status
}
