package model

import (
	"time"

	"github.com/google/uuid"
)

// File is the metadata row that ties an uploaded blob to an organization and
// the board it was uploaded for.
type File struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	StorageID      string    `gorm:"not null;uniqueIndex"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index"`
	BoardID        uuid.UUID `gorm:"type:uuid;not null;index"`
	UploadedBy     uuid.UUID `gorm:"type:uuid;not null"`
	UploadedAt     time.Time
}
