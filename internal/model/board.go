package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Board struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index:idx_boards_org_created,priority:1"`
	Name           string    `gorm:"not null"`
	Description    *string
	Content        datatypes.JSONType[BoardContent] `gorm:"type:jsonb;not null"`
	CreatedBy      uuid.UUID                        `gorm:"type:uuid;not null"`
	CreatedAt      time.Time                        `gorm:"index:idx_boards_org_created,priority:2"`
	UpdatedAt      time.Time
}

// BoardVersion is an immutable snapshot of a board's content taken right
// before the content was replaced.
type BoardVersion struct {
	ID        uuid.UUID                        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BoardID   uuid.UUID                        `gorm:"type:uuid;not null;index:idx_versions_board_created,priority:1"`
	Content   datatypes.JSONType[BoardContent] `gorm:"type:jsonb;not null"`
	CreatedBy uuid.UUID                        `gorm:"type:uuid;not null"`
	CreatedAt time.Time                        `gorm:"index:idx_versions_board_created,priority:2"`
}
