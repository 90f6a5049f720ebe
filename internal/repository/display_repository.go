package repository

import (
	"context"
	"errors"

	"signage/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DisplayRepository struct {
	db *gorm.DB
}

func NewDisplayRepository(db *gorm.DB) *DisplayRepository {
	return &DisplayRepository{db: db}
}

// Create inserts the display. A board deleted since it was checked surfaces
// as ErrBoardNotFound.
func (r *DisplayRepository) Create(ctx context.Context, display *model.Display) error {
	return boardReference(r.db.WithContext(ctx).Create(display).Error)
}

func (r *DisplayRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Display, error) {
	var display model.Display
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&display).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &display, nil
}

func (r *DisplayRepository) ListByOrganization(ctx context.Context, organizationID uuid.UUID) ([]model.Display, error) {
	var displays []model.Display
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Order("created_at").
		Find(&displays).Error
	return displays, err
}

func (r *DisplayRepository) Update(ctx context.Context, display *model.Display) error {
	err := r.db.WithContext(ctx).
		Model(&model.Display{}).
		Where("id = ?", display.ID).
		Updates(map[string]any{
			"name":             display.Name,
			"location":         display.Location,
			"current_board_id": display.CurrentBoardID,
			"updated_at":       display.UpdatedAt,
		}).Error
	return boardReference(err)
}

// boardReference maps a violated current_board_id foreign key.
func boardReference(err error) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return ErrBoardNotFound
	}
	return err
}

func (r *DisplayRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Display{}, "id = ?", id).Error
}
