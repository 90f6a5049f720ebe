package repository

import (
	"context"
	"errors"
	"time"

	"signage/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PairingRepository struct {
	db *gorm.DB
}

func NewPairingRepository(db *gorm.DB) *PairingRepository {
	return &PairingRepository{db: db}
}

func (r *PairingRepository) Create(ctx context.Context, pairing *model.DisplayPairing) error {
	return r.db.WithContext(ctx).Create(pairing).Error
}

// GetByID returns the stored row. Status is never rewritten to expired here;
// callers derive it with StatusAt.
func (r *PairingRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.DisplayPairing, error) {
	var pairing model.DisplayPairing
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&pairing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pairing, nil
}

// Complete attaches the display and flips the pairing to completed, but only
// while it is still pending and unexpired at now. It reports whether this
// call won the transition.
func (r *PairingRepository) Complete(ctx context.Context, id, displayID uuid.UUID, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.DisplayPairing{}).
		Where("id = ? AND status = ? AND expires_at > ?", id, model.PairingPending, now).
		Updates(map[string]any{
			"status":     model.PairingCompleted,
			"display_id": displayID,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
