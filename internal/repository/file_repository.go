package repository

import (
	"context"
	"errors"

	"signage/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FileRepository struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) *FileRepository {
	return &FileRepository{db: db}
}

func (r *FileRepository) Create(ctx context.Context, file *model.File) error {
	err := r.db.WithContext(ctx).Create(file).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateStorageID
	}
	return err
}

func (r *FileRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.File, error) {
	var file model.File
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&file).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &file, nil
}

func (r *FileRepository) GetByStorageID(ctx context.Context, storageID string) (*model.File, error) {
	var file model.File
	if err := r.db.WithContext(ctx).Where("storage_id = ?", storageID).First(&file).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &file, nil
}

func (r *FileRepository) ListByBoard(ctx context.Context, boardID uuid.UUID) ([]model.File, error) {
	var files []model.File
	err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("uploaded_at DESC").
		Find(&files).Error
	return files, err
}

func (r *FileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.File{}, "id = ?", id).Error
}
