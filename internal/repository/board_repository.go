package repository

import (
	"context"
	"errors"

	"signage/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BoardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

func (r *BoardRepository) Create(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Create(board).Error
}

// ListByOrganization returns the organization's boards, newest first.
func (r *BoardRepository) ListByOrganization(ctx context.Context, organizationID uuid.UUID) ([]model.Board, error) {
	var boards []model.Board
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Order("created_at DESC").
		Find(&boards).Error
	return boards, err
}

func (r *BoardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	var board model.Board
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&board).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // Return nil, nil to indicate that the board was not found
		}
		return nil, err
	}
	return &board, nil
}

// Update saves name and description changes. It never versions content.
func (r *BoardRepository) Update(ctx context.Context, board *model.Board) error {
	result := r.db.WithContext(ctx).
		Model(&model.Board{}).
		Where("id = ?", board.ID).
		Updates(map[string]any{
			"name":        board.Name,
			"description": board.Description,
			"updated_at":  board.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBoardNotFound
	}
	return nil
}

// ReplaceContent stores the pre-change snapshot and the changed board in a
// single transaction, so readers never see one without the other. The board
// row is locked and the snapshot takes its content from that row, so every
// overwritten content ends up in history even when writers race. When keep
// is positive, versions beyond the newest keep rows are pruned in the same
// transaction.
func (r *BoardRepository) ReplaceContent(ctx context.Context, board *model.Board, snapshot *model.BoardVersion, keep int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current model.Board
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", board.ID).First(&current).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBoardNotFound
		}
		if err != nil {
			return err
		}
		snapshot.Content = current.Content

		if err := tx.Create(snapshot).Error; err != nil {
			return err
		}

		if keep > 0 {
			if err := pruneVersions(tx, board.ID, keep); err != nil {
				return err
			}
		}

		result := tx.Model(&model.Board{}).
			Where("id = ?", board.ID).
			Updates(map[string]any{
				"name":        board.Name,
				"description": board.Description,
				"content":     board.Content,
				"updated_at":  board.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrBoardNotFound
		}
		return nil
	})
}

func pruneVersions(tx *gorm.DB, boardID uuid.UUID, keep int) error {
	newest := tx.Model(&model.BoardVersion{}).
		Select("id").
		Where("board_id = ?", boardID).
		Order("created_at DESC").
		Limit(keep)

	return tx.Where("board_id = ? AND id NOT IN (?)", boardID, newest).
		Delete(&model.BoardVersion{}).Error
}

// DeleteIfUnreferenced removes the board unless a display currently shows
// it. The check and the delete share a transaction and the board row is
// locked so a concurrent assignment cannot slip in between.
func (r *BoardRepository) DeleteIfUnreferenced(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var board model.Board
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&board).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBoardNotFound
		}
		if err != nil {
			return err
		}

		var inUse int64
		if err := tx.Model(&model.Display{}).Where("current_board_id = ?", id).Count(&inUse).Error; err != nil {
			return err
		}
		if inUse > 0 {
			return ErrBoardInUse
		}

		err = tx.Delete(&model.Board{}, "id = ?", id).Error
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrBoardInUse
		}
		return err
	})
}

func (r *BoardRepository) GetVersion(ctx context.Context, id uuid.UUID) (*model.BoardVersion, error) {
	var version model.BoardVersion
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&version).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &version, nil
}

// ListVersions returns the board's history, newest first.
func (r *BoardRepository) ListVersions(ctx context.Context, boardID uuid.UUID) ([]model.BoardVersion, error) {
	var versions []model.BoardVersion
	err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("created_at DESC").
		Find(&versions).Error
	return versions, err
}
