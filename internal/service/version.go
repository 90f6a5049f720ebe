package service

import (
	"context"
	"fmt"
	"time"

	"signage/internal/logger"
	"signage/internal/metrics"
	"signage/internal/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// VersionSummary is a version with its author resolved for presentation.
type VersionSummary struct {
	ID          uuid.UUID          `json:"id"`
	BoardID     uuid.UUID          `json:"board_id"`
	Content     model.BoardContent `json:"content"`
	CreatedBy   uuid.UUID          `json:"created_by"`
	CreatorName string             `json:"creator_name"`
	CreatedAt   time.Time          `json:"created_at"`
}

// ListVersions returns the board's history, newest first.
func (s *BoardService) ListVersions(ctx context.Context, userID, boardID uuid.UUID) ([]VersionSummary, error) {
	if _, err := s.authorize(ctx, userID, boardID, false); err != nil {
		return nil, err
	}

	versions, err := s.boards.ListVersions(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(versions))
	seen := make(map[uuid.UUID]bool, len(versions))
	for _, v := range versions {
		if !seen[v.CreatedBy] {
			seen[v.CreatedBy] = true
			ids = append(ids, v.CreatedBy)
		}
	}
	authors, err := s.users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load version authors: %w", err)
	}

	out := make([]VersionSummary, 0, len(versions))
	for _, v := range versions {
		out = append(out, summarize(v, authors))
	}
	return out, nil
}

// GetVersion returns one version. Access is checked against the board the
// version belongs to.
func (s *BoardService) GetVersion(ctx context.Context, userID, versionID uuid.UUID) (*VersionSummary, error) {
	version, _, err := s.loadVersion(ctx, userID, versionID, false)
	if err != nil {
		return nil, err
	}

	authors, err := s.users.GetByIDs(ctx, []uuid.UUID{version.CreatedBy})
	if err != nil {
		return nil, fmt.Errorf("load version author: %w", err)
	}
	summary := summarize(*version, authors)
	return &summary, nil
}

// Restore copies a version's content back onto its board. The board's
// current content is versioned first, so a restore can itself be undone.
func (s *BoardService) Restore(ctx context.Context, userID, versionID uuid.UUID) (*model.Board, error) {
	version, board, err := s.loadVersion(ctx, userID, versionID, true)
	if err != nil {
		return nil, err
	}

	content, err := version.Content.Data().Clone()
	if err != nil {
		return nil, fmt.Errorf("copy version content: %w", err)
	}

	now := s.now()
	snapshot := &model.BoardVersion{
		ID:        uuid.New(),
		BoardID:   board.ID,
		Content:   board.Content,
		CreatedBy: userID,
		CreatedAt: now,
	}
	board.Content = datatypes.NewJSONType(content)
	board.UpdatedAt = now

	if err := s.boards.ReplaceContent(ctx, board, snapshot, s.retention); err != nil {
		return nil, s.storeError("restore board", err)
	}

	metrics.BoardVersionsCreated.WithLabelValues("restore").Inc()
	logger.FromContext(ctx).Info("board restored",
		zap.String("board_id", board.ID.String()),
		zap.String("restored_version_id", version.ID.String()),
		zap.String("version_id", snapshot.ID.String()))
	return board, nil
}

func (s *BoardService) loadVersion(ctx context.Context, userID, versionID uuid.UUID, manage bool) (*model.BoardVersion, *model.Board, error) {
	if userID == uuid.Nil {
		return nil, nil, ErrUnauthenticated
	}
	version, err := s.boards.GetVersion(ctx, versionID)
	if err != nil {
		return nil, nil, fmt.Errorf("load version: %w", err)
	}
	if version == nil {
		return nil, nil, fmt.Errorf("version %w", ErrNotFound)
	}
	board, err := s.authorize(ctx, userID, version.BoardID, manage)
	if err != nil {
		return nil, nil, err
	}
	return version, board, nil
}

func summarize(v model.BoardVersion, authors map[uuid.UUID]model.User) VersionSummary {
	var author *model.User
	if u, ok := authors[v.CreatedBy]; ok {
		author = &u
	}
	return VersionSummary{
		ID:          v.ID,
		BoardID:     v.BoardID,
		Content:     v.Content.Data(),
		CreatedBy:   v.CreatedBy,
		CreatorName: author.DisplayName(),
		CreatedAt:   v.CreatedAt,
	}
}
