package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"signage/internal/logger"
	"signage/internal/metrics"
	"signage/internal/model"
	"signage/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// BoardService owns board content and its version history. Concurrent
// content updates are last-write-wins: the later patch is what the board
// shows, and the content it replaced is kept as a version.
type BoardService struct {
	gate      *Gate
	boards    BoardStore
	displays  DisplayStore
	users     UserStore
	retention int
	now       func() time.Time
}

// NewBoardService builds the service. retention caps stored versions per
// board; zero keeps every version.
func NewBoardService(gate *Gate, boards BoardStore, displays DisplayStore, users UserStore, retention int) *BoardService {
	return &BoardService{
		gate:      gate,
		boards:    boards,
		displays:  displays,
		users:     users,
		retention: retention,
		now:       time.Now,
	}
}

// WithClock replaces the time source. Used by tests.
func (s *BoardService) WithClock(now func() time.Time) *BoardService {
	s.now = now
	return s
}

// BoardUpdate carries the optional fields of an update. Nil means unchanged.
type BoardUpdate struct {
	Name        *string
	Description *string
	Content     *model.BoardContent
}

// authorize loads the board and checks the caller's membership in the
// board's organization.
func (s *BoardService) authorize(ctx context.Context, userID, boardID uuid.UUID, manage bool) (*model.Board, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("load board: %w", err)
	}
	if board == nil {
		return nil, fmt.Errorf("board %w", ErrNotFound)
	}
	if _, err := s.gate.Require(ctx, userID, board.OrganizationID, manage); err != nil {
		return nil, err
	}
	return board, nil
}

func (s *BoardService) Create(ctx context.Context, userID uuid.UUID, name string, description *string) (*model.Board, error) {
	membership, err := s.gate.RequireActive(ctx, userID, true)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: board name is required", ErrInvalidInput)
	}

	now := s.now()
	board := &model.Board{
		ID:             uuid.New(),
		OrganizationID: membership.OrganizationID,
		Name:           name,
		Description:    description,
		Content:        datatypes.NewJSONType(model.DefaultBoardContent()),
		CreatedBy:      userID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.boards.Create(ctx, board); err != nil {
		return nil, fmt.Errorf("create board: %w", err)
	}
	return board, nil
}

// List returns the boards of the caller's active organization, newest first.
// Without an active organization the list is empty.
func (s *BoardService) List(ctx context.Context, userID uuid.UUID) ([]model.Board, error) {
	membership, err := s.gate.Active(ctx, userID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return []model.Board{}, nil
	}

	boards, err := s.boards.ListByOrganization(ctx, membership.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	if boards == nil {
		boards = []model.Board{}
	}
	return boards, nil
}

func (s *BoardService) Get(ctx context.Context, userID, boardID uuid.UUID) (*model.Board, error) {
	return s.authorize(ctx, userID, boardID, false)
}

// GetForDisplay returns the board a display currently shows, or nil. It is
// public so kiosk screens can render without credentials.
func (s *BoardService) GetForDisplay(ctx context.Context, displayID uuid.UUID) (*model.Board, error) {
	display, err := s.displays.GetByID(ctx, displayID)
	if err != nil {
		return nil, fmt.Errorf("load display: %w", err)
	}
	if display == nil {
		return nil, fmt.Errorf("display %w", ErrNotFound)
	}
	if display.CurrentBoardID == nil {
		return nil, nil
	}

	board, err := s.boards.GetByID(ctx, *display.CurrentBoardID)
	if err != nil {
		return nil, fmt.Errorf("load board: %w", err)
	}
	return board, nil
}

// Update patches the board. When content is replaced, the current content is
// first stored as a new version in the same transaction.
func (s *BoardService) Update(ctx context.Context, userID, boardID uuid.UUID, upd BoardUpdate) (*model.Board, error) {
	board, err := s.authorize(ctx, userID, boardID, true)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: board name cannot be empty", ErrInvalidInput)
		}
		board.Name = name
	}
	if upd.Description != nil {
		board.Description = upd.Description
	}
	if upd.Content != nil {
		if err := upd.Content.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	now := s.now()
	board.UpdatedAt = now

	if upd.Content == nil {
		if err := s.boards.Update(ctx, board); err != nil {
			return nil, s.storeError("update board", err)
		}
		return board, nil
	}

	snapshot := &model.BoardVersion{
		ID:        uuid.New(),
		BoardID:   board.ID,
		Content:   board.Content,
		CreatedBy: userID,
		CreatedAt: now,
	}
	board.Content = datatypes.NewJSONType(*upd.Content)

	if err := s.boards.ReplaceContent(ctx, board, snapshot, s.retention); err != nil {
		return nil, s.storeError("update board content", err)
	}

	metrics.BoardVersionsCreated.WithLabelValues("update").Inc()
	logger.FromContext(ctx).Info("board content versioned",
		zap.String("board_id", board.ID.String()),
		zap.String("version_id", snapshot.ID.String()))
	return board, nil
}

// Duplicate copies the board's content into a new board in the same
// organization. History is not copied.
func (s *BoardService) Duplicate(ctx context.Context, userID, boardID uuid.UUID) (*model.Board, error) {
	src, err := s.authorize(ctx, userID, boardID, true)
	if err != nil {
		return nil, err
	}

	content, err := src.Content.Data().Clone()
	if err != nil {
		return nil, fmt.Errorf("copy board content: %w", err)
	}
	var description *string
	if src.Description != nil {
		d := *src.Description
		description = &d
	}

	now := s.now()
	board := &model.Board{
		ID:             uuid.New(),
		OrganizationID: src.OrganizationID,
		Name:           src.Name + " (Copy)",
		Description:    description,
		Content:        datatypes.NewJSONType(content),
		CreatedBy:      userID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.boards.Create(ctx, board); err != nil {
		return nil, fmt.Errorf("duplicate board: %w", err)
	}
	return board, nil
}

// Delete removes the board unless a display is showing it.
func (s *BoardService) Delete(ctx context.Context, userID, boardID uuid.UUID) error {
	if _, err := s.authorize(ctx, userID, boardID, true); err != nil {
		return err
	}
	if err := s.boards.DeleteIfUnreferenced(ctx, boardID); err != nil {
		return s.storeError("delete board", err)
	}
	return nil
}

func (s *BoardService) storeError(op string, err error) error {
	switch {
	case errors.Is(err, repository.ErrBoardNotFound):
		return fmt.Errorf("board %w", ErrNotFound)
	case errors.Is(err, repository.ErrBoardInUse):
		return fmt.Errorf("%w: board is currently assigned to a display", ErrConflict)
	}
	return fmt.Errorf("%s: %w", op, err)
}
