package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"signage/internal/model"
	"signage/internal/repository"

	"github.com/google/uuid"
)

type DisplayService struct {
	gate     *Gate
	displays DisplayStore
	boards   BoardStore
	now      func() time.Time
}

func NewDisplayService(gate *Gate, displays DisplayStore, boards BoardStore) *DisplayService {
	return &DisplayService{gate: gate, displays: displays, boards: boards, now: time.Now}
}

// WithClock replaces the time source. Used by tests.
func (s *DisplayService) WithClock(now func() time.Time) *DisplayService {
	s.now = now
	return s
}

// DisplayInput holds the writable display fields. On update nil leaves a
// field unchanged; ClearBoard detaches the current board.
type DisplayInput struct {
	Name           *string
	Location       *string
	CurrentBoardID *uuid.UUID
	ClearBoard     bool
}

func (s *DisplayService) Create(ctx context.Context, userID uuid.UUID, in DisplayInput) (*model.Display, error) {
	membership, err := s.gate.RequireActive(ctx, userID, true)
	if err != nil {
		return nil, err
	}
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, fmt.Errorf("%w: display name is required", ErrInvalidInput)
	}
	if in.CurrentBoardID != nil {
		if err := s.checkBoard(ctx, membership.OrganizationID, *in.CurrentBoardID); err != nil {
			return nil, err
		}
	}

	now := s.now()
	display := &model.Display{
		ID:             uuid.New(),
		OrganizationID: membership.OrganizationID,
		Name:           strings.TrimSpace(*in.Name),
		Location:       in.Location,
		CurrentBoardID: in.CurrentBoardID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.displays.Create(ctx, display); err != nil {
		return nil, displayStoreError("create display", err)
	}
	return display, nil
}

// List returns the displays of the caller's active organization. Without an
// active organization the list is empty.
func (s *DisplayService) List(ctx context.Context, userID uuid.UUID) ([]model.Display, error) {
	membership, err := s.gate.Active(ctx, userID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return []model.Display{}, nil
	}

	displays, err := s.displays.ListByOrganization(ctx, membership.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("list displays: %w", err)
	}
	if displays == nil {
		displays = []model.Display{}
	}
	return displays, nil
}

// Get is public. Kiosk screens poll it without credentials.
func (s *DisplayService) Get(ctx context.Context, displayID uuid.UUID) (*model.Display, error) {
	display, err := s.displays.GetByID(ctx, displayID)
	if err != nil {
		return nil, fmt.Errorf("load display: %w", err)
	}
	if display == nil {
		return nil, fmt.Errorf("display %w", ErrNotFound)
	}
	return display, nil
}

func (s *DisplayService) Update(ctx context.Context, userID, displayID uuid.UUID, in DisplayInput) (*model.Display, error) {
	display, err := s.authorize(ctx, userID, displayID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: display name cannot be empty", ErrInvalidInput)
		}
		display.Name = name
	}
	if in.Location != nil {
		display.Location = in.Location
	}
	switch {
	case in.ClearBoard:
		display.CurrentBoardID = nil
	case in.CurrentBoardID != nil:
		if err := s.checkBoard(ctx, display.OrganizationID, *in.CurrentBoardID); err != nil {
			return nil, err
		}
		display.CurrentBoardID = in.CurrentBoardID
	}
	display.UpdatedAt = s.now()

	if err := s.displays.Update(ctx, display); err != nil {
		return nil, displayStoreError("update display", err)
	}
	return display, nil
}

func (s *DisplayService) Remove(ctx context.Context, userID, displayID uuid.UUID) error {
	if _, err := s.authorize(ctx, userID, displayID); err != nil {
		return err
	}
	if err := s.displays.Delete(ctx, displayID); err != nil {
		return fmt.Errorf("delete display: %w", err)
	}
	return nil
}

func (s *DisplayService) authorize(ctx context.Context, userID, displayID uuid.UUID) (*model.Display, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	display, err := s.displays.GetByID(ctx, displayID)
	if err != nil {
		return nil, fmt.Errorf("load display: %w", err)
	}
	if display == nil {
		return nil, fmt.Errorf("display %w", ErrNotFound)
	}
	if _, err := s.gate.Require(ctx, userID, display.OrganizationID, true); err != nil {
		return nil, err
	}
	return display, nil
}

// checkBoard makes sure a display only ever points at a board of its own
// organization.
func (s *DisplayService) checkBoard(ctx context.Context, organizationID, boardID uuid.UUID) error {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return fmt.Errorf("load board: %w", err)
	}
	if board == nil {
		return fmt.Errorf("board %w", ErrNotFound)
	}
	if board.OrganizationID != organizationID {
		return fmt.Errorf("%w: board belongs to another organization", ErrAccessDenied)
	}
	return nil
}

func displayStoreError(op string, err error) error {
	if errors.Is(err, repository.ErrBoardNotFound) {
		return fmt.Errorf("board %w", ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}
