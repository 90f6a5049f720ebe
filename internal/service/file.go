package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"signage/internal/logger"
	"signage/internal/model"
	"signage/internal/repository"
	"signage/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UploadTicket is a one-time write destination in blob storage.
type UploadTicket struct {
	StorageID string    `json:"storage_id"`
	UploadURL string    `json:"upload_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

type FileService struct {
	gate   *Gate
	files  FileStore
	boards BoardStore
	blobs  BlobStore
	now    func() time.Time
}

func NewFileService(gate *Gate, files FileStore, boards BoardStore, blobs BlobStore) *FileService {
	return &FileService{gate: gate, files: files, boards: boards, blobs: blobs, now: time.Now}
}

// WithClock replaces the time source. Used by tests.
func (s *FileService) WithClock(now func() time.Time) *FileService {
	s.now = now
	return s
}

func (s *FileService) GenerateUploadURL(ctx context.Context, userID uuid.UUID) (*UploadTicket, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	storageID, uploadURL, expiresAt, err := s.blobs.NewUpload(ctx)
	if err != nil {
		return nil, fmt.Errorf("create upload url: %w", err)
	}
	return &UploadTicket{StorageID: storageID, UploadURL: uploadURL, ExpiresAt: expiresAt}, nil
}

// SaveFile records an uploaded blob against a board of the caller's
// organization.
func (s *FileService) SaveFile(ctx context.Context, userID uuid.UUID, storageID string, boardID uuid.UUID) (*model.File, error) {
	board, err := s.authorizeBoard(ctx, userID, boardID)
	if err != nil {
		return nil, err
	}

	exists, err := s.blobs.Exists(ctx, storageID)
	if err != nil {
		return nil, fmt.Errorf("check blob: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("uploaded blob %w", ErrNotFound)
	}

	file := &model.File{
		ID:             uuid.New(),
		StorageID:      storageID,
		OrganizationID: board.OrganizationID,
		BoardID:        board.ID,
		UploadedBy:     userID,
		UploadedAt:     s.now(),
	}
	if err := s.files.Create(ctx, file); err != nil {
		if errors.Is(err, repository.ErrDuplicateStorageID) {
			return nil, fmt.Errorf("%w: blob is already registered", ErrConflict)
		}
		return nil, fmt.Errorf("save file: %w", err)
	}
	return file, nil
}

// GetURL returns a short-lived read URL. Blobs without a metadata row are
// never served.
func (s *FileService) GetURL(ctx context.Context, userID uuid.UUID, storageID string) (string, error) {
	if userID == uuid.Nil {
		return "", ErrUnauthenticated
	}
	file, err := s.files.GetByStorageID(ctx, storageID)
	if err != nil {
		return "", fmt.Errorf("load file: %w", err)
	}
	if file == nil {
		return "", fmt.Errorf("file %w", ErrNotFound)
	}
	if _, err := s.gate.Require(ctx, userID, file.OrganizationID, false); err != nil {
		return "", err
	}

	u, err := s.blobs.URL(ctx, file.StorageID)
	if err != nil {
		if errors.Is(err, storage.ErrBlobNotFound) {
			return "", fmt.Errorf("blob %w", ErrNotFound)
		}
		return "", fmt.Errorf("sign read url: %w", err)
	}
	return u, nil
}

func (s *FileService) ListForBoard(ctx context.Context, userID, boardID uuid.UUID) ([]model.File, error) {
	if _, err := s.authorizeBoard(ctx, userID, boardID); err != nil {
		return nil, err
	}
	files, err := s.files.ListByBoard(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	if files == nil {
		files = []model.File{}
	}
	return files, nil
}

// DeleteFile removes the blob and then its metadata. The two steps are not
// atomic; a failure in between leaves a metadata row whose URL reports not
// found.
func (s *FileService) DeleteFile(ctx context.Context, userID, fileID uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrUnauthenticated
	}
	file, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		return fmt.Errorf("load file: %w", err)
	}
	if file == nil {
		return fmt.Errorf("file %w", ErrNotFound)
	}
	if _, err := s.gate.Require(ctx, userID, file.OrganizationID, true); err != nil {
		return err
	}

	if err := s.blobs.Delete(ctx, file.StorageID); err != nil {
		return fmt.Errorf("delete blob: %w", err)
	}
	if err := s.files.Delete(ctx, file.ID); err != nil {
		logger.FromContext(ctx).Error("blob deleted but metadata remains",
			zap.String("file_id", file.ID.String()),
			zap.String("storage_id", file.StorageID),
			zap.Error(err))
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}

func (s *FileService) authorizeBoard(ctx context.Context, userID, boardID uuid.UUID) (*model.Board, error) {
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
	if _, err := s.gate.Require(ctx, userID, board.OrganizationID, false); err != nil {
		return nil, err
	}
	return board, nil
}
