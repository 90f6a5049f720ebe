package service

import (
	"context"
	"time"

	"signage/internal/model"

	"github.com/google/uuid"
)

type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	SetActiveOrganization(ctx context.Context, userID, organizationID uuid.UUID) error
}

type MembershipStore interface {
	Get(ctx context.Context, organizationID, userID uuid.UUID) (*model.Membership, error)
	Add(ctx context.Context, membership *model.Membership) error
}

type OrganizationStore interface {
	CreateWithOwner(ctx context.Context, org *model.Organization, owner *model.Membership) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Organization, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]model.OrganizationWithRole, error)
}

type BoardStore interface {
	Create(ctx context.Context, board *model.Board) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error)
	ListByOrganization(ctx context.Context, organizationID uuid.UUID) ([]model.Board, error)
	Update(ctx context.Context, board *model.Board) error
	ReplaceContent(ctx context.Context, board *model.Board, snapshot *model.BoardVersion, keep int) error
	DeleteIfUnreferenced(ctx context.Context, id uuid.UUID) error
	GetVersion(ctx context.Context, id uuid.UUID) (*model.BoardVersion, error)
	ListVersions(ctx context.Context, boardID uuid.UUID) ([]model.BoardVersion, error)
}

type DisplayStore interface {
	Create(ctx context.Context, display *model.Display) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Display, error)
	ListByOrganization(ctx context.Context, organizationID uuid.UUID) ([]model.Display, error)
	Update(ctx context.Context, display *model.Display) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type PairingStore interface {
	Create(ctx context.Context, pairing *model.DisplayPairing) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.DisplayPairing, error)
	Complete(ctx context.Context, id, displayID uuid.UUID, now time.Time) (bool, error)
}

type FileStore interface {
	Create(ctx context.Context, file *model.File) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.File, error)
	GetByStorageID(ctx context.Context, storageID string) (*model.File, error)
	ListByBoard(ctx context.Context, boardID uuid.UUID) ([]model.File, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// BlobStore is the opaque object storage behind uploaded files.
type BlobStore interface {
	NewUpload(ctx context.Context) (storageID, uploadURL string, expiresAt time.Time, err error)
	Exists(ctx context.Context, storageID string) (bool, error)
	URL(ctx context.Context, storageID string) (string, error)
	Delete(ctx context.Context, storageID string) error
}
