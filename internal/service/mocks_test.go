package service_test

import (
	"context"
	"time"

	"signage/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserStore) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]model.User, error) {
	args := m.Called(ctx, ids)
	users := args.Get(0)
	if users == nil {
		return nil, args.Error(1)
	}
	return users.(map[uuid.UUID]model.User), args.Error(1)
}

func (m *MockUserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserStore) SetActiveOrganization(ctx context.Context, userID, organizationID uuid.UUID) error {
	return m.Called(ctx, userID, organizationID).Error(0)
}

type MockMembershipStore struct {
	mock.Mock
}

func (m *MockMembershipStore) Get(ctx context.Context, organizationID, userID uuid.UUID) (*model.Membership, error) {
	args := m.Called(ctx, organizationID, userID)
	membership := args.Get(0)
	if membership == nil {
		return nil, args.Error(1)
	}
	return membership.(*model.Membership), args.Error(1)
}

func (m *MockMembershipStore) Add(ctx context.Context, membership *model.Membership) error {
	return m.Called(ctx, membership).Error(0)
}

type MockOrganizationStore struct {
	mock.Mock
}

func (m *MockOrganizationStore) CreateWithOwner(ctx context.Context, org *model.Organization, owner *model.Membership) error {
	return m.Called(ctx, org, owner).Error(0)
}

func (m *MockOrganizationStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Organization, error) {
	args := m.Called(ctx, id)
	org := args.Get(0)
	if org == nil {
		return nil, args.Error(1)
	}
	return org.(*model.Organization), args.Error(1)
}

func (m *MockOrganizationStore) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.OrganizationWithRole, error) {
	args := m.Called(ctx, userID)
	orgs := args.Get(0)
	if orgs == nil {
		return nil, args.Error(1)
	}
	return orgs.([]model.OrganizationWithRole), args.Error(1)
}

type MockBoardStore struct {
	mock.Mock
}

func (m *MockBoardStore) Create(ctx context.Context, board *model.Board) error {
	return m.Called(ctx, board).Error(0)
}

func (m *MockBoardStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	args := m.Called(ctx, id)
	board := args.Get(0)
	if board == nil {
		return nil, args.Error(1)
	}
	return board.(*model.Board), args.Error(1)
}

func (m *MockBoardStore) ListByOrganization(ctx context.Context, organizationID uuid.UUID) ([]model.Board, error) {
	args := m.Called(ctx, organizationID)
	boards := args.Get(0)
	if boards == nil {
		return nil, args.Error(1)
	}
	return boards.([]model.Board), args.Error(1)
}

func (m *MockBoardStore) Update(ctx context.Context, board *model.Board) error {
	return m.Called(ctx, board).Error(0)
}

func (m *MockBoardStore) ReplaceContent(ctx context.Context, board *model.Board, snapshot *model.BoardVersion, keep int) error {
	return m.Called(ctx, board, snapshot, keep).Error(0)
}

func (m *MockBoardStore) DeleteIfUnreferenced(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBoardStore) GetVersion(ctx context.Context, id uuid.UUID) (*model.BoardVersion, error) {
	args := m.Called(ctx, id)
	version := args.Get(0)
	if version == nil {
		return nil, args.Error(1)
	}
	return version.(*model.BoardVersion), args.Error(1)
}

func (m *MockBoardStore) ListVersions(ctx context.Context, boardID uuid.UUID) ([]model.BoardVersion, error) {
	args := m.Called(ctx, boardID)
	versions := args.Get(0)
	if versions == nil {
		return nil, args.Error(1)
	}
	return versions.([]model.BoardVersion), args.Error(1)
}

type MockDisplayStore struct {
	mock.Mock
}

func (m *MockDisplayStore) Create(ctx context.Context, display *model.Display) error {
	return m.Called(ctx, display).Error(0)
}

func (m *MockDisplayStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Display, error) {
	args := m.Called(ctx, id)
	display := args.Get(0)
	if display == nil {
		return nil, args.Error(1)
	}
	return display.(*model.Display), args.Error(1)
}

func (m *MockDisplayStore) ListByOrganization(ctx context.Context, organizationID uuid.UUID) ([]model.Display, error) {
	args := m.Called(ctx, organizationID)
	displays := args.Get(0)
	if displays == nil {
		return nil, args.Error(1)
	}
	return displays.([]model.Display), args.Error(1)
}

func (m *MockDisplayStore) Update(ctx context.Context, display *model.Display) error {
	return m.Called(ctx, display).Error(0)
}

func (m *MockDisplayStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockPairingStore struct {
	mock.Mock
}

func (m *MockPairingStore) Create(ctx context.Context, pairing *model.DisplayPairing) error {
	return m.Called(ctx, pairing).Error(0)
}

func (m *MockPairingStore) GetByID(ctx context.Context, id uuid.UUID) (*model.DisplayPairing, error) {
	args := m.Called(ctx, id)
	pairing := args.Get(0)
	if pairing == nil {
		return nil, args.Error(1)
	}
	return pairing.(*model.DisplayPairing), args.Error(1)
}

func (m *MockPairingStore) Complete(ctx context.Context, id, displayID uuid.UUID, now time.Time) (bool, error) {
	args := m.Called(ctx, id, displayID, now)
	return args.Bool(0), args.Error(1)
}

type MockFileStore struct {
	mock.Mock
}

func (m *MockFileStore) Create(ctx context.Context, file *model.File) error {
	return m.Called(ctx, file).Error(0)
}

func (m *MockFileStore) GetByID(ctx context.Context, id uuid.UUID) (*model.File, error) {
	args := m.Called(ctx, id)
	file := args.Get(0)
	if file == nil {
		return nil, args.Error(1)
	}
	return file.(*model.File), args.Error(1)
}

func (m *MockFileStore) GetByStorageID(ctx context.Context, storageID string) (*model.File, error) {
	args := m.Called(ctx, storageID)
	file := args.Get(0)
	if file == nil {
		return nil, args.Error(1)
	}
	return file.(*model.File), args.Error(1)
}

func (m *MockFileStore) ListByBoard(ctx context.Context, boardID uuid.UUID) ([]model.File, error) {
	args := m.Called(ctx, boardID)
	files := args.Get(0)
	if files == nil {
		return nil, args.Error(1)
	}
	return files.([]model.File), args.Error(1)
}

func (m *MockFileStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) NewUpload(ctx context.Context) (string, string, time.Time, error) {
	args := m.Called(ctx)
	return args.String(0), args.String(1), args.Get(2).(time.Time), args.Error(3)
}

func (m *MockBlobStore) Exists(ctx context.Context, storageID string) (bool, error) {
	args := m.Called(ctx, storageID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBlobStore) URL(ctx context.Context, storageID string) (string, error) {
	args := m.Called(ctx, storageID)
	return args.String(0), args.Error(1)
}

func (m *MockBlobStore) Delete(ctx context.Context, storageID string) error {
	return m.Called(ctx, storageID).Error(0)
}

// tenancy holds one organization with an owner, an admin and a plain member.
type tenancy struct {
	users       *MockUserStore
	memberships *MockMembershipStore
	orgID       uuid.UUID
	owner       *model.User
	admin       *model.User
	member      *model.User
	outsider    *model.User
}

func newTenancy() *tenancy {
	t := &tenancy{
		users:       new(MockUserStore),
		memberships: new(MockMembershipStore),
		orgID:       uuid.New(),
	}
	t.owner = t.join("owner@example.com", model.RoleOwner)
	t.admin = t.join("admin@example.com", model.RoleAdmin)
	t.member = t.join("member@example.com", model.RoleMember)

	t.outsider = &model.User{ID: uuid.New(), Email: "outsider@example.com"}
	t.users.On("GetByID", mock.Anything, t.outsider.ID).Return(t.outsider, nil).Maybe()
	t.memberships.On("Get", mock.Anything, mock.Anything, t.outsider.ID).Return(nil, nil).Maybe()
	return t
}

func (t *tenancy) join(email string, role model.Role) *model.User {
	orgID := t.orgID
	user := &model.User{ID: uuid.New(), Email: email, ActiveOrganizationID: &orgID}
	t.users.On("GetByID", mock.Anything, user.ID).Return(user, nil).Maybe()
	t.memberships.On("Get", mock.Anything, t.orgID, user.ID).Return(&model.Membership{
		ID:             uuid.New(),
		OrganizationID: t.orgID,
		UserID:         user.ID,
		Role:           role,
	}, nil).Maybe()
	return user
}
