package service_test

import (
	"context"
	"testing"
	"time"

	"signage/internal/model"
	"signage/internal/repository"
	"signage/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func setupBoards(retention int) (*service.BoardService, *tenancy, *MockBoardStore, *MockDisplayStore) {
	tn := newTenancy()
	boards := new(MockBoardStore)
	displays := new(MockDisplayStore)
	svc := service.NewBoardService(service.NewGate(tn.users, tn.memberships), boards, displays, tn.users, retention).
		WithClock(func() time.Time { return fixedNow })
	return svc, tn, boards, displays
}

func existingBoard(orgID uuid.UUID) *model.Board {
	return &model.Board{
		ID:             uuid.New(),
		OrganizationID: orgID,
		Name:           "Lobby",
		Content:        datatypes.NewJSONType(model.DefaultBoardContent()),
		CreatedAt:      fixedNow.Add(-time.Hour),
		UpdatedAt:      fixedNow.Add(-time.Hour),
	}
}

func headerContent() model.BoardContent {
	c := model.DefaultBoardContent()
	c.Components = []model.Component{{
		ID:       "h1",
		Type:     model.ComponentHeader,
		Position: model.Position{X: 0, Y: 0, W: 12, H: 1},
		Config:   map[string]any{"text": "Welcome"},
	}}
	return c
}

func TestBoardScenario_AdminCreatesMemberCannotUpdate(t *testing.T) {
	svc, tn, boards, _ := setupBoards(0)
	ctx := context.Background()

	var stored *model.Board
	boards.On("Create", mock.Anything, mock.AnythingOfType("*model.Board")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*model.Board) }).
		Return(nil)

	board, err := svc.Create(ctx, tn.admin.ID, "Lobby", nil)
	require.NoError(t, err)
	grid := board.Content.Data().GridConfig
	assert.Equal(t, 12, grid.Columns)
	assert.Equal(t, 8, grid.Rows)
	assert.Equal(t, 100, grid.RowHeight)
	assert.Equal(t, tn.orgID, board.OrganizationID)

	boards.On("GetByID", mock.Anything, board.ID).Return(stored, nil)

	content := headerContent()
	_, err = svc.Update(ctx, tn.member.ID, board.ID, service.BoardUpdate{Content: &content})
	assert.ErrorIs(t, err, service.ErrPermissionDenied)

	var versions []*model.BoardVersion
	boards.On("ReplaceContent", mock.Anything, stored, mock.AnythingOfType("*model.BoardVersion"), 0).
		Run(func(args mock.Arguments) { versions = append(versions, args.Get(2).(*model.BoardVersion)) }).
		Return(nil)

	updated, err := svc.Update(ctx, tn.admin.ID, board.ID, service.BoardUpdate{Content: &content})
	require.NoError(t, err)
	require.Len(t, versions, 1)
	assert.Equal(t, model.DefaultBoardContent(), versions[0].Content.Data())
	assert.Equal(t, content, updated.Content.Data())
	boards.AssertExpectations(t)
}

func TestBoardUpdate_NameOnlyDoesNotVersion(t *testing.T) {
	svc, tn, boards, _ := setupBoards(0)
	board := existingBoard(tn.orgID)
	boards.On("GetByID", mock.Anything, board.ID).Return(board, nil)
	boards.On("Update", mock.Anything, board).Return(nil)

	name := "Reception"
	updated, err := svc.Update(context.Background(), tn.owner.ID, board.ID, service.BoardUpdate{Name: &name})

	require.NoError(t, err)
	assert.Equal(t, "Reception", updated.Name)
	assert.Equal(t, fixedNow, updated.UpdatedAt)
	boards.AssertNotCalled(t, "ReplaceContent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBoardUpdate_RejectsOutOfRangeGrid(t *testing.T) {
	svc, tn, boards, _ := setupBoards(0)
	board := existingBoard(tn.orgID)
	boards.On("GetByID", mock.Anything, board.ID).Return(board, nil)

	content := model.DefaultBoardContent()
	content.GridConfig.Columns = 0

	_, err := svc.Update(context.Background(), tn.admin.ID, board.ID, service.BoardUpdate{Content: &content})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
	boards.AssertNotCalled(t, "ReplaceContent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBoardUpdate_RejectsNullComponents(t *testing.T) {
	svc, tn, boards, _ := setupBoards(0)
	board := existingBoard(tn.orgID)
	boards.On("GetByID", mock.Anything, board.ID).Return(board, nil)

	content := model.DefaultBoardContent()
	content.Components = nil

	_, err := svc.Update(context.Background(), tn.admin.ID, board.ID, service.BoardUpdate{Content: &content})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
	boards.AssertNotCalled(t, "ReplaceContent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBoardUpdate_PassesRetention(t *testing.T) {
	svc, tn, boards, _ := setupBoards(50)
	board := existingBoard(tn.orgID)
	boards.On("GetByID", mock.Anything, board.ID).Return(board, nil)
	boards.On("ReplaceContent", mock.Anything, board, mock.AnythingOfType("*model.BoardVersion"), 50).Return(nil)

	content := headerContent()
	_, err := svc.Update(context.Background(), tn.admin.ID, board.ID, service.BoardUpdate{Content: &content})

	require.NoError(t, err)
	boards.AssertExpectations(t)
}

func TestBoardAccess_CheckOrder(t *testing.T) {
	svc, tn, boards, _ := setupBoards(0)
	board := existingBoard(tn.orgID)
	missing := uuid.New()
	boards.On("GetByID", mock.Anything, board.ID).Return(board, nil)
	boards.On("GetByID", mock.Anything, missing).Return(nil, nil)
	ctx := context.Background()

	_, err := svc.Get(ctx, uuid.Nil, board.ID)
	assert.ErrorIs(t, err, service.ErrUnauthenticated)

	_, err = svc.Get(ctx, tn.admin.ID, missing)
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = svc.Get(ctx, tn.outsider.ID, board.ID)
	assert.ErrorIs(t, err, service.ErrAccessDenied)

	_, err = svc.ListVersions(ctx, tn.outsider.ID, board.ID)
	assert.ErrorIs(t, err, service.ErrAccessDenied)

	err = svc.Delete(ctx, tn.member.ID, board.ID)
	assert.ErrorIs(t, err, service.ErrPermissionDenied)

	_, err = svc.Duplicate(ctx, tn.member.ID, board.ID)
	assert.ErrorIs(t, err, service.ErrPermissionDenied)

	_, err = svc.Create(ctx, tn.member.ID, "Hallway", nil)
	assert.ErrorIs(t, err, service.ErrPermissionDenied)

	boards.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	boards.AssertNotCalled(t, "DeleteIfUnreferenced", mock.Anything, mock.Anything)

	got, err := svc.Get(ctx, tn.member.ID, board.ID)
	require.NoError(t, err)
	assert.Equal(t, board.ID, got.ID)
}

func TestBoardRestore_SnapshotsThenReverts(t *testing.T) {
	svc, tn, boards, _ := setupBoards(0)
	board := existingBoard(tn.orgID)
	board.Content = datatypes.NewJSONType(headerContent())

	prior := &model.BoardVersion{
		ID:        uuid.New(),
		BoardID:   board.ID,
		Content:   datatypes.NewJSONType(model.DefaultBoardContent()),
		CreatedBy: tn.admin.ID,
	}
	boards.On("GetVersion", mock.Anything, prior.ID).Return(prior, nil)
	boards.On("GetByID", mock.Anything, board.ID).Return(board, nil)

	var snapshot *model.BoardVersion
	boards.On("ReplaceContent", mock.Anything, board, mock.AnythingOfType("*model.BoardVersion"), 0).
		Run(func(args mock.Arguments) { snapshot = args.Get(2).(*model.BoardVersion) }).
		Return(nil)

	restored, err := svc.Restore(context.Background(), tn.admin.ID, prior.ID)

	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.Equal(t, headerContent(), snapshot.Content.Data())
	assert.Equal(t, board.ID, snapshot.BoardID)
	assert.Equal(t, model.DefaultBoardContent(), restored.Content.Data())
}

func TestBoardRestore_MemberDenied(t *testing.T) {
	svc, tn, boards, _ := setupBoards(0)
	board := existingBoard(tn.orgID)
	version := &model.BoardVersion{ID: uuid.New(), BoardID: board.ID}
	boards.On("GetVersion", mock.Anything, version.ID).Return(version, nil)
	boards.On("GetByID", mock.Anything, board.ID).Return(board, nil)

	_, err := svc.Restore(context.Background(), tn.member.ID, version.ID)
	assert.ErrorIs(t, err, service.ErrPermissionDenied)
}

func TestBoardDuplicate(t *testing.T) {
	svc, tn, boards, _ := setupBoards(0)
	board := existingBoard(tn.orgID)
	desc := "front desk"
	board.Description = &desc
	board.Content = datatypes.NewJSONType(headerContent())
	boards.On("GetByID", mock.Anything, board.ID).Return(board, nil)
	boards.On("Create", mock.Anything, mock.AnythingOfType("*model.Board")).Return(nil)

	dup, err := svc.Duplicate(context.Background(), tn.admin.ID, board.ID)

	require.NoError(t, err)
	assert.NotEqual(t, board.ID, dup.ID)
	assert.Equal(t, "Lobby (Copy)", dup.Name)
	assert.Equal(t, tn.orgID, dup.OrganizationID)
	assert.Equal(t, board.Content.Data(), dup.Content.Data())
	require.NotNil(t, dup.Description)
	assert.Equal(t, "front desk", *dup.Description)

	// The copy must not share nested config maps with the source.
	dup.Content.Data().Components[0].Config["text"] = "changed"
	assert.Equal(t, "Welcome", board.Content.Data().Components[0].Config["text"])
}

func TestBoardDelete_InUse(t *testing.T) {
	svc, tn, boards, _ := setupBoards(0)
	board := existingBoard(tn.orgID)
	boards.On("GetByID", mock.Anything, board.ID).Return(board, nil)
	boards.On("DeleteIfUnreferenced", mock.Anything, board.ID).Return(repository.ErrBoardInUse)

	err := svc.Delete(context.Background(), tn.owner.ID, board.ID)
	assert.ErrorIs(t, err, service.ErrConflict)
}

func TestBoardDelete_Success(t *testing.T) {
	svc, tn, boards, _ := setupBoards(0)
	board := existingBoard(tn.orgID)
	boards.On("GetByID", mock.Anything, board.ID).Return(board, nil)
	boards.On("DeleteIfUnreferenced", mock.Anything, board.ID).Return(nil)

	assert.NoError(t, svc.Delete(context.Background(), tn.owner.ID, board.ID))
	boards.AssertExpectations(t)
}

func TestBoardList_NoActiveOrganization(t *testing.T) {
	svc, tn, _, _ := setupBoards(0)
	loner := &model.User{ID: uuid.New(), Email: "loner@example.com"}
	tn.users.On("GetByID", mock.Anything, loner.ID).Return(loner, nil)

	boards, err := svc.List(context.Background(), loner.ID)

	require.NoError(t, err)
	assert.NotNil(t, boards)
	assert.Empty(t, boards)

	_, err = svc.Create(context.Background(), loner.ID, "Lobby", nil)
	assert.ErrorIs(t, err, service.ErrAccessDenied)
}

func TestBoardGetForDisplay(t *testing.T) {
	svc, tn, boards, displays := setupBoards(0)
	board := existingBoard(tn.orgID)
	showing := &model.Display{ID: uuid.New(), OrganizationID: tn.orgID, CurrentBoardID: &board.ID}
	idle := &model.Display{ID: uuid.New(), OrganizationID: tn.orgID}
	displays.On("GetByID", mock.Anything, showing.ID).Return(showing, nil)
	displays.On("GetByID", mock.Anything, idle.ID).Return(idle, nil)
	boards.On("GetByID", mock.Anything, board.ID).Return(board, nil)

	got, err := svc.GetForDisplay(context.Background(), showing.ID)
	require.NoError(t, err)
	assert.Equal(t, board.ID, got.ID)

	got, err = svc.GetForDisplay(context.Background(), idle.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestListVersions_ResolvesAuthors(t *testing.T) {
	svc, tn, boards, _ := setupBoards(0)
	board := existingBoard(tn.orgID)
	ghost := uuid.New()
	boards.On("GetByID", mock.Anything, board.ID).Return(board, nil)
	boards.On("ListVersions", mock.Anything, board.ID).Return([]model.BoardVersion{
		{ID: uuid.New(), BoardID: board.ID, CreatedBy: tn.admin.ID, CreatedAt: fixedNow},
		{ID: uuid.New(), BoardID: board.ID, CreatedBy: ghost, CreatedAt: fixedNow.Add(-time.Minute)},
		{ID: uuid.New(), BoardID: board.ID, CreatedBy: tn.admin.ID, CreatedAt: fixedNow.Add(-2 * time.Minute)},
	}, nil)
	tn.users.On("GetByIDs", mock.Anything, []uuid.UUID{tn.admin.ID, ghost}).
		Return(map[uuid.UUID]model.User{tn.admin.ID: *tn.admin}, nil)

	versions, err := svc.ListVersions(context.Background(), tn.member.ID, board.ID)

	require.NoError(t, err)
	require.Len(t, versions, 3)
	assert.Equal(t, "admin@example.com", versions[0].CreatorName)
	assert.Equal(t, "Unknown", versions[1].CreatorName)
	assert.True(t, versions[0].CreatedAt.After(versions[1].CreatedAt))
}
