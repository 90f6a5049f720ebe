package service_test

import (
	"context"
	"testing"
	"time"

	"signage/internal/model"
	"signage/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupOrganizations() (*service.OrganizationService, *tenancy, *MockOrganizationStore) {
	tn := newTenancy()
	orgs := new(MockOrganizationStore)
	orgs.On("GetByID", mock.Anything, tn.orgID).Return(&model.Organization{ID: tn.orgID, Name: "Acme"}, nil).Maybe()
	svc := service.NewOrganizationService(service.NewGate(tn.users, tn.memberships), orgs, tn.users, tn.memberships).
		WithClock(func() time.Time { return fixedNow })
	return svc, tn, orgs
}

func TestOrganizationCreate_OwnerMembership(t *testing.T) {
	svc, tn, orgs := setupOrganizations()
	orgs.On("CreateWithOwner", mock.Anything, mock.AnythingOfType("*model.Organization"), mock.MatchedBy(func(m *model.Membership) bool {
		return m.UserID == tn.outsider.ID && m.Role == model.RoleOwner
	})).Return(nil)

	org, err := svc.Create(context.Background(), tn.outsider.ID, "  Acme Signs ")

	require.NoError(t, err)
	assert.Equal(t, "Acme Signs", org.Name)
	assert.Equal(t, fixedNow, org.CreatedAt)
	orgs.AssertExpectations(t)
}

func TestOrganizationCreate_Validation(t *testing.T) {
	svc, tn, _ := setupOrganizations()

	_, err := svc.Create(context.Background(), uuid.Nil, "Acme")
	assert.ErrorIs(t, err, service.ErrUnauthenticated)

	_, err = svc.Create(context.Background(), tn.owner.ID, "   ")
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestOrganizationActivate(t *testing.T) {
	svc, tn, _ := setupOrganizations()
	tn.users.On("SetActiveOrganization", mock.Anything, tn.member.ID, tn.orgID).Return(nil)

	_, err := svc.Activate(context.Background(), tn.outsider.ID, tn.orgID)
	assert.ErrorIs(t, err, service.ErrAccessDenied)

	current, err := svc.Activate(context.Background(), tn.member.ID, tn.orgID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleMember, current.Role)
	assert.Equal(t, "Acme", current.Name)
}

func TestOrganizationCurrent(t *testing.T) {
	svc, tn, _ := setupOrganizations()

	current, err := svc.Current(context.Background(), tn.admin.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, current.Role)

	current, err = svc.Current(context.Background(), tn.outsider.ID)
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestOrganizationAddMember(t *testing.T) {
	svc, tn, _ := setupOrganizations()
	newcomer := &model.User{ID: uuid.New(), Email: "new@example.com"}
	tn.users.On("FindByEmail", mock.Anything, "new@example.com").Return(newcomer, nil)
	tn.users.On("FindByEmail", mock.Anything, "owner@example.com").Return(tn.owner, nil)
	tn.memberships.On("Get", mock.Anything, tn.orgID, newcomer.ID).Return(nil, nil)
	tn.memberships.On("Add", mock.Anything, mock.AnythingOfType("*model.Membership")).Return(nil)
	ctx := context.Background()

	_, err := svc.AddMember(ctx, tn.member.ID, tn.orgID, "new@example.com", model.RoleMember)
	assert.ErrorIs(t, err, service.ErrPermissionDenied)

	_, err = svc.AddMember(ctx, tn.admin.ID, tn.orgID, "new@example.com", model.RoleOwner)
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = svc.AddMember(ctx, tn.admin.ID, tn.orgID, "owner@example.com", model.RoleMember)
	assert.ErrorIs(t, err, service.ErrConflict)

	m, err := svc.AddMember(ctx, tn.admin.ID, tn.orgID, " New@Example.com ", model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, newcomer.ID, m.UserID)
	assert.Equal(t, model.RoleAdmin, m.Role)
	assert.Equal(t, tn.orgID, m.OrganizationID)
}
