package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"signage/internal/logger"
	"signage/internal/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrganizationService struct {
	gate        *Gate
	orgs        OrganizationStore
	users       UserStore
	memberships MembershipStore
	now         func() time.Time
}

func NewOrganizationService(gate *Gate, orgs OrganizationStore, users UserStore, memberships MembershipStore) *OrganizationService {
	return &OrganizationService{
		gate:        gate,
		orgs:        orgs,
		users:       users,
		memberships: memberships,
		now:         time.Now,
	}
}

// WithClock replaces the time source. Used by tests.
func (s *OrganizationService) WithClock(now func() time.Time) *OrganizationService {
	s.now = now
	return s
}

// Create makes a new organization owned by the caller and selects it as the
// caller's active organization.
func (s *OrganizationService) Create(ctx context.Context, userID uuid.UUID, name string) (*model.Organization, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: organization name is required", ErrInvalidInput)
	}

	now := s.now()
	org := &model.Organization{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
	}
	owner := &model.Membership{
		ID:       uuid.New(),
		UserID:   userID,
		Role:     model.RoleOwner,
		JoinedAt: now,
	}

	if err := s.orgs.CreateWithOwner(ctx, org, owner); err != nil {
		return nil, fmt.Errorf("create organization: %w", err)
	}

	logger.FromContext(ctx).Info("organization created",
		zap.String("organization_id", org.ID.String()),
		zap.String("owner_id", userID.String()))
	return org, nil
}

// ListMine returns every organization the caller belongs to with their role.
func (s *OrganizationService) ListMine(ctx context.Context, userID uuid.UUID) ([]model.OrganizationWithRole, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	orgs, err := s.orgs.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	if orgs == nil {
		orgs = []model.OrganizationWithRole{}
	}
	return orgs, nil
}

// Activate persists the caller's choice of active organization.
func (s *OrganizationService) Activate(ctx context.Context, userID, organizationID uuid.UUID) (*model.OrganizationWithRole, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	org, err := s.orgs.GetByID(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("load organization: %w", err)
	}
	if org == nil {
		return nil, fmt.Errorf("organization %w", ErrNotFound)
	}

	membership, err := s.gate.Require(ctx, userID, org.ID, false)
	if err != nil {
		return nil, err
	}

	if err := s.users.SetActiveOrganization(ctx, userID, org.ID); err != nil {
		return nil, fmt.Errorf("select organization: %w", err)
	}
	return &model.OrganizationWithRole{Organization: *org, Role: membership.Role}, nil
}

// Current returns the caller's active organization, or nil when none is
// selected.
func (s *OrganizationService) Current(ctx context.Context, userID uuid.UUID) (*model.OrganizationWithRole, error) {
	membership, err := s.gate.Active(ctx, userID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, nil
	}

	org, err := s.orgs.GetByID(ctx, membership.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("load organization: %w", err)
	}
	if org == nil {
		return nil, nil
	}
	return &model.OrganizationWithRole{Organization: *org, Role: membership.Role}, nil
}

// AddMember grants an existing user the admin or member role. Owners cannot
// be demoted and nobody can be made owner this way.
func (s *OrganizationService) AddMember(ctx context.Context, userID, organizationID uuid.UUID, email string, role model.Role) (*model.Membership, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	if role != model.RoleAdmin && role != model.RoleMember {
		return nil, fmt.Errorf("%w: role must be admin or member", ErrInvalidInput)
	}

	org, err := s.orgs.GetByID(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("load organization: %w", err)
	}
	if org == nil {
		return nil, fmt.Errorf("organization %w", ErrNotFound)
	}
	if _, err := s.gate.Require(ctx, userID, org.ID, true); err != nil {
		return nil, err
	}

	target, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if target == nil {
		return nil, fmt.Errorf("user %w", ErrNotFound)
	}

	existing, err := s.memberships.Get(ctx, org.ID, target.ID)
	if err != nil {
		return nil, fmt.Errorf("load membership: %w", err)
	}
	if existing != nil && existing.Role == model.RoleOwner {
		return nil, fmt.Errorf("%w: the owner's role cannot be changed", ErrConflict)
	}

	membership := &model.Membership{
		ID:             uuid.New(),
		OrganizationID: org.ID,
		UserID:         target.ID,
		Role:           role,
		JoinedAt:       s.now(),
	}
	if err := s.memberships.Add(ctx, membership); err != nil {
		return nil, fmt.Errorf("add member: %w", err)
	}
	return membership, nil
}
