package service

import (
	"context"
	"fmt"

	"signage/internal/model"

	"github.com/google/uuid"
)

// Gate resolves a caller's membership for every request. Nothing is cached,
// so a revoked membership takes effect on the very next call.
type Gate struct {
	users       UserStore
	memberships MembershipStore
}

func NewGate(users UserStore, memberships MembershipStore) *Gate {
	return &Gate{users: users, memberships: memberships}
}

// Require returns the caller's membership in the organization. With manage
// set, the caller must also be an owner or admin.
func (g *Gate) Require(ctx context.Context, userID, organizationID uuid.UUID, manage bool) (*model.Membership, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthenticated
	}

	membership, err := g.memberships.Get(ctx, organizationID, userID)
	if err != nil {
		return nil, fmt.Errorf("load membership: %w", err)
	}
	if membership == nil {
		return nil, ErrAccessDenied
	}
	if manage && !membership.Role.CanManage() {
		return nil, fmt.Errorf("%w: requires owner or admin role", ErrPermissionDenied)
	}
	return membership, nil
}

// Active returns the caller's membership in their selected organization, or
// nil when no organization is selected or the selection is no longer valid.
func (g *Gate) Active(ctx context.Context, userID uuid.UUID) (*model.Membership, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthenticated
	}

	user, err := g.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return nil, ErrUnauthenticated
	}
	if user.ActiveOrganizationID == nil {
		return nil, nil
	}

	membership, err := g.memberships.Get(ctx, *user.ActiveOrganizationID, userID)
	if err != nil {
		return nil, fmt.Errorf("load membership: %w", err)
	}
	return membership, nil
}

// RequireActive is Active for operations that cannot run without a selected
// organization.
func (g *Gate) RequireActive(ctx context.Context, userID uuid.UUID, manage bool) (*model.Membership, error) {
	membership, err := g.Active(ctx, userID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, ErrNoActiveOrganization
	}
	if manage && !membership.Role.CanManage() {
		return nil, fmt.Errorf("%w: requires owner or admin role", ErrPermissionDenied)
	}
	return membership, nil
}
