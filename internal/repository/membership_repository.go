package repository

import (
	"context"
	"errors"

	"signage/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MembershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// Get returns the user's membership in the organization, or nil when the
// user does not belong to it.
func (r *MembershipRepository) Get(ctx context.Context, organizationID, userID uuid.UUID) (*model.Membership, error) {
	var membership model.Membership
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND user_id = ?", organizationID, userID).
		First(&membership).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// Add creates the membership or changes the role of an existing one.
func (r *MembershipRepository) Add(ctx context.Context, membership *model.Membership) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Membership
		err := tx.Where("organization_id = ? AND user_id = ?", membership.OrganizationID, membership.UserID).
			First(&existing).Error

		if err == nil {
			existing.Role = membership.Role
			*membership = existing
			return tx.Save(&existing).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(membership).Error
	})
}
