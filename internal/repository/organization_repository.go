package repository

import (
	"context"
	"errors"

	"signage/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrganizationRepository struct {
	db *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

// CreateWithOwner inserts the organization, the owner's membership and makes
// the organization the owner's active one, all in one transaction.
func (r *OrganizationRepository) CreateWithOwner(ctx context.Context, org *model.Organization, owner *model.Membership) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(org).Error; err != nil {
			return err
		}

		owner.OrganizationID = org.ID
		if err := tx.Create(owner).Error; err != nil {
			return err
		}

		return tx.Model(&model.User{}).
			Where("id = ?", owner.UserID).
			Update("active_organization_id", org.ID).Error
	})
}

func (r *OrganizationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Organization, error) {
	var org model.Organization
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&org).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &org, nil
}

// ListForUser returns every organization the user belongs to with the
// user's role in it, oldest membership first.
func (r *OrganizationRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.OrganizationWithRole, error) {
	var orgs []model.OrganizationWithRole
	err := r.db.WithContext(ctx).
		Table("organizations").
		Select("organizations.id, organizations.name, organizations.created_at, organization_members.role").
		Joins("JOIN organization_members ON organization_members.organization_id = organizations.id").
		Where("organization_members.user_id = ?", userID).
		Order("organization_members.joined_at").
		Scan(&orgs).Error
	return orgs, err
}
