package model

import (
	"time"

	"github.com/google/uuid"
)

type Organization struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name      string    `gorm:"not null"`
	CreatedAt time.Time
}

// Role is a member's level of access inside an organization.
type Role string

const (
	RoleOwner  Role = "owner"  // created the organization
	RoleAdmin  Role = "admin"  // manages boards, displays and files
	RoleMember Role = "member" // read access, may pair displays and upload
)

// CanManage reports whether the role may create, change or delete content.
func (r Role) CanManage() bool {
	return r == RoleOwner || r == RoleAdmin
}

// Membership links a user to an organization. There is at most one row per
// (organization, user) pair.
type Membership struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_members_org_user"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_members_org_user;index"`
	Role           Role      `gorm:"not null;check:role IN ('owner', 'admin', 'member')"`
	JoinedAt       time.Time
}

func (Membership) TableName() string {
	return "organization_members"
}

// OrganizationWithRole is an organization as seen by one of its members.
type OrganizationWithRole struct {
	Organization
	Role Role
}
