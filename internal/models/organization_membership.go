package models

import (
	"time"

	"github.com/yukikurage/saas-starter-api/internal/id"
	"gorm.io/gorm"
)

type OrganizationMembership struct {
	ID             int64      `gorm:"primarykey;autoIncrement:false" json:"id,string"`
	OrganizationID int64      `gorm:"not null;uniqueIndex:idx_membership_org_user" json:"organization_id,string"`
	UserID         int64      `gorm:"not null;uniqueIndex:idx_membership_org_user;index" json:"user_id,string"`
	Role           Role       `gorm:"type:varchar(20);not null" json:"role"`
	DeactivatedAt  *time.Time `json:"deactivated_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Relations
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	User         User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (m *OrganizationMembership) BeforeCreate(*gorm.DB) error {
	if m.ID == 0 {
		m.ID = id.New()
	}
	return nil
}

// IsActive reports whether the membership has not been deactivated.
func (m *OrganizationMembership) IsActive() bool {
	return m.DeactivatedAt == nil
}

// IsOwner reports whether the membership is an active owner.
func (m *OrganizationMembership) IsOwner() bool {
	return m.IsActive() && m.Role == RoleOwner
}

// EffectiveRole returns the role as shown on the team page, folding
// deactivation into the role state machine.
func (m *OrganizationMembership) EffectiveRole() RoleTarget {
	if !m.IsActive() {
		return RoleTargetDeactivated
	}
	return RoleTarget(m.Role)
}
