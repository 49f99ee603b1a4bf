package models

import (
	"time"

	"github.com/yukikurage/saas-starter-api/internal/id"
	"gorm.io/gorm"
)

type OrganizationInviteLink struct {
	ID             int64      `gorm:"primarykey;autoIncrement:false" json:"id,string"`
	OrganizationID int64      `gorm:"not null;index" json:"organization_id,string"`
	CreatorID      int64      `gorm:"not null" json:"creator_id,string"`
	Token          string     `gorm:"type:varchar(64);uniqueIndex;not null" json:"token"`
	ExpiresAt      time.Time  `gorm:"not null" json:"expires_at"`
	DeactivatedAt  *time.Time `json:"deactivated_at"`
	CreatedAt      time.Time  `json:"created_at"`

	// Relations
	Organization Organization    `gorm:"foreignKey:OrganizationID" json:"-"`
	Creator      User            `gorm:"foreignKey:CreatorID" json:"-"`
	Uses         []InviteLinkUse `gorm:"foreignKey:InviteLinkID" json:"-"`
}

func (l *OrganizationInviteLink) BeforeCreate(*gorm.DB) error {
	if l.ID == 0 {
		l.ID = id.New()
	}
	return nil
}

// IsActiveAt reports whether the link can still be redeemed at t.
func (l *OrganizationInviteLink) IsActiveAt(t time.Time) bool {
	return l.DeactivatedAt == nil && t.Before(l.ExpiresAt)
}

type InviteLinkUse struct {
	ID           int64     `gorm:"primarykey;autoIncrement:false" json:"id,string"`
	InviteLinkID int64     `gorm:"not null;uniqueIndex:idx_invite_link_use" json:"invite_link_id,string"`
	UserID       int64     `gorm:"not null;uniqueIndex:idx_invite_link_use" json:"user_id,string"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *InviteLinkUse) BeforeCreate(*gorm.DB) error {
	if u.ID == 0 {
		u.ID = id.New()
	}
	return nil
}
