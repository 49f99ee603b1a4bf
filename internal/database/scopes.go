package database

import (
	"time"

	"gorm.io/gorm"
)

// ActiveMemberships restricts a membership query to non-deactivated rows.
func ActiveMemberships(db *gorm.DB) *gorm.DB {
	return db.Where("organization_memberships.deactivated_at IS NULL")
}

// ActiveInviteLinks restricts an invite link query to links redeemable at now.
func ActiveInviteLinks(now time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("organization_invite_links.deactivated_at IS NULL").
			Where("organization_invite_links.expires_at > ?", now)
	}
}
