package repository

import (
	"context"
	"time"

	"github.com/yukikurage/saas-starter-api/internal/database"
	"github.com/yukikurage/saas-starter-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInviteLinkRepository is a GORM implementation of InviteLinkRepository
type GormInviteLinkRepository struct {
	db *gorm.DB
}

// NewInviteLinkRepository creates a new InviteLinkRepository
func NewInviteLinkRepository(db *gorm.DB) InviteLinkRepository {
	return &GormInviteLinkRepository{db: db}
}

// Create creates a new invite link
func (r *GormInviteLinkRepository) Create(ctx context.Context, link *models.OrganizationInviteLink) error {
	return r.db.WithContext(ctx).Omit("Organization", "Creator", "Uses").Create(link).Error
}

// FindByToken finds an invite link by token
func (r *GormInviteLinkRepository) FindByToken(ctx context.Context, token string) (*models.OrganizationInviteLink, error) {
	var link models.OrganizationInviteLink
	if err := r.db.WithContext(ctx).
		Preload("Organization").
		Preload("Creator").
		Where("token = ?", token).
		First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// FindActive finds the organization's currently redeemable link
func (r *GormInviteLinkRepository) FindActive(ctx context.Context, organizationID int64, now time.Time) (*models.OrganizationInviteLink, error) {
	var link models.OrganizationInviteLink
	if err := r.db.WithContext(ctx).
		Scopes(database.ActiveInviteLinks(now)).
		Where("organization_id = ?", organizationID).
		Order("created_at DESC").
		First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// DeactivateActive deactivates all active links of an organization
func (r *GormInviteLinkRepository) DeactivateActive(ctx context.Context, organizationID int64, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.OrganizationInviteLink{}).
		Scopes(database.ActiveInviteLinks(now)).
		Where("organization_id = ?", organizationID).
		Update("deactivated_at", now)
	return result.RowsAffected, result.Error
}

// CreateUse records that a user redeemed a link. A second use by the same
// user is ignored.
func (r *GormInviteLinkRepository) CreateUse(ctx context.Context, use *models.InviteLinkUse) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "invite_link_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(use).Error
}

// CountUses counts the distinct users who redeemed a link
func (r *GormInviteLinkRepository) CountUses(ctx context.Context, inviteLinkID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.InviteLinkUse{}).
		Where("invite_link_id = ?", inviteLinkID).
		Count(&count).Error
	return count, err
}
