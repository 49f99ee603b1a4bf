package repository

import (
	"context"

	"github.com/yukikurage/saas-starter-api/internal/database"
	"github.com/yukikurage/saas-starter-api/internal/models"
	"gorm.io/gorm"
)

// GormMembershipRepository is a GORM implementation of MembershipRepository
type GormMembershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository creates a new MembershipRepository
func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &GormMembershipRepository{db: db}
}

// Create adds a member to an organization
func (r *GormMembershipRepository) Create(ctx context.Context, membership *models.OrganizationMembership) error {
	return r.db.WithContext(ctx).Omit("Organization", "User").Create(membership).Error
}

// Find finds a specific membership
func (r *GormMembershipRepository) Find(ctx context.Context, organizationID, userID int64) (*models.OrganizationMembership, error) {
	var membership models.OrganizationMembership
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND user_id = ?", organizationID, userID).
		First(&membership).Error; err != nil {
		return nil, err
	}
	return &membership, nil
}

// Update persists role and deactivation changes
func (r *GormMembershipRepository) Update(ctx context.Context, membership *models.OrganizationMembership) error {
	return r.db.WithContext(ctx).Model(membership).
		Updates(map[string]interface{}{
			"role":           membership.Role,
			"deactivated_at": membership.DeactivatedAt,
		}).Error
}

// ListByOrganization lists all members of an organization
func (r *GormMembershipRepository) ListByOrganization(ctx context.Context, organizationID int64) ([]models.OrganizationMembership, error) {
	var members []models.OrganizationMembership
	if err := r.db.WithContext(ctx).Preload("User").
		Where("organization_id = ?", organizationID).
		Order("created_at ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// ListActiveByUser lists the organizations a user is an active member of
func (r *GormMembershipRepository) ListActiveByUser(ctx context.Context, userID int64) ([]models.OrganizationMembership, error) {
	var memberships []models.OrganizationMembership
	if err := r.db.WithContext(ctx).Preload("Organization").
		Scopes(database.ActiveMemberships).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

// CountActiveOwners counts active owners of an organization
func (r *GormMembershipRepository) CountActiveOwners(ctx context.Context, organizationID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.OrganizationMembership{}).
		Scopes(database.ActiveMemberships).
		Where("organization_id = ? AND role = ?", organizationID, models.RoleOwner).
		Count(&count).Error
	return count, err
}

// CountActiveMembers counts active members of an organization
func (r *GormMembershipRepository) CountActiveMembers(ctx context.Context, organizationID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.OrganizationMembership{}).
		Scopes(database.ActiveMemberships).
		Where("organization_id = ?", organizationID).
		Count(&count).Error
	return count, err
}
