package repository

import (
	"context"

	"github.com/yukikurage/saas-starter-api/internal/models"
	"gorm.io/gorm"
)

// GormOrganizationRepository is a GORM implementation of OrganizationRepository
type GormOrganizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new OrganizationRepository
func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &GormOrganizationRepository{db: db}
}

// Create creates a new organization
func (r *GormOrganizationRepository) Create(ctx context.Context, org *models.Organization) error {
	return r.db.WithContext(ctx).Create(org).Error
}

// FindByID finds an organization by ID
func (r *GormOrganizationRepository) FindByID(ctx context.Context, id int64) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.WithContext(ctx).First(&org, id).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// FindBySlug finds an organization by slug
func (r *GormOrganizationRepository) FindBySlug(ctx context.Context, slug string) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// FindByStripeCustomerID finds an organization by its billing customer
func (r *GormOrganizationRepository) FindByStripeCustomerID(ctx context.Context, customerID string) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.WithContext(ctx).Where("stripe_customer_id = ?", customerID).First(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// SlugTaken reports whether a different organization already owns slug
func (r *GormOrganizationRepository) SlugTaken(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Organization{}).
		Where("slug = ? AND id <> ?", slug, excludeID).
		Count(&count).Error
	return count > 0, err
}

// Update updates an organization
func (r *GormOrganizationRepository) Update(ctx context.Context, org *models.Organization) error {
	return r.db.WithContext(ctx).Save(org).Error
}

// Delete deletes an organization and all related data in a transaction
func (r *GormOrganizationRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		links := tx.Model(&models.OrganizationInviteLink{}).Select("id").Where("organization_id = ?", id)

		// Delete invite link uses, then the links themselves
		if err := tx.Where("invite_link_id IN (?)", links).Delete(&models.InviteLinkUse{}).Error; err != nil {
			return err
		}
		if err := tx.Where("organization_id = ?", id).Delete(&models.OrganizationInviteLink{}).Error; err != nil {
			return err
		}

		// Delete cached subscriptions
		if err := tx.Where("organization_id = ?", id).Delete(&models.Subscription{}).Error; err != nil {
			return err
		}

		// Delete all memberships
		if err := tx.Where("organization_id = ?", id).Delete(&models.OrganizationMembership{}).Error; err != nil {
			return err
		}

		// Delete organization
		return tx.Delete(&models.Organization{}, id).Error
	})
}
