package repository

import (
	"context"

	"github.com/yukikurage/saas-starter-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSubscriptionRepository is a GORM implementation of SubscriptionRepository
type GormSubscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new SubscriptionRepository
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &GormSubscriptionRepository{db: db}
}

// Upsert inserts a subscription or refreshes the cached fields
func (r *GormSubscriptionRepository) Upsert(ctx context.Context, sub *models.Subscription) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "stripe_subscription_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"organization_id",
				"stripe_customer_id",
				"stripe_price_id",
				"status",
				"cancel_at_period_end",
				"current_period_end",
				"updated_at",
			}),
		}).
		Create(sub).Error
}

// FindByStripeID finds a subscription by provider ID
func (r *GormSubscriptionRepository) FindByStripeID(ctx context.Context, stripeSubscriptionID string) (*models.Subscription, error) {
	var sub models.Subscription
	if err := r.db.WithContext(ctx).
		Where("stripe_subscription_id = ?", stripeSubscriptionID).
		First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// FindLatestByOrganization returns the organization's most recently updated subscription
func (r *GormSubscriptionRepository) FindLatestByOrganization(ctx context.Context, organizationID int64) (*models.Subscription, error) {
	var sub models.Subscription
	if err := r.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Order("updated_at DESC").
		First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}
