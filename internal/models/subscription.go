package models

import (
	"time"

	"github.com/yukikurage/saas-starter-api/internal/id"
	"gorm.io/gorm"
)

// Subscription is the locally cached copy of a billing provider subscription.
type Subscription struct {
	ID                   int64     `gorm:"primarykey;autoIncrement:false" json:"id,string"`
	OrganizationID       int64     `gorm:"not null;index" json:"organization_id,string"`
	StripeSubscriptionID string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"stripe_subscription_id"`
	StripeCustomerID     string    `gorm:"type:varchar(255);not null" json:"stripe_customer_id"`
	StripePriceID        string    `gorm:"type:varchar(255);not null;default:''" json:"stripe_price_id"`
	Status               string    `gorm:"type:varchar(32);not null" json:"status"`
	CancelAtPeriodEnd    bool      `gorm:"not null;default:false" json:"cancel_at_period_end"`
	CurrentPeriodEnd     time.Time `json:"current_period_end"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func (s *Subscription) BeforeCreate(*gorm.DB) error {
	if s.ID == 0 {
		s.ID = id.New()
	}
	return nil
}
