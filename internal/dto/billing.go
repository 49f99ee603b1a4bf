package dto

import (
	"time"

	"github.com/yukikurage/saas-starter-api/internal/models"
)

// SubscriptionDTO represents the cached billing state of an organization
type SubscriptionDTO struct {
	Status            string    `json:"status"`
	PriceID           string    `json:"price_id"`
	CancelAtPeriodEnd bool      `json:"cancel_at_period_end"`
	CurrentPeriodEnd  time.Time `json:"current_period_end"`
}

// BillingDTO is the payload of the billing settings page
type BillingDTO struct {
	Organization OrganizationDTO  `json:"organization"`
	Subscription *SubscriptionDTO `json:"subscription"`
}

// ToSubscriptionDTO converts a subscription model to DTO
func ToSubscriptionDTO(sub models.Subscription) SubscriptionDTO {
	return SubscriptionDTO{
		Status:            sub.Status,
		PriceID:           sub.StripePriceID,
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
		CurrentPeriodEnd:  sub.CurrentPeriodEnd,
	}
}
