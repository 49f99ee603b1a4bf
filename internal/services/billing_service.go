package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"github.com/yukikurage/saas-starter-api/internal/metrics"
	"github.com/yukikurage/saas-starter-api/internal/models"
	"github.com/yukikurage/saas-starter-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Billing events the webhook acts on
const (
	EventSubscriptionCreated     = "customer.subscription.created"
	EventSubscriptionUpdated     = "customer.subscription.updated"
	EventSubscriptionDeleted     = "customer.subscription.deleted"
	EventCheckoutSessionComplete = "checkout.session.completed"
)

// MetadataOrganizationID is the subscription metadata key naming the organization.
const MetadataOrganizationID = "organizationId"

var ErrBillingOrganizationNotFound = errors.New("no organization matches the billing event")

// BillingService keeps the local subscription cache in sync with billing
// webhook events.
type BillingService struct {
	store         repository.Store
	webhookSecret string
	logger        *zap.Logger
}

// NewBillingService creates a new BillingService.
func NewBillingService(store repository.Store, webhookSecret string, logger *zap.Logger) *BillingService {
	return &BillingService{
		store:         store,
		webhookSecret: webhookSecret,
		logger:        logger,
	}
}

// ConstructEvent verifies the signature header and decodes the event.
func (s *BillingService) ConstructEvent(payload []byte, signature string) (stripe.Event, error) {
	return webhook.ConstructEventWithOptions(payload, signature, s.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
}

// HandleEvent applies a verified event. Events of other types are logged
// and acknowledged.
func (s *BillingService) HandleEvent(ctx context.Context, event stripe.Event) error {
	eventType := string(event.Type)
	metrics.BillingWebhookEvents.WithLabelValues(eventType).Inc()

	if event.Data == nil {
		return fmt.Errorf("event %s has no data", event.ID)
	}

	switch eventType {
	case EventSubscriptionCreated, EventSubscriptionUpdated, EventSubscriptionDeleted:
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return fmt.Errorf("failed to decode subscription: %w", err)
		}
		if eventType == EventSubscriptionDeleted {
			sub.Status = stripe.SubscriptionStatusCanceled
		}
		return s.syncSubscription(ctx, &sub)

	case EventCheckoutSessionComplete:
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return fmt.Errorf("failed to decode checkout session: %w", err)
		}
		return s.linkCustomer(ctx, &session)

	default:
		s.logger.Info("unhandled billing event",
			zap.String("event_id", event.ID),
			zap.String("type", eventType),
		)
		return nil
	}
}

func (s *BillingService) syncSubscription(ctx context.Context, sub *stripe.Subscription) error {
	var customerID string
	if sub.Customer != nil {
		customerID = sub.Customer.ID
	}

	org, err := s.resolveOrganization(ctx, sub.Metadata[MetadataOrganizationID], customerID)
	if errors.Is(err, ErrBillingOrganizationNotFound) {
		org, err = s.organizationOfSubscription(ctx, sub.ID)
	}
	if err != nil {
		return err
	}

	record := &models.Subscription{
		OrganizationID:       org.ID,
		StripeSubscriptionID: sub.ID,
		StripeCustomerID:     customerID,
		Status:               string(sub.Status),
		CancelAtPeriodEnd:    sub.CancelAtPeriodEnd,
		CurrentPeriodEnd:     time.Unix(sub.CurrentPeriodEnd, 0).UTC(),
	}
	if sub.Items != nil && len(sub.Items.Data) > 0 && sub.Items.Data[0].Price != nil {
		record.StripePriceID = sub.Items.Data[0].Price.ID
	}

	if err := s.store.Subscriptions().Upsert(ctx, record); err != nil {
		return fmt.Errorf("failed to store subscription: %w", err)
	}

	s.logger.Info("subscription synced",
		zap.Int64("organization_id", org.ID),
		zap.String("subscription_id", sub.ID),
		zap.String("status", record.Status),
	)
	return nil
}

func (s *BillingService) linkCustomer(ctx context.Context, session *stripe.CheckoutSession) error {
	if session.Customer == nil || session.Customer.ID == "" {
		return nil
	}

	org, err := s.resolveOrganization(ctx, session.ClientReferenceID, "")
	if err != nil {
		return err
	}

	customerID := session.Customer.ID
	org.StripeCustomerID = &customerID
	if err := s.store.Organizations().Update(ctx, org); err != nil {
		return fmt.Errorf("failed to store billing customer: %w", err)
	}
	return nil
}

// resolveOrganization prefers an explicit organization id over the customer.
func (s *BillingService) resolveOrganization(ctx context.Context, rawOrgID, customerID string) (*models.Organization, error) {
	var (
		org *models.Organization
		err error
	)

	switch {
	case rawOrgID != "":
		orgID, perr := strconv.ParseInt(rawOrgID, 10, 64)
		if perr != nil {
			return nil, ErrBillingOrganizationNotFound
		}
		org, err = s.store.Organizations().FindByID(ctx, orgID)
	case customerID != "":
		org, err = s.store.Organizations().FindByStripeCustomerID(ctx, customerID)
	default:
		return nil, ErrBillingOrganizationNotFound
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBillingOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}
	return org, nil
}

// organizationOfSubscription finds the organization a subscription was
// already stored for.
func (s *BillingService) organizationOfSubscription(ctx context.Context, subscriptionID string) (*models.Organization, error) {
	if subscriptionID == "" {
		return nil, ErrBillingOrganizationNotFound
	}

	existing, err := s.store.Subscriptions().FindByStripeID(ctx, subscriptionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBillingOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find subscription: %w", err)
	}

	org, err := s.store.Organizations().FindByID(ctx, existing.OrganizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBillingOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}
	return org, nil
}

// GetSubscription returns the organization's most recent subscription, or
// nil when it never subscribed.
func (s *BillingService) GetSubscription(ctx context.Context, organizationID int64) (*models.Subscription, error) {
	sub, err := s.store.Subscriptions().FindLatestByOrganization(ctx, organizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find subscription: %w", err)
	}
	return sub, nil
}
