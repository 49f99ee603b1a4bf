package repository

import (
	"context"
	"time"

	"github.com/yukikurage/saas-starter-api/internal/models"
)

// Store groups the repositories and runs them inside transactions.
type Store interface {
	Users() UserRepository
	Organizations() OrganizationRepository
	Memberships() MembershipRepository
	InviteLinks() InviteLinkRepository
	Subscriptions() SubscriptionRepository

	// WithTx runs fn with a Store bound to a single transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(tx Store) error) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id int64) (*models.User, error)

	// FindByEmail finds a user by normalized email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// Update saves profile changes
	Update(ctx context.Context, user *models.User) error

	// Delete removes the user together with their memberships, the invite
	// links they created and every recorded invite link use
	Delete(ctx context.Context, id int64) error
}

// OrganizationRepository defines the interface for organization data access
type OrganizationRepository interface {
	// Create creates a new organization
	Create(ctx context.Context, org *models.Organization) error

	// FindByID finds an organization by ID
	FindByID(ctx context.Context, id int64) (*models.Organization, error)

	// FindBySlug finds an organization by slug
	FindBySlug(ctx context.Context, slug string) (*models.Organization, error)

	// FindByStripeCustomerID finds the organization billed under a customer
	FindByStripeCustomerID(ctx context.Context, customerID string) (*models.Organization, error)

	// SlugTaken reports whether another organization than excludeID uses slug
	SlugTaken(ctx context.Context, slug string, excludeID int64) (bool, error)

	// Update updates an organization
	Update(ctx context.Context, org *models.Organization) error

	// Delete deletes an organization and all related rows
	Delete(ctx context.Context, id int64) error
}

// MembershipRepository defines the interface for membership data access
type MembershipRepository interface {
	// Create adds a user to an organization
	Create(ctx context.Context, membership *models.OrganizationMembership) error

	// Find finds the membership of a user in an organization, active or not
	Find(ctx context.Context, organizationID, userID int64) (*models.OrganizationMembership, error)

	// Update saves a role or deactivation change
	Update(ctx context.Context, membership *models.OrganizationMembership) error

	// ListByOrganization lists every member with the user preloaded
	ListByOrganization(ctx context.Context, organizationID int64) ([]models.OrganizationMembership, error)

	// ListActiveByUser lists the user's active memberships with the organization preloaded
	ListActiveByUser(ctx context.Context, userID int64) ([]models.OrganizationMembership, error)

	// CountActiveOwners counts owners that are not deactivated
	CountActiveOwners(ctx context.Context, organizationID int64) (int64, error)

	// CountActiveMembers counts members of any role that are not deactivated
	CountActiveMembers(ctx context.Context, organizationID int64) (int64, error)
}

// InviteLinkRepository defines the interface for invite link data access
type InviteLinkRepository interface {
	// Create creates a new invite link
	Create(ctx context.Context, link *models.OrganizationInviteLink) error

	// FindByToken finds a link by token regardless of state
	FindByToken(ctx context.Context, token string) (*models.OrganizationInviteLink, error)

	// FindActive finds the organization's link redeemable at now
	FindActive(ctx context.Context, organizationID int64, now time.Time) (*models.OrganizationInviteLink, error)

	// DeactivateActive stamps deactivated_at on every active link of the organization
	DeactivateActive(ctx context.Context, organizationID int64, now time.Time) (int64, error)

	// CreateUse records a redemption
	CreateUse(ctx context.Context, use *models.InviteLinkUse) error

	// CountUses counts redemptions of a link
	CountUses(ctx context.Context, inviteLinkID int64) (int64, error)
}

// SubscriptionRepository defines the interface for cached billing data
type SubscriptionRepository interface {
	// Upsert inserts or updates by provider subscription ID
	Upsert(ctx context.Context, sub *models.Subscription) error

	// FindByStripeID finds a subscription by provider subscription ID
	FindByStripeID(ctx context.Context, stripeSubscriptionID string) (*models.Subscription, error)

	// FindLatestByOrganization returns the most recently updated subscription
	FindLatestByOrganization(ctx context.Context, organizationID int64) (*models.Subscription, error)
}
