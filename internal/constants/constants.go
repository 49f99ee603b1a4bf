package constants

import "time"

// Session and context keys
const (
	SessionCookieName = "saas_session"
	ContextKeyUserID  = "user_id"
	ContextKeyUser    = "user"

	ContextKeyOrganization = "organization"
	ContextKeyMembership   = "organization_membership"
)

// Auth
const (
	MinPasswordLength = 8
	BcryptCost        = 12
)

// Invite links
const (
	InviteLinkLifetime   = 48 * time.Hour
	InviteLinkTokenBytes = 32
)

// Slugs and organization names
const (
	SlugSuffixLength    = 6
	SlugMaxAttempts     = 10
	SlugFallback        = "organization"
	OrganizationNameMin = 3
	OrganizationNameMax = 255
)

// Flash notices set before post-mutation redirects
const (
	FlashJoinedOrganization  = "joined-organization"
	FlashAlreadyMember       = "already-a-member"
	FlashOrganizationDeleted = "organization-deleted"
	FlashOrganizationCreated = "organization-created"
)

// Redirect targets
const (
	LoginPath                  = "/login"
	RegisterPath               = "/register"
	OrganizationsPath          = "/organizations"
	OnboardingUserAccountPath  = "/onboarding/user-account"
	OnboardingOrganizationPath = "/onboarding/organization"
	RedirectToParam            = "redirectTo"
)
