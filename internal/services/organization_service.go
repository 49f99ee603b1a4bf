package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/saas-starter-api/internal/constants"
	"github.com/yukikurage/saas-starter-api/internal/models"
	"github.com/yukikurage/saas-starter-api/internal/repository"
	"github.com/yukikurage/saas-starter-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrOrganizationNotFound    = errors.New("organization not found")
	ErrInvalidOrganizationName = errors.New("organization name cannot be empty")
	ErrSlugGenerationFailed    = errors.New("failed to generate a unique slug")
	ErrNotOwner                = errors.New("caller is not an owner of the organization")
	ErrNotOwnerOrAdmin         = errors.New("caller is not an owner or admin of the organization")
)

// OrganizationService provides business logic for organization operations.
type OrganizationService struct {
	store repository.Store
}

// NewOrganizationService creates a new OrganizationService.
func NewOrganizationService(store repository.Store) *OrganizationService {
	return &OrganizationService{
		store: store,
	}
}

// DashboardPath is where a member lands inside an organization.
func DashboardPath(slug string) string {
	return constants.OrganizationsPath + "/" + slug + "/dashboard"
}

// UniqueSlug derives a slug from name that no organization other than
// excludeID uses. Collisions get a random suffix.
func UniqueSlug(ctx context.Context, orgs repository.OrganizationRepository, name string, excludeID int64) (string, error) {
	base := utils.Slugify(name, constants.SlugFallback)

	taken, err := orgs.SlugTaken(ctx, base, excludeID)
	if err != nil {
		return "", fmt.Errorf("failed to check slug: %w", err)
	}
	if !taken {
		return base, nil
	}

	for i := 0; i < constants.SlugMaxAttempts; i++ {
		suffix, err := utils.RandomSuffix(constants.SlugSuffixLength)
		if err != nil {
			return "", err
		}
		candidate := base + "-" + suffix
		taken, err := orgs.SlugTaken(ctx, candidate, excludeID)
		if err != nil {
			return "", fmt.Errorf("failed to check slug: %w", err)
		}
		if !taken {
			return candidate, nil
		}
	}

	return "", ErrSlugGenerationFailed
}

// CreateOrganizationInput represents parameters to create a new organization.
type CreateOrganizationInput struct {
	Name    string
	LogoURL string
	OwnerID int64
}

// CreateOrganization creates a new organization and assigns the owner.
func (s *OrganizationService) CreateOrganization(ctx context.Context, input CreateOrganizationInput) (*models.Organization, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidOrganizationName
	}

	org := &models.Organization{
		Name:    name,
		LogoURL: input.LogoURL,
	}

	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		slug, err := UniqueSlug(ctx, tx.Organizations(), name, 0)
		if err != nil {
			return err
		}
		org.Slug = slug

		if err := tx.Organizations().Create(ctx, org); err != nil {
			return fmt.Errorf("failed to create organization: %w", err)
		}

		member := &models.OrganizationMembership{
			OrganizationID: org.ID,
			UserID:         input.OwnerID,
			Role:           models.RoleOwner,
		}
		if err := tx.Memberships().Create(ctx, member); err != nil {
			return fmt.Errorf("failed to add owner to organization: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return org, nil
}

// ListOrganizationsForUser returns the active memberships of the user with
// their organizations.
func (s *OrganizationService) ListOrganizationsForUser(ctx context.Context, userID int64) ([]models.OrganizationMembership, error) {
	memberships, err := s.store.Memberships().ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return memberships, nil
}

// GetMembershipBySlug resolves an organization the user is an active member
// of. Unknown slugs and non-members are indistinguishable.
func (s *OrganizationService) GetMembershipBySlug(ctx context.Context, slug string, userID int64) (*models.Organization, *models.OrganizationMembership, error) {
	org, err := s.store.Organizations().FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrOrganizationNotFound
		}
		return nil, nil, fmt.Errorf("failed to find organization: %w", err)
	}

	membership, err := s.store.Memberships().Find(ctx, org.ID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrOrganizationNotFound
		}
		return nil, nil, fmt.Errorf("failed to find membership: %w", err)
	}
	if !membership.IsActive() {
		return nil, nil, ErrOrganizationNotFound
	}

	return org, membership, nil
}

// UpdateOrganizationInput represents a rename or logo change.
type UpdateOrganizationInput struct {
	OrganizationID int64
	CallerID       int64
	Name           string
	// LogoURL is left unchanged when nil; an empty string clears it.
	LogoURL *string
}

// UpdateOrganization renames an organization. A new name yields a new slug.
func (s *OrganizationService) UpdateOrganization(ctx context.Context, input UpdateOrganizationInput) (*models.Organization, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidOrganizationName
	}

	var org *models.Organization
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		caller, err := findActiveMembership(ctx, tx, input.OrganizationID, input.CallerID)
		if err != nil {
			return err
		}
		if caller.Role != models.RoleOwner && caller.Role != models.RoleAdmin {
			return ErrNotOwnerOrAdmin
		}

		org, err = tx.Organizations().FindByID(ctx, input.OrganizationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrganizationNotFound
			}
			return fmt.Errorf("failed to find organization: %w", err)
		}

		if name != org.Name {
			slug, err := UniqueSlug(ctx, tx.Organizations(), name, org.ID)
			if err != nil {
				return err
			}
			org.Name = name
			org.Slug = slug
		}
		if input.LogoURL != nil {
			org.LogoURL = *input.LogoURL
		}

		if err := tx.Organizations().Update(ctx, org); err != nil {
			return fmt.Errorf("failed to update organization: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return org, nil
}

// DeleteOrganizationInput identifies the organization and the caller.
type DeleteOrganizationInput struct {
	OrganizationID int64
	CallerID       int64
}

// DeleteOrganization removes an organization with its memberships, invite
// links and subscriptions. It returns where the caller should land next:
// another organization they own, or onboarding.
func (s *OrganizationService) DeleteOrganization(ctx context.Context, input DeleteOrganizationInput) (string, error) {
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		if err := requireOwner(ctx, tx, input.OrganizationID, input.CallerID); err != nil {
			return err
		}

		if err := tx.Organizations().Delete(ctx, input.OrganizationID); err != nil {
			return fmt.Errorf("failed to delete organization: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	remaining, err := s.store.Memberships().ListActiveByUser(ctx, input.CallerID)
	if err != nil {
		return "", fmt.Errorf("failed to list organizations: %w", err)
	}
	for _, m := range remaining {
		if m.Role == models.RoleOwner {
			return DashboardPath(m.Organization.Slug), nil
		}
	}
	return constants.OnboardingOrganizationPath, nil
}

func findActiveMembership(ctx context.Context, store repository.Store, orgID, userID int64) (*models.OrganizationMembership, error) {
	membership, err := store.Memberships().Find(ctx, orgID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find membership: %w", err)
	}
	if !membership.IsActive() {
		return nil, ErrOrganizationNotFound
	}
	return membership, nil
}
