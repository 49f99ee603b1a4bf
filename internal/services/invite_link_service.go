package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/saas-starter-api/internal/constants"
	"github.com/yukikurage/saas-starter-api/internal/metrics"
	"github.com/yukikurage/saas-starter-api/internal/models"
	"github.com/yukikurage/saas-starter-api/internal/repository"
	"github.com/yukikurage/saas-starter-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrInvalidToken          = errors.New("invalid token")
	ErrNoActiveInviteLink    = errors.New("organization has no active invite link")
	ErrTokenGenerationFailed = errors.New("failed to generate invite link token")
)

// InviteLinkService creates, deactivates and redeems invite links.
type InviteLinkService struct {
	store repository.Store
	now   clock
}

// NewInviteLinkService creates a new InviteLinkService.
func NewInviteLinkService(store repository.Store) *InviteLinkService {
	return &InviteLinkService{
		store: store,
		now:   utcNow,
	}
}

// CreateInviteLinkInput identifies the organization and the creator.
type CreateInviteLinkInput struct {
	OrganizationID int64
	CreatorID      int64
}

// CreateInviteLink replaces the organization's active link with a new one.
func (s *InviteLinkService) CreateInviteLink(ctx context.Context, input CreateInviteLinkInput) (*models.OrganizationInviteLink, error) {
	token, err := utils.GenerateInviteLinkToken(constants.InviteLinkTokenBytes)
	if err != nil {
		return nil, ErrTokenGenerationFailed
	}

	now := s.now()
	link := &models.OrganizationInviteLink{
		OrganizationID: input.OrganizationID,
		CreatorID:      input.CreatorID,
		Token:          token,
		ExpiresAt:      now.Add(constants.InviteLinkLifetime),
	}

	err = s.store.WithTx(ctx, func(tx repository.Store) error {
		if err := requireOwner(ctx, tx, input.OrganizationID, input.CreatorID); err != nil {
			return err
		}
		if _, err := tx.InviteLinks().DeactivateActive(ctx, input.OrganizationID, now); err != nil {
			return fmt.Errorf("failed to deactivate invite links: %w", err)
		}
		if err := tx.InviteLinks().Create(ctx, link); err != nil {
			return fmt.Errorf("failed to create invite link: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return link, nil
}

// DeactivateInviteLinkInput identifies the organization and the caller.
type DeactivateInviteLinkInput struct {
	OrganizationID int64
	CallerID       int64
}

// DeactivateInviteLink deactivates the active link if there is one.
func (s *InviteLinkService) DeactivateInviteLink(ctx context.Context, input DeactivateInviteLinkInput) error {
	return s.store.WithTx(ctx, func(tx repository.Store) error {
		if err := requireOwner(ctx, tx, input.OrganizationID, input.CallerID); err != nil {
			return err
		}
		if _, err := tx.InviteLinks().DeactivateActive(ctx, input.OrganizationID, s.now()); err != nil {
			return fmt.Errorf("failed to deactivate invite links: %w", err)
		}
		return nil
	})
}

// GetActiveInviteLink returns the organization's redeemable link.
func (s *InviteLinkService) GetActiveInviteLink(ctx context.Context, organizationID int64) (*models.OrganizationInviteLink, error) {
	link, err := s.store.InviteLinks().FindActive(ctx, organizationID, s.now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveInviteLink
		}
		return nil, fmt.Errorf("failed to find invite link: %w", err)
	}
	return link, nil
}

// ValidateToken returns the link behind token with its organization and
// creator, provided it can still be redeemed.
func (s *InviteLinkService) ValidateToken(ctx context.Context, token string) (*models.OrganizationInviteLink, error) {
	return validateToken(ctx, s.store, token, s.now)
}

// AcceptInviteInput holds the token and the signed-in user redeeming it.
type AcceptInviteInput struct {
	Token  string
	UserID int64
}

// AcceptInviteResult tells where the user belongs after accepting.
type AcceptInviteResult struct {
	Organization  models.Organization
	AlreadyMember bool
}

// AcceptInvite adds the user to the link's organization as a member.
// Existing members, deactivated ones included, are left untouched.
func (s *InviteLinkService) AcceptInvite(ctx context.Context, input AcceptInviteInput) (*AcceptInviteResult, error) {
	var result *AcceptInviteResult

	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		link, err := validateToken(ctx, tx, input.Token, s.now)
		if err != nil {
			return err
		}
		result = &AcceptInviteResult{Organization: link.Organization}

		if _, err := tx.Memberships().Find(ctx, link.OrganizationID, input.UserID); err == nil {
			result.AlreadyMember = true
			return nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to verify membership: %w", err)
		}

		member := &models.OrganizationMembership{
			OrganizationID: link.OrganizationID,
			UserID:         input.UserID,
			Role:           models.RoleMember,
		}
		if err := tx.Memberships().Create(ctx, member); err != nil {
			return fmt.Errorf("failed to add member to organization: %w", err)
		}

		use := &models.InviteLinkUse{
			InviteLinkID: link.ID,
			UserID:       input.UserID,
		}
		if err := tx.InviteLinks().CreateUse(ctx, use); err != nil {
			return fmt.Errorf("failed to record invite link use: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !result.AlreadyMember {
		metrics.InviteLinksAccepted.Inc()
	}
	return result, nil
}

func validateToken(ctx context.Context, store repository.Store, token string, now clock) (*models.OrganizationInviteLink, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	link, err := store.InviteLinks().FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to find invite link: %w", err)
	}
	if !link.IsActiveAt(now()) {
		return nil, ErrInvalidToken
	}

	return link, nil
}

func requireOwner(ctx context.Context, store repository.Store, orgID, userID int64) error {
	membership, err := findActiveMembership(ctx, store, orgID, userID)
	if err != nil {
		return err
	}
	if !membership.IsOwner() {
		return ErrNotOwner
	}
	return nil
}
